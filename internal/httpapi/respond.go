package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/presenter"
)

func locale(r *http.Request) string {
	return r.Header.Get("Accept-Language")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientStock), errors.Is(err, model.ErrProductExists),
		errors.Is(err, model.ErrDuplicateEvent):
		return http.StatusConflict
	case errors.Is(err, model.ErrNoSalesData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
	}
	writeText(w, code, presenter.Error(locale(r), err))
}
