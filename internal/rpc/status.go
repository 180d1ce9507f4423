package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fekuna/smart-inventory/internal/i18n"
	"github.com/fekuna/smart-inventory/internal/model"
)

var errPanic = errors.New("handler panic")

// Code maps an error kind to its gRPC code. Unknown errors are Internal.
func Code(err error) codes.Code {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return codes.NotFound
	case errors.Is(err, model.ErrInsufficientStock), errors.Is(err, model.ErrNoSalesData):
		return codes.FailedPrecondition
	case errors.Is(err, model.ErrInvalidInput):
		return codes.InvalidArgument
	case errors.Is(err, model.ErrProductExists), errors.Is(err, model.ErrDuplicateEvent):
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

// Error converts err to a status carrying the localized user message, which
// never includes store details.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return status.Error(Code(err), i18n.ErrorMessage(Locale(ctx), err))
}
