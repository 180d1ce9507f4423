package httpapi

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fekuna/smart-inventory/internal/model"
)

const maxBodyBytes = 1 << 20

// readFields collects the request body, JSON object or form encoded, into a
// Struct so both front ends share one set of field parsers.
func readFields(w http.ResponseWriter, r *http.Request) (*structpb.Struct, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var m map[string]any
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&m); err != nil {
			return nil, model.InvalidInput("request body must be a JSON object")
		}
		s, err := structpb.NewStruct(m)
		if err != nil {
			return nil, model.InvalidInput("unsupported value in request body")
		}
		return s, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, model.InvalidInput("malformed form body")
	}
	m := make(map[string]any, len(r.Form))
	for k := range r.Form {
		m[k] = r.Form.Get(k)
	}
	return structpb.NewStruct(m)
}

// queryFields exposes the URL query the same way.
func queryFields(r *http.Request) (*structpb.Struct, error) {
	q := r.URL.Query()
	m := make(map[string]any, len(q))
	for k := range q {
		m[k] = q.Get(k)
	}
	return structpb.NewStruct(m)
}
