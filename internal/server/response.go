package server

import (
	"context"
	"net/http"

	goahttp "goa.design/goa/v3/http"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the goa response encoder, which sets the
// Content-Type header before the status line is written.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) error {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	return enc.Encode(v)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) error {
	return writeJSON(ctx, w, status, errorBody{Error: message})
}
