package main

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDCtxKey = contextKey("request_id")

func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, requestIDCtxKey, id)

	return r.WithContext(ctx)
}

// contextGetRequestID returns "" for requests that did not pass through the
// requestID middleware.
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDCtxKey).(string)
	return id
}
