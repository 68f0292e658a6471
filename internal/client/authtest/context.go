package authtest

import (
	"context"
	"net/http"
)

type bodyKey struct{}

func withBody(r *http.Request, body map[string]string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), bodyKey{}, body))
}

func bodyOf(r *http.Request) map[string]string {
	b, _ := r.Context().Value(bodyKey{}).(map[string]string)
	if b == nil {
		return map[string]string{}
	}
	return b
}
