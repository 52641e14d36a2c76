package httpkit

import (
	"net/http"

	phttp "glossrank/internal/platform/net/http"
)

// Get registers a no-input handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a no-body handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// GetQuery binds path and query parameters into T before calling h
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.QueryHandler(h))
}

// GetResponse binds T and lets h pick status and body
func GetResponse[T any](r Router, path string, h func(*http.Request, T) Response) {
	r.Get(path, phttp.ResponseHandler(h))
}

// PostJSON decodes and validates a JSON body into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
