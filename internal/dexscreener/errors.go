package dexscreener

import (
	"fmt"
	"net/http"
)

// TransportError reports a failure to reach the API or read its response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a non-success HTTP status.
type ResponseError struct {
	URL        string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Failed to fetch data: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError reports a payload that does not match the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
