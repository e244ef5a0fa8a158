// Package responsewriter wraps http.ResponseWriter to capture the status
// code and response size for logging and metrics middleware.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status code and bytes written to a response.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	wroteHeader  bool
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code and calls the underlying WriteHeader.
// Only the first call takes effect.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// Write writes the response body and records the size. An implicit 200 is
// recorded when WriteHeader was never called.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded HTTP status code.
func (w *ResponseWriter) StatusCode() int {
	return w.statusCode
}

// BytesWritten returns the number of bytes written to the response.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytesWritten
}

// Unwrap returns the underlying http.ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
