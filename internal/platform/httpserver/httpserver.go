package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server with fixed timeouts. The write timeout leaves
// headroom for per-field key derivation on large records.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
