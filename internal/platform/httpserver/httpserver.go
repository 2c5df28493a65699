package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server tuned for this service's traffic: webhook and
// API payloads are small (the webhook handler caps bodies at 1 MiB), while
// a batch run behind a request never happens, so timeouts can stay tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
