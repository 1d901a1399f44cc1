// File: cmd/cuberenderer/httpserver.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// httpServerShim runs the monitor's http.Server on its own goroutine and
// gives main.go a synchronous stop() it can call during shutdown, the
// same "serve in background, shut down on signal" shape the teacher's own
// process uses for its game server.
type httpServerShim struct {
	addr    string
	handler http.Handler
	server  *http.Server
}

func (h *httpServerShim) start() {
	h.server = &http.Server{Addr: h.addr, Handler: h.handler}
	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("cuberenderer: monitor server error: %v\n", err)
		}
	}()
}

func (h *httpServerShim) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.server.Shutdown(ctx)
}
