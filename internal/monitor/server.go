// File: internal/monitor/server.go
package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// Server exposes read-only introspection endpoints over the renderer's
// live state. Grounded on server/handlers.go's HandleGetRooms /
// HandleHealthCheck pattern: a closure per route, a panic-recovering
// defer, explicit method check, explicit Content-Type.
type Server struct {
	senderMonitor *artnet.SenderMonitor
	registry      *controller.Registry
	world         *raster.Raster
}

// NewServer builds a monitor Server. senderMonitor and registry may be nil
// (their endpoints report 503); world must not be nil.
func NewServer(senderMonitor *artnet.SenderMonitor, registry *controller.Registry, world *raster.Raster) *Server {
	return &Server{senderMonitor: senderMonitor, registry: registry, world: world}
}

// Mux builds the endpoint set: GET /monitor/senders, GET
// /monitor/controllers (both JSON) and GET /monitor/layer/{z} (ANSI text).
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/monitor/senders", s.handleSenders())
	mux.HandleFunc("/monitor/controllers", s.handleControllers())
	mux.HandleFunc("/monitor/layer/", s.handleLayer())
	return mux
}

func (s *Server) handleSenders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverHTTP(w)
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.senderMonitor == nil {
			http.Error(w, "sender monitor disabled", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, s.senderMonitor.Stats())
	}
}

func (s *Server) handleControllers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverHTTP(w)
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.registry == nil {
			http.Error(w, "registry disabled", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, s.registry.Stats())
	}
}

func (s *Server) handleLayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverHTTP(w)
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		zStr := strings.TrimPrefix(r.URL.Path, "/monitor/layer/")
		z, err := strconv.Atoi(zStr)
		if err != nil {
			http.Error(w, "invalid layer index", http.StatusBadRequest)
			return
		}
		text, ok := RenderLayerASCII(s.world, z)
		if !ok {
			http.Error(w, "layer out of range", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "error marshalling response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func recoverHTTP(w http.ResponseWriter) {
	if rec := recover(); rec != nil {
		fmt.Printf("PANIC recovered in monitor handler: %v\nStack trace:\n%s\n", rec, string(debug.Stack()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
