// File: internal/monitor/server_test.go
package monitor_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/monitor"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

func TestHandleSendersReturnsJSONStats(t *testing.T) {
	sm := artnet.NewSenderMonitor(time.Second)
	sm.Register("10.0.0.5", 6454)
	world := raster.New(2, 2, 2, raster.DefaultOrientation)
	srv := monitor.NewServer(sm, nil, world)

	req := httptest.NewRequest(http.MethodGet, "/monitor/senders", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []artnet.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "10.0.0.5", entries[0].IP)
}

func TestHandleSendersDisabledReturns503(t *testing.T) {
	world := raster.New(2, 2, 2, raster.DefaultOrientation)
	srv := monitor.NewServer(nil, nil, world)

	req := httptest.NewRequest(http.MethodGet, "/monitor/senders", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleControllersReturnsJSONStats(t *testing.T) {
	registry := controller.NewRegistry(nil, map[uint16]string{1: "P1"}, nil)
	world := raster.New(2, 2, 2, raster.DefaultOrientation)
	srv := monitor.NewServer(nil, registry, world)

	req := httptest.NewRequest(http.MethodGet, "/monitor/controllers", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var statuses []controller.ControllerStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	assert.Len(t, statuses, 0)
}

func TestHandleLayerRendersASCII(t *testing.T) {
	world := raster.New(2, 2, 1, raster.DefaultOrientation)
	require.NoError(t, world.SetPix(0, 0, 0, raster.RGB{R: 255}))
	srv := monitor.NewServer(nil, nil, world)

	req := httptest.NewRequest(http.MethodGet, "/monitor/layer/0", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\033[38;2;255;0;0m")
}

func TestHandleLayerOutOfRangeReturns404(t *testing.T) {
	world := raster.New(2, 2, 1, raster.DefaultOrientation)
	srv := monitor.NewServer(nil, nil, world)

	req := httptest.NewRequest(http.MethodGet, "/monitor/layer/9", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLayerRejectsMethodNotAllowed(t *testing.T) {
	world := raster.New(2, 2, 1, raster.DefaultOrientation)
	srv := monitor.NewServer(nil, nil, world)

	req := httptest.NewRequest(http.MethodPost, "/monitor/layer/0", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
