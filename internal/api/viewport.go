package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"taipamap/pkg/aggregate"
	"taipamap/pkg/config"
	"taipamap/pkg/loader"
	"taipamap/pkg/model"
	"taipamap/pkg/registry"
	"taipamap/pkg/viewport"
)

// ViewportHandler exposes the viewport state machine: navigation presets,
// the active view, and a shareable QR code.
type ViewportHandler struct {
	cfg   *config.MapConfig
	reg   *registry.Registry
	store *loader.Store
	ctrl  *viewport.Controller
}

// NewViewportHandler creates a new ViewportHandler.
func NewViewportHandler(cfg *config.MapConfig, reg *registry.Registry, store *loader.Store, ctrl *viewport.Controller) *ViewportHandler {
	return &ViewportHandler{cfg: cfg, reg: reg, store: store, ctrl: ctrl}
}

// HandleGet serves the view the map should display: the active request,
// or the computed default view when no navigation has happened.
// GET /api/viewport
func (h *ViewportHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.currentView())
}

// SetViewportRequest is the POST body: either a municipality preset name
// or an explicit center and zoom.
type SetViewportRequest struct {
	Municipality string   `json:"municipality,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Zoom         int      `json:"zoom,omitempty"`
}

// HandleSet records a navigation action and returns the stored request.
// POST /api/viewport
func (h *ViewportHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req SetViewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var stored model.ViewportRequest
	switch {
	case req.Municipality != "":
		m, ok := h.reg.Municipality(req.Municipality)
		if !ok {
			http.Error(w, "unknown municipality", http.StatusNotFound)
			return
		}
		stored = h.ctrl.Direct(m.Center, m.Zoom)

	case req.Lat != nil && req.Lng != nil:
		zoom := req.Zoom
		if zoom == 0 {
			zoom = h.cfg.DirectZoom
		}
		stored = h.ctrl.Direct(model.LatLng{Lat: *req.Lat, Lng: *req.Lng}, zoom)

	default:
		http.Error(w, "municipality or lat/lng required", http.StatusBadRequest)
		return
	}

	slog.Info("Viewport directed", "center", stored.Center, "zoom", stored.Zoom)
	writeJSON(w, stored)
}

// HandlePresets serves the navigation controls: one preset per
// municipality, in declaration order.
// GET /api/viewport/presets
func (h *ViewportHandler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.reg.Municipalities())
}

// HandleQR serves a QR code PNG encoding a share URL for the current view.
// GET /api/viewport/qr
func (h *ViewportHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	v := h.currentView()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	shareURL := fmt.Sprintf("%s://%s/?lat=%.6f&lng=%.6f&zoom=%d", scheme, r.Host, v.Center.Lat, v.Center.Lng, v.Zoom)

	png, err := qrcode.Encode(shareURL, qrcode.Medium, 512)
	if err != nil {
		slog.Error("Failed to encode share QR", "error", err)
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		slog.Error("Failed to write QR response", "error", err)
	}
}

func (h *ViewportHandler) currentView() viewport.View {
	fallback := model.LatLng{Lat: h.cfg.FallbackLat, Lng: h.cfg.FallbackLng}
	def := aggregate.DefaultCenter(h.store.Snapshot().Markers(), fallback)
	return h.ctrl.View(def, h.cfg.DefaultZoom)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
