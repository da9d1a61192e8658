package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"taipamap/pkg/aggregate"
	"taipamap/pkg/config"
	"taipamap/pkg/loader"
	"taipamap/pkg/model"
	"taipamap/pkg/registry"
)

// MarkersHandler exposes the aggregated marker set and the computed
// default map center.
type MarkersHandler struct {
	cfg   *config.MapConfig
	reg   *registry.Registry
	store *loader.Store
}

// NewMarkersHandler creates a new MarkersHandler.
func NewMarkersHandler(cfg *config.MapConfig, reg *registry.Registry, store *loader.Store) *MarkersHandler {
	return &MarkersHandler{cfg: cfg, reg: reg, store: store}
}

// MarkersResponse is the full payload the viewer boots from.
type MarkersResponse struct {
	Ready       bool                    `json:"ready"`
	SnapshotID  string                  `json:"snapshot_id"`
	TileURL     string                  `json:"tile_url"`
	Attribution string                  `json:"attribution"`
	DefaultZoom int                     `json:"default_zoom"`
	Center      model.LatLng            `json:"center"`
	Markers     []model.Marker          `json:"markers"`
	Sources     []aggregate.SourceCount `json:"sources"`
}

// HandleMarkers serves the current snapshot flattened to one marker
// sequence. While the initial load is still running it answers with
// ready=false and no markers, which the viewer shows as "Loading...".
// GET /api/markers
func (h *MarkersHandler) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	markers := snap.Markers()
	if markers == nil {
		markers = []model.Marker{}
	}

	resp := MarkersResponse{
		Ready:       snap.Ready,
		SnapshotID:  snap.ID,
		TileURL:     h.cfg.TileURL,
		Attribution: h.cfg.Attribution,
		DefaultZoom: h.cfg.DefaultZoom,
		Center:      aggregate.DefaultCenter(markers, h.fallback()),
		Markers:     markers,
		Sources:     aggregate.Counts(snap, h.reg.Sources()),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode markers response", "error", err)
	}
}

// CenterResponse is the computed default view for the current marker set.
type CenterResponse struct {
	Center model.LatLng `json:"center"`
	Zoom   int          `json:"zoom"`
}

// HandleCenter serves the bounding-box midpoint of the current markers,
// or the fixed fallback coordinate when nothing is loaded.
// GET /api/map/center
func (h *MarkersHandler) HandleCenter(w http.ResponseWriter, r *http.Request) {
	resp := CenterResponse{
		Center: aggregate.DefaultCenter(h.store.Snapshot().Markers(), h.fallback()),
		Zoom:   h.cfg.DefaultZoom,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode center response", "error", err)
	}
}

func (h *MarkersHandler) fallback() model.LatLng {
	return model.LatLng{Lat: h.cfg.FallbackLat, Lng: h.cfg.FallbackLng}
}
