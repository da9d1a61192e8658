package api

import (
	"log/slog"
	"net/http"
	"strings"

	"taipamap/pkg/icon"
	"taipamap/pkg/model"
)

// IconHandler serves the pre-built category pins.
type IconHandler struct {
	resolver *icon.Resolver
}

// NewIconHandler creates a new IconHandler.
func NewIconHandler(resolver *icon.Resolver) *IconHandler {
	return &IconHandler{resolver: resolver}
}

// HandleCategory serves a category pin.
// GET /api/icons/{file} with file = "<category>.png"
func (h *IconHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("file"), ".png")
	ic, ok := h.resolver.ForCategory(model.Category(name))
	if !ok {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}
	writePNG(w, ic.PNG)
}

// HandleSource serves the pin for a source, falling back to the default
// source's pin for unknown names so a marker always renders.
// GET /api/icons/source/{name}
func (h *IconHandler) HandleSource(w http.ResponseWriter, r *http.Request) {
	ic := h.resolver.ForSource(r.PathValue("name"))
	writePNG(w, ic.PNG)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	// The pin set is built once per process; clients may cache freely.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(png); err != nil {
		slog.Error("Failed to write icon response", "error", err)
	}
}
