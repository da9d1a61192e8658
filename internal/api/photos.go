package api

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"taipamap/pkg/assets"
	"taipamap/pkg/model"
	"taipamap/pkg/registry"
)

// PhotoHandler serves the photo behind a marker.
type PhotoHandler struct {
	reg *registry.Registry

	mu    sync.RWMutex
	index *assets.Index
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(reg *registry.Registry, index *assets.Index) *PhotoHandler {
	return &PhotoHandler{reg: reg, index: index}
}

// SetIndex swaps in a freshly built photo index. Used by the data-watch
// reload path; the index itself stays immutable.
func (h *PhotoHandler) SetIndex(index *assets.Index) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = index
}

func (h *PhotoHandler) currentIndex() *assets.Index {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// HandleGetPhoto resolves a marker's photo through the asset index and
// serves the file. On an index miss the constructed fallback path is
// tried once; a double miss is the browser's broken-image state, not an
// application error.
// GET /api/photos/{source}/{photo}
func (h *PhotoHandler) HandleGetPhoto(w http.ResponseWriter, r *http.Request) {
	sourceName := r.PathValue("source")
	photo := model.NormalizePhoto(r.PathValue("photo"))
	if photo == "" {
		http.Error(w, "missing photo identifier", http.StatusBadRequest)
		return
	}

	src, ok := h.reg.ByName(sourceName)
	if !ok {
		http.Error(w, "unknown source", http.StatusNotFound)
		return
	}

	path, indexed := h.currentIndex().Resolve(src.PhotoDir, photo)
	if !indexed {
		// Best-effort fallback: the constructed path may still exist if
		// the photo appeared after the index was built.
		if _, err := os.Stat(path); err != nil {
			slog.Debug("Photo not found", "source", sourceName, "photo", photo, "fallback", path)
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
	}

	http.ServeFile(w, r, path)
}
