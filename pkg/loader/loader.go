// Package loader fetches and parses every source's coordinate table,
// tolerating per-source failure: a failed source contributes zero markers,
// never an error. The result is published only after every attempt has
// resolved.
package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"taipamap/pkg/model"
	"taipamap/pkg/registry"
)

// Loader loads all sources of a registry into snapshots.
type Loader struct {
	dataDir string
	reg     *registry.Registry
}

// New creates a loader reading tables below dataDir.
func New(dataDir string, reg *registry.Registry) *Loader {
	return &Loader{dataDir: dataDir, reg: reg}
}

// Load attempts every source concurrently and waits for all attempts
// regardless of individual outcome. Failures are logged and degrade to an
// empty marker slice; no attempt is retried. The returned snapshot always
// contains one entry per source.
func (l *Loader) Load(ctx context.Context) *model.Snapshot {
	snap := model.NewSnapshot(l.reg.Names())

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, src := range l.reg.Sources() {
		g.Go(func() error {
			markers := l.loadSource(ctx, src)
			mu.Lock()
			snap.BySource[src.Name] = markers
			mu.Unlock()
			// Attempts never fail the group: the join-all barrier must
			// see every source through.
			return nil
		})
	}
	_ = g.Wait()

	snap.Ready = true
	return snap
}

// loadSource reads and parses one source's table. Any failure yields nil.
func (l *Loader) loadSource(ctx context.Context, src model.Source) []model.Marker {
	if err := ctx.Err(); err != nil {
		slog.Warn("Source load cancelled", "source", src.Name, "error", err)
		return nil
	}

	path := filepath.Join(l.dataDir, src.Table)
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("Failed to open coordinate table", "source", src.Name, "path", path, "error", err)
		return nil
	}
	defer f.Close()

	rows, err := ParseTable(f)
	if err != nil {
		slog.Warn("Failed to parse coordinate table", "source", src.Name, "path", path, "error", err)
		return nil
	}

	markers := make([]model.Marker, 0, len(rows))
	for _, row := range rows {
		markers = append(markers, model.Marker{
			Row:      row,
			Source:   src.Name,
			PhotoDir: src.PhotoDir,
			Category: src.Category,
			Color:    src.Color,
		})
	}
	slog.Debug("Loaded source", "source", src.Name, "markers", len(markers))
	return markers
}
