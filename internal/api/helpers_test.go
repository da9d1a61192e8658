package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taipamap/pkg/assets"
	"taipamap/pkg/config"
	"taipamap/pkg/icon"
	"taipamap/pkg/loader"
	"taipamap/pkg/registry"
	"taipamap/pkg/viewport"
)

// fixture wires the full handler stack against a temp data directory with
// one good source, one empty source, and one missing table.
type fixture struct {
	dataDir  string
	cfg      *config.MapConfig
	reg      *registry.Registry
	store    *loader.Store
	index    *assets.Index
	icons    *icon.Resolver
	ctrl     *viewport.Controller
	markersH *MarkersHandler
	vpH      *ViewportHandler
	photoH   *PhotoHandler
	iconH    *IconHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dataDir := t.TempDir()

	write := func(rel, body string) {
		t.Helper()
		path := filepath.Join(dataDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("tremedal/total.csv", "X,Y,Name\n-41.46,-15.75,\"A\"\n-41.40,-15.70,B\n")
	write("tremedal/duvida.csv", "X,Y,Name\n")
	// tremedal/ruinas.csv deliberately missing.
	write("tremedal/fotos-total/A.jpg", "jpeg bytes")

	srcCfg := &config.SourcesConfig{
		Municipalities: []config.MunicipalityConfig{
			{
				Name: "Tremedal", Lat: -15.75, Lng: -41.41, Zoom: 13,
				Sources: map[string]config.SourceConfig{
					"total":  {Table: "tremedal/total.csv", Photos: "tremedal/fotos-total"},
					"duvida": {Table: "tremedal/duvida.csv", Photos: "tremedal/fotos-duvida"},
					"ruinas": {Table: "tremedal/ruinas.csv", Photos: "tremedal/fotos-ruinas"},
				},
			},
			{
				Name: "Anagé", Lat: -14.61, Lng: -41.14,
				Sources: map[string]config.SourceConfig{
					"total": {Table: "anage/total.csv", Photos: "anage/fotos-total"},
				},
			},
		},
	}

	mapCfg := &config.MapConfig{
		TileURL:     "https://tiles.example/{z}/{x}/{y}.png",
		Attribution: "test tiles",
		DefaultZoom: 10,
		DirectZoom:  13,
		FallbackLat: -15.05,
		FallbackLng: -41.40,
	}

	reg, err := registry.New(srcCfg, mapCfg.DirectZoom)
	if err != nil {
		t.Fatal(err)
	}

	store := loader.NewStore(reg.Names())
	index := assets.Build(dataDir, reg.Sources())
	icons, err := icon.NewResolver(reg.Sources(), reg.Default().Name)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := viewport.NewController()

	f := &fixture{
		dataDir:  dataDir,
		cfg:      mapCfg,
		reg:      reg,
		store:    store,
		index:    index,
		icons:    icons,
		ctrl:     ctrl,
		markersH: NewMarkersHandler(mapCfg, reg, store),
		vpH:      NewViewportHandler(mapCfg, reg, store, ctrl),
		photoH:   NewPhotoHandler(reg, index),
		iconH:    NewIconHandler(icons),
	}
	f.load(t)
	return f
}

// load runs a full load and publishes the snapshot.
func (f *fixture) load(t *testing.T) {
	t.Helper()
	snap := loader.New(f.dataDir, f.reg).Load(context.Background())
	f.store.Publish(snap)
}
