package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taipamap/pkg/loader"
)

func TestHandleMarkers(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.markersH.HandleMarkers(rec, httptest.NewRequest("GET", "/api/markers", nil))
	require.Equal(t, 200, rec.Code)

	var resp MarkersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Ready)
	assert.NotEmpty(t, resp.SnapshotID)
	assert.Equal(t, "https://tiles.example/{z}/{x}/{y}.png", resp.TileURL)

	// Two valid rows in tremedal-total; the empty and missing tables
	// contribute nothing but still appear in the legend.
	require.Len(t, resp.Markers, 2)
	assert.Equal(t, "tremedal-total", resp.Markers[0].Source)
	assert.Equal(t, "A", resp.Markers[0].Photo)
	assert.Equal(t, -15.75, resp.Markers[0].Lat)
	assert.Equal(t, -41.46, resp.Markers[0].Lng)

	require.Len(t, resp.Sources, 4)
	counts := map[string]int{}
	for _, s := range resp.Sources {
		counts[s.Name] = s.Count
	}
	assert.Equal(t, 2, counts["tremedal-total"])
	assert.Equal(t, 0, counts["tremedal-duvida"])
	assert.Equal(t, 0, counts["tremedal-ruinas"])
	assert.Equal(t, 0, counts["anagé-total"])

	// Bounding-box midpoint of the two loaded rows.
	assert.InDelta(t, -15.725, resp.Center.Lat, 1e-9)
	assert.InDelta(t, -41.43, resp.Center.Lng, 1e-9)
}

func TestHandleMarkersWhileLoading(t *testing.T) {
	f := newFixture(t)
	// Fresh store: no load published yet.
	h := NewMarkersHandler(f.cfg, f.reg, loader.NewStore(f.reg.Names()))

	rec := httptest.NewRecorder()
	h.HandleMarkers(rec, httptest.NewRequest("GET", "/api/markers", nil))
	require.Equal(t, 200, rec.Code)

	var resp MarkersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Ready)
	assert.Empty(t, resp.Markers)
	// Empty marker set falls back to the fixed coordinate.
	assert.Equal(t, f.cfg.FallbackLat, resp.Center.Lat)
	assert.Equal(t, f.cfg.FallbackLng, resp.Center.Lng)
}

func TestHandleCenter(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.markersH.HandleCenter(rec, httptest.NewRequest("GET", "/api/map/center", nil))
	require.Equal(t, 200, rec.Code)

	var resp CenterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, f.cfg.DefaultZoom, resp.Zoom)
	assert.InDelta(t, -15.725, resp.Center.Lat, 1e-9)
}
