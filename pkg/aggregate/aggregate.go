// Package aggregate derives render-ready values from a published snapshot.
// Everything here is a pure function of the current marker sequence,
// recomputed on request rather than cached.
package aggregate

import (
	"github.com/paulmach/orb"

	"taipamap/pkg/model"
)

// DefaultCenter returns the midpoint of the bounding box over all markers,
// min/max per axis, not a centroid. With no markers it returns the fixed
// fallback coordinate.
func DefaultCenter(markers []model.Marker, fallback model.LatLng) model.LatLng {
	if len(markers) == 0 {
		return fallback
	}

	mp := make(orb.MultiPoint, 0, len(markers))
	for _, m := range markers {
		mp = append(mp, orb.Point{m.Lng, m.Lat})
	}
	c := mp.Bound().Center()
	return model.LatLng{Lat: c.Lat(), Lng: c.Lon()}
}

// SourceCount is one legend entry: a source and how many markers it
// currently contributes.
type SourceCount struct {
	Name         string         `json:"name"`
	Municipality string         `json:"municipality"`
	Category     model.Category `json:"category"`
	Color        string         `json:"color"`
	Count        int            `json:"count"`
}

// Counts summarizes a snapshot per source, in registry order, for the
// viewer's legend. Failed sources show up with a zero count rather than
// disappearing.
func Counts(snap *model.Snapshot, sources []model.Source) []SourceCount {
	counts := make([]SourceCount, 0, len(sources))
	for _, src := range sources {
		counts = append(counts, SourceCount{
			Name:         src.Name,
			Municipality: src.Municipality,
			Category:     src.Category,
			Color:        src.Color,
			Count:        len(snap.BySource[src.Name]),
		})
	}
	return counts
}
