package model

import (
	"strings"

	"github.com/google/uuid"
)

// Category classifies the documentation state of a building record.
type Category string

const (
	CategoryTotal   Category = "total"   // fully documented earthen construction
	CategoryDuvida  Category = "duvida"  // uncertain attribution
	CategoryParcial Category = "parcial" // partially earthen construction
	CategoryRuinas  Category = "ruinas"  // ruin
)

// Categories lists all categories in display order.
var Categories = []Category{CategoryTotal, CategoryDuvida, CategoryParcial, CategoryRuinas}

// categoryColors maps each category to its fixed marker color.
var categoryColors = map[Category]string{
	CategoryTotal:   "#2e7d32",
	CategoryDuvida:  "#1565c0",
	CategoryParcial: "#f9a825",
	CategoryRuinas:  "#c62828",
}

// categoryLabels maps each category to its human-readable label.
var categoryLabels = map[Category]string{
	CategoryTotal:   "Taipa total",
	CategoryDuvida:  "Em dúvida",
	CategoryParcial: "Taipa parcial",
	CategoryRuinas:  "Ruínas",
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	_, ok := categoryColors[c]
	return ok
}

// Color returns the fixed display color for the category.
func (c Category) Color() string {
	return categoryColors[c]
}

// Label returns the human-readable label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Source is one (municipality, category) data unit: one coordinate table
// plus one photo directory. Immutable after registry construction.
type Source struct {
	Name         string   `json:"name"` // unique, e.g. "tremedal-total"
	Municipality string   `json:"municipality"`
	Table        string   `json:"table"`     // coordinate table path, relative to the data dir
	PhotoDir     string   `json:"photo_dir"` // photo directory, relative to the data dir
	Category     Category `json:"category"`
	Color        string   `json:"color"`
}

// Row is one validated record from a source's coordinate table.
type Row struct {
	Lng   float64 `json:"lng"`
	Lat   float64 `json:"lat"`
	Photo string  `json:"photo"`
}

// Marker is a valid Row annotated with its owning source.
type Marker struct {
	Row
	Source   string   `json:"source"`
	PhotoDir string   `json:"photo_dir"`
	Category Category `json:"category"`
	Color    string   `json:"color"`
}

// LatLng is a geographic coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ViewportRequest is an explicit (center, zoom) override requested via a
// navigation control. The ID changes on every new request so clients can
// apply the view exactly once per request.
type ViewportRequest struct {
	ID     string `json:"id"`
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// Snapshot is one published load result: one entry per source, replaced
// wholesale when a load completes. Order preserves registry declaration
// order so overlapping markers stack deterministically.
type Snapshot struct {
	ID       string
	Ready    bool
	Order    []string
	BySource map[string][]Marker
}

// NewSnapshot creates an empty, not-yet-ready snapshot for the given
// source order.
func NewSnapshot(order []string) *Snapshot {
	by := make(map[string][]Marker, len(order))
	for _, name := range order {
		by[name] = nil
	}
	return &Snapshot{
		ID:       uuid.NewString(),
		Order:    append([]string(nil), order...),
		BySource: by,
	}
}

// Markers flattens the snapshot into one sequence, source declaration
// order first, file row order within a source.
func (s *Snapshot) Markers() []Marker {
	var out []Marker
	for _, name := range s.Order {
		out = append(out, s.BySource[name]...)
	}
	return out
}

// NormalizePhoto strips surrounding whitespace and quotation characters
// from a photo identifier. The coordinate tables sometimes quote the
// Name column, so this runs before validation.
func NormalizePhoto(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
