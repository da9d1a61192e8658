// Package registry builds the static source registry: one data source per
// (municipality, category) combination, created once at startup and never
// mutated afterwards.
package registry

import (
	"fmt"
	"strings"

	"taipamap/pkg/config"
	"taipamap/pkg/model"
)

// Municipality is one navigation preset exposed to the viewer.
type Municipality struct {
	Name   string       `json:"name"`
	Center model.LatLng `json:"center"`
	Zoom   int          `json:"zoom"`
}

// Registry holds the immutable source list in declaration order.
type Registry struct {
	sources        []model.Source
	byName         map[string]model.Source
	municipalities []Municipality
}

// New builds a registry from the sources configuration. Category keys that
// are not one of the four known categories, or duplicate source names, are
// configuration errors.
func New(cfg *config.SourcesConfig, directZoom int) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]model.Source),
	}

	for _, m := range cfg.Municipalities {
		zoom := m.Zoom
		if zoom == 0 {
			zoom = directZoom
		}
		r.municipalities = append(r.municipalities, Municipality{
			Name:   m.Name,
			Center: model.LatLng{Lat: m.Lat, Lng: m.Lng},
			Zoom:   zoom,
		})

		// Fixed category order keeps marker z-order deterministic
		// across restarts regardless of YAML map iteration.
		for _, cat := range model.Categories {
			sc, ok := m.Sources[string(cat)]
			if !ok {
				continue
			}
			src := model.Source{
				Name:         Slug(m.Name) + "-" + string(cat),
				Municipality: m.Name,
				Table:        sc.Table,
				PhotoDir:     sc.Photos,
				Category:     cat,
				Color:        cat.Color(),
			}
			if _, dup := r.byName[src.Name]; dup {
				return nil, fmt.Errorf("duplicate source name %q", src.Name)
			}
			r.byName[src.Name] = src
			r.sources = append(r.sources, src)
		}

		// Anything left in the map is an unknown category key.
		for key := range m.Sources {
			if !model.Category(key).Valid() {
				return nil, fmt.Errorf("municipality %q: unknown category %q", m.Name, key)
			}
		}
	}

	if len(r.sources) == 0 {
		return nil, fmt.Errorf("registry has no sources")
	}
	return r, nil
}

// Sources returns all sources in declaration order.
func (r *Registry) Sources() []model.Source {
	return r.sources
}

// Names returns the source names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name
	}
	return names
}

// ByName returns the source with the given name.
func (r *Registry) ByName(name string) (model.Source, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Default returns the designated fallback source (the first declared one).
func (r *Registry) Default() model.Source {
	return r.sources[0]
}

// Municipalities returns the navigation presets in declaration order.
func (r *Registry) Municipalities() []Municipality {
	return r.municipalities
}

// Municipality returns the preset with the given name (case-insensitive).
func (r *Registry) Municipality(name string) (Municipality, bool) {
	for _, m := range r.municipalities {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Municipality{}, false
}

// Slug lowercases a municipality name and replaces spaces, for use in
// source names and URLs.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
