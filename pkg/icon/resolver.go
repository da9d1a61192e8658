package icon

import (
	"fmt"

	"taipamap/pkg/model"
)

// Resolver maps sources to their category's pre-built pin. Lookups are
// O(1) and never construct a new pin per marker.
type Resolver struct {
	byCategory map[model.Category]*Icon
	bySource   map[string]*Icon
	fallback   *Icon
}

// NewResolver builds the four category pins once and wires every source
// to its category's pin. The designated default source's pin serves as the
// fallback for unknown source names.
func NewResolver(sources []model.Source, defaultSource string) (*Resolver, error) {
	r := &Resolver{
		byCategory: make(map[model.Category]*Icon, len(model.Categories)),
		bySource:   make(map[string]*Icon, len(sources)),
	}

	for _, cat := range model.Categories {
		ic, err := Render(string(cat), cat.Color())
		if err != nil {
			return nil, err
		}
		r.byCategory[cat] = ic
	}

	for _, src := range sources {
		ic, ok := r.byCategory[src.Category]
		if !ok {
			return nil, fmt.Errorf("source %q has unknown category %q", src.Name, src.Category)
		}
		r.bySource[src.Name] = ic
	}

	fb, ok := r.bySource[defaultSource]
	if !ok {
		return nil, fmt.Errorf("default source %q not in registry", defaultSource)
	}
	r.fallback = fb
	return r, nil
}

// ForSource returns the pin for the given source name, falling back to
// the default source's pin rather than failing to render.
func (r *Resolver) ForSource(name string) *Icon {
	if ic, ok := r.bySource[name]; ok {
		return ic
	}
	return r.fallback
}

// ForCategory returns the pin built for the given category.
func (r *Resolver) ForCategory(cat model.Category) (*Icon, bool) {
	ic, ok := r.byCategory[cat]
	return ic, ok
}
