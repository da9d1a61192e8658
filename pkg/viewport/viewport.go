// Package viewport tracks the "requested view" state machine. The view is
// Default (computed center at a fixed zoom) until a navigation action
// directs it; each direction overwrites the previous request and there is
// no user-facing way back to Default.
package viewport

import (
	"sync"

	"github.com/google/uuid"

	"taipamap/pkg/model"
)

// View is what the map should currently display. Directed views carry the
// request id so clients can apply a given request exactly once; default
// views have no id.
type View struct {
	ID       string       `json:"id,omitempty"`
	Center   model.LatLng `json:"center"`
	Zoom     int          `json:"zoom"`
	Directed bool         `json:"directed"`
}

// Controller holds the active viewport request for the session. Single
// writer at a time: navigation handlers.
type Controller struct {
	mu     sync.Mutex
	active *model.ViewportRequest
}

// NewController starts in the Default state.
func NewController() *Controller {
	return &Controller{}
}

// Direct records a navigation action. It always overwrites the active
// request and mints a fresh id, so Directed→Directed with the same
// coordinates is still a new request (the map re-centers if the user
// panned away).
func (c *Controller) Direct(center model.LatLng, zoom int) model.ViewportRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = &model.ViewportRequest{
		ID:     uuid.NewString(),
		Center: center,
		Zoom:   zoom,
	}
	return *c.active
}

// View returns the active request, or a default view built from the given
// center and zoom when no navigation has happened yet.
func (c *Controller) View(defaultCenter model.LatLng, defaultZoom int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return View{Center: defaultCenter, Zoom: defaultZoom}
	}
	return View{
		ID:       c.active.ID,
		Center:   c.active.Center,
		Zoom:     c.active.Zoom,
		Directed: true,
	}
}

// Directed reports whether a navigation action has occurred.
func (c *Controller) Directed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}
