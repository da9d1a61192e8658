package viewport

import (
	"testing"

	"taipamap/pkg/model"
)

func TestDefaultState(t *testing.T) {
	c := NewController()
	def := model.LatLng{Lat: -15.05, Lng: -41.40}

	v := c.View(def, 10)
	if v.Directed {
		t.Error("fresh controller should be in the Default state")
	}
	if v.ID != "" {
		t.Error("default view should carry no request id")
	}
	if v.Center != def || v.Zoom != 10 {
		t.Errorf("default view = %+v", v)
	}
}

func TestDirectOverwrites(t *testing.T) {
	c := NewController()
	def := model.LatLng{Lat: 0, Lng: 0}

	first := c.Direct(model.LatLng{Lat: -15.75, Lng: -41.41}, 13)
	v := c.View(def, 10)
	if !v.Directed || v.ID != first.ID {
		t.Fatalf("view should reflect the first request, got %+v", v)
	}
	if v.Center.Lat != -15.75 || v.Zoom != 13 {
		t.Errorf("view = %+v", v)
	}

	second := c.Direct(model.LatLng{Lat: -14.61, Lng: -41.14}, 13)
	if second.ID == first.ID {
		t.Error("each navigation action must mint a fresh request id")
	}
	v = c.View(def, 10)
	if v.ID != second.ID || v.Center.Lat != -14.61 {
		t.Errorf("second request should overwrite the first, got %+v", v)
	}
}

func TestViewStableBetweenDirections(t *testing.T) {
	c := NewController()
	def := model.LatLng{}

	c.Direct(model.LatLng{Lat: 1, Lng: 2}, 13)
	a := c.View(def, 10)
	b := c.View(def, 10)
	// Re-reads must not look like new requests, or the map would
	// re-animate on every render.
	if a.ID != b.ID {
		t.Error("view id must be stable while no new direction occurs")
	}
}

func TestNoTransitionBackToDefault(t *testing.T) {
	c := NewController()
	c.Direct(model.LatLng{Lat: 1, Lng: 2}, 13)
	if !c.Directed() {
		t.Fatal("controller should be Directed")
	}
	// There is no API to clear the request; it persists for the session.
	if v := c.View(model.LatLng{}, 10); !v.Directed {
		t.Error("Directed state must persist")
	}
}
