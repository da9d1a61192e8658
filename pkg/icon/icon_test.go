package icon

import (
	"bytes"
	"image/png"
	"testing"

	"taipamap/pkg/model"
)

func testSources() []model.Source {
	return []model.Source{
		{Name: "a-total", Category: model.CategoryTotal},
		{Name: "b-total", Category: model.CategoryTotal},
		{Name: "a-ruinas", Category: model.CategoryRuinas},
	}
}

func TestRenderProducesDecodablePNG(t *testing.T) {
	ic, err := Render("total", "#2e7d32")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(ic.PNG))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Errorf("icon bounds = %v, want %dx%d", b, Size, Size)
	}
}

func TestRenderRejectsBadColor(t *testing.T) {
	if _, err := Render("total", "green"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestResolverSharedPerCategory(t *testing.T) {
	r, err := NewResolver(testSources(), "a-total")
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}

	// Two sources sharing a category share the same built pin, by
	// reference, not merely equal bytes.
	if r.ForSource("a-total") != r.ForSource("b-total") {
		t.Error("sources of the same category should share one pin instance")
	}
	if r.ForSource("a-total") == r.ForSource("a-ruinas") {
		t.Error("different categories should have different pins")
	}
}

func TestResolverFallback(t *testing.T) {
	r, err := NewResolver(testSources(), "a-total")
	if err != nil {
		t.Fatal(err)
	}
	if r.ForSource("never-registered") != r.ForSource("a-total") {
		t.Error("unknown source should fall back to the default source's pin")
	}
}

func TestResolverRejectsUnknownDefault(t *testing.T) {
	if _, err := NewResolver(testSources(), "missing"); err == nil {
		t.Error("expected error for unknown default source")
	}
}
