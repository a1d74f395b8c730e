package wintest

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/rlwin/draw"
)

func TestMockImageImplementsInterface(t *testing.T) {
	var _ draw.Image = (*mockImage)(nil)
}

func TestMockDisplayRecordsDraws(t *testing.T) {
	display := NewDisplay(image.Rect(0, 0, 640, 480))
	src := NewImage(display, "waku", image.Rect(0, 0, 10, 10))
	display.ScreenImage().Draw(image.Rect(1, 2, 3, 4), src, nil, image.Pt(5, 6))

	want := []string{
		"screen <- draw r: (1,2)-(3,4) src: waku mask: nil p1: (5,6)",
	}
	gdo := display.(GettableDrawOps)
	if diff := cmp.Diff(want, gdo.DrawOps()); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
	gdo.Clear()
	if got := len(gdo.DrawOps()); got != 0 {
		t.Errorf("Clear left %d ops", got)
	}
}

func TestMockImageLoad(t *testing.T) {
	display := NewDisplay(image.Rect(0, 0, 100, 100))
	img, err := display.AllocImage(image.Rect(0, 0, 2, 2), 0, false, draw.Notacolor)
	if err != nil {
		t.Fatalf("AllocImage: %v", err)
	}
	n, err := img.Load(img.R(), make([]byte, 16))
	if err != nil {
		t.Errorf("Load returned error: %v", err)
	}
	if n != 16 || Loaded(img) != 16 {
		t.Errorf("Load got %d (loaded %d), want 16", n, Loaded(img))
	}
}

func TestMockFontWidths(t *testing.T) {
	f := NewFont(10, 20)
	if got, want := f.StringWidth("日本a"), 30; got != want {
		t.Errorf("StringWidth got %d want %d", got, want)
	}
	if got, want := f.Height(), 20; got != want {
		t.Errorf("Height got %d want %d", got, want)
	}
}
