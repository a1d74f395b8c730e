package asset

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/rlwin/wintest"
)

func writePNG(t *testing.T, dir, name string, img image.Image) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})
	img.Set(1, 0, color.NRGBA{R: 0xFF, G: 0, B: 0, A: 0})

	want := []byte{0x30, 0x20, 0x10, 0xFF, 0, 0, 0, 0}
	if diff := cmp.Diff(want, Pixels(img)); diff != "" {
		t.Errorf("Pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "waku.png", image.NewRGBA(image.Rect(0, 0, 4, 3)))

	display := wintest.NewDisplay(image.Rect(0, 0, 640, 480))
	l := NewLoader(display, t.TempDir(), dir)

	s, err := l.Load("waku", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Mask || s.Name != "waku" {
		t.Errorf("surface got %+v", s)
	}
	if got, want := s.Image.R(), image.Rect(0, 0, 4, 3); got != want {
		t.Errorf("R got %v want %v", got, want)
	}
	if got, want := wintest.Loaded(s.Image), 4*3*4; got != want {
		t.Errorf("loaded %d bytes want %d", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	l := NewLoader(wintest.NewDisplay(image.Rect(0, 0, 1, 1)), t.TempDir())
	if _, err := l.Load("nothing", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v want ErrNotFound", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(wintest.NewDisplay(image.Rect(0, 0, 1, 1)), dir)
	if _, err := l.Load("bad.png", false); err == nil {
		t.Error("garbage decoded")
	}
}
