// Package asset loads the images a text window is decorated with and
// uploads them to the display.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // Register BMP decoder

	"github.com/rjkroege/rlwin/draw"
)

// ErrNotFound is returned when no file matches an asset name.
var ErrNotFound = errors.New("asset not found")

// Image size limits to prevent memory exhaustion.
const (
	MaxImageWidth  = 4096
	MaxImageHeight = 4096
)

// Extensions tried, in order, for names given without one.
var Extensions = []string{".png", ".bmp", ".PNG", ".BMP"}

// Surface is an uploaded image. Mask surfaces are only ever used as
// the mask argument of a draw.
type Surface struct {
	Name  string
	Image draw.Image
	Mask  bool
}

// Loader finds named assets in Dirs and uploads them to Display.
type Loader struct {
	Display draw.Display
	Dirs    []string
}

// NewLoader returns a Loader searching dirs in order.
func NewLoader(d draw.Display, dirs ...string) *Loader {
	return &Loader{Display: d, Dirs: dirs}
}

// Find returns the path of the file holding asset name.
func (l *Loader) Find(name string) (string, error) {
	cands := []string{name}
	if filepath.Ext(name) == "" {
		cands = cands[:0]
		for _, ext := range Extensions {
			cands = append(cands, name+ext)
		}
	}
	for _, dir := range l.Dirs {
		for _, c := range cands {
			p := filepath.Join(dir, c)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Load finds, decodes and uploads asset name.
func (l *Loader) Load(name string, mask bool) (*Surface, error) {
	path, err := l.Find(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	di, err := Upload(l.Display, img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("asset: loaded %s %v mask=%v", path, di.R(), mask)
	return &Surface{Name: name, Image: di, Mask: mask}, nil
}

// Decode reads a PNG or BMP image and checks its size.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > MaxImageWidth || b.Dy() > MaxImageHeight {
		return nil, fmt.Errorf("image too large: %dx%d (max %dx%d)",
			b.Dx(), b.Dy(), MaxImageWidth, MaxImageHeight)
	}
	return img, nil
}

// Upload copies img into a new display image anchored at the origin.
func Upload(d draw.Display, img image.Image) (draw.Image, error) {
	b := img.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	di, err := d.AllocImage(r, draw.ARGB32, false, draw.Transparent)
	if err != nil {
		return nil, err
	}
	if _, err := di.Load(r, Pixels(img)); err != nil {
		di.Free()
		return nil, err
	}
	return di, nil
}

// Pixels converts img to ARGB32 data: premultiplied B, G, R, A bytes
// for each pixel, row by row.
func Pixels(img image.Image) []byte {
	b := img.Bounds()
	data := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			data = append(data, byte(bl>>8), byte(g>>8), byte(r>>8), byte(a>>8))
		}
	}
	return data
}
