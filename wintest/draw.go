// Package wintest contains utility functions that help with testing
// text windows without a real display.
package wintest

import (
	"fmt"
	"image"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/rlwin/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

const (
	fwidth  = 12
	fheight = 24
)

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	mu          sync.Mutex
	drawops     []string
	screenimage draw.Image
	allocs      int
}

// NewDisplay returns a mock draw.Display whose screen image has bounds r.
func NewDisplay(r image.Rectangle) draw.Display {
	md := &mockDisplay{}
	md.screenimage = newimageimpl(md, "screen", draw.Notacolor, r)
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image { return d.screenimage }

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}
func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}
func (d *mockDisplay) Opaque() draw.Image {
	return newimageimpl(d, "opaque", draw.Opaque, image.Rectangle{})
}
func (d *mockDisplay) Transparent() draw.Image {
	return newimageimpl(d, "transparent", draw.Transparent, image.Rectangle{})
}
func (d *mockDisplay) InitKeyboard() *draw.Keyboardctl { return &draw.Keyboardctl{} }
func (d *mockDisplay) InitMouse() *draw.Mousectl       { return &draw.Mousectl{} }

// NB: the mock font is fixed width so recorded ops stay readable.
func (d *mockDisplay) OpenFont(name string) (draw.Font, error) {
	return NewFont(fwidth, fheight), nil
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	d.mu.Lock()
	d.allocs++
	n := d.allocs
	d.mu.Unlock()
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		n:    fmt.Sprintf("alloc%d", n),
		repl: repl,
	}, nil
}

func (d *mockDisplay) Attach(ref int) error { return nil }
func (d *mockDisplay) Flush() error         { return nil }

func (d *mockDisplay) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

func (d *mockDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

func (d *mockDisplay) record(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, op)
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r      image.Rectangle
	d      *mockDisplay
	n      string
	c      draw.Color
	repl   bool
	loaded int
}

func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

// NewImage returns a mock draw.Image with the given name and bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	d := display.(*mockDisplay)
	return newimageimpl(d, name, draw.Notacolor, r)
}

// Name returns the name a mock image was created with. Images that
// were not made by this package report "nil".
func Name(i draw.Image) string {
	if mi, ok := i.(*mockImage); ok {
		return mi.N()
	}
	return "nil"
}

// Loaded returns how many bytes of pixel data were loaded into i.
func Loaded(i draw.Image) int {
	if mi, ok := i.(*mockImage); ok {
		return mi.loaded
	}
	return 0
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return 0 }
func (i *mockImage) R() image.Rectangle    { return i.r }

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	i.d.record(fmt.Sprintf("%s <- draw r: %v src: %s mask: %s p1: %v",
		i.n, r, Name(src), Name(mask), p1))
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	i.d.record(fmt.Sprintf("%s <- string %q atpoint: %v fill: %s",
		i.n, string(b), pt, Name(src)))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	i.loaded += len(data)
	return len(data), nil
}

// N returns a nicename for the image.
func (i *mockImage) N() string {
	name := i.n
	if i.c != draw.Notacolor {
		name = fmt.Sprintf("%s-%08x", name, uint32(i.c))
	}
	if i.repl {
		name += ",tiled"
	}
	return name
}

var _ = draw.Font((*mockFont)(nil))

// mockFont implements draw.Font as a fixed width font.
type mockFont struct {
	width, height int
}

// NewFont returns a draw.Font that mocks a fixed-width font.
func NewFont(width, height int) draw.Font {
	return &mockFont{
		width:  width,
		height: height,
	}
}

const MockFontName = "/lib/font/bit/lucsans/euro.8.font"

func (f *mockFont) Name() string             { return MockFontName }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) RunesWidth(r []rune) int  { return f.width * len(r) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }
