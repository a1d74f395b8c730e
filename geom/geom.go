// Package geom resolves where a text window sits on the screen.
//
// A window is described by an origin corner, a distance from that
// corner, the padding around its text and its size in characters.
// Everything here is a pure function of those values.
package geom

import (
	"errors"
	"fmt"
	"image"
	"strconv"
)

// ErrConfiguration reports a malformed window configuration entry.
var ErrConfiguration = errors.New("configuration error")

// Origin names the screen corner a window is positioned from.
type Origin int

const (
	TopLeft Origin = iota
	TopRight
	BottomLeft
	BottomRight
)

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return "Origin#" + strconv.Itoa(int(o))
	}
}

// Valid reports whether o is one of the four corners.
func (o Origin) Valid() bool { return o >= TopLeft && o <= BottomRight }

func (o Origin) right() bool  { return o == TopRight || o == BottomRight }
func (o Origin) bottom() bool { return o == BottomLeft || o == BottomRight }

// Padding is the space between the box edge and the text region.
type Padding struct {
	Top, Bottom, Left, Right int
}

// Params holds the configuration the resolver needs.
type Params struct {
	Screen   image.Point // screen size in pixels
	Origin   Origin
	Distance image.Point // distance from the origin corner
	Padding  Padding
	Chars    image.Point // window size in characters
	FontSize int
	Spacing  image.Point // extra pixels between characters and lines
	RubySize int
}

// LineHeight is the vertical advance of one text row.
func (p Params) LineHeight() int { return p.FontSize + p.Spacing.Y + p.RubySize }

// WindowSize is the pixel size of the text region, including the
// right and bottom padding.
func (p Params) WindowSize() image.Point {
	return image.Pt(
		p.Chars.X*(p.FontSize+p.Spacing.X)+p.Padding.Right,
		p.Chars.Y*p.LineHeight()+p.Padding.Bottom,
	)
}

// Rects are the absolute positions of a window.
type Rects struct {
	Box  image.Point     // top left of the decorative box
	Text image.Rectangle // text region
}

// BoxRect is the rectangle covered by the decorative box.
func (r Rects) BoxRect() image.Rectangle {
	return image.Rectangle{Min: r.Box, Max: r.Text.Max}
}

// Resolve computes the box and text positions for p.
func Resolve(p Params) (Rects, error) {
	if !p.Origin.Valid() {
		return Rects{}, fmt.Errorf("%w: invalid origin %d", ErrConfiguration, int(p.Origin))
	}
	size := p.WindowSize()

	var box, text image.Point
	if p.Origin.right() {
		text.X = p.Screen.X - p.Distance.X - size.X
		box.X = text.X - p.Padding.Left
	} else {
		box.X = p.Distance.X
		text.X = p.Distance.X + p.Padding.Left
	}
	if p.Origin.bottom() {
		text.Y = p.Screen.Y - p.Distance.Y - size.Y
		box.Y = text.Y - p.Padding.Top
	} else {
		box.Y = p.Distance.Y
		text.Y = p.Distance.Y + p.Padding.Top
	}

	return Rects{
		Box:  box,
		Text: image.Rectangle{Min: text, Max: text.Add(size)},
	}, nil
}

// Keycursor placement kinds.
const (
	KeycursorTextEnd   = 0 // bottom right of the text region
	KeycursorInsertion = 1 // at the insertion point
	KeycursorOffset    = 2 // fixed offset from the text region origin
)

// KeycursorPosition returns where the keycursor is drawn. Insertion is
// relative to the text region origin.
func KeycursorPosition(kind int, offset image.Point, text image.Rectangle, insertion image.Point) (image.Point, error) {
	switch kind {
	case KeycursorTextEnd:
		return text.Max, nil
	case KeycursorInsertion:
		return text.Min.Add(insertion), nil
	case KeycursorOffset:
		return text.Min.Add(offset), nil
	default:
		return image.Point{}, fmt.Errorf("%w: invalid keycursor type %d", ErrConfiguration, kind)
	}
}
