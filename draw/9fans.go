package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Black       = draw.Black
	Notacolor   = draw.Notacolor
	Opaque      = draw.Opaque
	Paleyellow  = draw.Paleyellow
	Refnone     = draw.Refnone
	Transparent = draw.Transparent
	White       = draw.White
)

// Pix constants for pixel formats.
var (
	RGBA32 = draw.RGBA32
	RGB24  = draw.RGB24
	ARGB32 = draw.ARGB32
)

type (
	Color       = draw.Color
	drawDisplay = draw.Display
	drawFont    = draw.Font
	drawImage   = draw.Image
	Keyboardctl = draw.Keyboardctl
	Mousectl    = draw.Mousectl
	Mouse       = draw.Mouse
	Pix         = draw.Pix
)

var Init = draw.Init

// NewDisplay opens a display on the local devdraw and wraps it.
func NewDisplay(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}
