package wind

import (
	"image"
	"log"

	"github.com/rjkroege/rlwin/draw"
)

// colourImage returns a replicated image of colour c, allocating it
// on first use.
func (w *TextWindow) colourImage(dst draw.Image, c draw.Color) draw.Image {
	if img, ok := w.colours[c]; ok {
		return img
	}
	d := w.display
	if d == nil {
		d = dst.Display()
	}
	img, err := draw.ColourImage(d, c)
	if err != nil {
		log.Printf("wind: colour %08x: %v", uint32(c), err)
		return nil
	}
	w.colours[c] = img
	return img
}

// at places img with its top-left corner at pt.
func at(img draw.Image, pt image.Point) image.Rectangle {
	r := img.R()
	return r.Sub(r.Min).Add(pt)
}

// Render draws the window frame, its buttons and any selection items.
// A hidden window draws nothing.
func (w *TextWindow) Render(dst draw.Image) {
	if dst == nil || !w.interactive() {
		return
	}
	box := w.BoxRect().Min
	if w.wakuBacking != nil {
		c := draw.WithAlpha(w.cfg.Attr.Colour, uint8(w.cfg.Attr.Colour&0xFF))
		if fill := w.colourImage(dst, c); fill != nil {
			dst.Draw(at(w.wakuBacking, box), fill, w.wakuBacking, w.wakuBacking.R().Min)
		}
	}
	if w.wakuMain != nil {
		dst.Draw(at(w.wakuMain, box), w.wakuMain, w.wakuMain, w.wakuMain.R().Min)
	}
	w.RenderButtons(dst)
	w.renderSelection(dst)
}

// RenderButtons draws the buttons from the waku button strip.
func (w *TextWindow) RenderButtons(dst draw.Image) {
	if !w.interactive() {
		return
	}
	w.buttons.Render(dst, w.wakuButtons, w.BoxRect())
}

func (w *TextWindow) renderSelection(dst draw.Image) {
	if !w.sel.active || w.font == nil {
		return
	}
	for _, e := range w.sel.elements {
		c := w.cfg.DefaultColour
		if e.hover {
			c = draw.Paleyellow
		}
		if fill := w.colourImage(dst, c); fill != nil {
			dst.Bytes(e.r.Min, fill, image.Point{}, w.font, []byte(e.text))
		}
	}
}

// DisplayChar draws r at the cursor in the current colour and advances
// the cursor by width.
func (w *TextWindow) DisplayChar(dst draw.Image, r rune, width int) {
	s := string(r)
	if dst != nil && w.font != nil {
		if fill := w.colourImage(dst, w.layout.FontColour()); fill != nil {
			pt := w.rects.Text.Min.Add(w.layout.Insertion())
			dst.Bytes(pt, fill, image.Point{}, w.font, []byte(s))
		}
	}
	w.layout.Advance(width, s)
}
