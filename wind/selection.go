package wind

import "image"

// selection is the choice overlay shown on top of the window text.
type selection struct {
	active   bool
	nextID   int
	callback func(int)
	elements []*SelectionElement
}

// SelectionElement is one choice of the overlay.
type SelectionElement struct {
	id   int
	text string
	r    image.Rectangle

	hover   bool
	pressed bool

	w *TextWindow
}

func (e *SelectionElement) ID() int               { return e.id }
func (e *SelectionElement) Text() string          { return e.text }
func (e *SelectionElement) Rect() image.Rectangle { return e.r }
func (e *SelectionElement) Hover() bool           { return e.hover }

func (e *SelectionElement) setMousePosition(pt image.Point) {
	e.hover = pt.In(e.r)
}

func (e *SelectionElement) handleMouseClick(pt image.Point, pressed, act bool) bool {
	in := pt.In(e.r)
	if pressed {
		if in {
			e.pressed = true
		}
		return in
	}
	was := e.pressed
	e.pressed = false
	if !in {
		return false
	}
	if act && was {
		if cb := e.w.sel.callback; cb != nil {
			cb(e.id)
		}
	}
	return true
}

// handleMouseClick gives a press to the first element under pt. A
// release reaches every element and the first one under pt acts.
func (s *selection) handleMouseClick(pt image.Point, pressed bool) bool {
	claimed := false
	for _, e := range s.elements {
		if e.handleMouseClick(pt, pressed, !claimed) {
			claimed = true
			if pressed {
				break
			}
		}
	}
	return claimed
}

// StartSelectionMode shows the choice overlay. Ids restart from 0.
func (w *TextWindow) StartSelectionMode() {
	w.sel.active = true
	w.sel.nextID = 0
}

func (w *TextWindow) InSelectionMode() bool { return w.sel.active }

// SetSelectionCallback sets the function called with the chosen id.
func (w *TextWindow) SetSelectionCallback(cb func(int)) {
	w.sel.callback = cb
}

func (w *TextWindow) SelectionCallback() func(int) { return w.sel.callback }

// SelectionElements returns the choices in the order they were added.
func (w *TextWindow) SelectionElements() []*SelectionElement {
	return w.sel.elements
}

// AddSelectionItem lays out a choice of the given width on its own
// line at the cursor and returns its id.
func (w *TextWindow) AddSelectionItem(text string, width int) int {
	p := w.cfg.Geometry
	min := w.rects.Text.Min.Add(w.layout.Insertion())
	e := &SelectionElement{
		id:   w.sel.nextID,
		text: text,
		r:    image.Rectangle{Min: min, Max: min.Add(image.Pt(width, p.FontSize+p.Spacing.Y))},
		w:    w,
	}
	w.sel.nextID++
	w.sel.elements = append(w.sel.elements, e)

	w.layout.Advance(width, text)
	w.layout.HardBreak()
	return e.id
}

// EndSelectionMode removes the overlay and clears the window. It is
// safe to call when no selection is showing.
func (w *TextWindow) EndSelectionMode() {
	w.sel.active = false
	w.sel.callback = nil
	w.sel.elements = nil
	w.ClearWin()
}
