package button

import (
	"image"
	"time"

	"github.com/rjkroege/rlwin/draw"
)

// State selects which pattern of the button strip is drawn. The value
// is the offset from the button's PatternBase.
type State int

const (
	Normal State = iota
	Hover
	Pressed
	Activated
)

// Descriptor is one registered button.
type Descriptor struct {
	ID       ID
	Use      bool // the game enables this button
	Location Location
	Behavior Behavior

	hover   bool
	pressed bool
}

func (d *Descriptor) live() bool {
	return d.Use && d.Behavior != nil && !d.Location.Empty()
}

func (d *Descriptor) acceptsInput() bool {
	if !d.live() {
		return false
	}
	if t, ok := d.Behavior.(*Toggle); ok {
		return t.enabled
	}
	return true
}

// State returns the visual state of the button.
func (d *Descriptor) State() State {
	if !d.acceptsInput() {
		return Normal
	}
	switch {
	case d.pressed:
		return Pressed
	case d.hover:
		return Hover
	}
	if t, ok := d.Behavior.(*Toggle); ok && t.activated {
		return Activated
	}
	return Normal
}

func (d *Descriptor) execute(now time.Time) {
	if !d.live() {
		return
	}
	switch b := d.Behavior.(type) {
	case *Hold:
		b.poll(now)
	case *Momentary, *Toggle:
	}
}

func (d *Descriptor) setMousePosition(box image.Rectangle, pt image.Point) {
	d.hover = d.acceptsInput() && pt.In(d.Location.Rect(box))
}

func (d *Descriptor) press(box image.Rectangle, pt image.Point, now time.Time) bool {
	if !d.acceptsInput() || !pt.In(d.Location.Rect(box)) {
		return false
	}
	d.pressed = true
	if h, ok := d.Behavior.(*Hold); ok {
		h.press(now)
	}
	return true
}

// release ends any press of d wherever the pointer is. It reports
// whether pt is over d. The button acts only when act is set and the
// press started on it.
func (d *Descriptor) release(box image.Rectangle, pt image.Point, act bool) bool {
	wasPressed := d.pressed
	d.pressed = false
	if h, ok := d.Behavior.(*Hold); ok {
		h.release()
	}
	if !d.acceptsInput() || !pt.In(d.Location.Rect(box)) {
		return false
	}
	if act && wasPressed {
		switch b := d.Behavior.(type) {
		case *Momentary:
			if b.Action != nil {
				b.Action()
			}
		case *Toggle:
			b.click()
		}
	}
	return true
}

func (d *Descriptor) render(dst, strip draw.Image, box image.Rectangle) {
	if !d.live() {
		return
	}
	r := d.Location.Rect(box)
	pattern := d.ID.PatternBase() + int(d.State())
	dst.Draw(r, strip, strip, image.Pt(pattern*d.Location.W, 0))
}

// Registry holds the buttons of one window.
type Registry struct {
	buttons map[ID]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{buttons: make(map[ID]*Descriptor)}
}

// Set registers d under d.ID, replacing any previous button.
func (r *Registry) Set(d *Descriptor) {
	r.buttons[d.ID] = d
}

// Get returns the button registered as id.
func (r *Registry) Get(id ID) (*Descriptor, bool) {
	d, ok := r.buttons[id]
	return d, ok
}

// Toggle returns the toggle behaviour of button id, if it has one.
func (r *Registry) Toggle(id ID) (*Toggle, bool) {
	d, ok := r.buttons[id]
	if !ok {
		return nil, false
	}
	t, ok := d.Behavior.(*Toggle)
	return t, ok
}

// each visits the registered buttons in ID order until fn returns true.
func (r *Registry) each(fn func(*Descriptor) bool) bool {
	for id := ID(0); id < NumIDs; id++ {
		if d, ok := r.buttons[id]; ok && fn(d) {
			return true
		}
	}
	return false
}

// Execute gives time driven buttons a chance to fire.
func (r *Registry) Execute(now time.Time) {
	r.each(func(d *Descriptor) bool {
		d.execute(now)
		return false
	})
}

// SetMousePosition updates hover state. box is the window box.
func (r *Registry) SetMousePosition(box image.Rectangle, pt image.Point) {
	r.each(func(d *Descriptor) bool {
		d.setMousePosition(box, pt)
		return false
	})
}

// HandleMouseClick offers the click to each button in order and
// reports whether one claimed it. A press goes to the first button
// under pt. A release reaches every button so none stays held; only the
// first one under pt acts on it.
func (r *Registry) HandleMouseClick(box image.Rectangle, pt image.Point, pressed bool, now time.Time) bool {
	if pressed {
		return r.each(func(d *Descriptor) bool {
			return d.press(box, pt, now)
		})
	}
	claimed := false
	r.each(func(d *Descriptor) bool {
		if d.release(box, pt, !claimed) {
			claimed = true
		}
		return false
	})
	return claimed
}

// Release ends every press without acting on it.
func (r *Registry) Release() {
	r.each(func(d *Descriptor) bool {
		d.pressed = false
		if h, ok := d.Behavior.(*Hold); ok {
			h.release()
		}
		return false
	})
}

// Render draws every live button from the strip image onto dst.
func (r *Registry) Render(dst, strip draw.Image, box image.Rectangle) {
	if dst == nil || strip == nil {
		return
	}
	r.each(func(d *Descriptor) bool {
		d.render(dst, strip, box)
		return false
	})
}
