package button

import "time"

// DefaultHoldInterval is how often a held button repeats.
const DefaultHoldInterval = 250 * time.Millisecond

// Behavior is what a button does when used. It is one of *Momentary,
// *Hold or *Toggle.
type Behavior interface {
	behavior()
}

// Momentary runs Action once per click.
type Momentary struct {
	Action func()
}

func (*Momentary) behavior() {}

// Hold runs Action repeatedly while the button is held down.
type Hold struct {
	Action   func()
	Interval time.Duration

	held bool
	last time.Time // time the last repeat was due
}

func (*Hold) behavior() {}

// Held reports whether the button is currently held down.
func (h *Hold) Held() bool { return h.held }

func (h *Hold) interval() time.Duration {
	if h.Interval <= 0 {
		return DefaultHoldInterval
	}
	return h.Interval
}

func (h *Hold) press(now time.Time) {
	h.held = true
	h.last = now
}

func (h *Hold) release() { h.held = false }

// maxCatchUp is the most repeats one poll makes up for. A poll later
// than that fires once and restarts the period.
const maxCatchUp = 4

// poll fires once for every whole interval that elapsed since the
// last repeat. A press shorter than one interval never fires.
func (h *Hold) poll(now time.Time) {
	if !h.held {
		return
	}
	iv := h.interval()
	n := int(now.Sub(h.last) / iv)
	if n > maxCatchUp {
		n = 1
		h.last = now
	} else {
		h.last = h.last.Add(time.Duration(n) * iv)
	}
	for ; n > 0; n-- {
		if h.Action != nil {
			h.Action()
		}
	}
}

// Toggle mirrors an on/off state owned elsewhere. Clicking asks the
// owner to flip it; the owner reports back through SetActivated.
type Toggle struct {
	OnActivate   func()
	OnDeactivate func()

	activated bool
	enabled   bool
}

func (*Toggle) behavior() {}

// NewToggle returns an enabled, deactivated toggle.
func NewToggle(on, off func()) *Toggle {
	return &Toggle{OnActivate: on, OnDeactivate: off, enabled: true}
}

func (t *Toggle) Activated() bool { return t.activated }
func (t *Toggle) Enabled() bool   { return t.enabled }

// SetActivated pushes the externally owned state into the button.
func (t *Toggle) SetActivated(on bool) { t.activated = on }

// SetEnabled allows or forbids interaction.
func (t *Toggle) SetEnabled(on bool) { t.enabled = on }

func (t *Toggle) click() {
	if t.activated {
		if t.OnDeactivate != nil {
			t.OnDeactivate()
		}
		return
	}
	if t.OnActivate != nil {
		t.OnActivate()
	}
}
