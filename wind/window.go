// Package wind implements the text window of the player: its geometry,
// text cursor, buttons and the selection overlay shown for choices.
package wind

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/rjkroege/rlwin/asset"
	"github.com/rjkroege/rlwin/button"
	"github.com/rjkroege/rlwin/draw"
	"github.com/rjkroege/rlwin/geom"
)

// Actions are the engine operations the window's buttons trigger. Nil
// entries are ignored.
type Actions struct {
	ToggleInterfaceHidden func()
	BackPage              func()
	ForwardPage           func()
	SetSkipMode           func(on bool)
	SetAutoMode           func(on bool)
	ExButton              func(n int, call []int)
}

func (a Actions) toggleInterfaceHidden() {
	if a.ToggleInterfaceHidden != nil {
		a.ToggleInterfaceHidden()
	}
}

func (a Actions) backPage() {
	if a.BackPage != nil {
		a.BackPage()
	}
}

func (a Actions) forwardPage() {
	if a.ForwardPage != nil {
		a.ForwardPage()
	}
}

func (a Actions) setSkipMode(on bool) {
	if a.SetSkipMode != nil {
		a.SetSkipMode(on)
	}
}

func (a Actions) setAutoMode(on bool) {
	if a.SetAutoMode != nil {
		a.SetAutoMode(on)
	}
}

func (a Actions) exButton(n int, call []int) {
	if a.ExButton != nil {
		a.ExButton(n, call)
	}
}

// TextWindow is one of the game's numbered text windows.
type TextWindow struct {
	num   int
	cfg   Config
	rects geom.Rects

	layout  *LayoutState
	buttons *button.Registry
	actions Actions

	readJump *button.Toggle
	autoMode *button.Toggle

	clock   func() time.Time
	display draw.Display
	font    draw.Font
	colours map[draw.Color]draw.Image

	wakuMain    draw.Image
	wakuBacking draw.Image
	wakuButtons draw.Image

	visible         bool
	interfaceHidden bool

	name    string
	nameMod int

	sel selection
}

// OptionClosure configures a TextWindow at construction.
type OptionClosure func(*TextWindow)

// OptClock sets the time source for held buttons.
func OptClock(clock func() time.Time) OptionClosure {
	return func(w *TextWindow) {
		w.clock = clock
	}
}

// OptFont sets the font used to draw text.
func OptFont(f draw.Font) OptionClosure {
	return func(w *TextWindow) {
		w.font = f
	}
}

// OptDisplay sets the display colour images are allocated on.
func OptDisplay(d draw.Display) OptionClosure {
	return func(w *TextWindow) {
		w.display = d
	}
}

// OptWaku sets the frame images. Any of them may be nil.
func OptWaku(main, backing, buttons draw.Image) OptionClosure {
	return func(w *TextWindow) {
		w.wakuMain = main
		w.wakuBacking = backing
		w.wakuButtons = buttons
	}
}

// LoadWaku loads the frame images named by wc and returns the option
// installing them. Unnamed images are left nil.
func LoadWaku(l *asset.Loader, wc WakuConfig) (OptionClosure, error) {
	var imgs [3]draw.Image
	for i, n := range []struct {
		name string
		mask bool
	}{{wc.Main, false}, {wc.Backing, true}, {wc.Buttons, false}} {
		if n.name == "" {
			continue
		}
		s, err := l.Load(n.name, n.mask)
		if err != nil {
			return nil, fmt.Errorf("waku %d: %w", wc.SetNo, err)
		}
		imgs[i] = s.Image
	}
	return OptWaku(imgs[0], imgs[1], imgs[2]), nil
}

// New creates text window num.
func New(num int, cfg Config, actions Actions, opts ...OptionClosure) (*TextWindow, error) {
	rects, err := geom.Resolve(cfg.Geometry)
	if err != nil {
		return nil, fmt.Errorf("text window %d: %w", num, err)
	}
	w := &TextWindow{
		num:     num,
		cfg:     cfg,
		rects:   rects,
		layout:  NewLayoutState(cfg.Geometry, cfg.DefaultColour),
		buttons: button.NewRegistry(),
		actions: actions,
		clock:   time.Now,
		colours: make(map[draw.Color]draw.Image),
		nameMod: cfg.NameMod,
	}
	w.buildButtons()
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *TextWindow) buildButtons() {
	a := w.actions
	add := func(id button.ID, b button.Behavior) {
		bc := w.cfg.Buttons[id]
		w.buttons.Set(&button.Descriptor{ID: id, Use: bc.Use, Location: bc.Location, Behavior: b})
	}

	add(button.Clear, &button.Momentary{Action: a.toggleInterfaceHidden})
	add(button.BackPage, &button.Hold{Action: a.backPage, Interval: button.DefaultHoldInterval})
	add(button.ForwardPage, &button.Hold{Action: a.forwardPage, Interval: button.DefaultHoldInterval})
	for i := 0; i < button.NumExButtons; i++ {
		n, call := i, w.cfg.WBCall[i]
		add(button.ExButton(i), &button.Momentary{Action: func() { a.exButton(n, call) }})
	}

	w.readJump = button.NewToggle(func() { a.setSkipMode(true) }, func() { a.setSkipMode(false) })
	add(button.ReadJump, w.readJump)
	w.autoMode = button.NewToggle(func() { a.setAutoMode(true) }, func() { a.setAutoMode(false) })
	add(button.AutoMode, w.autoMode)
}

func (w *TextWindow) Num() int       { return w.num }
func (w *TextWindow) Config() Config { return w.cfg }

// Button returns the descriptor of button id.
func (w *TextWindow) Button(id button.ID) (*button.Descriptor, bool) {
	return w.buttons.Get(id)
}

// SkipModeChanged mirrors the engine's skip mode into the read-jump button.
func (w *TextWindow) SkipModeChanged(on bool) { w.readJump.SetActivated(on) }

// SkipModeEnabledChanged mirrors whether skipping is possible.
func (w *TextWindow) SkipModeEnabledChanged(on bool) { w.readJump.SetEnabled(on) }

// AutoModeChanged mirrors the engine's auto mode into the auto button.
func (w *TextWindow) AutoModeChanged(on bool) { w.autoMode.SetActivated(on) }

// SetInterfaceHidden records the engine wide hidden interface flag.
func (w *TextWindow) SetInterfaceHidden(hidden bool) { w.interfaceHidden = hidden }

func (w *TextWindow) SetVisible(v bool) { w.visible = v }
func (w *TextWindow) IsVisible() bool   { return w.visible }

func (w *TextWindow) interactive() bool {
	return w.visible && !w.interfaceHidden
}

// Execute runs the per frame work of the buttons.
func (w *TextWindow) Execute() {
	if w.interactive() {
		w.buttons.Execute(w.clock())
	}
}

// SetMousePosition updates hover state of selection items and buttons.
func (w *TextWindow) SetMousePosition(pt image.Point) {
	if w.sel.active {
		for _, e := range w.sel.elements {
			e.setMousePosition(pt)
		}
	}
	w.buttons.SetMousePosition(w.BoxRect(), pt)
}

// HandleMouseClick offers a click to the selection items and then to
// the buttons. It reports whether anything claimed it. A release ends
// every press, including one the click is not offered to.
func (w *TextWindow) HandleMouseClick(pt image.Point, pressed bool) bool {
	claimed := w.sel.active && w.sel.handleMouseClick(pt, pressed)
	if !claimed && w.interactive() {
		return w.buttons.HandleMouseClick(w.BoxRect(), pt, pressed, w.clock())
	}
	if !pressed {
		w.buttons.Release()
	}
	return claimed
}

// BoxRect is the area of the whole window on screen.
func (w *TextWindow) BoxRect() image.Rectangle { return w.rects.BoxRect() }

// TextRect is the area text is drawn in.
func (w *TextWindow) TextRect() image.Rectangle { return w.rects.Text }

// KeycursorPosition is where the continue indicator goes.
func (w *TextWindow) KeycursorPosition() (image.Point, error) {
	return geom.KeycursorPosition(w.cfg.KeycursorType, w.cfg.KeycursorOffset, w.rects.Text, w.layout.Insertion())
}

// Layout returns the text cursor.
func (w *TextWindow) Layout() *LayoutState { return w.layout }

func (w *TextWindow) ClearWin()         { w.layout.Clear() }
func (w *TextWindow) HardBreak()        { w.layout.HardBreak() }
func (w *TextWindow) ResetIndentation() { w.layout.ResetIndentation() }
func (w *TextWindow) MarkRubyBegin()    { w.layout.MarkRubyBegin() }
func (w *TextWindow) IsFull() bool      { return w.layout.IsFull() }
func (w *TextWindow) OnLastLine() bool  { return w.layout.OnLastLine() }
func (w *TextWindow) InsertionX() int   { return w.layout.Insertion().X }
func (w *TextWindow) Indentation() int  { return w.layout.Indentation() }
func (w *TextWindow) Text() string      { return w.layout.Text() }

// SetFontColour changes the text colour until the next ClearWin.
func (w *TextWindow) SetFontColour(c draw.Color) { w.layout.SetFontColour(c) }

// SetIndentation indents following lines to the cursor when the window
// uses indentation.
func (w *TextWindow) SetIndentation() {
	if w.cfg.UseIndentation {
		w.layout.SetIndentation()
	}
}

// CharWidth is the advance of a full width or half width character.
func (w *TextWindow) CharWidth(r rune, half bool) int {
	p := w.cfg.Geometry
	if half {
		return (p.FontSize+1)/2 + p.Spacing.X
	}
	return p.FontSize + p.Spacing.X
}

// LineWidth is the usable width of one line.
func (w *TextWindow) LineWidth() int {
	p := w.cfg.Geometry
	return p.Chars.X * (p.FontSize + p.Spacing.X)
}

func (w *TextWindow) Name() string { return w.name }

// SetName sets the speaker name shown with the window.
func (w *TextWindow) SetName(name string) { w.name = norm.NFC.String(name) }

func (w *TextWindow) NameMod() int       { return w.nameMod }
func (w *TextWindow) SetNameMod(mod int) { w.nameMod = mod }
func (w *TextWindow) RCommandMod() int   { return w.cfg.RCommandMod }
