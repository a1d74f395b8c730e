package wind

import (
	"image"
	"strings"

	"github.com/rjkroege/rlwin/draw"
	"github.com/rjkroege/rlwin/geom"
)

// LayoutState is the text cursor of a window. It knows nothing about
// wrapping: the text pipeline decides when to break and calls in here.
type LayoutState struct {
	insertion   image.Point // relative to the text region
	line        int
	indentation int
	rubyBegin   int // -1 when unset
	colour      draw.Color
	text        strings.Builder

	defaultColour draw.Color
	rubySize      int
	lineHeight    int
	rows          int
}

// NewLayoutState creates a cleared LayoutState for a window laid out
// by p.
func NewLayoutState(p geom.Params, defaultColour draw.Color) *LayoutState {
	ls := &LayoutState{
		defaultColour: defaultColour,
		rubySize:      p.RubySize,
		lineHeight:    p.LineHeight(),
		rows:          p.Chars.Y,
	}
	ls.Clear()
	return ls
}

// Clear moves the cursor back to the first line and forgets the text.
func (ls *LayoutState) Clear() {
	ls.insertion = image.Pt(0, ls.rubySize)
	ls.indentation = 0
	ls.line = 0
	ls.rubyBegin = -1
	ls.colour = ls.defaultColour
	ls.text.Reset()
}

// HardBreak starts a new line at the current indentation.
func (ls *LayoutState) HardBreak() {
	ls.insertion.X = ls.indentation
	ls.insertion.Y += ls.lineHeight
	ls.line++
}

// ResetIndentation sets the indentation back to the left edge.
func (ls *LayoutState) ResetIndentation() {
	ls.indentation = 0
}

// SetIndentation indents subsequent lines to the current x position.
func (ls *LayoutState) SetIndentation() {
	ls.indentation = ls.insertion.X
}

// MarkRubyBegin records where ruby text will start.
func (ls *LayoutState) MarkRubyBegin() {
	ls.rubyBegin = ls.insertion.X
}

// RubyBegin returns the marked ruby start, if any.
func (ls *LayoutState) RubyBegin() (int, bool) {
	return ls.rubyBegin, ls.rubyBegin >= 0
}

// IsFull is true once every row has been used.
func (ls *LayoutState) IsFull() bool {
	return ls.line >= ls.rows
}

// OnLastLine is true when a further break would fill the window.
func (ls *LayoutState) OnLastLine() bool {
	return ls.line+1 >= ls.rows
}

// Advance moves the cursor right by width after text was drawn.
func (ls *LayoutState) Advance(width int, text string) {
	ls.insertion.X += width
	ls.text.WriteString(text)
}

func (ls *LayoutState) Insertion() image.Point { return ls.insertion }
func (ls *LayoutState) Line() int              { return ls.line }
func (ls *LayoutState) Indentation() int       { return ls.indentation }
func (ls *LayoutState) FontColour() draw.Color { return ls.colour }
func (ls *LayoutState) Text() string           { return ls.text.String() }

// SetFontColour changes the colour until the next Clear.
func (ls *LayoutState) SetFontColour(c draw.Color) {
	ls.colour = c
}
