package wind

import (
	"image"
	"testing"

	"github.com/rjkroege/rlwin/draw"
	"github.com/rjkroege/rlwin/geom"
)

func testLayout() *LayoutState {
	return NewLayoutState(geom.Params{
		Chars:    image.Pt(20, 3),
		FontSize: 24,
		Spacing:  image.Pt(1, 4),
		RubySize: 8,
	}, draw.RGBA(1, 2, 3, 255))
}

func TestLayoutClear(t *testing.T) {
	ls := testLayout()
	ls.Advance(40, "ab")
	ls.SetIndentation()
	ls.MarkRubyBegin()
	ls.HardBreak()
	ls.SetFontColour(draw.RGBA(9, 9, 9, 255))

	ls.Clear()
	if got, want := ls.Insertion(), image.Pt(0, 8); got != want {
		t.Errorf("Insertion got %v want %v", got, want)
	}
	if ls.Line() != 0 || ls.Indentation() != 0 || ls.Text() != "" {
		t.Errorf("line %d indentation %d text %q after Clear", ls.Line(), ls.Indentation(), ls.Text())
	}
	if _, ok := ls.RubyBegin(); ok {
		t.Error("ruby begin still set after Clear")
	}
	if got, want := ls.FontColour(), draw.RGBA(1, 2, 3, 255); got != want {
		t.Errorf("colour got %08x want %08x", uint32(got), uint32(want))
	}
}

func TestLayoutHardBreakFillsWindow(t *testing.T) {
	ls := testLayout()
	for i := 0; i < 3; i++ {
		if ls.IsFull() {
			t.Fatalf("full after %d breaks", i)
		}
		if got, want := ls.OnLastLine(), i == 2; got != want {
			t.Errorf("OnLastLine after %d breaks got %v", i, got)
		}
		ls.HardBreak()
		if got := ls.Line(); got != i+1 {
			t.Errorf("Line got %d want %d", got, i+1)
		}
	}
	if !ls.IsFull() {
		t.Error("not full after 3 breaks")
	}
	if got, want := ls.Insertion().Y, 8+3*36; got != want {
		t.Errorf("y got %d want %d", got, want)
	}
}

func TestLayoutIndentation(t *testing.T) {
	ls := testLayout()
	ls.Advance(50, "「")
	ls.SetIndentation()
	ls.Advance(25, "x")
	ls.HardBreak()
	if got, want := ls.Insertion(), image.Pt(50, 44); got != want {
		t.Errorf("after break got %v want %v", got, want)
	}
	ls.ResetIndentation()
	ls.HardBreak()
	if got := ls.Insertion().X; got != 0 {
		t.Errorf("x after reset got %d want 0", got)
	}
	if got, want := ls.Text(), "「x"; got != want {
		t.Errorf("Text got %q want %q", got, want)
	}
}

func TestLayoutRubyBegin(t *testing.T) {
	ls := testLayout()
	ls.Advance(30, "a")
	ls.MarkRubyBegin()
	if x, ok := ls.RubyBegin(); !ok || x != 30 {
		t.Errorf("RubyBegin got %d %v want 30 true", x, ok)
	}
}

func TestWindowSetIndentationRespectsConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.UseIndentation = false
	w, err := New(0, cfg, Actions{})
	if err != nil {
		t.Fatal(err)
	}
	w.Layout().Advance(50, "a")
	w.SetIndentation()
	if got := w.Indentation(); got != 0 {
		t.Errorf("indentation got %d want 0 with INDENT_USE off", got)
	}
}
