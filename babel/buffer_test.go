package babel

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanity-io/litter"
)

// page is a Sink laying text out in cells of 10 (full) and 5 (half).
type page struct {
	width  int
	rows   int
	x      int
	indent int
	line   int
	lines  []string
	cur    strings.Builder
}

func newPage(width, rows int) *page { return &page{width: width, rows: rows} }

func (p *page) InsertionX() int   { return p.x }
func (p *page) LineWidth() int    { return p.width }
func (p *page) OnLastLine() bool  { return p.line+1 >= p.rows }
func (p *page) Indentation() int  { return p.indent }
func (p *page) SetIndentation()   { p.indent = p.x }
func (p *page) ResetIndentation() { p.indent = 0 }

func (p *page) CharWidth(r rune, half bool) int {
	if half {
		return 5
	}
	return 10
}

func (p *page) Print(r Result) {
	p.cur.WriteRune(r.Rune)
	p.x += r.XMod
}

func (p *page) HardBreak() {
	p.lines = append(p.lines, p.cur.String())
	p.cur.Reset()
	p.x = p.indent
	p.line++
}

func (p *page) newScreen() {
	p.HardBreak()
	p.x, p.indent, p.line = 0, 0, 0
}

// text is every line laid out so far.
func (p *page) text() []string {
	return append(append([]string(nil), p.lines...), p.cur.String())
}

// drain calls GetChar until the text ends, printing to p but not
// acting on breaks.
func drain(t *testing.T, b *Buffer, p *page) []Result {
	t.Helper()
	var out []Result
	for i := 0; i < 100; i++ {
		r := b.GetChar(p)
		out = append(out, r)
		if r.Code == PrintChar {
			p.Print(r)
		}
		if r.Code == EndOfString {
			return out
		}
	}
	t.Fatalf("no EndOfString: %s", litter.Sdump(out))
	return nil
}

func codes(rs []Result) []Getc {
	out := make([]Getc, len(rs))
	for i, r := range rs {
		out[i] = r.Code
	}
	return out
}

func TestBufferPrintsText(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("Aあ")
	got := drain(t, b, newPage(100, 3))
	want := []Result{
		{Code: PrintChar, Rune: 'A', Raw: "A", Width: 10, XMod: 5, Offset: 0},
		{Code: PrintChar, Rune: 'あ', Raw: "あ", Width: 10, XMod: 10, Offset: 1},
		{Code: EndOfString, Offset: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferCP932(t *testing.T) {
	b := NewBuffer(CP932, nil)
	b.Add("\x82\xa0\x81 A")
	got := drain(t, b, newPage(100, 3))
	want := []Getc{PrintChar, Error, PrintChar, PrintChar, EndOfString}
	if diff := cmp.Diff(want, codes(got)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s\n%s", diff, litter.Sdump(got))
	}
	if got[0].Rune != 'あ' || got[0].Raw != "\x82\xa0" {
		t.Errorf("first got %q raw %q", got[0].Rune, got[0].Raw)
	}
	if got[1].Raw != "\x81" || got[1].Offset != 2 {
		t.Errorf("malformed got raw %q offset %d", got[1].Raw, got[1].Offset)
	}
}

func TestBufferStates(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	p := newPage(100, 3)
	if b.State() != Empty {
		t.Errorf("new buffer is %v", b.State())
	}
	b.Add("ab")
	if b.State() != Buffering {
		t.Errorf("after Add is %v", b.State())
	}
	b.GetChar(p)
	if b.State() != Draining {
		t.Errorf("after GetChar is %v", b.State())
	}
	if got := b.Index(); got != 1 {
		t.Errorf("Index got %d want 1", got)
	}
	b.GetChar(p)
	if r := b.GetChar(p); r.Code != EndOfString || b.State() != Empty {
		t.Errorf("at end got %v in state %v", r.Code, b.State())
	}
}

func TestBufferOffsetsSurviveClear(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("ab")
	b.Add("c")
	b.Clear()
	if b.Len() != 0 || b.Index() != 0 {
		t.Fatalf("Clear left len %d index %d", b.Len(), b.Index())
	}
	b.Add("de")
	if got := b.Chars()[1].Offset; got != 4 {
		t.Errorf("offset got %d want 4", got)
	}
}

func TestBufferItalic(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("a\x0eb\x0fc\x0e")
	var got []bool
	for _, r := range drain(t, b, newPage(100, 3)) {
		if r.Code == PrintChar {
			got = append(got, r.Italic)
		}
	}
	if diff := cmp.Diff([]bool{false, true, false}, got); diff != "" {
		t.Errorf("italic mismatch (-want +got):\n%s", diff)
	}
	if !b.Italic() {
		t.Error("buffer not left in italic")
	}
}

func TestBufferNewLine(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("a\nb")
	got := codes(drain(t, b, newPage(100, 3)))
	if diff := cmp.Diff([]Getc{PrintChar, NewLine, PrintChar, EndOfString}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	b.Clear()
	b.Add("a\nb")
	got = codes(drain(t, b, newPage(100, 1)))
	if diff := cmp.Diff([]Getc{PrintChar, NewScreen, PrintChar, EndOfString}, got); diff != "" {
		t.Errorf("last line mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferIndentCodes(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("a\x03b\x04")
	got := codes(drain(t, b, newPage(100, 3)))
	want := []Getc{PrintChar, SetIndent, PrintChar, ClearIndent, EndOfString}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferWrapReoffersCharacter(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("あいうえお")
	p := newPage(40, 3)
	var got []Getc
	for i := 0; i < 4; i++ {
		r := b.GetChar(p)
		p.Print(r)
		got = append(got, r.Code)
	}
	r := b.GetChar(p)
	got = append(got, r.Code)
	if r.Code != NewLine || b.Index() != 4 {
		t.Fatalf("got %v at index %d: %v", r.Code, b.Index(), got)
	}
	p.HardBreak()
	if r := b.GetChar(p); r.Code != PrintChar || r.Rune != 'お' {
		t.Errorf("after break got %s", litter.Sdump(r))
	}
}

func TestPump(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello", 40, []string{"hello"}},
		{"words", "hello world foo", 40, []string{"hello", "world", "foo"}},
		{"full width", "あいうえお", 40, []string{"あいうえ", "お"}},
		{"spaces after soft break", "aaaaaaa   bb", 40, []string{"aaaaaaa ", "bb"}},
		{"overlong run", "abcdefghij", 40, []string{"abcdefgh", "ij"}},
		{"overlong run after text", "x abcdefghij", 40, []string{"x abcdef", "ghij"}},
		{"wider than a line", "ああ", 8, []string{"あ", "あ"}},
		{"hard break", "ab\ncd", 40, []string{"ab", "cd"}},
		{"indent", "ab\x03cd efghijk", 40, []string{"abcd efg", "hijk"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(UTF8, nil)
			b.Add(tc.text)
			p := newPage(tc.width, 10)
			if got := Pump(b, p); got != EndOfString {
				t.Fatalf("Pump stopped with %v", got)
			}
			if diff := cmp.Diff(tc.want, p.text()); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPumpNewScreen(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("hello world foo")
	p := newPage(40, 2)
	if got := Pump(b, p); got != NewScreen {
		t.Fatalf("Pump stopped with %v want NewScreen", got)
	}
	p.newScreen()
	if got := Pump(b, p); got != EndOfString {
		t.Fatalf("second Pump stopped with %v", got)
	}
	if diff := cmp.Diff([]string{"hello", "world", "foo"}, p.text()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferInsertAtCursor(t *testing.T) {
	b := NewBuffer(UTF8, nil)
	b.Add("xy")
	p := newPage(100, 3)
	p.Print(b.GetChar(p))
	b.InsertAtCursor("N\x03")
	if got := Pump(b, p); got != EndOfString {
		t.Fatalf("Pump stopped with %v", got)
	}
	if got, want := p.text()[0], "xNy"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got, want := p.indent, 10; got != want {
		t.Errorf("indent got %d want %d", got, want)
	}
}
