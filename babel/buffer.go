package babel

// Kind classifies a decoded record of the text buffer.
type Kind int

const (
	KindChar Kind = iota
	KindNewLine
	KindSetIndent
	KindClearIndent
	KindBeginGloss
	KindEndGloss
	KindMalformed
)

// Char is one decoded record. Offset is the position of its first byte
// in the stream of all text added since the buffer was created.
type Char struct {
	Kind      Kind
	Rune      rune
	Raw       string
	Offset    int
	Italic    bool
	HalfWidth bool
}

// State is where a Buffer is in its fill and drain cycle.
type State int

const (
	Empty State = iota
	Buffering
	Draining
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Buffering:
		return "Buffering"
	case Draining:
		return "Draining"
	}
	return "State?"
}

// Window is what line breaking needs to know about the text window.
type Window interface {
	InsertionX() int
	LineWidth() int
	OnLastLine() bool
	CharWidth(r rune, half bool) int
	Indentation() int
}

// Result is one step of the pull side.
type Result struct {
	Code   Getc
	Rune   rune
	Raw    string
	Width  int // full cell width
	XMod   int // width the character is drawn at
	Italic bool
	Offset int
}

// Buffer holds decoded text waiting to be laid out. Text is pushed in
// with Add and pulled out one step at a time with GetChar.
type Buffer struct {
	codec   Codec
	glosses *GlossTable

	chars    []Char
	index    int // next record
	endToken int // records before this were approved to fit with their run
	italic   bool
	state    State

	// softBreak is set after a wrap the text did not ask for, so
	// the spaces starting the next line are dropped.
	softBreak bool

	base int // stream offset of the first byte since Clear
	size int // bytes added since Clear
}

// NewBuffer returns an empty buffer decoding with c. Gloss markers are
// recorded in g.
func NewBuffer(c Codec, g *GlossTable) *Buffer {
	if g == nil {
		g = NewGlossTable()
	}
	return &Buffer{codec: c, glosses: g}
}

func (b *Buffer) Codec() Codec  { return b.codec }
func (b *Buffer) State() State  { return b.state }
func (b *Buffer) Index() int    { return b.index }
func (b *Buffer) Len() int      { return len(b.chars) }
func (b *Buffer) Chars() []Char { return b.chars }
func (b *Buffer) Italic() bool  { return b.italic }

// Clear drops all buffered text.
func (b *Buffer) Clear() {
	b.base += b.size
	b.size = 0
	b.chars = b.chars[:0]
	b.index = 0
	b.endToken = 0
	b.italic = false
	b.softBreak = false
	b.state = Empty
}

// Add decodes text and appends it.
func (b *Buffer) Add(text string) {
	b.chars = append(b.chars, b.decode(text, b.base+b.size)...)
	b.size += len(text)
	if b.state == Empty {
		b.state = Buffering
	}
}

// InsertAtCursor decodes text and places it before the next record.
func (b *Buffer) InsertAtCursor(text string) {
	off := b.base + b.size
	if b.index < len(b.chars) {
		off = b.chars[b.index].Offset
	}
	ins := b.decode(text, off)
	rest := append([]Char(nil), b.chars[b.index:]...)
	b.chars = append(append(b.chars[:b.index], ins...), rest...)
	if b.endToken > b.index {
		b.endToken += len(ins)
	}
	if b.state == Empty {
		b.state = Buffering
	}
}

func (b *Buffer) decode(text string, off int) []Char {
	p := []byte(text)
	out := make([]Char, 0, len(p))
	for i := 0; i < len(p); {
		o := off + i
		var k Kind
		switch p[i] {
		case ctlBeginGloss:
			k = KindBeginGloss
		case ctlEndGloss:
			k = KindEndGloss
		case ctlSetIndent:
			k = KindSetIndent
		case ctlClearIndent:
			k = KindClearIndent
		case ctlNewLine:
			k = KindNewLine
		case ctlItalicOn, ctlItalicOff:
			b.italic = p[i] == ctlItalicOn
			i++
			continue
		case ctlReturn:
			i++
			continue
		default:
			r, n, ok := b.codec.Next(p[i:])
			c := Char{Kind: KindChar, Rune: r, Raw: string(p[i : i+n]), Offset: o, Italic: b.italic}
			if ok {
				c.HalfWidth = b.codec.HalfWidth(r, n)
			} else {
				c.Kind = KindMalformed
			}
			out = append(out, c)
			i += n
			continue
		}
		out = append(out, Char{Kind: k, Raw: string(p[i]), Offset: o, Italic: b.italic})
		i++
	}
	return out
}

func isSpace(c Char) bool { return c.Kind == KindChar && c.Rune == ' ' }

// inRun reports whether c continues a run of half width text.
func inRun(c Char) bool { return c.Kind == KindChar && c.HalfWidth && c.Rune != ' ' }

// run returns the width of the run of text starting at record i and
// the index just past it. A full width character is a run by itself.
func (b *Buffer) run(w Window, i int) (width, end int) {
	if i >= len(b.chars) {
		return 0, i
	}
	c := b.chars[i]
	if c.Kind != KindChar || isSpace(c) {
		return 0, i
	}
	if !c.HalfWidth {
		return w.CharWidth(c.Rune, false), i + 1
	}
	for end = i; end < len(b.chars) && inRun(b.chars[end]); end++ {
		width += w.CharWidth(b.chars[end].Rune, true)
	}
	return width, end
}

func (b *Buffer) lineBreak(w Window, soft bool) Result {
	b.softBreak = soft
	code := NewLine
	if w.OnLastLine() {
		code = NewScreen
	}
	off := b.base + b.size
	if b.index < len(b.chars) {
		off = b.chars[b.index].Offset
	}
	return Result{Code: code, Offset: off}
}

func (b *Buffer) print(w Window, c Char) Result {
	b.index++
	if !isSpace(c) {
		b.softBreak = false
	}
	return Result{
		Code:   PrintChar,
		Rune:   c.Rune,
		Raw:    c.Raw,
		Width:  w.CharWidth(c.Rune, false),
		XMod:   w.CharWidth(c.Rune, c.HalfWidth),
		Italic: c.Italic,
		Offset: c.Offset,
	}
}

// GetChar returns the next thing the caller must do to lay out the
// buffered text in w.
func (b *Buffer) GetChar(w Window) Result {
	for {
		if b.index >= len(b.chars) {
			b.state = Empty
			return Result{Code: EndOfString, Offset: b.base + b.size}
		}
		b.state = Draining
		c := b.chars[b.index]

		switch c.Kind {
		case KindMalformed:
			b.index++
			return Result{Code: Error, Raw: c.Raw, Offset: c.Offset}
		case KindNewLine:
			b.index++
			b.endToken = b.index
			r := b.lineBreak(w, false)
			r.Offset = c.Offset
			return r
		case KindSetIndent:
			b.index++
			return Result{Code: SetIndent, Offset: c.Offset}
		case KindClearIndent:
			b.index++
			return Result{Code: ClearIndent, Offset: c.Offset}
		case KindBeginGloss:
			b.index++
			b.glosses.Begin(c.Offset)
			return Result{Code: BeginGloss, Offset: c.Offset}
		case KindEndGloss:
			b.index++
			b.glosses.End(c.Offset)
			continue
		}

		if b.index < b.endToken {
			return b.print(w, c)
		}

		x := w.InsertionX()
		room := w.LineWidth() - x
		fresh := w.LineWidth() - w.Indentation()
		atStart := x <= w.Indentation()

		if isSpace(c) {
			width := w.CharWidth(c.Rune, true)
			if b.softBreak && atStart {
				b.index++
				continue
			}
			next, _ := b.run(w, b.index+1)
			if width > room || (next > 0 && next <= fresh && width+next > room) {
				b.index++
				return b.lineBreak(w, true)
			}
			return b.print(w, c)
		}

		runWidth, end := b.run(w, b.index)
		if runWidth <= room {
			b.endToken = end
			return b.print(w, c)
		}
		if runWidth > fresh {
			// Too long for any line: fill this one and continue on
			// the next.
			b.endToken = b.fitting(w, b.index, end, room)
			if b.endToken == b.index {
				if !atStart {
					return b.lineBreak(w, true)
				}
				// Not even one character fits an empty line.
				b.endToken = b.index + 1
			}
			return b.print(w, c)
		}
		return b.lineBreak(w, true)
	}
}

// fitting returns the end of the longest prefix of records [i, end)
// that fits in room.
func (b *Buffer) fitting(w Window, i, end, room int) int {
	used := 0
	for ; i < end; i++ {
		c := b.chars[i]
		used += w.CharWidth(c.Rune, c.HalfWidth)
		if used > room {
			return i
		}
	}
	return end
}
