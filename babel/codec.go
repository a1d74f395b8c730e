package babel

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Codec decodes the byte encoding the interpreter keeps its strings in.
type Codec interface {
	Name() string

	// Next decodes the character at the start of p, which is not
	// empty. n is at least 1. ok is false for a malformed sequence.
	Next(p []byte) (r rune, n int, ok bool)

	// HalfWidth reports whether r, decoded from n bytes, takes half
	// a cell.
	HalfWidth(r rune, n int) bool

	// Encode converts s to the codec's encoding.
	Encode(s string) (string, error)
}

// CP932 is the Shift-JIS codepage RealLive games use.
var CP932 Codec = cp932{}

// UTF8 passes UTF-8 through.
var UTF8 Codec = utf8Codec{}

type cp932 struct{}

func (cp932) Name() string { return "cp932" }

func isLead(c byte) bool {
	return (c >= 0x81 && c <= 0x9F) || (c >= 0xE0 && c <= 0xFC)
}

func isTrail(c byte) bool {
	return (c >= 0x40 && c <= 0x7E) || (c >= 0x80 && c <= 0xFC)
}

func (cp932) Next(p []byte) (rune, int, bool) {
	n := 1
	if isLead(p[0]) {
		n = 2
	}
	if len(p) < n {
		return utf8.RuneError, len(p), false
	}
	if n == 2 && !isTrail(p[1]) {
		return utf8.RuneError, 1, false
	}
	if n == 1 && p[0] < utf8.RuneSelf {
		return rune(p[0]), 1, true
	}
	out, err := decoder().Bytes(p[:n])
	if err != nil {
		return utf8.RuneError, n, false
	}
	r, _ := utf8.DecodeRune(out)
	if r == utf8.RuneError {
		return r, n, false
	}
	return r, n, true
}

// Single byte characters, ASCII and half width katakana, are the half
// width ones.
func (cp932) HalfWidth(r rune, n int) bool { return n == 1 }

func (cp932) Encode(s string) (string, error) {
	return japanese.ShiftJIS.NewEncoder().String(s)
}

func decoder() *encoding.Decoder { return japanese.ShiftJIS.NewDecoder() }

type utf8Codec struct{}

func (utf8Codec) Name() string { return "utf-8" }

func (utf8Codec) Next(p []byte) (rune, int, bool) {
	r, n := utf8.DecodeRune(p)
	return r, n, r != utf8.RuneError || n > 1
}

func (utf8Codec) HalfWidth(r rune, n int) bool { return IsHalfWidth(r) }

func (utf8Codec) Encode(s string) (string, error) { return s, nil }

// DecodeString converts raw text in codec c to a Go string, dropping
// control bytes. Malformed sequences become U+FFFD.
func DecodeString(c Codec, raw string) string {
	p := []byte(raw)
	var sb strings.Builder
	for i := 0; i < len(p); {
		if p[i] < 0x20 {
			i++
			continue
		}
		r, n, _ := c.Next(p[i:])
		sb.WriteRune(r)
		i += n
	}
	return sb.String()
}

// TextWidth is the width raw text in codec c takes on one line of w,
// measured the way Buffer lays it out. Control bytes take no room.
func TextWidth(c Codec, w Window, raw string) int {
	p := []byte(raw)
	width := 0
	for i := 0; i < len(p); {
		if p[i] < 0x20 {
			i++
			continue
		}
		r, n, _ := c.Next(p[i:])
		width += w.CharWidth(r, c.HalfWidth(r, n))
		i += n
	}
	return width
}

var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// IsHalfWidth reports whether r is laid out in half a cell. Ambiguous
// width characters count as narrow so accented Latin text stays half
// width.
func IsHalfWidth(r rune) bool {
	return widthCond.RuneWidth(r) == 1
}
