// Package gameexe reads the Gameexe.ini key/value store that configures
// a game: window geometry, waku assets, colours and the like.
//
// Keys are dotted paths such as WINDOW.000.MOJI_SIZE. Values are short
// lists of integers or strings.
package gameexe

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("gameexe: key not found")

// ErrType is returned when a key holds the wrong kind of value.
var ErrType = errors.New("gameexe: wrong value type")

// Value is a single integer or string.
type Value struct {
	Int      int
	Str      string
	IsString bool
}

func (v Value) String() string {
	if v.IsString {
		return strconv.Quote(v.Str)
	}
	return strconv.Itoa(v.Int)
}

// Gameexe is a parsed configuration store.
type Gameexe struct {
	data map[string][]Value
}

// New returns an empty store.
func New() *Gameexe {
	return &Gameexe{data: make(map[string][]Value)}
}

// Parse reads UTF-8 Gameexe text from r.
func Parse(r io.Reader) (*Gameexe, error) {
	doc, err := parse("Gameexe.ini", r)
	if err != nil {
		return nil, fmt.Errorf("gameexe: %w", err)
	}
	g := New()
	for _, e := range doc.Entries {
		vals := make([]Value, 0, len(e.Values))
		for _, v := range e.Values {
			switch {
			case v.Int != nil:
				vals = append(vals, Value{Int: int(*v.Int)})
			case v.Str != nil:
				vals = append(vals, Value{Str: string(*v.Str), IsString: true})
			}
		}
		g.data[strings.TrimPrefix(e.Key, "#")] = vals
	}
	return g, nil
}

// ParseString parses Gameexe text held in a string.
func ParseString(s string) (*Gameexe, error) {
	return Parse(strings.NewReader(s))
}

// Load reads a Gameexe.ini from disk. Files on disk are cp932.
func Load(path string) (*Gameexe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gameexe: %w", err)
	}
	defer f.Close()
	return Parse(japanese.ShiftJIS.NewDecoder().Reader(f))
}

// Key joins parts into a lookup key. Integer parts are zero padded to
// three digits the way Gameexe writes them.
func Key(parts ...any) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('.')
		}
		switch v := p.(type) {
		case int:
			fmt.Fprintf(&sb, "%03d", v)
		case string:
			sb.WriteString(v)
		default:
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String()
}

// Set replaces the values stored under key.
func (g *Gameexe) Set(key string, vals ...Value) {
	g.data[key] = vals
}

// SetInts stores integer values under key.
func (g *Gameexe) SetInts(key string, ints ...int) {
	vals := make([]Value, len(ints))
	for i, n := range ints {
		vals[i] = Value{Int: n}
	}
	g.data[key] = vals
}

// SetString stores a single string under key.
func (g *Gameexe) SetString(key, s string) {
	g.data[key] = []Value{{Str: s, IsString: true}}
}

// Get looks up the entry named by parts.
func (g *Gameexe) Get(parts ...any) Entry {
	k := Key(parts...)
	vals, ok := g.data[k]
	return Entry{key: k, values: vals, ok: ok}
}

// Keys returns the sorted keys that start with prefix.
func (g *Gameexe) Keys(prefix string) []string {
	var keys []string
	for k := range g.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ScreenSize decodes SCREENSIZE_MOD.
func (g *Gameexe) ScreenSize() image.Point {
	switch mod := g.Get("SCREENSIZE_MOD").Int(0); mod {
	case 1:
		return image.Pt(800, 600)
	case 999:
		if v, err := g.Get("SCREENSIZE_MOD", 999).Ints(); err == nil && len(v) >= 2 {
			return image.Pt(v[0], v[1])
		}
	}
	return image.Pt(640, 480)
}

// Entry is the result of a lookup. Missing entries are valid values
// that answer with caller supplied defaults.
type Entry struct {
	key    string
	values []Value
	ok     bool
}

func (e Entry) Key() string     { return e.key }
func (e Entry) Exists() bool    { return e.ok }
func (e Entry) Values() []Value { return e.values }

// Ints returns the entry as integers.
func (e Entry) Ints() ([]int, error) {
	if !e.ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, e.key)
	}
	ints := make([]int, len(e.values))
	for i, v := range e.values {
		if v.IsString {
			return nil, fmt.Errorf("%w: %s[%d] is a string", ErrType, e.key, i)
		}
		ints[i] = v.Int
	}
	return ints, nil
}

// IntsN returns the entry as exactly n integers.
func (e Entry) IntsN(n int) ([]int, error) {
	ints, err := e.Ints()
	if err != nil {
		return nil, err
	}
	if len(ints) < n {
		return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrType, e.key, len(ints), n)
	}
	return ints[:n], nil
}

// Int returns the first integer of the entry or def.
func (e Entry) Int(def int) int {
	if !e.ok || len(e.values) == 0 || e.values[0].IsString {
		return def
	}
	return e.values[0].Int
}

// Str returns the first string of the entry or def.
func (e Entry) Str(def string) string {
	if !e.ok {
		return def
	}
	for _, v := range e.values {
		if v.IsString {
			return v.Str
		}
	}
	return def
}
