package babel

import (
	"errors"
	"fmt"
)

// ErrLookup reports a window or gloss that does not exist.
var ErrLookup = errors.New("lookup failure")

// Gloss is a hyperlinked span of text. End is -1 while the span is
// still open.
type Gloss struct {
	ID     int
	Start  int
	End    int
	Target string
}

func (g *Gloss) contains(off int) bool {
	if g.Start < 0 || off < g.Start {
		return false
	}
	return g.End < 0 || off < g.End
}

// GlossTable maps byte offset ranges of the text stream to gloss
// targets. Ids start at 1.
type GlossTable struct {
	glosses []*Gloss
	nextID  int
}

// NewGlossTable returns an empty table.
func NewGlossTable() *GlossTable {
	return &GlossTable{nextID: 1}
}

// Clear forgets every gloss. Ids restart at 1.
func (t *GlossTable) Clear() {
	t.glosses = nil
	t.nextID = 1
}

// Begin opens a span at off.
func (t *GlossTable) Begin(off int) {
	t.glosses = append(t.glosses, &Gloss{Start: off, End: -1})
}

// End closes the most recent open span at off.
func (t *GlossTable) End(off int) {
	for i := len(t.glosses) - 1; i >= 0; i-- {
		if g := t.glosses[i]; g.End < 0 && g.Start >= 0 {
			g.End = off
			return
		}
	}
}

// New gives the most recent span without an id the next id and
// returns it. With no such span the id names a gloss that matches
// no offset.
func (t *GlossTable) New() int {
	id := t.nextID
	t.nextID++
	for i := len(t.glosses) - 1; i >= 0; i-- {
		if g := t.glosses[i]; g.ID == 0 {
			g.ID = id
			return id
		}
	}
	t.glosses = append(t.glosses, &Gloss{ID: id, Start: -1, End: -1})
	return id
}

// Add sets the target of the newest gloss.
func (t *GlossTable) Add(target string) error {
	for i := len(t.glosses) - 1; i >= 0; i-- {
		if g := t.glosses[i]; g.ID != 0 {
			g.Target = target
			return nil
		}
	}
	return fmt.Errorf("%w: no gloss to add %q to", ErrLookup, target)
}

// Test finds the gloss containing off.
func (t *GlossTable) Test(off int) (id int, target string, ok bool) {
	for _, g := range t.glosses {
		if g.ID != 0 && g.contains(off) {
			return g.ID, g.Target, true
		}
	}
	return 0, "", false
}

// Glosses returns the table's spans in the order they were opened.
func (t *GlossTable) Glosses() []Gloss {
	out := make([]Gloss, len(t.glosses))
	for i, g := range t.glosses {
		out[i] = *g
	}
	return out
}
