// Package button implements the clickable controls drawn on a text
// window's waku: clear, back/forward page, the extra buttons, read-jump
// and auto mode.
package button

import (
	"fmt"
	"image"
	"strconv"
)

// ID names a text window button. The set is closed.
type ID int

const (
	Clear ID = iota
	BackPage
	ForwardPage
	ExButton0
	ExButton1
	ExButton2
	ExButton3
	ExButton4
	ExButton5
	ExButton6
	ReadJump
	AutoMode

	NumIDs
)

// NumExButtons is the number of WBCALL driven buttons.
const NumExButtons = int(ExButton6-ExButton0) + 1

var idInfo = [NumIDs]struct {
	key     string
	pattern int
}{
	Clear:       {"CLEAR_BOX", 8},
	BackPage:    {"MSGBKLEFT_BOX", 24},
	ForwardPage: {"MSGBKRIGHT_BOX", 32},
	ExButton0:   {"EXBTN_000_BOX", 40},
	ExButton1:   {"EXBTN_001_BOX", 48},
	ExButton2:   {"EXBTN_002_BOX", 56},
	ExButton3:   {"EXBTN_003_BOX", 64},
	ExButton4:   {"EXBTN_004_BOX", 72},
	ExButton5:   {"EXBTN_005_BOX", 80},
	ExButton6:   {"EXBTN_006_BOX", 88},
	ReadJump:    {"READJUMP_BOX", 104},
	AutoMode:    {"AUTOMODE_BOX", 112},
}

// Valid reports whether id names a button.
func (id ID) Valid() bool { return id >= 0 && id < NumIDs }

// Key is the waku attribute holding the button's location.
func (id ID) Key() string {
	if !id.Valid() {
		return ""
	}
	return idInfo[id].key
}

// PatternBase is the first pattern of the button in the waku button
// strip.
func (id ID) PatternBase() int {
	if !id.Valid() {
		return -1
	}
	return idInfo[id].pattern
}

// ExButton returns the extra button n, 0 based.
func ExButton(n int) ID { return ExButton0 + ID(n) }

func (id ID) String() string {
	if !id.Valid() {
		return "ID#" + strconv.Itoa(int(id))
	}
	return idInfo[id].key
}

// IDs returns every button in registry order.
func IDs() []ID {
	ids := make([]ID, NumIDs)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Location places a button relative to a corner of the window box.
// Origin uses the same corner numbering as window positions.
type Location struct {
	Origin int
	X, Y   int
	W, H   int
}

// LocationFromInts decodes a waku box vector: origin, x, y, width, height.
func LocationFromInts(v []int) (Location, error) {
	if len(v) < 5 {
		return Location{}, fmt.Errorf("button location needs 5 values, got %d", len(v))
	}
	return Location{Origin: v[0], X: v[1], Y: v[2], W: v[3], H: v[4]}, nil
}

// Empty reports a location with no area.
func (l Location) Empty() bool { return l.W <= 0 || l.H <= 0 }

// Rect resolves l against the window box.
func (l Location) Rect(box image.Rectangle) image.Rectangle {
	var min image.Point
	switch l.Origin {
	case 1:
		min = image.Pt(box.Max.X-l.X-l.W, box.Min.Y+l.Y)
	case 2:
		min = image.Pt(box.Min.X+l.X, box.Max.Y-l.Y-l.H)
	case 3:
		min = image.Pt(box.Max.X-l.X-l.W, box.Max.Y-l.Y-l.H)
	default:
		min = image.Pt(box.Min.X+l.X, box.Min.Y+l.Y)
	}
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(l.W, l.H))}
}
