package script

import (
	"errors"
	"fmt"

	"github.com/rjkroege/rlwin/babel"
)

// Memory banks the player hands to the text functions.
const (
	IntBank = 0x0B
	StrBank = 0x12
)

// ErrBank reports an access to a bank Memory does not have.
var ErrBank = errors.New("no such memory bank")

// Memory is a minimal interpreter state: one integer bank, one string
// bank and the text windows.
type Memory struct {
	ints    map[int]int
	strs    map[int]string
	windows map[int]babel.TextWindow
	active  int
}

var _ babel.Machine = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		ints:    make(map[int]int),
		strs:    make(map[int]string),
		windows: make(map[int]babel.TextWindow),
	}
}

// AddWindow registers w under its number and makes it active.
func (m *Memory) AddWindow(w babel.TextWindow) {
	m.windows[w.Num()] = w
	m.active = w.Num()
}

func (m *Memory) Int(index int) int          { return m.ints[index] }
func (m *Memory) Str(index int) string       { return m.strs[index] }
func (m *Memory) SetStr(index int, s string) { m.strs[index] = s }

type intVar struct {
	m     *Memory
	index int
}

func (v intVar) Get() int  { return v.m.ints[v.index] }
func (v intVar) Set(n int) { v.m.ints[v.index] = n }

type strVar struct {
	m     *Memory
	index int
}

func (v strVar) Get() string  { return v.m.strs[v.index] }
func (v strVar) Set(s string) { v.m.strs[v.index] = s }

func (m *Memory) IntVar(bank, index int) (babel.IntVar, error) {
	if bank != IntBank {
		return nil, fmt.Errorf("%w: int bank %#x", ErrBank, bank)
	}
	return intVar{m, index}, nil
}

func (m *Memory) StrVar(bank, index int) (babel.StrVar, error) {
	if bank != StrBank {
		return nil, fmt.Errorf("%w: string bank %#x", ErrBank, bank)
	}
	return strVar{m, index}, nil
}

func (m *Memory) TextWindow(id int) (babel.TextWindow, bool) {
	w, ok := m.windows[id]
	return w, ok
}

func (m *Memory) ActiveWindow() int { return m.active }
