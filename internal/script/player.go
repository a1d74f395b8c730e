// Package script plays a plain text scene through the rlBabel text
// functions the way a compiled scenario drives them.
//
// A scene is a list of lines in the codec's encoding. Lines starting
// with '#' are directives:
//
//	#name <speaker>     speaker of the following text, empty to clear
//	#page               start a new page
//	#select <a>|<b>...  offer a choice
//
// Every other line is a message laid out in the window.
package script

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/rjkroege/rlwin/babel"
)

// Window is the text window a scene is played into.
type Window interface {
	babel.TextWindow
	babel.Sink
	ClearWin()
	IsFull() bool
	StartSelectionMode()
	EndSelectionMode()
}

// Stop says why Run returned.
type Stop int

const (
	StopEnd    Stop = iota // scene finished
	StopPage               // page full, waiting for NextPage
	StopSelect             // waiting for Choose
)

func (s Stop) String() string {
	switch s {
	case StopEnd:
		return "End"
	case StopPage:
		return "Page"
	case StopSelect:
		return "Select"
	}
	return "Stop?"
}

// Variables the player passes to the text functions.
const (
	strText = iota
	strName
	strItem
)

// Read splits a scene into lines. Bytes are kept as they are.
func Read(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, string(bytes.TrimRight(sc.Bytes(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return lines, nil
}

// Player runs a scene.
type Player struct {
	dll *babel.DLL
	mem *Memory
	win Window

	lines    []string
	pos      int
	name     string
	draining bool
	choices  []int
}

// NewPlayer plays lines into w with text in codec c.
func NewPlayer(c babel.Codec, w Window, lines []string) *Player {
	p := &Player{
		dll:   babel.NewDLL(c),
		mem:   NewMemory(),
		win:   w,
		lines: lines,
	}
	p.mem.AddWindow(w)
	return p
}

func (p *Player) DLL() *babel.DLL { return p.dll }
func (p *Player) Choices() []int  { return p.choices }
func (p *Player) Memory() *Memory { return p.mem }

func (p *Player) call(fn, a1, a2 int) (int, error) {
	n, err := p.dll.Call(p.mem, fn, a1, a2, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", p.pos, err)
	}
	return n, nil
}

func str(i int) int { return babel.Addr(StrBank, i) }

// Run plays until the scene ends or the reader must act.
func (p *Player) Run() (Stop, error) {
	for {
		if p.draining {
			switch code := babel.Pump(p.dll.Buffer, p.win); code {
			case babel.NewScreen:
				return StopPage, nil
			case babel.Error:
				log.Printf("script: line %d: malformed text", p.pos)
			case babel.EndOfString:
				p.draining = false
				p.win.HardBreak()
			}
			continue
		}

		if p.pos >= len(p.lines) {
			return StopEnd, nil
		}
		if p.win.IsFull() {
			return StopPage, nil
		}
		line := p.lines[p.pos]
		p.pos++

		switch {
		case line == "":
		case line == "#page":
			return StopPage, nil
		case hasDirective(line, "#name"):
			if err := p.setName(arg(line, "#name")); err != nil {
				return StopEnd, err
			}
		case hasDirective(line, "#select"):
			if err := p.offer(arg(line, "#select")); err != nil {
				return StopEnd, err
			}
			return StopSelect, nil
		default:
			if err := p.start(line); err != nil {
				return StopEnd, err
			}
		}
	}
}

func hasDirective(line, d string) bool {
	return line == d || (len(line) > len(d) && line[:len(d)+1] == d+" ")
}

func arg(line, d string) string {
	if len(line) <= len(d) {
		return ""
	}
	return line[len(d)+1:]
}

func (p *Player) setName(name string) error {
	p.name = name
	p.mem.SetStr(strName, name)
	_, err := p.call(babel.FnSetWindowName, str(strName), p.win.Num())
	return err
}

func (p *Player) start(line string) error {
	if p.name != "" && p.win.NameMod() == 0 {
		line = p.name + "\x03" + line
	}
	p.mem.SetStr(strText, line)
	if _, err := p.call(babel.FnTextoutStart, str(strText), 0); err != nil {
		return err
	}
	p.draining = true
	return nil
}

func (p *Player) offer(items string) error {
	p.win.ClearWin()
	p.win.StartSelectionMode()
	for _, it := range strings.Split(items, "|") {
		p.mem.SetStr(strItem, it)
		if _, err := p.call(babel.FnSelectAdd, str(strItem), p.win.Num()); err != nil {
			return err
		}
	}
	return nil
}

// NextPage clears the window and resumes the current message on the
// fresh page, repeating the speaker when the name is shown inline.
func (p *Player) NextPage() error {
	p.win.ClearWin()
	if !p.draining {
		return nil
	}
	p.mem.SetStr(strName, p.name)
	_, err := p.call(babel.FnTextoutNewScreen, str(strName), 0)
	return err
}

// Choose records the reader's choice and leaves selection mode.
func (p *Player) Choose(id int) {
	p.choices = append(p.choices, id)
	p.win.EndSelectionMode()
}
