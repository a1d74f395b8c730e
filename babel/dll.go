package babel

import (
	"errors"
	"fmt"
	"log"
)

// ErrUnknownFunction is returned by Call for an unassigned function
// number.
var ErrUnknownFunction = errors.New("unknown rlBabel function")

// IntVar is a handle to one integer of interpreter memory.
type IntVar interface {
	Get() int
	Set(int)
}

// StrVar is a handle to one string of interpreter memory. Strings hold
// text in the interpreter's encoding.
type StrVar interface {
	Get() string
	Set(string)
}

// TextWindow is the text window surface the DLL functions act on.
type TextWindow interface {
	Window
	Num() int
	Name() string
	SetName(name string)
	NameMod() int
	SetNameMod(mod int)
	RCommandMod() int
	AddSelectionItem(text string, width int) int
}

// Machine is the interpreter the DLL is loaded into.
type Machine interface {
	IntVar(bank, index int) (IntVar, error)
	StrVar(bank, index int) (StrVar, error)

	// TextWindow returns window id, which is never negative.
	TextWindow(id int) (TextWindow, bool)
	ActiveWindow() int
}

// Addr packs a memory bank and index the way the bytecode passes them.
func Addr(bank, index int) int { return bank<<16 | index }

func splitAddr(addr int) (bank, index int) { return addr >> 16, addr & 0xFFFF }

// DLL is the rlBabel text extension: a text buffer with western line
// breaking, glosses and window name handling.
type DLL struct {
	Buffer  *Buffer
	Glosses *GlossTable

	dllNo    int
	windName int
}

// NewDLL returns a DLL whose strings are in codec c.
func NewDLL(c Codec) *DLL {
	g := NewGlossTable()
	return &DLL{Buffer: NewBuffer(c, g), Glosses: g}
}

func (d *DLL) ivar(m Machine, addr int) (IntVar, error) {
	v, err := m.IntVar(splitAddr(addr))
	if err != nil {
		return nil, fmt.Errorf("int var %#x: %w", addr, err)
	}
	return v, nil
}

func (d *DLL) svar(m Machine, addr int) (StrVar, error) {
	v, err := m.StrVar(splitAddr(addr))
	if err != nil {
		return nil, fmt.Errorf("string var %#x: %w", addr, err)
	}
	return v, nil
}

func (d *DLL) sval(m Machine, addr int) (string, error) {
	v, err := d.svar(m, addr)
	if err != nil {
		return "", err
	}
	return v.Get(), nil
}

// window resolves id, negative meaning the active window.
func (d *DLL) window(m Machine, id int) (TextWindow, error) {
	if id < 0 {
		id = m.ActiveWindow()
	}
	w, ok := m.TextWindow(id)
	if !ok {
		return nil, fmt.Errorf("%w: text window %d", ErrLookup, id)
	}
	return w, nil
}

func (d *DLL) decode(s string) string { return DecodeString(d.Buffer.Codec(), s) }

// Call runs rlBabel function fn. Window and gloss lookup failures are
// logged and answer 0. Errors are reserved for calls the bytecode
// should never make.
func (d *DLL) Call(m Machine, fn, a1, a2, a3, a4 int) (int, error) {
	n, err := d.call(m, fn, a1, a2, a3, a4)
	if errors.Is(err, ErrLookup) {
		log.Printf("babel: function %d: %v", fn, err)
		return 0, nil
	}
	return n, err
}

func (d *DLL) call(m Machine, fn, a1, a2, a3, a4 int) (int, error) {
	switch fn {
	case FnInitialise:
		d.dllNo, d.windName = a1, a2
		d.Buffer.Clear()
		d.Glosses.Clear()
		return 1, nil

	case FnTextoutStart:
		d.Buffer.Clear()
		if a1 == -1 {
			return 1, nil
		}
		fallthrough
	case FnTextoutAppend:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		d.Buffer.Add(s)
		return 1, nil

	case FnTextoutGetChar:
		return d.getChar(m, a1, a2)

	case FnTextoutNewScreen:
		return d.newScreen(m, a1)

	case FnClearGlosses:
		d.Glosses.Clear()
		return 1, nil

	case FnNewGloss:
		return d.Glosses.New(), nil

	case FnAddGloss:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		if err := d.Glosses.Add(s); err != nil {
			return 0, err
		}
		return 1, nil

	case FnTestGlosses:
		id, target, ok := d.Glosses.Test(a1)
		if !ok {
			return 0, fmt.Errorf("%w: no gloss at offset %d", ErrLookup, a1)
		}
		v, err := d.svar(m, a2)
		if err != nil {
			return 0, err
		}
		v.Set(target)
		return id, nil

	case FnEndSetWindowName:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		w, err := d.window(m, -1)
		if err != nil {
			return 0, err
		}
		w.SetName(d.decode(s))
		return 1, nil

	case FnEndGetCharWinNam:
		w, err := d.window(m, -1)
		if err != nil {
			return 0, err
		}
		return d.storeName(m, a1, w)

	case FnSetNameMod:
		w, err := d.window(m, a1)
		if err != nil {
			return 0, err
		}
		w.SetNameMod(a2)
		return 1, nil

	case FnGetNameMod:
		w, err := d.window(m, a1)
		if err != nil {
			return 0, err
		}
		return w.NameMod(), nil

	case FnSetWindowName:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		w, err := d.window(m, a2)
		if err != nil {
			return 0, err
		}
		w.SetName(d.decode(s))
		return 1, nil

	case FnGetTextWindow:
		w, err := d.window(m, a1)
		if err != nil {
			return 0, err
		}
		return w.Num(), nil

	case FnGetRCommandMod:
		w, err := d.window(m, a1)
		if err != nil {
			return 0, err
		}
		return w.RCommandMod(), nil

	case FnMessageBox:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		log.Printf("babel: message: %s", d.decode(s))
		return 1, nil

	case FnSelectAdd:
		s, err := d.sval(m, a1)
		if err != nil {
			return 0, err
		}
		w, err := d.window(m, a2)
		if err != nil {
			return 0, err
		}
		return w.AddSelectionItem(d.decode(s), TextWidth(d.Buffer.Codec(), w, s)), nil
	}
	return 0, fmt.Errorf("%w: %d (%d, %d, %d, %d)", ErrUnknownFunction, fn, a1, a2, a3, a4)
}

// getChar pulls one step out of the buffer. The character goes to
// string var buf and its drawn width to int var xmod.
func (d *DLL) getChar(m Machine, buf, xmod int) (int, error) {
	w, err := d.window(m, -1)
	if err != nil {
		return int(Error), err
	}
	sv, err := d.svar(m, buf)
	if err != nil {
		return int(Error), err
	}
	iv, err := d.ivar(m, xmod)
	if err != nil {
		return int(Error), err
	}
	r := d.Buffer.GetChar(w)
	if r.Code == PrintChar {
		sv.Set(r.Raw)
		iv.Set(r.XMod)
	} else {
		sv.Set("")
	}
	return int(r.Code), nil
}

// newScreen restarts text on a fresh page. When the speaker name is
// shown inline it is printed again at the top of the page and the
// text indented after it.
func (d *DLL) newScreen(m Machine, cnam int) (int, error) {
	name, err := d.sval(m, cnam)
	if err != nil {
		return 0, err
	}
	w, err := d.window(m, -1)
	if err != nil {
		return 0, err
	}
	if name != "" && w.NameMod() == 0 {
		d.Buffer.InsertAtCursor(name + string(rune(ctlSetIndent)))
	}
	return 1, nil
}

func (d *DLL) storeName(m Machine, addr int, w TextWindow) (int, error) {
	v, err := d.svar(m, addr)
	if err != nil {
		return 0, err
	}
	s, err := d.Buffer.Codec().Encode(w.Name())
	if err != nil {
		return 0, fmt.Errorf("window %d name: %w", w.Num(), err)
	}
	v.Set(s)
	return 1, nil
}
