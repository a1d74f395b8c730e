package wind

import (
	"errors"
	"fmt"
	"image"

	"github.com/rjkroege/rlwin/button"
	"github.com/rjkroege/rlwin/draw"
	"github.com/rjkroege/rlwin/gameexe"
	"github.com/rjkroege/rlwin/geom"
)

// Attr is the window background colour and its filter mode.
type Attr struct {
	Colour draw.Color
	Filter int
}

// WakuConfig names the frame images of a window.
type WakuConfig struct {
	SetNo   int
	Main    string // NAME
	Backing string // BACK, drawn as a mask
	Buttons string // BTN, the button strip
}

// ButtonConfig is where a button sits and whether the game uses it.
type ButtonConfig struct {
	Use      bool
	Location button.Location
}

// Config is the immutable configuration of one text window.
type Config struct {
	Geometry geom.Params

	DefaultColour draw.Color
	AttrMod       int
	Attr          Attr

	KeycursorType   int
	KeycursorOffset image.Point

	UseIndentation bool
	NameMod        int
	RCommandMod    int

	Waku    WakuConfig
	Buttons [button.NumIDs]ButtonConfig
	WBCall  [button.NumExButtons][]int
}

var useKeys = map[button.ID]string{
	button.Clear:       "WINDOW_CLEAR_USE",
	button.BackPage:    "WINDOW_MSGBKLEFT_USE",
	button.ForwardPage: "WINDOW_MSGBKRIGHT_USE",
	button.ReadJump:    "WINDOW_READJUMP_USE",
	button.AutoMode:    "WINDOW_AUTOMODE_USE",
}

// ConfigFromGameexe reads the configuration of window num.
func ConfigFromGameexe(g *gameexe.Gameexe, num int) (Config, error) {
	var cfg Config
	window := func(attr string) gameexe.Entry { return g.Get("WINDOW", num, attr) }
	fail := func(err error) (Config, error) {
		return Config{}, fmt.Errorf("window %d: %w", num, err)
	}

	cfg.AttrMod = window("ATTR_MOD").Int(0)
	attr := window("ATTR")
	if cfg.AttrMod == 0 {
		attr = g.Get("WINDOW_ATTR")
	}
	a, err := attr.IntsN(5)
	if err != nil {
		return fail(err)
	}
	cfg.Attr = Attr{Colour: draw.RGBA(uint8(a[0]), uint8(a[1]), uint8(a[2]), uint8(a[3])), Filter: a[4]}

	p := &cfg.Geometry
	p.Screen = g.ScreenSize()
	if p.FontSize, err = singleInt(window("MOJI_SIZE")); err != nil {
		return fail(err)
	}
	if p.Chars, err = pointOf(window("MOJI_CNT")); err != nil {
		return fail(err)
	}
	if p.Spacing, err = pointOf(window("MOJI_REP")); err != nil {
		return fail(err)
	}
	p.RubySize = window("LUBY_SIZE").Int(0)

	pad, err := window("MOJI_POS").IntsN(4)
	if err != nil {
		return fail(err)
	}
	p.Padding = geom.Padding{Top: pad[0], Bottom: pad[1], Left: pad[2], Right: pad[3]}

	pos, err := window("POS").IntsN(3)
	if err != nil {
		return fail(err)
	}
	p.Origin = geom.Origin(pos[0])
	p.Distance = image.Pt(pos[1], pos[2])

	col, err := g.Get("COLOR_TABLE", 0).IntsN(3)
	if err != nil {
		return fail(err)
	}
	cfg.DefaultColour = draw.RGBA(uint8(col[0]), uint8(col[1]), uint8(col[2]), 0xFF)

	cfg.UseIndentation = window("INDENT_USE").Int(1) != 0
	cfg.NameMod = window("NAME_MOD").Int(0)
	cfg.RCommandMod = window("R_COMMAND_MOD").Int(0)

	kc, err := window("KEYCUR_MOD").IntsN(3)
	if err != nil {
		return fail(err)
	}
	cfg.KeycursorType = kc[0]
	cfg.KeycursorOffset = image.Pt(kc[1], kc[2])

	setno := window("WAKU_SETNO").Int(0)
	waku := func(attr string) gameexe.Entry { return g.Get("WAKU", setno, 0, attr) }
	cfg.Waku = WakuConfig{
		SetNo:   setno,
		Main:    waku("NAME").Str(""),
		Backing: waku("BACK").Str(""),
		Buttons: waku("BTN").Str(""),
	}

	exUse := g.Get("WINDOW_EXBTN_USE").Int(0) != 0
	for _, id := range button.IDs() {
		bc := &cfg.Buttons[id]
		if key, ok := useKeys[id]; ok {
			bc.Use = g.Get(key).Int(0) != 0
		} else {
			bc.Use = exUse
		}
		v, err := optionalInts(waku(id.Key()))
		if err != nil {
			return fail(err)
		}
		if v != nil {
			if bc.Location, err = button.LocationFromInts(v); err != nil {
				return fail(fmt.Errorf("%s: %w", id.Key(), err))
			}
		}
	}
	for i := range cfg.WBCall {
		if cfg.WBCall[i], err = optionalInts(g.Get("WBCALL", i)); err != nil {
			return fail(err)
		}
	}
	return cfg, nil
}

// optionalInts is e's integers, or nil when e is absent.
func optionalInts(e gameexe.Entry) ([]int, error) {
	v, err := e.Ints()
	if errors.Is(err, gameexe.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func singleInt(e gameexe.Entry) (int, error) {
	v, err := e.IntsN(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func pointOf(e gameexe.Entry) (image.Point, error) {
	v, err := e.IntsN(2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}
