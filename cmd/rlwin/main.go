// Command rlwin plays a scene in one text window of a RealLive game on
// a Plan 9 style display.
//
//	rlwin [-g Gameexe.ini] [-n window] [-d g00] scene.txt
//
// Click or press space to turn the page. q quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rjkroege/rlwin/asset"
	"github.com/rjkroege/rlwin/babel"
	"github.com/rjkroege/rlwin/draw"
	"github.com/rjkroege/rlwin/gameexe"
	"github.com/rjkroege/rlwin/internal/script"
	"github.com/rjkroege/rlwin/wind"
)

var gameexeflag = flag.String("g", "Gameexe.ini", "Gameexe.ini of the game")
var windowflag = flag.Int("n", 0, "text window number")
var assetflag = flag.String("d", "g00", "comma separated image directories")
var fontflag = flag.String("f", "/lib/font/bit/lucsans/unicode.8.font", "font")
var encodingflag = flag.String("e", "cp932", "scene encoding (cp932 or utf-8)")

const (
	tick      = 50 * time.Millisecond
	autoDelay = 2 * time.Second
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rlwin [flags] scene.txt\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func codecByName(name string) (babel.Codec, error) {
	switch strings.ToLower(name) {
	case "cp932", "sjis", "shift-jis":
		return babel.CP932, nil
	case "utf-8", "utf8":
		return babel.UTF8, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	codec, err := codecByName(*encodingflag)
	if err != nil {
		log.Fatal(err)
	}
	g, err := gameexe.Load(*gameexeflag)
	if err != nil {
		log.Fatalf("can't load game configuration: %v", err)
	}
	cfg, err := wind.ConfigFromGameexe(g, *windowflag)
	if err != nil {
		log.Fatalf("can't configure text window: %v", err)
	}
	sf, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("can't open scene: %v", err)
	}
	lines, err := script.Read(sf)
	sf.Close()
	if err != nil {
		log.Fatal(err)
	}

	size := g.ScreenSize()
	display, err := draw.NewDisplay(nil, *fontflag, "rlwin", fmt.Sprintf("%dx%d", size.X, size.Y))
	if err != nil {
		log.Fatalf("can't open display: %v", err)
	}
	if err := display.Attach(draw.Refnone); err != nil {
		log.Fatalf("failed to attach to window: %v", err)
	}
	font, err := display.OpenFont(*fontflag)
	if err != nil {
		log.Fatalf("can't open font: %v", err)
	}

	opts := []wind.OptionClosure{wind.OptDisplay(display), wind.OptFont(font)}
	loader := asset.NewLoader(display, strings.Split(*assetflag, ",")...)
	if waku, err := wind.LoadWaku(loader, cfg.Waku); err != nil {
		log.Printf("drawing without a frame: %v", err)
	} else {
		opts = append(opts, waku)
	}

	f := &frontEnd{display: display}
	w, err := wind.New(*windowflag, cfg, f.actions(), opts...)
	if err != nil {
		log.Fatal(err)
	}
	w.SetVisible(true)
	f.win = w
	f.player = script.NewPlayer(codec, &page{w, f}, lines)
	if err := f.resetText(); err != nil {
		log.Fatal(err)
	}

	if err := f.loop(); err != nil {
		log.Fatal(err)
	}
}

// frontEnd connects the window and the scene player to the display.
type frontEnd struct {
	display draw.Display
	win     *wind.TextWindow
	player  *script.Player

	// text holds the glyphs of the current page.
	text draw.Image

	stop    script.Stop
	stopped time.Time
	down    bool
	hidden  bool
	skip    bool
	auto    bool
	done    bool
}

func (f *frontEnd) actions() wind.Actions {
	return wind.Actions{
		ToggleInterfaceHidden: f.toggleHidden,
		BackPage: func() {
			log.Printf("no backlog to page back through")
		},
		ForwardPage: f.next,
		SetSkipMode: func(on bool) {
			f.skip = on
			f.win.SkipModeChanged(on)
		},
		SetAutoMode: func(on bool) {
			f.auto = on
			f.win.AutoModeChanged(on)
		},
		ExButton: func(n int, call []int) {
			log.Printf("ex button %d would call %v", n, call)
		},
	}
}

func (f *frontEnd) toggleHidden() {
	f.hidden = !f.hidden
	f.win.SetInterfaceHidden(f.hidden)
}

// page is the window as the player sees it: printed characters go to
// the page image, which is dropped whenever the window is cleared.
type page struct {
	*wind.TextWindow
	f *frontEnd
}

func (p *page) Print(r babel.Result) { p.DisplayChar(p.f.text, r.Rune, r.XMod) }

func (p *page) ClearWin() {
	p.TextWindow.ClearWin()
	if err := p.f.resetText(); err != nil {
		log.Print(err)
	}
}

func (p *page) EndSelectionMode() {
	p.TextWindow.EndSelectionMode()
	if err := p.f.resetText(); err != nil {
		log.Print(err)
	}
}

func (f *frontEnd) resetText() error {
	if f.text != nil {
		f.text.Free()
	}
	r := f.display.ScreenImage().R()
	img, err := f.display.AllocImage(r, draw.ARGB32, false, draw.Transparent)
	if err != nil {
		return fmt.Errorf("can't allocate page image: %w", err)
	}
	f.text = img
	return nil
}

func (f *frontEnd) run() {
	stop, err := f.player.Run()
	if err != nil {
		log.Printf("scene stopped: %v", err)
		stop = script.StopEnd
	}
	f.stop, f.stopped = stop, time.Now()
	switch stop {
	case script.StopSelect:
		f.win.SetSelectionCallback(f.player.Choose)
	case script.StopEnd:
		f.skip, f.auto = false, false
		f.win.SkipModeChanged(false)
		f.win.AutoModeChanged(false)
		f.win.SkipModeEnabledChanged(false)
	}
}

// next turns the page when the player is waiting for it.
func (f *frontEnd) next() {
	switch f.stop {
	case script.StopPage:
		if err := f.player.NextPage(); err != nil {
			log.Print(err)
		}
		f.run()
	case script.StopEnd:
		f.done = true
	}
}

func (f *frontEnd) mouse(m draw.Mouse) {
	f.win.SetMousePosition(m.Point)
	pressed := m.Buttons&1 != 0
	if pressed == f.down {
		return
	}
	f.down = pressed
	if f.hidden {
		if !pressed {
			f.toggleHidden()
		}
		return
	}
	wasSelecting := f.win.InSelectionMode()
	if f.win.HandleMouseClick(m.Point, pressed) {
		if wasSelecting && !f.win.InSelectionMode() {
			f.run()
		}
		return
	}
	if !pressed {
		f.next()
	}
}

func (f *frontEnd) redraw() {
	screen := f.display.ScreenImage()
	screen.Draw(screen.R(), f.display.Black(), nil, image.Point{})
	if !f.hidden {
		f.win.Render(screen)
		screen.Draw(screen.R(), f.text, f.text, screen.R().Min)
		if f.stop == script.StopPage {
			if pt, err := f.win.KeycursorPosition(); err == nil {
				screen.Draw(image.Rectangle{Min: pt, Max: pt.Add(image.Pt(8, 8))}, f.display.White(), nil, image.Point{})
			}
		}
	}
	if err := f.display.Flush(); err != nil {
		log.Print(err)
	}
}

func (f *frontEnd) loop() error {
	mc := f.display.InitMouse()
	kc := f.display.InitKeyboard()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	f.run()
	for !f.done {
		f.redraw()
		select {
		case <-mc.Resize:
			if err := f.display.Attach(draw.Refnone); err != nil {
				return fmt.Errorf("failed to attach to window: %w", err)
			}
		case m := <-mc.C:
			f.mouse(m)
		case r := <-kc.C:
			switch r {
			case ' ', '\n':
				f.next()
			case 'h':
				f.toggleHidden()
			case 'q', 0x7F:
				return nil
			}
		case now := <-ticker.C:
			f.win.Execute()
			if f.stop == script.StopPage && (f.skip || (f.auto && now.Sub(f.stopped) >= autoDelay)) {
				f.next()
			}
		}
	}
	return nil
}
