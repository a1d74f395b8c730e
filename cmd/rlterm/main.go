// Command rlterm plays a scene in one text window of a RealLive game in
// a terminal. Window pixels are mapped to cells of half a character.
//
//	rlterm [-g Gameexe.ini] [-n window] [-l log] scene.txt
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/rjkroege/rlwin/babel"
	"github.com/rjkroege/rlwin/button"
	"github.com/rjkroege/rlwin/gameexe"
	"github.com/rjkroege/rlwin/internal/script"
	"github.com/rjkroege/rlwin/wind"
)

var gameexeflag = flag.String("g", "Gameexe.ini", "Gameexe.ini of the game")
var windowflag = flag.Int("n", 0, "text window number")
var encodingflag = flag.String("e", "cp932", "scene encoding (cp932 or utf-8)")
var logflag = flag.String("l", "", "write the log to this file")

const tick = 50 * time.Millisecond

var (
	textStyle   = tcell.StyleDefault
	frameStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hoverStyle  = tcell.StyleDefault.Reverse(true)
	activeStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	deadStyle   = tcell.StyleDefault.Dim(true)
)

var labels = map[button.ID]rune{
	button.Clear:       'x',
	button.BackPage:    '<',
	button.ForwardPage: '>',
	button.ReadJump:    '»',
	button.AutoMode:    'A',
}

func label(id button.ID) rune {
	if r, ok := labels[id]; ok {
		return r
	}
	return '0' + rune(id-button.ExButton0)
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: rlterm [flags] scene.txt\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	log.SetOutput(io.Discard)
	if *logflag != "" {
		lf, err := os.Create(*logflag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rlterm: %v\n", err)
			os.Exit(1)
		}
		defer lf.Close()
		log.SetOutput(lf)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rlterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var codec babel.Codec
	switch *encodingflag {
	case "cp932":
		codec = babel.CP932
	case "utf-8":
		codec = babel.UTF8
	default:
		return fmt.Errorf("unknown encoding %q", *encodingflag)
	}
	g, err := gameexe.Load(*gameexeflag)
	if err != nil {
		return err
	}
	cfg, err := wind.ConfigFromGameexe(g, *windowflag)
	if err != nil {
		return err
	}
	sf, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	lines, err := script.Read(sf)
	sf.Close()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	p := cfg.Geometry
	t := &term{
		screen: screen,
		cell:   image.Pt((p.FontSize+1)/2+p.Spacing.X, p.LineHeight()),
		glyphs: make(map[image.Point]rune),
	}
	w, err := wind.New(*windowflag, cfg, t.actions())
	if err != nil {
		return err
	}
	w.SetVisible(true)
	t.win = w
	t.player = script.NewPlayer(codec, &termPage{w, t}, lines)

	go func() {
		for range time.Tick(tick) {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()
	return t.loop()
}

// term draws the window in character cells of size cell pixels.
type term struct {
	screen tcell.Screen
	cell   image.Point
	win    *wind.TextWindow
	player *script.Player

	glyphs map[image.Point]rune

	stop    script.Stop
	down    bool
	skip    bool
	auto    bool
	stopped time.Time
	done    bool
}

func (t *term) actions() wind.Actions {
	return wind.Actions{
		ForwardPage: t.next,
		SetSkipMode: func(on bool) {
			t.skip = on
			t.win.SkipModeChanged(on)
		},
		SetAutoMode: func(on bool) {
			t.auto = on
			t.win.AutoModeChanged(on)
		},
		ExButton: func(n int, call []int) {
			log.Printf("ex button %d would call %v", n, call)
		},
	}
}

func (t *term) toCell(pt image.Point) image.Point {
	return image.Pt((pt.X+t.cell.X/2)/t.cell.X, pt.Y/t.cell.Y)
}

func (t *term) toPixel(x, y int) image.Point {
	return image.Pt(x*t.cell.X+t.cell.X/2, y*t.cell.Y+t.cell.Y/2)
}

type termPage struct {
	*wind.TextWindow
	t *term
}

func (p *termPage) Print(r babel.Result) {
	at := p.TextRect().Min.Add(p.Layout().Insertion())
	p.t.glyphs[p.t.toCell(at)] = r.Rune
	p.DisplayChar(nil, r.Rune, r.XMod)
}

func (p *termPage) ClearWin() {
	p.TextWindow.ClearWin()
	p.t.glyphs = make(map[image.Point]rune)
}

func (p *termPage) EndSelectionMode() {
	p.TextWindow.EndSelectionMode()
	p.t.glyphs = make(map[image.Point]rune)
}

func (t *term) drawString(at image.Point, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(at.X, at.Y, r, nil, style)
		at.X += runewidth.RuneWidth(r)
	}
}

func (t *term) drawFrame(r image.Rectangle) {
	min, max := t.toCell(r.Min), t.toCell(r.Max.Sub(image.Pt(1, 1)))
	for x := min.X; x <= max.X; x++ {
		t.screen.SetContent(x, min.Y, tcell.RuneHLine, nil, frameStyle)
		t.screen.SetContent(x, max.Y, tcell.RuneHLine, nil, frameStyle)
	}
	for y := min.Y; y <= max.Y; y++ {
		t.screen.SetContent(min.X, y, tcell.RuneVLine, nil, frameStyle)
		t.screen.SetContent(max.X, y, tcell.RuneVLine, nil, frameStyle)
	}
	t.screen.SetContent(min.X, min.Y, tcell.RuneULCorner, nil, frameStyle)
	t.screen.SetContent(max.X, min.Y, tcell.RuneURCorner, nil, frameStyle)
	t.screen.SetContent(min.X, max.Y, tcell.RuneLLCorner, nil, frameStyle)
	t.screen.SetContent(max.X, max.Y, tcell.RuneLRCorner, nil, frameStyle)
}

func (t *term) draw() {
	t.screen.Clear()
	box := t.win.BoxRect()
	t.drawFrame(box)

	for _, id := range button.IDs() {
		d, ok := t.win.Button(id)
		if !ok || !d.Use || d.Location.Empty() {
			continue
		}
		style := textStyle
		switch d.State() {
		case button.Hover, button.Pressed:
			style = hoverStyle
		case button.Activated:
			style = activeStyle
		}
		if tg, ok := d.Behavior.(*button.Toggle); ok && !tg.Enabled() {
			style = deadStyle
		}
		c := t.toCell(d.Location.Rect(box).Min)
		t.screen.SetContent(c.X, c.Y, label(id), nil, style)
	}

	for pt, r := range t.glyphs {
		t.screen.SetContent(pt.X, pt.Y, r, nil, textStyle)
	}
	for _, e := range t.win.SelectionElements() {
		style := textStyle
		if e.Hover() {
			style = hoverStyle
		}
		t.drawString(t.toCell(e.Rect().Min), e.Text(), style)
	}
	if n := t.win.Name(); n != "" {
		t.drawString(t.toCell(box.Min).Add(image.Pt(2, 0)), " "+n+" ", activeStyle)
	}
	if t.stop == script.StopPage {
		if pt, err := t.win.KeycursorPosition(); err == nil {
			c := t.toCell(pt)
			t.screen.SetContent(c.X, c.Y, '▼', nil, activeStyle)
		}
	}
	t.screen.Show()
}

func (t *term) advance() {
	stop, err := t.player.Run()
	if err != nil {
		log.Printf("scene stopped: %v", err)
		stop = script.StopEnd
	}
	t.stop, t.stopped = stop, time.Now()
	if stop == script.StopSelect {
		t.win.SetSelectionCallback(t.player.Choose)
	}
}

func (t *term) next() {
	switch t.stop {
	case script.StopPage:
		if err := t.player.NextPage(); err != nil {
			log.Print(err)
		}
		t.advance()
	case script.StopEnd:
		t.done = true
	}
}

func (t *term) mouse(ev *tcell.EventMouse) {
	pt := t.toPixel(ev.Position())
	t.win.SetMousePosition(pt)
	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed == t.down {
		return
	}
	t.down = pressed
	wasSelecting := t.win.InSelectionMode()
	if t.win.HandleMouseClick(pt, pressed) {
		if wasSelecting && !t.win.InSelectionMode() {
			t.advance()
		}
		return
	}
	if !pressed {
		t.next()
	}
}

func (t *term) loop() error {
	t.advance()
	for !t.done {
		t.draw()
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventMouse:
			t.mouse(ev)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEnter, ev.Rune() == ' ':
				t.next()
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return nil
			}
		case *tcell.EventInterrupt:
			t.win.Execute()
			if t.stop == script.StopPage && (t.skip || (t.auto && ev.When().Sub(t.stopped) >= 2*time.Second)) {
				t.next()
			}
		}
	}
	return nil
}
