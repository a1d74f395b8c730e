package button

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/rlwin/wintest"
)

var box = image.Rect(100, 200, 400, 300)

func TestLocationRect(t *testing.T) {
	for _, tc := range []struct {
		loc  Location
		want image.Rectangle
	}{
		{Location{0, 5, 6, 10, 8}, image.Rect(105, 206, 115, 214)},
		{Location{1, 5, 6, 10, 8}, image.Rect(385, 206, 395, 214)},
		{Location{2, 5, 6, 10, 8}, image.Rect(105, 286, 115, 294)},
		{Location{3, 5, 6, 10, 8}, image.Rect(385, 286, 395, 294)},
	} {
		if got := tc.loc.Rect(box); got != tc.want {
			t.Errorf("%+v: got %v want %v", tc.loc, got, tc.want)
		}
	}
}

func TestLocationFromInts(t *testing.T) {
	l, err := LocationFromInts([]int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Location{1, 2, 3, 4, 5}, l); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := LocationFromInts([]int{1, 2}); err == nil {
		t.Error("short vector accepted")
	}
}

func TestIDTable(t *testing.T) {
	if got, want := len(IDs()), 12; got != want {
		t.Fatalf("IDs got %d want %d", got, want)
	}
	if got, want := ExButton(3), ExButton3; got != want {
		t.Errorf("ExButton(3) got %v want %v", got, want)
	}
	if got, want := ExButton6.Key(), "EXBTN_006_BOX"; got != want {
		t.Errorf("Key got %q want %q", got, want)
	}
	if got := ID(NumIDs).PatternBase(); got != -1 {
		t.Errorf("invalid id pattern got %d", got)
	}
	if got, want := AutoMode.PatternBase(), 112; got != want {
		t.Errorf("AutoMode pattern got %d want %d", got, want)
	}
}

func click(r *Registry, pt image.Point, now time.Time) bool {
	a := r.HandleMouseClick(box, pt, true, now)
	b := r.HandleMouseClick(box, pt, false, now)
	return a && b
}

func TestMomentaryFiresOnRelease(t *testing.T) {
	fired := 0
	r := NewRegistry()
	r.Set(&Descriptor{
		ID: Clear, Use: true,
		Location: Location{0, 0, 0, 10, 10},
		Behavior: &Momentary{Action: func() { fired++ }},
	})
	now := time.Now()

	if !r.HandleMouseClick(box, image.Pt(105, 205), true, now) {
		t.Fatal("press not claimed")
	}
	if fired != 0 {
		t.Errorf("fired on press")
	}
	if !r.HandleMouseClick(box, image.Pt(105, 205), false, now) {
		t.Fatal("release not claimed")
	}
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}

	// Press inside then release outside does nothing.
	r.HandleMouseClick(box, image.Pt(105, 205), true, now)
	if r.HandleMouseClick(box, image.Pt(300, 250), false, now) {
		t.Error("release outside claimed")
	}
	if fired != 1 {
		t.Errorf("fired %d times after release outside, want 1", fired)
	}
}

func TestUnusedButtonIgnored(t *testing.T) {
	fired := 0
	r := NewRegistry()
	r.Set(&Descriptor{
		ID:       Clear,
		Location: Location{0, 0, 0, 10, 10},
		Behavior: &Momentary{Action: func() { fired++ }},
	})
	if click(r, image.Pt(105, 205), time.Now()) {
		t.Error("unused button claimed click")
	}
	if fired != 0 {
		t.Error("unused button fired")
	}
}

func TestHoldRepeats(t *testing.T) {
	fired := 0
	h := &Hold{Action: func() { fired++ }}
	r := NewRegistry()
	r.Set(&Descriptor{ID: BackPage, Use: true, Location: Location{0, 0, 0, 10, 10}, Behavior: h})

	t0 := time.Unix(1000, 0)
	r.HandleMouseClick(box, image.Pt(101, 201), true, t0)
	if !h.Held() {
		t.Fatal("not held after press")
	}
	r.Execute(t0.Add(100 * time.Millisecond))
	if fired != 0 {
		t.Errorf("fired %d before one interval", fired)
	}
	r.Execute(t0.Add(3*DefaultHoldInterval + time.Millisecond))
	if fired != 3 {
		t.Errorf("fired %d after three intervals, want 3", fired)
	}
	r.HandleMouseClick(box, image.Pt(101, 201), false, t0.Add(time.Second))
	if fired != 3 {
		t.Errorf("release after repeats fired again: %d", fired)
	}
	r.Execute(t0.Add(10 * time.Second))
	if fired != 3 {
		t.Errorf("fired %d after release", fired)
	}
}

func TestHoldShortPressFiresNothing(t *testing.T) {
	fired := 0
	r := NewRegistry()
	r.Set(&Descriptor{
		ID: ForwardPage, Use: true,
		Location: Location{0, 0, 0, 10, 10},
		Behavior: &Hold{Action: func() { fired++ }},
	})
	t0 := time.Unix(0, 0)
	pt := image.Pt(101, 201)
	r.HandleMouseClick(box, pt, true, t0)
	r.Execute(t0.Add(100 * time.Millisecond))
	if !r.HandleMouseClick(box, pt, false, t0.Add(200*time.Millisecond)) {
		t.Fatal("release not claimed")
	}
	r.Execute(t0.Add(time.Second))
	if fired != 0 {
		t.Errorf("short press fired %d times, want 0", fired)
	}
}

func TestHoldCatchUpIsBounded(t *testing.T) {
	fired := 0
	h := &Hold{Action: func() { fired++ }}
	r := NewRegistry()
	r.Set(&Descriptor{ID: BackPage, Use: true, Location: Location{0, 0, 0, 10, 10}, Behavior: h})

	t0 := time.Unix(1000, 0)
	r.HandleMouseClick(box, image.Pt(101, 201), true, t0)
	r.Execute(t0.Add(5 * time.Second))
	if fired != 1 {
		t.Errorf("late poll fired %d times, want 1", fired)
	}
	r.Execute(t0.Add(5*time.Second + DefaultHoldInterval))
	if fired != 2 {
		t.Errorf("fired %d one interval after the late poll, want 2", fired)
	}
}

func TestReleaseOverAnotherButton(t *testing.T) {
	var got []string
	hold := &Hold{Action: func() { got = append(got, "back") }}
	r := NewRegistry()
	r.Set(&Descriptor{
		ID: Clear, Use: true,
		Location: Location{0, 0, 0, 10, 10},
		Behavior: &Momentary{Action: func() { got = append(got, "clear") }},
	})
	r.Set(&Descriptor{ID: BackPage, Use: true, Location: Location{0, 20, 0, 10, 10}, Behavior: hold})

	t0 := time.Unix(1000, 0)
	if !r.HandleMouseClick(box, image.Pt(121, 201), true, t0) {
		t.Fatal("press not claimed")
	}
	if !r.HandleMouseClick(box, image.Pt(101, 201), false, t0) {
		t.Error("release over Clear not claimed")
	}
	if hold.Held() {
		t.Error("BackPage still held after release")
	}
	if d, _ := r.Get(BackPage); d.State() == Pressed {
		t.Error("BackPage still drawn pressed")
	}
	r.Execute(t0.Add(5 * time.Second))
	if len(got) != 0 {
		t.Errorf("actions after release elsewhere: %v", got)
	}
}

func TestRegistryRelease(t *testing.T) {
	hold := &Hold{}
	r := NewRegistry()
	r.Set(&Descriptor{ID: Clear, Use: true, Location: Location{0, 0, 0, 10, 10}, Behavior: &Momentary{}})
	r.Set(&Descriptor{ID: BackPage, Use: true, Location: Location{0, 20, 0, 10, 10}, Behavior: hold})

	now := time.Now()
	r.HandleMouseClick(box, image.Pt(101, 201), true, now)
	r.HandleMouseClick(box, image.Pt(121, 201), true, now)
	r.Release()
	for _, id := range []ID{Clear, BackPage} {
		if d, _ := r.Get(id); d.State() == Pressed {
			t.Errorf("%v pressed after Release", id)
		}
	}
	if hold.Held() {
		t.Error("hold survived Release")
	}
}

func TestToggleMirrorsPushedState(t *testing.T) {
	var calls []string
	tg := NewToggle(
		func() { calls = append(calls, "on") },
		func() { calls = append(calls, "off") },
	)
	r := NewRegistry()
	r.Set(&Descriptor{ID: AutoMode, Use: true, Location: Location{0, 0, 0, 10, 10}, Behavior: tg})
	pt := image.Pt(101, 201)
	now := time.Now()

	click(r, pt, now)
	tg.SetActivated(true)
	click(r, pt, now)
	tg.SetActivated(false)
	click(r, pt, now)

	if diff := cmp.Diff([]string{"on", "off", "on"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	tg.SetEnabled(false)
	if click(r, pt, now) {
		t.Error("disabled toggle claimed click")
	}
	if len(calls) != 3 {
		t.Errorf("disabled toggle fired: %v", calls)
	}
}

func TestRegistryFirstAcceptorWins(t *testing.T) {
	var got []ID
	r := NewRegistry()
	for _, id := range []ID{ReadJump, Clear} {
		id := id
		r.Set(&Descriptor{
			ID: id, Use: true,
			Location: Location{0, 0, 0, 20, 20},
			Behavior: &Momentary{Action: func() { got = append(got, id) }},
		})
	}
	if !click(r, image.Pt(105, 205), time.Now()) {
		t.Fatal("click not claimed")
	}
	if diff := cmp.Diff([]ID{Clear}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStateAndRender(t *testing.T) {
	display := wintest.NewDisplay(image.Rect(0, 0, 640, 480))
	strip := wintest.NewImage(display, "strip", image.Rect(0, 0, 1200, 10))
	dst := display.ScreenImage()

	tg := NewToggle(nil, nil)
	r := NewRegistry()
	r.Set(&Descriptor{ID: Clear, Use: true, Location: Location{0, 0, 0, 10, 10}, Behavior: &Momentary{}})
	r.Set(&Descriptor{ID: AutoMode, Use: true, Location: Location{1, 0, 0, 10, 10}, Behavior: tg})
	r.Set(&Descriptor{ID: ReadJump, Location: Location{2, 0, 0, 10, 10}, Behavior: &Momentary{}})

	r.SetMousePosition(box, image.Pt(101, 201))
	tg.SetActivated(true)

	if d, _ := r.Get(Clear); d.State() != Hover {
		t.Errorf("Clear state got %d want Hover", d.State())
	}
	if d, _ := r.Get(AutoMode); d.State() != Activated {
		t.Errorf("AutoMode state got %d want Activated", d.State())
	}

	r.Render(dst, strip, box)
	want := []string{
		"screen <- draw r: (100,200)-(110,210) src: strip mask: strip p1: (90,0)",
		"screen <- draw r: (390,200)-(400,210) src: strip mask: strip p1: (1150,0)",
	}
	if diff := cmp.Diff(want, display.(wintest.GettableDrawOps).DrawOps()); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
}
