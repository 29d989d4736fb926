package dots

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/animated-dots/internal/anim"
	"github.com/iburimskiy/animated-dots/internal/config"
)

const frame = 16 * time.Millisecond

func tailConfig(active int) config.Counter {
	cfg := config.DefaultCounter()
	cfg.DotCount = 10
	cfg.VisibleDots = 6
	cfg.DotSize = 20
	cfg.SmallDotSize = 15
	cfg.Spacing = 10
	cfg.InitialActive = active
	return cfg
}

func settle(t *testing.T, c *Counter) {
	t.Helper()
	for i := 0; i < 1000 && c.Animating(); i++ {
		c.Update(frame)
	}
	if c.Animating() {
		t.Fatal("counter still animating after 1000 frames")
	}
}

func sizesOf(ds []Dot) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Size
	}
	return out
}

func rolesOf(ds []Dot) []ColorRole {
	out := make([]ColorRole, len(ds))
	for i, d := range ds {
		out[i] = d.Role
	}
	return out
}

func nonNormal(ds []Dot) int {
	n := 0
	for i := range ds {
		if ds[i].State() != StateNormal {
			n++
		}
	}
	return n
}

func TestIncrementAtCapacityIsIgnored(t *testing.T) {
	c := New(tailConfig(10), WithLogger(testr.New(t)))
	before := c.Dots()
	c.Increment()
	if c.Active() != 10 {
		t.Errorf("Active() = %d, want 10", c.Active())
	}
	if c.Animating() {
		t.Error("ignored increment started an animation")
	}
	if diff := cmp.Diff(before, c.Dots()); diff != "" {
		t.Errorf("dots changed (-want +got):\n%s", diff)
	}
}

func TestDecrementAtZeroIsIgnored(t *testing.T) {
	c := New(tailConfig(0), WithLogger(testr.New(t)))
	c.Decrement()
	if c.Active() != 0 {
		t.Errorf("Active() = %d, want 0", c.Active())
	}
	if c.Animating() {
		t.Error("ignored decrement started an animation")
	}
}

func TestEmptyCounterIgnoresEverything(t *testing.T) {
	cfg := config.DefaultCounter()
	cfg.DotCount = 0
	c := New(cfg)
	c.Increment()
	c.Decrement()
	if c.Active() != 0 || len(c.Dots()) != 0 {
		t.Errorf("Active() = %d, %d dots; want 0, 0", c.Active(), len(c.Dots()))
	}
}

func TestSixIncrementsFillTheWindow(t *testing.T) {
	c := New(tailConfig(0))
	for i := 0; i < 6; i++ {
		c.Increment()
		settle(t, c)
	}
	ds := c.Dots()
	if c.Active() != 6 {
		t.Fatalf("Active() = %d, want 6", c.Active())
	}
	// Six of ten active still hides four dots, so both markers show.
	if diff := cmp.Diff([]float64{15, 20, 20, 20, 20, 15}, sizesOf(ds)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ColorRole{A, A, A, A, A, A}, rolesOf(ds)); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if nonNormal(ds) != 0 {
		t.Error("dots left in a transition state")
	}
}

func TestTenIncrementsCompleteTheCount(t *testing.T) {
	c := New(tailConfig(0))
	for i := 0; i < 10; i++ {
		c.Increment()
		settle(t, c)
	}
	ds := c.Dots()
	if c.Active() != 10 {
		t.Fatalf("Active() = %d, want 10", c.Active())
	}
	if diff := cmp.Diff([]float64{15, 20, 20, 20, 20, 20}, sizesOf(ds)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ColorRole{A, A, A, A, A, A}, rolesOf(ds)); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestThreeIncrementsWithoutTail(t *testing.T) {
	cfg := config.DefaultCounter()
	cfg.DotCount = 5
	cfg.VisibleDots = 10
	c := New(cfg)
	for i := 0; i < 3; i++ {
		c.Increment()
		settle(t, c)
	}
	ds := c.Dots()
	if diff := cmp.Diff([]float64{20, 20, 20, 20, 20}, sizesOf(ds)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ColorRole{A, A, A, I, I}, rolesOf(ds)); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestIncrementThenDecrementRoundTrips(t *testing.T) {
	for _, style := range []config.Style{config.StyleBasic, config.StyleEmbellished} {
		for _, start := range []int{0, 3, 5, 6, 8, 9} {
			cfg := tailConfig(start)
			cfg.Style = style
			c := New(cfg)
			before := c.Dots()

			c.Increment()
			settle(t, c)
			c.Decrement()
			settle(t, c)

			if c.Active() != start {
				t.Errorf("%s from %d: Active() = %d", style, start, c.Active())
			}
			if diff := cmp.Diff(before, c.Dots()); diff != "" {
				t.Errorf("%s from %d: dots mismatch (-want +got):\n%s", style, start, diff)
			}
		}
	}
}

func TestDecrementUpdatesCountImmediately(t *testing.T) {
	c := New(tailConfig(3))
	c.Decrement()
	if c.Active() != 2 {
		t.Fatalf("Active() = %d right after Decrement, want 2", c.Active())
	}

	c.Update(frame)
	ds := c.Dots()
	subject := ds[2]
	if subject.State() != StateRemoving || subject.Role != RoleRemoving {
		t.Errorf("subject is %v/%v, want removing/removing", subject.State(), subject.Role)
	}
	if ds[0].Role != RoleActive || ds[1].Role != RoleActive {
		t.Errorf("remaining active dots recolored: %v", rolesOf(ds))
	}
	if _, ok := subject.Phase.(Removing); !ok {
		t.Errorf("subject phase = %T, want Removing", subject.Phase)
	}
}

func TestShakeMovesTheSubject(t *testing.T) {
	c := New(tailConfig(3))
	c.Decrement()

	moved := false
	for i := 0; i < 40; i++ {
		c.Update(frame)
		if p, ok := c.Dots()[2].Phase.(Removing); ok && (p.OffsetX != 0 || p.OffsetY != 0) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("shake never moved the subject")
	}
	settle(t, c)
	if got := c.Dots()[2]; got.Role != RoleInactive || got.State() != StateNormal || got.Size != 20 {
		t.Errorf("subject after removal = %+v", got)
	}
}

func TestIncrementShiftsAFullWindow(t *testing.T) {
	c := New(tailConfig(5))
	c.Increment()
	c.Update(frame)

	if c.XTranslation() <= 0 {
		t.Errorf("XTranslation() = %v, want > 0 while shifting", c.XTranslation())
	}
	if c.Phantom() != EdgeTrailing {
		t.Errorf("Phantom() = %v, want trailing", c.Phantom())
	}
	last := c.Dots()[5].Size
	if last <= 15 || last >= 20 {
		t.Errorf("trailing marker size = %v, want between 15 and 20", last)
	}

	// 400ms of shift, then the scale starts on the subject.
	for i := 0; i < 26; i++ {
		c.Update(frame)
	}
	if c.XTranslation() != 0 || c.Phantom() != EdgeNone {
		t.Errorf("shift not reset: x=%v phantom=%v", c.XTranslation(), c.Phantom())
	}
	if got := c.Dots()[4].State(); got != StateAdding {
		t.Errorf("subject state = %v, want adding", got)
	}
}

func TestIncrementWithoutShiftScalesDirectly(t *testing.T) {
	c := New(tailConfig(2))
	c.Increment()
	c.Update(frame)

	if c.XTranslation() != 0 {
		t.Errorf("XTranslation() = %v, want 0", c.XTranslation())
	}
	p, ok := c.Dots()[2].Phase.(Adding)
	if !ok {
		t.Fatalf("subject phase = %T, want Adding", c.Dots()[2].Phase)
	}
	if p.Alpha <= 0 || p.Alpha >= fadeThreshold {
		t.Errorf("alpha after one frame = %v", p.Alpha)
	}
	// Below the fade threshold the dot stays at its resting size.
	if got := c.Dots()[2].Size; got != 20 {
		t.Errorf("subject size = %v, want 20", got)
	}
}

func TestRippleOnlyInEmbellishedStyle(t *testing.T) {
	for _, tt := range []struct {
		style config.Style
		want  bool
	}{
		{config.StyleEmbellished, true},
		{config.StyleBasic, false},
	} {
		cfg := tailConfig(0)
		cfg.Style = tt.style
		c := New(cfg)
		c.Increment()

		rippled := false
		for i := 0; i < 1000 && c.Animating(); i++ {
			c.Update(frame)
			if c.Dots()[0].State() == StateRipple {
				rippled = true
			}
		}
		if rippled != tt.want {
			t.Errorf("%s: rippled = %v, want %v", tt.style, rippled, tt.want)
		}
	}
}

func TestOnlyTheSubjectLeavesNormal(t *testing.T) {
	c := New(tailConfig(4))
	ops := []func(){c.Increment, c.Increment, c.Increment, c.Decrement, c.Decrement, c.Decrement}
	for _, op := range ops {
		op()
		for i := 0; i < 1000 && c.Animating(); i++ {
			c.Update(frame)
			if n := nonNormal(c.Dots()); n > 1 {
				t.Fatalf("%d dots in transition at once", n)
			}
		}
	}
}

func TestActiveStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := New(tailConfig(0))
	for i := 0; i < 60; i++ {
		if rng.Intn(2) == 0 {
			c.Increment()
		} else {
			c.Decrement()
		}
		settle(t, c)
		if a := c.Active(); a < 0 || a > 10 {
			t.Fatalf("Active() = %d out of range", a)
		}
		want, _ := ComputeSlice(c.Active(), c.window)
		if diff := cmp.Diff(want, sizesOf(c.Dots())); diff != "" {
			t.Fatalf("settled sizes differ from defaults (-want +got):\n%s", diff)
		}
	}
}

func TestDetachRestoresRest(t *testing.T) {
	c := New(tailConfig(5))
	c.Increment()
	for i := 0; i < 5; i++ {
		c.Update(frame)
	}
	c.Detach()

	if c.Animating() {
		t.Error("still animating after Detach")
	}
	if c.XTranslation() != 0 || c.Phantom() != EdgeNone {
		t.Errorf("shift not cleared: x=%v phantom=%v", c.XTranslation(), c.Phantom())
	}
	ds := c.Dots()
	if nonNormal(ds) != 0 {
		t.Error("dots left in a transition state")
	}
	if diff := cmp.Diff([]float64{15, 20, 20, 20, 20, 15}, sizesOf(ds)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}

	// Nothing chained after the cancel.
	for i := 0; i < 60; i++ {
		c.Update(frame)
	}
	if nonNormal(c.Dots()) != 0 {
		t.Error("a cancelled transition chained into the next phase")
	}
}

func TestConfigureClampsAndKeepsSlots(t *testing.T) {
	c := New(tailConfig(7))
	before := c.Dots()
	if len(before) != 6 {
		t.Fatalf("got %d slots, want 6", len(before))
	}

	cfg := tailConfig(0)
	cfg.DotCount = 4
	cfg.VisibleDots = 4
	c.Configure(cfg)

	if c.Active() != 4 {
		t.Errorf("Active() = %d, want 4", c.Active())
	}
	ds := c.Dots()
	if diff := cmp.Diff([]ColorRole{A, A, A, A}, rolesOf(ds)); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if !c.Dirty() {
		t.Error("Configure should mark the counter dirty")
	}
}

func TestSharedClock(t *testing.T) {
	clock := anim.NewClock()
	a := New(tailConfig(0), WithClock(clock))
	b := New(tailConfig(0), WithClock(clock))
	a.Increment()
	b.Increment()
	for i := 0; i < 1000 && clock.Busy(); i++ {
		clock.Advance(frame)
	}
	if a.Animating() || b.Animating() {
		t.Error("counters still animating after the shared clock drained")
	}
	if a.Active() != 1 || b.Active() != 1 {
		t.Errorf("active counts = %d, %d", a.Active(), b.Active())
	}
}

func TestDirtyFlag(t *testing.T) {
	c := New(tailConfig(0))
	if !c.Dirty() {
		t.Error("a new counter should be dirty")
	}
	c.ClearDirty()
	c.Decrement()
	if c.Dirty() {
		t.Error("an ignored command should not dirty the counter")
	}
	c.Increment()
	if !c.Dirty() {
		t.Error("Increment should dirty the counter")
	}
}
