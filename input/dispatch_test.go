package input

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
)

type recorder struct {
	events []string
	looks  []mgl64.Vec2
}

func (r *recorder) OnMoveInput(v mgl64.Vec2, p motion.Phase) {
	r.events = append(r.events, fmt.Sprintf("move %v %g %g", p, v[0], v[1]))
}
func (r *recorder) OnLookInput(d mgl64.Vec2) { r.looks = append(r.looks, d) }
func (r *recorder) OnJumpInput(p motion.Phase) { r.events = append(r.events, "jump "+p.String()) }
func (r *recorder) OnFireInput(p motion.Phase) { r.events = append(r.events, "fire "+p.String()) }
func (r *recorder) OnReloadInput(p motion.Phase) { r.events = append(r.events, "reload "+p.String()) }
func (r *recorder) OnMeleeInput(p motion.Phase) { r.events = append(r.events, "melee "+p.String()) }
func (r *recorder) take() []string { e := r.events; r.events = nil; return e }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestButtonTracker(t *testing.T) {
	var b ButtonTracker
	var got []motion.Phase
	emit := func(p motion.Phase) { got = append(got, p) }

	steps := []struct {
		pressed bool
		want    []motion.Phase
	}{
		{false, nil},
		{true, []motion.Phase{motion.PhaseStarted, motion.PhasePerformed}},
		{true, nil},
		{false, []motion.Phase{motion.PhaseCanceled}},
		{false, nil},
	}
	for i, s := range steps {
		got = nil
		b.Update(s.pressed, emit)
		if len(got) != len(s.want) {
			t.Fatalf("step %d: phases %v, want %v", i, got, s.want)
		}
		for j := range got {
			if got[j] != s.want[j] {
				t.Fatalf("step %d: phases %v, want %v", i, got, s.want)
			}
		}
	}
}

func TestDispatchMoveLifecycle(t *testing.T) {
	d := NewDispatcher(0.2)
	r := &recorder{}

	d.Dispatch(Frame{Move: mgl64.Vec2{0.1, 0}}, r)
	if e := r.take(); len(e) != 0 {
		t.Fatalf("deadzone input produced %v", e)
	}

	d.Dispatch(Frame{Move: mgl64.Vec2{0, 1}}, r)
	want := []string{"move started 0 1", "move performed 0 1"}
	if e := r.take(); !equal(e, want) {
		t.Fatalf("events %v, want %v", e, want)
	}

	d.Dispatch(Frame{Move: mgl64.Vec2{0, 1}}, r)
	if e := r.take(); len(e) != 0 {
		t.Fatalf("unchanged move produced %v", e)
	}

	d.Dispatch(Frame{Move: mgl64.Vec2{1, 1}}, r)
	want = []string{"move performed 1 1"}
	if e := r.take(); !equal(e, want) {
		t.Fatalf("events %v, want %v", e, want)
	}

	d.Dispatch(Frame{}, r)
	want = []string{"move canceled 0 0"}
	if e := r.take(); !equal(e, want) {
		t.Fatalf("events %v, want %v", e, want)
	}
}

func TestDispatchButtonsAndLook(t *testing.T) {
	d := NewDispatcher(0.2)
	r := &recorder{}

	d.Dispatch(Frame{Jump: true, Fire: true, Look: mgl64.Vec2{3, -1}}, r)
	want := []string{"jump started", "jump performed", "fire started", "fire performed"}
	if e := r.take(); !equal(e, want) {
		t.Fatalf("events %v, want %v", e, want)
	}
	d.Dispatch(Frame{Reload: true, Melee: true}, r)
	want = []string{"jump canceled", "fire canceled", "reload started", "reload performed", "melee started", "melee performed"}
	if e := r.take(); !equal(e, want) {
		t.Fatalf("events %v, want %v", e, want)
	}

	if len(r.looks) != 2 || r.looks[0] != (mgl64.Vec2{3, -1}) || r.looks[1] != (mgl64.Vec2{}) {
		t.Fatalf("look should be delivered every frame, got %v", r.looks)
	}
}

func TestDispatchScheme(t *testing.T) {
	d := NewDispatcher(0.2)
	r := &recorder{}
	if d.ControlScheme() != motion.SchemeMouse {
		t.Fatalf("default scheme should be mouse")
	}
	d.Dispatch(Frame{Scheme: motion.SchemeGamepad}, r)
	if d.ControlScheme() != motion.SchemeGamepad {
		t.Fatalf("expected gamepad after gamepad activity")
	}
	d.Dispatch(Frame{Idle: true}, r)
	if d.ControlScheme() != motion.SchemeGamepad {
		t.Fatalf("idle frame should keep the previous scheme")
	}
	d.Dispatch(Frame{Scheme: motion.SchemeMouse}, r)
	if d.ControlScheme() != motion.SchemeMouse {
		t.Fatalf("expected mouse after keyboard activity")
	}
}

func TestSchemeSwitch(t *testing.T) {
	scripted := NewDispatcher(0)
	devices := NewDispatcher(0)
	devices.Dispatch(Frame{Scheme: motion.SchemeGamepad}, &recorder{})

	s := NewSchemeSwitch(scripted)
	if s.ControlScheme() != motion.SchemeMouse {
		t.Fatalf("scripted source should report mouse")
	}
	s.Set(devices)
	if s.ControlScheme() != motion.SchemeGamepad {
		t.Fatalf("switch did not follow the device source")
	}
	s.Set(nil)
	if s.ControlScheme() != motion.SchemeMouse {
		t.Fatalf("empty switch should report mouse")
	}
	var none *SchemeSwitch
	if none.ControlScheme() != motion.SchemeMouse {
		t.Fatalf("nil switch should report mouse")
	}
}
