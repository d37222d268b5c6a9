package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
)

const (
	groundLayer motion.LayerMask = 1
	otherLayer  motion.LayerMask = 2
	dt                           = 1.0 / 60.0
)

func flatWorld() *World {
	w := NewWorld(DefaultGravity)
	w.AddGround(mgl64.Vec2{-50, 0}, mgl64.Vec2{50, 0}, 0, groundLayer)
	return w
}

func TestSphereCastDown(t *testing.T) {
	cases := []struct {
		name   string
		origin mgl64.Vec3
		max    float64
		mask   motion.LayerMask
		want   bool
	}{
		{"reaches_floor", mgl64.Vec3{0, 1, 0}, 0.6, groundLayer, true},
		{"z_does_not_matter", mgl64.Vec3{0, 1, 40}, 0.6, groundLayer, true},
		{"too_short", mgl64.Vec3{0, 1.2, 0}, 0.6, groundLayer, false},
		{"well_above", mgl64.Vec3{0, 10, 0}, 0.6, groundLayer, false},
		{"past_floor_edge", mgl64.Vec3{60, 1, 0}, 0.6, groundLayer, false},
		{"wrong_layer", mgl64.Vec3{0, 1, 0}, 0.6, otherLayer, false},
		{"negative_distance", mgl64.Vec3{0, 1, 0}, -1, groundLayer, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := flatWorld()
			if got := w.SphereCastDown(c.origin, 0.5, c.max, c.mask); got != c.want {
				t.Fatalf("SphereCastDown = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSphereCastDownCrowdedWorld(t *testing.T) {
	// resting capsule: radius 0.5, height 2, standing on a 0.08 thick floor
	const (
		radius = 0.5
		reach  = 0.6
	)
	cases := []struct {
		name   string
		origin mgl64.Vec3
		max    float64
		want   bool
	}{
		{"resting_on_floor", mgl64.Vec3{0, 1.08, 0}, reach, true},
		{"beside_ramp", mgl64.Vec3{11, 1.08, 0}, reach, true},
		{"beside_block", mgl64.Vec3{39, 1.08, 0}, reach, true},
		{"on_block", mgl64.Vec3{40.5, 7, 0}, reach, true},
		{"jumped", mgl64.Vec3{0, 2, 0}, reach, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(DefaultGravity)
			w.AddGround(mgl64.Vec2{-40, 0}, mgl64.Vec2{40, 0}, 0.08, groundLayer)
			w.AddGround(mgl64.Vec2{12, 0}, mgl64.Vec2{20, 2}, 0.08, groundLayer)
			w.AddBlock(mgl64.Vec2{40, 0}, mgl64.Vec2{41, 6}, groundLayer)
			w.AddBlock(mgl64.Vec2{-12, 0}, mgl64.Vec2{-10, 1}, otherLayer)
			if got := w.SphereCastDown(c.origin, radius, c.max, groundLayer); got != c.want {
				t.Fatalf("SphereCastDown = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSphereCastIgnoresCharacter(t *testing.T) {
	w := NewWorld(DefaultGravity)
	b := w.NewCharacter(mgl64.Vec3{0, 0, 0}, 0.5, 2, 1)
	if w.SphereCastDown(b.Position(), 0.5, 5, ^motion.LayerMask(0)) {
		t.Fatalf("probe hit the probing capsule")
	}
}

func TestAddBlockIsGround(t *testing.T) {
	w := NewWorld(DefaultGravity)
	w.AddBlock(mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 0}, otherLayer)
	if !w.SphereCastDown(mgl64.Vec3{0, 1, 0}, 0.5, 0.6, otherLayer) {
		t.Fatalf("expected block top to count as ground")
	}
}

func TestBodyVelocityAndImpulse(t *testing.T) {
	w := NewWorld(0)
	b := w.NewCharacter(mgl64.Vec3{0, 5, 1}, 0.5, 2, 2)

	b.SetVelocity(mgl64.Vec3{1, 2, 3})
	if v := b.Velocity(); v != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("velocity %v, want (1,2,3)", v)
	}

	b.ApplyImpulse(mgl64.Vec3{0, 4, 2})
	if v := b.Velocity(); !v.ApproxEqualThreshold(mgl64.Vec3{1, 4, 4}, 1e-9) {
		t.Fatalf("velocity after impulse %v, want (1,4,4)", v)
	}

	b.SetVelocity(mgl64.Vec3{0, 0, 3})
	w.Step(0.5)
	if z := b.Position().Z(); math.Abs(z-2.5) > 1e-9 {
		t.Fatalf("z %v, want 2.5", z)
	}
	if b.Radius() != 0.5 || b.Height() != 2 {
		t.Fatalf("unexpected capsule %v x %v", b.Radius(), b.Height())
	}
}

func TestFallingBodyLands(t *testing.T) {
	w := flatWorld()
	b := w.NewCharacter(mgl64.Vec3{0, 3, 0}, 0.5, 2, 1)

	var contacts []motion.Contact
	b.OnContact(func(c motion.Contact) { contacts = append(contacts, c) })

	for i := 0; i < 180; i++ {
		w.Step(dt)
	}

	if len(contacts) == 0 {
		t.Fatalf("expected a ground contact")
	}
	if n := contacts[0].Normal; n.Y() < 0.5 {
		t.Fatalf("contact normal %v should point up", n)
	}
	pos := b.Position()
	if math.Abs(pos.Y()-1) > 0.15 {
		t.Fatalf("resting centre %v, want about 1", pos.Y())
	}
	if !w.SphereCastDown(pos, b.Radius(), motion.ProbeDistance(b.Height(), b.Radius(), 0.1), groundLayer) {
		t.Fatalf("resting body should probe as grounded")
	}
}

func TestRemoveCharacter(t *testing.T) {
	w := flatWorld()
	b := w.NewCharacter(mgl64.Vec3{0, 1, 0}, 0.5, 2, 1)
	w.RemoveCharacter(b)
	if len(w.bodies) != 0 || len(w.byShape) != 0 {
		t.Fatalf("character still registered")
	}
	w.RemoveCharacter(b)
	w.Step(dt)
}
