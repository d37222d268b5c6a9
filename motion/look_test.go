package motion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPitchStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := newRig()
	cfg := DefaultConfig()
	cfg.PitchMin, cfg.PitchMax = -60, 45
	c := mustController(t, cfg, r)

	extremes := []float64{1e12, -1e12, math.Inf(1), math.Inf(-1), math.NaN(), math.MaxFloat64, -math.MaxFloat64}
	for i := 0; i < 2000; i++ {
		var dy float64
		if i%10 == 0 {
			dy = extremes[(i/10)%len(extremes)]
		} else {
			dy = (rng.Float64()*2 - 1) * math.Pow(10, float64(rng.Intn(6)))
		}
		if i%3 == 0 {
			r.schemes.scheme = SchemeGamepad
		} else {
			r.schemes.scheme = SchemeMouse
		}
		c.OnLookInput(mgl64.Vec2{rng.Float64(), dy})
		c.UpdateLook()

		p := c.State().Pitch
		if math.IsNaN(p) || p < cfg.PitchMin || p > cfg.PitchMax {
			t.Fatalf("step %d: dy=%v produced pitch %v outside [%v, %v]", i, dy, p, cfg.PitchMin, cfg.PitchMax)
		}
	}
}

func TestLookSensitivityByScheme(t *testing.T) {
	cases := []struct {
		name   string
		scheme ControlScheme
		want   float64
	}{
		{"mouse", SchemeMouse, 0.1 * 20},
		{"gamepad", SchemeGamepad, 2 * 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig()
			r.schemes.scheme = tc.scheme
			cfg := DefaultConfig()
			cfg.MouseSensitivity = 0.1
			cfg.GamepadSensitivity = 2
			c := mustController(t, cfg, r)

			c.OnLookInput(mgl64.Vec2{20, 20})
			c.UpdateLook()

			s := c.State()
			if math.Abs(s.Pitch-tc.want) > eps {
				t.Fatalf("pitch %v, want %v", s.Pitch, tc.want)
			}
			if math.Abs(s.Yaw-tc.want) > eps {
				t.Fatalf("yaw %v, want %v", s.Yaw, tc.want)
			}
			if s.Scheme != tc.scheme {
				t.Fatalf("scheme %v, want %v", s.Scheme, tc.scheme)
			}
			wantRot := mgl64.QuatRotate(mgl64.DegToRad(tc.want), up)
			if !r.transform.rot.ApproxEqualThreshold(wantRot, 1e-9) {
				t.Fatalf("rotation %v, want %v", r.transform.rot, wantRot)
			}
		})
	}
}

func TestLookPivotAndInvert(t *testing.T) {
	for _, invert := range []bool{false, true} {
		r := newRig()
		cfg := DefaultConfig()
		cfg.InvertLook = invert
		c := mustController(t, cfg, r)

		c.OnLookInput(mgl64.Vec2{0, 100})
		c.UpdateLook()

		applied := 10.0
		if invert {
			applied = -10
		}
		want := mgl64.QuatRotate(mgl64.DegToRad(applied), right)
		if !r.pivot.LocalRotation.ApproxEqualThreshold(want, 1e-9) {
			t.Fatalf("invert=%v: pivot %v, want %v", invert, r.pivot.LocalRotation, want)
		}
		if c.State().Pitch != 10 {
			t.Fatalf("invert=%v: stored pitch %v, want 10", invert, c.State().Pitch)
		}
		if r.transform.rot != mgl64.QuatIdent() {
			t.Fatalf("pitch-only delta changed the body rotation")
		}
	}
}

func TestStaleLookDeltaReapplies(t *testing.T) {
	r := newRig()
	c := mustController(t, DefaultConfig(), r)
	c.OnLookInput(mgl64.Vec2{100, 0})
	c.UpdateLook()
	c.UpdateLook()
	if math.Abs(c.State().Yaw-20) > eps {
		t.Fatalf("yaw %v, want 20 after two frames of the same delta", c.State().Yaw)
	}
	fwd := r.transform.rot.Rotate(forward)
	want := mgl64.Vec3{math.Sin(mgl64.DegToRad(20)), 0, math.Cos(mgl64.DegToRad(20))}
	if !fwd.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("forward %v, want %v", fwd, want)
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{725, 5},
	}
	for _, tc := range cases {
		if got := wrapDegrees(tc.in); math.Abs(got-tc.want) > eps {
			t.Fatalf("wrapDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
