package character

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpscontroller/levels"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/physics"
)

const dt = 1.0 / 60.0

type cues map[motion.ClipID]int

func (c cues) PlayOneShot(id motion.ClipID) { c[id]++ }

func floorWorld() *physics.World {
	w := physics.NewWorld(physics.DefaultGravity)
	w.AddGround(mgl64.Vec2{-100, 0}, mgl64.Vec2{100, 0}, 0, 1)
	return w
}

func spawn(t *testing.T, audio cues) *Character {
	t.Helper()
	c, err := New(floorWorld(), Options{
		Config: motion.DefaultConfig(),
		Spawn:  mgl64.Vec3{0, 3, 0},
		Audio:  audio,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func run(c *Character, ticks int) {
	for i := 0; i < ticks; i++ {
		c.Tick(dt)
		c.Frame()
	}
}

func TestNewRejectsBadSetup(t *testing.T) {
	if _, err := New(nil, Options{Config: motion.DefaultConfig(), Audio: cues{}}); !errors.Is(err, motion.ErrConfiguration) {
		t.Fatalf("nil world: %v", err)
	}

	w := floorWorld()
	cfg := motion.DefaultConfig()
	cfg.GroundMask = 0
	if _, err := New(w, Options{Config: cfg, Audio: cues{}}); !errors.Is(err, motion.ErrConfiguration) {
		t.Fatalf("bad config: %v", err)
	}
	shapes := 0
	w.Space().EachShape(func(*cp.Shape) { shapes++ })
	if shapes != 1 {
		t.Fatalf("failed character left its capsule in the world, %d shapes", shapes)
	}
}

func TestFallAndLand(t *testing.T) {
	audio := cues{}
	c := spawn(t, audio)
	if c.Controller.State().Grounded {
		t.Fatalf("spawned in the air but grounded")
	}

	run(c, 120)
	if !c.Controller.State().Grounded || !c.Animator.Bool(motion.AnimGrounded) {
		t.Fatalf("character should have landed, y=%v", c.Body.Position().Y())
	}
	if audio[motion.ClipLand] < 1 {
		t.Fatalf("landing cue not played")
	}
	if y := c.Body.Position().Y(); math.Abs(y-1) > 0.15 {
		t.Fatalf("resting height %v, want about 1", y)
	}
	if c.Eye().Y() <= c.Body.Position().Y() {
		t.Fatalf("eye should be above the body centre")
	}
}

func TestWalkFootstepsAndJump(t *testing.T) {
	audio := cues{}
	c := spawn(t, audio)
	run(c, 120)

	start := c.Body.Position()
	c.Controller.OnMoveInput(mgl64.Vec2{0, 1}, motion.PhaseStarted)
	c.Controller.OnMoveInput(mgl64.Vec2{0, 1}, motion.PhasePerformed)
	if !c.Controller.FootstepsActive() {
		t.Fatalf("footsteps should start when walking on the ground")
	}
	run(c, 60)

	if dz := c.Body.Position().Z() - start.Z(); math.Abs(dz-5) > 0.01 {
		t.Fatalf("walked %v along Z in one second, want 5", dz)
	}
	if got := audio[motion.ClipFootstep]; got != 3 {
		t.Fatalf("footsteps %d, want 3", got)
	}
	if c.Animator.State() != "walk" {
		t.Fatalf("animator state %q", c.Animator.State())
	}

	lands := audio[motion.ClipLand]
	c.Controller.OnJumpInput(motion.PhaseStarted)
	if audio[motion.ClipJump] != 1 || c.Controller.FootstepsActive() {
		t.Fatalf("jump should cue and pause footsteps")
	}
	run(c, 10)
	if c.Controller.State().Grounded || c.Animator.State() != "air" {
		t.Fatalf("character should be airborne after jumping")
	}
	c.Controller.OnJumpInput(motion.PhaseStarted)
	if audio[motion.ClipJump] != 1 {
		t.Fatalf("airborne jump was not ignored")
	}

	run(c, 120)
	if !c.Controller.State().Grounded {
		t.Fatalf("character should land again")
	}
	if audio[motion.ClipLand] <= lands {
		t.Fatalf("second landing cue missing")
	}
	if !c.Controller.FootstepsActive() {
		t.Fatalf("footsteps should resume after landing while walking")
	}
}

func TestLookTurnsBodyAndPivot(t *testing.T) {
	c := spawn(t, cues{})
	c.Controller.OnLookInput(mgl64.Vec2{900, 0})
	c.Frame()

	f := c.Facing()
	if math.Abs(f.X()-1) > 1e-6 || math.Abs(f.Z()) > 1e-6 {
		t.Fatalf("facing %v after 90 degree yaw, want +X", f)
	}

	c.Controller.OnLookInput(mgl64.Vec2{0, 10000})
	c.Frame()
	if p := c.Controller.State().Pitch; p != c.Controller.Config().PitchMax {
		t.Fatalf("pitch %v not clamped to %v", p, c.Controller.Config().PitchMax)
	}
	if c.Pivot.LocalRotation.ApproxEqual(mgl64.QuatIdent()) {
		t.Fatalf("pivot not pitched")
	}
}

func TestGroundedOnTrainingLevel(t *testing.T) {
	lvl, err := levels.LoadLevel("training")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	w := physics.NewWorld(physics.DefaultGravity)
	lvl.Build(w)
	spawnAt, ok := lvl.SpawnPoint()
	if !ok {
		t.Fatalf("training level has no spawn")
	}

	audio := cues{}
	cfg := motion.DefaultConfig()
	cfg.GroundMask = levels.LayerBit(0)
	c, err := New(w, Options{Config: cfg, Spawn: spawnAt, Audio: audio})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	run(c, 120)
	if !c.Controller.IsGrounded() || !c.Controller.State().Grounded {
		t.Fatalf("not grounded at rest on the training floor, y=%v", c.Body.Position().Y())
	}
	if audio[motion.ClipLand] < 1 {
		t.Fatalf("landing cue not played")
	}

	c.Controller.OnMoveInput(mgl64.Vec2{0, 1}, motion.PhasePerformed)
	run(c, 60)
	if got := audio[motion.ClipFootstep]; got != 3 {
		t.Fatalf("footsteps %d, want 3", got)
	}

	c.Controller.OnJumpInput(motion.PhaseStarted)
	if audio[motion.ClipJump] != 1 {
		t.Fatalf("grounded jump was dropped")
	}
	if vy := c.Body.Velocity().Y(); vy < cfg.JumpImpulse-0.5 {
		t.Fatalf("vertical velocity %v after jump, want about %v", vy, cfg.JumpImpulse)
	}
}

func TestRespawn(t *testing.T) {
	c := spawn(t, cues{})
	c.Body.SetVelocity(mgl64.Vec3{0, -2, 0})
	run(c, 30)

	home := mgl64.Vec3{2, 3, -5}
	c.Respawn(home)
	if p := c.Body.Position(); !p.ApproxEqual(home) {
		t.Fatalf("position %v after respawn, want %v", p, home)
	}
	if v := c.Body.Velocity(); v != (mgl64.Vec3{}) {
		t.Fatalf("velocity %v after respawn, want zero", v)
	}

	run(c, 120)
	if !c.Controller.State().Grounded {
		t.Fatalf("respawned character should land, y=%v", c.Body.Position().Y())
	}
}
