package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/timer"
)

type fakeBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	impulses []mgl64.Vec3
	sets     int
}

func (b *fakeBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v; b.sets++ }
func (b *fakeBody) Position() mgl64.Vec3     { return b.pos }

// ApplyImpulse treats the body as unit mass.
func (b *fakeBody) ApplyImpulse(i mgl64.Vec3) {
	b.impulses = append(b.impulses, i)
	b.vel = b.vel.Add(i)
}

type fakeCollider struct {
	radius, height float64
}

func (c fakeCollider) Radius() float64 { return c.radius }
func (c fakeCollider) Height() float64 { return c.height }

type sphereCast struct {
	origin      mgl64.Vec3
	radius, max float64
	mask        LayerMask
}

// fakeSpace is an infinite floor plane at floorY on layer.
type fakeSpace struct {
	floorY float64
	layer  LayerMask
	casts  []sphereCast
}

func (s *fakeSpace) SphereCastDown(origin mgl64.Vec3, radius, maxDistance float64, mask LayerMask) bool {
	s.casts = append(s.casts, sphereCast{origin, radius, maxDistance, mask})
	if mask&s.layer == 0 {
		return false
	}
	gap := origin.Y() - radius - s.floorY
	return gap <= maxDistance
}

type fakeTransform struct {
	rot mgl64.Quat
}

func (t *fakeTransform) Rotation() mgl64.Quat     { return t.rot }
func (t *fakeTransform) SetRotation(q mgl64.Quat) { t.rot = q }

type fakeAnimator struct {
	bools    map[AnimParam]bool
	triggers []AnimParam
	setCalls int
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{bools: make(map[AnimParam]bool)}
}

func (a *fakeAnimator) SetBool(p AnimParam, v bool) { a.bools[p] = v; a.setCalls++ }
func (a *fakeAnimator) SetTrigger(p AnimParam)      { a.triggers = append(a.triggers, p) }
func (a *fakeAnimator) Bool(p AnimParam) bool       { return a.bools[p] }

type fakeAudio struct {
	plays   []ClipID
	missing map[ClipID]bool
}

func (a *fakeAudio) PlayOneShot(id ClipID)  { a.plays = append(a.plays, id) }
func (a *fakeAudio) HasClip(id ClipID) bool { return !a.missing[id] }

func (a *fakeAudio) count(id ClipID) int {
	n := 0
	for _, p := range a.plays {
		if p == id {
			n++
		}
	}
	return n
}

type fakeSchemes struct {
	scheme ControlScheme
}

func (s *fakeSchemes) ControlScheme() ControlScheme { return s.scheme }

type fakeCapture struct {
	modes []CaptureMode
}

func (c *fakeCapture) SetInputCapture(m CaptureMode) { c.modes = append(c.modes, m) }

type rig struct {
	body      *fakeBody
	space     *fakeSpace
	transform *fakeTransform
	pivot     *CameraPivot
	animator  *fakeAnimator
	audio     *fakeAudio
	schemes   *fakeSchemes
	timers    *timer.Service
	capture   *fakeCapture
}

// newRig places a 2 unit tall, 0.5 radius capsule standing on a floor at y=0.
func newRig() *rig {
	return &rig{
		body:      &fakeBody{pos: mgl64.Vec3{0, 1, 0}},
		space:     &fakeSpace{floorY: 0, layer: 1},
		transform: &fakeTransform{rot: mgl64.QuatIdent()},
		pivot:     &CameraPivot{},
		animator:  newFakeAnimator(),
		audio:     &fakeAudio{},
		schemes:   &fakeSchemes{},
		timers:    timer.NewService(),
		capture:   &fakeCapture{},
	}
}

func (r *rig) deps() Deps {
	return Deps{
		Body:      r.body,
		Collider:  fakeCollider{radius: 0.5, height: 2},
		Space:     r.space,
		Transform: r.transform,
		Pivot:     r.pivot,
		Animator:  r.animator,
		Audio:     r.audio,
		Schemes:   r.schemes,
		Timers:    r.timers,
		Capture:   r.capture,
	}
}

func (r *rig) airborne(height float64) {
	r.body.pos = mgl64.Vec3{0, 1 + height, 0}
}
