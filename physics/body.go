package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpscontroller/motion"
)

// Body is an upright character capsule. X/Y motion is simulated by Chipmunk;
// Z is integrated each step from the body's own Z velocity.
type Body struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	height float64

	z        float64
	vz       float64
	rotation mgl64.Quat

	onContact func(motion.Contact)
}

// NewCharacter adds a capsule of the given radius and height centred at pos.
func (w *World) NewCharacter(pos mgl64.Vec3, radius, height, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})

	var shape *cp.Shape
	if half := height/2 - radius; half > 0 {
		shape = cp.NewSegment(body, cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}, radius)
	} else {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	}
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(characterGroup, uint(CharacterLayer), cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{
		world:    w,
		body:     body,
		shape:    shape,
		radius:   radius,
		height:   height,
		z:        pos.Z(),
		rotation: mgl64.QuatIdent(),
	}
	w.bodies = append(w.bodies, b)
	w.byShape[shape] = b
	return b
}

// OnContact registers fn for new ground contacts. fn runs after the step
// that produced the contact.
func (b *Body) OnContact(fn func(motion.Contact)) {
	b.onContact = fn
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, b.vz}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v.X(), v.Y())
	b.vz = v.Z()
}

func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Y()}, b.body.Position())
	b.vz += impulse.Z() / b.body.Mass()
}

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(pos mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	b.z = pos.Z()
}

func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Height() float64 { return b.height }

func (b *Body) Rotation() mgl64.Quat { return b.rotation }

func (b *Body) SetRotation(q mgl64.Quat) { b.rotation = q }

func (b *Body) afterStep(dt float64) {
	b.z += b.vz * dt
	b.body.SetAngle(0)
	b.body.SetAngularVelocity(0)
}

// RemoveCharacter takes b out of the space. b must not be used afterwards.
func (w *World) RemoveCharacter(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.byShape, b.shape)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
}
