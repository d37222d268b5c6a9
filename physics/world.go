package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpscontroller/motion"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeGround
)

// DefaultGravity is downward acceleration in units per second squared.
const DefaultGravity = 9.81

// CharacterLayer is the collision category carried by character capsules.
// Ground masks should leave it clear.
const CharacterLayer motion.LayerMask = 1 << 31

// characterGroup keeps ground probes from hitting the probing capsule.
const characterGroup uint = 1

// World owns the Chipmunk space. The space is the vertical X/Y plane with Y
// up; terrain is a side profile extruded along Z, so character Z motion is
// integrated outside Chipmunk.
type World struct {
	space         *cp.Space
	handlersReady bool

	bodies  []*Body
	byShape map[*cp.Shape]*Body
	pending []contactEvent
}

type contactEvent struct {
	body    *Body
	contact motion.Contact
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	w := &World{
		space:   space,
		byShape: make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddGround adds a static terrain segment from a to b on the given layers.
func (w *World) AddGround(a, b mgl64.Vec2, thickness float64, layer motion.LayerMask) *cp.Shape {
	shape := cp.NewSegment(w.space.StaticBody, toCP(a), toCP(b), thickness)
	return w.addStatic(shape, layer)
}

// AddBlock adds a static box spanning min to max in the X/Y plane.
func (w *World) AddBlock(min, max mgl64.Vec2, layer motion.LayerMask) *cp.Shape {
	bb := cp.BB{L: min.X(), B: min.Y(), R: max.X(), T: max.Y()}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	return w.addStatic(shape, layer)
}

func (w *World) addStatic(shape *cp.Shape, layer motion.LayerMask) *cp.Shape {
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeGround)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	return shape
}

// SphereCastDown sweeps a circle of radius from origin straight down by
// maxDistance and reports whether it touches a shape on mask.
//
// Candidates come from a BB query over the whole sweep. Space.SegmentQueryFirst
// prunes the static tree with the zero-width ray, so it misses a floor the
// ray stops short of once the tree holds more than one shape.
func (w *World) SphereCastDown(origin mgl64.Vec3, radius, maxDistance float64, mask motion.LayerMask) bool {
	if w == nil || w.space == nil || maxDistance < 0 || radius < 0 {
		return false
	}
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := cp.Vector{X: origin.X(), Y: origin.Y() - maxDistance}
	sweep := cp.BB{L: start.X - radius, B: end.Y - radius, R: start.X + radius, T: start.Y + radius}
	filter := cp.NewShapeFilter(characterGroup, cp.ALL_CATEGORIES, uint(mask))

	hit := false
	w.space.BBQuery(sweep, filter, func(shape *cp.Shape, _ interface{}) {
		if hit {
			return
		}
		var info cp.SegmentQueryInfo
		hit = shape.SegmentQuery(start, end, radius, &info)
	}, nil)
	return hit
}

// Step advances the simulation by dt seconds and then delivers contact
// callbacks collected during the step.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)

	for _, b := range w.bodies {
		b.afterStep(dt)
	}

	events := w.pending
	w.pending = nil
	for _, ev := range events {
		if ev.body.onContact != nil {
			ev.body.onContact(ev.contact)
		}
	}
}

func (w *World) setupHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	handler := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeGround)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, charIsA := world.byShape[shapeA]
		if !charIsA {
			var okB bool
			body, okB = world.byShape[shapeB]
			if !okB {
				return true
			}
		}

		// report the surface normal pointing back at the character
		n := arb.Normal()
		if charIsA {
			n = n.Neg()
		}
		pos := body.Position()
		world.pending = append(world.pending, contactEvent{
			body: body,
			contact: motion.Contact{
				Point:  pos,
				Normal: mgl64.Vec3{n.X, n.Y, 0},
			},
		})
		return true
	}

	w.handlersReady = true
}

func toCP(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}
