package anim

import "github.com/milk9111/fpscontroller/motion"

// Animator is an animation parameter store. Bools persist until changed;
// triggers stay pending until consumed by whatever plays the clips.
type Animator struct {
	bools    map[motion.AnimParam]bool
	triggers map[motion.AnimParam]int
}

func NewAnimator() *Animator {
	return &Animator{
		bools:    make(map[motion.AnimParam]bool),
		triggers: make(map[motion.AnimParam]int),
	}
}

func (a *Animator) SetBool(p motion.AnimParam, v bool) {
	if a == nil {
		return
	}
	a.bools[p] = v
}

func (a *Animator) Bool(p motion.AnimParam) bool {
	if a == nil {
		return false
	}
	return a.bools[p]
}

func (a *Animator) SetTrigger(p motion.AnimParam) {
	if a == nil {
		return
	}
	a.triggers[p]++
}

// ConsumeTrigger clears a pending trigger and reports whether it was set.
// Repeated sets before a consume collapse into one.
func (a *Animator) ConsumeTrigger(p motion.AnimParam) bool {
	if a == nil || a.triggers[p] == 0 {
		return false
	}
	delete(a.triggers, p)
	return true
}

// Pending reports whether a trigger is waiting without consuming it.
func (a *Animator) Pending(p motion.AnimParam) bool {
	return a != nil && a.triggers[p] > 0
}

// State names the clip a simple locomotion graph would play.
func (a *Animator) State() string {
	switch {
	case !a.Bool(motion.AnimGrounded):
		return "air"
	case a.Bool(motion.AnimFiring):
		return "fire"
	case a.Bool(motion.AnimWalking):
		return "walk"
	default:
		return "idle"
	}
}
