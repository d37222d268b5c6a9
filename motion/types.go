package motion

import "github.com/go-gl/mathgl/mgl64"

// Phase is the lifecycle stage of an input action.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseStarted
	PhasePerformed
	PhaseCanceled
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhasePerformed:
		return "performed"
	case PhaseCanceled:
		return "canceled"
	default:
		return "waiting"
	}
}

// ControlScheme classifies the device that produced the latest input.
type ControlScheme int

const (
	SchemeMouse ControlScheme = iota
	SchemeGamepad
)

func (s ControlScheme) String() string {
	if s == SchemeGamepad {
		return "gamepad"
	}
	return "mouse"
}

// LayerMask selects collision categories for spatial queries.
type LayerMask uint

// AnimParam identifies an animator parameter.
type AnimParam int

const (
	AnimWalking AnimParam = iota + 1
	AnimFiring
	AnimGrounded
	AnimJump
	AnimReload
	AnimMelee
)

var animParamNames = map[AnimParam]string{
	AnimWalking:  "walking",
	AnimFiring:   "firing",
	AnimGrounded: "grounded",
	AnimJump:     "jump",
	AnimReload:   "reload",
	AnimMelee:    "melee",
}

func (p AnimParam) String() string {
	if name, ok := animParamNames[p]; ok {
		return name
	}
	return "unknown"
}

// ClipID identifies a set of interchangeable sound clips.
type ClipID int

const (
	ClipFootstep ClipID = iota + 1
	ClipJump
	ClipLand
)

// RequiredClips lists every clip the controller plays.
var RequiredClips = []ClipID{ClipFootstep, ClipJump, ClipLand}

func (c ClipID) String() string {
	switch c {
	case ClipFootstep:
		return "footstep"
	case ClipJump:
		return "jump"
	case ClipLand:
		return "land"
	default:
		return "unknown"
	}
}

// ParseClipID maps a clip name as written in prefab files to its ID.
func ParseClipID(name string) (ClipID, bool) {
	for _, id := range RequiredClips {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}

// CaptureMode is how the platform treats the pointer.
type CaptureMode int

const (
	CaptureNone CaptureMode = iota
	CaptureLocked
)

// State is the controller's mutable motion state.
type State struct {
	Input            mgl64.Vec2
	LookDelta        mgl64.Vec2
	VerticalVelocity float64
	Yaw              float64
	Pitch            float64
	Grounded         bool
	Walking          bool
	Firing           bool
	Scheme           ControlScheme
}

var (
	up      = mgl64.Vec3{0, 1, 0}
	forward = mgl64.Vec3{0, 0, 1}
	right   = mgl64.Vec3{1, 0, 0}
)
