package input

import "github.com/milk9111/fpscontroller/motion"

// SchemeSwitch forwards ControlScheme to whichever source currently drives
// input.
type SchemeSwitch struct {
	src motion.SchemeSource
}

func NewSchemeSwitch(src motion.SchemeSource) *SchemeSwitch {
	return &SchemeSwitch{src: src}
}

// Set routes scheme queries to src. A nil src reports the mouse scheme.
func (s *SchemeSwitch) Set(src motion.SchemeSource) {
	s.src = src
}

func (s *SchemeSwitch) ControlScheme() motion.ControlScheme {
	if s == nil || s.src == nil {
		return motion.SchemeMouse
	}
	return s.src.ControlScheme()
}
