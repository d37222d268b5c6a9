package sound

import (
	"log/slog"

	"github.com/milk9111/fpscontroller/motion"
)

// LogSink stands in for a Bank where no audio device exists. It counts and
// logs cues instead of playing them.
type LogSink struct {
	Counts map[motion.ClipID]int
	log    *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{
		Counts: make(map[motion.ClipID]int),
		log:    log.With("component", "sound"),
	}
}

func (s *LogSink) PlayOneShot(id motion.ClipID) {
	s.Counts[id]++
	s.log.Debug("cue", "clip", id.String(), "count", s.Counts[id])
}
