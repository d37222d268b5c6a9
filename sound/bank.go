package sound

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/fpscontroller/motion"
)

// Player is the playback surface of *audio.Player.
type Player interface {
	IsPlaying() bool
	Rewind() error
	Play()
	SetVolume(v float64)
}

// Clip is one set of interchangeable variants, e.g. several footstep takes.
type Clip struct {
	ID       motion.ClipID
	Volume   float64
	Variants []Player
}

// Bank plays clips by ID. Each play picks a variant through the picker,
// avoiding an immediate repeat when the set has more than one variant.
type Bank struct {
	clips map[motion.ClipID]*clipState
	pick  func(n int) int
	log   *slog.Logger
}

type clipState struct {
	Clip
	last int
}

// NewBank validates that every clip has at least one variant. A nil pick
// uses math/rand.
func NewBank(clips []Clip, pick func(n int) int) (*Bank, error) {
	if pick == nil {
		pick = rand.Intn
	}
	b := &Bank{
		clips: make(map[motion.ClipID]*clipState, len(clips)),
		pick:  pick,
		log:   slog.Default().With("component", "sound"),
	}
	for _, c := range clips {
		if len(c.Variants) == 0 {
			return nil, fmt.Errorf("%w: clip %q has no variants", motion.ErrConfiguration, c.ID)
		}
		for i, p := range c.Variants {
			if p == nil {
				return nil, fmt.Errorf("%w: clip %q variant %d is nil", motion.ErrConfiguration, c.ID, i)
			}
		}
		if _, dup := b.clips[c.ID]; dup {
			return nil, fmt.Errorf("%w: clip %q defined twice", motion.ErrConfiguration, c.ID)
		}
		b.clips[c.ID] = &clipState{Clip: c, last: -1}
	}
	return b, nil
}

func (b *Bank) HasClip(id motion.ClipID) bool {
	if b == nil {
		return false
	}
	_, ok := b.clips[id]
	return ok
}

// PlayOneShot restarts the chosen variant from the beginning.
func (b *Bank) PlayOneShot(id motion.ClipID) {
	if b == nil {
		return
	}
	c, ok := b.clips[id]
	if !ok {
		return
	}

	idx := 0
	if n := len(c.Variants); n > 1 {
		idx = b.pick(n)
		if idx == c.last {
			idx = (idx + 1) % n
		}
	}
	c.last = idx

	p := c.Variants[idx]
	p.SetVolume(c.Volume)
	if err := p.Rewind(); err != nil {
		b.log.Warn("rewind failed", "clip", id.String(), "error", err)
		return
	}
	p.Play()
}

// LoadWAV decodes a wav file into a player on ctx.
func LoadWAV(ctx *audio.Context, data []byte) (*audio.Player, error) {
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return ctx.NewPlayer(stream)
}
