package sound

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/fpscontroller/assets"
	"github.com/milk9111/fpscontroller/prefabs"
)

const defaultToneDuration = 0.08

// BankFromSpec builds a bank from prefab audio entries. Listed files are
// read from the embedded assets; entries without files use their tones. A
// file entry ending in "*" names every embedded clip with that prefix.
func BankFromSpec(ctx *audio.Context, specs []prefabs.AudioSpec, pick func(n int) int) (*Bank, error) {
	clips := make([]Clip, 0, len(specs))
	for _, s := range specs {
		id, err := s.Clip()
		if err != nil {
			return nil, err
		}
		c := Clip{ID: id, Volume: s.Volume}
		if c.Volume <= 0 {
			c.Volume = 1
		}

		files, err := expandFiles(s.Files)
		if err != nil {
			return nil, fmt.Errorf("sound: %s: %w", s.Name, err)
		}
		for _, f := range files {
			data, err := assets.LoadAudio(f)
			if err != nil {
				return nil, fmt.Errorf("sound: %s: %w", s.Name, err)
			}
			p, err := LoadWAV(ctx, data)
			if err != nil {
				return nil, fmt.Errorf("sound: %s %s: %w", s.Name, f, err)
			}
			c.Variants = append(c.Variants, p)
		}
		if len(s.Files) == 0 {
			for _, t := range s.Tones {
				d := t.Duration
				if d <= 0 {
					d = defaultToneDuration
				}
				c.Variants = append(c.Variants, Tone(ctx, t.Frequency, d))
			}
		}
		clips = append(clips, c)
	}
	return NewBank(clips, pick)
}

func expandFiles(files []string) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		prefix, ok := strings.CutSuffix(f, "*")
		if !ok {
			out = append(out, f)
			continue
		}
		matches := assets.Audio(strings.TrimPrefix(prefix, "assets/"))
		if len(matches) == 0 {
			return nil, fmt.Errorf("no audio assets match %q", f)
		}
		out = append(out, matches...)
	}
	return out, nil
}
