package sound

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const fadeSeconds = 0.01

// TonePCM renders a sine tone as 16-bit little-endian stereo PCM at
// sampleRate. Both ends fade linearly so short tones do not click.
func TonePCM(sampleRate int, frequency, duration float64) []byte {
	if sampleRate <= 0 || duration <= 0 {
		return nil
	}
	n := int(float64(sampleRate) * duration)
	fade := int(float64(sampleRate) * fadeSeconds)
	if fade*2 > n {
		fade = n / 2
	}

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		amp := 0.3
		switch {
		case i < fade:
			amp *= float64(i) / float64(fade)
		case i >= n-fade:
			amp *= float64(n-1-i) / float64(fade)
		}
		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)))
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// Tone builds a player for a generated tone, used when a clip has no files.
func Tone(ctx *audio.Context, frequency, duration float64) *audio.Player {
	return ctx.NewPlayerFromBytes(TonePCM(ctx.SampleRate(), frequency, duration))
}
