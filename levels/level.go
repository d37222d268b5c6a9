package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/physics"
	"golang.org/x/image/colornames"
)

//go:embed *.json
var LevelsFS embed.FS

const maxLayer = 30

// Level is a side profile of static terrain. Every shape is extruded along Z.
type Level struct {
	Name   string      `json:"name"`
	Spawn  []float64   `json:"spawn,omitempty"`
	Layers []LayerMeta `json:"layers,omitempty"`
	Ground []Segment   `json:"ground,omitempty"`
	Blocks []Block     `json:"blocks,omitempty"`
}

type LayerMeta struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Segment struct {
	A         [2]float64 `json:"a"`
	B         [2]float64 `json:"b"`
	Thickness float64    `json:"thickness"`
	Layer     uint       `json:"layer"`
}

type Block struct {
	Min   [2]float64 `json:"min"`
	Max   [2]float64 `json:"max"`
	Layer uint       `json:"layer"`
}

// LoadLevel reads a level from levels/ on disk, falling back to the
// embedded copy. The .json suffix is optional.
func LoadLevel(name string) (*Level, error) {
	clean := filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	for i, s := range l.Ground {
		if s.Layer > maxLayer {
			return fmt.Errorf("level %s: ground %d layer %d out of range", l.Name, i, s.Layer)
		}
		if s.Thickness < 0 {
			return fmt.Errorf("level %s: ground %d negative thickness", l.Name, i)
		}
	}
	for i, b := range l.Blocks {
		if b.Layer > maxLayer {
			return fmt.Errorf("level %s: block %d layer %d out of range", l.Name, i, b.Layer)
		}
		if b.Min[0] >= b.Max[0] || b.Min[1] >= b.Max[1] {
			return fmt.Errorf("level %s: block %d is empty", l.Name, i)
		}
	}
	return nil
}

// Build adds every ground segment and block to w.
func (l *Level) Build(w *physics.World) {
	if l == nil || w == nil {
		return
	}
	for _, s := range l.Ground {
		w.AddGround(mgl64.Vec2(s.A), mgl64.Vec2(s.B), s.Thickness, LayerBit(s.Layer))
	}
	for _, b := range l.Blocks {
		w.AddBlock(mgl64.Vec2(b.Min), mgl64.Vec2(b.Max), LayerBit(b.Layer))
	}
}

// SpawnPoint returns the level spawn and whether one is set.
func (l *Level) SpawnPoint() (mgl64.Vec3, bool) {
	var p mgl64.Vec3
	if l == nil || len(l.Spawn) == 0 {
		return p, false
	}
	copy(p[:], l.Spawn)
	return p, true
}

// LayerColor resolves a layer's color name, defaulting to gray.
func (l *Level) LayerColor(layer uint) color.RGBA {
	if l != nil && int(layer) < len(l.Layers) {
		if c, ok := colornames.Map[strings.ToLower(l.Layers[layer].Color)]; ok {
			return c
		}
	}
	return colornames.Gray
}

func LayerBit(layer uint) motion.LayerMask {
	return motion.LayerMask(1) << layer
}
