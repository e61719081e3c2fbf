// Package compose renders YAML composition jobs: a canvas surface, solid
// fills and BMP layers blitted on top of each other.
package compose

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/surface"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

// ErrInvalidJob is returned when a job fails validation.
var ErrInvalidJob = errors.New("compose: invalid job")

// Job describes one composition.
type Job struct {
	Canvas Canvas  `yaml:"canvas"`
	Clip   Box     `yaml:"clip,omitempty"`
	Fills  []Fill  `yaml:"fills"`
	Layers []Layer `yaml:"layers"`
	Output string  `yaml:"output"`
}

// Canvas is the destination surface.
type Canvas struct {
	Width      uint32 `yaml:"width"`
	Height     uint32 `yaml:"height"`
	Format     string `yaml:"format"`
	Background string `yaml:"background"`
}

// Fill paints a rectangle. An empty Rect fills the whole canvas.
type Fill struct {
	Rect  Box    `yaml:"rect,omitempty"`
	Color string `yaml:"color"`
}

// Layer blits a BMP file onto the canvas.
type Layer struct {
	Source   string `yaml:"src"`
	SrcRect  Box    `yaml:"src_rect,omitempty"`
	DstRect  Box    `yaml:"dst_rect,omitempty"`
	Scaled   bool   `yaml:"scaled"`
	Convert  string `yaml:"convert,omitempty"`
	Blend    string `yaml:"blend,omitempty"`
	Alpha    *uint8 `yaml:"alpha,omitempty"`
	ColorMod string `yaml:"color_mod,omitempty"`
	ColorKey string `yaml:"color_key,omitempty"`
	RLE      bool   `yaml:"rle"`
}

// Box is a rectangle written as [x, y, w, h]. An empty Box means "not
// set".
type Box []int32

// Rect converts the box. The result is nil for an empty box.
func (b Box) Rect() (*rect.Rect, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) != 4 {
		return nil, fmt.Errorf("%w: rectangle needs 4 numbers, got %d", ErrInvalidJob, len(b))
	}
	if b[2] < 0 || b[3] < 0 {
		return nil, fmt.Errorf("%w: negative rectangle size %dx%d", ErrInvalidJob, b[2], b[3])
	}
	return &rect.Rect{X: b[0], Y: b[1], W: b[2], H: b[3]}, nil
}

// Defaults returns a Job with default values.
func Defaults() Job {
	return Job{
		Canvas: Canvas{
			Width:      256,
			Height:     256,
			Format:     "ARGB8888",
			Background: "#000000",
		},
		Output: "out.bmp",
	}
}

// LoadFromFile loads and validates a job from a YAML file.
func LoadFromFile(path string) (Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Job{}, err
	}
	return Parse(data)
}

// Parse decodes a YAML job on top of Defaults and validates it.
func Parse(data []byte) (Job, error) {
	job := Defaults()
	if err := yaml.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("compose: parse job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Validate checks every field that Render would otherwise reject halfway
// through.
func (j Job) Validate() error {
	if j.Canvas.Width == 0 || j.Canvas.Height == 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidJob, j.Canvas.Width, j.Canvas.Height)
	}
	if _, err := pixels.ParseFormat(j.Canvas.Format); err != nil {
		return fmt.Errorf("%w: canvas: %w", ErrInvalidJob, err)
	}
	if _, err := ParseColor(j.Canvas.Background); err != nil {
		return fmt.Errorf("%w: canvas: %w", ErrInvalidJob, err)
	}
	if _, err := j.Clip.Rect(); err != nil {
		return fmt.Errorf("clip: %w", err)
	}
	for i, f := range j.Fills {
		if _, err := f.Rect.Rect(); err != nil {
			return fmt.Errorf("fill %d: %w", i, err)
		}
		if _, err := ParseColor(f.Color); err != nil {
			return fmt.Errorf("%w: fill %d: %w", ErrInvalidJob, i, err)
		}
	}
	for i, l := range j.Layers {
		if err := l.validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	if j.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidJob)
	}
	return nil
}

func (l Layer) validate() error {
	if l.Source == "" {
		return fmt.Errorf("%w: src is empty", ErrInvalidJob)
	}
	if _, err := l.SrcRect.Rect(); err != nil {
		return err
	}
	if _, err := l.DstRect.Rect(); err != nil {
		return err
	}
	if l.Convert != "" {
		if _, err := pixels.ParseFormat(l.Convert); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJob, err)
		}
	}
	if _, err := ParseBlendMode(l.Blend); err != nil {
		return err
	}
	for _, c := range []string{l.ColorMod, l.ColorKey} {
		if c == "" {
			continue
		}
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJob, err)
		}
	}
	return nil
}

// ParseBlendMode maps a blend mode name. An empty name selects
// surface.BlendBlend.
func ParseBlendMode(name string) (surface.BlendMode, error) {
	switch strings.ToLower(name) {
	case "", "blend":
		return surface.BlendBlend, nil
	case "none":
		return surface.BlendNone, nil
	case "add":
		return surface.BlendAdd, nil
	case "mod":
		return surface.BlendMod, nil
	default:
		return 0, fmt.Errorf("%w: unknown blend mode %q", ErrInvalidJob, name)
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(hex string) (pixels.Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return pixels.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return pixels.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	if len(s) == 6 {
		return pixels.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return pixels.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
