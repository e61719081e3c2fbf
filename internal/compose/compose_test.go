package compose

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/surface"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

func TestParseDefaults(t *testing.T) {
	job, err := Parse([]byte("output: result.bmp\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Defaults()
	want.Output = "result.bmp"
	if diff := cmp.Diff(want, job); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFull(t *testing.T) {
	data := []byte(`
canvas:
  width: 32
  height: 16
  format: rgb888
  background: "#102030"
clip: [1, 1, 30, 14]
fills:
  - rect: [0, 0, 4, 4]
    color: "#ff0000"
layers:
  - src: sprite.bmp
    dst_rect: [4, 4, 8, 8]
    scaled: true
    blend: add
    alpha: 128
    color_key: "#ff00ff"
    rle: true
output: out.bmp
`)
	job, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	alpha := uint8(128)
	want := Job{
		Canvas: Canvas{Width: 32, Height: 16, Format: "rgb888", Background: "#102030"},
		Clip:   Box{1, 1, 30, 14},
		Fills:  []Fill{{Rect: Box{0, 0, 4, 4}, Color: "#ff0000"}},
		Layers: []Layer{{
			Source:   "sprite.bmp",
			DstRect:  Box{4, 4, 8, 8},
			Scaled:   true,
			Blend:    "add",
			Alpha:    &alpha,
			ColorKey: "#ff00ff",
			RLE:      true,
		}},
		Output: "out.bmp",
	}
	if diff := cmp.Diff(want, job); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "canvas: {width: 0}"},
		{"bad format", "canvas: {format: YUV}"},
		{"bad background", "canvas: {background: red}"},
		{"short clip", "clip: [1, 2, 3]"},
		{"negative fill", "fills: [{rect: [0, 0, -1, 2], color: '#000000'}]"},
		{"bad fill color", "fills: [{color: '#12'}]"},
		{"layer without src", "layers: [{scaled: true}]"},
		{"bad blend", "layers: [{src: a.bmp, blend: multiply}]"},
		{"bad convert", "layers: [{src: a.bmp, convert: nope}]"},
		{"bad key", "layers: [{src: a.bmp, color_key: '#zzzzzz'}]"},
		{"empty output", "output: ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidJob) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidJob", tt.yaml, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    pixels.Color
		wantErr bool
	}{
		{"#ff8000", pixels.RGB(255, 128, 0), false},
		{"00ff00", pixels.RGB(0, 255, 0), false},
		{"#11223344", pixels.RGBA(0x11, 0x22, 0x33, 0x44), false},
		{"#fff", pixels.Color{}, true},
		{"#gggggg", pixels.Color{}, true},
		{"", pixels.Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseBlendMode(t *testing.T) {
	for name, want := range map[string]surface.BlendMode{
		"":      surface.BlendBlend,
		"none":  surface.BlendNone,
		"Blend": surface.BlendBlend,
		"ADD":   surface.BlendAdd,
		"mod":   surface.BlendMod,
	} {
		got, err := ParseBlendMode(name)
		if err != nil || got != want {
			t.Errorf("ParseBlendMode(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}

// writeSprite saves a 4x4 magenta sprite with a red 2x2 center.
func writeSprite(t *testing.T, dir string) string {
	t.Helper()
	s, err := surface.New(4, 4, pixels.RGB888)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		_ = s.Close()
	}()
	if err := s.FillRect(nil, pixels.RGB(255, 0, 255)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if err := s.FillRect(rect.Ptr(rect.MustNew(1, 1, 2, 2)), pixels.RGB(255, 0, 0)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	path := filepath.Join(dir, "sprite.bmp")
	if err := s.SaveBMP(path); err != nil {
		t.Fatalf("SaveBMP: %v", err)
	}
	return path
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir)

	job := Defaults()
	job.Canvas = Canvas{Width: 8, Height: 8, Format: "RGB888", Background: "#0000ff"}
	job.Fills = []Fill{{Rect: Box{0, 0, 8, 1}, Color: "#00ff00"}}
	job.Layers = []Layer{{Source: "sprite.bmp", DstRect: Box{2, 2, 0, 0}, ColorKey: "#ff00ff"}}

	canvas, err := Render(job, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	defer func() {
		_ = canvas.Close()
	}()

	tests := []struct {
		x, y int
		want pixels.Color
	}{
		{0, 0, pixels.RGB(0, 255, 0)},
		{7, 0, pixels.RGB(0, 255, 0)},
		{0, 7, pixels.RGB(0, 0, 255)},
		{2, 2, pixels.RGB(0, 0, 255)}, // keyed out
		{3, 3, pixels.RGB(255, 0, 0)},
		{4, 4, pixels.RGB(255, 0, 0)},
		{5, 5, pixels.RGB(0, 0, 255)},
	}
	for _, tt := range tests {
		if got := pixels.FromColor(canvas.At(tt.x, tt.y)); got != tt.want {
			t.Errorf("At(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderScaledWithClip(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir)

	job := Defaults()
	job.Canvas = Canvas{Width: 8, Height: 8, Format: "RGB888", Background: "#000000"}
	job.Clip = Box{0, 0, 8, 4}
	job.Layers = []Layer{{Source: "sprite.bmp", Scaled: true, Convert: "ARGB8888"}}

	canvas, err := Render(job, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	defer func() {
		_ = canvas.Close()
	}()

	magenta := pixels.RGB(255, 0, 255)
	red := pixels.RGB(255, 0, 0)
	black := pixels.RGB(0, 0, 0)
	if got := pixels.FromColor(canvas.At(0, 0)); got != magenta {
		t.Errorf("At(0,0) = %v, want %v", got, magenta)
	}
	if got := pixels.FromColor(canvas.At(3, 3)); got != red {
		t.Errorf("At(3,3) = %v, want %v", got, red)
	}
	// Below the clip rectangle nothing is drawn.
	if got := pixels.FromColor(canvas.At(3, 5)); got != black {
		t.Errorf("At(3,5) = %v, want %v", got, black)
	}
}

func TestRenderMissingLayer(t *testing.T) {
	job := Defaults()
	job.Layers = []Layer{{Source: "missing.bmp"}}
	if _, err := Render(job, t.TempDir()); err == nil {
		t.Fatal("Render with a missing layer succeeded")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir)
	cfg := []byte(`
canvas: {width: 6, height: 6, format: RGB24, background: "#ffffff"}
layers:
  - src: sprite.bmp
    dst_rect: [1, 1, 0, 0]
output: composed.bmp
`)
	path := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(path, cfg, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := Run(path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := filepath.Join(dir, "composed.bmp"); out != want {
		t.Errorf("Run wrote %q, want %q", out, want)
	}

	got, err := surface.LoadBMP(out)
	if err != nil {
		t.Fatalf("LoadBMP: %v", err)
	}
	defer func() {
		_ = got.Close()
	}()
	if w, h := got.Size(); w != 6 || h != 6 {
		t.Errorf("size = %dx%d, want 6x6", w, h)
	}
	if c := pixels.FromColor(got.At(0, 0)); c != pixels.RGB(255, 255, 255) {
		t.Errorf("At(0,0) = %v, want white", c)
	}
	if c := pixels.FromColor(got.At(2, 2)); c != pixels.RGB(255, 0, 0) {
		t.Errorf("At(2,2) = %v, want red", c)
	}
}
