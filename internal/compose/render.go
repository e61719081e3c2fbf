package compose

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/surface"
	"github.com/gogpu/surface/pixels"
)

// Render builds the canvas described by job. Relative layer sources are
// resolved against baseDir. The caller owns the returned surface.
func Render(job Job, baseDir string) (*surface.Surface, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	format, _ := pixels.ParseFormat(job.Canvas.Format)
	canvas, err := surface.New(job.Canvas.Width, job.Canvas.Height, format)
	if err != nil {
		return nil, fmt.Errorf("compose: canvas: %w", err)
	}
	if err := render(job, baseDir, canvas); err != nil {
		_ = canvas.Close()
		return nil, err
	}
	return canvas, nil
}

func render(job Job, baseDir string, canvas *surface.Surface) error {
	log := surface.Logger()

	bg, _ := ParseColor(job.Canvas.Background)
	if err := canvas.FillRect(nil, bg); err != nil {
		return fmt.Errorf("compose: background: %w", err)
	}

	clip, _ := job.Clip.Rect()
	if clip != nil && !canvas.SetClipRect(clip) {
		log.Warn("compose: clip rectangle is empty", "clip", clip.String())
	}

	for i, f := range job.Fills {
		area, _ := f.Rect.Rect()
		c, _ := ParseColor(f.Color)
		if err := canvas.FillRect(area, c); err != nil {
			return fmt.Errorf("compose: fill %d: %w", i, err)
		}
	}

	for i, l := range job.Layers {
		if err := drawLayer(canvas, l, baseDir); err != nil {
			return fmt.Errorf("compose: layer %d (%s): %w", i, l.Source, err)
		}
	}
	log.Debug("compose: rendered", "fills", len(job.Fills), "layers", len(job.Layers))
	return nil
}

func drawLayer(canvas *surface.Surface, l Layer, baseDir string) error {
	path := l.Source
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	loaded, err := surface.LoadBMP(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = loaded.Close()
	}()

	src := loaded
	if l.Convert != "" {
		format, _ := pixels.ParseFormat(l.Convert)
		conv, err := loaded.ConvertFormat(format)
		if err != nil {
			return err
		}
		defer func() {
			_ = conv.Close()
		}()
		src = conv
	}

	if err := configureLayer(src, l); err != nil {
		return err
	}

	srcRect, _ := l.SrcRect.Rect()
	dstRect, _ := l.DstRect.Rect()
	blit := src.Blit
	if l.Scaled {
		blit = src.BlitScaled
	}
	drawn, err := blit(srcRect, canvas, dstRect)
	if err != nil {
		return err
	}
	if drawn != nil {
		surface.Logger().Debug("compose: layer drawn", "src", l.Source, "area", drawn.String())
	}
	return nil
}

func configureLayer(src *surface.Surface, l Layer) error {
	if l.ColorKey != "" {
		key, _ := ParseColor(l.ColorKey)
		if err := src.SetColorKey(true, key); err != nil {
			return err
		}
	}
	if l.ColorMod != "" {
		mod, _ := ParseColor(l.ColorMod)
		src.SetColorMod(mod)
	}
	if l.Alpha != nil {
		src.SetAlphaMod(*l.Alpha)
	}
	if l.Blend != "" {
		mode, _ := ParseBlendMode(l.Blend)
		if err := src.SetBlendMode(mode); err != nil {
			return err
		}
	}
	if l.RLE {
		src.EnableRLE()
	}
	return nil
}

// Run loads the job at path, renders it and saves the result. A relative
// output path is resolved against the job file's directory. It returns
// the path written.
func Run(path string) (string, error) {
	job, err := LoadFromFile(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	canvas, err := Render(job, dir)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = canvas.Close()
	}()

	out := job.Output
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	if err := canvas.SaveBMP(out); err != nil {
		return "", fmt.Errorf("compose: save: %w", err)
	}
	surface.Logger().Info("compose: written", "output", out,
		"width", job.Canvas.Width, "height", job.Canvas.Height)
	return out, nil
}
