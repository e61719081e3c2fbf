// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command surfacetool inspects, converts and composes BMP images with the
// surface package.
package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/surface"
	"github.com/gogpu/surface/internal/compose"
	"github.com/gogpu/surface/internal/parallel"
	"github.com/gogpu/surface/pixels"
	"github.com/gogpu/surface/rect"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "surfacetool:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "surfacetool",
		Usage: "inspect, convert and compose BMP images",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log debug messages to stderr"},
		},
		Before: func(c *cli.Context) error {
			setupLogger(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			infoCommand(),
			convertCommand(),
			fillCommand(),
			composeCommand(),
		},
	}
}

// setupLogger routes package logs to stderr: human-readable text on a
// terminal, JSON otherwise.
func setupLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	surface.SetLogger(slog.New(h))
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print the size and pixel format of BMP files",
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("info: no input files")
			}
			for _, path := range c.Args().Slice() {
				if err := printInfo(c, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printInfo(c *cli.Context, path string) error {
	s, err := surface.LoadBMP(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	pf := s.PixelFormat()
	w, h := s.Size()
	_, err = fmt.Fprintf(c.App.Writer, "%s: %dx%d pitch=%d format=%s bpp=%d alpha=%t\n",
		path, w, h, s.Pitch(), pf.Enum(), pf.BitsPerPixel(), pf.HasAlpha())
	if err != nil {
		return err
	}
	if p := pf.Palette(); p != nil {
		_, err = fmt.Fprintf(c.App.Writer, "  palette: %d colors\n", p.Len())
	}
	return err
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a BMP file to another pixel format and size",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "target pixel format, e.g. RGB24 or ARGB8888"},
			&cli.UintFlag{Name: "width", Usage: "target width (0 keeps the source width)"},
			&cli.UintFlag{Name: "height", Usage: "target height (0 keeps the source height)"},
			&cli.BoolFlag{Name: "smooth", Usage: "resample with Catmull-Rom instead of nearest neighbor"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("convert: expected IN and OUT")
			}
			src, err := surface.LoadBMP(c.Args().Get(0))
			if err != nil {
				return err
			}
			defer func() {
				_ = src.Close()
			}()

			format := src.PixelFormatEnum()
			if name := c.String("format"); name != "" {
				if format, err = pixels.ParseFormat(name); err != nil {
					return err
				}
			}
			w, h := src.Size()
			if v := uint32(c.Uint("width")); v != 0 {
				w = v
			}
			if v := uint32(c.Uint("height")); v != 0 {
				h = v
			}

			out, err := resize(src, w, h, format, c.Bool("smooth"))
			if err != nil {
				return err
			}
			defer func() {
				_ = out.Close()
			}()
			return out.SaveBMP(c.Args().Get(1))
		},
	}
}

// resize converts src to format at w x h. Nearest-neighbor resampling goes
// through BlitScaled; smooth resampling goes through image/draw.
func resize(src *surface.Surface, w, h uint32, format pixels.PixelFormatEnum, smooth bool) (*surface.Surface, error) {
	sw, sh := src.Size()
	if w == sw && h == sh {
		return src.ConvertFormat(format)
	}
	if smooth {
		dst := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src.ToImage(), src.Bounds(), draw.Src, nil)
		return surface.FromImage(dst, format)
	}

	conv, err := src.ConvertFormat(format)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = conv.Close()
	}()
	out, err := surface.New(w, h, format)
	if err != nil {
		return nil, err
	}
	if format.IsIndexed() {
		if err := out.SetPalette(conv.PixelFormat().Palette()); err != nil {
			_ = out.Close()
			return nil, err
		}
	}
	if err := conv.SetBlendMode(surface.BlendNone); err != nil {
		_ = out.Close()
		return nil, err
	}
	if err := conv.SetColorKey(false, pixels.Color{}); err != nil {
		_ = out.Close()
		return nil, err
	}
	if _, err := conv.BlitScaled(nil, out, nil); err != nil {
		_ = out.Close()
		return nil, err
	}
	return out, nil
}

func fillCommand() *cli.Command {
	return &cli.Command{
		Name:      "fill",
		Usage:     "create a BMP file filled with a solid color",
		ArgsUsage: "OUT",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "width", Value: 64},
			&cli.UintFlag{Name: "height", Value: 64},
			&cli.StringFlag{Name: "format", Value: "RGB24"},
			&cli.StringFlag{Name: "color", Value: "#000000", Usage: "#rrggbb or #rrggbbaa"},
			&cli.IntSliceFlag{Name: "rect", Usage: "restrict the fill to x,y,w,h"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("fill: expected OUT")
			}
			format, err := pixels.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}
			col, err := compose.ParseColor(c.String("color"))
			if err != nil {
				return err
			}
			area, err := parseRect(c.IntSlice("rect"))
			if err != nil {
				return fmt.Errorf("fill: --rect: %w", err)
			}

			s, err := surface.New(uint32(c.Uint("width")), uint32(c.Uint("height")), format)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()
			if err := s.FillRect(area, col); err != nil {
				return err
			}
			return s.SaveBMP(c.Args().Get(0))
		},
	}
}

// errRectRange reports a --rect position outside the int32 range.
var errRectRange = errors.New("position out of range")

// parseRect turns x,y,w,h into a rectangle. An empty slice means no
// rectangle.
func parseRect(v []int) (*rect.Rect, error) {
	if len(v) == 0 {
		return nil, nil
	}
	if len(v) != 4 {
		return nil, fmt.Errorf("needs 4 numbers, got %d", len(v))
	}
	for _, n := range v[:2] {
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d", errRectRange, n)
		}
	}
	if v[2] < 0 || v[3] < 0 {
		return nil, fmt.Errorf("%w: %dx%d", surface.ErrInvalidRect, v[2], v[3])
	}
	if v[2] > rect.MaxSize || v[3] > rect.MaxSize {
		return nil, fmt.Errorf("%w: %dx%d", rect.ErrTooLarge, v[2], v[3])
	}
	r := rect.MustNew(int32(v[0]), int32(v[1]), uint32(v[2]), uint32(v[3]))
	return &r, nil
}

func composeCommand() *cli.Command {
	return &cli.Command{
		Name:      "compose",
		Usage:     "render YAML composition jobs",
		ArgsUsage: "JOB.yaml...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "jobs", Usage: "number of jobs rendered at once (0 uses all CPUs)"},
		},
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return errors.New("compose: no job files")
			}

			pool := parallel.NewPool(c.Int("jobs"))
			defer pool.Close()

			outs := make([]string, len(paths))
			tasks := make([]parallel.Task, len(paths))
			for i, path := range paths {
				tasks[i] = func() error {
					out, err := compose.Run(path)
					outs[i] = out
					return err
				}
			}
			var failed []error
			for i, err := range pool.Run(tasks) {
				if err != nil {
					failed = append(failed, fmt.Errorf("%s: %w", paths[i], err))
					continue
				}
				if _, err := fmt.Fprintln(c.App.Writer, outs[i]); err != nil {
					return err
				}
			}
			return errors.Join(failed...)
		},
	}
}
