package icons

// Icon generator for installable web app icons
//
// Pipeline:
// 1. Decode the source logo
// 2. Crop to the square region around the logo (see CropBox)
// 3. Pad onto a transparent square canvas (the working square)
// 4. For every configured size: resize, center on the background
//    color, flatten to opaque RGB and write icon-<s>x<s>.png
// 5. Optionally write favicon.ico and a manifest icons fragment

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/config"
)

// Generator renders the configured icon set from one source logo
type Generator struct {
	cfg        *config.Config
	background color.NRGBA
	filter     imaging.ResampleFilter
	logger     *log.Logger
}

// Icon describes one written PNG icon
type Icon struct {
	Size int
	Path string
}

// NewGenerator creates a generator for a validated configuration
func NewGenerator(cfg *config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	bg.A = 0xFF

	filter, err := FilterByName(cfg.Filter)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:        cfg,
		background: bg,
		filter:     filter,
		logger:     log.Default(),
	}, nil
}

// SetLogger replaces the progress logger
func (g *Generator) SetLogger(l *log.Logger) {
	g.logger = l
}

// FilterByName maps a config filter name to a resampling filter
func FilterByName(name string) (imaging.ResampleFilter, error) {
	switch name {
	case "lanczos":
		return imaging.Lanczos, nil
	case "catmullrom":
		return imaging.CatmullRom, nil
	case "box":
		return imaging.Box, nil
	case "linear":
		return imaging.Linear, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown filter %q", name)
}

// IconName returns the file name of the PNG icon for size
func IconName(size int) string {
	return fmt.Sprintf("icon-%dx%d.png", size, size)
}

// Run generates every configured output and returns the PNG icons written.
// Icons written before a failure stay on disk.
func (g *Generator) Run() ([]Icon, error) {
	g.logger.Printf("Loading logo from %s...", g.cfg.Source)
	src, err := LoadSource(g.cfg.Source)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	g.logger.Printf("Original size: %dx%d", b.Dx(), b.Dy())

	box := CropBox(b.Dx(), b.Dy())
	g.logger.Printf("Cropping to: (%d, %d, %d, %d)", box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
	square := WorkingSquare(src)

	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return nil, &IOError{Path: g.cfg.OutputDir, Err: err}
	}

	var written []Icon
	for _, size := range g.cfg.Sizes {
		g.logger.Printf("Generating %dx%d icon...", size, size)

		path := filepath.Join(g.cfg.OutputDir, IconName(size))
		if err := savePNG(path, g.Render(square, size)); err != nil {
			return written, err
		}
		written = append(written, Icon{Size: size, Path: path})
		g.logger.Printf("  ✓ Saved: %s", path)
	}

	if g.cfg.Favicon.Enabled {
		path, err := g.writeFavicon(square)
		if err != nil {
			return written, err
		}
		g.logger.Printf("  ✓ Saved: %s", path)
	}

	if g.cfg.Manifest.Enabled {
		path, err := g.writeManifest(written)
		if err != nil {
			return written, err
		}
		g.logger.Printf("  ✓ Saved: %s", path)
	}

	g.logger.Printf("✅ All icons generated in '%s/'", g.cfg.OutputDir)
	return written, nil
}

// LoadSource decodes the image at path as NRGBA
func LoadSource(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("image has no pixels")}
	}
	return imaging.Clone(img), nil
}

// WorkingSquare crops src to its logo region and pads the result onto a
// transparent square canvas. The canvas edge is max(cropped width, height).
func WorkingSquare(src image.Image) *image.NRGBA {
	b := src.Bounds()
	box := CropBox(b.Dx(), b.Dy()).Add(b.Min)
	cropped := imaging.Crop(src, box)

	cb := cropped.Bounds()
	edge, at := PadOffset(cb.Dx(), cb.Dy())
	canvas := imaging.New(edge, edge, color.Transparent)
	return imaging.Paste(canvas, cropped, at)
}

// Render produces one opaque size×size icon from the working square
func (g *Generator) Render(square image.Image, size int) *image.RGBA {
	logo := LogoEdge(size, g.cfg.Padding)
	off := LogoOffset(size, logo)

	canvas := imaging.New(size, size, g.background)
	resized := imaging.Resize(square, logo, logo, g.filter)
	canvas = imaging.Overlay(canvas, resized, image.Pt(off, off), 1.0)

	return flatten(canvas, g.background)
}

// flatten composites img over the opaque version of bg so no pixel keeps
// partial alpha.
func flatten(img image.Image, bg color.NRGBA) *image.RGBA {
	bg.A = 0xFF
	r := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	dst := image.NewRGBA(r)
	xdraw.Draw(dst, r, image.NewUniform(bg), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, r, img, img.Bounds().Min, xdraw.Over)
	return dst
}

func savePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
