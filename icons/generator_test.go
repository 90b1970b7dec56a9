package icons

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/config"
)

var logoRed = color.NRGBA{R: 0xE0, G: 0x10, B: 0x20, A: 0xFF}

// writeLogo writes a w×h PNG with a transparent background and a red block
// inside the crop region.
func writeLogo(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	box := CropBox(w, h)
	inner := box.Inset(box.Dx() / 5)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			img.SetNRGBA(x, y, logoRed)
		}
	}

	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode logo: %v", err)
	}
	return path
}

func newTestGenerator(t *testing.T, modify func(c *config.Config)) (*Generator, *config.Config) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.Source = writeLogo(t, tmpDir, 800, 400)
	cfg.OutputDir = filepath.Join(tmpDir, "out")
	cfg.Sizes = []int{16, 48, 72}
	if modify != nil {
		modify(cfg)
	}

	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	g.SetLogger(log.New(io.Discard, "", 0))
	return g, cfg
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return img
}

func TestRunWritesOpaqueIcons(t *testing.T) {
	g, cfg := newTestGenerator(t, nil)

	written, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(written) != len(cfg.Sizes) {
		t.Fatalf("Expected %d icons, got %d", len(cfg.Sizes), len(written))
	}

	for i, icon := range written {
		if icon.Size != cfg.Sizes[i] {
			t.Errorf("icon %d: size %d, want %d", i, icon.Size, cfg.Sizes[i])
		}
		if filepath.Base(icon.Path) != IconName(icon.Size) {
			t.Errorf("icon %d: path %s, want name %s", i, icon.Path, IconName(icon.Size))
		}

		img := decodePNG(t, icon.Path)
		b := img.Bounds()
		if b.Dx() != icon.Size || b.Dy() != icon.Size {
			t.Errorf("%s is %dx%d, want %dx%d", icon.Path, b.Dx(), b.Dy(), icon.Size, icon.Size)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
					t.Fatalf("%s: pixel (%d,%d) alpha %d, want opaque", icon.Path, x, y, a)
				}
			}
		}

		// The margin shows the background, the center shows the logo
		r, gr, bl, _ := img.At(0, 0).RGBA()
		if r>>8 != 0x0A || gr>>8 != 0x0A || bl>>8 != 0x0A {
			t.Errorf("%s: corner = (%d,%d,%d), want background #0A0A0A", icon.Path, r>>8, gr>>8, bl>>8)
		}
		r, gr, _, _ = img.At(icon.Size/2, icon.Size/2).RGBA()
		if r>>8 < 0xC0 || gr>>8 > 0x40 {
			t.Errorf("%s: center = (%d,%d), want logo red", icon.Path, r>>8, gr>>8)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	g, cfg := newTestGenerator(t, nil)

	first, err := g.Run()
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	snapshot := make(map[string][]byte)
	for _, icon := range first {
		data, err := os.ReadFile(icon.Path)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", icon.Path, err)
		}
		snapshot[icon.Path] = data
	}

	if _, err := g.Run(); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	for _, size := range cfg.Sizes {
		path := filepath.Join(cfg.OutputDir, IconName(size))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", path, err)
		}
		if !bytes.Equal(data, snapshot[path]) {
			t.Errorf("%s changed between runs", path)
		}
	}
}

func TestWorkingSquare(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		wantEdge int
	}{
		{"wide logo", 800, 400, 320},
		{"very wide logo", 1000, 200, 200},
		{"tall logo", 100, 1000, 40},
		{"single pixel", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			sq := WorkingSquare(src)
			b := sq.Bounds()
			if b.Dx() != b.Dy() {
				t.Fatalf("working square is %dx%d", b.Dx(), b.Dy())
			}
			box := CropBox(tt.w, tt.h)
			if want := max(box.Dx(), box.Dy()); b.Dx() != want {
				t.Errorf("edge = %d, want max(cropped) = %d", b.Dx(), want)
			}
			if b.Dx() != tt.wantEdge {
				t.Errorf("edge = %d, want %d", b.Dx(), tt.wantEdge)
			}
		})
	}
}

func TestWorkingSquarePadsTransparent(t *testing.T) {
	// 1000x200 crops to 200x195, padded 2px top and 3px bottom
	src := image.NewNRGBA(image.Rect(0, 0, 1000, 200))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}

	sq := WorkingSquare(src)
	if a := sq.NRGBAAt(100, 0).A; a != 0 {
		t.Errorf("padding row alpha = %d, want 0", a)
	}
	if a := sq.NRGBAAt(100, 199).A; a != 0 {
		t.Errorf("padding row alpha = %d, want 0", a)
	}
	if a := sq.NRGBAAt(100, 100).A; a != 0xFF {
		t.Errorf("logo alpha = %d, want 255", a)
	}
}

func TestRenderUsesBackgroundWithAlpha(t *testing.T) {
	g, _ := newTestGenerator(t, func(c *config.Config) { c.Background = "#20408080" })

	square := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img := g.Render(square, 32)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xFF}) {
		t.Errorf("corner = %v, want opaque #204080", got)
	}
	if !img.Opaque() {
		t.Error("rendered icon is not opaque")
	}
}

func TestRunDecodeError(t *testing.T) {
	tmpDir := t.TempDir()

	empty := filepath.Join(tmpDir, "empty.png")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	corrupt := filepath.Join(tmpDir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	sources := map[string]string{
		"missing": filepath.Join(tmpDir, "missing.png"),
		"empty":   empty,
		"corrupt": corrupt,
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			g, cfg := newTestGenerator(t, func(c *config.Config) { c.Source = source })

			written, err := g.Run()
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Expected DecodeError, got %v", err)
			}
			if decodeErr.Path != source {
				t.Errorf("DecodeError path = %s, want %s", decodeErr.Path, source)
			}
			if len(written) != 0 {
				t.Errorf("Expected no icons, got %d", len(written))
			}
			if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
				t.Error("output directory should not be created for a bad source")
			}
		})
	}
}

func TestRunIOError(t *testing.T) {
	g, _ := newTestGenerator(t, func(c *config.Config) {
		blocker := filepath.Join(filepath.Dir(c.Source), "blocker")
		if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
		c.OutputDir = filepath.Join(blocker, "icons")
	})

	_, err := g.Run()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected IOError, got %v", err)
	}
}

func TestRunWritesFavicon(t *testing.T) {
	g, cfg := newTestGenerator(t, func(c *config.Config) { c.Favicon.Enabled = true })

	if _, err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "favicon.ico"))
	if err != nil {
		t.Fatalf("Failed to read favicon: %v", err)
	}
	n := len(cfg.Favicon.Sizes)
	if len(data) < 6+16*n {
		t.Fatalf("favicon is %d bytes, too short for %d entries", len(data), n)
	}
	// ICO header: reserved=0, type=1, count (little-endian)
	if data[0] != 0 || data[1] != 0 || data[2] != 1 || data[3] != 0 {
		t.Errorf("header = %x, want ICO", data[:4])
	}
	if int(data[4]) != n || data[5] != 0 {
		t.Errorf("image count = %d, want %d", data[4], n)
	}

	widths := make(map[int]bool)
	for i := 0; i < n; i++ {
		entry := data[6+16*i:]
		if entry[0] != entry[1] {
			t.Errorf("entry %d is %dx%d, want square", i, entry[0], entry[1])
		}
		widths[int(entry[0])] = true
	}
	for _, s := range cfg.Favicon.Sizes {
		if !widths[s] {
			t.Errorf("favicon has no %dx%d entry", s, s)
		}
	}
}

func TestRunWritesManifest(t *testing.T) {
	g, cfg := newTestGenerator(t, func(c *config.Config) {
		c.Manifest.Enabled = true
		c.Manifest.SrcPrefix = "/icons/"
	})

	if _, err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "manifest-icons.json"))
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}
	if len(m.Icons) != len(cfg.Sizes) {
		t.Fatalf("Expected %d manifest icons, got %d", len(cfg.Sizes), len(m.Icons))
	}
	want := ManifestIcon{Src: "/icons/icon-72x72.png", Sizes: "72x72", Type: "image/png", Purpose: "any maskable"}
	if got := m.Icons[2]; got != want {
		t.Errorf("manifest icon = %+v, want %+v", got, want)
	}
}

func TestBuildManifestDefaultPrefix(t *testing.T) {
	icons := []Icon{{Size: 192, Path: filepath.Join("image", "icon-192x192.png")}}
	m := BuildManifest(icons, "image/", "")
	if m.Icons[0].Src != "image/icon-192x192.png" {
		t.Errorf("src = %s, want image/icon-192x192.png", m.Icons[0].Src)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if bytes.Contains(data, []byte("purpose")) {
		t.Errorf("empty purpose should be omitted: %s", data)
	}
}

func TestFilterByName(t *testing.T) {
	for _, name := range config.Filters {
		if _, err := FilterByName(name); err != nil {
			t.Errorf("FilterByName(%q) failed: %v", name, err)
		}
	}
	if _, err := FilterByName("bicubic-ish"); err == nil {
		t.Error("Expected error for unknown filter")
	}
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sizes = nil
	if _, err := NewGenerator(cfg); err == nil {
		t.Error("Expected error for config without sizes")
	}
}
