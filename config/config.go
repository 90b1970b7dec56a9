package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config represents the icon generator configuration
type Config struct {
	Source     string         `yaml:"source"`
	OutputDir  string         `yaml:"output_dir"`
	Background string         `yaml:"background"`
	Sizes      []int          `yaml:"sizes"`
	Padding    float64        `yaml:"padding"`
	Filter     string         `yaml:"filter"`
	Favicon    FaviconConfig  `yaml:"favicon"`
	Manifest   ManifestConfig `yaml:"manifest"`
}

type FaviconConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
	Sizes   []int  `yaml:"sizes"`
}

type ManifestConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Name      string `yaml:"name"`
	SrcPrefix string `yaml:"src_prefix"`
	Purpose   string `yaml:"purpose"`
}

// Filters lists the accepted resampling filter names.
var Filters = []string{"lanczos", "catmullrom", "box", "linear"}

// Default returns the configuration the generator runs with when no file is given.
func Default() *Config {
	return &Config{
		Source:     "image/gcaLogo.png",
		OutputDir:  "image",
		Background: "#0A0A0A",
		Sizes:      []int{72, 96, 128, 144, 152, 192, 384, 512},
		Padding:    0.10,
		Filter:     "lanczos",
		Favicon: FaviconConfig{
			Name:  "favicon.ico",
			Sizes: []int{16, 32, 48},
		},
		Manifest: ManifestConfig{
			Name:    "manifest-icons.json",
			Purpose: "any maskable",
		},
	}
}

// Load reads and parses the configuration file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can produce icons
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(c.Sizes) == 0 {
		return fmt.Errorf("at least one size is required")
	}
	if c.Padding < 0 || c.Padding >= 0.5 {
		return fmt.Errorf("padding must be in [0, 0.5), got %v", c.Padding)
	}
	if err := c.validateSizes("sizes", c.Sizes); err != nil {
		return err
	}
	if c.Favicon.Enabled {
		if c.Favicon.Name == "" {
			return fmt.Errorf("favicon.name is required")
		}
		if len(c.Favicon.Sizes) == 0 {
			return fmt.Errorf("favicon.sizes is required")
		}
		if err := c.validateSizes("favicon.sizes", c.Favicon.Sizes); err != nil {
			return err
		}
		for _, s := range c.Favicon.Sizes {
			if s > 256 {
				return fmt.Errorf("favicon.sizes: %d exceeds the ICO limit of 256", s)
			}
		}
	}
	if c.Manifest.Enabled && c.Manifest.Name == "" {
		return fmt.Errorf("manifest.name is required")
	}
	if !validFilter(c.Filter) {
		return fmt.Errorf("unknown filter %q (want one of %s)", c.Filter, strings.Join(Filters, ", "))
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSizes(field string, sizes []int) error {
	seen := make(map[int]bool, len(sizes))
	for _, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("%s: size must be positive, got %d", field, s)
		}
		if seen[s] {
			return fmt.Errorf("%s: duplicate size %d", field, s)
		}
		seen[s] = true
		if int(float64(s)*(1-2*c.Padding)) < 1 {
			return fmt.Errorf("%s: size %d leaves no room for the logo at padding %v", field, s, c.Padding)
		}
	}
	return nil
}

func validFilter(name string) bool {
	for _, f := range Filters {
		if f == name {
			return true
		}
	}
	return false
}

// BackgroundColor parses Background as a hex triplet or a CSS color name
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return ParseColor(c.Background)
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA or a CSS/SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("background is required")
	}

	if !strings.HasPrefix(s, "#") {
		rgba, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
		}
		return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
