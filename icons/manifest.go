package icons

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// ManifestIcon is one entry of a web app manifest "icons" array
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest is the fragment merged into manifest.json by hand
type Manifest struct {
	Icons []ManifestIcon `json:"icons"`
}

// BuildManifest lists icons in the order given. Each src is prefix followed
// by the icon file name.
func BuildManifest(icons []Icon, prefix, purpose string) Manifest {
	m := Manifest{Icons: make([]ManifestIcon, 0, len(icons))}
	for _, icon := range icons {
		m.Icons = append(m.Icons, ManifestIcon{
			Src:     prefix + filepath.Base(icon.Path),
			Sizes:   fmt.Sprintf("%dx%d", icon.Size, icon.Size),
			Type:    "image/png",
			Purpose: purpose,
		})
	}
	return m
}

func (g *Generator) writeManifest(written []Icon) (string, error) {
	path := filepath.Join(g.cfg.OutputDir, g.cfg.Manifest.Name)

	prefix := g.cfg.Manifest.SrcPrefix
	if prefix == "" {
		prefix = filepath.ToSlash(filepath.Clean(g.cfg.OutputDir)) + "/"
	}

	data, err := json.MarshalIndent(BuildManifest(written, prefix, g.cfg.Manifest.Purpose), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return path, writeFile(path, append(data, '\n'))
}
