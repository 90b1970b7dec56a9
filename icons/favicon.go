package icons

import (
	"bytes"
	"image"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
)

// writeFavicon renders the working square at every favicon size and packs
// the results into one ICO file.
func (g *Generator) writeFavicon(square image.Image) (string, error) {
	path := filepath.Join(g.cfg.OutputDir, g.cfg.Favicon.Name)

	images := make([]image.Image, 0, len(g.cfg.Favicon.Sizes))
	for _, size := range g.cfg.Favicon.Sizes {
		g.logger.Printf("Generating %dx%d favicon entry...", size, size)
		images = append(images, g.Render(square, size))
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	return path, writeFile(path, buf.Bytes())
}
