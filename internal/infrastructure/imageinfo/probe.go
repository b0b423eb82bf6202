package imageinfo

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// Prober reads image headers with the registered decoders.
type Prober struct{}

// NewProber returns a Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe implements ports.ImageProber.
func (Prober) Probe(path string) (domain.ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.ImageInfo{}, err
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return domain.ImageInfo{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return domain.ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

var _ ports.ImageProber = (*Prober)(nil)
