package imageinfo

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, name string, encode func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := encode(file, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProberDetectsFormats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(*os.File, image.Image) error
		format string
	}{
		{name: "png", file: "a.png", encode: func(f *os.File, img image.Image) error { return png.Encode(f, img) }, format: "png"},
		{name: "bmp", file: "a.bmp", encode: func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, format: "bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)
			info, err := NewProber().Probe(path)
			if err != nil {
				t.Fatalf("Probe error: %v", err)
			}
			if info.Format != tt.format || info.Width != 16 || info.Height != 9 {
				t.Fatalf("Probe = %+v", info)
			}
		})
	}
}

func TestProberRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewProber().Probe(path); err == nil {
		t.Fatal("expected error for non-image file")
	}
	if _, err := NewProber().Probe(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
