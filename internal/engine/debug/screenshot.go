// Package debug saves render targets to disk for inspection.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/engine/water"
)

// TextureReader reads a texture back as RGBA rows, bottom row first, and
// reports the texture's dimensions.
type TextureReader interface {
	ReadTexture(tex gfx.Texture) (pixels []byte, width, height int32)
}

// ScreenshotCapture writes timestamped PNG files into a directory.
type ScreenshotCapture struct {
	outputDir string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler writing into outputDir.
// An empty outputDir writes into the working directory.
func NewScreenshotCapture(outputDir string) *ScreenshotCapture {
	return &ScreenshotCapture{outputDir: outputDir, now: time.Now}
}

// ImageFromPixels converts bottom-up RGBA rows into an image with row 0 at
// the top.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SaveImage writes img as <name>_<timestamp>.png and returns the path.
func (sc *ScreenshotCapture) SaveImage(name string, img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.filename(name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(filename)
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return filename, nil
}

// SaveSurfaces writes the water's reflection and refraction captures at
// their own sizes. Zero textures are skipped.
func (sc *ScreenshotCapture) SaveSurfaces(r TextureReader, s water.CapturedSurfaces) ([]string, error) {
	var paths []string
	for _, c := range []struct {
		name string
		tex  gfx.Texture
	}{
		{"reflection", s.Reflection},
		{"refraction", s.Refraction},
	} {
		if c.tex == 0 {
			continue
		}
		pixels, width, height := r.ReadTexture(c.tex)
		if width <= 0 || height <= 0 {
			return paths, fmt.Errorf("%s: texture %d has no image", c.name, c.tex)
		}
		img, err := ImageFromPixels(pixels, int(width), int(height))
		if err != nil {
			return paths, fmt.Errorf("%s: %w", c.name, err)
		}
		path, err := sc.SaveImage(c.name, img)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", c.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (sc *ScreenshotCapture) filename(name string) string {
	filename := fmt.Sprintf("%s_%s.png", name, sc.now().Format("2006-01-02_15-04-05"))
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
