package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"golang.org/x/image/bmp"
)

func checkerImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

// tgaFile builds a 2x2 32-bit TGA of checkerImage, bottom-up as most writers
// store it.
func tgaFile(rle bool) []byte {
	h := make([]byte, 18)
	h[2] = TGATypeUncompressed
	if rle {
		h[2] = TGATypeRLE
	}
	h[12], h[14] = 2, 2
	h[16] = 32

	bgra := func(c color.RGBA) []byte { return []byte{c.B, c.G, c.R, c.A} }
	src := checkerImage()
	var px []byte
	for _, y := range []int{1, 0} {
		for x := 0; x < 2; x++ {
			px = append(px, bgra(src.RGBAAt(x, y))...)
		}
	}
	if !rle {
		return append(h, px...)
	}
	// One raw packet of two pixels, then the same two as raw again.
	out := append(h, 0x01)
	out = append(out, px[:8]...)
	out = append(out, 0x01)
	return append(out, px[8:]...)
}

func assertChecker(t *testing.T, img *image.RGBA) {
	t.Helper()
	want := checkerImage()
	if img.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := img.RGBAAt(x, y); got != want.RGBAAt(x, y) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want.RGBAAt(x, y))
			}
		}
	}
}

func TestDecodeFormats(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, checkerImage()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, checkerImage()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ext  string
		data []byte
	}{
		{"png", ".png", pngBuf.Bytes()},
		{"bmp", ".BMP", bmpBuf.Bytes()},
		{"tga raw", ".tga", tgaFile(false)},
		{"tga rle", ".tga", tgaFile(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, tt.ext)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			assertChecker(t, img)
		})
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	short := tgaFile(false)[:20]
	colorMapped := tgaFile(false)
	colorMapped[1] = 1
	bw := tgaFile(false)
	bw[2] = 3
	depth := tgaFile(false)
	depth[16] = 16

	for name, data := range map[string][]byte{
		"header":       {0, 0, 2},
		"truncated":    short,
		"color mapped": colorMapped,
		"grayscale":    bw,
		"16 bit":       depth,
	} {
		if _, err := DecodeTGA(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.tga")
	if err := os.WriteFile(path, tgaFile(false), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertChecker(t, img)

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	garbage := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestImageToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 4, 5, 6))
	src.Set(3, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	img := ImageToRGBA(src)
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestWaveNormalMapUnitNormals(t *testing.T) {
	img := WaveNormalMap(64, 7)
	for y := 0; y < 64; y += 5 {
		for x := 0; x < 64; x += 5 {
			c := img.RGBAAt(x, y)
			nx, ny, nz := DecodeUnit(c.R), DecodeUnit(c.G), DecodeUnit(c.B)
			l := math32.Sqrt(nx*nx + ny*ny + nz*nz)
			if math32.Abs(l-1) > 0.02 {
				t.Fatalf("normal at (%d,%d) has length %f", x, y, l)
			}
			if nz <= 0 {
				t.Fatalf("normal at (%d,%d) points down", x, y)
			}
		}
	}
}

func TestWaveNormalMapSeeds(t *testing.T) {
	a, b := WaveNormalMap(32, 1), WaveNormalMap(32, 1)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different maps")
	}
	if bytes.Equal(a.Pix, WaveNormalMap(32, 2).Pix) {
		t.Error("different seeds produced the same map")
	}
}

// Neighbouring pixels across the wrap must differ no more than neighbours
// inside the map.
func TestProceduralMapsTile(t *testing.T) {
	maps := map[string]*image.RGBA{
		"flow":  FlowMap(64),
		"noise": NoiseMap(64, 4, 3),
		"wave":  WaveNormalMap(64, 5),
	}
	diff := func(a, b color.RGBA) int {
		d := func(x, y uint8) int {
			if x > y {
				return int(x - y)
			}
			return int(y - x)
		}
		return d(a.R, b.R) + d(a.G, b.G) + d(a.B, b.B)
	}

	for name, img := range maps {
		inner, seam := 0, 0
		for y := 0; y < 64; y++ {
			if d := diff(img.RGBAAt(31, y), img.RGBAAt(32, y)); d > inner {
				inner = d
			}
			if d := diff(img.RGBAAt(63, y), img.RGBAAt(0, y)); d > seam {
				seam = d
			}
		}
		if seam > inner+12 {
			t.Errorf("%s: seam step %d exceeds interior step %d", name, seam, inner)
		}
	}
}

func TestFlowMapVectorsBounded(t *testing.T) {
	img := FlowMap(32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := img.RGBAAt(x, y)
			fx, fy := DecodeUnit(c.R), DecodeUnit(c.G)
			if math32.Hypot(fx, fy) > 1.01 {
				t.Fatalf("flow at (%d,%d) longer than 1", x, y)
			}
		}
	}
}

func TestNoiseMapRange(t *testing.T) {
	img := NoiseMap(64, 8, 11)
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo < 64 {
		t.Errorf("noise range [%d, %d] too flat", lo, hi)
	}
}
