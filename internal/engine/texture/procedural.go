package texture

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// The generators below produce tileable maps so they can repeat across the
// water without seams.

// FlowMap returns a size x size flow map of meandering currents with a drift
// along +X. Directions are stored in R and G as v*0.5+0.5.
func FlowMap(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float32(x)/float32(size)*2*math32.Pi
			v := float32(y)/float32(size)*2*math32.Pi

			fx := 0.6*math32.Sin(v) + 0.3
			fy := -0.6 * math32.Sin(u)
			if l := math32.Hypot(fx, fy); l > 1 {
				fx, fy = fx/l, fy/l
			}
			img.SetRGBA(x, y, color.RGBA{R: encodeUnit(fx), G: encodeUnit(fy), B: 0, A: 255})
		}
	}
	return img
}

// NoiseMap returns tileable value noise in [0, 1] stored in all channels,
// with cells lattice cells per side.
func NoiseMap(size, cells int, seed uint32) *image.RGBA {
	if cells < 1 {
		cells = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx := float32(x) / float32(size) * float32(cells)
			fy := float32(y) / float32(size) * float32(cells)
			n := valueNoise(fx, fy, cells, seed)
			c := uint8(n*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: c, G: c, B: c, A: 255})
		}
	}
	return img
}

// WaveNormalMap returns a tangent-space normal map (+Z up in B) of a sum of
// waves with whole-number frequencies. Different seeds give different
// directions, so two maps can be layered without repeating together.
func WaveNormalMap(size int, seed uint32) *image.RGBA {
	type wave struct{ kx, ky, amp, phase float32 }

	waves := make([]wave, 0, 6)
	h := seed
	for i := 0; i < 6; i++ {
		h = hash32(h + uint32(i)*0x9e3779b9)
		kx := float32(int(h%7) - 3)
		ky := float32(int((h>>8)%7) - 3)
		if kx == 0 && ky == 0 {
			kx = 1
		}
		waves = append(waves, wave{
			kx:    kx,
			ky:    ky,
			amp:   0.08 / float32(i+1),
			phase: float32(h>>16) / 65536 * 2 * math32.Pi,
		})
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float32(x) / float32(size) * 2 * math32.Pi
			v := float32(y) / float32(size) * 2 * math32.Pi

			var dx, dy float32
			for _, w := range waves {
				c := math32.Cos(w.kx*u+w.ky*v+w.phase) * w.amp
				dx += w.kx * c
				dy += w.ky * c
			}
			n := [3]float32{-dx, -dy, 1}
			l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
			img.SetRGBA(x, y, color.RGBA{
				R: encodeUnit(n[0] / l),
				G: encodeUnit(n[1] / l),
				B: encodeUnit(n[2] / l),
				A: 255,
			})
		}
	}
	return img
}

// DecodeUnit maps a channel byte back to [-1, 1].
func DecodeUnit(c uint8) float32 {
	return float32(c)/255*2 - 1
}

func encodeUnit(v float32) uint8 {
	v = math32.Max(-1, math32.Min(1, v))
	return uint8((v*0.5+0.5)*255 + 0.5)
}

func valueNoise(x, y float32, period int, seed uint32) float32 {
	x0, y0 := int(math32.Floor(x)), int(math32.Floor(y))
	tx, ty := smoothstep(x-float32(x0)), smoothstep(y-float32(y0))

	corner := func(cx, cy int) float32 {
		cx = ((cx % period) + period) % period
		cy = ((cy % period) + period) % period
		return float32(hash32(uint32(cx)*73856093^uint32(cy)*19349663^seed)&0xffff) / 0xffff
	}

	a := lerp(corner(x0, y0), corner(x0+1, y0), tx)
	b := lerp(corner(x0, y0+1), corner(x0+1, y0+1), tx)
	return lerp(a, b, ty)
}

func smoothstep(t float32) float32 { return t * t * (3 - 2*t) }

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// hash32 is the lowbias32 integer hash.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
