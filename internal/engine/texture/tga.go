// Package texture decodes texture images and generates the procedural maps
// used when no texture file is configured.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// tgaReader walks the pixel stream, writing pixels in file order and flipping
// rows for bottom-up images.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	bpp         int
	width       int
	height      int
	topToBottom bool
	written     int
}

func (r *tgaReader) hasColor() bool {
	return r.pos+r.bpp <= len(r.data)
}

func (r *tgaReader) readColor() (color.RGBA, error) {
	if !r.hasColor() {
		return color.RGBA{}, errTGATruncated
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.written%r.width, r.written/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) done() bool {
	return r.written >= r.width*r.height
}

// DecodeTGA decodes a 24 or 32 bit true-color TGA image, raw or RLE
// compressed, the formats most tools export normal maps in.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case bits != 24 && bits != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bits)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		bpp:         bits / 8,
		width:       width,
		height:      height,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = decodeTGARaw(r)
	} else {
		err = decodeTGARLE(r)
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

func decodeTGARaw(r *tgaReader) error {
	if len(r.data) < r.width*r.height*r.bpp {
		return errTGATruncated
	}
	for !r.done() {
		c, err := r.readColor()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

// decodeTGARLE decodes run-length packets. A stream that ends early leaves
// the remaining pixels transparent.
func decodeTGARLE(r *tgaReader) error {
	for !r.done() && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if !r.hasColor() {
				return nil
			}
			c, _ := r.readColor()
			for i := 0; i < count && !r.done(); i++ {
				r.put(c)
			}
			continue
		}

		for i := 0; i < count && !r.done(); i++ {
			if !r.hasColor() {
				return nil
			}
			c, _ := r.readColor()
			r.put(c)
		}
	}
	return nil
}

// ImageToRGBA converts any image.Image to an *image.RGBA whose bounds start
// at the origin, the layout texture uploads expect.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
