package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes a TGA image file.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		pix:         data[offset:],
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: descriptor&0x20 != 0, // bit 5: origin at top
	}

	if imageType == TGATypeUncompressed {
		if len(d.pix) < width*height*d.stride {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.read(i*d.stride))
		}
	} else {
		d.decodeRLE()
	}

	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	pix           []byte
	width, height int
	stride        int
	topToBottom   bool
}

// read returns the BGR(A) pixel at byte offset i.
func (d *tgaDecoder) read(i int) color.RGBA {
	c := color.RGBA{B: d.pix[i], G: d.pix[i+1], R: d.pix[i+2], A: 255}
	if d.stride == 4 {
		c.A = d.pix[i+3]
	}
	return c
}

// put stores the n-th pixel in file order.
func (d *tgaDecoder) put(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

// decodeRLE stops quietly at the end of the data; missing pixels stay transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	n, i := 0, 0

	for n < total && i < len(d.pix) {
		packet := d.pix[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+d.stride > len(d.pix) {
				return
			}
			c := d.read(i)
			i += d.stride
			for ; count > 0 && n < total; count-- {
				d.put(n, c)
				n++
			}
			continue
		}

		for ; count > 0 && n < total; count-- {
			if i+d.stride > len(d.pix) {
				return
			}
			d.put(n, d.read(i))
			i += d.stride
			n++
		}
	}
}
