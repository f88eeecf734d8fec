//go:build ignore

// gen_textures writes the PNG textures used by the bundled models.
//
//	go run gen_textures.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var helpLines = []string{
	"GRID VIEWER",
	"",
	"W A S D     MOVE",
	"SPACE SHIFT UP / DOWN",
	"ARROWS      LOOK",
	"CLICK       GRAB MOUSE",
	"SCROLL      ZOOM",
	"J / K       GROW / SHRINK",
	"1 2 3       SPIN RECOLOR RESIZE",
	"ESC         RELEASE / QUIT",
	"H           CLOSE HELP",
}

func main() {
	write("checker.png", checker(64, 8, color.RGBA{235, 235, 235, 255}, color.RGBA{60, 90, 160, 255}))
	write("stripes.png", stripes(64, 8, color.RGBA{250, 210, 60, 255}, color.RGBA{40, 40, 40, 255}))
	write("help.png", help(1024, 576, 3))
}

func checker(size, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func stripes(size, width int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if ((x+y)/width)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// help renders the key reference at 1/scale and scales it up with
// nearest-neighbor filtering to keep the bitmap font crisp.
func help(w, h, scale int) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, w/scale, h/scale))
	draw.Draw(small, small.Bounds(), image.NewUniform(color.RGBA{20, 20, 32, 255}), image.Point{}, draw.Src)

	border := color.RGBA{200, 80, 200, 255}
	b := small.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		small.SetRGBA(x, 2, border)
		small.SetRGBA(x, b.Max.Y-3, border)
	}
	for y := b.Min.Y + 2; y < b.Max.Y-2; y++ {
		small.SetRGBA(2, y, border)
		small.SetRGBA(b.Max.X-3, y, border)
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.RGBA{240, 240, 240, 255}),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil() + 2
	for i, line := range helpLines {
		d.Dot = fixed.P(14, 22+i*lineHeight)
		d.DrawString(line)
	}

	big := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}

func write(name string, img image.Image) {
	f, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", name)
}
