package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

const iconSize = 256

// One colour per card of the grid
var iconColors = [4]color.RGBA{
	{R: 0xf9, G: 0xa8, B: 0x25, A: 0xff},
	{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff},
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
}

var (
	iconOnce sync.Once
	iconData []byte
)

// GetAppIcon returns the application icon as a Fyne resource
func GetAppIcon() fyne.Resource {
	iconOnce.Do(func() {
		iconData = drawIcon()
	})
	return &fyne.StaticResource{
		StaticName:    "wordtoons.png",
		StaticContent: iconData,
	}
}

// drawIcon paints four rounded tiles in a 2x2 grid
func drawIcon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	const gap, radius = 16, 24
	tile := (iconSize - 3*gap) / 2

	for i, c := range iconColors {
		x0 := gap + (i%2)*(tile+gap)
		y0 := gap + (i/2)*(tile+gap)
		fillRounded(img, image.Rect(x0, y0, x0+tile, y0+tile), radius, c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func fillRounded(img draw.Image, r image.Rectangle, radius int, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if insideRounded(x-r.Min.X, y-r.Min.Y, r.Dx(), r.Dy(), radius) {
				img.Set(x, y, c)
			}
		}
	}
}

func insideRounded(x, y, w, h, radius int) bool {
	cx, cy := x, y
	switch {
	case x < radius:
		cx = radius
	case x >= w-radius:
		cx = w - radius - 1
	}
	switch {
	case y < radius:
		cy = radius
	case y >= h-radius:
		cy = h - radius - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}
