// Package imagegen synthesizes placeholder raster images for local image
// references that cannot be found on disk.
package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder canvas dimensions.
const (
	Width  = 400
	Height = 300
)

// DefaultCaption is drawn when no caption is supplied.
const DefaultCaption = "Image Not Found"

var (
	fillColor    = color.RGBA{240, 240, 240, 255}
	borderColor  = color.RGBA{200, 200, 200, 255}
	crossColor   = color.RGBA{180, 180, 180, 255}
	captionColor = color.RGBA{150, 150, 150, 255}
)

// Placeholder draws a 400x300 canvas with a light-gray fill, a border, a
// large diagonal X, and the caption centered near the bottom.
func Placeholder(caption string) *image.RGBA {
	if caption == "" {
		caption = DefaultCaption
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, y, fillColor)
		}
	}

	drawBorder(img, 2)
	drawLine(img, 50, 50, Width-50, Height-50, 2, crossColor)
	drawLine(img, Width-50, 50, 50, Height-50, 2, crossColor)
	drawCaption(img, caption)

	return img
}

// EncodePNG returns the placeholder for caption as PNG bytes.
func EncodePNG(caption string) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Placeholder(caption)); err != nil {
		return nil, fmt.Errorf("encoding placeholder PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG saves the placeholder for caption as a PNG file at path.
func WritePNG(path, caption string) error {
	data, err := EncodePNG(caption)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing placeholder PNG: %w", err)
	}
	return nil
}

// drawBorder paints a rectangle outline of the given thickness along the
// canvas edges.
func drawBorder(img *image.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, t, borderColor)
			img.SetRGBA(x, Height-1-t, borderColor)
		}
		for y := 0; y < Height; y++ {
			img.SetRGBA(t, y, borderColor)
			img.SetRGBA(Width-1-t, y, borderColor)
		}
	}
}

// drawLine paints a straight segment between two points using integer
// Bresenham stepping, thickened by stamping a small square at each step.
func drawLine(img *image.RGBA, x0, y0, x1, y1, thickness int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := step(x0, x1)
	sy := step(y0, y1)
	err := dx + dy

	x, y := x0, y0
	for {
		stamp(img, x, y, thickness, c)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// stamp fills a size x size square centered on (x, y), clipped to the canvas.
func stamp(img *image.RGBA, x, y, size int, c color.RGBA) {
	for oy := -size / 2; oy <= size/2; oy++ {
		for ox := -size / 2; ox <= size/2; ox++ {
			px, py := x+ox, y+oy
			if px >= 0 && px < Width && py >= 0 && py < Height {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// drawCaption renders the caption horizontally centered, 50px above the
// bottom edge, using the built-in bitmap face.
func drawCaption(img *image.RGBA, caption string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionColor),
		Face: face,
	}

	width := d.MeasureString(caption).Ceil()
	x := (Width - width) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.P(x, Height-50)
	d.DrawString(caption)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}
