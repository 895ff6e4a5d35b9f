package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type align int

const (
	alignLeft align = iota
	alignCenter
)

// drawText draws s with its top edge at y. x is the left edge, or the
// horizontal center for alignCenter.
func drawText(dst *image.RGBA, face font.Face, s string, x, y int, col color.Color, a align) {
	if s == "" {
		return
	}
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	if a == alignCenter {
		x -= dr.MeasureString(s).Ceil() / 2
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Metrics().Ascent.Ceil())}
	dr.DrawString(s)
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// drawCentered composites img with its center at (x, y). Parts falling
// outside dst are clipped.
func drawCentered(dst *image.RGBA, img image.Image, x, y int) {
	b := img.Bounds()
	r := image.Rect(x-b.Dx()/2, y-b.Dy()/2, x-b.Dx()/2+b.Dx(), y-b.Dy()/2+b.Dy())
	draw.Draw(dst, r, img, b.Min, draw.Over)
}
