// Package scene models the receptacle being filled and the placement of item
// instances inside it.
package scene

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

// BinShape is the receptacle silhouette.
type BinShape int

const (
	// BinRound is a circular bin seen from above.
	BinRound BinShape = iota
	// BinRect is a rectangular bin seen from above.
	BinRect
)

// Color pools the bin generator draws from.
var (
	backgroundColors = []string{
		"#D9D9D9", "#CBD8CD", "#B6B4D4", "#FFFFFF", "#90A2C3", "#848588", "#FFF7BC",
	}
	rimColors      = []string{"#ED1C24", "#F68E56", "#363636", "#00A651", "#0054A6"}
	interiorColors = []string{"#252525", "#DFDFDF"}
)

// Bin describes the receptacle: silhouette, colors, and the interior region
// items may occupy.
type Bin struct {
	Shape       BinShape
	Width       int
	Height      int
	Center      r2.Point
	OuterRadius float64
	InnerRadius float64
	Background  color.NRGBA
	Rim         color.NRGBA
	Interior    color.NRGBA
}

// RandomBin generates a bin roughly centered in a WxH image. The bin spans
// most of the minor axis, with a lip one twentieth of it.
func RandomBin(width, height int, rng *rand.Rand) *Bin {
	minor := float64(min(width, height))
	outer := (0.75 + rng.Float64()*0.25) * minor / 2
	lip := minor / 20
	maxShift := minor / 20

	shape := BinRound
	if rng.Intn(2) == 1 {
		shape = BinRect
	}
	return &Bin{
		Shape:       shape,
		Width:       width,
		Height:      height,
		Center:      r2.Point{X: float64(width)/2 + (rng.Float64()*2-1)*maxShift, Y: float64(height)/2 + (rng.Float64()*2-1)*maxShift},
		OuterRadius: outer,
		InnerRadius: outer - lip,
		Background:  pick(backgroundColors, rng),
		Rim:         pick(rimColors, rng),
		Interior:    pick(interiorColors, rng),
	}
}

// InteriorRect returns the bounding box of the interior region. For round
// bins items are placed within this box and clipped to the circle at render
// time.
func (b *Bin) InteriorRect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: b.Center.X - b.InnerRadius, Hi: b.Center.X + b.InnerRadius},
		Y: r1.Interval{Lo: b.Center.Y - b.InnerRadius, Hi: b.Center.Y + b.InnerRadius},
	}
}

// InteriorContains reports whether a point lies inside the bin interior.
func (b *Bin) InteriorContains(p r2.Point) bool {
	if b.Shape == BinRound {
		return p.Sub(b.Center).Norm() <= b.InnerRadius
	}
	return b.InteriorRect().ContainsPoint(p)
}

// RenderBackground draws the empty bin over the scene background.
func (b *Bin) RenderBackground() *image.NRGBA {
	dc := gg.NewContext(b.Width, b.Height)
	dc.SetColor(b.Background)
	dc.Clear()

	if b.Shape == BinRound {
		dc.SetColor(b.Rim)
		dc.DrawCircle(b.Center.X, b.Center.Y, b.OuterRadius)
		dc.Fill()
		dc.SetColor(b.Interior)
		dc.DrawCircle(b.Center.X, b.Center.Y, b.InnerRadius)
		dc.Fill()
	} else {
		dc.SetColor(b.Rim)
		dc.DrawRectangle(
			b.Center.X-b.OuterRadius, b.Center.Y-b.OuterRadius,
			2*b.OuterRadius, 2*b.OuterRadius)
		dc.Fill()
		dc.SetColor(b.Interior)
		dc.DrawRectangle(
			b.Center.X-b.InnerRadius, b.Center.Y-b.InnerRadius,
			2*b.InnerRadius, 2*b.InnerRadius)
		dc.Fill()
	}

	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	src := dc.Image()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			out.Set(x, y, src.At(x, y))
		}
	}
	return out
}

func pick(hexes []string, rng *rand.Rand) color.NRGBA {
	c, err := colorful.Hex(hexes[rng.Intn(len(hexes))])
	if err != nil {
		panic(err)
	}
	r, g, bl := c.RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 0xff}
}
