package palette

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var font *truetype.Font

func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

const (
	swatchSize = 100
	gridCols   = 8
	gridRows   = 5
)

// Visualize renders the palette as a labeled grid of swatches so a dataset's
// color assignment can be eyeballed.
func (p *Palette) Visualize() image.Image {
	dc := gg.NewContext(swatchSize*gridCols, swatchSize*gridRows)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 36}))

	for i, c := range p.colors {
		col := i / gridRows
		row := i % gridRows
		x := float64(col * swatchSize)
		y := float64(row * swatchSize)

		dc.SetColor(c)
		dc.DrawRectangle(x, y, swatchSize, swatchSize)
		dc.Fill()

		dc.SetColor(color.White)
		dc.DrawStringAnchored(strconv.Itoa(i), x+swatchSize/2, y+swatchSize/2, 0.5, 0.5)
	}
	return dc.Image()
}
