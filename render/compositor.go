package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/binvision/trashgen/scene"
)

const (
	// noiseAmplitude bounds the per-channel jitter of the final RGB pass.
	noiseAmplitude = 8

	// patternBlend is how much of the fill comes from the texture swatch
	// versus the flat class color.
	patternBlend = 0.5
)

// Compositor rasterizes items over a bin background in paint order. The
// owner map it produces is exact: it assigns each covered pixel to the last
// item painted there, and the cosmetic noise and lighting passes touch only
// the RGB image.
type Compositor struct {
	logger   golog.Logger
	patterns PatternStore
}

// NewCompositor returns a compositor. patterns may be nil, in which case
// items get flat color fills.
func NewCompositor(patterns PatternStore, logger golog.Logger) *Compositor {
	return &Compositor{logger: logger, patterns: patterns}
}

// Render paints the items onto the bin interior in slice order (later items
// on top) and returns the composed frame with its owner map.
func (c *Compositor) Render(bin *scene.Bin, items []scene.Item, rng *rand.Rand) (*image.NRGBA, *OwnerMap) {
	img := bin.RenderBackground()
	owner := NewOwnerMap(bin.Width, bin.Height)

	for i := range items {
		c.paintItem(img, owner, bin, &items[i], rng)
	}

	c.applyNoise(img, rng)
	c.applyLighting(img, bin, rng)
	return img, owner
}

// paintItem fills the item's polygon with its pattern-blended color and
// claims the covered pixels in the owner map. Coverage is an even-odd test
// on pixel centers, clipped to the bin interior.
func (c *Compositor) paintItem(img *image.NRGBA, owner *OwnerMap, bin *scene.Bin, item *scene.Item, rng *rand.Rand) {
	pts := item.WorldPoints()
	if len(pts) < 3 {
		return
	}
	box := item.BoundingRect()
	x0 := max(int(math.Floor(box.X.Lo)), 0)
	y0 := max(int(math.Floor(box.Y.Lo)), 0)
	x1 := min(int(math.Ceil(box.X.Hi)), bin.Width-1)
	y1 := min(int(math.Ceil(box.Y.Hi)), bin.Height-1)

	var swatch *image.NRGBA
	if c.patterns != nil {
		swatch = toNRGBA(c.patterns.Sample(item.PatternRef, rng))
	}
	fill := jitterHue(item.Color, rng)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !bin.InteriorContains(p) || !pointInPolygon(p, pts) {
				continue
			}
			px := fill
			if swatch != nil {
				px = blend(swatchAt(swatch, x, y), fill, patternBlend)
			}
			img.SetNRGBA(x, y, px)
			owner.Set(x, y, item.ID)
		}
	}
}

// applyNoise adds low-amplitude per-pixel jitter to the RGB channels.
func (c *Compositor) applyNoise(img *image.NRGBA, rng *rand.Rand) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			jitter := rng.Intn(2*noiseAmplitude+1) - noiseAmplitude
			for ch := 0; ch < 3; ch++ {
				img.Pix[i+ch] = clampByte(int(img.Pix[i+ch]) + jitter)
			}
		}
	}
}

// applyLighting shades the frame with a directional gradient: one side of
// the image is lifted toward white, the opposite dimmed, at random angle and
// strength.
func (c *Compositor) applyLighting(img *image.NRGBA, bin *scene.Bin, rng *rand.Rand) {
	angle := rng.Float64() * 2 * math.Pi
	strength := 0.3 + rng.Float64()*0.7
	sin, cos := math.Sincos(angle)

	cx := float64(bin.Width) / 2
	cy := float64(bin.Height) / 2
	radius := math.Hypot(cx, cy)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Signed distance along the light direction, -1..1.
			d := ((float64(x)-cx)*cos + (float64(y)-cy)*sin) / radius
			factor := 1 + d*strength*0.25
			i := img.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				img.Pix[i+ch] = clampByte(int(float64(img.Pix[i+ch]) * factor))
			}
		}
	}
}

// pointInPolygon is an even-odd crossing test.
func pointInPolygon(p r2.Point, poly []r2.Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// jitterHue shifts an item color slightly in HSV space so repeated instances
// of a class don't render identically.
func jitterHue(c color.NRGBA, rng *rand.Rand) color.NRGBA {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, s, v := cf.Hsv()
	h = math.Mod(h+(rng.Float64()*2-1)*10+360, 360)
	s = clamp01(s * (1 + (rng.Float64()*2-1)*0.1))
	v = clamp01(v * (1 + (rng.Float64()*2-1)*0.1))
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

func swatchAt(swatch *image.NRGBA, x, y int) color.NRGBA {
	w := swatch.Bounds().Dx()
	h := swatch.Bounds().Dy()
	return swatch.NRGBAAt(x%w, y%h)
}

func blend(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			out.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
