// Package render rasterizes item sets onto the bin interior, producing the
// color frame and the exact per-pixel owner map mask derivation depends on.
package render

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// PatternStore hands out texture swatches for item fills. Swatches are
// opaque rasters; the compositor tiles them over an item's outline and blends
// them with the class color.
type PatternStore interface {
	// Sample returns a swatch for the given pattern reference. The rng
	// drives the per-sample jitter (rotation, scale, noise phase) so two
	// items with the same reference still differ.
	Sample(ref int, rng *rand.Rand) image.Image
}

const (
	swatchBase     = 200
	numBaseSwatches = 8
)

// proceduralStore synthesizes grayscale swatches instead of loading asset
// files, so the generator runs without an asset directory. Base swatches are
// built once per store; Sample jitters them per call.
type proceduralStore struct {
	noise opensimplex.Noise
	bases []*image.NRGBA
}

// NewProceduralStore creates a pattern store seeded for reproducibility.
func NewProceduralStore(seed int64) PatternStore {
	s := &proceduralStore{noise: opensimplex.NewNormalized(seed)}
	for i := 0; i < numBaseSwatches; i++ {
		s.bases = append(s.bases, s.baseSwatch(i))
	}
	return s
}

// baseSwatch renders one simplex-noise texture plane. Different swatches sit
// at different depths of the noise volume.
func (s *proceduralStore) baseSwatch(index int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, swatchBase, swatchBase))
	z := float64(index) * 17.0
	for y := 0; y < swatchBase; y++ {
		for x := 0; x < swatchBase; x++ {
			v := s.noise.Eval3(float64(x)/24, float64(y)/24, z)
			g := uint8(v * 255)
			i := img.PixOffset(x, y)
			img.Pix[i] = g
			img.Pix[i+1] = g
			img.Pix[i+2] = g
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// Sample rotates, rescales, and re-crops a base swatch.
func (s *proceduralStore) Sample(ref int, rng *rand.Rand) image.Image {
	base := s.bases[((ref%len(s.bases))+len(s.bases))%len(s.bases)]

	rotated := imaging.Rotate(base, rng.Float64()*360, color.NRGBA{})
	// Crop the center so rotation fill corners never show.
	cropSize := swatchBase / 2
	cropped := imaging.CropCenter(rotated, cropSize, cropSize)

	scale := 0.3 + rng.Float64()*1.7
	size := max(int(float64(cropSize)*scale), 8)
	return imaging.Resize(cropped, size, size, imaging.Lanczos)
}
