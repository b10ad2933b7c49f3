package shapegen

import (
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	"github.com/binvision/trashgen/classes"
)

// Synthesizer produces deformed outlines from class parameters. Safe for
// concurrent use; all randomness comes from the rng handed to Synthesize.
type Synthesizer struct {
	logger golog.Logger
	banana []r2.Point
}

// NewSynthesizer precomputes the shared base outlines.
func NewSynthesizer(logger golog.Logger) *Synthesizer {
	return &Synthesizer{
		logger: logger,
		banana: banana(),
	}
}

// Synthesize generates one outline for the class. Random-shape classes get a
// blob and never deform, whatever their deform probabilities say. For the
// rest, warp and slice each fire independently with their configured
// probability; a slice that cannot produce a non-empty outline falls back to
// the undeformed shape.
func (s *Synthesizer) Synthesize(spec classes.ClassSpec, rng *rand.Rand) Outline {
	if spec.Shape == classes.ShapeRandom {
		o := Outline{Points: blob(rng, 8, outlineResolution)}
		o.normalize()
		return o
	}

	var pts []r2.Point
	switch spec.Shape {
	case classes.ShapeSemicircle:
		pts = semicircle(outlineResolution)
	case classes.ShapeEllipse:
		pts = randomEllipse(rng)
	case classes.ShapeBanana:
		pts = applyStretch(applyRotation(s.banana, rng), rng)
	}

	var deforms Deformation
	if rng.Float64() < spec.PWarp {
		pts = applyWarp(pts, rng)
		deforms |= DeformWarp
	}
	if rng.Float64() < spec.PSlice {
		sliced, ok := applySlice(pts, rng)
		if ok {
			// Rotate and stretch again so the cut edge isn't always at the
			// same orientation.
			pts = applyStretch(applyRotation(sliced, rng), rng)
			deforms |= DeformSlice
		} else {
			s.logger.Debugw("slice retries exhausted, keeping undeformed outline",
				"class", spec.Category)
		}
	}

	o := Outline{Points: pts, Deforms: deforms}
	o.normalize()
	return o
}
