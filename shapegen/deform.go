package shapegen

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

const (
	warpWavelengthMin = 0.3
	warpWavelengthMax = 0.6
	warpAmplitudeMin  = 0.005
	warpAmplitudeMax  = 0.03

	maxSliceRetries = 8
	minSliceArea    = 1e-3
)

// applyWarp perturbs the perimeter with two independent sine waves, one on
// each axis, as a function of the point's parametric angle. Amplitude and
// wavelength are drawn independently per axis.
func applyWarp(pts []r2.Point, rng *rand.Rand) []r2.Point {
	ampX := warpAmplitudeMin + rng.Float64()*(warpAmplitudeMax-warpAmplitudeMin)
	ampY := warpAmplitudeMin + rng.Float64()*(warpAmplitudeMax-warpAmplitudeMin)
	wlX := warpWavelengthMin + rng.Float64()*(warpWavelengthMax-warpWavelengthMin)
	wlY := warpWavelengthMin + rng.Float64()*(warpWavelengthMax-warpWavelengthMin)

	n := float64(len(pts))
	out := make([]r2.Point, len(pts))
	for i, p := range pts {
		theta := 2 * math.Pi * float64(i) / n
		out[i] = r2.Point{
			X: p.X + ampX*math.Sin(theta/wlX),
			Y: p.Y + ampY*math.Sin(theta/wlY),
		}
	}
	return out
}

// applySlice clips the polygon to one side of a random line crossing its
// bounding box. It retries with a fresh line when the clip degenerates; the
// second return is false when every retry failed and the input should be
// kept undeformed.
func applySlice(pts []r2.Point, rng *rand.Rand) ([]r2.Point, bool) {
	for try := 0; try < maxSliceRetries; try++ {
		phi := rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(phi)
		normal := r2.Point{X: cos, Y: sin}

		// Project the bounding box onto the normal and pick an offset
		// strictly inside the projection, so the line always crosses the box.
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range pts {
			d := p.Dot(normal)
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
		offset := lo + (0.1+0.8*rng.Float64())*(hi-lo)

		clipped := clipHalfPlane(pts, normal, offset)
		if len(clipped) >= 3 && math.Abs(signedArea(clipped)) > minSliceArea {
			return clipped, true
		}
	}
	return pts, false
}

// clipHalfPlane keeps the part of the polygon with dot(p, normal) <= offset,
// inserting intersection points along the cut (Sutherland-Hodgman against a
// single edge).
func clipHalfPlane(pts []r2.Point, normal r2.Point, offset float64) []r2.Point {
	var out []r2.Point
	n := len(pts)
	for i := 0; i < n; i++ {
		cur, next := pts[i], pts[(i+1)%n]
		curIn := cur.Dot(normal) <= offset
		nextIn := next.Dot(normal) <= offset
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			out = append(out, lineIntersect(cur, next, normal, offset))
		}
	}
	return out
}

func lineIntersect(a, b, normal r2.Point, offset float64) r2.Point {
	da := a.Dot(normal) - offset
	db := b.Dot(normal) - offset
	t := da / (da - db)
	return r2.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// applyRotation rotates the outline around the unit frame center by a random
// angle.
func applyRotation(pts []r2.Point, rng *rand.Rand) []r2.Point {
	angle := rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	out := make([]r2.Point, len(pts))
	for i, p := range pts {
		x, y := p.X-0.5, p.Y-0.5
		out[i] = r2.Point{X: 0.5 + x*cos - y*sin, Y: 0.5 + x*sin + y*cos}
	}
	return out
}

// applyStretch scales each axis independently, with possible flips.
func applyStretch(pts []r2.Point, rng *rand.Rand) []r2.Point {
	sx := (0.1 + rng.Float64()*0.9) * randSign(rng)
	sy := (0.1 + rng.Float64()*0.9) * randSign(rng)
	out := make([]r2.Point, len(pts))
	for i, p := range pts {
		out[i] = r2.Point{X: 0.5 + (p.X-0.5)*sx, Y: 0.5 + (p.Y-0.5)*sy}
	}
	return out
}

func randSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
