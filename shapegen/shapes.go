package shapegen

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/dsp/fourier"
)

// outlineResolution is the minimum point count of a synthesized outline,
// enough for smooth rasterization at dataset image sizes.
const outlineResolution = 64

// bananaControl is the crescent control polygon a banana outline is smoothed
// from.
var bananaControl = []r2.Point{
	{X: 0.790, Y: 0.120}, {X: 0.734, Y: 0.273}, {X: 0.672, Y: 0.448},
	{X: 0.393, Y: 0.694}, {X: 0.123, Y: 0.743}, {X: 0.027, Y: 0.801},
	{X: 0.020, Y: 0.852}, {X: 0.054, Y: 0.893}, {X: 0.222, Y: 0.933},
	{X: 0.433, Y: 0.924}, {X: 0.638, Y: 0.835}, {X: 0.811, Y: 0.672},
	{X: 0.896, Y: 0.537}, {X: 0.954, Y: 0.374}, {X: 0.956, Y: 0.307},
	{X: 0.925, Y: 0.232}, {X: 0.893, Y: 0.187}, {X: 0.856, Y: 0.131},
	{X: 0.818, Y: 0.104},
}

// interpolateSmoothly adds n points between each sample of the periodic
// sequence xs by trigonometric interpolation: the Fourier coefficients of xs
// are zero-padded to the target length and inverted.
func interpolateSmoothly(xs []float64, n int) []float64 {
	if n <= 0 || len(xs) < 2 {
		out := make([]float64, len(xs))
		copy(out, xs)
		return out
	}
	m := len(xs) * (n + 1)
	fft := fourier.NewFFT(len(xs))
	coeff := fft.Coefficients(nil, xs)
	padded := make([]complex128, m/2+1)
	copy(padded, coeff)
	if len(xs)%2 == 0 {
		// The Nyquist bin carries both half-spectrum terms; splitting it
		// keeps the interpolant real-symmetric.
		padded[len(xs)/2] *= 0.5
	}
	out := fourier.NewFFT(m).Sequence(nil, padded)
	scale := 1 / float64(len(xs))
	for i := range out {
		out[i] *= scale
	}
	return out
}

// interpolateLoop smooths a closed control polygon, adding n points between
// each vertex.
func interpolateLoop(pts []r2.Point, n int) []r2.Point {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	xs = interpolateSmoothly(xs, n)
	ys = interpolateSmoothly(ys, n)
	out := make([]r2.Point, len(xs))
	for i := range xs {
		out[i] = r2.Point{X: xs[i], Y: ys[i]}
	}
	return out
}

// banana returns the smoothed crescent outline.
func banana() []r2.Point {
	return interpolateLoop(bananaControl, 10)
}

// ellipse samples the perimeter of an ellipse with the given semi-axes and
// orientation, centered in the unit frame.
func ellipse(a, b, orientation float64, points int) []r2.Point {
	sinO, cosO := math.Sincos(orientation)
	out := make([]r2.Point, points)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / float64(points)
		x := a * math.Cos(theta)
		y := b * math.Sin(theta)
		out[i] = r2.Point{
			X: 0.5 + x*cosO - y*sinO,
			Y: 0.5 + x*sinO + y*cosO,
		}
	}
	return out
}

// randomEllipse draws semi-axes and orientation from rng.
func randomEllipse(rng *rand.Rand) []r2.Point {
	a := 0.15 + rng.Float64()*0.35
	b := 0.15 + rng.Float64()*0.35
	orientation := rng.Float64() * math.Pi
	return ellipse(a, b, orientation, outlineResolution)
}

// semicircle samples the upper half of a half-unit circle; the closing edge
// back to the first point forms the flat chord.
func semicircle(points int) []r2.Point {
	out := make([]r2.Point, points)
	for i := range out {
		theta := math.Pi * float64(i) / float64(points-1)
		out[i] = r2.Point{
			X: 0.5 + 0.5*math.Cos(theta),
			Y: 0.5 + 0.5*math.Sin(theta),
		}
	}
	return out
}

// blob generates a closed organic outline by sampling a handful of control
// radii around the centroid and smoothing them into a full radius profile.
// The result is star-convex from the center, so it cannot self-intersect.
func blob(rng *rand.Rand, controlPoints, points int) []r2.Point {
	radii := make([]float64, controlPoints)
	for i := range radii {
		radii[i] = 0.2 + rng.Float64()*0.3
	}
	profile := interpolateSmoothly(radii, points/controlPoints-1)

	out := make([]r2.Point, len(profile))
	for i, r := range profile {
		// Smoothing can overshoot; keep the radius usable.
		r = math.Max(r, 0.05)
		theta := 2 * math.Pi * float64(i) / float64(len(profile))
		out[i] = r2.Point{
			X: 0.5 + r*math.Cos(theta),
			Y: 0.5 + r*math.Sin(theta),
		}
	}
	return out
}
