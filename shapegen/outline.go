// Package shapegen synthesizes the 2-D outlines trash items are built from:
// canonical parametric shapes per class, procedural blobs, and the stochastic
// warp/slice deformations applied on top.
package shapegen

import (
	"math"

	"github.com/golang/geo/r2"
)

// Deformation tags which deformations produced an outline.
type Deformation uint8

const (
	// DeformNone marks an undeformed outline.
	DeformNone Deformation = 0
	// DeformWarp marks a sinusoidal perimeter perturbation.
	DeformWarp Deformation = 1 << iota
	// DeformSlice marks a half-plane clip.
	DeformSlice
)

// Outline is a closed polygon in local coordinates, normalized so its
// bounding box fits the unit frame. Points run in perimeter order; the last
// point connects back to the first.
type Outline struct {
	Points  []r2.Point
	Deforms Deformation
}

// Has reports whether the outline carries the given deformation tag.
func (o *Outline) Has(d Deformation) bool {
	return o.Deforms&d != 0
}

// BoundingRect returns the axis-aligned bounding box of the outline.
func (o *Outline) BoundingRect() r2.Rect {
	if len(o.Points) == 0 {
		return r2.EmptyRect()
	}
	rect := r2.RectFromPoints(o.Points[0])
	for _, p := range o.Points[1:] {
		rect = rect.AddPoint(p)
	}
	return rect
}

// Area returns the enclosed area by the shoelace formula.
func (o *Outline) Area() float64 {
	return math.Abs(signedArea(o.Points))
}

// Centroid returns the area centroid of the polygon.
func (o *Outline) Centroid() r2.Point {
	a := signedArea(o.Points)
	if a == 0 {
		return o.BoundingRect().Center()
	}
	var cx, cy float64
	n := len(o.Points)
	for i := 0; i < n; i++ {
		p, q := o.Points[i], o.Points[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return r2.Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Transform maps the outline into world coordinates: the unit frame is
// recentered on origin, scaled so the unit square spans scale pixels, rotated
// by rotation radians, and translated to center.
func (o *Outline) Transform(center r2.Point, scale, rotation float64) []r2.Point {
	sin, cos := math.Sincos(rotation)
	out := make([]r2.Point, len(o.Points))
	for i, p := range o.Points {
		x := (p.X - 0.5) * scale
		y := (p.Y - 0.5) * scale
		out[i] = r2.Point{
			X: center.X + x*cos - y*sin,
			Y: center.Y + x*sin + y*cos,
		}
	}
	return out
}

// normalize rescales the outline uniformly so its bounding box fits the unit
// frame, centered on (0.5, 0.5). Degenerate outlines are left alone.
func (o *Outline) normalize() {
	rect := o.BoundingRect()
	size := rect.Size()
	longest := math.Max(size.X, size.Y)
	if longest <= 0 {
		return
	}
	c := rect.Center()
	for i, p := range o.Points {
		o.Points[i] = r2.Point{
			X: (p.X-c.X)/longest + 0.5,
			Y: (p.Y-c.Y)/longest + 0.5,
		}
	}
}

func signedArea(pts []r2.Point) float64 {
	var sum float64
	n := len(pts)
	if n < 3 {
		return 0
	}
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
