package scene

import (
	"image/color"

	"github.com/golang/geo/r2"

	"github.com/binvision/trashgen/shapegen"
)

// Item is one positioned occurrence instance of a class inside the bin.
type Item struct {
	// ID is the arena index assigned when the item enters a sequence.
	ID      int
	ClassID int
	Outline shapegen.Outline
	Color   color.NRGBA
	// PatternRef names the opaque texture swatch the compositor samples.
	PatternRef int
	Center     r2.Point
	Scale      float64
	Rotation   float64
	// InstanceIndex and SiblingCount record the item's position within its
	// occurrence: one occurrence of a class may place several instances.
	InstanceIndex int
	SiblingCount  int
}

// WorldPoints returns the outline in image coordinates.
func (it *Item) WorldPoints() []r2.Point {
	return it.Outline.Transform(it.Center, it.Scale, it.Rotation)
}

// BoundingRect returns the world bounding box of the item.
func (it *Item) BoundingRect() r2.Rect {
	pts := it.WorldPoints()
	rect := r2.RectFromPoints(pts[0])
	for _, p := range pts[1:] {
		rect = rect.AddPoint(p)
	}
	return rect
}
