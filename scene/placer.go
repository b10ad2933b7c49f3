package scene

import (
	"math"
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	"github.com/binvision/trashgen/classes"
	"github.com/binvision/trashgen/shapegen"
)

const (
	// Occupied-fraction band for a single item relative to the interior's
	// minor dimension. Divided by the instance count so the aggregate stays
	// within the bin's capacity budget as occurrences get crowded.
	minSizeFraction = 0.1
	maxSizeFraction = 0.8

	placementRetries = 16
)

// Placer positions item instances inside a bin's interior. It mutates no
// shared state; all randomness comes from the rng passed per call.
type Placer struct {
	logger golog.Logger
}

// NewPlacer returns a placer.
func NewPlacer(logger golog.Logger) *Placer {
	return &Placer{logger: logger}
}

// Place turns one class occurrence into 1..MaxItems positioned instances of
// the given outline. Per-instance scale shrinks proportionally with the
// drawn instance count. Placement rejects draws whose bounding box leaves
// the interior region; when retries run out the center is clamped inward
// instead of failing.
func (pl *Placer) Place(spec classes.ClassSpec, outline shapegen.Outline, bin *Bin, rng *rand.Rand) []Item {
	k := 1 + rng.Intn(spec.MaxItems)
	interior := bin.InteriorRect()
	minorDim := math.Min(interior.Size().X, interior.Size().Y)

	items := make([]Item, 0, k)
	for i := 0; i < k; i++ {
		frac := (minSizeFraction + rng.Float64()*(maxSizeFraction-minSizeFraction)) / float64(k)
		item := Item{
			ClassID:       spec.ID,
			Outline:       outline,
			Scale:         frac * minorDim,
			Rotation:      rng.Float64() * 2 * math.Pi,
			InstanceIndex: i,
			SiblingCount:  k,
		}
		pl.position(&item, interior, rng)
		items = append(items, item)
	}
	return items
}

// position draws centers until the item's bounding box fits the interior,
// clamping on retry exhaustion.
func (pl *Placer) position(item *Item, interior r2.Rect, rng *rand.Rand) {
	for try := 0; try < placementRetries; try++ {
		item.Center = r2.Point{
			X: interior.X.Lo + rng.Float64()*interior.Size().X,
			Y: interior.Y.Lo + rng.Float64()*interior.Size().Y,
		}
		if rectWithin(item.BoundingRect(), interior) {
			return
		}
	}
	pl.logger.Debugw("placement retries exhausted, clamping item into interior",
		"class", item.ClassID)
	pl.clamp(item, interior)
}

// clamp shifts the item center so its bounding box lies inside the interior.
// Boxes larger than the interior end up centered.
func (pl *Placer) clamp(item *Item, interior r2.Rect) {
	box := item.BoundingRect()
	item.Center = r2.Point{
		X: item.Center.X + clampShift(box.X.Lo, box.X.Hi, interior.X.Lo, interior.X.Hi),
		Y: item.Center.Y + clampShift(box.Y.Lo, box.Y.Hi, interior.Y.Lo, interior.Y.Hi),
	}
}

func clampShift(lo, hi, boundLo, boundHi float64) float64 {
	if hi-lo > boundHi-boundLo {
		// Too large to fit; center it.
		return (boundLo+boundHi)/2 - (lo+hi)/2
	}
	if lo < boundLo {
		return boundLo - lo
	}
	if hi > boundHi {
		return boundHi - hi
	}
	return 0
}

func rectWithin(inner, outer r2.Rect) bool {
	return inner.X.Lo >= outer.X.Lo && inner.X.Hi <= outer.X.Hi &&
		inner.Y.Lo >= outer.Y.Lo && inner.Y.Hi <= outer.Y.Hi
}
