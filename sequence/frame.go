// Package sequence drives a temporally ordered chain of bin frames: which
// items exist at each step, what entered since the last step, and the two
// ground-truth masks emitted per frame.
package sequence

import (
	"image"

	"github.com/binvision/trashgen/scene"
)

// Category identifies what a Top20Mask luminosity value means in one frame.
type Category struct {
	SuperCategory string `json:"super_category"`
	Category      string `json:"category"`
	Avoidable     bool   `json:"avoidable"`
}

// Frame is one rendered step of a sequence, immutable once composited.
// Frames form a doubly linked chain via the prev/next image IDs; empty means
// the frame is the corresponding end of the chain.
type Frame struct {
	// ImageID is the sequence-scoped identifier, e.g. "0002-0014".
	ImageID string
	// Name is the run-unique, timestamp-derived file stem.
	Name  string
	Index int

	// Items is the paint-order snapshot of items present in this frame.
	Items []scene.Item

	Image *image.NRGBA
	// NewObjectMask is 255 on pixels of items that entered this frame, 0
	// elsewhere.
	NewObjectMask *image.Gray
	// Top20Mask holds 1..20 on pixels of the twenty most salient items
	// (rank by visible area), 0 elsewhere.
	Top20Mask *image.Gray

	// Categories maps each luminosity value used in Top20Mask to its class.
	// The mapping is bijective within this frame but a value is a rank slot,
	// not a stable object identity: the same value can mean a different
	// category in the next frame.
	Categories map[uint8]Category

	PrevImageID string
	NextImageID string
}
