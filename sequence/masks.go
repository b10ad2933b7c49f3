package sequence

import (
	"image"
	"image/color"
	"sort"

	"github.com/binvision/trashgen/render"
)

// top20Limit is the 8-bit per-pixel ID budget: masks distinguish at most
// this many object instances, with luminosity values 1..top20Limit.
const top20Limit = 20

// newObjectMask marks every pixel owned by an item that entered this frame.
func newObjectMask(owner *render.OwnerMap, added map[int]bool) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, owner.Width(), owner.Height()))
	for y := 0; y < owner.Height(); y++ {
		for x := 0; x < owner.Width(); x++ {
			if added[owner.Get(x, y)] {
				mask.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return mask
}

// rankedItem pairs an item ID with its visible area for salience ranking.
type rankedItem struct {
	id      int
	classID int
	area    int
}

// rankItems orders items by salience: visible pixel area, ties broken by
// most recently added (higher arena ID), then by class ID. Items with no
// visible pixels are dropped entirely.
func rankItems(areas map[int]int, classOf map[int]int) []rankedItem {
	ranked := make([]rankedItem, 0, len(areas))
	for id, area := range areas {
		if area <= 0 {
			continue
		}
		ranked = append(ranked, rankedItem{id: id, classID: classOf[id], area: area})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].area != ranked[j].area {
			return ranked[i].area > ranked[j].area
		}
		if ranked[i].id != ranked[j].id {
			return ranked[i].id > ranked[j].id
		}
		return ranked[i].classID < ranked[j].classID
	})
	return ranked
}

// top20Mask assigns luminosity values 1..20 to the top-ranked items and
// paints their visible pixels. Items ranked past the budget render in the
// frame but stay 0 here. The returned value map records what each
// luminosity value means.
func top20Mask(owner *render.OwnerMap, ranked []rankedItem) (*image.Gray, map[int]uint8) {
	valueOf := map[int]uint8{}
	for rank, item := range ranked {
		if rank >= top20Limit {
			break
		}
		valueOf[item.id] = uint8(rank + 1)
	}

	mask := image.NewGray(image.Rect(0, 0, owner.Width(), owner.Height()))
	for y := 0; y < owner.Height(); y++ {
		for x := 0; x < owner.Width(); x++ {
			if v, ok := valueOf[owner.Get(x, y)]; ok {
				mask.SetGray(x, y, color.Gray{Y: v})
			}
		}
	}
	return mask, valueOf
}
