package sequence

import (
	"testing"

	"go.viam.com/test"

	"github.com/binvision/trashgen/render"
)

// buildOwner paints three items on a 10x10 map: item 0 covers rows 0-2,
// item 1 rows 3-5, item 2 overpaints columns 0-4 of rows 0-5.
func buildOwner() *render.OwnerMap {
	owner := render.NewOwnerMap(10, 10)
	for y := 0; y < 3; y++ {
		for x := 0; x < 10; x++ {
			owner.Set(x, y, 0)
		}
	}
	for y := 3; y < 6; y++ {
		for x := 0; x < 10; x++ {
			owner.Set(x, y, 1)
		}
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 5; x++ {
			owner.Set(x, y, 2)
		}
	}
	return owner
}

func TestNewObjectMask(t *testing.T) {
	owner := buildOwner()
	mask := newObjectMask(owner, map[int]bool{2: true})

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if owner.Get(x, y) == 2 {
				want = 0xff
			}
			test.That(t, mask.GrayAt(x, y).Y, test.ShouldEqual, want)
		}
	}
}

func TestNewObjectMaskSubsetOfOccupied(t *testing.T) {
	owner := buildOwner()
	mask := newObjectMask(owner, map[int]bool{0: true, 1: true, 2: true})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if mask.GrayAt(x, y).Y != 0 {
				test.That(t, owner.Get(x, y), test.ShouldNotEqual, render.NoOwner)
			}
		}
	}
}

func TestTop20MaskAssignsRanks(t *testing.T) {
	owner := buildOwner()
	areas := owner.VisibleAreas()
	// Occlusion accounting: item 2 stole columns 0-4 from both rows bands.
	test.That(t, areas[2], test.ShouldEqual, 30)
	test.That(t, areas[0], test.ShouldEqual, 15)
	test.That(t, areas[1], test.ShouldEqual, 15)

	ranked := rankItems(areas, map[int]int{0: 5, 1: 6, 2: 7})
	mask, valueOf := top20Mask(owner, ranked)

	// Item 2 ranks first; the 15-pixel tie goes to the more recent item 1.
	test.That(t, valueOf[2], test.ShouldEqual, uint8(1))
	test.That(t, valueOf[1], test.ShouldEqual, uint8(2))
	test.That(t, valueOf[0], test.ShouldEqual, uint8(3))

	test.That(t, mask.GrayAt(0, 0).Y, test.ShouldEqual, uint8(1))
	test.That(t, mask.GrayAt(9, 0).Y, test.ShouldEqual, uint8(3))
	test.That(t, mask.GrayAt(9, 4).Y, test.ShouldEqual, uint8(2))
	test.That(t, mask.GrayAt(9, 9).Y, test.ShouldEqual, uint8(0))
}

func TestTop20MaskBudgetCutoff(t *testing.T) {
	owner := render.NewOwnerMap(30, 1)
	areas := map[int]int{}
	classOf := map[int]int{}
	for i := 0; i < 30; i++ {
		owner.Set(i, 0, i)
		// Larger id gets larger area, so ranks run 29, 28, ...
		areas[i] = i + 1
		classOf[i] = 0
	}
	ranked := rankItems(areas, classOf)
	mask, valueOf := top20Mask(owner, ranked)
	test.That(t, len(valueOf), test.ShouldEqual, top20Limit)

	// The ten smallest items fall outside the budget and stay zero.
	for i := 0; i < 10; i++ {
		test.That(t, mask.GrayAt(i, 0).Y, test.ShouldEqual, uint8(0))
	}
	test.That(t, mask.GrayAt(29, 0).Y, test.ShouldEqual, uint8(1))
	test.That(t, mask.GrayAt(10, 0).Y, test.ShouldEqual, uint8(top20Limit))
}
