package render

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/binvision/trashgen/scene"
	"github.com/binvision/trashgen/shapegen"
)

func testBin() *scene.Bin {
	return &scene.Bin{
		Shape:       scene.BinRect,
		Width:       100,
		Height:      100,
		Center:      r2.Point{X: 50, Y: 50},
		OuterRadius: 45,
		InnerRadius: 40,
		Background:  color.NRGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff},
		Rim:         color.NRGBA{R: 0xed, G: 0x1c, B: 0x24, A: 0xff},
		Interior:    color.NRGBA{R: 0x25, G: 0x25, B: 0x25, A: 0xff},
	}
}

func squareItem(id int, scale float64) scene.Item {
	return scene.Item{
		ID: id,
		Outline: shapegen.Outline{Points: []r2.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		}},
		Color:  color.NRGBA{R: 0x40, G: 0x80, B: 0x20, A: 0xff},
		Center: r2.Point{X: 50, Y: 50},
		Scale:  scale,
	}
}

func TestPointInPolygon(t *testing.T) {
	tri := []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	test.That(t, pointInPolygon(r2.Point{X: 1, Y: 1}, tri), test.ShouldBeTrue)
	test.That(t, pointInPolygon(r2.Point{X: 3, Y: 3}, tri), test.ShouldBeFalse)
	test.That(t, pointInPolygon(r2.Point{X: -1, Y: 0}, tri), test.ShouldBeFalse)
}

func TestRenderOwnership(t *testing.T) {
	c := NewCompositor(nil, golog.NewTestLogger(t))
	rng := rand.New(rand.NewSource(1))
	bin := testBin()

	img, owner := c.Render(bin, []scene.Item{squareItem(0, 30), squareItem(1, 20)}, rng)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 100)

	areas := owner.VisibleAreas()
	// The later item owns every overlapped pixel; the earlier one keeps only
	// its unoccluded ring.
	test.That(t, areas[1], test.ShouldEqual, 20*20)
	test.That(t, areas[0], test.ShouldEqual, 30*30-20*20)

	test.That(t, owner.Get(50, 50), test.ShouldEqual, 1)
	test.That(t, owner.Get(37, 37), test.ShouldEqual, 0)
	test.That(t, owner.Get(5, 5), test.ShouldEqual, NoOwner)
}

func TestRenderClipsToInterior(t *testing.T) {
	c := NewCompositor(nil, golog.NewTestLogger(t))
	rng := rand.New(rand.NewSource(2))
	bin := testBin()
	bin.Shape = scene.BinRound

	// An item bigger than the interior circle gets clipped to it.
	_, owner := c.Render(bin, []scene.Item{squareItem(3, 95)}, rng)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if owner.Get(x, y) == NoOwner {
				continue
			}
			p := r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			test.That(t, bin.InteriorContains(p), test.ShouldBeTrue)
		}
	}
}

func TestNoiseLeavesOwnerMapAlone(t *testing.T) {
	c := NewCompositor(nil, golog.NewTestLogger(t))
	bin := testBin()
	items := []scene.Item{squareItem(0, 30)}

	_, ownerA := c.Render(bin, items, rand.New(rand.NewSource(3)))
	_, ownerB := c.Render(bin, items, rand.New(rand.NewSource(99)))
	// Different rngs change noise and fills but never coverage.
	test.That(t, ownerA.VisibleAreas(), test.ShouldResemble, ownerB.VisibleAreas())
}

func TestRenderWithPatterns(t *testing.T) {
	c := NewCompositor(NewProceduralStore(7), golog.NewTestLogger(t))
	rng := rand.New(rand.NewSource(4))
	bin := testBin()

	_, owner := c.Render(bin, []scene.Item{squareItem(0, 30)}, rng)
	test.That(t, owner.VisibleAreas()[0], test.ShouldEqual, 30*30)
}

func TestProceduralStoreSample(t *testing.T) {
	store := NewProceduralStore(11)
	rng := rand.New(rand.NewSource(5))
	for ref := 0; ref < 12; ref++ {
		swatch := store.Sample(ref, rng)
		test.That(t, swatch.Bounds().Dx(), test.ShouldBeGreaterThanOrEqualTo, 8)
		test.That(t, swatch.Bounds().Dy(), test.ShouldBeGreaterThanOrEqualTo, 8)
	}
}

func TestOwnerMapEmpty(t *testing.T) {
	m := NewOwnerMap(4, 3)
	test.That(t, m.Width(), test.ShouldEqual, 4)
	test.That(t, m.Height(), test.ShouldEqual, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			test.That(t, m.Get(x, y), test.ShouldEqual, NoOwner)
		}
	}
	test.That(t, m.VisibleAreas(), test.ShouldHaveLength, 0)
}
