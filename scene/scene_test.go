package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/binvision/trashgen/classes"
	"github.com/binvision/trashgen/shapegen"
)

func TestRandomBin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		b := RandomBin(1024, 800, rng)
		test.That(t, b.InnerRadius, test.ShouldBeLessThan, b.OuterRadius)
		test.That(t, b.OuterRadius, test.ShouldBeLessThanOrEqualTo, 400)
		test.That(t, b.OuterRadius, test.ShouldBeGreaterThanOrEqualTo, 0.75*400)

		interior := b.InteriorRect()
		test.That(t, b.InteriorContains(interior.Center()), test.ShouldBeTrue)
		test.That(t, b.InteriorContains(r2.Point{X: -10, Y: -10}), test.ShouldBeFalse)
	}
}

func TestRoundBinExcludesCorners(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var b *Bin
	for {
		b = RandomBin(800, 800, rng)
		if b.Shape == BinRound {
			break
		}
	}
	corner := r2.Point{X: b.InteriorRect().X.Lo, Y: b.InteriorRect().Y.Lo}
	test.That(t, b.InteriorContains(corner), test.ShouldBeFalse)
}

func TestRenderBackground(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := RandomBin(200, 160, rng)
	img := b.RenderBackground()
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 200)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 160)

	// The interior center must carry the interior color, a far corner the
	// background color.
	center := img.NRGBAAt(int(b.Center.X), int(b.Center.Y))
	test.That(t, center, test.ShouldResemble, b.Interior)
	test.That(t, img.NRGBAAt(0, 0), test.ShouldResemble, b.Background)
}

func unitSquare() shapegen.Outline {
	return shapegen.Outline{Points: []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}}
}

func TestPlaceCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pl := NewPlacer(golog.NewTestLogger(t))
	b := RandomBin(1024, 800, rng)
	spec := classes.ClassSpec{ID: 7, Shape: classes.ShapeEllipse, MaxItems: 5}

	for i := 0; i < 100; i++ {
		items := pl.Place(spec, unitSquare(), b, rng)
		test.That(t, len(items), test.ShouldBeBetweenOrEqual, 1, 5)
		for j, item := range items {
			test.That(t, item.ClassID, test.ShouldEqual, 7)
			test.That(t, item.InstanceIndex, test.ShouldEqual, j)
			test.That(t, item.SiblingCount, test.ShouldEqual, len(items))
			test.That(t, item.Scale, test.ShouldBeGreaterThan, 0.0)
		}
	}
}

func TestPlaceScaleShrinksWithCount(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pl := NewPlacer(golog.NewTestLogger(t))
	b := RandomBin(1024, 800, rng)
	minorDim := math.Min(b.InteriorRect().Size().X, b.InteriorRect().Size().Y)
	spec := classes.ClassSpec{Shape: classes.ShapeEllipse, MaxItems: 8}

	for i := 0; i < 200; i++ {
		items := pl.Place(spec, unitSquare(), b, rng)
		k := float64(len(items))
		for _, item := range items {
			test.That(t, item.Scale, test.ShouldBeLessThanOrEqualTo, maxSizeFraction/k*minorDim)
			test.That(t, item.Scale, test.ShouldBeGreaterThanOrEqualTo, minSizeFraction/k*minorDim-1e-9)
		}
	}
}

func TestPlaceStaysInInterior(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	pl := NewPlacer(golog.NewTestLogger(t))
	b := RandomBin(400, 400, rng)
	interior := b.InteriorRect()
	spec := classes.ClassSpec{Shape: classes.ShapeEllipse, MaxItems: 2}

	for i := 0; i < 100; i++ {
		for _, item := range pl.Place(spec, unitSquare(), b, rng) {
			box := item.BoundingRect()
			test.That(t, box.X.Lo, test.ShouldBeGreaterThanOrEqualTo, interior.X.Lo-1e-6)
			test.That(t, box.X.Hi, test.ShouldBeLessThanOrEqualTo, interior.X.Hi+1e-6)
			test.That(t, box.Y.Lo, test.ShouldBeGreaterThanOrEqualTo, interior.Y.Lo-1e-6)
			test.That(t, box.Y.Hi, test.ShouldBeLessThanOrEqualTo, interior.Y.Hi+1e-6)
		}
	}
}

func TestClampShift(t *testing.T) {
	test.That(t, clampShift(-2, 1, 0, 10), test.ShouldEqual, 2.0)
	test.That(t, clampShift(8, 12, 0, 10), test.ShouldEqual, -2.0)
	test.That(t, clampShift(2, 4, 0, 10), test.ShouldEqual, 0.0)
	// Oversized boxes get centered.
	test.That(t, clampShift(0, 20, 0, 10), test.ShouldEqual, -5.0)
}
