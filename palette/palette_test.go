package palette

import (
	"bytes"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestGenerate(t *testing.T) {
	p := Generate(rand.New(rand.NewSource(5)))
	test.That(t, p.Len(), test.ShouldEqual, Size)

	seen := map[[3]uint8]bool{}
	for i := 0; i < p.Len(); i++ {
		c, err := p.Lookup(i)
		test.That(t, err, test.ShouldBeNil)
		key := [3]uint8{c.R, c.G, c.B}
		test.That(t, seen[key], test.ShouldBeFalse)
		seen[key] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(11)))
	b := Generate(rand.New(rand.NewSource(11)))
	test.That(t, a.colors, test.ShouldResemble, b.colors)
}

func TestLookupBounds(t *testing.T) {
	p := Generate(rand.New(rand.NewSource(1)))
	_, err := p.Lookup(-1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = p.Lookup(Size)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCSVRoundTrip(t *testing.T) {
	p := Generate(rand.New(rand.NewSource(2)))
	var buf bytes.Buffer
	test.That(t, p.WriteCSV(&buf), test.ShouldBeNil)

	p2, err := ReadCSV(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p2.colors, test.ShouldResemble, p.colors)
}

func TestVisualize(t *testing.T) {
	p := Generate(rand.New(rand.NewSource(3)))
	img := p.Visualize()
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, swatchSize*gridCols)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, swatchSize*gridRows)
}
