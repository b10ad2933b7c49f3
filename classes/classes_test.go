package classes

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestParseShapeKind(t *testing.T) {
	k, err := ParseShapeKind("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, k, test.ShouldEqual, ShapeRandom)

	k, err = ParseShapeKind("banana")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, k, test.ShouldEqual, ShapeBanana)

	_, err = ParseShapeKind("dodecahedron")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSpecValidate(t *testing.T) {
	good := ClassSpec{Category: "apple", ColorIndex: 3, Shape: ShapeEllipse, PWarp: 0.5, MaxItems: 4}
	test.That(t, good.Validate(), test.ShouldBeNil)

	bad := ClassSpec{Category: "apple", ColorIndex: 41, PWarp: 1.5, MaxItems: 0}
	err := bad.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "color index")
	test.That(t, err.Error(), test.ShouldContainSubstring, "p_warp")
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_items")
}

func TestDeformable(t *testing.T) {
	test.That(t, ClassSpec{Shape: ShapeRandom}.Deformable(), test.ShouldBeFalse)
	test.That(t, ClassSpec{Shape: ShapeBanana}.Deformable(), test.ShouldBeTrue)
}

const sampleCSV = `super_category,category,avoidable,color,shape,p_warp_deform,p_slice_deform,max_items
food,apple,TRUE,0,ellipse,0.3,0.5,4
food,banana,TRUE,1,banana,0.2,0.9,3
other,scrap,FALSE,12,,,,
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, table.Len(), test.ShouldEqual, 3)

	apple := table.Spec(0)
	test.That(t, apple.Category, test.ShouldEqual, "apple")
	test.That(t, apple.Avoidable, test.ShouldBeTrue)
	test.That(t, apple.Shape, test.ShouldEqual, ShapeEllipse)
	test.That(t, apple.PSlice, test.ShouldEqual, 0.5)
	test.That(t, apple.MaxItems, test.ShouldEqual, 4)

	scrap := table.Spec(2)
	test.That(t, scrap.Shape, test.ShouldEqual, ShapeRandom)
	test.That(t, scrap.PWarp, test.ShouldEqual, 0.0)
	test.That(t, scrap.MaxItems, test.ShouldEqual, 1)
	test.That(t, scrap.ID, test.ShouldEqual, 2)
}

func TestReadCSVRejectsBadRows(t *testing.T) {
	bad := `super_category,category,avoidable,color,shape,p_warp_deform,p_slice_deform,max_items
food,apple,TRUE,99,ellipse,0.3,0.5,4
`
	_, err := ReadCSV(strings.NewReader(bad))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "color index")

	missing := `super_category,category
food,apple
`
	_, err = ReadCSV(strings.NewReader(missing))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing column")
}
