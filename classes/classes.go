// Package classes loads and validates the table of trash class definitions
// that drives shape synthesis and annotation.
package classes

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ShapeKind selects the base outline a class is built from.
type ShapeKind int

const (
	// ShapeRandom is a procedural blob. Random shapes never deform further.
	ShapeRandom ShapeKind = iota
	// ShapeSemicircle is the upper half of an ellipse.
	ShapeSemicircle
	// ShapeEllipse is a full ellipse with random axes and orientation.
	ShapeEllipse
	// ShapeBanana is a fixed crescent control polygon, smoothed.
	ShapeBanana
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSemicircle:
		return "semicircle"
	case ShapeEllipse:
		return "ellipse"
	case ShapeBanana:
		return "banana"
	default:
		return "random"
	}
}

// ParseShapeKind maps a class table cell to a ShapeKind. An empty cell means
// the class has no canonical silhouette and gets a random blob.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "", "random":
		return ShapeRandom, nil
	case "semicircle":
		return ShapeSemicircle, nil
	case "ellipse", "circle":
		return ShapeEllipse, nil
	case "banana":
		return ShapeBanana, nil
	default:
		return ShapeRandom, errors.Errorf("unknown shape kind %q", s)
	}
}

// NumColors is the size of the palette class color indices refer to.
const NumColors = 40

// ClassSpec is one validated row of the class table.
type ClassSpec struct {
	ID            int
	SuperCategory string
	Category      string
	Avoidable     bool
	ColorIndex    int
	Shape         ShapeKind
	PWarp         float64
	PSlice        float64
	MaxItems      int
}

// Validate checks a spec's numeric fields. The returned error combines every
// violation so a bad table is reported in one shot.
func (c ClassSpec) Validate() error {
	var err error
	if c.Category == "" {
		err = multierr.Append(err, errors.New("category is required"))
	}
	if c.ColorIndex < 0 || c.ColorIndex >= NumColors {
		err = multierr.Append(err, errors.Errorf("color index %d out of [0,%d]", c.ColorIndex, NumColors-1))
	}
	if c.PWarp < 0 || c.PWarp > 1 {
		err = multierr.Append(err, errors.Errorf("p_warp %f out of [0,1]", c.PWarp))
	}
	if c.PSlice < 0 || c.PSlice > 1 {
		err = multierr.Append(err, errors.Errorf("p_slice %f out of [0,1]", c.PSlice))
	}
	if c.MaxItems <= 0 {
		err = multierr.Append(err, errors.Errorf("max_items must be positive, got %d", c.MaxItems))
	}
	return err
}

// Deformable reports whether the class may take warp or slice deformations.
// Deforming an already random outline adds no signal, so blobs are exempt.
func (c ClassSpec) Deformable() bool {
	return c.Shape != ShapeRandom
}

// Table is the full set of class specs for a run. Read-only after loading.
type Table struct {
	specs []ClassSpec
}

// NewTable validates the given specs and assigns row IDs.
func NewTable(specs []ClassSpec) (*Table, error) {
	var err error
	for i := range specs {
		specs[i].ID = i
		if rowErr := specs[i].Validate(); rowErr != nil {
			err = multierr.Append(err, errors.Wrapf(rowErr, "class row %d", i))
		}
	}
	if err != nil {
		return nil, err
	}
	return &Table{specs: specs}, nil
}

// Len returns the number of classes.
func (t *Table) Len() int {
	return len(t.specs)
}

// Spec returns the class at the given row.
func (t *Table) Spec(id int) ClassSpec {
	return t.specs[id]
}

// Specs returns all rows in order.
func (t *Table) Specs() []ClassSpec {
	out := make([]ClassSpec, len(t.specs))
	copy(out, t.specs)
	return out
}
