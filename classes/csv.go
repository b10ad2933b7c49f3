package classes

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Expected header fields of a class table CSV. Optional cells may be empty:
// an empty shape means random, empty probabilities mean zero, and an empty
// max_items means one item per occurrence.
var csvHeader = []string{
	"super_category", "category", "avoidable", "color",
	"shape", "p_warp_deform", "p_slice_deform", "max_items",
}

// ReadCSV parses a class table from r and validates every row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "cannot read class table header")
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range csvHeader {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("class table missing column %q", name)
		}
	}

	var specs []ClassSpec
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "class table row %d", row)
		}
		spec, err := parseRow(record, cols)
		if err != nil {
			return nil, errors.Wrapf(err, "class table row %d", row)
		}
		specs = append(specs, spec)
	}
	return NewTable(specs)
}

// LoadCSV reads a class table from the file at path.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseRow(record []string, cols map[string]int) (ClassSpec, error) {
	cell := func(name string) string {
		return record[cols[name]]
	}

	var spec ClassSpec
	var err error
	spec.SuperCategory = cell("super_category")
	spec.Category = cell("category")

	switch cell("avoidable") {
	case "TRUE", "true", "True":
		spec.Avoidable = true
	case "FALSE", "false", "False", "":
		spec.Avoidable = false
	default:
		return spec, errors.Errorf("bad avoidable value %q", cell("avoidable"))
	}

	spec.ColorIndex, err = strconv.Atoi(cell("color"))
	if err != nil {
		return spec, errors.Wrapf(err, "bad color index %q", cell("color"))
	}

	spec.Shape, err = ParseShapeKind(cell("shape"))
	if err != nil {
		return spec, err
	}

	spec.PWarp, err = optionalFloat(cell("p_warp_deform"))
	if err != nil {
		return spec, errors.Wrap(err, "bad p_warp_deform")
	}
	spec.PSlice, err = optionalFloat(cell("p_slice_deform"))
	if err != nil {
		return spec, errors.Wrap(err, "bad p_slice_deform")
	}

	if cell("max_items") == "" {
		spec.MaxItems = 1
	} else {
		spec.MaxItems, err = strconv.Atoi(cell("max_items"))
		if err != nil {
			return spec, errors.Wrapf(err, "bad max_items %q", cell("max_items"))
		}
	}
	return spec, nil
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
