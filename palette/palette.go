// Package palette provides the indexed class color table. Most trash is food
// waste, which clusters in the red-to-green band, so the generator samples
// hues from that band instead of a maximally-distinct categorical scheme.
package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Size is the number of entries a class palette carries.
const Size = 40

// Palette is a fixed indexed color table. Read-only after construction.
type Palette struct {
	colors []color.NRGBA
}

// New builds a palette from the given colors.
func New(colors []color.NRGBA) (*Palette, error) {
	if len(colors) != Size {
		return nil, errors.Errorf("palette needs %d colors, got %d", Size, len(colors))
	}
	out := make([]color.NRGBA, Size)
	copy(out, colors)
	return &Palette{colors: out}, nil
}

// Lookup returns the color at the given index.
func (p *Palette) Lookup(index int) (color.NRGBA, error) {
	if index < 0 || index >= len(p.colors) {
		return color.NRGBA{}, errors.Errorf("palette index %d out of [0,%d]", index, len(p.colors)-1)
	}
	return p.colors[index], nil
}

// Len returns the palette size.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Generate samples a red-to-green palette of Size colors from rng. Duplicate
// draws are rejected so every index maps to a distinct color.
func Generate(rng *rand.Rand) *Palette {
	seen := map[string]bool{}
	colors := make([]color.NRGBA, 0, Size)
	for len(colors) < Size {
		h := rng.Float64() * 90.0 // red through green
		s := 0.2 + rng.Float64()*0.8
		v := 0.3 + rng.Float64()*0.5
		c := colorful.Hsv(h, s, v)
		hex := c.Hex()
		if seen[hex] {
			continue
		}
		seen[hex] = true
		r, g, b := c.RGB255()
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	p, _ := New(colors)
	return p
}

// ReadCSV parses a palette from a single-column CSV of hex colors with a
// "color" header line.
func ReadCSV(r io.Reader) (*Palette, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, errors.New("empty palette file")
	}
	if got := strings.TrimSpace(scanner.Text()); got != "color" {
		return nil, errors.Errorf("palette header should be %q, got %q", "color", got)
	}
	var colors []color.NRGBA
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, err := colorful.Hex(line)
		if err != nil {
			return nil, errors.Wrapf(err, "palette row %d", len(colors))
		}
		r, g, b := c.RGB255()
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(colors)
}

// LoadCSV reads a palette from the file at path.
func LoadCSV(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the palette in the format ReadCSV understands.
func (p *Palette) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "color"); err != nil {
		return err
	}
	for _, c := range p.colors {
		if _, err := fmt.Fprintf(w, "#%02x%02x%02x\n", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}
