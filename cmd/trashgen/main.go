// Command trashgen generates synthetic trash-bin image sequences with
// pixel-accurate ground-truth masks and annotations.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/fogleman/gg"
	"github.com/urfave/cli/v2"

	"github.com/binvision/trashgen/classes"
	"github.com/binvision/trashgen/dataset"
	"github.com/binvision/trashgen/palette"
	"github.com/binvision/trashgen/render"
	"github.com/binvision/trashgen/sequence"
)

func main() {
	app := &cli.App{
		Name:            "trashgen",
		Usage:           "generate synthetic trash-bin sequence datasets",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "generate a dataset of labeled bin sequences",
				Action: generateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Usage:    "output directory for the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "classes",
						Usage:    "path to the class table CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "colors",
						Usage: "path to the palette CSV; omitted means a generated palette",
					},
					&cli.IntFlag{
						Name:  "sequences",
						Usage: "number of sequences to generate",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "length",
						Usage: "frames per sequence; negative draws lengths at random",
						Value: -1,
					},
					&cli.IntFlag{Name: "width", Value: 1024},
					&cli.IntFlag{Name: "height", Value: 800},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "rng seed; zero means time-derived",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "concurrent sequences; zero means all CPUs",
					},
					&cli.Float64Flag{
						Name:  "survival",
						Usage: "per-step chance an item stays in the bin",
						Value: 1.0,
					},
				},
			},
			{
				Name:   "palette",
				Usage:  "generate a class palette CSV and preview image",
				Action: paletteAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Usage:    "path of the palette CSV to write",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "preview",
						Usage: "optional path of a PNG palette preview",
					},
					&cli.Int64Flag{Name: "seed"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		golog.Global().Fatal(err)
	}
}

func newLogger(c *cli.Context) golog.Logger {
	if c.Bool("debug") {
		return golog.NewDevelopmentLogger("trashgen")
	}
	return golog.NewLogger("trashgen")
}

func generateAction(c *cli.Context) error {
	logger := newLogger(c)

	table, err := classes.LoadCSV(c.String("classes"))
	if err != nil {
		return err
	}

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var pal *palette.Palette
	if path := c.String("colors"); path != "" {
		pal, err = palette.LoadCSV(path)
		if err != nil {
			return err
		}
	} else {
		pal = palette.Generate(rand.New(rand.NewSource(seed)))
	}

	policy := sequence.DefaultStepPolicy()
	policy.SurvivalProb = c.Float64("survival")

	patterns := render.NewProceduralStore(seed)
	seqGen, err := sequence.NewGenerator(table, pal, patterns, policy, clock.New(), logger)
	if err != nil {
		return err
	}

	writer, err := dataset.NewWriter(c.String("out"), logger)
	if err != nil {
		return err
	}

	return dataset.NewGenerator(seqGen, writer, logger).GenerateAll(context.Background(), dataset.Options{
		NumSequences: c.Int("sequences"),
		Length:       c.Int("length"),
		Width:        c.Int("width"),
		Height:       c.Int("height"),
		Seed:         seed,
		Workers:      c.Int("workers"),
	})
}

func paletteAction(c *cli.Context) error {
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pal := palette.Generate(rand.New(rand.NewSource(seed)))

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()
	if err := pal.WriteCSV(out); err != nil {
		return err
	}

	if preview := c.String("preview"); preview != "" {
		return gg.SavePNG(preview, pal.Visualize())
	}
	return nil
}
