package dataset

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/binvision/trashgen/sequence"
)

// Options configures one generation run.
type Options struct {
	// NumSequences is how many independent sequences to generate.
	NumSequences int
	// Length is the frame count per sequence; negative means each sequence
	// draws its own length uniformly from [0,50].
	Length int
	Width  int
	Height int
	// Seed derives one rng per sequence, so a run regenerates bit-for-bit.
	Seed int64
	// Workers bounds concurrent sequences; zero means GOMAXPROCS.
	Workers int
}

// Generator fans sequences out over workers and funnels frames into a
// Writer. Sequences are independent: each owns its rng, item set, and frame
// chain, so the only shared state is the read-only generator inputs, the
// writer, and the annotation set (guarded here).
type Generator struct {
	seqs   *sequence.Generator
	writer *Writer
	logger golog.Logger
}

// NewGenerator wires a run.
func NewGenerator(seqs *sequence.Generator, writer *Writer, logger golog.Logger) *Generator {
	return &Generator{seqs: seqs, writer: writer, logger: logger}
}

// GenerateAll generates every sequence, writes all frames and masks, and
// finishes with a single combined annotations.json.
func (g *Generator) GenerateAll(ctx context.Context, opts Options) error {
	runID := uuid.New()
	g.logger.Infow("starting generation run",
		"run_id", runID.String(),
		"sequences", opts.NumSequences,
		"seed", opts.Seed,
	)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > opts.NumSequences {
		workers = opts.NumSequences
	}

	anns := sequence.NewAnnotationSet()
	var mu sync.Mutex
	var allErrs error

	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		goutils.PanicCapturingGo(func() {
			defer wg.Done()
			for seqIndex := range indexes {
				if err := g.generateOne(ctx, seqIndex, opts, anns, &mu); err != nil {
					mu.Lock()
					allErrs = multierr.Append(allErrs, err)
					mu.Unlock()
				}
			}
		})
	}

	for i := 0; i < opts.NumSequences; i++ {
		if ctx.Err() != nil {
			break
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return multierr.Append(allErrs, err)
	}
	if allErrs != nil {
		return allErrs
	}
	return g.writer.WriteAnnotations(anns)
}

func (g *Generator) generateOne(
	ctx context.Context,
	seqIndex int,
	opts Options,
	anns *sequence.AnnotationSet,
	mu *sync.Mutex,
) error {
	rng := rand.New(rand.NewSource(opts.Seed + int64(seqIndex)))
	tracker := g.seqs.NewTracker(seqIndex, opts.Length, opts.Width, opts.Height, rng)

	var errs error
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		frame, ok := tracker.Step()
		if !ok {
			break
		}
		if err := g.writer.WriteFrame(frame); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	frames := tracker.Frames()
	g.logger.Debugw("sequence generated", "sequence", seqIndex, "frames", len(frames))

	mu.Lock()
	anns.AddSequence(frames, func(f *sequence.Frame) (string, string, string) {
		return g.writer.Refs(f)
	})
	mu.Unlock()
	return errs
}
