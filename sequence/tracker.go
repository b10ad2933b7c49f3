package sequence

import (
	"fmt"
	"math/rand"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/binvision/trashgen/classes"
	"github.com/binvision/trashgen/palette"
	"github.com/binvision/trashgen/render"
	"github.com/binvision/trashgen/scene"
	"github.com/binvision/trashgen/shapegen"
)

// maxRandomLength bounds the sequence length drawn when the caller leaves it
// unspecified.
const maxRandomLength = 50

// StepPolicy tunes how the item set evolves between frames. The exact
// add/remove distribution is deliberately a knob, not a constant.
type StepPolicy struct {
	// SurvivalProb is the per-step chance an existing item persists.
	SurvivalProb float64
	// MinNew and MaxNew bound how many class occurrences arrive per step.
	MinNew int
	MaxNew int
}

// DefaultStepPolicy keeps every item forever and adds one to five
// occurrences per step.
func DefaultStepPolicy() StepPolicy {
	return StepPolicy{SurvivalProb: 1.0, MinNew: 1, MaxNew: 5}
}

func (p StepPolicy) validate() error {
	if p.SurvivalProb < 0 || p.SurvivalProb > 1 {
		return errors.Errorf("survival probability %f out of [0,1]", p.SurvivalProb)
	}
	if p.MinNew < 1 || p.MaxNew < p.MinNew {
		return errors.Errorf("new-occurrence bounds [%d,%d] invalid; need 1 <= min <= max", p.MinNew, p.MaxNew)
	}
	return nil
}

// State is the lifecycle of one sequence.
type State int

const (
	// StateEmpty means no frame has been emitted yet.
	StateEmpty State = iota
	// StateActive means frames are being emitted.
	StateActive
	// StateDone means the sequence reached its target length.
	StateDone
)

// Generator builds trackers. It owns the process-wide read-only inputs
// (class table, palette, pattern store) and is safe to share across
// concurrently generated sequences.
type Generator struct {
	logger  golog.Logger
	table   *classes.Table
	palette *palette.Palette
	synth   *shapegen.Synthesizer
	placer  *scene.Placer
	comp    *render.Compositor
	policy  StepPolicy
	clock   clock.Clock
}

// NewGenerator validates the policy and wires the synthesis pipeline.
func NewGenerator(
	table *classes.Table,
	pal *palette.Palette,
	patterns render.PatternStore,
	policy StepPolicy,
	clk clock.Clock,
	logger golog.Logger,
) (*Generator, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, errors.New("class table is empty")
	}
	return &Generator{
		logger:  logger,
		table:   table,
		palette: pal,
		synth:   shapegen.NewSynthesizer(logger),
		placer:  scene.NewPlacer(logger),
		comp:    render.NewCompositor(patterns, logger),
		policy:  policy,
		clock:   clk,
	}, nil
}

// Tracker owns one sequence's evolving item multiset and frame chain. It is
// private to its generation pass: all mutation happens through Step on a
// single goroutine, with the sequence's own rng.
type Tracker struct {
	gen      *Generator
	seqIndex int
	length   int
	stamp    string
	bin      *scene.Bin
	rng      *rand.Rand

	state  State
	items  []scene.Item
	nextID int
	frames []*Frame
}

// NewTracker starts a sequence of the given length. A negative length means
// "unspecified" and is drawn uniformly from [0,50]. Length zero is legal and
// produces an empty chain.
func (g *Generator) NewTracker(seqIndex, length, width, height int, rng *rand.Rand) *Tracker {
	if length < 0 {
		length = rng.Intn(maxRandomLength + 1)
	}
	return &Tracker{
		gen:      g,
		seqIndex: seqIndex,
		length:   length,
		stamp:    g.clock.Now().UTC().Format("20060102T150405"),
		bin:      scene.RandomBin(width, height, rng),
		rng:      rng,
	}
}

// State returns the tracker's lifecycle state.
func (t *Tracker) State() State {
	if t.state == StateEmpty && t.length == 0 {
		return StateDone
	}
	return t.state
}

// Frames returns the chain emitted so far.
func (t *Tracker) Frames() []*Frame {
	return t.frames
}

// Step advances the sequence one frame: existing items survive or drop per
// policy, new occurrences arrive, the frame is composited, and both masks
// plus the chain links are derived. It returns false once the sequence is
// done, after which no further frames are emitted.
func (t *Tracker) Step() (*Frame, bool) {
	if t.state == StateDone || len(t.frames) >= t.length {
		t.state = StateDone
		return nil, false
	}
	t.state = StateActive

	t.dropItems()
	added := t.addItems()

	img, owner := t.gen.comp.Render(t.bin, t.items, t.rng)

	areas := owner.VisibleAreas()
	classOf := map[int]int{}
	for _, item := range t.items {
		classOf[item.ID] = item.ClassID
	}
	ranked := rankItems(areas, classOf)
	topMask, valueOf := top20Mask(owner, ranked)

	index := len(t.frames)
	frame := &Frame{
		ImageID:       fmt.Sprintf("%04d-%04d", t.seqIndex, index),
		Index:         index,
		Items:         append([]scene.Item{}, t.items...),
		Image:         img,
		NewObjectMask: newObjectMask(owner, added),
		Top20Mask:     topMask,
		Categories:    t.categoriesFor(valueOf, classOf),
	}
	frame.Name = fmt.Sprintf("%s-%s", t.stamp, frame.ImageID)

	if index > 0 {
		prev := t.frames[index-1]
		prev.NextImageID = frame.ImageID
		frame.PrevImageID = prev.ImageID
	}
	t.frames = append(t.frames, frame)
	if len(t.frames) >= t.length {
		t.state = StateDone
	}
	return frame, true
}

// Run steps the tracker to completion and returns the full chain.
func (t *Tracker) Run() []*Frame {
	for {
		if _, ok := t.Step(); !ok {
			return t.frames
		}
	}
}

// dropItems applies the survival policy to the live set.
func (t *Tracker) dropItems() {
	if t.gen.policy.SurvivalProb >= 1 {
		return
	}
	kept := t.items[:0]
	for _, item := range t.items {
		if t.rng.Float64() < t.gen.policy.SurvivalProb {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

// addItems schedules new class occurrences into the frame and returns the
// set of arena IDs created this step.
func (t *Tracker) addItems() map[int]bool {
	added := map[int]bool{}
	p := t.gen.policy
	occurrences := p.MinNew + t.rng.Intn(p.MaxNew-p.MinNew+1)
	for i := 0; i < occurrences; i++ {
		spec := t.gen.table.Spec(t.rng.Intn(t.gen.table.Len()))
		outline := t.gen.synth.Synthesize(spec, t.rng)
		fill, err := t.gen.palette.Lookup(spec.ColorIndex)
		if err != nil {
			// Validation rejects out-of-range indices before generation.
			panic(err)
		}
		for _, item := range t.gen.placer.Place(spec, outline, t.bin, t.rng) {
			item.ID = t.nextID
			item.Color = fill
			item.PatternRef = spec.ID
			t.nextID++
			added[item.ID] = true
			t.items = append(t.items, item)
		}
	}
	return added
}

// categoriesFor resolves the per-frame luminosity table.
func (t *Tracker) categoriesFor(valueOf map[int]uint8, classOf map[int]int) map[uint8]Category {
	out := make(map[uint8]Category, len(valueOf))
	for id, v := range valueOf {
		spec := t.gen.table.Spec(classOf[id])
		out[v] = Category{
			SuperCategory: spec.SuperCategory,
			Category:      spec.Category,
			Avoidable:     spec.Avoidable,
		}
	}
	return out
}
