// Package batch validates every solution of a save file in parallel.
package batch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/daniacca/xbpgh/internal/organism"
	"github.com/daniacca/xbpgh/internal/savefile"
)

// ErrUnknownLevel means a record names a level id missing from the table.
var ErrUnknownLevel = errors.New("no level with this id")

// Status classifies the outcome of one record.
type Status string

const (
	StatusCorrect      Status = "correct"
	StatusIncorrect    Status = "incorrect"
	StatusDecodeError  Status = "decode_error"
	StatusSetupError   Status = "setup_error"
	StatusUnknownLevel Status = "unknown_level"
	StatusInternal     Status = "internal_error"
)

// Failed reports whether the record produced no simulation result.
func (s Status) Failed() bool {
	return s != StatusCorrect && s != StatusIncorrect
}

// LevelSource resolves save-file level ids.
type LevelSource interface {
	ByID(id int) (organism.Level, bool)
}

// Outcome is the result of validating one save record.
type Outcome struct {
	Line    int
	LevelID int
	Slot    int
	// Level is the zero value unless the id resolved.
	Level    organism.Level
	Known    bool
	Solution organism.Solution
	Result   *organism.SimulationResult
	Status   Status
	Err      error
}

// Report is everything one Run produced.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

// Count returns how many outcomes have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Config tunes a Validator. Zero values pick defaults.
type Config struct {
	// Workers bounds concurrent simulations; defaults to GOMAXPROCS.
	Workers int
	Logger  organism.Logger
	Metrics *Metrics
}

// Validator decodes and simulates save records against a level table.
type Validator struct {
	levels  LevelSource
	workers int
	logger  organism.Logger
	metrics *Metrics
	sim     *organism.Simulator
}

// New creates a validator over levels.
func New(levels LevelSource, cfg Config) *Validator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = organism.NopLogger()
	}
	return &Validator{
		levels:  levels,
		workers: workers,
		logger:  logger,
		metrics: cfg.Metrics,
		sim:     organism.NewSimulator(logger),
	}
}

// Run validates records on a bounded worker pool. Duplicate (level, slot)
// records keep the last one in file order. A bad record never stops the
// batch; it is reported in its Outcome. The returned error joins every
// internal error, or reports cancellation of ctx, in which case the report
// is nil.
func (v *Validator) Run(ctx context.Context, records []savefile.Record) (*Report, error) {
	runID := uuid.NewString()
	recs := Dedupe(records)
	v.logger.Infof("run %s: validating %d records (%d in file) with %d workers",
		runID, len(recs), len(records), v.workers)

	outcomes := make([]Outcome, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, rec := range recs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = v.validate(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	slices.SortStableFunc(outcomes, compareOutcomes)

	var internal []error
	for _, o := range outcomes {
		v.metrics.observe(o)
		if o.Status == StatusInternal {
			internal = append(internal, fmt.Errorf("level %d slot %d: %w", o.LevelID, o.Slot, o.Err))
		}
	}

	report := &Report{RunID: runID, Outcomes: outcomes}
	v.logger.Infof("run %s: %d correct, %d incorrect, %d failed",
		runID, report.Count(StatusCorrect), report.Count(StatusIncorrect),
		len(outcomes)-report.Count(StatusCorrect)-report.Count(StatusIncorrect))
	return report, errors.Join(internal...)
}

func (v *Validator) validate(rec savefile.Record) Outcome {
	o := Outcome{Line: rec.Line, LevelID: rec.LevelID, Slot: rec.Slot}
	fail := func(s Status, err error) Outcome {
		o.Status, o.Err = s, err
		if s == StatusInternal {
			v.logger.Errorf("line %d: level %d slot %d: %v", rec.Line, rec.LevelID, rec.Slot, err)
		} else {
			v.logger.Warnf("line %d: level %d slot %d: %v", rec.Line, rec.LevelID, rec.Slot, err)
		}
		return o
	}

	if rec.Err != nil {
		return fail(StatusDecodeError, rec.Err)
	}

	level, ok := v.levels.ByID(rec.LevelID)
	if !ok {
		return fail(StatusUnknownLevel, fmt.Errorf("%w: %d", ErrUnknownLevel, rec.LevelID))
	}
	o.Level, o.Known = level, true

	sol, err := rec.Decode()
	if err != nil {
		if organism.IsInternal(err) {
			return fail(StatusInternal, err)
		}
		return fail(StatusDecodeError, err)
	}
	o.Solution = sol

	res, err := v.sim.Run(level, sol)
	switch {
	case err == nil:
	case organism.IsSetup(err):
		return fail(StatusSetupError, err)
	default:
		return fail(StatusInternal, err)
	}

	o.Result = res
	o.Status = StatusIncorrect
	if res.Metrics.IsCorrect {
		o.Status = StatusCorrect
	}
	v.logger.Debugf("line %d: %s slot %d: %s", rec.Line, level.Name, rec.Slot, o.Status)
	return o
}

type recordKey struct {
	level, slot int
}

// Dedupe drops records whose (level, slot) reappears later in the file.
// Records with a malformed key are always kept.
func Dedupe(records []savefile.Record) []savefile.Record {
	last := make(map[recordKey]int, len(records))
	for i, r := range records {
		if r.Err == nil {
			last[recordKey{r.LevelID, r.Slot}] = i
		}
	}
	out := make([]savefile.Record, 0, len(last))
	for i, r := range records {
		if r.Err != nil || last[recordKey{r.LevelID, r.Slot}] == i {
			out = append(out, r)
		}
	}
	return out
}

// compareOutcomes orders known levels by play order, then unknown level ids,
// then slots, then file lines.
func compareOutcomes(a, b Outcome) int {
	if a.Known != b.Known {
		if a.Known {
			return -1
		}
		return 1
	}
	if a.Known {
		if c := cmp.Compare(a.Level.Index, b.Level.Index); c != 0 {
			return c
		}
	} else if c := cmp.Compare(a.LevelID, b.LevelID); c != 0 {
		return c
	}
	return cmp.Or(cmp.Compare(a.Slot, b.Slot), cmp.Compare(a.Line, b.Line))
}
