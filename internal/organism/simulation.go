package organism

import "fmt"

// Ticks is the number of steps after the initial state. Every run produces
// Ticks+1 states.
const Ticks = 11

// SimulationResult is everything a run produced.
type SimulationResult struct {
	Level    Level
	Solution Solution
	// States holds the initial state followed by one state per tick.
	States []State
	// Applied holds the applied-rule grid of every tick.
	Applied []AppliedRules
	// Final is the last state without its live-cell list.
	Final   State
	Metrics Metrics
}

// Simulator runs solutions against levels.
type Simulator struct {
	logger Logger
}

// NewSimulator creates a simulator that reports progress to logger.
// A nil logger discards everything.
func NewSimulator(logger Logger) *Simulator {
	return &Simulator{logger: loggerOrNop(logger)}
}

// Simulate runs solution against level without logging.
func Simulate(level Level, solution Solution) (*SimulationResult, error) {
	return NewSimulator(nil).Run(level, solution)
}

// Run grows the solution's seed for exactly Ticks ticks and scores the final
// organism against the level's target. Setup problems are reported as
// *SetupError; engine or level-data defects as *InvariantError.
func (s *Simulator) Run(level Level, solution Solution) (*SimulationResult, error) {
	if err := solution.Validate(); err != nil {
		return nil, &SetupError{Err: ErrInvalidRules, Detail: err.Error()}
	}

	state, err := initialState(level, solution)
	if err != nil {
		return nil, err
	}

	res := &SimulationResult{
		Level:    level,
		Solution: solution,
		States:   make([]State, 0, Ticks+1),
		Applied:  make([]AppliedRules, 0, Ticks),
	}
	res.States = append(res.States, state)

	waste, frames := 0, 1
	for i := 1; i <= Ticks; i++ {
		step, err := Step(state, &solution.Rules)
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}
		state = step.State
		res.States = append(res.States, state)
		res.Applied = append(res.Applied, step.Applied)

		waste += step.Deaths
		if step.Changed {
			frames++
		}
		s.logger.Debugf("level %d tick %d: changed=%t deaths=%d living=%d",
			level.ID, i, step.Changed, step.Deaths, len(state.Living()))
	}

	probe, err := Step(state, &solution.Rules)
	if err != nil {
		return nil, fmt.Errorf("stability probe: %w", err)
	}

	res.Final = state.WithoutLiveCells()
	active, conditional := solution.Rules.Count()
	res.Metrics = Metrics{
		IsCorrect:           res.Final.Equal(level.Target),
		NumRules:            active,
		NumRulesConditional: conditional,
		NumFrames:           frames,
		IsStable:            !probe.Changed,
		NumWaste:            waste,
		IsWasteful:          waste > level.MinWaste,
	}

	if res.Metrics.IsCorrect && waste < level.MinWaste {
		return nil, &InvariantError{
			Err:    ErrWasteBelowMinimum,
			Detail: fmt.Sprintf("level %d (%s): waste %d, minimum %d", level.ID, level.Name, waste, level.MinWaste),
		}
	}
	return res, nil
}

// initialState keeps the target's metal, places any player metal and plants
// the seed.
func initialState(level Level, solution Solution) (State, error) {
	b := EmptyState().board
	target := level.Target.Cells()
	for x := range Width {
		for y := range Height {
			if target[x][y] == KindMetal {
				b.cells[x][y] = KindMetal
			}
		}
	}

	if len(solution.Metal) > 0 {
		if !level.CanMetal {
			return State{}, &SetupError{Err: ErrMetalNotAllowed, Detail: level.Name}
		}
		for _, m := range solution.Metal {
			b.cells[m.X][m.Y] = KindMetal
		}
	}

	start := solution.Start
	if b.kind(start) != KindNone {
		return State{}, &SetupError{Err: ErrStartOccupied, Detail: start.String()}
	}
	b.cells[start.X][start.Y] = KindSeed

	state, err := newTrackedState(b, []Coords{start})
	if err != nil {
		return State{}, err
	}
	return state, nil
}
