package report

import (
	"encoding/json"
	"io"

	"github.com/daniacca/xbpgh/internal/batch"
	"github.com/daniacca/xbpgh/internal/organism"
)

// Result is the machine readable form of one outcome. Metric fields are
// only present when the solution was simulated.
type Result struct {
	LevelName string       `json:"level_name"`
	LevelID   int          `json:"level_id"`
	Slot      int          `json:"slot"`
	Solution  string       `json:"solution,omitempty"`
	Status    batch.Status `json:"status"`
	Error     string       `json:"error,omitempty"`
	*organism.Metrics
}

// BatchDocument is the JSON output of a batch run.
type BatchDocument struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
}

// NewResult converts an outcome. The payload is included only when
// includeSolution is set.
func NewResult(o batch.Outcome, includeSolution bool) Result {
	res := Result{
		LevelName: o.Level.Name,
		LevelID:   o.LevelID,
		Slot:      o.Slot,
		Status:    o.Status,
	}
	if includeSolution {
		res.Solution = o.Solution.Encoded
	}
	if o.Err != nil {
		res.Error = o.Err.Error()
	}
	if o.Result != nil {
		m := o.Result.Metrics
		res.Metrics = &m
	}
	return res
}

// WriteBatchJSON writes r as a single JSON document.
func WriteBatchJSON(w io.Writer, r *batch.Report, includeSolution bool) error {
	doc := BatchDocument{RunID: r.RunID, Results: make([]Result, 0, len(r.Outcomes))}
	for _, o := range r.Outcomes {
		doc.Results = append(doc.Results, NewResult(o, includeSolution))
	}
	return json.NewEncoder(w).Encode(doc)
}

// SimulationDocument is the JSON output of a single simulation.
type SimulationDocument struct {
	LevelName string   `json:"level_name"`
	LevelID   int      `json:"level_id"`
	Slot      int      `json:"slot"`
	Solution  string   `json:"solution,omitempty"`
	States    []string `json:"states"`
	Target    string   `json:"target"`
	organism.Metrics
}

// WriteSimulationJSON writes the metrics and every rendered state of res.
func WriteSimulationJSON(w io.Writer, res *organism.SimulationResult, slot int, includeSolution bool) error {
	doc := SimulationDocument{
		LevelName: res.Level.Name,
		LevelID:   res.Level.ID,
		Slot:      slot,
		States:    make([]string, 0, len(res.States)),
		Target:    res.Level.Target.Render(),
		Metrics:   res.Metrics,
	}
	if includeSolution {
		doc.Solution = res.Solution.Encoded
	}
	for _, s := range res.States {
		doc.States = append(doc.States, s.Render())
	}
	return json.NewEncoder(w).Encode(doc)
}
