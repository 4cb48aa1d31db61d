package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/daniacca/xbpgh/internal/batch"
	"github.com/daniacca/xbpgh/internal/levels"
	"github.com/daniacca/xbpgh/internal/organism"
)

// StatesPerRow is how many boards the simulation timeline shows per line.
const StatesPerRow = 6

// Printer writes human readable reports to one output.
type Printer struct {
	w  io.Writer
	st styles
}

// NewPrinter creates a printer for w. Styling is only applied when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, st: newStyles(w)}
}

func (p *Printer) flush(b *strings.Builder) error {
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Heading names a level and slot, e.g. "Twins (Slot 2)".
func Heading(o batch.Outcome) string {
	name := o.Level.Name
	if !o.Known {
		name = fmt.Sprintf("Level %d", o.LevelID)
	}
	return fmt.Sprintf("%s (Slot %d)", name, o.Slot)
}

// MetricsLine renders metrics as key=value pairs using the JSON field names.
func MetricsLine(m organism.Metrics) string {
	return fmt.Sprintf("is_correct=%t num_rules=%d num_rules_conditional=%d num_frames=%d is_stable=%t num_waste=%d is_wasteful=%t",
		m.IsCorrect, m.NumRules, m.NumRulesConditional, m.NumFrames, m.IsStable, m.NumWaste, m.IsWasteful)
}

// Batch prints one block per outcome followed by a summary line. Incorrect
// solutions show the reached board next to the target.
func (p *Printer) Batch(r *batch.Report) error {
	var b strings.Builder
	for _, o := range r.Outcomes {
		b.WriteString(p.st.title.Render(Heading(o)))
		b.WriteByte('\n')

		switch o.Status {
		case batch.StatusCorrect:
			fmt.Fprintf(&b, "  %s %s\n", p.st.success.Render("✓"), MetricsLine(o.Result.Metrics))
		case batch.StatusIncorrect:
			fmt.Fprintf(&b, "  %s %s\n", p.st.warning.Render("✗"), MetricsLine(o.Result.Metrics))
			b.WriteString(SideBySide(o.Result.Final, o.Level.Target))
			b.WriteString("\n\n")
		default:
			fmt.Fprintf(&b, "  %s %s\n", p.st.failure.Render("✗ "+string(o.Status)+":"), o.Err)
		}
	}

	correct, incorrect := r.Count(batch.StatusCorrect), r.Count(batch.StatusIncorrect)
	summary := fmt.Sprintf("%d correct, %d incorrect, %d failed (run %s)",
		correct, incorrect, len(r.Outcomes)-correct-incorrect, r.RunID)
	b.WriteString(p.st.muted.Render(summary))
	b.WriteByte('\n')
	return p.flush(&b)
}

// Simulation prints the metrics, every state of the run, the target when
// the solution is wrong, and a picture of each active rule.
func (p *Printer) Simulation(res *organism.SimulationResult, slot int) error {
	var b strings.Builder
	b.WriteString(p.st.title.Render(fmt.Sprintf("%s (Slot %d)", res.Level.Name, slot)))
	b.WriteString("\nMetrics:\n")

	m := res.Metrics
	for _, kv := range []struct {
		k string
		v any
	}{
		{"is_correct", m.IsCorrect},
		{"num_rules", m.NumRules},
		{"num_rules_conditional", m.NumRulesConditional},
		{"num_frames", m.NumFrames},
		{"is_stable", m.IsStable},
		{"num_waste", m.NumWaste},
		{"is_wasteful", m.IsWasteful},
	} {
		fmt.Fprintf(&b, "%s = %v\n", kv.k, kv.v)
	}

	b.WriteString("Simulation:\n")
	b.WriteString(Timeline(res.States, StatesPerRow))
	b.WriteByte('\n')

	if !m.IsCorrect {
		b.WriteString(p.st.warning.Render("Incorrect solution:"))
		b.WriteByte('\n')
		b.WriteString(SideBySide(res.Final, res.Level.Target))
		b.WriteByte('\n')
	}

	b.WriteString("Rules:\n")
	for _, r := range res.Solution.Rules {
		if !r.Active() {
			continue
		}
		b.WriteString(p.st.muted.Render(r.ReactionKind().String()))
		b.WriteByte('\n')
		b.WriteString(organism.RenderRule(r))
		b.WriteByte('\n')
	}
	return p.flush(&b)
}

// Levels lists the level table in play order.
func (p *Printer) Levels(set *levels.Set) error {
	var b strings.Builder
	for _, l := range set.All() {
		var notes []string
		if l.CanMetal {
			notes = append(notes, "metal")
		}
		if l.MinWaste > 0 {
			notes = append(notes, fmt.Sprintf("min waste %d", l.MinWaste))
		}
		line := fmt.Sprintf("%-5s %4d  %s", set.Position(l), l.ID, l.Name)
		if len(notes) > 0 {
			line += "  " + p.st.muted.Render("("+strings.Join(notes, ", ")+")")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return p.flush(&b)
}
