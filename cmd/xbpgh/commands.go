package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/daniacca/xbpgh/internal/batch"
	"github.com/daniacca/xbpgh/internal/levels"
	"github.com/daniacca/xbpgh/internal/organism"
	"github.com/daniacca/xbpgh/internal/report"
	"github.com/daniacca/xbpgh/internal/savefile"
)

// app is the state shared by every command once the root has resolved its
// configuration.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	cfg    Config
	logger *Logger
	levels *levels.Set
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, getenv: getenv}

	root := &cobra.Command{
		Use:           "xbpgh",
		Short:         "Validate and replay organism puzzle solutions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	registerFlags(root, true)

	root.AddCommand(a.validateAllCmd(), a.simulateCmd(), a.levelsCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, a.getenv)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = NewLogger(a.stderr, cfg.LogLevel)

	if cfg.LevelsFile != "" {
		a.levels, err = levels.Load(cfg.LevelsFile)
	} else {
		a.levels, err = levels.Default()
	}
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	a.logger.Debugf("loaded %d levels", a.levels.Len())
	return nil
}

// openSave opens a save file, with "-" meaning standard input.
func (a *app) openSave(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open save file: %w", err)
	}
	return f, nil
}

func (a *app) readRecords(path string) ([]savefile.Record, error) {
	rc, err := a.openSave(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return savefile.ReadRecords(rc)
}

func (a *app) validateAllCmd() *cobra.Command {
	var (
		asJSON          bool
		includeSolution bool
		metricsFile     string
	)
	cmd := &cobra.Command{
		Use:   "validate-all <save-file|->",
		Short: "Validate every solution in a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.readRecords(args[0])
			if err != nil {
				return err
			}

			var metrics *batch.Metrics
			if metricsFile != "" {
				metrics = batch.NewMetrics()
			}
			v := batch.New(a.levels, batch.Config{Workers: a.cfg.Workers, Logger: a.logger, Metrics: metrics})
			rep, runErr := v.Run(cmd.Context(), records)
			if rep == nil {
				return runErr
			}

			if asJSON {
				err = report.WriteBatchJSON(a.stdout, rep, includeSolution)
			} else {
				err = report.NewPrinter(a.stdout).Batch(rep)
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if metrics != nil {
				if err := metrics.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			if runErr != nil {
				return runErr
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Use JSON output mode")
	cmd.Flags().BoolVar(&includeSolution, "include-solution", false, "Include the solution save string in JSON output")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	registerFlags(cmd, false)
	return cmd
}

// ErrNoSolution means the save file has nothing in the requested slot.
var ErrNoSolution = errors.New("no solution in slot")

func (a *app) simulateCmd() *cobra.Command {
	var (
		asJSON          bool
		includeSolution bool
	)
	cmd := &cobra.Command{
		Use:   "simulate <level> <slot> <save-file|->",
		Short: "Simulate one saved solution and show every state",
		Long: `Simulate one saved solution and show every state.

Use "1-2" for the 2nd level in the 1st column of the base game, "B1-3" for
the 3rd level in the 1st column of the bonus levels, a bonus level name such
as "Clark", or "editor" for the puzzle editor. Slots are 0 for top-left, 1
for top-right, 2 for bottom-left and 3 for bottom-right.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := a.levels.Lookup(args[0])
			if err != nil {
				return err
			}
			slot, err := strconv.Atoi(args[1])
			if err != nil || slot < 0 || slot >= savefile.SlotCount {
				return fmt.Errorf("invalid slot %q: use 0, 1, 2 or 3 for top-left, top-right, bottom-left or bottom-right", args[1])
			}

			records, err := a.readRecords(args[2])
			if err != nil {
				return err
			}
			rec, ok := findRecord(batch.Dedupe(records), level.ID, slot)
			if !ok {
				return fmt.Errorf("%w %d for level %s", ErrNoSolution, slot, level.Name)
			}

			sol, err := rec.Decode()
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.Line, err)
			}
			res, err := organism.NewSimulator(a.logger).Run(level, sol)
			if err != nil {
				return err
			}

			if asJSON {
				err = report.WriteSimulationJSON(a.stdout, res, slot, includeSolution)
			} else {
				err = report.NewPrinter(a.stdout).Simulation(res, slot)
			}
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Use JSON output mode")
	cmd.Flags().BoolVar(&includeSolution, "include-solution", false, "Include the solution save string in JSON output")
	return cmd
}

func findRecord(records []savefile.Record, levelID, slot int) (savefile.Record, bool) {
	for _, r := range records {
		if r.Err == nil && r.LevelID == levelID && r.Slot == slot {
			return r, true
		}
	}
	return savefile.Record{}, false
}

func (a *app) levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := report.NewPrinter(a.stdout).Levels(a.levels); err != nil {
				return err
			}
			return nil
		},
	}
}
