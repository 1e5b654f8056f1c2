package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/picograd-ml/picograd/internal/config"
	"github.com/picograd-ml/picograd/internal/scenario"
	"github.com/picograd-ml/picograd/internal/ui"
)

var errScenarioFailed = errors.New("scenario checks failed")

// app carries state shared by every command of one invocation.
type app struct {
	configPath string
	precision  string
	color      string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "picograd",
		Short: "Scalar reverse-mode automatic differentiation",
		Long: `picograd builds computation graphs over scalars and differentiates them.
This CLI runs the reference scenarios and prints their graphs.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&a.precision, "precision", "", "element type: float32 or float64 (overrides config)")
	flags.StringVar(&a.color, "color", "", "color output: auto, always or never (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "trace every forward and backward step")

	root.AddCommand(a.demoCmd(), a.graphCmd(), versionCmd())
	return root
}

// setup loads config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.precision != "" {
		cfg.Precision = a.precision
	}
	if a.color != "" {
		cfg.Color = a.color
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// run executes one scenario at the configured precision.
func (a *app) run(name string, graph bool) (scenario.Result, error) {
	opts := scenario.Options{Graph: graph, Logger: a.logger}
	if a.cfg.Precision == config.Float32 {
		return scenario.Run[float32](name, opts)
	}
	return scenario.Run[float64](name, opts)
}

func (a *app) printer(cmd *cobra.Command) *ui.Printer {
	out := cmd.OutOrStdout()
	return ui.NewPrinter(out, ui.UseColor(a.cfg.Color, out))
}

func (a *app) demoCmd() *cobra.Command {
	var showGraph bool

	cmd := &cobra.Command{
		Use:   "demo [scenario...]",
		Short: "Run reference scenarios and check their values and gradients",
		Long: fmt.Sprintf(`Run reference scenarios and check their values and gradients.

Without arguments the scenarios from the config are run (default: all).
Available: %v`, scenario.Names()),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.cfg.ScenarioNames()
			}
			p := a.printer(cmd)

			failed := 0
			for _, name := range names {
				res, err := a.run(name, showGraph)
				if err != nil {
					return err
				}
				desc, _ := scenario.Describe(name)

				p.Title("%s (%s)", res.Name, a.cfg.Precision)
				p.Muted("%s, %d nodes", desc, res.Nodes)
				for _, c := range res.Checks {
					p.Status(c.Pass(a.cfg.Tolerance), "%s = %v (want %v)", c.Name, c.Got, c.Want)
				}
				if showGraph {
					p.Block(res.Graph)
				}
				if !res.Passed(a.cfg.Tolerance) {
					failed++
				}
				a.logger.Info("scenario finished",
					slog.String("scenario", name),
					slog.Bool("passed", res.Passed(a.cfg.Tolerance)),
				)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errScenarioFailed, failed, len(names))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showGraph, "graph", "g", false, "print the graph of each final value")
	return cmd
}

func (a *app) graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <scenario>",
		Short: "Print the computation graph of a scenario after backward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(args[0], true)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), res.Graph)
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "picograd %s\n", version)
		},
	}
}
