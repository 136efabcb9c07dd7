package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/eggdive/internal/config"
	"github.com/san-kum/eggdive/internal/dive"
	"github.com/san-kum/eggdive/internal/export"
	"github.com/san-kum/eggdive/internal/integrators"
	"github.com/san-kum/eggdive/internal/metrics"
	"github.com/san-kum/eggdive/internal/optim"
	"github.com/san-kum/eggdive/internal/physics"
	"github.com/san-kum/eggdive/internal/storage"
	"github.com/san-kum/eggdive/internal/viz"
)

var (
	dataDir  string
	logLevel string
	log      = logrus.New()

	plotWidth  int
	plotHeight int
	frameSteps int

	maxIter     int
	tolerance   float64
	parallel    int
	resultsFile string
	plotBest    bool

	svgOut string
	svgEgg bool

	gridPoints  int
	heightRange []float64
	widthRange  []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "eggdive",
		Short:         "grooved egg dive simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eggdive", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	depthCmd := designCommand("depth", "score a single design", cobra.NoArgs, depthDesign)

	runCmd := designCommand("run", "simulate a design and save the trajectory", cobra.NoArgs, runDesign)
	runCmd.Flags().IntVar(&plotWidth, "width-chars", 70, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height-chars", 10, "plot height")

	compareCmd := designCommand("compare", "compare integrators on one design", cobra.NoArgs, compareIntegrators)

	liveCmd := designCommand("live", "simulate with live visualization", cobra.NoArgs, runLive)
	liveCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 10, "integrator steps per frame")

	gridCmd := designCommand("grid", "grid search over height and width", cobra.NoArgs, gridSearch)
	gridCmd.Flags().IntVar(&gridPoints, "points", 8, "points per axis")
	gridCmd.Flags().Float64SliceVar(&heightRange, "height-range", []float64{0.02, 0.2}, "height lo,hi")
	gridCmd.Flags().Float64SliceVar(&widthRange, "width-range", []float64{0.02, 0.2}, "width lo,hi")

	optimizeCmd := designCommand("optimize [guesses.csv]", "multi-start Nelder-Mead from initial guesses", cobra.ExactArgs(1), optimizeDesigns)
	def := config.DefaultConfig().Optimizer
	optimizeCmd.Flags().IntVar(&maxIter, "max-iter", def.MaxIter, "iterations per start")
	optimizeCmd.Flags().Float64Var(&tolerance, "tol", def.Tolerance, "convergence tolerance")
	optimizeCmd.Flags().IntVar(&parallel, "parallel", def.Parallel, "concurrent searches")
	optimizeCmd.Flags().StringVar(&resultsFile, "out", def.ResultsFile, "results file (appended)")
	optimizeCmd.Flags().BoolVar(&plotBest, "plot", false, "plot the best dive")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width-chars", 70, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height-chars", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&svgEgg, "egg", false, "draw the egg at its deepest point instead of y(t)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(depthCmd, runCmd, compareCmd, liveCmd, gridCmd, optimizeCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newEvaluator(cfg *config.Config) (*dive.Evaluator, error) {
	st, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return &dive.Evaluator{Log: log, Stepper: st}, nil
}

func depthDesign(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	p, env := cfg.Params(), cfg.Environment()
	depth, reason := ev.Evaluate(p, env)
	fmt.Println(viz.Report(d.name(), p, env, depth, reason))
	return nil
}

func runDesign(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	st, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}
	p, env := cfg.Params(), cfg.Environment()

	tr, simErr := integrators.IntegrateWith(st, p.Shape(), env.Fluid, env.Step)
	if len(tr) == 0 {
		return simErr
	}

	meta := storage.NewRunMetadata(d.name(), cfg.Integrator, p, env)
	meta.Depth = tr.MaxY() - p.Height
	if simErr != nil {
		meta.Error = simErr.Error()
		log.WithError(simErr).Warn("simulation stopped early")
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(meta, tr)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"run": runID, "samples": len(tr)}).Info("run saved")

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d\n", len(tr))
	fmt.Printf("max y: %.6f m\n", tr.MaxY())
	ms := metrics.Standard(p.Height)
	metrics.Observe(tr, ms...)
	for _, m := range ms {
		fmt.Printf("%s: %.6f\n", m.Name(), m.Value())
	}
	if err := dive.CheckBounds(p, env); err != nil {
		fmt.Printf("note: design is out of bounds and would score 0 (%v)\n", err)
	}
	fmt.Println()
	fmt.Print(viz.PlotTrajectory(tr, plotWidth, plotHeight))
	return nil
}

func compareIntegrators(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	p, env := cfg.Params(), cfg.Environment()
	names := make([]string, 0, len(integrators.Registry))
	for name := range integrators.Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tSAMPLES\tDEPTH\tPEAK V\tSUBMERGED\tERROR")
	for _, name := range names {
		st, _ := integrators.Get(name)
		tr, err := integrators.IntegrateWith(st, p.Shape(), env.Fluid, env.Step)
		msg := "-"
		if err != nil {
			msg = err.Error()
		}
		if len(tr) == 0 {
			fmt.Fprintf(w, "%s\t0\t-\t-\t-\t%s\n", name, msg)
			continue
		}
		ms := metrics.Standard(p.Height)
		metrics.Observe(tr, ms...)
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\t%.3fs\t%s\n", name, len(tr), ms[0].Value(), ms[1].Value(), ms[2].Value(), msg)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	st, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}
	env := cfg.Environment()
	if err := env.Step.Validate(); err != nil {
		return err
	}
	body, err := integrators.NewBody(cfg.Params().Shape(), env.Fluid)
	if err != nil {
		return err
	}

	m := viz.NewModel(st, body, env.Step, frameSteps, d.name())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(viz.Model); ok {
		fmt.Printf("t=%.3fs depth=%.6f m\n", fm.Sample().T, fm.Depth())
		if fm.Err() != nil {
			return fm.Err()
		}
	}
	return nil
}

func gridSearch(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	if len(heightRange) != 2 || len(widthRange) != 2 {
		return fmt.Errorf("ranges need exactly two values (lo,hi)")
	}
	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	env := cfg.Environment()

	gs, err := optim.NewGridSearch([]int{0, 1}, [][]float64{
		optim.Linspace(heightRange[0], heightRange[1], gridPoints),
		optim.Linspace(widthRange[0], widthRange[1], gridPoints),
	})
	if err != nil {
		return err
	}

	f := func(x []float64) float64 { return ev.DepthWrapper(x, env) }
	res, err := gs.Search(cmd.Context(), f, cfg.Params().Vector())
	if err != nil {
		return err
	}
	best, err := dive.ParamsFromVector(res.X)
	if err != nil {
		return err
	}

	log.WithField("evals", res.Evals).Info("grid search finished")
	fmt.Println(viz.Report("grid best", best, env, -res.F, nil))
	return nil
}

func optimizeDesigns(cmd *cobra.Command, cfg *config.Config, d *design, args []string) error {
	starts, err := storage.LoadGuesses(args[0])
	if err != nil {
		return err
	}
	if len(starts) == 0 {
		return fmt.Errorf("no guesses in %s", args[0])
	}

	if cmd.Flags().Changed("max-iter") {
		cfg.Optimizer.MaxIter = maxIter
	}
	if cmd.Flags().Changed("tol") {
		cfg.Optimizer.Tolerance = tolerance
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Optimizer.Parallel = parallel
	}
	if cmd.Flags().Changed("out") {
		cfg.Optimizer.ResultsFile = resultsFile
	}

	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	env := cfg.Environment()

	// The search runs in scale-normalized coordinates.
	f := func(x []float64) float64 { return ev.DepthWrapper(dive.Scaled(x), env) }
	nm := optim.NewNelderMead(cfg.Optimizer.MaxIter, cfg.Optimizer.Tolerance)
	results, searchErr := optim.MultiStart(cmd.Context(), *nm, f, starts, cfg.Optimizer.Parallel, log)

	depths := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "START\tHEIGHT\tWIDTH\tANGLE\tN\tDENSITY\tGROOVE\tDEPTH\tITER\tCONVERGED")
	for i, r := range results {
		if r.X == nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\t-\t-\t-\t-\tfalse\n", i)
			continue
		}
		x := dive.Scaled(r.X)
		depths[i] = -r.F
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.0f\t%.1f\t%.5f\t%.6f\t%d\t%v\n",
			i, x[0], x[1], x[2], x[3], x[4], x[5], depths[i], r.Iter, r.Converged)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := storage.AppendResults(cfg.Optimizer.ResultsFile, depths); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": cfg.Optimizer.ResultsFile, "count": len(depths)}).Info("results appended")

	if plotBest {
		if i := optim.Best(results); i >= 0 {
			best, err := dive.ParamsFromVector(dive.Scaled(results[i].X))
			if err != nil {
				return err
			}
			tr, err := integrators.Integrate(best.Shape(), env.Fluid, env.Step)
			if err != nil {
				log.WithError(err).Warn("cannot plot best design")
			} else {
				fmt.Println()
				fmt.Print(viz.PlotTrajectory(tr, 70, 10))
			}
		}
	}
	return searchErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tINTEG\tDEPTH")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.6f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Depth,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) depth %.6f m\n\n", meta.Name, meta.Integrator, meta.Depth)
	fmt.Print(viz.PlotTrajectory(tr, plotWidth, plotHeight))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tr)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	var svg string
	if svgEgg {
		shape := physics.NewShape(meta.Height, meta.Width, meta.GrooveAngle, int(meta.GrooveCount), meta.GrooveDepth, meta.EggDensity)
		c := viz.NewCanvas(40, 24)
		viz.DrawDive(c, shape.Normalized(), tr.MaxY())
		svg = export.CanvasToSVG(c, 4)
	} else {
		svg = export.SeriesToSVG(tr.Times(), tr.Positions(), 800, 400, "#00ff88")
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}

	if svgOut == "" {
		_, err = fmt.Fprintln(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	log.WithField("file", svgOut).Info("svg written")
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEIGHT\tWIDTH\tGROOVES\tDENSITY\tTIME\tVALID")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		valid := dive.CheckBounds(cfg.Params(), cfg.Environment()) == nil
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.0f\t%.0f\t%.2fs\t%v\n",
			name, cfg.Shape.Height, cfg.Shape.Width, cfg.Shape.GrooveCount, cfg.Shape.EggDensity, cfg.Time.Total, valid)
	}
	return w.Flush()
}
