package main

import (
	"context"
	"fmt"
	"math/cmplx"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/icosim/internal/anneal"
	"github.com/san-kum/icosim/internal/config"
	"github.com/san-kum/icosim/internal/drive"
	"github.com/san-kum/icosim/internal/export"
	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/mbots"
	"github.com/san-kum/icosim/internal/metrics"
	"github.com/san-kum/icosim/internal/qubo"
	"github.com/san-kum/icosim/internal/sim"
	"github.com/san-kum/icosim/internal/storage"
	"github.com/san-kum/icosim/internal/topology"
	"github.com/san-kum/icosim/internal/unified"
	"github.com/san-kum/icosim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	geoWeight  float64
	sweeps     int
	seed       int64
	outFile    string
	svgFile    string
	plotNodes  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "icosim",
		Short: "33-universe icosahedral field simulator and Hamiltonian compiler",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".icosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	topoCmd := &cobra.Command{
		Use:   "topology",
		Short: "show the 33-node layout",
		RunE:  showTopology,
	}
	topoCmd.Flags().StringVar(&svgFile, "svg", "", "write layout as SVG to file")

	runCmd := &cobra.Command{
		Use:   "run [label]",
		Short: "run a field evolution",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().IntVar(&steps, "steps", 0, "step count override")
	runCmd.Flags().Float64Var(&geoWeight, "geo-weight", 0, "neighbor coupling override")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")

	observeCmd := &cobra.Command{
		Use:   "observe",
		Short: "run and report non-destructive observations of the final snapshot",
		RunE:  observeRun,
	}
	observeCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	observeCmd.Flags().IntVar(&steps, "steps", 0, "step count override")

	compileCmd := &cobra.Command{
		Use:   "compile [label]",
		Short: "compile the configured problem into a QUBO model",
		Args:  cobra.ExactArgs(1),
		RunE:  compileModel,
	}

	solveCmd := &cobra.Command{
		Use:   "solve [model_id]",
		Short: "anneal a compiled model (compiles from config when no id given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveModel,
	}
	solveCmd.Flags().IntVar(&sweeps, "sweeps", anneal.DefaultSweeps, "annealing sweeps")
	solveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot node magnitudes of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotNodes, "nodes", "1,21,33", "comma-separated node ids")

	exportCmd := &cobra.Command{
		Use:   "export-json [label]",
		Short: "run and export the full trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default label.json)")
	exportCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	exportCmd.Flags().IntVar(&steps, "steps", 0, "step count override")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s dt=%g steps=%d geo=%g exclusion=%g/K=%d drive=%s\n",
					name, p.Run.Dt, p.Run.Steps, p.Run.GeoWeight,
					p.Problem.ExclusionWeight, p.Problem.ExclusionTarget, p.Run.Drive.Kind)
			}
			return nil
		},
	}

	rootCmd.AddCommand(topoCmd, runCmd, liveCmd, observeCmd, compileCmd,
		solveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults < preset < config file < flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dt > 0 {
		cfg.Run.Dt = dt
	}
	if steps > 0 {
		cfg.Run.Steps = steps
	}
	if geoWeight > 0 {
		cfg.Run.GeoWeight = geoWeight
	}
	return cfg, cfg.Validate()
}

// buildRun assembles the engine, coupling params and initial snapshot
// from a resolved config.
func buildRun(cfg *config.Config) (*topology.Topology, *unified.Engine, unified.Params, *field.State, error) {
	topo, err := topology.Build()
	if err != nil {
		return nil, nil, unified.Params{}, nil, err
	}

	params := unified.Params{
		GeoWeight: cfg.Run.GeoWeight,
		Substeps:  cfg.Run.Substeps,
		Energy:    drivePathway(cfg.Run.Drive),
	}

	x0 := field.New(topo.NumNodes())
	for node, amp := range cfg.Run.Excite {
		x0.Set(node, complex(amp, 0))
	}

	return topo, unified.New(topo), params, x0, nil
}

func drivePathway(d config.DriveConfig) unified.Pathway {
	switch d.Kind {
	case "constant":
		return drive.Constant(d.Level)
	case "sinusoid":
		return drive.Sinusoid(d.Level, d.Freq, 0)
	case "pulse":
		return drive.Pulse(d.Level, d.From, d.To)
	}
	return nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func showTopology(cmd *cobra.Command, args []string) error {
	topo, err := topology.Build()
	if err != nil {
		return err
	}
	fmt.Print(viz.TopologySummary(topo))

	if svgFile != "" {
		f, err := os.Create(svgFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.TopologySVG(f, topo, nil, 600); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topo, engine, params, x0, err := buildRun(cfg)
	if err != nil {
		return err
	}

	s := sim.New(engine, params)
	s.AddMetric(metrics.NewFieldEnergy())
	s.AddMetric(metrics.NewShadowCoherence())
	s.AddMetric(metrics.NewZoneBalance(topo))

	ctx, cancel := interruptContext()
	defer cancel()

	result, err := s.Run(ctx, x0, sim.Config{
		Dt:            cfg.Run.Dt,
		Steps:         cfg.Run.Steps,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(args[0], cfg.Run.Dt, result)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps, %d node errors\n", runID, result.StepsTaken, len(result.Errors))
	for name, v := range result.Metrics {
		fmt.Printf("  %-18s %g\n", name, v)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topo, engine, params, x0, err := buildRun(cfg)
	if err != nil {
		return err
	}

	model := viz.NewLive(topo, engine, params, x0, cfg.Run.Dt)
	_, err = tea.NewProgram(model).Run()
	return err
}

func observeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topo, engine, params, x0, err := buildRun(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	s := sim.New(engine, params)
	result, err := s.Run(ctx, x0, sim.Config{
		Dt:            cfg.Run.Dt,
		Steps:         cfg.Run.Steps,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	final := result.States[len(result.States)-1]
	tracker := mbots.New(cfg.Run.Tolerance)
	observations, violations := tracker.ObserveAll(final)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "node\tzone\t|amp|\tphase\t|shadow|")
	for _, obs := range observations {
		node, err := topo.Node(obs.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%.6f\t%.4f\t%.6f\n",
			obs.Node, node.Zone, cmplx.Abs(obs.Amp), cmplx.Phase(obs.Amp), cmplx.Abs(obs.Shadow))
	}
	w.Flush()

	fmt.Printf("\nt=%.4f, %d consistency violations\n", final.T, len(violations))
	for _, v := range violations {
		fmt.Println("  " + v.Error())
	}
	return nil
}

func compileModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topo, err := topology.Build()
	if err != nil {
		return err
	}

	m, err := qubo.Compile(topo, problemParams(cfg.Problem))
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.SaveModel(args[0], m)
	if err != nil {
		return err
	}

	fmt.Printf("model %s: %d variables, offset %g\n", id, m.N, m.Offset)
	fmt.Printf("  nonzero pairwise terms: %d\n", countPairs(m))
	return nil
}

func solveModel(cmd *cobra.Command, args []string) error {
	var m *qubo.Model
	if len(args) == 1 {
		store := storage.New(dataDir)
		loaded, err := store.LoadModel(args[0])
		if err != nil {
			return err
		}
		m = loaded
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		topo, err := topology.Build()
		if err != nil {
			return err
		}
		m, err = qubo.Compile(topo, problemParams(cfg.Problem))
		if err != nil {
			return err
		}
	}

	ctx, cancel := interruptContext()
	defer cancel()

	sol, err := anneal.Solve(ctx, m, anneal.Options{Sweeps: sweeps, Seed: seed})
	if err != nil {
		return err
	}

	topo, err := topology.Build()
	if err != nil {
		return err
	}

	fmt.Printf("energy %g after %d sweeps\n", sol.Energy, sol.Sweeps)
	fmt.Print("active: ")
	for i, x := range sol.Assignment {
		if x == 0 {
			continue
		}
		node, err := topo.Node(i + 1)
		if err != nil {
			return err
		}
		fmt.Printf("%d(%s) ", node.ID, node.Zone)
	}
	fmt.Println()
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tlabel\tsteps\tdt\terrors\ttimestamp")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%d\t%s\n",
			r.ID, r.Label, r.Steps, r.Dt, r.NumErrors, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	_, mags, err := store.LoadMagnitudes(args[0])
	if err != nil {
		return err
	}

	topo, err := topology.Build()
	if err != nil {
		return err
	}

	opt := viz.DefaultPlotOptions()
	opt.Nodes, err = parseNodeList(plotNodes)
	if err != nil {
		return err
	}

	out, err := viz.Magnitudes(topo, mags, opt)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topo, engine, params, x0, err := buildRun(cfg)
	if err != nil {
		return err
	}

	s := sim.New(engine, params)
	s.AddMetric(metrics.NewFieldEnergy())
	s.AddMetric(metrics.NewZoneBalance(topo))

	ctx, cancel := interruptContext()
	defer cancel()

	result, err := s.Run(ctx, x0, sim.Config{
		Dt:            cfg.Run.Dt,
		Steps:         cfg.Run.Steps,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".json"
	}
	if err := export.ResultFile(path, args[0], cfg.Run.Dt, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d snapshots)\n", path, len(result.States))
	return nil
}

func problemParams(p config.ProblemConfig) qubo.Params {
	return qubo.Params{
		Geometric: p.Geometric,
		Exclusion: qubo.Exclusion{
			Weight: p.ExclusionWeight,
			Target: p.ExclusionTarget,
		},
		Alpha:      p.Alpha,
		Beta:       p.Beta,
		BiasWeight: p.BiasWeight,
		BiasVector: p.BiasVector,
	}
}

func parseNodeList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad node id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func countPairs(m *qubo.Model) int {
	n := 0
	for i := 0; i < m.N; i++ {
		for j := i + 1; j < m.N; j++ {
			if m.Quad[i][j] != 0 {
				n++
			}
		}
	}
	return n
}
