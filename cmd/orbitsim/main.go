package main

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/CDE90/physics-simulation/internal/analysis"
	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/config"
	"github.com/CDE90/physics-simulation/internal/export"
	"github.com/CDE90/physics-simulation/internal/scenario"
	"github.com/CDE90/physics-simulation/internal/sim"
	"github.com/CDE90/physics-simulation/internal/storage"
	"github.com/CDE90/physics-simulation/internal/telemetry"
	"github.com/CDE90/physics-simulation/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	mode       string
	fps        int
	steps      int
	duration   float64
	workers    int
	snapshot   bool
	watch      bool
	addr       string
	outPath    string
	bodyIndex  int
)

// defaultPresets pick the canonical setup when a scenario is run without an
// explicit preset or config file.
var defaultPresets = map[string]string{
	"orbit":     "circular",
	"threebody": "classic",
	"spring":    "bounce",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "polar-coordinate orbital physics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().BoolVar(&watch, "watch", false, "reload when the config file changes")

	serveCmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "stream frames to websocket subscribers",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital period and radius statistics from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index to analyze")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output path (default run_id.json)")

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run's trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outPath, "out", "", "output path (default run_id.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				return fmt.Errorf("no presets for scenario %q (known: %v)", args[0], scenario.Names())
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "compare verlet and basic integration on the same scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  compareModes,
	}
	addScenarioFlags(compareCmd)

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, svgCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().StringVar(&mode, "mode", "", "integration mode: verlet or basic")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultStepsPerFrame, "physics sub-steps per frame")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel body updates per sub-step")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "double-buffer peer positions each sub-step")
}

// resolveConfig applies preset < config file < explicit flags.
func resolveConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	var cfg *config.Config

	name := preset
	if name == "" && configFile == "" {
		name = defaultPresets[scenarioName]
	}
	if name != "" {
		cfg = config.GetPreset(scenarioName, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for scenario %q (available: %v)",
				name, scenarioName, config.ListPresets(scenarioName))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cfg == nil {
		return nil, fmt.Errorf("unknown scenario %q (known: %v)", scenarioName, scenario.Names())
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("steps") {
		cfg.StepsPerFrame = steps
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.Snapshot = snapshot
	}

	return cfg, cfg.Validate()
}

// buildSimulator assembles a driver for the config, with recording on or off.
func buildSimulator(cfg *config.Config, record bool) (*sim.Simulator, *scenario.Scenario, error) {
	sc, err := scenario.Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := sim.New(sim.Config{
		FPS:           cfg.FPS,
		StepsPerFrame: cfg.StepsPerFrame,
		Duration:      cfg.Duration,
		Workers:       cfg.Workers,
		Record:        record,
	})
	if err != nil {
		return nil, nil, err
	}

	sc.Install(s, cfg)
	return s, sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, sc, err := buildSimulator(cfg, true)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s, %d bodies)...\n", sc.Name, cfg.Mode, len(sc.Bodies))
	start := time.Now()

	result, err := s.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(sc.Name, cfg.Mode, cfg.FPS, cfg.StepsPerFrame, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("sub-steps: %d\n", result.StepsTaken)
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		printMetrics(result.Metrics)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, sc, err := buildSimulator(cfg, false)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(s, sc.Name, cfg.FPS))

	if watch && configFile != "" {
		w, err := config.Watch(configFile)
		if err != nil {
			return err
		}
		defer w.Close()

		go func() {
			for newCfg := range w.Configs {
				ns, nsc, err := buildSimulator(newCfg, false)
				if err != nil {
					continue
				}
				p.Send(viz.ReloadMsg{Sim: ns, Name: nsc.Name, FPS: newCfg.FPS})
			}
		}()
	}

	_, err = p.Run()
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, sc, err := buildSimulator(cfg, false)
	if err != nil {
		return err
	}

	hub := telemetry.NewHub()
	defer hub.Close()
	s.AddObserver(hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	server := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		fmt.Printf("streaming %s on ws://%s/ws\n", sc.Name, addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
			stop()
		}
	}()

	// Pace frames against the wall clock so subscribers see real-time motion.
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nstopped")
			return nil
		case <-ticker.C:
			s.StepFrame()
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSCENARIO\tMODE\tBODIES\tDURATION\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\t%s\n",
			r.ID, r.Scenario, r.Mode, r.NumBodies, r.Duration, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}
	if bodyIndex < 0 || bodyIndex >= len(frames[0].Bodies) {
		return fmt.Errorf("body index %d out of range (run has %d bodies)", bodyIndex, len(frames[0].Bodies))
	}

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	speeds := make([]float64, len(frames))
	for i, f := range frames {
		b := f.Bodies[bodyIndex]
		xs[i] = b.X
		ys[i] = b.Y
		speeds[i] = math.Hypot(b.VX, b.VY)
	}

	fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d x", bodyIndex))))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d y", bodyIndex))))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speeds, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d speed", bodyIndex))))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s has too few frames to analyze", args[0])
	}
	if bodyIndex < 0 || bodyIndex >= len(frames[0].Bodies) {
		return fmt.Errorf("body index %d out of range (run has %d bodies)", bodyIndex, len(frames[0].Bodies))
	}

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, f := range frames {
		xs[i] = f.Bodies[bodyIndex].X
		ys[i] = f.Bodies[bodyIndex].Y
	}
	sampleDt := frames[1].Time - frames[0].Time

	cx := analysis.Stats(xs).Mean
	cy := analysis.Stats(ys).Mean
	radii := analysis.Radii(xs, ys, cx, cy)
	rs := analysis.Stats(radii)

	fmt.Printf("body %d over %d frames (%.3fs sampled)\n", bodyIndex, len(frames), sampleDt*float64(len(frames)))
	fmt.Printf("  mean center: (%.2f, %.2f)\n", cx, cy)
	fmt.Printf("  radius: min %.2f  max %.2f  mean %.2f\n", rs.Min, rs.Max, rs.Mean)
	if rs.Mean > 0 {
		fmt.Printf("  eccentricity proxy: %.4f\n", (rs.Max-rs.Min)/(rs.Max+rs.Min))
	}

	if period := analysis.DominantPeriod(xs, sampleDt); period > 0 {
		fmt.Printf("  dominant period (x): %.3fs\n", period)
	} else {
		fmt.Println("  dominant period (x): none detected")
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	out := outPath
	if out == "" {
		out = args[0] + ".json"
	}
	if err := st.ExportJSON(args[0], out); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], out)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg, err := export.TrajectoriesSVG(frames, 800, 600)
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("rendered %s to %s\n", args[0], out)
	return nil
}

func compareModes(cmd *cobra.Command, args []string) error {
	results := make(map[string]map[string]float64)

	for _, m := range []body.Mode{body.ModeVerlet, body.ModeBasic} {
		cfg, err := resolveConfig(cmd, args[0])
		if err != nil {
			return err
		}
		cfg.Mode = m.String()

		s, _, err := buildSimulator(cfg, false)
		if err != nil {
			return err
		}

		result, err := s.Run(context.Background())
		if err != nil {
			return err
		}
		results[m.String()] = result.Metrics
	}

	names := make([]string, 0)
	for name := range results["verlet"] {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVERLET\tBASIC")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", name, results["verlet"][name], results["basic"][name])
	}
	return w.Flush()
}
