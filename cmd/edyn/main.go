package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/edyn/internal/config"
	"github.com/san-kum/edyn/internal/engine"
	"github.com/san-kum/edyn/internal/export"
	"github.com/san-kum/edyn/internal/integrators"
	"github.com/san-kum/edyn/internal/metrics"
	"github.com/san-kum/edyn/internal/physics"
	"github.com/san-kum/edyn/internal/storage"
	"github.com/san-kum/edyn/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	ex, ey, bz float64
	x0, y0     float64
	v0x, v0y   float64
	workers    int
	integrator string
	record     bool
	configFile string
	preset     string
	frameTime  float64
	relTol     float64
	absTol     float64
	particleIx int
	axis       string
	outPath    string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "edyn",
		Short: "charged-particle dynamics lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".edyn", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&record, "record", true, "record full trajectories")
	runCmd.Flags().IntVar(&workers, "workers", 0, "per-step worker fan-out (0 = sequential)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view with field tuning",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().Float64Var(&frameTime, "frame-dt", config.DefaultFrameTime, "simulated seconds per rendered frame")

	verifyCmd := &cobra.Command{
		Use:   "verify [run_id]",
		Short: "energy-conservation check on a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyRun,
	}
	verifyCmd.Flags().Float64Var(&relTol, "rel", metrics.DefaultRelTol, "relative tolerance")
	verifyCmd.Flags().Float64Var(&absTol, "abs", metrics.DefaultAbsTol, "absolute tolerance (J)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a state component over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particleIx, "particle", 0, "particle index")
	plotCmd.Flags().StringVar(&axis, "axis", "x", "component: x, y, vx, vy, speed")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "draw the x/y trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&particleIx, "particle", 0, "particle index")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "run.json", "output path")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "run.svg", "output path")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-12s dt=%g duration=%g E=(%g,%g) Bz=%g particles=%d\n",
					name, cfg.Dt, cfg.Duration, cfg.Fields.Ex, cfg.Fields.Ey, cfg.Fields.Bz, len(cfg.Particles))
			}
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare Euler and RK4 energy drift on a cyclotron orbit",
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	compareCmd.Flags().Float64Var(&duration, "time", 0, "duration (s), default one cyclotron period")

	rootCmd.AddCommand(runCmd, liveCmd, verifyCmd, plotCmd, phaseCmd, listCmd, exportJSONCmd, exportSVGCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Float64Var(&ex, "ex", 0, "electric field Ex (V/m)")
	cmd.Flags().Float64Var(&ey, "ey", 0, "electric field Ey (V/m)")
	cmd.Flags().Float64Var(&bz, "bz", config.DefaultBz, "magnetic field Bz (T)")
	cmd.Flags().Float64Var(&x0, "x", 0, "initial x (m)")
	cmd.Flags().Float64Var(&y0, "y", 0, "initial y (m)")
	cmd.Flags().Float64Var(&v0x, "v0x", config.DefaultV0X, "initial vx (m/s)")
	cmd.Flags().Float64Var(&v0y, "v0y", 0, "initial vy (m/s)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator: rk4, euler")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// buildScenario resolves preset, config file, and flags (flags win when set
// explicitly) into a run configuration.
func buildScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cp := *p
		cfg = &cp
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("ex") {
		cfg.Fields.Ex = ex
	}
	if cmd.Flags().Changed("ey") {
		cfg.Fields.Ey = ey
	}
	if cmd.Flags().Changed("bz") {
		cfg.Fields.Bz = bz
	}
	kinematic := cmd.Flags().Changed("x") || cmd.Flags().Changed("y") ||
		cmd.Flags().Changed("v0x") || cmd.Flags().Changed("v0y")
	if kinematic || len(cfg.Particles) == 0 {
		cfg.Particles = []config.ParticleConfig{{X: x0, Y: y0, VX: v0x, VY: v0y}}
	}
	return cfg, nil
}

func stepperByName(name string) (physics.Stepper, error) {
	switch name {
	case "", "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("record") {
		cfg.RecordTrajectory = record
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	stepper, err := stepperByName(cfg.Integrator)
	if err != nil {
		return err
	}

	eField, bField := cfg.BuildFields()
	particles := cfg.BuildParticles()
	eng := engine.NewWithStepper(eField, bField, stepper)

	runCfg := engine.Config{
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
		RecordTrajectory: cfg.RecordTrajectory,
		Workers:          cfg.Workers,
	}

	fmt.Printf("running %d particle(s) for %d steps...\n", len(particles), runCfg.Steps())
	start := time.Now()
	result, err := eng.Run(particles, runCfg, 0)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Ex:         cfg.Fields.Ex,
		Ey:         cfg.Fields.Ey,
		Bz:         cfg.Fields.Bz,
	}
	for _, p := range particles {
		meta.Masses = append(meta.Masses, p.Mass)
		meta.Charges = append(meta.Charges, p.Charge)
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	for i, s := range result.FinalStates {
		fmt.Printf("particle %d: pos=(%.4e, %.4e) m  vel=(%.4e, %.4e) m/s\n",
			i, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y)
	}

	// Magnetic-only runs get the conservation check for free.
	if cfg.RecordTrajectory && cfg.Fields.Ex == 0 && cfg.Fields.Ey == 0 {
		check := metrics.VerifyMagneticEnergyConservation(particles, result.Trajectories, metrics.DefaultRelTol, metrics.DefaultAbsTol)
		fmt.Printf("energy conservation: passed=%v\n", check.Passed)
		for i := range check.MaxRelDeviation {
			fmt.Printf("  particle %d: max rel dev %.3e, max abs dev %.3e J\n",
				i, check.MaxRelDeviation[i], check.MaxAbsDeviation[i])
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	eField, bField := cfg.BuildFields()
	particles := cfg.BuildParticles()
	return viz.Run(eField, bField, particles, cfg.Dt, frameTime)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	particles := make([]*physics.Particle, len(meta.Masses))
	for i := range particles {
		particles[i] = &physics.Particle{Mass: meta.Masses[i], Charge: meta.Charges[i]}
	}

	if meta.Ex != 0 || meta.Ey != 0 {
		fmt.Println("warning: run has a non-zero electric field; kinetic energy is not expected to be conserved")
	}

	check := metrics.VerifyMagneticEnergyConservation(particles, trajectories, relTol, absTol)
	for i := range check.MaxRelDeviation {
		fmt.Printf("particle %d: max rel dev %.3e, max abs dev %.3e J\n",
			i, check.MaxRelDeviation[i], check.MaxAbsDeviation[i])
	}
	if check.Passed {
		fmt.Println("PASSED")
		return nil
	}
	fmt.Println("FAILED")
	return fmt.Errorf("energy conservation check failed for run %s", args[0])
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	if particleIx < 0 || particleIx >= len(trajectories) {
		return fmt.Errorf("particle index %d out of range (run has %d)", particleIx, len(trajectories))
	}

	traj := trajectories[particleIx]
	series := make([]float64, 0, len(traj))
	for _, s := range traj {
		switch axis {
		case "x":
			series = append(series, s.Position.X)
		case "y":
			series = append(series, s.Position.Y)
		case "vx":
			series = append(series, s.Velocity.X)
		case "vy":
			series = append(series, s.Velocity.Y)
		case "speed":
			series = append(series, s.Velocity.Magnitude())
		default:
			return fmt.Errorf("unknown axis: %s", axis)
		}
	}
	series = downsample(series, 200)

	fmt.Println(asciigraph.Plot(series, asciigraph.Height(15), asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s, particle %d", axis, particleIx))))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	if particleIx < 0 || particleIx >= len(trajectories) {
		return fmt.Errorf("particle index %d out of range (run has %d)", particleIx, len(trajectories))
	}

	traj := trajectories[particleIx]
	if len(traj) == 0 {
		fmt.Println("(empty trajectory)")
		return nil
	}

	minX, maxX := traj[0].Position.X, traj[0].Position.X
	minY, maxY := traj[0].Position.Y, traj[0].Position.Y
	for _, s := range traj {
		minX = min(minX, s.Position.X)
		maxX = max(maxX, s.Position.X)
		minY = min(minY, s.Position.Y)
		maxY = max(maxY, s.Position.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := viz.NewCanvas(70, 20)
	cw, ch := 70*2, 20*4
	px := func(s physics.State) (int, int) {
		x := int((s.Position.X - minX) / rangeX * float64(cw-1))
		y := int(float64(ch-1) - (s.Position.Y-minY)/rangeY*float64(ch-1))
		return x, y
	}
	for k := 1; k < len(traj); k++ {
		x1, y1 := px(traj[k-1])
		x2, y2 := px(traj[k])
		canvas.DrawLine(x1, y1, x2, y2)
	}
	fmt.Print(canvas.String())
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tDT\tDURATION\tINTEGRATOR\tPARTICLES\tBZ")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%d\t%g\n",
			r.ID, r.Timestamp.Format(time.RFC3339), r.Dt, r.Duration, r.Integrator, len(r.Masses), r.Bz)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.ExportJSON(args[0], outPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(trajectories, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has no trajectory data", args[0])
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	period := physics.CyclotronPeriod(physics.ElectronMass, physics.ElectronCharge, config.DefaultBz)
	if duration == 0 {
		duration = period
	}

	eField := &physics.UniformElectricField{}
	bField := &physics.UniformMagneticField{Field: physics.Vector3{Z: config.DefaultBz}}
	runCfg := engine.Config{Dt: dt, Duration: duration, RecordTrajectory: true}

	fmt.Printf("cyclotron orbit, dt=%g s, duration=%g s (%.2f periods)\n\n", dt, duration, duration/period)
	for _, name := range []string{"euler", "rk4"} {
		stepper, err := stepperByName(name)
		if err != nil {
			return err
		}
		particle := physics.NewElectron(physics.Zero2(), physics.Vector2{X: config.DefaultV0X})
		eng := engine.NewWithStepper(eField, bField, stepper)
		result, err := eng.Run([]*physics.Particle{particle}, runCfg, 0)
		if err != nil {
			return err
		}
		check := metrics.VerifyMagneticEnergyConservation([]*physics.Particle{particle}, result.Trajectories, metrics.DefaultRelTol, metrics.DefaultAbsTol)
		fmt.Printf("%-6s max rel energy dev %.3e (passed=%v)\n", name, check.MaxRelDeviation[0], check.Passed)
	}
	return nil
}

func downsample(series []float64, limit int) []float64 {
	if len(series) <= limit {
		return series
	}
	out := make([]float64, 0, limit)
	stride := float64(len(series)) / float64(limit)
	for i := 0; i < limit; i++ {
		out = append(out, series[int(float64(i)*stride)])
	}
	return out
}
