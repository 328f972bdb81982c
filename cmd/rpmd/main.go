package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rpmd/internal/config"
	"github.com/san-kum/rpmd/internal/experiment"
	"github.com/san-kum/rpmd/internal/storage"
	"github.com/san-kum/rpmd/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt          float64
	beta        float64
	beads       int
	steps       int
	sampleEvery int
	mode        string
	xi          float64

	stepsPerFrame int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rpmd",
		Short: "ring-polymer molecular dynamics lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rpmd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a trajectory",
		RunE:  runTrajectory,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a trajectory with a live terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg, stepsPerFrame)
		},
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 5, "integration steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the reaction-coordinate trace of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
	cmd.Flags().IntVar(&beads, "beads", config.DefaultBeads, "number of beads")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "sampling interval in steps")
	cmd.Flags().StringVar(&mode, "mode", "", "reaction coordinate mode")
	cmd.Flags().Float64Var(&xi, "xi", 0, "recrossing-factor interpolation parameter")
}

// buildConfig layers preset, config file and explicit flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
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
	if cmd.Flags().Changed("beta") {
		cfg.Beta = beta
	}
	if cmd.Flags().Changed("beads") {
		cfg.Beads = beads
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("xi") {
		cfg.Xi = xi
	}
	return cfg, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s, %d beads)...\n", cfg.Potential.Name, cfg.Mode, cfg.Beads)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("xi window: mean %.6f  variance %.6e  (%d samples)\n",
		exp.Window().Value(), exp.Window().Variance(), exp.Window().Count())
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if len(result.Xi) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Xi,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("xi(t)"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOTENTIAL\tMODE\tBEADS\tBETA\tSTEPS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\t%s\n",
			r.ID, r.Potential, r.Mode, r.Beads, r.Beta, r.Steps,
			r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", args[0])
	}
	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("xi(t) for %s", args[0])),
	))
	return nil
}
