package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roundabout-sim/roundabout-sim/sim"
	"github.com/roundabout-sim/roundabout-sim/sim/chart"
	"github.com/roundabout-sim/roundabout-sim/sim/trajectory"
	"github.com/roundabout-sim/roundabout-sim/ui"
)

var (
	logLevel     string  // Log verbosity level
	scenarioPath string  // Optional YAML scenario file
	lambda       float64 // Arrival rate λ
	mu           float64 // Service rate μ per server
	entry        int     // Entry id (1-4)
	exit         int     // Exit id (1-4)

	// sensitivity
	chartPath   string // Output path for the sensitivity chart (empty = no chart)
	chartFormat string // svg or png
	chartWidth  int
	chartHeight int

	// animate
	cars          int           // Number of cars to animate
	frameInterval time.Duration // Time between animation steps
	carDelay      time.Duration // Stagger between consecutive cars
)

// runParams are the resolved inputs after merging flags, scenario file and
// positional arguments.
type runParams struct {
	input sim.QueueingInput
	cars  int
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "roundabout-sim",
	Short: "M/M/4 queueing simulator for a four-way roundabout",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// resolveParams merges, in increasing priority: flag defaults, scenario
// file, explicitly set flags, positional "λ μ entry exit" arguments.
func resolveParams(cmd *cobra.Command, args []string) (runParams, error) {
	p := runParams{
		input: sim.QueueingInput{ArrivalRate: lambda, ServiceRate: mu, EntryID: entry, ExitID: exit},
		cars:  cars,
	}
	if scenarioPath != "" {
		sc, err := LoadScenario(scenarioPath)
		if err != nil {
			return runParams{}, err
		}
		if err := sc.Validate(); err != nil {
			return runParams{}, err
		}
		sc.applyTo(&p, cmd.Flags().Changed)
		logrus.Debugf("Loaded scenario %s", scenarioPath)
	}
	if len(args) == 4 {
		in, err := sim.ParseInput(args[0], args[1], args[2], args[3])
		if err != nil {
			return runParams{}, err
		}
		p.input = in
	}
	return p, nil
}

func noneOrFourArgs(cmd *cobra.Command, args []string) error {
	if n := len(args); n != 0 && n != 4 {
		return fmt.Errorf("expected no arguments or exactly 4 (λ μ entry exit), got %d", n)
	}
	return nil
}

// runMetrics prints the queueing metrics for in followed by the
// sensitivity sweep around its arrival rate.
func runMetrics(w io.Writer, in sim.QueueingInput) error {
	res, err := sim.ComputeMetrics(in)
	if err != nil {
		return err
	}
	res.Print(w)
	fmt.Fprintln(w)
	sim.ComputeSensitivity(in.ArrivalRate, in.ServiceRate).Print(w)
	return nil
}

// runSensitivity prints the sweep and, when path is set, writes the chart.
func runSensitivity(w io.Writer, in sim.QueueingInput, path string, format chart.Format, opts chart.Options) error {
	table := sim.ComputeSensitivity(in.ArrivalRate, in.ServiceRate)
	table.Print(w)
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := chart.Render(table, format, opts, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing chart file %s: %w", path, err)
	}
	logrus.Infof("Wrote sensitivity chart to %s", path)
	return nil
}

// runCmd computes the metrics for one car's route
var runCmd = &cobra.Command{
	Use:   "run [λ μ entry exit]",
	Short: "Compute M/M/4 metrics and the sensitivity sweep",
	Args:  noneOrFourArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := resolveParams(cmd, args)
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}
		logrus.Infof("Computing metrics for λ=%v μ=%v entry=%d exit=%d",
			p.input.ArrivalRate, p.input.ServiceRate, p.input.EntryID, p.input.ExitID)
		if err := runMetrics(os.Stdout, p.input); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// sensitivityCmd sweeps the arrival rate
var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep the arrival rate and optionally chart W, Wq, L and Lq",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := resolveParams(cmd, args)
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}
		rates := sim.QueueingInput{ArrivalRate: p.input.ArrivalRate, ServiceRate: p.input.ServiceRate, EntryID: 1, ExitID: 1}
		if err := rates.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		format, err := chart.ParseFormat(chartFormat)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := chart.Options{Width: chartWidth, Height: chartHeight}
		if err := runSensitivity(os.Stdout, p.input, chartPath, format, opts); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// animateCmd draws cars crossing the roundabout in the terminal
var animateCmd = &cobra.Command{
	Use:   "animate [λ μ entry exit]",
	Short: "Animate cars crossing the roundabout in the terminal",
	Args:  noneOrFourArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := resolveParams(cmd, args)
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}
		if p.cars < 1 {
			logrus.Fatalf("--cars must be at least 1, got %d", p.cars)
		}
		if frameInterval <= 0 {
			logrus.Fatalf("--frame-interval must be positive, got %v", frameInterval)
		}
		cfg := ui.Config{
			Input:         p.input,
			Cars:          p.cars,
			FrameInterval: frameInterval,
			CarDelay:      carDelay,
			Geometry:      trajectory.DefaultGeometry(),
		}
		if err := ui.Run(cfg); err != nil {
			logrus.Fatalf("Animation failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerInputFlags adds the queueing inputs shared by every subcommand.
func registerInputFlags(c *cobra.Command, withRoute bool) {
	c.Flags().Float64Var(&lambda, "lambda", 2.0, "Arrival rate λ (cars per unit time)")
	c.Flags().Float64Var(&mu, "mu", 1.0, "Service rate μ per server (cars per unit time)")
	c.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (explicit flags override it)")
	if withRoute {
		c.Flags().IntVar(&entry, "entry", 1, "Entry (1-4)")
		c.Flags().IntVar(&exit, "exit", 2, "Exit (1-4)")
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerInputFlags(runCmd, true)

	registerInputFlags(sensitivityCmd, false)
	sensitivityCmd.Flags().StringVar(&chartPath, "chart", "", "Write the sensitivity chart to this file")
	sensitivityCmd.Flags().StringVar(&chartFormat, "format", string(chart.FormatSVG), "Chart format (svg, png)")
	sensitivityCmd.Flags().IntVar(&chartWidth, "width", chart.DefaultOptions().Width, "Chart width in pixels")
	sensitivityCmd.Flags().IntVar(&chartHeight, "height", chart.DefaultOptions().Height, "Chart height in pixels")

	registerInputFlags(animateCmd, true)
	animateCmd.Flags().IntVar(&cars, "cars", 3, "Number of cars to animate")
	animateCmd.Flags().DurationVar(&frameInterval, "frame-interval", 20*time.Millisecond, "Time between animation steps")
	animateCmd.Flags().DurationVar(&carDelay, "car-delay", 200*time.Millisecond, "Delay between consecutive cars entering")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(animateCmd)
}
