package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/packet-sim/packet-sim/sim"
	"github.com/packet-sim/packet-sim/sim/report"
	"github.com/packet-sim/packet-sim/sim/trace"
)

var (
	// CLI flags for the network model
	numRouters         int     // Number of intermediate routers
	arrivalProbability float64 // Per-slot packet arrival probability
	arrivalSlots       int     // Arrival trials per tick
	maxBufferSize      int     // Capacity of each intermediate router
	minPacketSize      int     // Smallest packet size
	maxPacketSize      int     // Largest packet size
	bandwidth          int     // Packets drained per tick
	duration           int64   // Simulation duration (in ticks)
	dispatchPolicy     string  // Dispatch policy name

	// CLI flags for run control
	configPath     string // Optional YAML run config
	seed           int64  // Seed for arrivals and packet sizes
	runs           int    // Number of independent runs
	rngBackend     string // Random backend
	logLevel       string // Log verbosity level
	quiet          bool   // Suppress per-tick output
	resultsPath    string // File to save JSON summaries to
	traceLevel     string // Decision trace level
	summarizeTrace bool   // Print decision trace summary after each run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "packet-sim",
	Short: "Discrete-time simulator for a dispatcher, parallel routers and a bandwidth-limited destination",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the packet network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		cfg := DefaultRunConfig()
		if configPath != "" {
			loaded, err := LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			cfg = *loaded
		}
		applyFlagOverrides(cmd, &cfg)

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		startTime := time.Now()
		summaries, err := executeRuns(cfg, os.Stdout, RunOptions{Quiet: quiet, SummarizeTrace: summarizeTrace})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if resultsPath != "" {
			if err := sim.SaveResults(resultsPath, summaries); err != nil {
				logrus.Fatalf("Failed to save results: %v", err)
			}
		}
		logrus.Infof("Simulation complete: %d run(s) in %v", len(summaries), time.Since(startTime))
	},
}

// RunOptions controls reporting for executeRuns.
type RunOptions struct {
	Quiet          bool // only print the final summary of each run
	SummarizeTrace bool // print the decision trace summary after each run
}

// executeRuns performs cfg.Runs independent runs. Run i uses seed cfg.Seed+i and
// a freshly built simulator, so no state carries over between runs.
func executeRuns(cfg RunConfig, out io.Writer, opts RunOptions) ([]sim.Summary, error) {
	factory, err := sim.NewSourceFactory(cfg.RNG)
	if err != nil {
		return nil, err
	}
	collector := &report.SummaryCollector{}
	for i := 0; i < cfg.Runs; i++ {
		if cfg.Runs > 1 {
			fmt.Fprintf(out, "=== Run %d of %d ===\n", i+1, cfg.Runs)
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed+int64(i)), factory)
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(cfg.TraceLevel)})

		s, err := sim.NewSimulator(cfg.SimConfig(), rng,
			sim.WithObserver(report.NewConsoleReporter(out, opts.Quiet)),
			sim.WithObserver(collector),
			sim.WithTrace(st),
		)
		if err != nil {
			return nil, err
		}
		s.Run()

		if opts.SummarizeTrace && st.Config.Enabled() {
			report.PrintTraceSummary(out, trace.Summarize(st))
		}
	}
	return collector.Summaries, nil
}

// applyFlagOverrides copies explicitly set flags over the file/default values.
func applyFlagOverrides(cmd *cobra.Command, cfg *RunConfig) {
	flags := cmd.Flags()
	if flags.Changed("routers") {
		cfg.Routers = numRouters
	}
	if flags.Changed("arrival-prob") {
		cfg.ArrivalProbability = arrivalProbability
	}
	if flags.Changed("arrival-slots") {
		cfg.ArrivalSlots = arrivalSlots
	}
	if flags.Changed("buffer-size") {
		cfg.MaxBufferSize = maxBufferSize
	}
	if flags.Changed("min-packet-size") {
		cfg.MinPacketSize = minPacketSize
	}
	if flags.Changed("max-packet-size") {
		cfg.MaxPacketSize = maxPacketSize
	}
	if flags.Changed("bandwidth") {
		cfg.Bandwidth = bandwidth
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("dispatch-policy") {
		cfg.DispatchPolicy = dispatchPolicy
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("runs") {
		cfg.Runs = runs
	}
	if flags.Changed("rng") {
		cfg.RNG = rngBackend
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultRunConfig()

	// Network model
	runCmd.Flags().IntVar(&numRouters, "routers", defaults.Routers, "Number of intermediate routers")
	runCmd.Flags().Float64Var(&arrivalProbability, "arrival-prob", defaults.ArrivalProbability, "Arrival probability of a packet per slot")
	runCmd.Flags().IntVar(&arrivalSlots, "arrival-slots", defaults.ArrivalSlots, "Arrival trials per tick")
	runCmd.Flags().IntVar(&maxBufferSize, "buffer-size", defaults.MaxBufferSize, "Maximum buffer size of a router")
	runCmd.Flags().IntVar(&minPacketSize, "min-packet-size", defaults.MinPacketSize, "Minimum size of a packet")
	runCmd.Flags().IntVar(&maxPacketSize, "max-packet-size", defaults.MaxPacketSize, "Maximum size of a packet")
	runCmd.Flags().IntVar(&bandwidth, "bandwidth", defaults.Bandwidth, "Packets that can reach the destination per tick")
	runCmd.Flags().Int64Var(&duration, "duration", defaults.Duration, "Simulation duration (in ticks)")
	runCmd.Flags().StringVar(&dispatchPolicy, "dispatch-policy", defaults.DispatchPolicy, "Dispatch policy (least-loaded, round-robin)")

	// Run control
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML run config (flags override its values)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for arrivals and packet sizes")
	runCmd.Flags().IntVar(&runs, "runs", defaults.Runs, "Number of independent runs (run i uses seed+i)")
	runCmd.Flags().StringVar(&rngBackend, "rng", defaults.RNG, "Random backend (math, stream)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the final summary of each run")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Save run summaries as JSON to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", defaults.TraceLevel, "Decision trace level (none, decisions)")
	runCmd.Flags().BoolVar(&summarizeTrace, "summarize-trace", false, "Print decision trace summary after each run")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
