package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/discolight/config"
	"github.com/sarchlab/discolight/datarecording"
	"github.com/sarchlab/discolight/simulation"
	"github.com/sarchlab/discolight/timing"
)

type runOptions struct {
	configFile      string
	seed            int64
	threshold       float64
	iterations      int
	progressPerTick float64
	renderFreq      float64
	tickDelay       time.Duration
	record          bool
	output          string
	monitor         bool
	monitorPort     int
	open            bool
	logIterations   bool
	traceEvents     bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the disco light loop.",
		Long: `Run the disco light loop until interrupted or, with ` +
			`--iterations, until that many colours have been shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "YAML config file")
	f.Int64Var(&opts.seed, "seed", 0, "seed of the colour generator, 0 uses the clock")
	f.Float64Var(&opts.threshold, "threshold", config.DefaultThreshold,
		"render progress in percent to wait for every iteration")
	f.IntVar(&opts.iterations, "iterations", 0, "stop after this many iterations, 0 runs forever")
	f.Float64Var(&opts.progressPerTick, "progress-per-tick", config.DefaultProgressPerTick,
		"render progress in percent made every tick")
	f.Float64Var(&opts.renderFreq, "render-freq", config.DefaultRenderFreqHz,
		"renderer frequency in Hz")
	f.DurationVar(&opts.tickDelay, "tick-delay", config.DefaultTickDelay,
		"wall-clock time every render tick lasts")
	f.BoolVar(&opts.record, "record", false, "record the run into an SQLite database")
	f.StringVar(&opts.output, "output", "", "recording path without the .sqlite3 extension")
	f.BoolVar(&opts.monitor, "monitor", false, "serve the monitoring page")
	f.IntVar(&opts.monitorPort, "monitor-port", config.DefaultMonitorPort,
		"port of the monitoring page, 0 picks one")
	f.BoolVar(&opts.open, "open", false, "open the monitoring page in a browser")
	f.BoolVar(&opts.logIterations, "log-iterations", false, "log a line for every iteration")
	f.BoolVar(&opts.traceEvents, "trace-events", false, "log every render event")

	return cmd
}

func (o *runOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()

	if f.Changed("seed") {
		cfg.Seed = o.seed
	}

	if f.Changed("threshold") {
		cfg.Threshold = o.threshold
	}

	if f.Changed("iterations") {
		cfg.MaxIterations = o.iterations
	}

	if f.Changed("progress-per-tick") {
		cfg.Render.ProgressPerTick = o.progressPerTick
	}

	if f.Changed("render-freq") {
		cfg.Render.FreqHz = o.renderFreq
	}

	if f.Changed("tick-delay") {
		cfg.Render.TickDelay = o.tickDelay
	}

	if f.Changed("record") {
		cfg.Recording.Enabled = o.record
	}

	if f.Changed("output") {
		cfg.Recording.Output = o.output
		cfg.Recording.Enabled = true
	}

	if f.Changed("monitor") {
		cfg.Monitor.Enabled = o.monitor
	}

	if f.Changed("monitor-port") {
		cfg.Monitor.Port = o.monitorPort
		cfg.Monitor.Enabled = true
	}

	if f.Changed("open") {
		cfg.Monitor.Open = o.open
		cfg.Monitor.Enabled = cfg.Monitor.Enabled || o.open
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (o *runOptions) builder(cfg *config.Config, logger *log.Logger) simulation.Builder {
	b := simulation.MakeBuilder().
		WithThreshold(cfg.Threshold).
		WithMaxIterations(cfg.MaxIterations).
		WithProgressPerTick(cfg.Render.ProgressPerTick).
		WithRenderFreq(timing.Freq(cfg.Render.FreqHz)).
		WithRealTimePerTick(cfg.Render.TickDelay).
		WithLogger(logger)

	if cfg.Seed != 0 {
		b = b.WithSeed(cfg.Seed)
	}

	if cfg.Recording.Enabled {
		b = b.WithOutputFileName(cfg.Recording.Output)
	} else {
		b = b.WithoutRecording()
	}

	if cfg.Monitor.Enabled {
		b = b.WithMonitorPort(cfg.Monitor.Port)
	} else {
		b = b.WithoutMonitoring()
	}

	if o.logIterations {
		b = b.WithIterationLogging()
	}

	if o.traceEvents {
		b = b.WithEventTracing()
	}

	return b
}

func (o *runOptions) run(cmd *cobra.Command) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	sim := o.builder(cfg, logger).Build()
	atexit.Register(sim.Terminate)
	defer sim.Terminate()

	logger.Printf("Run %s, seed %d", sim.ID(), sim.Seed())

	if cfg.Monitor.Open && sim.MonitorURL() != "" {
		if err := browser.OpenURL(sim.MonitorURL()); err != nil {
			logger.Printf("opening browser: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sim.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if recorder := sim.GetDataRecorder(); recorder != nil {
		logger.Printf("Recording written to %s",
			datarecording.Filename(recorder))
	}

	return err
}
