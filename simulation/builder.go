package simulation

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/sarchlab/discolight/datarecording"
	"github.com/sarchlab/discolight/disco"
	"github.com/sarchlab/discolight/idgen"
	"github.com/sarchlab/discolight/monitoring"
	"github.com/sarchlab/discolight/renderview"
	"github.com/sarchlab/discolight/timing"
)

// Builder can be used to build a simulation.
type Builder struct {
	seed            int64
	seedSet         bool
	threshold       float64
	maxIterations   int
	progressPerTick float64
	renderFreq      timing.Freq
	realTimePerTick time.Duration

	recordingOn    bool
	outputFileName string

	monitorOn   bool
	monitorPort int

	logger        *log.Logger
	logIterations bool
	traceEvents   bool
	now           func() time.Time
}

// MakeBuilder creates a new builder. Recording and monitoring are on by
// default.
func MakeBuilder() Builder {
	return Builder{
		threshold:       disco.DefaultThreshold,
		progressPerTick: 1,
		renderFreq:      1 * timing.KHz,
		recordingOn:     true,
		monitorOn:       true,
		now:             time.Now,
	}
}

// WithSeed sets the seed of the colour generator. Without it the seed comes
// from the clock.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	b.seedSet = true

	return b
}

// WithThreshold sets the render progress, in percent, the loop waits for.
func (b Builder) WithThreshold(pct float64) Builder {
	b.threshold = pct
	return b
}

// WithMaxIterations stops the loop after n iterations. 0 runs until the
// context is cancelled.
func (b Builder) WithMaxIterations(n int) Builder {
	b.maxIterations = n
	return b
}

// WithProgressPerTick sets how many percent the renderer completes per
// tick.
func (b Builder) WithProgressPerTick(pct float64) Builder {
	b.progressPerTick = pct
	return b
}

// WithRenderFreq sets the frequency of the renderer.
func (b Builder) WithRenderFreq(freq timing.Freq) Builder {
	b.renderFreq = freq
	return b
}

// WithRealTimePerTick makes every render tick last at least d.
func (b Builder) WithRealTimePerTick(d time.Duration) Builder {
	b.realTimePerTick = d
	return b
}

// WithOutputFileName sets the path of the recording, without the .sqlite3
// extension.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithRecording sets the simulation to record into an SQLite database.
func (b Builder) WithRecording() Builder {
	b.recordingOn = true
	return b
}

// WithoutRecording sets the simulation to not record.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithMonitoring sets the simulation to serve the monitoring page.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithLogger sets the logger every component writes into.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// WithIterationLogging logs a summary line after every iteration.
func (b Builder) WithIterationLogging() Builder {
	b.logIterations = true
	return b
}

// WithEventTracing logs every event the engine handles.
func (b Builder) WithEventTracing() Builder {
	b.traceEvents = true
	return b
}

// WithClock sets the function used to read wall-clock time.
func (b Builder) WithClock(now func() time.Time) Builder {
	b.now = now
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            idgen.NewParallel().Generate(),
		seed:          b.seed,
		logger:        b.logger,
		compNameIndex: make(map[string]int),
	}

	if !b.seedSet {
		s.seed = b.now().UnixNano()
	}

	if s.logger == nil {
		s.logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	engine := timing.NewSerialEngine()
	if b.traceEvents {
		engine.AcceptHook(timing.NewEventLogger(s.logger))
	}

	s.engine = engine

	s.view = renderview.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.renderFreq).
		WithProgressPerTick(b.progressPerTick).
		WithRealTimePerTick(b.realTimePerTick).
		WithLogger(s.logger).
		WithClock(b.now).
		Build("View")

	s.script = disco.MakeBuilder().
		WithHost(s.view).
		WithImageView(s.view).
		WithSeed(s.seed).
		WithThreshold(b.threshold).
		WithMaxIterations(b.maxIterations).
		WithClock(b.now).
		Build()

	if b.logIterations {
		s.script.AcceptHook(disco.NewIterationLogger(s.logger))
	}

	if b.recordingOn {
		b.buildRecording(s)
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	s.RegisterComponent(s.view)
	s.RegisterComponent(s.view.Renderer())
	s.RegisterComponent(s.script)

	return s
}

func (b Builder) buildRecording(s *Simulation) {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "discolight_" + s.id
	}

	s.dataRecorder = datarecording.New(outputPath)

	s.execRecorder = datarecording.NewExecRecorder(s.dataRecorder)
	s.execRecorder.Start()
	s.execRecorder.Add("Run ID", s.id)
	s.execRecorder.Add("Seed", strconv.FormatInt(s.seed, 10))
	s.execRecorder.Add("Threshold", strconv.FormatFloat(b.threshold, 'f', -1, 64))
	s.execRecorder.Add("Max Iterations", strconv.Itoa(b.maxIterations))

	s.script.AcceptHook(datarecording.NewIterationRecorder(s.dataRecorder))
}

func (b Builder) buildMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor().
		WithLogger(s.logger).
		WithPortNumber(b.monitorPort)
	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterView(s.view)

	if b.maxIterations > 0 {
		bar := s.monitor.CreateProgressBar("Iterations", uint64(b.maxIterations))
		s.script.AcceptHook(monitoring.NewIterationTracker(bar))
	}

	url, err := s.monitor.StartServer()
	if err != nil {
		panic(fmt.Errorf("starting monitor: %w", err))
	}

	s.monitorURL = url
}
