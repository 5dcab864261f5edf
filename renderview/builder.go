package renderview

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/notify"
	"github.com/sarchlab/discolight/timing"
)

// Builder can build Views.
type Builder struct {
	engine          timing.Engine
	freq            timing.Freq
	progressPerTick float64
	realTimePerTick time.Duration
	queueSize       int
	width, height   int
	logger          *log.Logger
	now             func() time.Time
}

// MakeBuilder returns a Builder with default parameters: a 1 kHz renderer
// that finishes an image in 100 ticks, without wall-clock pacing.
func MakeBuilder() Builder {
	return Builder{
		freq:            1 * timing.KHz,
		progressPerTick: 1,
		queueSize:       64,
		width:           320,
		height:          180,
		now:             time.Now,
	}
}

// WithEngine sets the engine the renderer runs on.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the renderer.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithProgressPerTick sets how many percent of the image are rendered in one
// tick.
func (b Builder) WithProgressPerTick(pct float64) Builder {
	b.progressPerTick = pct
	return b
}

// WithRealTimePerTick makes every tick last at least d of wall-clock time.
func (b Builder) WithRealTimePerTick(d time.Duration) Builder {
	b.realTimePerTick = d
	return b
}

// WithQueueSize sets how many colours can wait to be applied.
func (b Builder) WithQueueSize(n int) Builder {
	b.queueSize = n
	return b
}

// WithSnapshotSize sets the size of the snapshot image.
func (b Builder) WithSnapshotSize(width, height int) Builder {
	b.width = width
	b.height = height
	return b
}

// WithLogger sets the logger Print and scene updates write into.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// WithClock sets the function used to read wall-clock time.
func (b Builder) WithClock(now func() time.Time) Builder {
	b.now = now
	return b
}

func (b Builder) parametersMustBeValid() {
	if err := b.freq.Validate(); err != nil {
		panic(err)
	}

	if !(b.progressPerTick > 0 && b.progressPerTick <= 100) {
		panic(fmt.Sprintf(
			"renderview: progress per tick %.2f must be in (0, 100]",
			b.progressPerTick))
	}

	if b.queueSize < 1 {
		panic("renderview: queue size must be at least 1")
	}

	if b.width <= 0 || b.height <= 0 {
		panic("renderview: snapshot size must be positive")
	}
}

// Build creates a View with the given name.
func (b Builder) Build(name string) *View {
	b.parametersMustBeValid()

	engine := b.engine
	if engine == nil {
		engine = timing.NewSerialEngine()
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	v := &View{
		HookableBase:    hooking.NewHookableBase(),
		name:            name,
		instance:        notify.NewValue(0),
		progress:        notify.NewValue(0.0),
		updates:         make(chan colorful.Color, b.queueSize),
		done:            make(chan struct{}),
		logger:          logger,
		engine:          engine,
		realTimePerTick: b.realTimePerTick,
		width:           b.width,
		height:          b.height,
		now:             b.now,
	}

	v.renderer = newRenderer(
		name+".Renderer", v, engine, b.freq, b.progressPerTick)
	engine.AcceptHook(&renderDriver{view: v})

	return v
}
