package disco

import (
	"fmt"
	"time"

	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/light"
)

// Builder can build Scripts.
type Builder struct {
	name          string
	host          Host
	view          ImageView
	generator     *light.Generator
	seed          int64
	threshold     float64
	maxIterations int
	now           func() time.Time
}

// MakeBuilder returns a Builder with the default threshold and no iteration
// limit.
func MakeBuilder() Builder {
	return Builder{
		name:      "Disco",
		seed:      time.Now().UnixNano(),
		threshold: DefaultThreshold,
		now:       time.Now,
	}
}

// WithName sets the name of the script.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithHost sets the host primitives the script calls.
func (b Builder) WithHost(host Host) Builder {
	b.host = host
	return b
}

// WithImageView sets the view that receives the colours.
func (b Builder) WithImageView(view ImageView) Builder {
	b.view = view
	return b
}

// WithSeed sets the seed of the colour generator. It is ignored if a
// generator is given with WithGenerator.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithGenerator sets the colour generator.
func (b Builder) WithGenerator(g *light.Generator) Builder {
	b.generator = g
	return b
}

// WithThreshold sets the render progress, in percent, to wait for.
func (b Builder) WithThreshold(pct float64) Builder {
	b.threshold = pct
	return b
}

// WithMaxIterations stops Run after n iterations. 0 runs forever.
func (b Builder) WithMaxIterations(n int) Builder {
	b.maxIterations = n
	return b
}

// WithClock sets the function used to read wall-clock time.
func (b Builder) WithClock(now func() time.Time) Builder {
	b.now = now
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.host == nil {
		panic("disco: host is not set")
	}

	if b.view == nil {
		panic("disco: image view is not set")
	}

	if !(b.threshold >= 0 && b.threshold <= 100) {
		panic(fmt.Sprintf("disco: threshold %.2f is not a percentage",
			b.threshold))
	}

	if b.maxIterations < 0 {
		panic("disco: max iterations cannot be negative")
	}
}

// Build creates the script.
func (b Builder) Build() *Script {
	b.parametersMustBeValid()

	generator := b.generator
	if generator == nil {
		generator = light.NewGenerator(b.seed)
	}

	return &Script{
		HookableBase:  hooking.NewHookableBase(),
		name:          b.name,
		host:          b.host,
		view:          b.view,
		generator:     generator,
		threshold:     b.threshold,
		maxIterations: b.maxIterations,
		now:           b.now,
	}
}
