package light

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Full is the intensity the big channel is forced to.
const Full = 1.0

// Generator picks disco colours. One channel, the big channel, is always at
// full intensity; the other two are uniform random in [0, 1). The big channel
// only moves when Advance is called.
type Generator struct {
	rng *rand.Rand
	big Channel
}

// NewGenerator creates a generator seeded with seed that starts with red as
// the big channel.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewSource(seed)), Red)
}

// NewGeneratorWithRand creates a generator drawing from rng and starting at
// the given big channel.
func NewGeneratorWithRand(rng *rand.Rand, start Channel) *Generator {
	if !start.Valid() {
		panic(fmt.Sprintf("light: invalid start channel %d", int(start)))
	}

	return &Generator{
		rng: rng,
		big: start,
	}
}

// Big returns the channel the next Pick forces to full intensity.
func (g *Generator) Big() Channel {
	return g.big
}

// Pick returns a new colour. Channels are drawn red, green, blue in that
// order so a seeded generator always yields the same sequence.
func (g *Generator) Pick() colorful.Color {
	return colorful.Color{
		R: g.channelValue(Red),
		G: g.channelValue(Green),
		B: g.channelValue(Blue),
	}
}

func (g *Generator) channelValue(ch Channel) float64 {
	if ch == g.big {
		return Full
	}

	return g.rng.Float64()
}

// Advance moves the big channel to the next one and returns it.
func (g *Generator) Advance() Channel {
	g.big = g.big.Next()

	return g.big
}
