// Package light generates the colours of the disco light.
package light

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel is one of the three colour channels of the light.
type Channel int

// The channels, in the order the light cycles through them.
const (
	Red Channel = iota
	Green
	Blue

	numChannels
)

// Next returns the channel after c, wrapping from Blue back to Red.
func (c Channel) Next() Channel {
	return (c + 1) % numChannels
}

// Valid tells if c names one of the three channels.
func (c Channel) Valid() bool {
	return c >= Red && c < numChannels
}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Intensity returns the value of channel ch in color.
func Intensity(color colorful.Color, ch Channel) float64 {
	switch ch {
	case Red:
		return color.R
	case Green:
		return color.G
	case Blue:
		return color.B
	default:
		panic(fmt.Sprintf("light: invalid channel %d", int(ch)))
	}
}
