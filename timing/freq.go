package timing

import (
	"errors"
	"math"
)

// ErrZeroFrequency is returned when a clock is configured with a 0 Hz
// frequency.
var ErrZeroFrequency = errors.New("timing: frequency cannot be 0")

// ErrInvalidFrequency is returned for a negative or NaN frequency.
var ErrInvalidFrequency = errors.New("timing: frequency must be positive")

// Freq defines the type of frequency.
type Freq float64

// Defines the unit of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Validate returns ErrZeroFrequency for a 0 Hz frequency and
// ErrInvalidFrequency for a negative or NaN one.
func (f Freq) Validate() error {
	if f == 0 {
		return ErrZeroFrequency
	}

	if !(f > 0) {
		return ErrInvalidFrequency
	}

	return nil
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}

// NextTick returns the next tick time.
//
//	           Input
//	           [          )
//	|----------|----------|----------|----->
//	                      |
//	                      Output
func (f Freq) NextTick(now VTimeInSec) VTimeInSec {
	mustBeValidTime(now)

	count := math.Floor(math.Round(float64(now)*10*float64(f)) / 10)

	return VTimeInSec((count + 1) / float64(f))
}

func mustBeValidTime(t VTimeInSec) {
	if math.IsNaN(float64(t)) {
		panic("timing: invalid time")
	}
}
