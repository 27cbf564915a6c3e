package constants

import "time"

const (
	// MaxWorkingSetSize bounds the number of slices drawn onto one wheel.
	MaxWorkingSetSize = 10

	// SpinTicks is the number of rotation increments applied per spin.
	SpinTicks = 20

	// SpinTickInterval is the pause between two rotation increments.
	SpinTickInterval = 100 * time.Millisecond

	// RevealDelay is the pause between the wheel settling and the result being acted on.
	RevealDelay = 3 * time.Second

	// FullTurnDegrees is one complete revolution of the wheel.
	FullTurnDegrees = 360.0
)
