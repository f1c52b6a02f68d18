package params

import "sync/atomic"

// Stamp is a monotonically increasing modification time shared by every
// parameter in the process.
type Stamp uint64

var stampClock atomic.Uint64

// NextStamp advances the global clock and returns the new value.
func NextStamp() Stamp {
	return Stamp(stampClock.Add(1))
}

func maxStamp(a, b Stamp) Stamp {
	if a > b {
		return a
	}
	return b
}
