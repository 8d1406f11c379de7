package circuit

import "strconv"

// Signal is the value carried by a wire.
type Signal uint16

// SignalBits is the width of a Signal.
const SignalBits = 16

// MaxShift is the exclusive upper bound of a shift amount.
const MaxShift = SignalBits

func (s Signal) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
