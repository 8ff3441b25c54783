package machine

import (
	"fmt"
	"math"
)

// SafeInt32ToInt16 safely narrows a 32-bit value back to the signed 16-bit
// domain the rest of the engine operates in, rejecting out-of-range values.
func SafeInt32ToInt16(v int32) (int16, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, fmt.Errorf("int32 value %d does not fit in int16", v)
	}
	return int16(v), nil
}

// SafeIntToUint16 safely converts a plain int (e.g. a decoded stream
// position) to uint16, rejecting anything outside the 64KiB address space.
func SafeIntToUint16(v int) (uint16, error) {
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("int value %d exceeds uint16 address range", v)
	}
	return uint16(v), nil
}

// AsUint16 reinterprets an int16's bit pattern as uint16 for display or
// address arithmetic purposes. No error checking: the bit pattern is
// preserved, only the interpretation changes.
func AsUint16(v int16) uint16 {
	return uint16(v)
}

// AsInt16 reinterprets a uint16's bit pattern as int16 for signed display.
func AsInt16(v uint16) int16 {
	return int16(v)
}
