// Package axis defines the closed set of logical machine axes and the
// per-axis parameter parsing used by the configuration layer.
//
// The axis order is semantically significant: every per-axis array in the
// machine configuration is indexed by it, and it matches the physical
// channel layout string handed to the motion engine.
package axis

// Axis identifies one logical machine axis.
type Axis int

// Logical axes in canonical order.
const (
	X Axis = iota
	Y
	Z
	E
	A
	B
	C

	// NumAxes is the fixed number of logical axes. Every per-axis
	// parameter array has exactly this many entries.
	NumAxes = int(C) + 1
)

// Letters holds the axis letters in canonical order.
const Letters = "XYZEABC"

// String returns the single-letter name of the axis.
func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return "?"
	}
	return Letters[a : a+1]
}

// HomeType describes where the home switch of an axis sits.
type HomeType int

const (
	// HomeNone means the axis has no home switch.
	HomeNone HomeType = iota

	// HomeOrigin homes against a switch at the axis origin.
	HomeOrigin

	// HomeEndOfRange homes against a switch at the far end of travel.
	HomeEndOfRange
)

// String returns a human-readable name for the home type.
func (h HomeType) String() string {
	switch h {
	case HomeNone:
		return "none"
	case HomeOrigin:
		return "origin"
	case HomeEndOfRange:
		return "end-of-range"
	default:
		return "invalid"
	}
}

// Valid reports whether h is one of the defined home types.
func (h HomeType) Valid() bool {
	return h >= HomeNone && h <= HomeEndOfRange
}
