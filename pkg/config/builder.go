package config

import (
	"math"

	"motionctl/pkg/axis"
	"motionctl/pkg/errors"
)

// Builder merges compiled-in defaults, an optional seed file and command
// line overrides into one MachineControl record. Array-valued overrides
// replace only the positions their list supplies; the rest keep their
// current values. Any setter returning an error means the whole run must
// abort with a usage error before an execution mode starts.
type Builder struct {
	cfg MachineControl
}

// NewBuilder starts from the compiled-in defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: Defaults()}
}

// Build returns the finished record. The result must be treated as
// read-only for the remainder of the process.
func (b *Builder) Build() *MachineControl {
	cfg := b.cfg
	return &cfg
}

// setVector parses list into dst, keeping unsupplied trailing positions.
func setVector(dst *[axis.NumAxes]float64, list, what string) error {
	vals := *dst
	if axis.ParseFloatList(list, vals[:]) == 0 {
		return errors.Usagef("failed to parse %s %q", what, list)
	}
	*dst = vals
	return nil
}

// SetStepsPerMM overrides the steps/mm vector from a comma separated list.
func (b *Builder) SetStepsPerMM(list string) error {
	return setVector(&b.cfg.StepsPerMM, list, "steps/mm")
}

// SetMaxFeedrate overrides the feedrate vector from a comma separated list.
func (b *Builder) SetMaxFeedrate(list string) error {
	return setVector(&b.cfg.MaxFeedrate, list, "max feedrate")
}

// SetAcceleration overrides the acceleration vector from a comma
// separated list. Values <= 0 mean unbounded and are kept as given.
func (b *Builder) SetAcceleration(list string) error {
	return setVector(&b.cfg.Acceleration, list, "acceleration")
}

// SetMoveRange overrides the travel range vector from a comma separated
// list. Negative values mean unclipped and are kept as given.
func (b *Builder) SetMoveRange(list string) error {
	return setVector(&b.cfg.MoveRangeMM, list, "move range")
}

// SetHomeSwitch overrides the home switch vector. Each list element must
// be exactly 0 (none), 1 (origin) or 2 (end of range); anything else is
// a usage error rather than a silent truncation. Unlike the float
// vectors, the whole vector is replaced: positions the list does not
// supply become "none", not their previous value.
func (b *Builder) SetHomeSwitch(list string) error {
	var tmp [axis.NumAxes]float64
	if axis.ParseFloatList(list, tmp[:]) == 0 {
		return errors.Usagef("failed to parse home switch %q", list)
	}
	next := b.cfg.HomeSwitch
	for i, v := range tmp {
		if v != math.Trunc(v) || !axis.HomeType(v).Valid() {
			return errors.Usagef("home switch for axis %s must be 0, 1 or 2, got %v",
				axis.Axis(i), v)
		}
		next[i] = axis.HomeType(v)
	}
	b.cfg.HomeSwitch = next
	return nil
}

// SetAxisMapping replaces the logical-to-physical axis mapping.
func (b *Builder) SetAxisMapping(mapping string) error {
	if len(mapping) > axis.NumAxes {
		return errors.Usagef("axis mapping %q longer than %d axes", mapping, axis.NumAxes)
	}
	b.cfg.AxisMapping = mapping
	return nil
}

// SetSpeedFactor sets the global speed scaling factor.
func (b *Builder) SetSpeedFactor(f float64) error {
	if f <= 0 {
		return errors.Usagef("speed factor cannot be <= 0")
	}
	b.cfg.SpeedFactor = f
	return nil
}

// SetDryRun disables physical actuation.
func (b *Builder) SetDryRun(v bool) { b.cfg.DryRun = v }

// SetDebugPrint enables verbose command echo.
func (b *Builder) SetDebugPrint(v bool) { b.cfg.DebugPrint = v }

// SetSynchronous disables internal queuing.
func (b *Builder) SetSynchronous(v bool) { b.cfg.Synchronous = v }
