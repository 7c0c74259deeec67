// Package config holds the machine control configuration: per-axis
// kinematic parameters plus the scalar execution switches. The record is
// built once before any execution mode starts and is read-only afterwards.
package config

import (
	"motionctl/pkg/axis"
)

// ChannelLayout is the hardware-fixed ordering of the physical motor
// channels. It is not user-overridable; it lives in the configuration
// record because the engine consumes it together with the axis mapping.
const ChannelLayout = "23140"

// DefaultAxisMapping maps axis letters to motor connector positions,
// left to right.
const DefaultAxisMapping = "XYZEA"

// Default per-axis vectors, in canonical axis order (X Y Z E A B C).
// Most installations override these via flags or a config file.
var (
	defaultMaxFeedrate  = [axis.NumAxes]float64{200, 200, 90, 10, 1, 0, 0}
	defaultAcceleration = [axis.NumAxes]float64{4000, 4000, 1000, 10000, 1, 0, 0}
	defaultStepsPerMM   = [axis.NumAxes]float64{160, 160, 160, 40, 1, 0, 0}
	defaultMoveRangeMM  = [axis.NumAxes]float64{100, 100, 100, -1, -1, -1, -1}

	defaultHomeSwitch = [axis.NumAxes]axis.HomeType{
		axis.HomeOrigin, axis.HomeOrigin, axis.HomeOrigin,
		axis.HomeNone, axis.HomeNone, axis.HomeNone, axis.HomeNone,
	}
)

// MachineControl is the sole configuration entity, built once per run
// and handed to the motion engine at initialization. Every per-axis
// array always has exactly axis.NumAxes valid entries; positions not
// supplied by an override keep their compiled-in defaults.
type MachineControl struct {
	// StepsPerMM is the number of motor steps per millimeter of travel.
	StepsPerMM [axis.NumAxes]float64

	// MaxFeedrate is the per-axis feedrate ceiling in mm/s.
	MaxFeedrate [axis.NumAxes]float64

	// Acceleration is the per-axis acceleration in mm/s^2. Values <= 0
	// mean unbounded.
	Acceleration [axis.NumAxes]float64

	// MoveRangeMM is the per-axis travel range. Only positive values
	// are actively clipped.
	MoveRangeMM [axis.NumAxes]float64

	// HomeSwitch describes where each axis homes.
	HomeSwitch [axis.NumAxes]axis.HomeType

	// AxisMapping maps axis letters to motor connector positions;
	// '_' marks an empty slot. Length is at most axis.NumAxes.
	AxisMapping string

	// ChannelLayout is the physical channel ordering (see the package
	// constant); carried here for the engine's use.
	ChannelLayout string

	// SpeedFactor scales all feedrates. Strictly positive.
	SpeedFactor float64

	// DryRun disables physical actuation.
	DryRun bool

	// DebugPrint echoes motor commands verbosely.
	DebugPrint bool

	// Synchronous disables internal queuing in the engine.
	Synchronous bool
}

// Defaults returns a MachineControl populated with the compiled-in
// default values.
func Defaults() MachineControl {
	return MachineControl{
		StepsPerMM:    defaultStepsPerMM,
		MaxFeedrate:   defaultMaxFeedrate,
		Acceleration:  defaultAcceleration,
		MoveRangeMM:   defaultMoveRangeMM,
		HomeSwitch:    defaultHomeSwitch,
		AxisMapping:   DefaultAxisMapping,
		ChannelLayout: ChannelLayout,
		SpeedFactor:   1,
	}
}
