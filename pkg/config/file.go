package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"motionctl/pkg/axis"
	"motionctl/pkg/errors"
)

// File is the optional YAML seed document. It is applied between the
// compiled-in defaults and the command line overrides, with the same
// partial-override rule as the flags: a list with fewer than
// axis.NumAxes entries only replaces the leading positions.
type File struct {
	StepsPerMM   []float64 `yaml:"steps_per_mm"`
	MaxFeedrate  []float64 `yaml:"max_feedrate"`
	Acceleration []float64 `yaml:"acceleration"`
	MoveRangeMM  []float64 `yaml:"move_range_mm"`
	HomeSwitch   []int     `yaml:"home_switch"`
	AxisMapping  *string   `yaml:"axis_mapping"`
	SpeedFactor  *float64  `yaml:"speed_factor"`
	DryRun       *bool     `yaml:"dry_run"`
	DebugPrint   *bool     `yaml:"debug_print"`
	Synchronous  *bool     `yaml:"synchronous"`
}

// ApplyFile loads a YAML seed file and applies it to the builder.
// Unknown keys are rejected so a typo cannot silently fall back to a
// default value.
func (b *Builder) ApplyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrResource, "opening config file")
	}
	defer f.Close()

	var doc File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(err, errors.ErrUsage, "parsing config file")
	}
	return b.apply(&doc)
}

func (b *Builder) apply(doc *File) error {
	overlay := func(dst *[axis.NumAxes]float64, src []float64, what string) error {
		if len(src) > axis.NumAxes {
			return errors.Usagef("%s: more than %d values in config file", what, axis.NumAxes)
		}
		copy(dst[:], src)
		return nil
	}
	if err := overlay(&b.cfg.StepsPerMM, doc.StepsPerMM, "steps_per_mm"); err != nil {
		return err
	}
	if err := overlay(&b.cfg.MaxFeedrate, doc.MaxFeedrate, "max_feedrate"); err != nil {
		return err
	}
	if err := overlay(&b.cfg.Acceleration, doc.Acceleration, "acceleration"); err != nil {
		return err
	}
	if err := overlay(&b.cfg.MoveRangeMM, doc.MoveRangeMM, "move_range_mm"); err != nil {
		return err
	}
	if len(doc.HomeSwitch) > axis.NumAxes {
		return errors.Usagef("home_switch: more than %d values in config file", axis.NumAxes)
	}
	for i, v := range doc.HomeSwitch {
		if !axis.HomeType(v).Valid() {
			return errors.Usagef("home_switch for axis %s must be 0, 1 or 2, got %d",
				axis.Axis(i), v)
		}
		b.cfg.HomeSwitch[i] = axis.HomeType(v)
	}
	if doc.AxisMapping != nil {
		if err := b.SetAxisMapping(*doc.AxisMapping); err != nil {
			return err
		}
	}
	if doc.SpeedFactor != nil {
		if err := b.SetSpeedFactor(*doc.SpeedFactor); err != nil {
			return err
		}
	}
	if doc.DryRun != nil {
		b.cfg.DryRun = *doc.DryRun
	}
	if doc.DebugPrint != nil {
		b.cfg.DebugPrint = *doc.DebugPrint
	}
	if doc.Synchronous != nil {
		b.cfg.Synchronous = *doc.Synchronous
	}
	return nil
}
