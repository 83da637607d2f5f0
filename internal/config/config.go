// Package config holds the tunable sizing parameters. The defaults follow
// common refrigeration practice; a YAML file can override them per site.
package config

import (
	"os"

	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"
)

// Friction factor models for line pressure drop.
const (
	FrictionBlasius = "blasius"
	FrictionFixed   = "fixed"
)

// Sizing carries the constraint budgets and flow-model constants the pipe
// selection search applies.
type Sizing struct {
	// Maximum allowed saturation temperature penalty from line pressure
	// drop, K.
	MaxTempPenaltyK float64 `yaml:"max_temp_penalty_k"`
	// Minimum velocities for oil return, m/s.
	HorizontalOilFloorMS float64 `yaml:"horizontal_oil_floor_m_s"`
	VerticalOilFloorMS   float64 `yaml:"vertical_oil_floor_m_s"`
	// Dynamic viscosity used for Reynolds number, Pa s.
	ViscosityPaS float64 `yaml:"viscosity_pa_s"`
	// "blasius" for regime-dependent friction, "fixed" for a constant factor.
	FrictionModel       string  `yaml:"friction_model"`
	FixedFrictionFactor float64 `yaml:"fixed_friction_factor"`
}

// DefaultSizing returns the stock parameter set.
func DefaultSizing() Sizing {
	return Sizing{
		MaxTempPenaltyK:      1.0,
		HorizontalOilFloorMS: 4.0,
		VerticalOilFloorMS:   7.0,
		ViscosityPaS:         1.2e-5,
		FrictionModel:        FrictionBlasius,
		FixedFrictionFactor:  0.02,
	}
}

// LoadSizing reads the override file if it exists, otherwise returns the
// defaults. Overrides left at zero keep their default value.
func LoadSizing(path string) (Sizing, error) {
	s := DefaultSizing()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return Sizing{}, merry.Append(err, path)
	}
	var o Sizing
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Sizing{}, merry.Append(err, path)
	}
	s.merge(o)
	if err := s.Validate(); err != nil {
		return Sizing{}, merry.Append(err, path)
	}
	return s, nil
}

func (s *Sizing) merge(o Sizing) {
	if o.MaxTempPenaltyK > 0 {
		s.MaxTempPenaltyK = o.MaxTempPenaltyK
	}
	if o.HorizontalOilFloorMS > 0 {
		s.HorizontalOilFloorMS = o.HorizontalOilFloorMS
	}
	if o.VerticalOilFloorMS > 0 {
		s.VerticalOilFloorMS = o.VerticalOilFloorMS
	}
	if o.ViscosityPaS > 0 {
		s.ViscosityPaS = o.ViscosityPaS
	}
	if o.FrictionModel != "" {
		s.FrictionModel = o.FrictionModel
	}
	if o.FixedFrictionFactor > 0 {
		s.FixedFrictionFactor = o.FixedFrictionFactor
	}
}

// Validate rejects parameter sets the search cannot run with.
func (s Sizing) Validate() error {
	if s.MaxTempPenaltyK <= 0 {
		return merry.Errorf("max_temp_penalty_k=%v: must be positive", s.MaxTempPenaltyK)
	}
	if s.HorizontalOilFloorMS <= 0 || s.VerticalOilFloorMS <= 0 {
		return merry.New("oil return floors must be positive")
	}
	if s.VerticalOilFloorMS < s.HorizontalOilFloorMS {
		return merry.Errorf("vertical oil floor %v below horizontal %v",
			s.VerticalOilFloorMS, s.HorizontalOilFloorMS)
	}
	if s.ViscosityPaS <= 0 {
		return merry.Errorf("viscosity_pa_s=%v: must be positive", s.ViscosityPaS)
	}
	if s.FrictionModel != FrictionBlasius && s.FrictionModel != FrictionFixed {
		return merry.Errorf("friction_model=%q: want %q or %q",
			s.FrictionModel, FrictionBlasius, FrictionFixed)
	}
	if s.FrictionModel == FrictionFixed && s.FixedFrictionFactor <= 0 {
		return merry.Errorf("fixed_friction_factor=%v: must be positive", s.FixedFrictionFactor)
	}
	return nil
}
