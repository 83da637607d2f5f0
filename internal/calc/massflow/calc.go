// Package massflow derives the refrigerant mass flow rate from thermal load
// and the enthalpy difference across the evaporator.
package massflow

import (
	"github.com/ansel1/merry"

	"micropipe/internal/props"
)

var ErrNonPositiveEnthalpyDelta = merry.New("non-positive enthalpy delta")

type Input struct {
	Refrigerant string  `json:"refrigerant"`
	LoadKW      float64 `json:"load_kw"`
	EvapTempC   float64 `json:"evap_temp_c"`
	CondTempC   float64 `json:"cond_temp_c"`
	SuperheatK  float64 `json:"superheat_k"`
	SubcoolingK float64 `json:"subcooling_k"`
}

type Result struct {
	MassFlowKgS     float64 `json:"mass_flow_kg_s"`
	VaporKJKg       float64 `json:"vapor_kj_kg"`
	LiquidKJKg      float64 `json:"liquid_kj_kg"`
	DeltaKJKg       float64 `json:"delta_kj_kg"`
	VaporDensity    float64 `json:"vapor_density_kg_m3"`
	LiquidDensity   float64 `json:"liquid_density_kg_m3"`
}

type Calculator struct {
	table *props.Table
}

func New(table *props.Table) *Calculator {
	return &Calculator{table: table}
}

// Calculate derives mass flow as load over the enthalpy gain between the
// liquid entering the evaporator and the superheated vapor leaving it. The
// superheated enthalpy is the saturated vapor enthalpy plus Cp at the
// evaporating point times the superheat: single-point Cp is the established
// shortcut for this calculation, not an integration over the superheat
// range. Inconsistent temperatures (evaporating at or above condensing)
// surface as ErrNonPositiveEnthalpyDelta, never as a defaulted flow.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.LoadKW <= 0 {
		return Result{}, merry.Errorf("load %v kW: must be positive", in.LoadKW)
	}
	// A cycle whose evaporating temperature reaches the condensing
	// temperature has no usable enthalpy span; the latent-heat columns
	// would still give a positive difference, so the ordering is checked
	// explicitly.
	if in.EvapTempC >= in.CondTempC {
		return Result{}, merry.Appendf(ErrNonPositiveEnthalpyDelta,
			"evaporating %.1f C >= condensing %.1f C", in.EvapTempC, in.CondTempC)
	}
	evap, err := c.table.Lookup(in.Refrigerant, in.EvapTempC)
	if err != nil {
		return Result{}, err
	}
	liquid, err := c.table.Lookup(in.Refrigerant, in.CondTempC-in.SubcoolingK)
	if err != nil {
		return Result{}, err
	}

	vapor := evap.HVaporKJKg + evap.CpVaporKJKgK*in.SuperheatK
	delta := vapor - liquid.HLiquidKJKg
	if delta <= 0 {
		return Result{}, merry.Appendf(ErrNonPositiveEnthalpyDelta,
			"%s: h_vapor(%.1f C)+superheat %.1f kJ/kg <= h_liquid(%.1f C) %.1f kJ/kg",
			in.Refrigerant, in.EvapTempC, vapor, in.CondTempC-in.SubcoolingK, liquid.HLiquidKJKg)
	}

	return Result{
		MassFlowKgS:   in.LoadKW / delta,
		VaporKJKg:     vapor,
		LiquidKJKg:    liquid.HLiquidKJKg,
		DeltaKJKg:     delta,
		VaporDensity:  evap.DensityVapor,
		LiquidDensity: liquid.DensityLiquid,
	}, nil
}
