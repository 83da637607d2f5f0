// Package doubleriser sizes a double suction riser: a small riser that
// still carries oil at minimum part load, paired with a large riser that
// keeps the full-load pressure drop inside the penalty budget. At part load
// the large riser seals with an oil trap and the small riser carries the
// whole flow.
package doubleriser

import (
	"math"

	"micropipe/internal/calc/massflow"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

type Input struct {
	Refrigerant string  `json:"refrigerant"`
	EvapTempC   float64 `json:"evap_temp_c"`
	CondTempC   float64 `json:"cond_temp_c"`
	SuperheatK  float64 `json:"superheat_k"`

	LoadKW         float64 `json:"load_kw"`
	MinLoadPercent float64 `json:"min_load_percent"`
	RiserHeightM   float64 `json:"riser_height_m"`

	Material        string  `json:"material,omitempty"`
	Schedule        string  `json:"schedule,omitempty"`
	MaxTempPenaltyK float64 `json:"max_temp_penalty_k,omitempty"`
}

type Result struct {
	Qualified bool `json:"qualified"`

	SmallRiser pipes.Candidate `json:"small_riser,omitempty"`
	LargeRiser pipes.Candidate `json:"large_riser,omitempty"`

	MassFlowFullKgS  float64 `json:"mass_flow_full_kg_s"`
	MassFlowMinKgS   float64 `json:"mass_flow_min_kg_s"`
	MinLoadVelocity  float64 `json:"min_load_velocity_m_s"`
	FullLoadVelocity float64 `json:"full_load_velocity_m_s"`
	TempPenaltyK     float64 `json:"temp_penalty_k"`
	Notes            string  `json:"notes,omitempty"`
}

type Calculator struct {
	table    *props.Table
	conv     *props.Converter
	catalog  *pipes.Catalog
	eqlen    *pipes.EquivalentLengthCalculator
	massflow *massflow.Calculator
	cfg      config.Sizing
}

func New(
	table *props.Table,
	conv *props.Converter,
	catalog *pipes.Catalog,
	eqlen *pipes.EquivalentLengthCalculator,
	cfg config.Sizing,
) *Calculator {
	return &Calculator{
		table:    table,
		conv:     conv,
		catalog:  catalog,
		eqlen:    eqlen,
		massflow: massflow.New(table),
		cfg:      cfg,
	}
}

// Calculate picks the riser pair. The small riser is the largest size whose
// part-load velocity still clears the vertical oil floor; the large riser
// is the smallest size whose addition keeps the full-load velocity above
// the floor and the pressure drop inside the budget. No such pair is a
// conclusion, not an error.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.Material == "" {
		in.Material = "Copper"
	}
	if in.Schedule == "" {
		in.Schedule = "ACR"
	}
	budget := in.MaxTempPenaltyK
	if budget <= 0 {
		budget = c.cfg.MaxTempPenaltyK
	}
	minLoad := in.MinLoadPercent
	if minLoad <= 0 || minLoad > 100 {
		minLoad = 100
	}

	flow, err := c.massflow.Calculate(massflow.Input{
		Refrigerant: in.Refrigerant,
		LoadKW:      in.LoadKW,
		EvapTempC:   in.EvapTempC,
		CondTempC:   in.CondTempC,
		SuperheatK:  in.SuperheatK,
	})
	if err != nil {
		return Result{}, err
	}
	full := flow.MassFlowKgS
	min := full * minLoad / 100

	state, err := c.table.Lookup(in.Refrigerant, in.EvapTempC)
	if err != nil {
		return Result{}, err
	}
	rho := state.DensityVapor
	floor := c.cfg.VerticalOilFloorMS

	candidates, err := c.catalog.CandidatesFor(in.Material, in.Schedule)
	if err != nil {
		return Result{}, err
	}

	// Largest size that still returns oil on the part-load flow alone.
	var small *pipes.Candidate
	for i := range candidates {
		if min/(rho*candidates[i].AreaM2()) >= floor {
			small = &candidates[i]
		}
	}
	if small == nil {
		return Result{
			MassFlowFullKgS: full,
			MassFlowMinKgS:  min,
			Notes:           "part-load flow cannot hold oil velocity in any catalog size",
		}, nil
	}

	for _, large := range candidates {
		if large.IDmm < small.IDmm {
			continue
		}
		vFull := full / (rho * (small.AreaM2() + large.AreaM2()))
		if vFull < floor {
			continue
		}
		penalty, err := c.pairPenalty(in, *small, large, rho, vFull)
		if err != nil {
			return Result{}, err
		}
		if penalty > budget {
			continue
		}
		return Result{
			Qualified:        true,
			SmallRiser:       *small,
			LargeRiser:       large,
			MassFlowFullKgS:  full,
			MassFlowMinKgS:   min,
			MinLoadVelocity:  min / (rho * small.AreaM2()),
			FullLoadVelocity: vFull,
			TempPenaltyK:     penalty,
		}, nil
	}

	return Result{
		MassFlowFullKgS: full,
		MassFlowMinKgS:  min,
		SmallRiser:      *small,
		Notes:           "no large riser keeps full load inside oil floor and penalty budget",
	}, nil
}

// pairPenalty approximates the full-load drop across the pair with the
// area-equivalent diameter, plus the static head of the riser.
func (c *Calculator) pairPenalty(in Input, small, large pipes.Candidate, rho, vFull float64) (float64, error) {
	eqDiaM := math.Sqrt(small.IDmm*small.IDmm+large.IDmm*large.IDmm) / 1000

	// A riser pair always carries entry and exit bends plus the trap.
	trap := pipes.Candidate{
		Material: large.Material, Schedule: large.Schedule,
		Nominal: large.Nominal, IDmm: large.IDmm,
	}
	eqLen, err := c.eqlen.EquivalentLength(in.RiserHeightM, []pipes.FittingEntry{
		{Type: "Long Radius Elbow", Count: 2},
		{Type: "P-Trap", Count: 1},
	}, trap)
	if err != nil {
		return 0, err
	}

	re := pipes.Reynolds(rho, vFull, eqDiaM, c.cfg.ViscosityPaS)
	f := c.cfg.FixedFrictionFactor
	if c.cfg.FrictionModel == config.FrictionBlasius {
		f = pipes.DarcyFrictionFactor(re)
	}
	dropKPa := (pipes.PressureGradient(f, rho, vFull, eqDiaM)*eqLen +
		rho*pipes.Gravity*in.RiserHeightM) / 1000

	return c.conv.TemperaturePenalty(in.Refrigerant, in.EvapTempC, dropKPa)
}
