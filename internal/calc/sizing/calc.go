// Package sizing selects the smallest standard pipe size that keeps a
// refrigerant line inside its velocity, oil-return and pressure-drop
// constraints, and quantifies the chosen segment.
package sizing

import (
	"fmt"

	"micropipe/internal/calc/massflow"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

// Input is one circuit to size. Material/Schedule default to Copper/ACR.
// FixedNominal forces evaluation of exactly that size instead of searching.
// MaxTempPenaltyK overrides the configured budget when positive.
type Input struct {
	Circuit     CircuitType `json:"circuit"`
	Orientation Orientation `json:"orientation"`

	Refrigerant    string   `json:"refrigerant"`
	EvapTempC      float64  `json:"evap_temp_c"`
	CondTempC      float64  `json:"cond_temp_c"`
	DischargeTempC *float64 `json:"discharge_temp_c,omitempty"`
	SuperheatK     float64  `json:"superheat_k"`
	SubcoolingK    float64  `json:"subcooling_k"`

	LoadKW        float64              `json:"load_kw"`
	LengthM       float64              `json:"length_m"`
	VerticalRiseM float64              `json:"vertical_rise_m"`
	Fittings      []pipes.FittingEntry `json:"fittings,omitempty"`

	Material        string  `json:"material,omitempty"`
	Schedule        string  `json:"schedule,omitempty"`
	FixedNominal    string  `json:"fixed_nominal,omitempty"`
	MaxTempPenaltyK float64 `json:"max_temp_penalty_k,omitempty"`
}

// Result reports the outcome of one sizing call. Qualified false with an
// empty Pipe means no catalog size satisfied the constraints: a valid
// engineering conclusion for the caller to act on, not an error.
type Result struct {
	Qualified bool            `json:"qualified"`
	Pipe      pipes.Candidate `json:"pipe,omitempty"`

	MassFlowKgS     float64 `json:"mass_flow_kg_s"`
	VelocityMS      float64 `json:"velocity_m_s"`
	Reynolds        float64 `json:"reynolds"`
	PressureDropKPa float64 `json:"pressure_drop_kpa"`
	TempPenaltyK    float64 `json:"temp_penalty_k"`
	BudgetK         float64 `json:"budget_k"`

	OilReturnApplies bool `json:"oil_return_applies"`
	OilReturnOK      bool `json:"oil_return_ok"`
	WithinBudget     bool `json:"within_budget"`
	RatingOK         bool `json:"rating_ok"`

	OperatingPressureKPa float64 `json:"operating_pressure_kpa"`
	ChargeKg             float64 `json:"charge_kg"`
	Notes                string  `json:"notes,omitempty"`
}

// Engine wires the read-only reference tables into the sizing search. All
// methods are stateless between calls; one Engine serves concurrent
// requests.
type Engine struct {
	table    *props.Table
	conv     *props.Converter
	catalog  *pipes.Catalog
	eqlen    *pipes.EquivalentLengthCalculator
	ratings  *pipes.RatingTable
	massflow *massflow.Calculator
	cfg      config.Sizing
}

func New(
	table *props.Table,
	conv *props.Converter,
	catalog *pipes.Catalog,
	eqlen *pipes.EquivalentLengthCalculator,
	ratings *pipes.RatingTable,
	cfg config.Sizing,
) *Engine {
	return &Engine{
		table:    table,
		conv:     conv,
		catalog:  catalog,
		eqlen:    eqlen,
		ratings:  ratings,
		massflow: massflow.New(table),
		cfg:      cfg,
	}
}

// Calculate runs the sizing search for one circuit.
//
// Candidates are walked smallest to largest and the first one inside both
// the oil-return floor (where the circuit carries oil) and the temperature
// penalty budget wins, so the result is the cheapest qualifying line. A
// fixed size skips the search and is reported as-is with its pass/fail
// flags: a manual override is the engineer's decision and is never
// silently corrected.
func (e *Engine) Calculate(in Input) (Result, error) {
	tr, err := traitsFor(in.Circuit)
	if err != nil {
		return Result{}, err
	}
	if in.Material == "" {
		in.Material = "Copper"
	}
	if in.Schedule == "" {
		in.Schedule = "ACR"
	}
	budget := in.MaxTempPenaltyK
	if budget <= 0 {
		budget = e.cfg.MaxTempPenaltyK
	}

	flow, err := e.massflow.Calculate(massflow.Input{
		Refrigerant: in.Refrigerant,
		LoadKW:      in.LoadKW,
		EvapTempC:   in.EvapTempC,
		CondTempC:   in.CondTempC,
		SuperheatK:  in.SuperheatK,
		SubcoolingK: in.SubcoolingK,
	})
	if err != nil {
		return Result{}, err
	}

	state, err := e.table.Lookup(in.Refrigerant, tr.refTempC(in))
	if err != nil {
		return Result{}, err
	}
	rho := state.Density(tr.phase)

	// High-side saturation pressure is what every line sees at standstill.
	operatingKPa, err := e.conv.PressureAt(in.Refrigerant, in.CondTempC)
	if err != nil {
		return Result{}, err
	}

	if in.FixedNominal != "" {
		cand, err := e.catalog.Find(in.Material, in.Schedule, in.FixedNominal)
		if err != nil {
			return Result{}, err
		}
		res, err := e.evaluate(in, tr, cand, flow.MassFlowKgS, rho, budget, operatingKPa)
		if err != nil {
			return Result{}, err
		}
		res.Notes = fmt.Sprintf("fixed size %s evaluated, not searched", in.FixedNominal)
		return res, nil
	}

	candidates, err := e.catalog.CandidatesFor(in.Material, in.Schedule)
	if err != nil {
		return Result{}, err
	}
	for _, cand := range candidates {
		res, err := e.evaluate(in, tr, cand, flow.MassFlowKgS, rho, budget, operatingKPa)
		if err != nil {
			return Result{}, err
		}
		if res.OilReturnOK && res.WithinBudget {
			return res, nil
		}
	}

	return Result{
		Qualified:            false,
		MassFlowKgS:          flow.MassFlowKgS,
		BudgetK:              budget,
		OilReturnApplies:     tr.oilReturn,
		OperatingPressureKPa: operatingKPa,
		Notes:                "no catalog size satisfies oil return and pressure drop together",
	}, nil
}

// evaluate works out the full state of one candidate size.
func (e *Engine) evaluate(
	in Input,
	tr circuitTraits,
	cand pipes.Candidate,
	massFlowKgS, rho, budgetK, operatingKPa float64,
) (Result, error) {
	idM := cand.IDmm / 1000
	velocity := massFlowKgS / (rho * cand.AreaM2())

	eqLen, err := e.eqlen.EquivalentLength(in.LengthM, in.Fittings, cand)
	if err != nil {
		return Result{}, err
	}

	re := pipes.Reynolds(rho, velocity, idM, e.cfg.ViscosityPaS)
	f := e.cfg.FixedFrictionFactor
	if e.cfg.FrictionModel == config.FrictionBlasius {
		f = pipes.DarcyFrictionFactor(re)
	}
	dropPa := pipes.PressureGradient(f, rho, velocity, idM)*eqLen +
		rho*pipes.Gravity*in.VerticalRiseM
	dropKPa := dropPa / 1000

	penaltyK, err := e.conv.TemperaturePenalty(in.Refrigerant, tr.refTempC(in), dropKPa)
	if err != nil {
		return Result{}, err
	}

	floor := e.cfg.HorizontalOilFloorMS
	if in.Orientation == Vertical {
		floor = e.cfg.VerticalOilFloorMS
	}
	oilOK := !tr.oilReturn || velocity >= floor
	withinBudget := penaltyK <= budgetK

	return Result{
		Qualified:            oilOK && withinBudget,
		Pipe:                 cand,
		MassFlowKgS:          massFlowKgS,
		VelocityMS:           velocity,
		Reynolds:             re,
		PressureDropKPa:      dropKPa,
		TempPenaltyK:         penaltyK,
		BudgetK:              budgetK,
		OilReturnApplies:     tr.oilReturn,
		OilReturnOK:          oilOK,
		WithinBudget:         withinBudget,
		RatingOK:             e.ratings.Check(cand, operatingKPa),
		OperatingPressureKPa: operatingKPa,
		ChargeKg:             cand.VolumeM3(in.LengthM) * rho,
	}, nil
}
