package sizing

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"micropipe/internal/calc/massflow"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	table, err := props.Load()
	require.NoError(t, err)
	catalog, err := pipes.LoadCatalog()
	require.NoError(t, err)
	eqlen, err := pipes.LoadEquivalentLengths(catalog)
	require.NoError(t, err)
	ratings, err := pipes.LoadRatings()
	require.NoError(t, err)
	return New(table, props.NewConverter(table), catalog, eqlen, ratings, config.DefaultSizing())
}

func drySuctionScenario() Input {
	return Input{
		Circuit:     DrySuction,
		Orientation: Horizontal,
		Refrigerant: "R404A",
		EvapTempC:   -10,
		CondTempC:   40,
		SuperheatK:  5,
		LoadKW:      10,
		LengthM:     15,
		Fittings: []pipes.FittingEntry{
			{Type: "Long Radius Elbow", Count: 2},
		},
	}
}

func TestDrySuctionScenario(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.Calculate(drySuctionScenario())
	require.NoError(t, err)

	require.True(t, res.Qualified, "expected a qualifying size, got %+v", res)
	assert.GreaterOrEqual(t, res.VelocityMS, 4.0, "oil return floor")
	assert.LessOrEqual(t, res.TempPenaltyK, 1.0, "penalty budget")
	assert.True(t, res.OilReturnApplies)
	assert.True(t, res.RatingOK)
	assert.Greater(t, res.ChargeKg, 0.0)

	// Mass flow must agree with the enthalpy bookkeeping done standalone.
	table, err := props.Load()
	require.NoError(t, err)
	flow, err := massflow.New(table).Calculate(massflow.Input{
		Refrigerant: "R404A", LoadKW: 10, EvapTempC: -10, CondTempC: 40, SuperheatK: 5,
	})
	require.NoError(t, err)
	assert.InDelta(t, flow.MassFlowKgS, res.MassFlowKgS, 1e-12)
}

func TestSelectsSmallestQualifyingSize(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.Calculate(drySuctionScenario())
	require.NoError(t, err)
	require.True(t, res.Qualified)

	// Every smaller catalog size must fail at least one constraint.
	catalog, err := pipes.LoadCatalog()
	require.NoError(t, err)
	group, err := catalog.CandidatesFor("Copper", "ACR")
	require.NoError(t, err)

	for _, cand := range group {
		if cand.IDmm >= res.Pipe.IDmm {
			break
		}
		in := drySuctionScenario()
		in.FixedNominal = cand.Nominal
		fixed, err := engine.Calculate(in)
		require.NoError(t, err)
		assert.False(t, fixed.OilReturnOK && fixed.WithinBudget,
			"size %s below the selection should not qualify", cand.Nominal)
	}
}

func TestBudgetRelaxationNeverGrowsDiameter(t *testing.T) {
	engine := newEngine(t)

	var lastID float64
	for _, budget := range []float64{0.3, 0.6, 1.0, 2.0, 4.0} {
		in := drySuctionScenario()
		in.MaxTempPenaltyK = budget
		res, err := engine.Calculate(in)
		require.NoError(t, err)
		require.True(t, res.Qualified, "budget %.1f K", budget)
		if lastID > 0 {
			assert.LessOrEqual(t, res.Pipe.IDmm, lastID,
				"relaxing the budget to %.1f K must not grow the pipe", budget)
		}
		lastID = res.Pipe.IDmm
	}
}

func TestManualOverrideReportedNotFixed(t *testing.T) {
	engine := newEngine(t)

	// 4-1/8 copper is far too big for 10 kW of suction vapor: the velocity
	// lands well under the oil floor. The override must come back as given,
	// flagged, never upsized or replaced.
	in := drySuctionScenario()
	in.FixedNominal = "4-1/8"
	res, err := engine.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, "4-1/8", res.Pipe.Nominal)
	assert.Less(t, res.VelocityMS, 4.0)
	assert.False(t, res.OilReturnOK)
	assert.False(t, res.Qualified)
	assert.True(t, res.WithinBudget, "a huge pipe drops almost no pressure")
}

func TestNoQualifyingSizeIsDataNotError(t *testing.T) {
	engine := newEngine(t)

	// An absurdly tight budget kills every size small enough to return oil.
	in := drySuctionScenario()
	in.MaxTempPenaltyK = 0.001
	res, err := engine.Calculate(in)
	require.NoError(t, err)

	assert.False(t, res.Qualified)
	assert.Empty(t, res.Pipe.Nominal)
	assert.Greater(t, res.MassFlowKgS, 0.0)
	assert.NotEmpty(t, res.Notes)
}

func TestVerticalFloorIsHigher(t *testing.T) {
	engine := newEngine(t)

	in := drySuctionScenario()
	res, err := engine.Calculate(in)
	require.NoError(t, err)
	require.True(t, res.Qualified)

	in.Orientation = Vertical
	vres, err := engine.Calculate(in)
	require.NoError(t, err)
	require.True(t, vres.Qualified)

	assert.GreaterOrEqual(t, vres.VelocityMS, 7.0)
	assert.LessOrEqual(t, vres.Pipe.IDmm, res.Pipe.IDmm,
		"a vertical riser needs at least as much velocity, so no bigger pipe")
}

func TestLiquidLineExemptFromOilFloor(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.Calculate(Input{
		Circuit:     Liquid,
		Orientation: Horizontal,
		Refrigerant: "R404A",
		EvapTempC:   -10,
		CondTempC:   40,
		SuperheatK:  5,
		SubcoolingK: 3,
		LoadKW:      10,
		LengthM:     15,
	})
	require.NoError(t, err)

	require.True(t, res.Qualified)
	assert.False(t, res.OilReturnApplies)
	assert.True(t, res.OilReturnOK)
	assert.Less(t, res.VelocityMS, 4.0, "liquid moves slowly and that is fine")
}

func TestStaticHeadAddsToRiserDrop(t *testing.T) {
	engine := newEngine(t)

	flat := drySuctionScenario()
	flat.FixedNominal = "1-1/8"
	flatRes, err := engine.Calculate(flat)
	require.NoError(t, err)

	risen := drySuctionScenario()
	risen.FixedNominal = "1-1/8"
	risen.VerticalRiseM = 5
	risenRes, err := engine.Calculate(risen)
	require.NoError(t, err)

	assert.Greater(t, risenRes.PressureDropKPa, flatRes.PressureDropKPa)
}

func TestUnknownCircuitType(t *testing.T) {
	engine := newEngine(t)

	in := drySuctionScenario()
	in.Circuit = "Hot Gas Defrost"
	_, err := engine.Calculate(in)
	assert.True(t, merry.Is(err, ErrUnknownCircuitType), "got %v", err)
}

func TestUnknownFittingSurfaces(t *testing.T) {
	engine := newEngine(t)

	in := drySuctionScenario()
	in.Fittings = []pipes.FittingEntry{{Type: "Perpetuum Mobile", Count: 1}}
	_, err := engine.Calculate(in)
	assert.True(t, merry.Is(err, pipes.ErrUnknownFitting), "got %v", err)
}

func TestSteelLineForCO2(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.Calculate(Input{
		Circuit:     DrySuction,
		Orientation: Horizontal,
		Refrigerant: "R744",
		EvapTempC:   -10,
		CondTempC:   10,
		SuperheatK:  5,
		LoadKW:      25,
		LengthM:     20,
		Material:    "Steel",
		Schedule:    "SCH40",
	})
	require.NoError(t, err)
	require.True(t, res.Qualified)
	assert.Equal(t, "Steel", res.Pipe.Material)
	assert.True(t, res.RatingOK, "SCH40 steel holds CO2 condensing pressure at 10 C")
}
