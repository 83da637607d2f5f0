package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"micropipe/internal/calc/sizing"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

func newEngine(t *testing.T) *sizing.Engine {
	t.Helper()
	table, err := props.Load()
	require.NoError(t, err)
	catalog, err := pipes.LoadCatalog()
	require.NoError(t, err)
	eqlen, err := pipes.LoadEquivalentLengths(catalog)
	require.NoError(t, err)
	ratings, err := pipes.LoadRatings()
	require.NoError(t, err)
	return sizing.New(table, props.NewConverter(table), catalog, eqlen, ratings, config.DefaultSizing())
}

func TestBatchTotalsCharge(t *testing.T) {
	engine := newEngine(t)

	suction := sizing.Input{
		Circuit: sizing.DrySuction, Orientation: sizing.Horizontal,
		Refrigerant: "R404A", EvapTempC: -10, CondTempC: 40, SuperheatK: 5,
		LoadKW: 10, LengthM: 15,
	}
	liquid := sizing.Input{
		Circuit: sizing.Liquid, Orientation: sizing.Horizontal,
		Refrigerant: "R404A", EvapTempC: -10, CondTempC: 40, SuperheatK: 5,
		SubcoolingK: 3, LoadKW: 10, LengthM: 15,
	}

	res, err := Calculate(engine, Input{Items: []sizing.Input{suction, liquid}})
	require.NoError(t, err)

	require.Len(t, res.Results, 2)
	assert.Equal(t, 0, res.Unsized)
	assert.InDelta(t, res.Results[0].ChargeKg+res.Results[1].ChargeKg, res.TotalChargeKg, 1e-12)
	assert.Greater(t, res.Results[1].ChargeKg, res.Results[0].ChargeKg,
		"the liquid line dominates the charge")
}

func TestBatchCountsUnsized(t *testing.T) {
	engine := newEngine(t)

	impossible := sizing.Input{
		Circuit: sizing.DrySuction, Orientation: sizing.Horizontal,
		Refrigerant: "R404A", EvapTempC: -10, CondTempC: 40, SuperheatK: 5,
		LoadKW: 10, LengthM: 15, MaxTempPenaltyK: 0.001,
	}
	res, err := Calculate(engine, Input{Items: []sizing.Input{impossible}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Unsized)
	assert.Zero(t, res.TotalChargeKg)
}

func TestBatchEmpty(t *testing.T) {
	engine := newEngine(t)
	_, err := Calculate(engine, Input{})
	assert.Error(t, err)
}
