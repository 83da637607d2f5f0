package doubleriser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

func newCalc(t *testing.T) *Calculator {
	t.Helper()
	table, err := props.Load()
	require.NoError(t, err)
	catalog, err := pipes.LoadCatalog()
	require.NoError(t, err)
	eqlen, err := pipes.LoadEquivalentLengths(catalog)
	require.NoError(t, err)
	return New(table, props.NewConverter(table), catalog, eqlen, config.DefaultSizing())
}

func TestDoubleRiserPair(t *testing.T) {
	calc := newCalc(t)

	res, err := calc.Calculate(Input{
		Refrigerant:    "R404A",
		EvapTempC:      -10,
		CondTempC:      40,
		SuperheatK:     5,
		LoadKW:         40,
		MinLoadPercent: 30,
		RiserHeightM:   4,
	})
	require.NoError(t, err)

	require.True(t, res.Qualified, "expected a riser pair, got %+v", res)
	assert.GreaterOrEqual(t, res.MinLoadVelocity, 7.0,
		"small riser alone must hold oil at part load")
	assert.GreaterOrEqual(t, res.FullLoadVelocity, 7.0,
		"the pair must hold oil at full load")
	assert.LessOrEqual(t, res.TempPenaltyK, 1.0)
	assert.GreaterOrEqual(t, res.LargeRiser.IDmm, res.SmallRiser.IDmm)
	assert.InDelta(t, res.MassFlowFullKgS*0.3, res.MassFlowMinKgS, 1e-12)
}

func TestDoubleRiserNoPairIsData(t *testing.T) {
	calc := newCalc(t)

	// A tiny part load fraction on a small plant cannot keep 7 m/s even in
	// the smallest tube.
	res, err := calc.Calculate(Input{
		Refrigerant:    "R404A",
		EvapTempC:      -10,
		CondTempC:      40,
		SuperheatK:     5,
		LoadKW:         2,
		MinLoadPercent: 5,
		RiserHeightM:   4,
	})
	require.NoError(t, err)
	assert.False(t, res.Qualified)
	assert.NotEmpty(t, res.Notes)
}
