package massflow

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"micropipe/internal/props"
)

func loadCalc(t *testing.T) (*Calculator, *props.Table) {
	t.Helper()
	table, err := props.Load()
	require.NoError(t, err)
	return New(table), table
}

func TestCalculateAgainstTableValues(t *testing.T) {
	calc, table := loadCalc(t)

	res, err := calc.Calculate(Input{
		Refrigerant: "R404A",
		LoadKW:      10,
		EvapTempC:   -10,
		CondTempC:   40,
		SuperheatK:  5,
	})
	require.NoError(t, err)

	evap, err := table.Lookup("R404A", -10)
	require.NoError(t, err)
	cond, err := table.Lookup("R404A", 40)
	require.NoError(t, err)

	wantVapor := evap.HVaporKJKg + evap.CpVaporKJKgK*5
	assert.InDelta(t, wantVapor, res.VaporKJKg, 1e-9)
	assert.InDelta(t, cond.HLiquidKJKg, res.LiquidKJKg, 1e-9)
	assert.InDelta(t, 10/(wantVapor-cond.HLiquidKJKg), res.MassFlowKgS, 1e-12)
	assert.Greater(t, res.MassFlowKgS, 0.0)
}

func TestSubcoolingLowersLiquidEnthalpy(t *testing.T) {
	calc, _ := loadCalc(t)

	plain, err := calc.Calculate(Input{Refrigerant: "R404A", LoadKW: 10, EvapTempC: -10, CondTempC: 40, SuperheatK: 5})
	require.NoError(t, err)
	subcooled, err := calc.Calculate(Input{Refrigerant: "R404A", LoadKW: 10, EvapTempC: -10, CondTempC: 40, SuperheatK: 5, SubcoolingK: 5})
	require.NoError(t, err)

	assert.Less(t, subcooled.LiquidKJKg, plain.LiquidKJKg)
	assert.Less(t, subcooled.MassFlowKgS, plain.MassFlowKgS,
		"subcooling increases the enthalpy span and lowers required flow")
}

func TestEqualEvapAndCondTemperatures(t *testing.T) {
	calc, _ := loadCalc(t)

	_, err := calc.Calculate(Input{
		Refrigerant: "R134a",
		LoadKW:      5,
		EvapTempC:   20,
		CondTempC:   20,
	})
	assert.True(t, merry.Is(err, ErrNonPositiveEnthalpyDelta), "got %v", err)
}

func TestOutOfRangePropagates(t *testing.T) {
	calc, _ := loadCalc(t)

	_, err := calc.Calculate(Input{
		Refrigerant: "R134a",
		LoadKW:      5,
		EvapTempC:   -80,
		CondTempC:   40,
	})
	assert.True(t, merry.Is(err, props.ErrOutOfRange), "got %v", err)
}
