package pipes

import (
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAscendingOrder(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	for _, line := range [][2]string{{"Copper", "ACR"}, {"Steel", "SCH40"}} {
		group, err := catalog.CandidatesFor(line[0], line[1])
		require.NoError(t, err)
		require.NotEmpty(t, group)
		for i := 1; i < len(group); i++ {
			assert.Greater(t, group[i].IDmm, group[i-1].IDmm,
				"%s %s out of order at %s", line[0], line[1], group[i].Nominal)
		}
	}
}

func TestCatalogFind(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	cand, err := catalog.Find("Copper", "ACR", "1-1/8")
	require.NoError(t, err)
	assert.Equal(t, 26.0, cand.IDmm)

	_, err = catalog.Find("Copper", "ACR", "17/32")
	assert.True(t, merry.Is(err, ErrUnknownMaterialOrSize), "got %v", err)

	_, err = catalog.CandidatesFor("Titanium", "SCH40")
	assert.True(t, merry.Is(err, ErrUnknownMaterialOrSize), "got %v", err)
}

func TestCandidateGeometry(t *testing.T) {
	c := Candidate{IDmm: 26.0}
	wantArea := math.Pi * 0.013 * 0.013
	assert.InDelta(t, wantArea, c.AreaM2(), 1e-12)
	assert.InDelta(t, wantArea*15, c.VolumeM3(15), 1e-12)
}

func TestEquivalentLength(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	calc, err := LoadEquivalentLengths(catalog)
	require.NoError(t, err)

	pipe, err := catalog.Find("Copper", "ACR", "1-1/8")
	require.NoError(t, err)

	// Two long-radius elbows at 30 diameters each: 2 * 30 * 0.026 m.
	total, err := calc.EquivalentLength(15, []FittingEntry{
		{Type: "Long Radius Elbow", Count: 2},
	}, pipe)
	require.NoError(t, err)
	assert.InDelta(t, 15+2*30*0.026, total, 1e-9)
}

func TestEquivalentLengthUnknownFitting(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	calc, err := LoadEquivalentLengths(catalog)
	require.NoError(t, err)

	pipe, err := catalog.Find("Copper", "ACR", "7/8")
	require.NoError(t, err)

	_, err = calc.EquivalentLength(10, []FittingEntry{
		{Type: "Flux Capacitor", Count: 1},
	}, pipe)
	assert.True(t, merry.Is(err, ErrUnknownFitting), "got %v", err)

	_, err = calc.EquivalentLength(10, []FittingEntry{
		{Type: "Gate Valve", Nominal: "9-9/9", Count: 1},
	}, pipe)
	assert.True(t, merry.Is(err, ErrUnknownFitting), "got %v", err)
}

func TestEquivalentLengthExplicitFittingSize(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	calc := NewEquivalentLengthCalculator(catalog, map[string]float64{"Reducer": 10})

	pipe, err := catalog.Find("Copper", "ACR", "1-1/8")
	require.NoError(t, err)

	// A reducer specified at the smaller 7/8 size uses that size's diameter.
	total, err := calc.EquivalentLength(0, []FittingEntry{
		{Type: "Reducer", Nominal: "7/8", Count: 1},
	}, pipe)
	require.NoError(t, err)
	assert.InDelta(t, 10*0.0199, total, 1e-9)
}

func TestRatingCheck(t *testing.T) {
	ratings, err := LoadRatings()
	require.NoError(t, err)

	pipe := Candidate{Material: "Copper", Schedule: "ACR", Nominal: "1-1/8"}
	assert.True(t, ratings.Check(pipe, 1862))
	assert.False(t, ratings.Check(pipe, 2761))

	// A combination absent from the table fails closed.
	unknown := Candidate{Material: "Copper", Schedule: "ACR", Nominal: "12-7/8"}
	assert.False(t, ratings.Check(unknown, 100))

	_, err = ratings.MaxPressure("Copper", "ACR", "12-7/8")
	assert.True(t, merry.Is(err, ErrUnknownMaterialOrSize), "got %v", err)
}

func TestFrictionFactorRegimes(t *testing.T) {
	assert.InDelta(t, 64.0/1000, DarcyFrictionFactor(1000), 1e-12)

	f := DarcyFrictionFactor(100000)
	assert.InDelta(t, 0.3164*math.Pow(100000, -0.25), f, 1e-12)
	assert.Less(t, f, 0.05)
}

func TestPressureGradientQuadraticInVelocity(t *testing.T) {
	g1 := PressureGradient(0.02, 20, 4, 0.026)
	g2 := PressureGradient(0.02, 20, 8, 0.026)
	assert.InDelta(t, 4.0, g2/g1, 1e-9)
}
