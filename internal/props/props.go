// Package props holds the saturation property tables the sizing engine is
// built on: temperature-indexed rows per refrigerant, interpolated lookups
// and the pressure/temperature conversions derived from them.
package props

import (
	"github.com/ansel1/merry"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrUnknownRefrigerant = merry.New("unknown refrigerant")
	ErrOutOfRange         = merry.New("value outside tabulated range")
)

// Row is the saturation state of one refrigerant at one temperature.
// Pressure in kPa, enthalpies in kJ/kg, densities in kg/m3, Cp in kJ/(kg K).
type Row struct {
	Refrigerant   string  `csv:"refrigerant" json:"refrigerant"`
	TempC         float64 `csv:"temp_c" json:"temp_c"`
	PressureKPa   float64 `csv:"pressure_kpa" json:"pressure_kpa"`
	HLiquidKJKg   float64 `csv:"h_liquid_kj_kg" json:"h_liquid_kj_kg"`
	HVaporKJKg    float64 `csv:"h_vapor_kj_kg" json:"h_vapor_kj_kg"`
	DensityLiquid float64 `csv:"density_liquid_kg_m3" json:"density_liquid_kg_m3"`
	DensityVapor  float64 `csv:"density_vapor_kg_m3" json:"density_vapor_kg_m3"`
	CpVaporKJKgK  float64 `csv:"cp_vapor_kj_kgk" json:"cp_vapor_kj_kgk"`
}

// Phase selects which density column a lookup feeds into.
type Phase int

const (
	Liquid Phase = iota
	Vapor
)

// Density returns the column of r matching the phase.
func (r Row) Density(p Phase) float64 {
	if p == Vapor {
		return r.DensityVapor
	}
	return r.DensityLiquid
}

type refrigerantData struct {
	rows      []Row
	temps     []float64
	pressures []float64
}

// Table maps refrigerant names to their ordered saturation rows. Read-only
// after construction, safe for concurrent lookups.
type Table struct {
	data map[string]*refrigerantData
}

// Refrigerants lists the loaded refrigerant names in table order.
func (t *Table) Refrigerants() []string {
	names := make([]string, 0, len(t.data))
	for name := range t.data {
		names = append(names, name)
	}
	return names
}

func (t *Table) forRefrigerant(refrigerant string) (*refrigerantData, error) {
	d, ok := t.data[refrigerant]
	if !ok {
		return nil, merry.Appendf(ErrUnknownRefrigerant, "%q", refrigerant)
	}
	return d, nil
}

// Lookup returns the saturation row at tempC, linearly interpolated between
// the bracketing tabulated rows. A temperature matching a tabulated row
// exactly returns that row verbatim. Temperatures outside the tabulated
// range are an error: extrapolated properties are not physically reliable.
func (t *Table) Lookup(refrigerant string, tempC float64) (Row, error) {
	d, err := t.forRefrigerant(refrigerant)
	if err != nil {
		return Row{}, err
	}
	lo, hi, w, err := bracket(d.temps, tempC)
	if err != nil {
		return Row{}, merry.Appendf(err, "%s: temperature %.2f C not in [%.2f, %.2f]",
			refrigerant, tempC, d.temps[0], d.temps[len(d.temps)-1])
	}
	if lo == hi {
		return d.rows[lo], nil
	}
	return lerpRow(d.rows[lo], d.rows[hi], w), nil
}

// TempRange reports the tabulated temperature bounds for a refrigerant.
func (t *Table) TempRange(refrigerant string) (minC, maxC float64, err error) {
	d, err := t.forRefrigerant(refrigerant)
	if err != nil {
		return 0, 0, err
	}
	return d.temps[0], d.temps[len(d.temps)-1], nil
}

// bracket locates x within the strictly increasing axis. On an exact match
// both indices are equal; otherwise lo and hi are the bracketing knots and
// w is the fractional position of x between them.
func bracket(axis []float64, x float64) (lo, hi int, w float64, err error) {
	for i, v := range axis {
		if v == x {
			return i, i, 0, nil
		}
	}
	i := floats.Within(axis, x)
	if i < 0 {
		return 0, 0, 0, ErrOutOfRange.Here()
	}
	w = (x - axis[i]) / (axis[i+1] - axis[i])
	return i, i + 1, w, nil
}

// lerpRow interpolates every property with the same fractional weight so
// the synthetic row stays internally consistent.
func lerpRow(lo, hi Row, w float64) Row {
	f := func(a, b float64) float64 { return a + w*(b-a) }
	return Row{
		Refrigerant:   lo.Refrigerant,
		TempC:         f(lo.TempC, hi.TempC),
		PressureKPa:   f(lo.PressureKPa, hi.PressureKPa),
		HLiquidKJKg:   f(lo.HLiquidKJKg, hi.HLiquidKJKg),
		HVaporKJKg:    f(lo.HVaporKJKg, hi.HVaporKJKg),
		DensityLiquid: f(lo.DensityLiquid, hi.DensityLiquid),
		DensityVapor:  f(lo.DensityVapor, hi.DensityVapor),
		CpVaporKJKgK:  f(lo.CpVaporKJKgK, hi.CpVaporKJKgK),
	}
}
