package props

import "github.com/ansel1/merry"

// Converter translates between saturation pressure and temperature, and
// between line pressure drops and the saturation-temperature penalty they
// cost. All conversions read the injected table.
type Converter struct {
	table *Table
}

func NewConverter(t *Table) *Converter {
	return &Converter{table: t}
}

// PressureAt returns the saturation pressure (kPa) at tempC.
func (c *Converter) PressureAt(refrigerant string, tempC float64) (float64, error) {
	row, err := c.table.Lookup(refrigerant, tempC)
	if err != nil {
		return 0, err
	}
	return row.PressureKPa, nil
}

// TemperatureAt returns the saturation temperature (C) at pressureKPa. The
// inverse search brackets on the pressure column, which load-time
// validation guarantees is strictly increasing with temperature.
func (c *Converter) TemperatureAt(refrigerant string, pressureKPa float64) (float64, error) {
	d, err := c.table.forRefrigerant(refrigerant)
	if err != nil {
		return 0, err
	}
	lo, hi, w, err := bracket(d.pressures, pressureKPa)
	if err != nil {
		return 0, merry.Appendf(err, "%s: pressure %.1f kPa not in [%.1f, %.1f]",
			refrigerant, pressureKPa, d.pressures[0], d.pressures[len(d.pressures)-1])
	}
	if lo == hi {
		return d.temps[lo], nil
	}
	return d.temps[lo] + w*(d.temps[hi]-d.temps[lo]), nil
}

// TemperaturePenalty converts a pressure drop (kPa) into the equivalent
// saturation-temperature loss (K) at refTempC, using the local slope of the
// saturation curve. This is how line losses are expressed as capacity loss.
func (c *Converter) TemperaturePenalty(refrigerant string, refTempC, dropKPa float64) (float64, error) {
	slope, err := c.slopeAt(refrigerant, refTempC)
	if err != nil {
		return 0, err
	}
	return dropKPa / slope, nil
}

// PressureDropFor is the inverse of TemperaturePenalty: the pressure drop
// (kPa) that costs penaltyK of saturation temperature at refTempC.
func (c *Converter) PressureDropFor(refrigerant string, refTempC, penaltyK float64) (float64, error) {
	slope, err := c.slopeAt(refrigerant, refTempC)
	if err != nil {
		return 0, err
	}
	return penaltyK * slope, nil
}

// slopeAt evaluates dP/dT (kPa/K) from the pair of rows bracketing refTempC.
// At an exact knot the forward difference is used, backward at the top row.
func (c *Converter) slopeAt(refrigerant string, refTempC float64) (float64, error) {
	d, err := c.table.forRefrigerant(refrigerant)
	if err != nil {
		return 0, err
	}
	lo, hi, _, err := bracket(d.temps, refTempC)
	if err != nil {
		return 0, merry.Appendf(err, "%s: reference temperature %.2f C not in [%.2f, %.2f]",
			refrigerant, refTempC, d.temps[0], d.temps[len(d.temps)-1])
	}
	if lo == hi {
		if hi == len(d.temps)-1 {
			lo = hi - 1
		} else {
			hi = lo + 1
		}
	}
	return (d.pressures[hi] - d.pressures[lo]) / (d.temps[hi] - d.temps[lo]), nil
}
