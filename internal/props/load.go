package props

import (
	_ "embed"

	"github.com/ansel1/merry"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
)

//go:embed data/refrigerant_properties.csv
var refrigerantPropertiesCSV []byte

// Load builds the built-in property table from the embedded CSV data.
func Load() (*Table, error) {
	var rows []Row
	if err := gocsv.UnmarshalBytes(refrigerantPropertiesCSV, &rows); err != nil {
		return nil, merry.Append(err, "refrigerant_properties.csv")
	}
	return NewTable(rows)
}

// NewTable groups rows by refrigerant and validates the invariants every
// lookup relies on: at least two rows per refrigerant, strictly increasing
// temperatures, strictly increasing saturation pressures. All violations
// are reported together so a bad table can be fixed in one pass.
func NewTable(rows []Row) (*Table, error) {
	data := map[string]*refrigerantData{}
	for _, row := range rows {
		d, ok := data[row.Refrigerant]
		if !ok {
			d = &refrigerantData{}
			data[row.Refrigerant] = d
		}
		d.rows = append(d.rows, row)
		d.temps = append(d.temps, row.TempC)
		d.pressures = append(d.pressures, row.PressureKPa)
	}

	var errs *multierror.Error
	for name, d := range data {
		if len(d.rows) < 2 {
			errs = multierror.Append(errs,
				merry.Errorf("%s: need at least 2 rows, got %d", name, len(d.rows)))
			continue
		}
		for i := 1; i < len(d.rows); i++ {
			if d.temps[i] <= d.temps[i-1] {
				errs = multierror.Append(errs,
					merry.Errorf("%s: temperatures not strictly increasing at %.2f C", name, d.temps[i]))
			}
			if d.pressures[i] <= d.pressures[i-1] {
				errs = multierror.Append(errs,
					merry.Errorf("%s: saturation pressure not monotonic at %.2f C", name, d.temps[i]))
			}
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Table{data: data}, nil
}
