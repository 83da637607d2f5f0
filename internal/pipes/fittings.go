package pipes

import (
	_ "embed"

	"github.com/ansel1/merry"
	"github.com/gocarina/gocsv"
)

// FittingEntry is one line of a circuit's fitting inventory. Nominal may be
// left empty to mean "same size as the pipe being evaluated".
type FittingEntry struct {
	Type    string `json:"type"`
	Nominal string `json:"nominal,omitempty"`
	Count   int    `json:"count"`
}

type fittingFactor struct {
	Type                string  `csv:"fitting_type"`
	MultiplierDiameters float64 `csv:"multiplier_diameters"`
}

//go:embed data/fitting_factors.csv
var fittingFactorsCSV []byte

// EquivalentLengthCalculator converts a fitting inventory into the straight
// pipe length producing the same friction loss. The per-fitting length is
// the tabulated diameter multiplier times the internal diameter of the
// fitting's nominal size, so the reference table is effectively keyed by
// (fitting type, nominal size).
type EquivalentLengthCalculator struct {
	catalog *Catalog
	factors map[string]float64
}

// LoadEquivalentLengths builds the calculator from the embedded factor table.
func LoadEquivalentLengths(catalog *Catalog) (*EquivalentLengthCalculator, error) {
	var rows []fittingFactor
	if err := gocsv.UnmarshalBytes(fittingFactorsCSV, &rows); err != nil {
		return nil, merry.Append(err, "fitting_factors.csv")
	}
	factors := make(map[string]float64, len(rows))
	for _, row := range rows {
		factors[row.Type] = row.MultiplierDiameters
	}
	return &EquivalentLengthCalculator{catalog: catalog, factors: factors}, nil
}

// NewEquivalentLengthCalculator wires a synthetic factor table, for tests.
func NewEquivalentLengthCalculator(catalog *Catalog, factors map[string]float64) *EquivalentLengthCalculator {
	return &EquivalentLengthCalculator{catalog: catalog, factors: factors}
}

// EquivalentLength returns straightM plus the summed equivalent lengths of
// the inventory at the evaluated pipe size. An unknown fitting type or an
// unknown nominal size is an error, never skipped: a silently dropped
// fitting understates pressure drop and undersizes the line.
func (c *EquivalentLengthCalculator) EquivalentLength(straightM float64, fittings []FittingEntry, pipe Candidate) (float64, error) {
	total := straightM
	for _, f := range fittings {
		mult, ok := c.factors[f.Type]
		if !ok {
			return 0, merry.Appendf(ErrUnknownFitting, "type %q", f.Type)
		}
		idMM := pipe.IDmm
		if f.Nominal != "" && f.Nominal != pipe.Nominal {
			sized, err := c.catalog.Find(pipe.Material, pipe.Schedule, f.Nominal)
			if err != nil {
				return 0, merry.Appendf(ErrUnknownFitting, "type %q size %q", f.Type, f.Nominal)
			}
			idMM = sized.IDmm
		}
		total += float64(f.Count) * mult * idMM / 1000
	}
	return total, nil
}
