package pipes

import (
	_ "embed"

	"github.com/ansel1/merry"
	"github.com/gocarina/gocsv"
)

type ratingRow struct {
	Material       string  `csv:"material"`
	Schedule       string  `csv:"schedule"`
	Nominal        string  `csv:"nominal"`
	MaxPressureKPa float64 `csv:"max_pressure_kpa"`
}

//go:embed data/pressure_ratings.csv
var pressureRatingsCSV []byte

// RatingTable maps (material, schedule, nominal size) to the rated maximum
// working pressure.
type RatingTable struct {
	maxKPa map[string]float64
}

func ratingKey(material, schedule, nominal string) string {
	return material + "/" + schedule + "/" + nominal
}

// LoadRatings builds the rating table from the embedded data.
func LoadRatings() (*RatingTable, error) {
	var rows []ratingRow
	if err := gocsv.UnmarshalBytes(pressureRatingsCSV, &rows); err != nil {
		return nil, merry.Append(err, "pressure_ratings.csv")
	}
	maxKPa := make(map[string]float64, len(rows))
	for _, row := range rows {
		maxKPa[ratingKey(row.Material, row.Schedule, row.Nominal)] = row.MaxPressureKPa
	}
	return &RatingTable{maxKPa: maxKPa}, nil
}

// NewRatingTable builds a synthetic table, for tests. Keys are
// material/schedule/nominal.
func NewRatingTable(maxKPa map[string]float64) *RatingTable {
	return &RatingTable{maxKPa: maxKPa}
}

// MaxPressure returns the rated maximum for a pipe, or
// ErrUnknownMaterialOrSize when the combination is not tabulated.
func (t *RatingTable) MaxPressure(material, schedule, nominal string) (float64, error) {
	max, ok := t.maxKPa[ratingKey(material, schedule, nominal)]
	if !ok {
		return 0, merry.Appendf(ErrUnknownMaterialOrSize, "no rating for %s %s %s", material, schedule, nominal)
	}
	return max, nil
}

// Check reports whether operatingKPa is within the pipe's rating. A missing
// table entry fails closed: absence of a rating is never "no constraint".
func (t *RatingTable) Check(pipe Candidate, operatingKPa float64) bool {
	max, err := t.MaxPressure(pipe.Material, pipe.Schedule, pipe.Nominal)
	if err != nil {
		return false
	}
	return operatingKPa <= max
}
