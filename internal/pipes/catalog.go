// Package pipes carries the static reference data the sizing search scans:
// the standard pipe catalog, fitting equivalent lengths, pressure ratings
// and the friction relations used for line pressure drop.
package pipes

import (
	_ "embed"
	"math"
	"sort"

	"github.com/ansel1/merry"
	"github.com/gocarina/gocsv"
)

var (
	ErrUnknownFitting        = merry.New("unknown fitting type or size")
	ErrUnknownMaterialOrSize = merry.New("unknown pipe material, schedule or size")
)

// Candidate is one standard pipe size from the catalog.
type Candidate struct {
	Material string  `csv:"material" json:"material"`
	Schedule string  `csv:"schedule" json:"schedule"`
	Nominal  string  `csv:"nominal" json:"nominal"`
	IDmm     float64 `csv:"id_mm" json:"id_mm"`
}

// AreaM2 is the internal cross-sectional flow area.
func (c Candidate) AreaM2() float64 {
	r := c.IDmm / 1000 / 2
	return math.Pi * r * r
}

// VolumeM3 is the internal volume of lengthM of this pipe.
func (c Candidate) VolumeM3(lengthM float64) float64 {
	return c.AreaM2() * lengthM
}

//go:embed data/pipe_catalog.csv
var pipeCatalogCSV []byte

// Catalog holds the standard sizes grouped by material and schedule,
// ascending by internal diameter. Read-only after load.
type Catalog struct {
	byLine map[string][]Candidate
}

func lineKey(material, schedule string) string { return material + "/" + schedule }

// LoadCatalog builds the catalog from the embedded size table.
func LoadCatalog() (*Catalog, error) {
	var rows []Candidate
	if err := gocsv.UnmarshalBytes(pipeCatalogCSV, &rows); err != nil {
		return nil, merry.Append(err, "pipe_catalog.csv")
	}
	return NewCatalog(rows), nil
}

// NewCatalog groups candidates by material/schedule and orders each group
// by ascending internal diameter, the order the sizing search walks.
func NewCatalog(rows []Candidate) *Catalog {
	byLine := map[string][]Candidate{}
	for _, row := range rows {
		k := lineKey(row.Material, row.Schedule)
		byLine[k] = append(byLine[k], row)
	}
	for _, group := range byLine {
		sort.SliceStable(group, func(i, j int) bool { return group[i].IDmm < group[j].IDmm })
	}
	return &Catalog{byLine: byLine}
}

// CandidatesFor returns the ascending size run for a material/schedule.
func (c *Catalog) CandidatesFor(material, schedule string) ([]Candidate, error) {
	group, ok := c.byLine[lineKey(material, schedule)]
	if !ok {
		return nil, merry.Appendf(ErrUnknownMaterialOrSize, "%s %s", material, schedule)
	}
	return group, nil
}

// Find resolves one nominal size within a material/schedule.
func (c *Catalog) Find(material, schedule, nominal string) (Candidate, error) {
	group, err := c.CandidatesFor(material, schedule)
	if err != nil {
		return Candidate{}, err
	}
	for _, cand := range group {
		if cand.Nominal == nominal {
			return cand, nil
		}
	}
	return Candidate{}, merry.Appendf(ErrUnknownMaterialOrSize, "%s %s %s", material, schedule, nominal)
}
