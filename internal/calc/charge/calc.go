// Package charge computes the internal volume of a sized pipe segment and
// the refrigerant mass it holds.
package charge

import (
	"github.com/ansel1/merry"

	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

type Input struct {
	Material    string  `json:"material"`
	Schedule    string  `json:"schedule"`
	Nominal     string  `json:"nominal"`
	LengthM     float64 `json:"length_m"`
	Refrigerant string  `json:"refrigerant"`
	TempC       float64 `json:"temp_c"`
	Phase       string  `json:"phase"` // "liquid" or "vapor"
}

type Result struct {
	VolumeL     float64 `json:"volume_l"`
	DensityKgM3 float64 `json:"density_kg_m3"`
	MassKg      float64 `json:"mass_kg"`
}

type Calculator struct {
	table   *props.Table
	catalog *pipes.Catalog
}

func New(table *props.Table, catalog *pipes.Catalog) *Calculator {
	return &Calculator{table: table, catalog: catalog}
}

func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.LengthM <= 0 {
		return Result{}, merry.Errorf("length %v m: must be positive", in.LengthM)
	}
	phase, err := parsePhase(in.Phase)
	if err != nil {
		return Result{}, err
	}
	pipe, err := c.catalog.Find(in.Material, in.Schedule, in.Nominal)
	if err != nil {
		return Result{}, err
	}
	row, err := c.table.Lookup(in.Refrigerant, in.TempC)
	if err != nil {
		return Result{}, err
	}

	volume := pipe.VolumeM3(in.LengthM)
	density := row.Density(phase)
	return Result{
		VolumeL:     volume * 1000,
		DensityKgM3: density,
		MassKg:      volume * density,
	}, nil
}

func parsePhase(s string) (props.Phase, error) {
	switch s {
	case "liquid":
		return props.Liquid, nil
	case "vapor":
		return props.Vapor, nil
	default:
		return 0, merry.Errorf("phase %q: want \"liquid\" or \"vapor\"", s)
	}
}
