// Package importer sizes circuits uploaded as a spreadsheet: one row per
// circuit, first sheet, header row skipped.
package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"micropipe/internal/calc/sizing"
)

type Handler struct {
	Engine *sizing.Engine
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Count   int             `json:"count"`
	Results []sizing.Result `json:"results"`
	Skipped []RowError      `json:"skipped,omitempty"`
}

// Circuits handles the upload. Rows that cannot be parsed or sized are
// reported back with their row number instead of being dropped silently.
func (h *Handler) Circuits(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := ImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := ParseRow(rows[i])
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		res, err := h.Engine.Calculate(input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// ParseRow maps one sheet row onto a sizing input. Expected columns:
// circuit, orientation, refrigerant, evap C, cond C, superheat K,
// subcooling K, load kW, length m, rise m, material, schedule.
func ParseRow(row []string) (sizing.Input, error) {
	if len(row) < 9 {
		return sizing.Input{}, fmt.Errorf("want at least 9 columns, got %d", len(row))
	}
	in := sizing.Input{
		Circuit:     sizing.CircuitType(row[0]),
		Orientation: sizing.Orientation(row[1]),
		Refrigerant: row[2],
	}
	floatCols := []struct {
		idx  int
		dst  *float64
		name string
	}{
		{3, &in.EvapTempC, "evap"},
		{4, &in.CondTempC, "cond"},
		{5, &in.SuperheatK, "superheat"},
		{6, &in.SubcoolingK, "subcooling"},
		{7, &in.LoadKW, "load"},
		{8, &in.LengthM, "length"},
	}
	for _, c := range floatCols {
		v, err := strconv.ParseFloat(row[c.idx], 64)
		if err != nil {
			return sizing.Input{}, fmt.Errorf("column %s: %q", c.name, row[c.idx])
		}
		*c.dst = v
	}
	if len(row) > 9 && row[9] != "" {
		v, err := strconv.ParseFloat(row[9], 64)
		if err != nil {
			return sizing.Input{}, fmt.Errorf("column rise: %q", row[9])
		}
		in.VerticalRiseM = v
	}
	if len(row) > 10 {
		in.Material = row[10]
	}
	if len(row) > 11 {
		in.Schedule = row[11]
	}
	return in, nil
}
