// Package report renders sizing results as a PDF datasheet or an XLSX
// export for further work in a spreadsheet.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"micropipe/internal/calc/sizing"
)

type Input struct {
	Project     string          `json:"project"`
	Author      string          `json:"author"`
	Refrigerant string          `json:"refrigerant"`
	Results     []sizing.Result `json:"results"`
}

type Handler struct{}

// GeneratePDF writes a one-page sizing datasheet.
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Project == "" {
		input.Project = "Refrigerant Pipe Sizing"
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Project)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Refrigerant: %s", input.Refrigerant))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	var totalCharge float64
	for i, res := range input.Results {
		for j, cell := range reportRow(i, res) {
			pdf.CellFormat(reportColumns[j].width, 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		totalCharge += res.ChargeKg
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total refrigerant charge: %.2f kg", totalCharge))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// GenerateXLSX writes the same table as a workbook.
func (h *Handler) GenerateXLSX(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for j, col := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		f.SetCellValue(sheet, cell, col.title)
	}
	for i, res := range input.Results {
		for j, value := range reportRow(i, res) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing-report.xlsx\"")
	if err := f.Write(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

var reportColumns = []struct {
	title string
	width float64
}{
	{"#", 8},
	{"Size", 24},
	{"Material", 22},
	{"Qualified", 20},
	{"Velocity m/s", 24},
	{"dP kPa", 20},
	{"Penalty K", 20},
	{"Oil return", 20},
	{"Rating", 18},
	{"Charge kg", 22},
}

func reportRow(i int, res sizing.Result) []string {
	passFail := func(ok bool) string {
		if ok {
			return "pass"
		}
		return "FAIL"
	}
	size := res.Pipe.Nominal
	if size == "" {
		size = "none"
	}
	oil := "n/a"
	if res.OilReturnApplies {
		oil = passFail(res.OilReturnOK)
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		size,
		res.Pipe.Material,
		passFail(res.Qualified),
		fmt.Sprintf("%.2f", res.VelocityMS),
		fmt.Sprintf("%.2f", res.PressureDropKPa),
		fmt.Sprintf("%.3f", res.TempPenaltyK),
		oil,
		passFail(res.RatingOK),
		fmt.Sprintf("%.2f", res.ChargeKg),
	}
}
