// mpsize sizes a spreadsheet of refrigerant circuits from the command line:
// one circuit per row, same column layout as the web import. Results go to
// stdout, and optionally to a results workbook with -o.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/powerman/structlog"
	"github.com/xuri/excelize/v2"

	"micropipe/internal/calc/importer"
	"micropipe/internal/calc/sizing"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/props"
)

var log = structlog.New()

func main() {
	cfgPath := flag.String("config", "sizing.yaml", "sizing limits file")
	outPath := flag.String("o", "", "write results to an xlsx workbook")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mpsize [-config sizing.yaml] [-o results.xlsx] circuits.xlsx")
		os.Exit(2)
	}

	engine, err := buildEngine(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	results, skipped, err := sizeWorkbook(engine, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var totalCharge float64
	for i, res := range results {
		printResult(i+2, res)
		if res.Qualified {
			totalCharge += res.ChargeKg
		}
	}
	for _, s := range skipped {
		log.PrintErr("row skipped", "row", s.Row, "reason", s.Error)
	}
	fmt.Printf("\n%d circuits sized, %d skipped, total charge %.2f kg\n",
		len(results), len(skipped), totalCharge)

	if *outPath != "" {
		if err := writeWorkbook(*outPath, results); err != nil {
			log.Fatal(err)
		}
		log.Info("results written", "path", *outPath)
	}
}

func buildEngine(cfgPath string) (*sizing.Engine, error) {
	table, err := props.Load()
	if err != nil {
		return nil, err
	}
	catalog, err := pipes.LoadCatalog()
	if err != nil {
		return nil, err
	}
	ratings, err := pipes.LoadRatings()
	if err != nil {
		return nil, err
	}
	eqlen, err := pipes.LoadEquivalentLengths(catalog)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadSizing(cfgPath)
	if err != nil {
		return nil, err
	}
	return sizing.New(table, props.NewConverter(table), catalog, eqlen, ratings, cfg), nil
}

func sizeWorkbook(engine *sizing.Engine, path string) ([]sizing.Result, []importer.RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%s: no circuit rows", path)
	}

	var results []sizing.Result
	var skipped []importer.RowError
	for i := 1; i < len(rows); i++ {
		input, err := importer.ParseRow(rows[i])
		if err != nil {
			skipped = append(skipped, importer.RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		res, err := engine.Calculate(input)
		if err != nil {
			skipped = append(skipped, importer.RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		results = append(results, res)
	}
	return results, skipped, nil
}

func printResult(row int, res sizing.Result) {
	if !res.Qualified {
		fmt.Printf("row %d: no qualifying size (%s)\n", row, res.Notes)
		return
	}
	fmt.Printf("row %d: %s %s %s  v=%.2f m/s  dP=%.1f kPa  penalty=%.2f/%.2f K  charge=%.2f kg\n",
		row, res.Pipe.Material, res.Pipe.Schedule, res.Pipe.Nominal,
		res.VelocityMS, res.PressureDropKPa, res.TempPenaltyK, res.BudgetK, res.ChargeKg)
}

func writeWorkbook(path string, results []sizing.Result) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []string{"Qualified", "Material", "Schedule", "Size", "ID mm",
		"Velocity m/s", "Pressure drop kPa", "Penalty K", "Budget K", "Charge kg", "Notes"}
	for col, name := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for i, res := range results {
		values := []any{res.Qualified, res.Pipe.Material, res.Pipe.Schedule,
			res.Pipe.Nominal, res.Pipe.IDmm, res.VelocityMS, res.PressureDropKPa,
			res.TempPenaltyK, res.BudgetK, res.ChargeKg, res.Notes}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f.SaveAs(path)
}
