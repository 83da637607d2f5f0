// Package batch sizes a whole network of circuits in one call and totals
// the refrigerant charge across the qualified segments.
package batch

import (
	"github.com/ansel1/merry"

	"micropipe/internal/calc/sizing"
)

type Input struct {
	Items []sizing.Input `json:"items"`
}

type Result struct {
	Results       []sizing.Result `json:"results"`
	TotalChargeKg float64         `json:"total_charge_kg"`
	Unsized       int             `json:"unsized"`
}

func Calculate(engine *sizing.Engine, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, merry.New("no circuits")
	}
	out := Result{Results: make([]sizing.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := engine.Calculate(item)
		if err != nil {
			return Result{}, merry.Appendf(err, "circuit %d", i+1)
		}
		if res.Qualified {
			out.TotalChargeKg += res.ChargeKg
		} else {
			out.Unsized++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
