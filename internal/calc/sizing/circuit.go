package sizing

import (
	"github.com/ansel1/merry"

	"micropipe/internal/props"
)

var ErrUnknownCircuitType = merry.New("unknown circuit type")

// CircuitType names the line being sized.
type CircuitType string

const (
	DrySuction     CircuitType = "Dry Suction"
	WetSuction     CircuitType = "Wet Suction"
	Discharge      CircuitType = "Discharge"
	Liquid         CircuitType = "Liquid"
	CondenserDrain CircuitType = "Condenser Drain"
	PumpedLiquid   CircuitType = "Pumped Liquid"
)

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// circuitTraits is the one place a circuit type's behavior lives: which
// density column applies, whether the line carries oil-entraining vapor,
// and which saturation temperature the line state is evaluated at. Adding
// a circuit type is a row here, not scattered conditionals.
type circuitTraits struct {
	phase     props.Phase
	oilReturn bool
	refTempC  func(in Input) float64
}

var circuitTable = map[CircuitType]circuitTraits{
	DrySuction: {
		phase:     props.Vapor,
		oilReturn: true,
		refTempC:  func(in Input) float64 { return in.EvapTempC },
	},
	WetSuction: {
		phase:     props.Vapor,
		oilReturn: true,
		refTempC:  func(in Input) float64 { return in.EvapTempC },
	},
	Discharge: {
		phase:     props.Vapor,
		oilReturn: true,
		refTempC: func(in Input) float64 {
			if in.DischargeTempC != nil {
				return *in.DischargeTempC
			}
			return in.CondTempC
		},
	},
	Liquid: {
		phase:     props.Liquid,
		oilReturn: false,
		refTempC:  func(in Input) float64 { return in.CondTempC - in.SubcoolingK },
	},
	CondenserDrain: {
		phase:     props.Liquid,
		oilReturn: false,
		refTempC:  func(in Input) float64 { return in.CondTempC },
	},
	PumpedLiquid: {
		phase:     props.Liquid,
		oilReturn: false,
		refTempC:  func(in Input) float64 { return in.EvapTempC },
	},
}

func traitsFor(ct CircuitType) (circuitTraits, error) {
	tr, ok := circuitTable[ct]
	if !ok {
		return circuitTraits{}, merry.Appendf(ErrUnknownCircuitType, "%q", ct)
	}
	return tr, nil
}
