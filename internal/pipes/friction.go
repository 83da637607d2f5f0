package pipes

import "math"

// Flow below this Reynolds number is treated as laminar.
const TransitionReynolds = 2000

// Gravity for static head on risers, m/s2.
const Gravity = 9.81

// Reynolds returns the Reynolds number for flow of a fluid with density rho
// (kg/m3) and dynamic viscosity (Pa s) at velocity (m/s) in a pipe of
// internal diameter idM (m).
func Reynolds(rho, velocity, idM, viscosityPaS float64) float64 {
	return rho * velocity * idM / viscosityPaS
}

// DarcyFrictionFactor returns the Darcy friction factor: 64/Re for laminar
// flow, the Blasius approximation for turbulent flow. Refrigerant lines at
// design velocities are turbulent in practice.
func DarcyFrictionFactor(re float64) float64 {
	if re < TransitionReynolds {
		return 64 / re
	}
	return 0.3164 * math.Pow(re, -0.25)
}

// PressureGradient returns the Darcy-Weisbach friction loss per metre of
// pipe, Pa/m.
func PressureGradient(frictionFactor, rho, velocity, idM float64) float64 {
	return frictionFactor * rho * velocity * velocity / (2 * idM)
}
