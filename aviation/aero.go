// aviation/aero.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	gomath "math"
)

// Unit conversions and physical constants.
const (
	FeetToMeters        = 0.3048
	MetersToNM          = 1. / 1852.
	KnotsToMPS          = 0.514444
	GravityMPS2         = 9.80665
	SeaLevelPressurePa  = 101325.0
	SeaLevelDensityKgM3 = 1.225
	SeaLevelTempK       = 288.15
)

// Atmos returns the ISA air density [kg/m^3] and pressure [Pa] at the
// given geometric altitude in meters. Covers the troposphere and the
// lower isothermal stratosphere, which is all a terminal-area turn
// radius calculation ever needs.
func Atmos(altM float64) (rho, p float64) {
	const (
		lapseRate  = 0.0065   // K/m
		gasConstR  = 287.0529 // J/(kg K)
		tropopause = 11000.0  // m
		tropoTempK = 216.65
	)

	if altM <= tropopause {
		t := SeaLevelTempK - lapseRate*altM
		p = SeaLevelPressurePa * gomath.Pow(t/SeaLevelTempK, GravityMPS2/(lapseRate*gasConstR))
		rho = p / (gasConstR * t)
	} else {
		pTrop := SeaLevelPressurePa * gomath.Pow(tropoTempK/SeaLevelTempK, GravityMPS2/(lapseRate*gasConstR))
		p = pTrop * gomath.Exp(-GravityMPS2*(altM-tropopause)/(gasConstR*tropoTempK))
		rho = p / (gasConstR * tropoTempK)
	}
	return
}

// CASToTAS converts calibrated airspeed to true airspeed [both m/s]
// given the local air density [kg/m^3] and pressure [Pa], using the
// compressible-flow relation.
func CASToTAS(casMPS, rho, p float64) float64 {
	const kappa = 1.4
	const mu = (kappa - 1) / kappa

	t1 := 1 + (mu/2)*(SeaLevelDensityKgM3/SeaLevelPressurePa)*casMPS*casMPS
	t2 := gomath.Pow(t1, 1/mu) - 1
	t3 := 1 + (SeaLevelPressurePa/p)*t2
	t4 := gomath.Pow(t3, mu) - 1
	return gomath.Sqrt((2 / mu) * (p / rho) * t4)
}

// TurnRadiusNM returns the still-air turn radius in nautical miles for
// an aircraft at the given altitude [ft], calibrated airspeed [kt], and
// bank angle [deg].
func TurnRadiusNM(altFt, casKts, bankDeg float32) float32 {
	rho, p := Atmos(float64(altFt) * FeetToMeters)
	tas := CASToTAS(float64(casKts)*KnotsToMPS, rho, p)

	r := tas * tas / (GravityMPS2 * gomath.Tan(float64(bankDeg)*gomath.Pi/180))
	return float32(r * MetersToNM)
}

// Nominal turn-radius flight conditions: 5000 ft, 220 KCAS, 22 degrees
// of bank.
const (
	NominalAltitudeFt = 5000
	NominalCASKts     = 220
	NominalBankDeg    = 22
)

// NominalTurnRadiusNM returns the turn radius used for fly-by turn
// smoothing when a leg doesn't supply one.
func NominalTurnRadiusNM() float32 {
	return TurnRadiusNM(NominalAltitudeFt, NominalCASKts, NominalBankDeg)
}
