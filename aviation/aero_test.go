// aviation/aero_test.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	gomath "math"
	"testing"
)

func TestAtmos(t *testing.T) {
	rho, p := Atmos(0)
	if gomath.Abs(rho-SeaLevelDensityKgM3) > 0.001 {
		t.Errorf("sea level density %v, expected %v", rho, SeaLevelDensityKgM3)
	}
	if gomath.Abs(p-SeaLevelPressurePa) > 1 {
		t.Errorf("sea level pressure %v, expected %v", p, SeaLevelPressurePa)
	}

	// Standard atmosphere at 11 km: 226.3 hPa, 0.3639 kg/m^3.
	rho, p = Atmos(11000)
	if gomath.Abs(p-22632)/22632 > 0.005 {
		t.Errorf("tropopause pressure %v, expected ~22632", p)
	}
	if gomath.Abs(rho-0.3639)/0.3639 > 0.005 {
		t.Errorf("tropopause density %v, expected ~0.3639", rho)
	}

	// Density keeps falling in the stratosphere.
	rho2, _ := Atmos(15000)
	if rho2 >= rho {
		t.Errorf("density at 15 km (%v) not below tropopause value (%v)", rho2, rho)
	}
}

func TestCASToTAS(t *testing.T) {
	// At sea level CAS and TAS coincide.
	rho, p := Atmos(0)
	cas := 220 * KnotsToMPS
	if tas := CASToTAS(cas, rho, p); gomath.Abs(tas-cas) > 0.5 {
		t.Errorf("sea level TAS %v, expected %v", tas, cas)
	}

	// At altitude TAS exceeds CAS.
	rho, p = Atmos(20000 * FeetToMeters)
	if tas := CASToTAS(cas, rho, p); tas <= cas {
		t.Errorf("TAS at altitude %v not above CAS %v", tas, cas)
	}
}

func TestNominalTurnRadius(t *testing.T) {
	// 220 KCAS at 5000 ft with 22 degrees of bank works out to right
	// around 2 nm.
	r := NominalTurnRadiusNM()
	if r < 1.7 || r > 2.3 {
		t.Errorf("nominal turn radius %v nm, expected ~2", r)
	}

	// Radius grows with speed and shrinks with bank.
	if fast := TurnRadiusNM(5000, 300, 22); fast <= r {
		t.Errorf("radius at 300 kt (%v) not above radius at 220 kt (%v)", fast, r)
	}
	if steep := TurnRadiusNM(5000, 220, 30); steep >= r {
		t.Errorf("radius at 30 deg bank (%v) not below radius at 22 deg (%v)", steep, r)
	}
}
