package seb

import (
	"math"
	"testing"
)

func TestReductionFactorsAreAtLeastOne(t *testing.T) {
	f1, f2, f3, f2b := ReductionFactors(ResistanceInputs{
		SwDn: 800, GDCoeff: 0, VPD: 500,
		ThetaMeanN: 0.6, ThetaWP: 0.1, ThetaFC: 0.3, ThetaRes: 0.05, ThetaTop: 0.2, CVeg: 0.9,
	})
	for name, v := range map[string]float64{"f1": f1, "f2": f2, "f3": f3, "f2b": f2b} {
		if v < 1-1e-9 {
			t.Errorf("%s = %v, want >= 1 (reduction factors are inverse multipliers)", name, v)
		}
	}
}

func TestQsatDqsatdTIncreasesWithTemperature(t *testing.T) {
	q1, _ := QsatDqsatdT(280, 101325)
	q2, _ := QsatDqsatdT(300, 101325)
	if q2 <= q1 {
		t.Errorf("qsat(300K)=%v should exceed qsat(280K)=%v", q2, q1)
	}
}

func TestSolveClosesEnergyBalance(t *testing.T) {
	res := Solve(Inputs{
		Rad:      RadiationInputs{SwDn: 400, SwUp: 80, LwDn: 300, LwUp: 380},
		TAtmos:   290,
		QtAtmos:  8e-3,
		TSoilTop: 288,
		TBot:     289,
		Ra:       50,
		Rs:       100,
		Lambda:   5,
		RhoRefH:  1.2,
		Press:    101325,
	})
	qnet := res.H + res.LE + res.G + SigmaB*res.TBot*res.TBot*res.TBot*res.TBot
	qnetRad := 400.0 - 80 + 300 - 380
	if math.Abs(qnet-qnetRad) > 1.0 {
		t.Errorf("energy balance not closed: qnet from fluxes %v, from radiation %v", qnet, qnetRad)
	}
}

func TestUpdateWaterSkinClampsAtMax(t *testing.T) {
	cVeg, lai := 0.9, 2.0
	wlm := WlMax * (1 - cVeg + cVeg*lai)
	res := UpdateWaterSkin(WaterSkinInputs{
		Wl: wlm, CVeg: cVeg, LAI: lai,
		FracWet: 1.0, FracVeg: 0, FracSoil: 0,
		LEWet: -1000, RainRate: 1e-3,
		InterceptEff: 1.0, SubDt: 60,
	})
	newWl := wlm + res.WlTend*60
	if newWl > wlm+1e-9 {
		t.Errorf("water skin reservoir exceeds its cap %v: got %v", wlm, newWl)
	}
}
