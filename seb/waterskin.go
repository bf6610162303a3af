package seb

import "math"

// WlMax is the maximum liquid-water-skin depth per unit leaf area, matching
// Constants::wlmax in land_surface.cxx.
const WlMax = 2.0e-4

// WaterSkinInputs are the drivers of one cell's liquid-water reservoir
// tendency, grounded on land_surface.cxx calc_liquid_water_reservoir.
type WaterSkinInputs struct {
	Wl           float64
	WlTend       float64 // tendency already accumulated by other terms this step
	CVeg         float64
	LAI          float64
	FracWet      float64
	FracVeg      float64
	FracSoil     float64
	LEWet        float64
	LEVeg        float64
	LESoil       float64
	RainRate     float64
	InterceptEff float64
	SubDt        float64
}

// WaterSkinResult is the clamped total tendency plus the throughfall and
// interception diagnostics.
type WaterSkinResult struct {
	WlTend       float64
	Throughfall  float64
	Interception float64
}

// toMS converts an LE flux (W/m^2) to an equivalent water-depth rate (m/s).
const toMS = 1 / (RhoWat * Lv)

// UpdateWaterSkin implements calc_liquid_water_reservoir: it sums the
// evaporative, dewfall and interception tendencies, clamps the total to keep
// Wl within [0, wlm], and diagnoses throughfall (the part of the clamped
// rain that neither the canopy intercepted nor the skin could hold) and
// interception (the positive part of the clamped tendency).
func UpdateWaterSkin(in WaterSkinInputs) WaterSkinResult {
	subdti := 1 / in.SubDt
	wlm := WlMax * (1 - in.CVeg + in.CVeg*in.LAI)

	tendMax := (wlm-in.Wl)*subdti - in.WlTend
	tendMin := (0-in.Wl)*subdti - in.WlTend

	tendLiq := -math.Max(0, in.FracWet*in.LEWet*toMS)
	tendDew := -(math.Min(0, in.FracWet*in.LEWet*toMS) +
		math.Min(0, in.FracVeg*in.LEVeg*toMS) +
		math.Min(0, in.FracSoil*in.LESoil*toMS))
	tendPrecip := in.InterceptEff * in.CVeg * in.RainRate

	tendSum := tendLiq + tendDew + tendPrecip
	tendLim := math.Min(tendMax, math.Max(tendMin, tendSum))

	throughfall := -(1-in.CVeg)*in.RainRate -
		(1-in.InterceptEff)*in.CVeg*in.RainRate +
		math.Min(0, tendLim-tendSum)
	interception := math.Max(0, tendLim)

	return WaterSkinResult{
		WlTend:       in.WlTend + tendLim,
		Throughfall:  throughfall,
		Interception: interception,
	}
}
