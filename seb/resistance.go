// Package seb implements the three-tile surface energy balance: the
// resistance-law functions that turn shortwave input, soil moisture and
// vapour-pressure deficit into a canopy or soil resistance, the linearised
// Newton solve for skin temperature and tile fluxes, and the liquid-water
// skin reservoir tendency.
package seb

import (
	"math"

	"github.com/microhh-go/landsurface/domain"
)

// ResistanceInputs are the per-cell drivers of the f1..f3/f2b reduction
// functions, grounded on land_surface.cxx calc_resistance_functions.
type ResistanceInputs struct {
	SwDn        float64
	ThetaTop    float64 // top soil layer moisture
	ThetaMeanN  float64 // root-weighted, normalised soil moisture
	VPD         float64
	GDCoeff     float64
	CVeg        float64
	ThetaWP     float64
	ThetaFC     float64
	ThetaRes    float64
}

// f1 constants from calc_resistance_functions; not configurable, the
// original hardcodes them too.
const (
	aF1 = 0.81
	bF1 = 0.004
	cF1 = 0.05
)

// ReductionFactors returns f1, f2, f3 (vegetation resistance reduction by
// shortwave input, mean soil moisture and VPD) and f2b (soil resistance
// reduction by top-layer moisture).
func ReductionFactors(in ResistanceInputs) (f1, f2, f3, f2b float64) {
	swDnLim := math.Max(0, in.SwDn)
	f1 = 1 / math.Min(1, (bF1*swDnLim+cF1)/(aF1*(bF1*swDnLim+1)))
	f2 = 1 / math.Min(1, math.Max(1e-9, in.ThetaMeanN))
	f3 = 1 / math.Exp(-in.GDCoeff*in.VPD)

	thetaMin := in.CVeg*in.ThetaWP + (1-in.CVeg)*in.ThetaRes
	thetaRel := (in.ThetaTop - thetaMin) / (in.ThetaFC - thetaMin)
	f2b = 1 / math.Min(1, math.Max(1e-9, thetaRel))
	return
}

// CanopyResistance implements calc_canopy_resistance: rs = rs_min/LAI *
// f1*f2*f3.
func CanopyResistance(rsMin, lai, f1, f2, f3 float64) float64 {
	return rsMin / lai * f1 * f2 * f3
}

// SoilResistance implements calc_soil_resistance: rs = rs_min * f2b.
func SoilResistance(rsMin, f2b float64) float64 {
	return rsMin * f2b
}

// ResistanceTable dispatches the per-tile resistance law by TileKind, a flat
// table of function values rather than a type hierarchy, per §9's guidance.
var ResistanceTable = [domain.NumTiles]func(rsMin, lai, f1, f2, f3, f2b float64) float64{
	domain.TileVeg:  func(rsMin, lai, f1, f2, f3, f2b float64) float64 { return CanopyResistance(rsMin, lai, f1, f2, f3) },
	domain.TileSoil: func(rsMin, lai, f1, f2, f3, f2b float64) float64 { return SoilResistance(rsMin, f2b) },
	domain.TileWet:  func(rsMin, lai, f1, f2, f3, f2b float64) float64 { return 0 },
}
