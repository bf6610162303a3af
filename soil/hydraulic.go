// Package soil implements the Van Genuchten soil-moisture and heat
// conduction properties, the root-water extraction sink, and the explicit
// 1D diffusive column solver advancing soil temperature and moisture,
// grounded on land_surface.cxx's soil:: kernels.
package soil

import (
	"math"

	"github.com/microhh-go/landsurface/domain"
)

// Density of dry solid soil (kg/m^3); PL98 eq. 6.
const rhoSolid = 2700.0

// RhoCMatrix and RhoCWater are the volumetric heat capacities of the dry
// soil matrix and of water, matching Constants::rho_C_matrix / rho_C_water.
const (
	RhoCMatrix = 1.6e6
	RhoCWater  = 4.186e6

	GammaTMatrix = 3.0 // thermal conductivity of the dry soil matrix
	GammaTWater  = 0.57
)

func diffusivityVG(vgA, vgL, vgM, gammaSat, thetaRes, thetaSat, thetaNorm float64) float64 {
	vgMi := 1 / vgM
	return (1-vgM)*gammaSat/(vgA*vgM*(thetaSat-thetaRes)) *
		math.Pow(thetaNorm, vgL-vgMi) *
		(math.Pow(1-math.Pow(thetaNorm, vgMi), -vgM) + math.Pow(1-math.Pow(thetaNorm, vgMi), vgM) - 2)
}

func conductivityVG(thetaNorm, vgL, vgM, gammaSat float64) float64 {
	return gammaSat * math.Pow(thetaNorm, vgL) *
		math.Pow(1-math.Pow(1-math.Pow(thetaNorm, 1/vgM), vgM), 2)
}

// DeriveSoilTypeTable fills in vgM, the diffusivity/conductivity clamp
// bounds, the dry thermal conductivity and the volumetric heat capacity of
// every row from its raw Van Genuchten parameters, matching
// calc_soil_properties.
func DeriveSoilTypeTable(rows []domain.SoilTypeRow) {
	for i := range rows {
		r := &rows[i]
		r.VgM = 1 - 1/r.VgN

		thetaNormMin := (1.001*r.ThetaRes - r.ThetaRes) / (r.ThetaSat - r.ThetaRes)
		thetaNormMax := (0.999*r.ThetaSat - r.ThetaRes) / (r.ThetaSat - r.ThetaRes)

		r.KappaMin = diffusivityVG(r.VgA, r.VgL, r.VgM, r.GammaThetaSat, r.ThetaRes, r.ThetaSat, thetaNormMin)
		r.KappaMax = diffusivityVG(r.VgA, r.VgL, r.VgM, r.GammaThetaSat, r.ThetaRes, r.ThetaSat, thetaNormMax)

		r.GammaMin = 0
		r.GammaMax = r.GammaThetaSat

		rhoDry := (1 - r.ThetaSat) * rhoSolid
		r.GammaTDry = (0.135*rhoDry + 64.7) / (rhoSolid - 0.947*rhoDry)
		r.RhoC = (1-r.ThetaSat)*RhoCMatrix + r.ThetaFC*RhoCWater
	}
}

// HydraulicProperties computes, for every soil cell, the clamped Van
// Genuchten moisture diffusivity and conductivity, matching
// calc_hydraulic_properties.
func HydraulicProperties(theta []float64, soilIndex []int, lut *domain.SoilLUT, kappa, gamma []float64) {
	for ijk, th := range theta {
		r := lut.Rows[soilIndex[ijk]]
		thetaLim := math.Min(math.Max(th, 1.001*r.ThetaRes), r.ThetaSat)
		thetaNorm := (thetaLim - r.ThetaRes) / (r.ThetaSat - r.ThetaRes)

		k := diffusivityVG(r.VgA, r.VgL, r.VgM, r.GammaThetaSat, r.ThetaRes, r.ThetaSat, thetaNorm)
		kappa[ijk] = math.Max(math.Min(r.KappaMax, k), r.KappaMin)

		g := conductivityVG(thetaNorm, r.VgL, r.VgM, r.GammaThetaSat)
		gamma[ijk] = math.Max(math.Min(r.GammaMax, g), r.GammaMin)
	}
}

// ThermalProperties computes the heat conductivity and diffusivity of every
// soil cell from its moisture content, matching calc_thermal_properties
// (IFS eq. 8.62/8.64).
func ThermalProperties(theta []float64, soilIndex []int, lut *domain.SoilLUT, kappa, gamma []float64) {
	for ijk, th := range theta {
		r := lut.Rows[soilIndex[ijk]]

		lambdaTSat := math.Pow(GammaTMatrix, 1-r.ThetaSat) * math.Pow(GammaTWater, th) * math.Pow(2.2, r.ThetaSat-th)
		kersten := math.Log10(math.Max(0.1, th/r.ThetaSat)) + 1

		gamma[ijk] = kersten*(lambdaTSat-r.GammaTDry) + r.GammaTDry
		kappa[ijk] = gamma[ijk] / r.RhoC
	}
}
