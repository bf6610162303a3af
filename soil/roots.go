package soil

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/microhh-go/landsurface/domain"
)

// RootFractionColumn fills rootFrac (length ktot, one soil column) from the
// two-exponential root distribution, matching calc_root_column: the top
// layer (index ktot-1, per this package's top/bottom convention — see
// DiffuseExplicit) absorbs whatever remainder keeps the column summing to
// one.
func RootFractionColumn(rootFrac []float64, zh []float64, aRoot, bRoot float64) {
	ktot := len(rootFrac)
	sum := 0.0
	for k := 0; k < ktot-1; k++ {
		rootFrac[k] = 0.5 * (math.Exp(aRoot*zh[k+1]) + math.Exp(bRoot*zh[k+1]) -
			math.Exp(aRoot*zh[k]) - math.Exp(bRoot*zh[k]))
		sum += rootFrac[k]
	}
	rootFrac[ktot-1] = 1 - sum
}

// RootWeightedMeanTheta implements calc_root_weighted_mean_theta: the
// root-fraction-weighted, field-capacity-normalised soil moisture used by
// the vegetation resistance's f2 reduction factor.
func RootWeightedMeanTheta(theta []float64, soilIndex []int, rootFrac []float64, lut *domain.SoilLUT) float64 {
	mean := 0.0
	for k, th := range theta {
		r := lut.Rows[soilIndex[k]]
		thetaLim := math.Max(th, r.ThetaWP)
		mean += rootFrac[k] * (thetaLim - r.ThetaWP) / (r.ThetaFC - r.ThetaWP)
	}
	return mean
}

// RootWaterExtraction distributes transpiration (LE_veg, clamped to
// non-negative so dew does not rehydrate roots) as a sink term over the
// soil column weighted by root_frac*theta, matching
// calc_root_water_extraction.
func RootWaterExtraction(extraction []float64, theta, rootFrac []float64, leVeg float64, dzi []float64) {
	weighted := floats.Dot(rootFrac, theta)
	if weighted == 0 {
		for k := range extraction {
			extraction[k] = 0
		}
		return
	}
	for k := range theta {
		thetaFrac := rootFrac[k] * theta[k] / weighted
		extraction[k] = -math.Max(0, leVeg) * toMS * dzi[k] * thetaFrac
	}
}

// toMS converts an LE flux (W/m^2) into an equivalent liquid-water-depth
// rate (m/s); duplicated from seb.toMS because package soil does not import
// seb.
const toMS = 1 / (1.0e3 * 2.5e6)
