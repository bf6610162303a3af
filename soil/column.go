package soil

import "github.com/microhh-go/landsurface/domain"

// TemperatureBCs implements set_bcs_temperature: the top flux is the ground
// heat flux G converted to a temperature flux by the top layer's heat
// capacity; the bottom is always a no-flux (closed) boundary.
func TemperatureBCs(g float64, topSoilIndex int, lut *domain.SoilLUT) (fluxTop, fluxBot float64) {
	return g / lut.Rows[topSoilIndex].RhoC, 0
}

// MoistureBCs implements set_bcs_moisture: the top flux combines soil-tile
// evaporation and net throughfall into the column; the bottom conductivity
// either free-drains (copied from the layer above) or is pinned to zero for
// a closed bottom.
func MoistureBCs(leSoil, fracSoil, throughfall float64, condBottomLayer float64, freeDrainage bool) (fluxTop, fluxBot, condBot float64) {
	fluxTop = fracSoil*leSoil*toMS + throughfall
	fluxBot = 0
	if freeDrainage {
		condBot = condBottomLayer
	} else {
		condBot = 0
	}
	return
}

// DiffuseExplicit advances one soil column's tendency by the explicit 1D
// diffusion operator, matching diff_explicit: a flux-divergence term built
// from the half-level diffusivity, an optional gravitational conductivity
// term, and an optional source (root extraction). fld, kappaH, gammaH and
// source are full-level (length ktot); kappaH/gammaH index k is actually the
// half level between k-1 and k, so kappaH[k+1] is the flux crossing the top
// of layer k -- callers must size kappaH/gammaH at ktot+1. kappaH[0] is
// unused (the bottom diffusive flux is fluxBot); gammaH[0] is the bottom
// boundary conductivity (see MoistureBCs).
func DiffuseExplicit(tend, fld, kappaH, gammaH, source []float64, fluxTop, fluxBot float64, dzi, dzhi []float64, withSource, withConductivity bool) {
	ktot := len(fld)

	// Bottom layer.
	tend[0] += (kappaH[1]*(fld[1]-fld[0])*dzhi[1] + fluxBot) * dzi[0]
	if withConductivity {
		tend[0] += (gammaH[1] - gammaH[0]) * dzi[0]
	}
	if withSource {
		tend[0] += source[0]
	}

	// Top layer.
	top := ktot - 1
	tend[top] += (-fluxTop - kappaH[top]*(fld[top]-fld[top-1])*dzhi[top]) * dzi[top]
	if withConductivity {
		tend[top] -= gammaH[top] * dzi[top]
	}
	if withSource {
		tend[top] += source[top]
	}

	// Interior.
	for k := 1; k < top; k++ {
		tend[k] += ((kappaH[k+1]*(fld[k+1]-fld[k])*dzhi[k+1] - kappaH[k]*(fld[k]-fld[k-1])*dzhi[k]) * dzi[k])
		if withConductivity {
			tend[k] += (gammaH[k+1] - gammaH[k]) * dzi[k]
		}
		if withSource {
			tend[k] += source[k]
		}
	}
}

// InterpolateHalfLevel averages a full-level field onto the half levels it
// straddles, matching interp_2_vertical's Mean mode; fldH must be sized
// ktot+1; indices 0 and ktot are not written (boundary values there are
// set by the caller from the BCs, not interpolated).
func InterpolateHalfLevel(fldH, fld []float64) {
	for k := 1; k < len(fld); k++ {
		fldH[k] = 0.5 * (fld[k] + fld[k-1])
	}
}

// SubStepsForStability returns how many equal sub-steps an explicit step of
// length dt must be split into to keep the column diffusively stable, given
// the largest diffusivity present and the smallest layer spacing -- a
// supplemented stability guard the original relies on an externally tuned
// dt for instead (see DESIGN.md).
func SubStepsForStability(dt, kappaMax float64, dzMin float64) int {
	if kappaMax <= 0 || dzMin <= 0 {
		return 1
	}
	dtStable := 0.5 * dzMin * dzMin / kappaMax
	n := int(dt/dtStable) + 1
	if n < 1 {
		n = 1
	}
	return n
}
