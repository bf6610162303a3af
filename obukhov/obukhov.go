// Package obukhov solves the implicit Monin-Obukhov length L for the two
// bottom-boundary-condition combinations the surface layer supports:
// prescribed buoyancy flux (noslip+flux) and prescribed buoyancy difference
// (noslip+Dirichlet). Both a Newton-iteration solver and a precomputed
// lookup-table solver are provided behind the same Solver interface; the
// driver in package surface selects one at startup and never switches per
// cell (see the no-dynamic-dispatch-in-inner-loops rule).
package obukhov

import "math"

// Eps guards against divisions by zero in u* and near-zero forcing.
const Eps = 1e-4

// LBig is the magnitude substituted for L under neutral/near-neutral
// conditions, matching the Constants::dbig convention of the host code.
const LBig = 1e12

// NearNeutral is the |B0| or |Δb| threshold below which the solver returns
// -LBig directly instead of iterating or searching the table.
const NearNeutral = 1e-12

// Solver finds the Obukhov length for a single surface-layer column.
//
// SolveFlux handles the noslip+flux case: B0 is the known surface buoyancy
// flux, u is the wind speed difference across the layer, lPrev is the
// previous step's L (used as a Newton seed or search-bracket hint), and
// nobuk is this cell's persistent LUT bracket index (ignored by the
// iterative solver, mutated in place by the LUT solver).
//
// SolveDirichlet handles the noslip+Dirichlet case: db is the known
// surface buoyancy difference.
type Solver interface {
	SolveFlux(b0, u, z, z0m, lPrev float64, nobuk *int) (float64, error)
	SolveDirichlet(db, u, z, z0m, z0h, lPrev float64, nobuk *int) (float64, error)
}

// NonConvergence reports that an iterative solve did not reach tolerance
// within the iteration cap. Iterative returns it together with the previous
// step's L as the fallback value (see fallbackL).
type NonConvergence struct {
	Iterations int
	Residual   float64
}

func (e *NonConvergence) Error() string {
	return "obukhov: failed to converge"
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
