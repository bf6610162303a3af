// Package surface drives the atmosphere-side surface layer: wind-gradient
// preprocessing, the per-cell Obukhov length/u* solve, the momentum and
// scalar surface closures, aerodynamic resistance, and the tile aggregation
// that closes the bottom boundary condition the host dynamical core reads.
// The per-cell work is run through a worker pool, grounded on the teacher's
// Calculations concurrency pattern.
package surface

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/most"
	"github.com/microhh-go/landsurface/obukhov"
)

// MinDu is the floor applied to the interpolated horizontal wind-speed
// difference, preventing the eddy viscosity at the lowest level from
// blowing up when the resolved wind is exactly zero.
const MinDu = 1.0e-1

// forEachCell runs f(i) concurrently over [0, n) using GOMAXPROCS workers,
// each striding through its share of the range -- grounded on the teacher's
// Calculations helper in run.go.
func forEachCell(n int, f func(i int)) {
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > n {
		nprocs = n
	}
	if nprocs <= 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < n; i += nprocs {
				f(i)
			}
		}(pp)
	}
	wg.Wait()
}

// WindGradient computes the interpolated horizontal wind-speed difference
// between the lowest full level and the surface, floored at MinDu, at every
// (i,j) in the grid interior, and exchanges halos through cyclic.
func WindGradient(g *domain.Grid, u, v, ubot, vbot []float64, dutot []float64, cyclic domain.BoundaryCyclic) {
	ii := 1
	jj := g.Icells
	forEachCell(g.Jend-g.Jstart, func(jo int) {
		j := g.Jstart + jo
		for i := g.Istart; i < g.Iend; i++ {
			ij := i + j*jj
			ijk := g.Index3D(i, j, g.Kstart)
			du2 := (0.5*(u[ijk]+u[ijk+ii])-0.5*(ubot[ij]+ubot[ij+ii]))*(0.5*(u[ijk]+u[ijk+ii])-0.5*(ubot[ij]+ubot[ij+ii])) +
				(0.5*(v[ijk]+v[ijk+jj])-0.5*(vbot[ij]+vbot[ij+jj]))*(0.5*(v[ijk]+v[ijk+jj])-0.5*(vbot[ij]+vbot[ij+jj]))
			dutot[ij] = math.Max(math.Sqrt(du2), MinDu)
		}
	})
	cyclic.Exec2D(dutot)
}

// Stability solves the per-cell Obukhov length and friction velocity for
// the thermal Dirichlet/flux cases, dispatching to the supplied solver
// (obukhov.Iterative or an obukhov.LUT), and writes through Ustar/L/Nobuk.
// mbcbot/thermobc select which of the three closures in component C apply;
// the Ustar+Flux case is resolved directly and does not need a solver. On
// non-convergence the solver's own fallback (the previous step's L) is kept
// rather than overridden; Stability returns how many cells fell back so the
// caller can account for it in Stats.
func Stability(
	g *domain.Grid, sf *domain.SurfaceFields,
	u, v, b, ubot, vbot, bbot []float64,
	bfluxbot []float64,
	dbRef float64,
	mbcbot domain.MomentumBC, thermobc domain.ThermoBC,
	solver obukhov.Solver,
	cyclic domain.BoundaryCyclic,
) int {
	dutot := make([]float64, g.Ijcells)
	WindGradient(g, u, v, ubot, vbot, dutot, cyclic)

	jj := g.Icells
	var fallbacks int64

	switch {
	case mbcbot == domain.MomentumUstar && thermobc == domain.ThermoFlux:
		forEachCell(g.Jcells, func(j int) {
			for i := 0; i < g.Icells; i++ {
				ij := i + j*jj
				sf.L[ij] = -sf.Ustar[ij] * sf.Ustar[ij] * sf.Ustar[ij] / (most.Kappa * bfluxbot[ij])
			}
		})

	case mbcbot == domain.MomentumDirichlet && thermobc == domain.ThermoFlux:
		forEachCell(g.Jcells, func(j int) {
			for i := 0; i < g.Icells; i++ {
				ij := i + j*jj
				l, err := solver.SolveFlux(bfluxbot[ij], dutot[ij], g.Z[g.Kstart], sf.Z0m[ij], sf.L[ij], &sf.Nobuk[ij])
				if err != nil {
					atomic.AddInt64(&fallbacks, 1)
				}
				sf.L[ij] = l
				sf.Ustar[ij] = dutot[ij] * most.Fm(g.Z[g.Kstart], sf.Z0m[ij], l)
			}
		})

	case mbcbot == domain.MomentumDirichlet && thermobc == domain.ThermoDirichlet:
		forEachCell(g.Jcells, func(j int) {
			for i := 0; i < g.Icells; i++ {
				ij := i + j*jj
				ijk := g.Index3D(i, j, g.Kstart)
				db := b[ijk] - bbot[ij] + dbRef
				l, err := solver.SolveDirichlet(db, dutot[ij], g.Z[g.Kstart], sf.Z0m[ij], sf.Z0h[ij], sf.L[ij], &sf.Nobuk[ij])
				if err != nil {
					atomic.AddInt64(&fallbacks, 1)
				}
				sf.L[ij] = l
				sf.Ustar[ij] = dutot[ij] * most.Fm(g.Z[g.Kstart], sf.Z0m[ij], l)
			}
		})

	case thermobc == domain.ThermoNeutral:
		StabilityNeutral(g, sf, u, v, ubot, vbot, mbcbot, cyclic)
	}

	return int(fallbacks)
}

// StabilityNeutral pins the Obukhov length at -LBig and, when the momentum
// BC is Dirichlet, derives u* from the neutral profile factor directly.
func StabilityNeutral(
	g *domain.Grid, sf *domain.SurfaceFields,
	u, v, ubot, vbot []float64,
	mbcbot domain.MomentumBC,
	cyclic domain.BoundaryCyclic,
) {
	dutot := make([]float64, g.Ijcells)
	WindGradient(g, u, v, ubot, vbot, dutot, cyclic)

	forEachCell(g.Jcells, func(j int) {
		for i := 0; i < g.Icells; i++ {
			ij := i + j*g.Icells
			sf.L[ij] = -domain.LBig
			if mbcbot == domain.MomentumDirichlet {
				sf.Ustar[ij] = dutot[ij] * most.Fm(g.Z[g.Kstart], sf.Z0m[ij], sf.L[ij])
			}
		}
	})
}
