package obukhov

import (
	"math"

	"github.com/microhh-go/landsurface/most"
)

// nzL is the number of points spanning the tabulated zeta range.
const nzL = 10000

// zLMax is the |zeta| bound of the table.
const zLMax = 50.0

// LUT is a precomputed bracket-search solver for one fixed (z, z0m, z0h)
// triple, valid only when boundary.swconstantz0 holds the roughness lengths
// constant across the domain -- the whole point of precomputing the table.
// A separate table is built lazily per case (flux vs Dirichlet) the first
// time that case is requested, since a run only ever exercises one.
type LUT struct {
	z, z0m, z0h float64

	flux *table
	dir  *table
}

type table struct {
	zeta []float64
	f    []float64
}

// NewLUT returns a table solver for the given surface-layer height and
// roughness lengths; the tables themselves are built on first use, on the
// zeta grid from zetaGrid (geometrically spaced about neutral, matching
// "logarithmic spacing at low |zeta|").
func NewLUT(z, z0m, z0h float64) *LUT {
	return &LUT{z: z, z0m: z0m, z0h: z0h}
}

func zetaGrid() []float64 {
	g := make([]float64, nzL)
	n2 := nzL / 2
	lnMax := math.Log(zLMax + 1)
	for i := 0; i < nzL; i++ {
		t := float64(i-n2) / float64(n2)
		mag := math.Exp(math.Abs(t)*lnMax) - 1
		g[i] = math.Copysign(mag, t)
	}
	return g
}

func (l *LUT) fluxTable() *table {
	if l.flux != nil {
		return l.flux
	}
	g := zetaGrid()
	f := make([]float64, nzL)
	for i, zeta := range g {
		fm := most.FmZeta(l.z, l.z0m, zeta)
		f[i] = zeta * fm * fm * fm
	}
	l.flux = &table{zeta: g, f: f}
	return l.flux
}

func (l *LUT) dirichletTable() *table {
	if l.dir != nil {
		return l.dir
	}
	g := zetaGrid()
	f := make([]float64, nzL)
	for i, zeta := range g {
		fm := most.FmZeta(l.z, l.z0m, zeta)
		fh := most.FhZeta(l.z, l.z0h, zeta)
		f[i] = most.Kappa * most.Kappa * zeta * fh / (fm * fm)
	}
	l.dir = &table{zeta: g, f: f}
	return l.dir
}

// search finds the bracket containing target in the table's monotonically
// increasing f values, starting from the hint and walking until bracketed,
// then linearly interpolates zeta. The hint is updated in place.
func (t *table) search(target float64, hint *int) float64 {
	n := len(t.f)
	idx := *hint
	if idx < 0 {
		idx = 0
	}
	if idx > n-2 {
		idx = n - 2
	}
	for idx > 0 && t.f[idx] > target {
		idx--
	}
	for idx < n-2 && t.f[idx+1] < target {
		idx++
	}
	*hint = idx
	if target <= t.f[0] {
		return t.zeta[0]
	}
	if target >= t.f[n-1] {
		return t.zeta[n-1]
	}
	df := t.f[idx+1] - t.f[idx]
	if df == 0 {
		return t.zeta[idx]
	}
	frac := (target - t.f[idx]) / df
	return t.zeta[idx] + frac*(t.zeta[idx+1]-t.zeta[idx])
}

// SolveFlux implements the LUT variant of 4.B noslip+flux, see Iterative
// for the root equation being searched.
func (l *LUT) SolveFlux(b0, u, z, z0m, lPrev float64, nobuk *int) (float64, error) {
	if math.Abs(b0) < NearNeutral {
		return -LBig, nil
	}
	target := -most.Kappa * b0 * z / (u * u * u)
	zeta := l.fluxTable().search(target, nobuk)
	return zetaToL(z, zeta), nil
}

// SolveDirichlet implements the LUT variant of 4.B noslip+Dirichlet.
func (l *LUT) SolveDirichlet(db, u, z, z0m, z0h, lPrev float64, nobuk *int) (float64, error) {
	if math.Abs(db) < NearNeutral {
		return -LBig, nil
	}
	rb := z * db / (u * u)
	zeta := l.dirichletTable().search(rb, nobuk)
	return zetaToL(z, zeta), nil
}
