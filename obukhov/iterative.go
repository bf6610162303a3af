package obukhov

import (
	"math"

	"github.com/microhh-go/landsurface/most"
)

// Iterative solves for zeta=z/L by damped Newton iteration with a
// numerically differenced Jacobian, since the analytic derivative of the
// Businger-Dyer profile factors with respect to zeta is not worth carrying
// symbolically for a scalar root find.
type Iterative struct{}

const (
	maxIterations = 40
	relTol        = 1e-4
	residTol      = 1e-5
	fdStep        = 1e-6
	damping       = 0.7
)

func newtonSolve(g func(zeta float64) float64, x0 float64) (zeta float64, err error) {
	x := x0
	var lastGood = x0
	for i := 0; i < maxIterations; i++ {
		fx := g(x)
		if math.Abs(fx) < residTol {
			return x, nil
		}
		h := fdStep * math.Max(1, math.Abs(x))
		dfx := (g(x+h) - g(x-h)) / (2 * h)
		if dfx == 0 || !finite(dfx) {
			break
		}
		step := fx / dfx
		xNew := x - damping*step
		if !finite(xNew) {
			break
		}
		if math.Abs(xNew-x) < relTol*math.Max(1e-12, math.Abs(x)) {
			return xNew, nil
		}
		lastGood = x
		x = xNew
	}
	return lastGood, &NonConvergence{Iterations: maxIterations, Residual: g(lastGood)}
}

// SolveFlux implements 4.B noslip+flux. Combining L=-u*^3/(kappa*B0) with
// u*=U*fm(z,z0m,L) and L=z/zeta gives the self-consistent root equation
// zeta*fm(zeta)^3 = -kappa*B0*z/U^3, which is what is actually solved here
// (see DESIGN.md for why this differs from the simplified combined formula
// quoted in the distilled spec).
func (Iterative) SolveFlux(b0, u, z, z0m, lPrev float64, _ *int) (float64, error) {
	if math.Abs(b0) < NearNeutral {
		return -LBig, nil
	}
	target := -most.Kappa * b0 * z / (u * u * u)
	g := func(zeta float64) float64 {
		fm := most.FmZeta(z, z0m, zeta)
		return zeta*fm*fm*fm - target
	}
	x0 := seedZeta(lPrev, z, -signOf(b0))
	zeta, err := newtonSolve(g, x0)
	l := zetaToL(z, zeta)
	if err != nil {
		return fallbackL(lPrev), err
	}
	return l, nil
}

// SolveDirichlet implements 4.B noslip+Dirichlet: Rb = kappa^2*zeta/(fm^2/fh).
func (Iterative) SolveDirichlet(db, u, z, z0m, z0h, lPrev float64, _ *int) (float64, error) {
	if math.Abs(db) < NearNeutral {
		return -LBig, nil
	}
	rb := z * db / (u * u)
	g := func(zeta float64) float64 {
		fm := most.FmZeta(z, z0m, zeta)
		fh := most.FhZeta(z, z0h, zeta)
		return most.Kappa*most.Kappa*zeta*fh/(fm*fm) - rb
	}
	x0 := seedZeta(lPrev, z, signOf(db))
	zeta, err := newtonSolve(g, x0)
	l := zetaToL(z, zeta)
	if err != nil {
		return fallbackL(lPrev), err
	}
	return l, nil
}

// seedZeta picks the Newton starting point from the previous step's L when
// finite, else +-1 oriented by the sign of the forcing (unstable => negative
// zeta, stable => positive zeta).
func seedZeta(lPrev, z, sign float64) float64 {
	if finite(lPrev) && lPrev != 0 && math.Abs(lPrev) < LBig {
		return z / lPrev
	}
	return sign
}

func zetaToL(z, zeta float64) float64 {
	if zeta == 0 {
		return -LBig
	}
	return z / zeta
}

func fallbackL(lPrev float64) float64 {
	if finite(lPrev) {
		return lPrev
	}
	return -LBig
}
