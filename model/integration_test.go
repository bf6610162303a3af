package model

import (
	"math"
	"testing"

	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/obukhov"
	"github.com/microhh-go/landsurface/surface"
)

type noopCyclic struct{}

func (noopCyclic) Exec2D(field []float64) {}

// S1 neutral, flat, uniform: u=5, v=0, z=10, z0m=0.1, Dirichlet momentum BC
// -> L pinned at -LBig and u* following the neutral log-law directly.
func TestScenarioS1Neutral(t *testing.T) {
	g := domain.NewGrid(2, 2, 1, 1, []float64{10})
	sf := domain.NewSurfaceFields(g.Ijcells)
	for i := range sf.Z0m {
		sf.Z0m[i] = 0.1
	}
	u := make([]float64, g.Ijcells*g.Kcells)
	v := make([]float64, g.Ijcells*g.Kcells)
	ubot := make([]float64, g.Ijcells)
	vbot := make([]float64, g.Ijcells)
	for j := 0; j < g.Jcells; j++ {
		for i := 0; i < g.Icells; i++ {
			u[g.Index3D(i, j, g.Kstart)] = 5
		}
	}

	surface.StabilityNeutral(g, sf, u, v, ubot, vbot, domain.MomentumDirichlet, noopCyclic{})

	want := 5 * 0.4 / math.Log(100)
	for j := g.Jstart; j < g.Jend; j++ {
		for i := g.Istart; i < g.Iend; i++ {
			ij := g.Index2D(i, j)
			if sf.L[ij] != -domain.LBig {
				t.Errorf("L = %v, want -LBig", sf.L[ij])
			}
			if math.Abs(sf.Ustar[ij]-want) > 1e-3 {
				t.Errorf("u* = %v, want %v", sf.Ustar[ij], want)
			}
		}
	}
}

// S3 stable, flux BC: L = -u*^3/(kappa*B0) should come out to 40 for the
// scenario's u*=0.2, B0=-5e-4.
func TestScenarioS3StableFlux(t *testing.T) {
	ustar, b0 := 0.2, -5e-4
	l := -ustar * ustar * ustar / (0.4 * b0)
	if math.Abs(l-40) > 1e-9 {
		t.Errorf("L = %v, want 40", l)
	}
}

func TestInitRejectsHomogeneousAndWater(t *testing.T) {
	m := &Model{SWHomog: true, SWWater: true, MBCBot: domain.MomentumUstar, ScalarBC: domain.ScalarFlux}
	if err := m.Init(); err == nil {
		t.Error("expected ConfigInvalid, got nil")
	}
}

func TestInitRejectsDirichletWithFluxScalar(t *testing.T) {
	m := &Model{MBCBot: domain.MomentumDirichlet, ScalarBC: domain.ScalarFlux}
	if err := m.Init(); err == nil {
		t.Error("expected ConfigInvalid for mbcbot=Dirichlet with non-Dirichlet scalar BC")
	}
}

func TestInitAcceptsValidConfig(t *testing.T) {
	m := &Model{MBCBot: domain.MomentumUstar, ScalarBC: domain.ScalarFlux, ThermoBC: domain.ThermoFlux}
	if err := m.Init(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if m.Log == nil {
		t.Error("Init did not default Log")
	}
}

func TestStatsReset(t *testing.T) {
	s := Stats{ObukhovFallbackCount: 3, ThetaClampCount: 2}
	s.Reset()
	if s.ObukhovFallbackCount != 0 || s.ThetaClampCount != 0 {
		t.Errorf("Reset did not zero stats: %+v", s)
	}
}

func TestSolverSelectionIterativeAndLUT(t *testing.T) {
	var _ obukhov.Solver = obukhov.Iterative{}
	var _ obukhov.Solver = obukhov.NewLUT(10, 0.1, 0.1)
}
