package surface

import (
	"math"
	"testing"

	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/obukhov"
)

func smallGrid() *domain.Grid {
	return domain.NewGrid(4, 4, 1, 1, []float64{10})
}

func TestWindGradientFloor(t *testing.T) {
	g := smallGrid()
	n := g.Ijcells
	u := make([]float64, n*g.Kcells)
	v := make([]float64, n*g.Kcells)
	ubot := make([]float64, n)
	vbot := make([]float64, n)
	dutot := make([]float64, n)
	WindGradient(g, u, v, ubot, vbot, dutot, SingleProcessCyclic{Grid: g, Halo: 1})
	for _, d := range dutot[g.Index2D(g.Istart, g.Jstart):] {
		if d < MinDu-1e-12 {
			t.Errorf("dutot below floor: %v", d)
			break
		}
	}
}

func TestStabilityUstarFlux(t *testing.T) {
	g := smallGrid()
	n := g.Ijcells
	sf := domain.NewSurfaceFields(n)
	for i := range sf.Ustar {
		sf.Ustar[i] = 0.2
		sf.Z0m[i] = 0.1
	}
	u := make([]float64, n*g.Kcells)
	v := make([]float64, n*g.Kcells)
	b := make([]float64, n*g.Kcells)
	ubot := make([]float64, n)
	vbot := make([]float64, n)
	bbot := make([]float64, n)
	bflux := make([]float64, n)
	for i := range bflux {
		bflux[i] = -5e-4
	}
	Stability(g, sf, u, v, b, ubot, vbot, bbot, bflux, 0, domain.MomentumUstar, domain.ThermoFlux, obukhov.Iterative{}, SingleProcessCyclic{Grid: g, Halo: 1})
	want := 40.0
	for _, l := range sf.L {
		if math.Abs(l-want) > 1e-9 {
			t.Errorf("L = %v, want %v", l, want)
		}
	}
}

func TestFractionSumsToOne(t *testing.T) {
	ts := domain.NewTileSet(1)
	ts.Tiles[domain.TileVeg].Fraction[0] = 0.5
	ts.Tiles[domain.TileSoil].Fraction[0] = 0.3
	ts.Tiles[domain.TileWet].Fraction[0] = 0.2
	if got := FractionSum(ts, 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("FractionSum = %v, want 1", got)
	}
}

func TestAggregateTiles(t *testing.T) {
	ts := domain.NewTileSet(1)
	ts.Tiles[domain.TileVeg].Fraction[0] = 0.5
	ts.Tiles[domain.TileSoil].Fraction[0] = 0.3
	ts.Tiles[domain.TileWet].Fraction[0] = 0.2
	ts.Tiles[domain.TileVeg].H[0] = 10
	ts.Tiles[domain.TileSoil].H[0] = 20
	ts.Tiles[domain.TileWet].H[0] = 30
	out := make([]float64, 1)
	AggregateTiles(ts, func(tl *domain.Tile) []float64 { return tl.H }, out)
	want := 0.5*10 + 0.3*20 + 0.2*30
	if math.Abs(out[0]-want) > 1e-9 {
		t.Errorf("aggregate = %v, want %v", out[0], want)
	}
}
