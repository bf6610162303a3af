package surface

import (
	"gonum.org/v1/gonum/floats"

	"github.com/microhh-go/landsurface/domain"
)

// FractionSum returns the three tile fractions at ij summed with
// gonum/floats, the cheapest way to check the §8 testable property that
// tile fractions sum to one at every cell.
func FractionSum(ts *domain.TileSet, ij int) float64 {
	return floats.Sum([]float64{
		ts.Tiles[domain.TileVeg].Fraction[ij],
		ts.Tiles[domain.TileSoil].Fraction[ij],
		ts.Tiles[domain.TileWet].Fraction[ij],
	})
}

// AggregateTiles implements calc_tiled_mean: a fraction-weighted average of
// a per-tile field into a single cell-mean field.
func AggregateTiles(ts *domain.TileSet, get func(*domain.Tile) []float64, out []float64) {
	veg := ts.Tiles[domain.TileVeg]
	soil := ts.Tiles[domain.TileSoil]
	wet := ts.Tiles[domain.TileWet]
	fv, fs, fw := get(veg), get(soil), get(wet)
	for i := range out {
		out[i] = veg.Fraction[i]*fv[i] + soil.Fraction[i]*fs[i] + wet.Fraction[i]*fw[i]
	}
}

// CloseBottomBC implements calc_bcs: it combines each tile's H/LE flux,
// weighted by tile fraction, into the single thl/qt surface flux and value
// the dynamical core advances, grounded on land_surface.cxx calc_bcs.
func CloseBottomBC(g *domain.Grid, ts *domain.TileSet, thl, qt []float64, ra []float64, rhoRefH, cp, lv float64) {
	rhocpI := 1 / (rhoRefH * cp)
	rholvI := 1 / (rhoRefH * lv)

	veg := ts.Tiles[domain.TileVeg]
	soil := ts.Tiles[domain.TileSoil]
	wet := ts.Tiles[domain.TileWet]

	for ij := 0; ij < g.Ijcells; ij++ {
		wthl := (veg.Fraction[ij]*veg.H[ij] + soil.Fraction[ij]*soil.H[ij] + wet.Fraction[ij]*wet.H[ij]) * rhocpI
		wqt := (veg.Fraction[ij]*veg.LE[ij] + soil.Fraction[ij]*soil.LE[ij] + wet.Fraction[ij]*wet.LE[ij]) * rholvI

		ijk := g.Index3D(ij%g.Icells, ij/g.Icells, g.Kstart)
		ts.ThlBot[ij] = thl[ijk] + wthl*ra[ij]
		ts.QtBot[ij] = qt[ijk] + wqt*ra[ij]
		ts.ThlFluxBot[ij] = wthl
		ts.QtFluxBot[ij] = wqt
	}
}
