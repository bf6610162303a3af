package surface

import "github.com/microhh-go/landsurface/domain"

// SingleProcessCyclic is the non-MPI BoundaryCyclic: it wraps the halo of a
// 2D slab around the opposite edge of the same domain, the degenerate case
// of the dynamical core's real neighbour exchange when running on one rank.
type SingleProcessCyclic struct {
	Grid *domain.Grid
	Halo int
}

func (c SingleProcessCyclic) Exec2D(field []float64) {
	g := c.Grid
	h := c.Halo

	// East-west wrap.
	for j := 0; j < g.Jcells; j++ {
		for i := 0; i < h; i++ {
			field[g.Index2D(i, j)] = field[g.Index2D(g.Iend-h+i, j)]
			field[g.Index2D(g.Iend+i, j)] = field[g.Index2D(g.Istart+i, j)]
		}
	}
	// North-south wrap, including the corners just filled above.
	for j := 0; j < h; j++ {
		for i := 0; i < g.Icells; i++ {
			field[g.Index2D(i, j)] = field[g.Index2D(i, g.Jend-h+j)]
			field[g.Index2D(i, g.Jend+j)] = field[g.Index2D(i, g.Jstart+j)]
		}
	}
}
