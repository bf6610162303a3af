package surface

import (
	"math"

	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/most"
)

// Momentum implements surfm: the momentum surface closure. With a
// Dirichlet bottom BC the surface value is known and the flux is
// interpolated from the neighbouring stability functions; with the Ustar
// BC the flux is known and redistributed over the u/v components by the
// local velocity-difference ratio.
func Momentum(
	g *domain.Grid, sf *domain.SurfaceFields,
	u, ubot, v, vbot []float64,
	ufluxbot, vfluxbot, ugradbot, vgradbot []float64,
	zsl float64, bcbot domain.MomentumBC,
	cyclic domain.BoundaryCyclic,
) {
	ii := 1
	jj := g.Icells

	switch bcbot {
	case domain.MomentumDirichlet:
		forEachCell(g.Jend-g.Jstart, func(jo int) {
			j := g.Jstart + jo
			for i := g.Istart; i < g.Iend; i++ {
				ij := i + j*jj
				ijk := g.Index3D(i, j, g.Kstart)
				ufluxbot[ij] = -(u[ijk] - ubot[ij]) * 0.5 *
					(sf.Ustar[ij-ii]*most.Fm(zsl, sf.Z0m[ij-ii], sf.L[ij-ii]) + sf.Ustar[ij]*most.Fm(zsl, sf.Z0m[ij], sf.L[ij]))
				vfluxbot[ij] = -(v[ijk] - vbot[ij]) * 0.5 *
					(sf.Ustar[ij-jj]*most.Fm(zsl, sf.Z0m[ij-jj], sf.L[ij-jj]) + sf.Ustar[ij]*most.Fm(zsl, sf.Z0m[ij], sf.L[ij]))
			}
		})
		cyclic.Exec2D(ufluxbot)
		cyclic.Exec2D(vfluxbot)

	case domain.MomentumUstar:
		const minval = 1.0e-2
		forEachCell(g.Jend-g.Jstart, func(jo int) {
			j := g.Jstart + jo
			for i := g.Istart; i < g.Iend; i++ {
				ij := i + j*jj
				ijk := g.Index3D(i, j, g.Kstart)

				vonu2 := math.Max(minval, 0.25*(
					sq(v[ijk-ii]-vbot[ij-ii])+sq(v[ijk-ii+jj]-vbot[ij-ii+jj])+
						sq(v[ijk]-vbot[ij])+sq(v[ijk+jj]-vbot[ij+jj])))
				uonv2 := math.Max(minval, 0.25*(
					sq(u[ijk-jj]-ubot[ij-jj])+sq(u[ijk+ii-jj]-ubot[ij+ii-jj])+
						sq(u[ijk]-ubot[ij])+sq(u[ijk+ii]-ubot[ij+ii])))

				u2 := math.Max(minval, sq(u[ijk]-ubot[ij]))
				v2 := math.Max(minval, sq(v[ijk]-vbot[ij]))

				ustaronu4 := 0.5 * (sf.Ustar[ij-ii]*sf.Ustar[ij-ii]*sf.Ustar[ij-ii]*sf.Ustar[ij-ii] + sf.Ustar[ij]*sf.Ustar[ij]*sf.Ustar[ij]*sf.Ustar[ij])
				ustaronv4 := 0.5 * (sf.Ustar[ij-jj]*sf.Ustar[ij-jj]*sf.Ustar[ij-jj]*sf.Ustar[ij-jj] + sf.Ustar[ij]*sf.Ustar[ij]*sf.Ustar[ij]*sf.Ustar[ij])

				ufluxbot[ij] = -math.Copysign(1, u[ijk]-ubot[ij]) * math.Sqrt(ustaronu4/(1+vonu2/u2))
				vfluxbot[ij] = -math.Copysign(1, v[ijk]-vbot[ij]) * math.Sqrt(ustaronv4/(1+uonv2/v2))
			}
		})
		cyclic.Exec2D(ufluxbot)
		cyclic.Exec2D(vfluxbot)
	}

	forEachCell(g.Jcells, func(j int) {
		for i := 0; i < g.Icells; i++ {
			ij := i + j*jj
			ijk := g.Index3D(i, j, g.Kstart)
			// Linearly interpolated gradient, not the MO gradient, so advection
			// schemes never see an unresolvable slope.
			ugradbot[ij] = (u[ijk] - ubot[ij]) / zsl
			vgradbot[ij] = (v[ijk] - vbot[ij]) / zsl
		}
	})
}

func sq(x float64) float64 { return x * x }

// Scalar implements surfs: the scalar surface closure (thl, qt), shared by
// any tracer that follows a similarity-theory bottom boundary. With a
// Dirichlet BC the surface value is known and the flux is derived from
// u*/fh; with a Flux BC the surface value is derived from the prescribed
// flux.
func Scalar(
	g *domain.Grid, sf *domain.SurfaceFields,
	varField, z0h []float64,
	varbot, vargradbot, varfluxbot []float64,
	zsl float64, bcbot domain.ScalarBC,
) {
	jj := g.Icells
	switch bcbot {
	case domain.ScalarDirichlet:
		forEachCell(g.Jcells, func(j int) {
			for i := 0; i < g.Icells; i++ {
				ij := i + j*jj
				ijk := g.Index3D(i, j, g.Kstart)
				varfluxbot[ij] = -(varField[ijk] - varbot[ij]) * sf.Ustar[ij] * most.Fh(zsl, z0h[ij], sf.L[ij])
				vargradbot[ij] = (varField[ijk] - varbot[ij]) / zsl
			}
		})
	case domain.ScalarFlux:
		forEachCell(g.Jcells, func(j int) {
			for i := 0; i < g.Icells; i++ {
				ij := i + j*jj
				ijk := g.Index3D(i, j, g.Kstart)
				varbot[ij] = varfluxbot[ij]/(sf.Ustar[ij]*most.Fh(zsl, z0h[ij], sf.L[ij])) + varField[ijk]
				vargradbot[ij] = (varField[ijk] - varbot[ij]) / zsl
			}
		})
	}
}

// AerodynamicResistance computes r_a = 1/(u* f_h(zsl, z0h, L)) at every
// cell, the resistance every tile's SEB solve divides the H/LE transfer
// coefficients by.
func AerodynamicResistance(g *domain.Grid, sf *domain.SurfaceFields, zsl float64, ra []float64) {
	forEachCell(g.Ijcells, func(ij int) {
		fh := most.Fh(zsl, sf.Z0h[ij], sf.L[ij])
		ra[ij] = 1 / (sf.Ustar[ij] * fh)
	})
}
