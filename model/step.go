package model

import (
	"github.com/sirupsen/logrus"

	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/seb"
	"github.com/microhh-go/landsurface/soil"
	"github.com/microhh-go/landsurface/surface"
)

// AtmosphereInputs are the per-step fields the host dynamical core and its
// collaborators (thermo, radiation, microphys) hand to one boundary
// condition step, per §6 "Inputs consumed from collaborators".
type AtmosphereInputs struct {
	U, V, B             []float64
	Ubot, Vbot, Bbot    []float64
	Thl, Qt             []float64
	ThlBot, QtBot       []float64
	ThlFluxBot, QtFluxBot []float64

	BfluxBot []float64
	DbRef    float64

	RhoRefH float64
	Press   float64

	SwDn, SwUp, LwDn, LwUp []float64
	RainRate               []float64

	SubDt float64
}

// Step runs the full A through J pipeline once over the whole (i,j) slab.
func (m *Model) Step(in AtmosphereInputs) error {
	zsl := m.Grid.Z[m.Grid.Kstart]

	// A+B+C: surface-layer stability.
	fallbacks := surface.Stability(m.Grid, m.Surface, in.U, in.V, in.B, in.Ubot, in.Vbot, in.Bbot,
		in.BfluxBot, in.DbRef, m.MBCBot, m.ThermoBC, m.Solver, m.Cyclic)
	m.countObukhovFallback(fallbacks)

	// D: momentum and scalar closure.
	ufluxbot := make([]float64, m.Grid.Ijcells)
	vfluxbot := make([]float64, m.Grid.Ijcells)
	ugradbot := make([]float64, m.Grid.Ijcells)
	vgradbot := make([]float64, m.Grid.Ijcells)
	surface.Momentum(m.Grid, m.Surface, in.U, in.Ubot, in.V, in.Vbot, ufluxbot, vfluxbot, ugradbot, vgradbot, zsl, m.MBCBot, m.Cyclic)
	surface.Scalar(m.Grid, m.Surface, in.Thl, m.Surface.Z0h, in.ThlBot, make([]float64, m.Grid.Ijcells), in.ThlFluxBot, zsl, m.ScalarBC)
	surface.Scalar(m.Grid, m.Surface, in.Qt, m.Surface.Z0h, in.QtBot, make([]float64, m.Grid.Ijcells), in.QtFluxBot, zsl, m.ScalarBC)

	ra := make([]float64, m.Grid.Ijcells)
	surface.AerodynamicResistance(m.Grid, m.Surface, zsl, ra)

	// E: soil hydraulic/thermal properties from the current moisture/temperature.
	soil.HydraulicProperties(m.Soil.ThetaSoil, m.Soil.SoilIndex, m.SoilLUT, m.Soil.MoistureDiffusivity, m.Soil.MoistureConductivity)
	soil.ThermalProperties(m.Soil.TSoil, m.Soil.SoilIndex, m.SoilLUT, m.Soil.ThermalDiffusivity, m.Soil.ThermalConductivity)

	// G+H: per-tile resistance and skin-temperature SEB.
	m.solveTiles(in, ra)

	// I: liquid-water skin reservoir.
	m.updateWaterSkin(in)

	// F: soil column diffusion.
	m.diffuseSoil(in)

	// J: tile aggregation + atmosphere BC close.
	surface.CloseBottomBC(m.Grid, m.Tiles, in.Thl, in.Qt, ra, in.RhoRefH, seb.Cp, seb.Lv)

	return nil
}

func (m *Model) countObukhovFallback(fallbacks int) {
	if fallbacks == 0 {
		return
	}
	m.Stats.ObukhovFallbackCount += fallbacks
	m.Log.WithFields(logrus.Fields{"component": "obukhov", "count": fallbacks}).
		Warn("Obukhov solver fell back to previous L")
}

func (m *Model) solveTiles(in AtmosphereInputs, ra []float64) {
	for ij := range ra {
		for _, kind := range []domain.TileKind{domain.TileVeg, domain.TileSoil, domain.TileWet} {
			tile := m.Tiles.Tiles[kind]
			if tile.Fraction[ij] == 0 {
				continue
			}
			rs := 0.0
			if kind != domain.TileWet {
				rs = tile.Rs[ij]
			}
			res := seb.Solve(seb.Inputs{
				Rad:      seb.RadiationInputs{SwDn: in.SwDn[ij], SwUp: in.SwUp[ij], LwDn: in.LwDn[ij], LwUp: in.LwUp[ij]},
				TAtmos:   in.Thl[m.Grid.Index3D(ij%m.Grid.Icells, ij/m.Grid.Icells, m.Grid.Kstart)],
				QtAtmos:  in.Qt[m.Grid.Index3D(ij%m.Grid.Icells, ij/m.Grid.Icells, m.Grid.Kstart)],
				TSoilTop: m.Soil.TSoil[ij*m.SoilGrid.Ktot+m.SoilGrid.Ktot-1],
				TBot:     tile.TBot[ij],
				Ra:       ra[ij],
				Rs:       rs,
				Lambda:   m.lambdaFor(ij),
				RhoRefH:  in.RhoRefH,
				Press:    in.Press,
			})
			tile.TBot[ij] = res.TBot
			tile.H[ij] = res.H
			tile.LE[ij] = res.LE
			tile.G[ij] = res.G
		}

		if m.SWWater {
			m.solveOpenWater(ij, in, ra)
		}
	}
}

// lambdaFor selects the stable/unstable skin-to-soil conductance by the
// sign of the skin-air buoyancy gradient, the simplest stability switch
// consistent with lambda_stable/lambda_unstable being configured as two
// separate scalars rather than a continuous function (§6).
func (m *Model) lambdaFor(ij int) float64 {
	if m.Surface.DbdzMO[ij] >= 0 {
		return m.Surface.LambdaStable[ij]
	}
	return m.Surface.LambdaUnstable[ij]
}

// solveOpenWater implements the supplemented water_mask short-circuit: the
// skin temperature is prescribed (tskin_water), so H/LE/G follow directly
// from the transfer coefficients without a Newton step.
func (m *Model) solveOpenWater(ij int, in AtmosphereInputs, ra []float64) {
	if m.Surface.WaterMask == nil || !m.Surface.WaterMask[ij] {
		return
	}
	qsat, _ := seb.QsatDqsatdT(m.TskinWater, in.Press)
	ijk := m.Grid.Index3D(ij%m.Grid.Icells, ij/m.Grid.Icells, m.Grid.Kstart)

	fH := in.RhoRefH * seb.Cp / ra[ij]
	fLE := in.RhoRefH * seb.Lv / ra[ij]

	wet := m.Tiles.Tiles[domain.TileWet]
	wet.TBot[ij] = m.TskinWater
	wet.H[ij] = fH * (m.TskinWater - in.Thl[ijk])
	wet.LE[ij] = fLE * (qsat - in.Qt[ijk])
	wet.G[ij] = 0
	wet.Fraction[ij] = 1

	veg := m.Tiles.Tiles[domain.TileVeg]
	soilTile := m.Tiles.Tiles[domain.TileSoil]
	veg.Fraction[ij] = 0
	soilTile.Fraction[ij] = 0
}

func (m *Model) updateWaterSkin(in AtmosphereInputs) {
	const interceptEff = 0.5
	veg := m.Tiles.Tiles[domain.TileVeg]
	soilTile := m.Tiles.Tiles[domain.TileSoil]
	wet := m.Tiles.Tiles[domain.TileWet]

	for ij := range m.Surface.Wl {
		res := seb.UpdateWaterSkin(seb.WaterSkinInputs{
			Wl:           m.Surface.Wl[ij],
			CVeg:         m.Surface.CVeg[ij],
			LAI:          m.Surface.LAI[ij],
			FracWet:      wet.Fraction[ij],
			FracVeg:      veg.Fraction[ij],
			FracSoil:     soilTile.Fraction[ij],
			LEWet:        wet.LE[ij],
			LEVeg:        veg.LE[ij],
			LESoil:       soilTile.LE[ij],
			RainRate:     in.RainRate[ij],
			InterceptEff: interceptEff,
			SubDt:        in.SubDt,
		})
		m.Surface.Wl[ij] += res.WlTend * in.SubDt
		m.Surface.Throughfall[ij] = res.Throughfall
		m.Surface.Interception[ij] = res.Interception
	}
}

func (m *Model) diffuseSoil(in AtmosphereInputs) {
	ktot := m.SoilGrid.Ktot
	soilTile := m.Tiles.Tiles[domain.TileSoil]

	gMean := make([]float64, m.Grid.Ijcells)
	surface.AggregateTiles(m.Tiles, func(t *domain.Tile) []float64 { return t.G }, gMean)

	for ij := 0; ij < m.Grid.Ijcells; ij++ {
		base := ij * ktot
		fld := m.Soil.ThetaSoil[base : base+ktot]
		kappaFull := m.Soil.MoistureDiffusivity[base : base+ktot]
		gammaFull := m.Soil.MoistureConductivity[base : base+ktot]
		source := m.Soil.Source[base : base+ktot]
		rootFrac := m.Soil.RootFraction[base : base+ktot]

		soil.RootWaterExtraction(source, fld, rootFrac, m.Tiles.Tiles[domain.TileVeg].LE[ij], m.SoilGrid.Dzi)

		hbase := ij * (ktot + 1)
		kappaH := m.Soil.DiffusivityH[hbase : hbase+ktot+1]
		gammaH := m.Soil.ConductivityH[hbase : hbase+ktot+1]
		soil.InterpolateHalfLevel(kappaH, kappaFull)
		soil.InterpolateHalfLevel(gammaH, gammaFull)

		fluxTop, fluxBot, condBot := soil.MoistureBCs(soilTile.LE[ij], soilTile.Fraction[ij], m.Surface.Throughfall[ij], gammaH[1], m.FreeDrain)
		gammaH[0] = condBot

		n := soil.SubStepsForStability(in.SubDt, maxOf(kappaFull), minOf(m.SoilGrid.Dz))
		subDt := in.SubDt / float64(n)
		tend := make([]float64, ktot)
		for s := 0; s < n; s++ {
			for k := range tend {
				tend[k] = 0
			}
			soil.DiffuseExplicit(tend, fld, kappaH, gammaH, source, fluxTop, fluxBot, m.SoilGrid.Dzi, m.SoilGrid.Dzhi, true, true)
			for k := 0; k < ktot; k++ {
				newTheta := fld[k] + tend[k]*subDt
				thetaRes := m.SoilLUT.Rows[m.Soil.SoilIndex[base+k]].ThetaRes
				if newTheta < thetaRes {
					newTheta = thetaRes
					m.Stats.ThetaClampCount++
					m.Log.WithFields(logrus.Fields{"ij": ij, "k": k}).Warn("soil moisture clamped at theta_res")
				}
				fld[k] = newTheta
			}
		}

		tFld := m.Soil.TSoil[base : base+ktot]
		tKappa := m.Soil.ThermalDiffusivity[base : base+ktot]
		tFluxTop, tFluxBot := soil.TemperatureBCs(gMean[ij], m.Soil.SoilIndex[base+ktot-1], m.SoilLUT)
		tKappaH := make([]float64, ktot+1)
		soil.InterpolateHalfLevel(tKappaH, tKappa)
		tTend := make([]float64, ktot)
		soil.DiffuseExplicit(tTend, tFld, tKappaH, make([]float64, ktot+1), nil, tFluxTop, tFluxBot, m.SoilGrid.Dzi, m.SoilGrid.Dzhi, false, false)
		for k := 0; k < ktot; k++ {
			tFld[k] += tTend[k] * in.SubDt
		}
	}

	m.Log.WithFields(logrus.Fields{"theta_clamp_count": m.Stats.ThetaClampCount}).Debug("soil column diffused")
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
