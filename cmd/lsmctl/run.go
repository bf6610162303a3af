package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/microhh-go/landsurface/config"
	"github.com/microhh-go/landsurface/domain"
	"github.com/microhh-go/landsurface/model"
	"github.com/microhh-go/landsurface/obukhov"
	"github.com/microhh-go/landsurface/soil"
	"github.com/microhh-go/landsurface/surface"
)

var (
	runSteps int
	runItot  int
	runJtot  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fixed number of boundary-condition steps against a synthetic domain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		m, in := buildSyntheticModel()
		if err := m.Init(); err != nil {
			return err
		}
		for n := 0; n < runSteps; n++ {
			if err := m.Step(in); err != nil {
				return err
			}
		}
		fmt.Printf("ran %d steps: obukhov fallbacks=%d theta clamps=%d\n",
			runSteps, m.Stats.ObukhovFallbackCount, m.Stats.ThetaClampCount)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runSteps, "steps", 10, "number of boundary-condition steps to run")
	runCmd.Flags().IntVar(&runItot, "itot", 8, "number of grid columns in x")
	runCmd.Flags().IntVar(&runJtot, "jtot", 8, "number of grid columns in y")
}

// buildSyntheticModel assembles a small flat, homogeneous domain for
// exercising the core without a host dynamical core, using the bound
// configuration's land-surface property defaults.
func buildSyntheticModel() (*model.Model, model.AtmosphereInputs) {
	const halo = 1
	const ktotAtmos = 1

	g := domain.NewGrid(runItot, runJtot, ktotAtmos, halo, []float64{10})
	sg := domain.NewSoilGrid(
		[]float64{-1.5, -0.94, -0.35, -0.035},
		[]float64{-1.89, -1.19, -0.645, -0.175, 0},
	)

	sf := domain.NewSurfaceFields(g.Ijcells)
	ts := domain.NewTileSet(g.Ijcells)
	soilState := domain.NewSoilState(g.Ijcells, sg.Ktot)
	lut := &domain.SoilLUT{Rows: []domain.SoilTypeRow{sandyLoamRow()}}
	soil.DeriveSoilTypeTable(lut.Rows)

	cVeg := config.Cfg.GetFloat64("land_surface.c_veg")
	lai := config.Cfg.GetFloat64("land_surface.lai")
	rsVegMin := config.Cfg.GetFloat64("land_surface.rs_veg_min")
	rsSoilMin := config.Cfg.GetFloat64("land_surface.rs_soil_min")
	z0m := config.Cfg.GetFloat64("boundary.z0m")
	z0h := config.Cfg.GetFloat64("boundary.z0h")

	for ij := range sf.Z0m {
		sf.Z0m[ij] = z0m
		sf.Z0h[ij] = z0h
		sf.CVeg[ij] = cVeg
		sf.LAI[ij] = lai
		sf.RsVegMin[ij] = rsVegMin
		sf.RsSoilMin[ij] = rsSoilMin
		sf.LambdaStable[ij] = config.Cfg.GetFloat64("land_surface.lambda_stable")
		sf.LambdaUnstable[ij] = config.Cfg.GetFloat64("land_surface.lambda_unstable")

		ts.Tiles[domain.TileVeg].Fraction[ij] = cVeg
		ts.Tiles[domain.TileSoil].Fraction[ij] = 1 - cVeg
		for k := 0; k < sg.Ktot; k++ {
			soilState.ThetaSoil[ij*sg.Ktot+k] = 0.25
			soilState.TSoil[ij*sg.Ktot+k] = 288
		}
	}

	m := &model.Model{
		Grid:      g,
		SoilGrid:  sg,
		Surface:   sf,
		Tiles:     ts,
		Soil:      soilState,
		SoilLUT:   lut,
		Cyclic:    surface.SingleProcessCyclic{Grid: g, Halo: halo},
		Solver:    obukhov.Iterative{},
		MBCBot:    domain.MomentumUstar,
		ThermoBC:  domain.ThermoFlux,
		ScalarBC:  domain.ScalarFlux,
		FreeDrain: config.Cfg.GetBool("land_surface.swfreedrainage"),
		SWWater:   config.Cfg.GetBool("land_surface.swwater"),
		SWHomog:   config.Cfg.GetBool("land_surface.swhomogeneous"),
		Log:       logrus.StandardLogger(),
	}

	n3 := g.Ijcells * g.Kcells
	in := model.AtmosphereInputs{
		U: make([]float64, n3), V: make([]float64, n3), B: make([]float64, n3),
		Ubot: make([]float64, g.Ijcells), Vbot: make([]float64, g.Ijcells), Bbot: make([]float64, g.Ijcells),
		Thl: make([]float64, n3), Qt: make([]float64, n3),
		ThlBot: make([]float64, g.Ijcells), QtBot: make([]float64, g.Ijcells),
		ThlFluxBot: make([]float64, g.Ijcells), QtFluxBot: make([]float64, g.Ijcells),
		BfluxBot: make([]float64, g.Ijcells),
		DbRef:    0,
		RhoRefH:  1.2,
		Press:    101325,
		SwDn:     make([]float64, g.Ijcells), SwUp: make([]float64, g.Ijcells),
		LwDn: make([]float64, g.Ijcells), LwUp: make([]float64, g.Ijcells),
		RainRate: make([]float64, g.Ijcells),
		SubDt:    60,
	}
	for ijk := range in.U {
		in.U[ijk] = 5
	}
	for ij := range in.Thl {
		in.Thl[ij] = 290
		in.Qt[ij] = 8e-3
	}
	for ij := range in.ThlBot {
		in.ThlBot[ij] = 288
		in.QtBot[ij] = 7.5e-3
		in.SwDn[ij] = 400
		in.LwDn[ij] = 300
		in.LwUp[ij] = 380
	}
	return m, in
}

func sandyLoamRow() domain.SoilTypeRow {
	return domain.SoilTypeRow{
		ThetaRes: 0.065, ThetaWP: 0.15, ThetaFC: 0.31, ThetaSat: 0.43,
		GammaThetaSat: 1.06e-5,
		VgA:           0.075, VgL: 0.5, VgN: 1.89,
	}
}
