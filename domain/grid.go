// Package domain holds the data model shared by the surface-layer,
// resistance, energy-balance and soil-column components: the atmosphere
// grid, the soil grid, the 2D surface field slabs, the per-tile fields and
// the soil state and lookup table, plus the boundary-condition enumeration
// and the injected cyclic-halo capability. It carries no physics -- every
// field here is a plain slice indexed the way the teacher's Cell struct
// indexes its own fields, so the physics packages can operate on them with
// ordinary data-parallel loops.
package domain

// Grid describes the padded 3D atmosphere grid and its interior bounds.
type Grid struct {
	Istart, Iend int
	Jstart, Jend int
	Kstart, Kend int
	Icells       int
	Jcells       int
	Kcells       int
	Ijcells      int
	Z            []float64 // full-level heights, length Kcells
}

// NewGrid constructs a Grid from interior cell counts and a halo width.
func NewGrid(itot, jtot, ktot, halo int, z []float64) *Grid {
	icells := itot + 2*halo
	jcells := jtot + 2*halo
	return &Grid{
		Istart: halo, Iend: halo + itot,
		Jstart: halo, Jend: halo + jtot,
		Kstart: 0, Kend: ktot,
		Icells: icells, Jcells: jcells, Kcells: ktot,
		Ijcells: icells * jcells,
		Z:       z,
	}
}

// Index2D returns the flattened index of (i,j) in a icells-wide 2D slab.
func (g *Grid) Index2D(i, j int) int { return i + j*g.Icells }

// Index3D returns the flattened index of (i,j,k) in the 3D atmosphere grid.
func (g *Grid) Index3D(i, j, k int) int { return i + j*g.Icells + k*g.Ijcells }

// SoilGrid describes the 1D soil column shared by every surface cell: ktot
// full levels at negative, upward-increasing depths z, and the half levels
// zh bracketing them.
type SoilGrid struct {
	Ktot int
	Z    []float64 // full-level depths, length Ktot, negative, increasing upward
	Zh   []float64 // half-level depths, length Ktot+1
	Dz   []float64
	Dzh  []float64
	Dzi  []float64
	Dzhi []float64
}

// NewSoilGrid builds a SoilGrid from full and half-level depths, deriving
// the layer thicknesses and their inverses.
func NewSoilGrid(z, zh []float64) *SoilGrid {
	ktot := len(z)
	dz := make([]float64, ktot)
	dzi := make([]float64, ktot)
	for k := 0; k < ktot; k++ {
		dz[k] = zh[k+1] - zh[k]
		dzi[k] = 1 / dz[k]
	}
	dzh := make([]float64, ktot+1)
	dzhi := make([]float64, ktot+1)
	for k := 1; k < ktot; k++ {
		dzh[k] = z[k] - z[k-1]
		dzhi[k] = 1 / dzh[k]
	}
	// Bottom and top half levels mirror the adjacent full-level spacing; they
	// are never used as a real divisor because the column solver applies
	// prescribed fluxes there instead of a diffusive term.
	dzh[0] = dz[0]
	dzhi[0] = 1 / dzh[0]
	dzh[ktot] = dz[ktot-1]
	dzhi[ktot] = 1 / dzh[ktot]
	return &SoilGrid{Ktot: ktot, Z: z, Zh: zh, Dz: dz, Dzh: dzh, Dzi: dzi, Dzhi: dzhi}
}
