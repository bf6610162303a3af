package domain

// SurfaceFields holds the 2D (length Ijcells) surface-layer and
// land-surface-property slabs shared across the whole lowest boundary
// condition, independent of tile.
type SurfaceFields struct {
	Ustar []float64
	L     []float64
	Z0m   []float64
	Z0h   []float64

	DudzMO []float64
	DvdzMO []float64
	DbdzMO []float64

	Wl           []float64
	Interception []float64
	Throughfall  []float64
	Infiltration []float64
	Runoff       []float64

	GDCoeff        []float64
	CVeg           []float64
	LAI            []float64
	RsVegMin       []float64
	RsSoilMin      []float64
	LambdaStable   []float64
	LambdaUnstable []float64
	CsVeg          []float64

	WaterMask []bool // optional; nil when land_surface.swwater is false

	// Nobuk is the per-cell LUT bracket hint owned by the Obukhov solver
	// (see DESIGN.md "per-cell persistent solver state"); it is a plain
	// slab, not solver-internal static state, so it survives checkpointing.
	Nobuk []int
}

// Eps is the friction-velocity floor enforced everywhere u* is computed or
// divided by.
const Eps = 1e-4

// LBig is the magnitude substituted for the Obukhov length under
// neutral/near-neutral conditions.
const LBig = 1e12

// NewSurfaceFields allocates every slab at the given length and initialises
// u* and L to a small positive value, per the §3 lifecycle rule.
func NewSurfaceFields(n int) *SurfaceFields {
	f := &SurfaceFields{
		Ustar: make([]float64, n), L: make([]float64, n),
		Z0m: make([]float64, n), Z0h: make([]float64, n),
		DudzMO: make([]float64, n), DvdzMO: make([]float64, n), DbdzMO: make([]float64, n),
		Wl: make([]float64, n), Interception: make([]float64, n),
		Throughfall: make([]float64, n), Infiltration: make([]float64, n), Runoff: make([]float64, n),
		GDCoeff: make([]float64, n), CVeg: make([]float64, n), LAI: make([]float64, n),
		RsVegMin: make([]float64, n), RsSoilMin: make([]float64, n),
		LambdaStable: make([]float64, n), LambdaUnstable: make([]float64, n), CsVeg: make([]float64, n),
		Nobuk: make([]int, n),
	}
	for i := range f.Ustar {
		f.Ustar[i] = Eps
		f.L[i] = Eps
	}
	return f
}
