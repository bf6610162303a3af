package domain

// SoilState holds the prognostic soil fields (temperature, moisture) and the
// per-timestep working fields the column solver derives from them, all
// shaped [Ijcells][Ktot] but stored flat, indexed through SoilGrid.
type SoilState struct {
	TSoil     []float64 // prognostic, Ijcells*Ktot
	ThetaSoil []float64 // prognostic, Ijcells*Ktot

	MoistureDiffusivity  []float64 // full-level, Ijcells*Ktot
	MoistureConductivity []float64 // full-level, Ijcells*Ktot

	DiffusivityH  []float64 // half-level moisture diffusivity, Ijcells*(Ktot+1)
	ConductivityH []float64 // half-level moisture conductivity, Ijcells*(Ktot+1)

	ThermalDiffusivity  []float64 // full-level, Ijcells*Ktot
	ThermalConductivity []float64 // full-level, Ijcells*Ktot

	Source       []float64 // root water extraction sink, Ijcells*Ktot
	RootFraction []float64 // Ijcells*Ktot, sums to 1 over k per column

	SoilIndex []int // Ijcells*Ktot, index into SoilLUT rows
}

// NewSoilState allocates a SoilState for n surface cells and ktot soil
// levels.
func NewSoilState(n, ktot int) *SoilState {
	return &SoilState{
		TSoil:     make([]float64, n*ktot),
		ThetaSoil: make([]float64, n*ktot),

		MoistureDiffusivity:  make([]float64, n*ktot),
		MoistureConductivity: make([]float64, n*ktot),

		DiffusivityH:  make([]float64, n*(ktot+1)),
		ConductivityH: make([]float64, n*(ktot+1)),

		ThermalDiffusivity:  make([]float64, n*ktot),
		ThermalConductivity: make([]float64, n*ktot),

		Source:       make([]float64, n*ktot),
		RootFraction: make([]float64, n*ktot),

		SoilIndex: make([]int, n*ktot),
	}
}

// SoilTypeRow is one row of the Van Genuchten soil-type lookup table,
// indexed by SoilState.SoilIndex.
type SoilTypeRow struct {
	ThetaRes float64
	ThetaWP  float64
	ThetaFC  float64
	ThetaSat float64

	GammaThetaSat float64

	VgA float64
	VgL float64
	VgN float64
	VgM float64

	KappaMin float64
	KappaMax float64
	GammaMin float64
	GammaMax float64

	GammaTDry float64
	RhoC      float64
}

// SoilLUT is the full table of soil-type rows read from the static
// configuration.
type SoilLUT struct {
	Rows []SoilTypeRow
}
