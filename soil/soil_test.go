package soil

import (
	"math"
	"testing"

	"github.com/microhh-go/landsurface/domain"
)

func sandRow() domain.SoilTypeRow {
	return domain.SoilTypeRow{
		ThetaRes: 0.025, ThetaWP: 0.1, ThetaFC: 0.3, ThetaSat: 0.43,
		GammaThetaSat: 6.3e-6,
		VgA:           1.4e-3, VgL: 0.5, VgN: 2.5,
	}
}

func TestDeriveSoilTypeTable(t *testing.T) {
	rows := []domain.SoilTypeRow{sandRow()}
	DeriveSoilTypeTable(rows)
	if rows[0].VgM <= 0 || rows[0].VgM >= 1 {
		t.Errorf("vg_m out of range: %v", rows[0].VgM)
	}
	if rows[0].KappaMax <= rows[0].KappaMin {
		t.Errorf("kappa_max %v should exceed kappa_min %v", rows[0].KappaMax, rows[0].KappaMin)
	}
	if rows[0].GammaMax != rows[0].GammaThetaSat || rows[0].GammaMin != 0 {
		t.Errorf("conductivity bounds not [0, gamma_sat]")
	}
}

func TestHydraulicPropertiesClamped(t *testing.T) {
	rows := []domain.SoilTypeRow{sandRow()}
	DeriveSoilTypeTable(rows)
	lut := &domain.SoilLUT{Rows: rows}

	theta := []float64{rows[0].ThetaRes - 0.5, rows[0].ThetaSat + 0.5, 0.2}
	idx := []int{0, 0, 0}
	kappa := make([]float64, 3)
	gamma := make([]float64, 3)
	HydraulicProperties(theta, idx, lut, kappa, gamma)
	for i := range kappa {
		if kappa[i] < rows[0].KappaMin-1e-12 || kappa[i] > rows[0].KappaMax+1e-12 {
			t.Errorf("kappa[%d]=%v outside [%v,%v]", i, kappa[i], rows[0].KappaMin, rows[0].KappaMax)
		}
		if gamma[i] < -1e-12 || gamma[i] > rows[0].GammaThetaSat+1e-12 {
			t.Errorf("gamma[%d]=%v outside [0,%v]", i, gamma[i], rows[0].GammaThetaSat)
		}
	}
}

func TestRootFractionSumsToOne(t *testing.T) {
	zh := []float64{-1, -0.6, -0.3, -0.1, 0}
	rf := make([]float64, 4)
	RootFractionColumn(rf, zh, 3.0, 2.0)
	sum := 0.0
	for _, v := range rf {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("root fraction sums to %v, want 1", sum)
	}
}

func TestDiffuseExplicitConservesInterior(t *testing.T) {
	ktot := 4
	fld := []float64{280, 282, 284, 286}
	kappaH := []float64{0, 1e-6, 1e-6, 1e-6, 0}
	gammaH := make([]float64, ktot+1)
	source := make([]float64, ktot)
	tend := make([]float64, ktot)
	dzi := []float64{5, 5, 5, 5}
	dzhi := []float64{0, 5, 5, 5, 0}

	DiffuseExplicit(tend, fld, kappaH, gammaH, source, 0, 0, dzi, dzhi, false, false)
	total := 0.0
	for k, v := range tend {
		if math.IsNaN(v) {
			t.Errorf("tend[%d] is NaN", k)
		}
		total += v / dzi[k]
	}
	if math.Abs(total) > 1e-15 {
		t.Errorf("column content changes by %v with zero boundary fluxes, want 0", total)
	}
}

func TestRootWaterExtractionZeroWhenDry(t *testing.T) {
	theta := []float64{0, 0, 0, 0}
	rootFrac := []float64{0.5, 0.3, 0.15, 0.05}
	extraction := make([]float64, 4)
	dzi := []float64{5, 5, 5, 5}
	RootWaterExtraction(extraction, theta, rootFrac, 100, dzi)
	for k, v := range extraction {
		if v != 0 {
			t.Errorf("extraction[%d] = %v, want 0 for a bone-dry column", k, v)
		}
	}
}

func TestRootWaterExtractionZeroForDew(t *testing.T) {
	theta := []float64{0.2, 0.2, 0.2, 0.2}
	rootFrac := []float64{0.5, 0.3, 0.15, 0.05}
	extraction := make([]float64, 4)
	dzi := []float64{5, 5, 5, 5}
	RootWaterExtraction(extraction, theta, rootFrac, -50, dzi)
	for k, v := range extraction {
		if v != 0 {
			t.Errorf("extraction[%d] = %v, want 0 for dew (LE<0 clamped)", k, v)
		}
	}
}

func TestRootWeightedMeanTheta(t *testing.T) {
	rows := []domain.SoilTypeRow{sandRow()}
	DeriveSoilTypeTable(rows)
	lut := &domain.SoilLUT{Rows: rows}
	theta := []float64{0.3, 0.3, 0.3, 0.3}
	rootFrac := []float64{0.4, 0.3, 0.2, 0.1}
	idx := []int{0, 0, 0, 0}
	got := RootWeightedMeanTheta(theta, idx, rootFrac, lut)
	want := (0.3 - rows[0].ThetaWP) / (rows[0].ThetaFC - rows[0].ThetaWP)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("root-weighted theta = %v, want %v", got, want)
	}
}

func TestSubStepsForStability(t *testing.T) {
	n := SubStepsForStability(60, 1e-5, 0.02)
	if n < 1 {
		t.Errorf("substeps must be >= 1, got %d", n)
	}
}
