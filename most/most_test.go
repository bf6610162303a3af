package most

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) < tol }

func TestPsiZeroAtNeutral(t *testing.T) {
	if !near(PsiM(0), 0, 1e-12) {
		t.Errorf("PsiM(0) = %v, want 0", PsiM(0))
	}
	if !near(PsiH(0), 0, 1e-12) {
		t.Errorf("PsiH(0) = %v, want 0", PsiH(0))
	}
}

func TestFmNeutral(t *testing.T) {
	// S1: z=10, z0m=0.1, L=-1e12 (effectively neutral).
	got := Fm(10, 0.1, -1e12)
	want := Kappa / math.Log(100)
	if !near(got, want, 1e-6) {
		t.Errorf("Fm neutral = %v, want %v", got, want)
	}
}

func TestPhiStableUnstable(t *testing.T) {
	if PhiM(0.5) != 1+5*0.5 {
		t.Errorf("PhiM stable branch wrong")
	}
	if PhiM(-0.5) == 1+5*0.5 {
		t.Errorf("PhiM unstable branch should differ from stable formula")
	}
}
