// Package most implements the Businger-Dyer/Paulson universal functions of
// Monin-Obukhov similarity theory: the stability functions phi_m, phi_h and
// their integrated forms psi_m, psi_h, and the resulting profile factors
// Fm and Fh used throughout the surface-layer closure.
package most

import "math"

// Kappa is the von Karman constant.
const Kappa = 0.4

// PhiM returns the non-dimensional wind shear phi_m(zeta).
func PhiM(zeta float64) float64 {
	if zeta <= 0 {
		return math.Pow(1-16*zeta, -0.25)
	}
	return 1 + 5*zeta
}

// PhiH returns the non-dimensional temperature/scalar gradient phi_h(zeta).
func PhiH(zeta float64) float64 {
	if zeta <= 0 {
		return math.Pow(1-16*zeta, -0.5)
	}
	return 1 + 5*zeta
}

// PsiM returns the integrated momentum stability correction psi_m(zeta).
func PsiM(zeta float64) float64 {
	if zeta <= 0 {
		x := math.Pow(1-16*zeta, 0.25)
		return 2*math.Log((1+x)/2) + math.Log((1+x*x)/2) - 2*math.Atan(x) + 0.5*math.Pi
	}
	return -5 * zeta
}

// PsiH returns the integrated scalar stability correction psi_h(zeta).
func PsiH(zeta float64) float64 {
	if zeta <= 0 {
		x := math.Pow(1-16*zeta, 0.25)
		return 2 * math.Log((1+x*x)/2)
	}
	return -5 * zeta
}

// Fm returns the momentum profile factor relating u* to the wind speed
// difference across the surface layer, kappa / (ln(z/z0m) - psi_m(z/L) +
// psi_m(z0m/L)).
func Fm(z, z0m, l float64) float64 {
	return Kappa / (math.Log(z/z0m) - PsiM(z/l) + PsiM(z0m/l))
}

// Fh returns the scalar profile factor, kappa / (ln(z/z0h) - psi_h(z/L) +
// psi_h(z0h/L)).
func Fh(z, z0h, l float64) float64 {
	return Kappa / (math.Log(z/z0h) - PsiH(z/l) + PsiH(z0h/l))
}

// FmZeta is Fm parameterised directly by zeta=z/L instead of L, avoiding the
// 1/L singularity at neutral. z0m/L is recovered as zeta*z0m/z.
func FmZeta(z, z0m, zeta float64) float64 {
	return Kappa / (math.Log(z/z0m) - PsiM(zeta) + PsiM(zeta*z0m/z))
}

// FhZeta is Fh parameterised directly by zeta=z/L.
func FhZeta(z, z0h, zeta float64) float64 {
	return Kappa / (math.Log(z/z0h) - PsiH(zeta) + PsiH(zeta*z0h/z))
}
