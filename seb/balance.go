package seb

import "math"

// Physical constants shared by the energy balance, matching the values
// land_surface.cxx pulls from its Constants namespace.
const (
	Cp      = 1004.0    // J/(kg K), specific heat of dry air at constant pressure
	Lv      = 2.5e6      // J/kg, latent heat of vaporisation
	SigmaB  = 5.67e-8    // W/(m^2 K^4), Stefan-Boltzmann constant
	RhoWat  = 1.0e3      // kg/m^3
	RdRv    = 0.622
)

// Tetens saturation vapour pressure and its temperature derivative, used to
// linearise qsat(T) about the current skin temperature for the Newton step
// below.
func satPressure(tK float64) float64 {
	tC := tK - 273.15
	return 610.78 * math.Exp(17.2694*tC/(tC+238.3))
}

// QsatDqsatdT returns the saturation specific humidity at temperature tK and
// pressure p (Pa), and its derivative with respect to temperature.
func QsatDqsatdT(tK, p float64) (qsat, dqsatdT float64) {
	es := satPressure(tK)
	qsat = RdRv * es / (p - (1-RdRv)*es)
	const dT = 0.01
	es2 := satPressure(tK + dT)
	qsat2 := RdRv * es2 / (p - (1-RdRv)*es2)
	dqsatdT = (qsat2 - qsat) / dT
	return
}

// RadiationInputs are the four net-radiation components at the top of a
// tile, sign convention: all downward-positive per the component's own
// direction (sw_up/lw_up are the reflected/emitted magnitudes).
type RadiationInputs struct {
	SwDn, SwUp float64
	LwDn, LwUp float64
}

// Inputs collects every driver of one tile's skin-temperature Newton step,
// grounded on land_surface.cxx calc_fluxes.
type Inputs struct {
	Rad RadiationInputs

	TAtmos   float64 // lowest-level air temperature
	QtAtmos  float64
	TSoilTop float64 // uppermost soil-layer temperature, the ground-heat-flux sink
	TBot     float64 // previous skin temperature, Newton starting point

	Ra      float64 // aerodynamic resistance
	Rs      float64 // surface (canopy/soil) resistance; zero for the wet tile
	Lambda  float64 // skin/soil-layer conductance (stable or unstable value)
	RhoRefH float64
	Press   float64 // surface pressure, for qsat
}

// Result is the tile's solved skin temperature and the three energy-balance
// fluxes: H (sensible), LE (latent), G (ground conduction, positive from
// soil to skin).
type Result struct {
	TBot   float64
	H      float64
	LE     float64
	G      float64
}

// Solve performs the single linearised Newton step of calc_fluxes: it
// re-expresses the surface energy balance
//
//	SwDn - SwUp + LwDn + G = H + LE + sigma_b*T_bot^4
//
// (Rad.LwUp cancels out of it; the emitted longwave is the sigma_b term)
// around the previous T_bot using a linearised Stefan-Boltzmann term and a
// linearised qsat(T_bot), then solves the resulting linear equation for the
// new T_bot directly (no outer iteration: one linearisation per model
// timestep is what the host loop already does, matching the teacher).
func Solve(in Inputs) Result {
	qsatBot, dqsatdT := QsatDqsatdT(in.TBot, in.Press)

	rsLim := in.Rs
	if qsatBot < in.QtAtmos {
		rsLim = 0 // dew fall: canopy resistance does not apply to deposition
	}

	fH := in.RhoRefH * Cp / in.Ra
	fLE := in.RhoRefH * Lv / (in.Ra + rsLim)
	fG := in.Lambda

	qnet := -(in.Rad.SwDn - in.Rad.SwUp + in.Rad.LwDn - in.Rad.LwUp)

	num := -(qnet - in.Rad.LwUp -
		fH*in.TAtmos + (qsatBot-dqsatdT*in.TBot-in.QtAtmos)*fLE -
		fG*in.TSoilTop - 3*SigmaB*in.TBot*in.TBot*in.TBot*in.TBot)
	denom := fH + fLE*dqsatdT + fG + 4*SigmaB*in.TBot*in.TBot*in.TBot

	tBotNew := num / denom
	qsatNew := qsatBot + dqsatdT*(tBotNew-in.TBot)

	return Result{
		TBot: tBotNew,
		H:    fH * (tBotNew - in.TAtmos),
		LE:   fLE * (qsatNew - in.QtAtmos),
		G:    fG * (in.TSoilTop - tBotNew),
	}
}
