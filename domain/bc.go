package domain

// MomentumBC selects how the momentum bottom boundary condition is posed.
type MomentumBC int

const (
	// MomentumDirichlet prescribes the surface velocity and solves for u*.
	MomentumDirichlet MomentumBC = iota
	// MomentumUstar prescribes u* directly.
	MomentumUstar
)

// ThermoBC selects how the buoyancy bottom boundary condition is posed.
type ThermoBC int

const (
	// ThermoDirichlet prescribes the surface buoyancy.
	ThermoDirichlet ThermoBC = iota
	// ThermoFlux prescribes the surface buoyancy flux.
	ThermoFlux
	// ThermoNeutral disables thermal forcing; L is pinned at -LBig everywhere.
	ThermoNeutral
)

// ScalarBC selects how a transported scalar's bottom boundary condition is
// posed; shared by momentum-adjacent scalars (thl, qt) other than buoyancy.
type ScalarBC int

const (
	// ScalarDirichlet prescribes the surface value and solves for the flux.
	ScalarDirichlet ScalarBC = iota
	// ScalarFlux prescribes the flux and solves for the surface value.
	ScalarFlux
)

// BoundaryCyclic is the injected halo-exchange capability. After Exec2D
// returns, the halo cells of field are consistent with the interior cells
// of the appropriate neighbour (cyclic wrap at domain edges in a
// single-process run, MPI neighbour exchange in a decomposed run). The core
// never constructs one itself -- it is supplied by the hosting dynamical
// core, which is the only component that knows about process topology.
type BoundaryCyclic interface {
	Exec2D(field []float64)
}
