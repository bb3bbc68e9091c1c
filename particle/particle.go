/*package particle defines the particle species the source can emit and the
record describing one sampled initial state.

Species selection happens once at configuration-parse time: the declared
name is resolved into a Type, so the per-particle sampling path never
compares strings.
*/
package particle

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/ssc5/pentrack/geom"
)

// Physical constants, SI units unless noted.
const (
	GravAcc = 9.80665       // m/s^2
	EleE    = 1.602176634e-19 // C, also J per eV

	massNeutron  = 1.67492749804e-27 // kg
	massProton   = 1.67262192369e-27 // kg
	massElectron = 9.1093837015e-31  // kg

	momentNeutron  = -9.6623651e-27  // J/T
	momentProton   = 1.41060679736e-26 // J/T
	momentElectron = -9.2847647043e-24 // J/T

	chargeNeutron  = 0.0
	chargeProton   = EleE
	chargeElectron = -EleE

	speedOfLight = 299792458.0 // m/s
)

// Type enumerates the supported particle species.
type Type int

const (
	Neutron Type = iota
	Proton
	Electron
)

var typeNames = map[Type]string{
	Neutron:  "neutron",
	Proton:   "proton",
	Electron: "electron",
}

// TypeFromName resolves a declared species name. Unknown names are a
// configuration error.
func TypeFromName(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("particle: unknown particle type %q", name)
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Mass returns the rest mass of t in kg.
func (t Type) Mass() float64 {
	switch t {
	case Neutron:
		return massNeutron
	case Proton:
		return massProton
	default:
		return massElectron
	}
}

// Charge returns the electric charge of t in C.
func (t Type) Charge() float64 {
	switch t {
	case Neutron:
		return chargeNeutron
	case Proton:
		return chargeProton
	default:
		return chargeElectron
	}
}

// MagneticMoment returns the magnetic moment of t in J/T.
func (t Type) MagneticMoment() float64 {
	switch t {
	case Neutron:
		return momentNeutron
	case Proton:
		return momentProton
	default:
		return momentElectron
	}
}

// Status marks the fate of a sampled particle.
type Status int

const (
	// StatusOK is a particle with a valid initial state.
	StatusOK Status = iota
	// StatusInitialNotFound marks a particle whose starting position could
	// not be found within the trial budget of the phase-space search. It
	// must not be handed to a propagator.
	StatusInitialNotFound
)

// Particle is one sampled initial state. Energies are in eV, lengths in
// meters, times in seconds, angles in radians.
type Particle struct {
	ID           int
	Type         Type
	Time         float64
	Pos          geom.Vec
	Ekin         float64
	Phi, Theta   float64
	Polarisation int
	Status       Status

	hStart float64
}

// PotentialSource yields the potential energy, in eV, of a particle species
// at a point. The full field manager implements this; tests substitute
// analytic potentials.
type PotentialSource interface {
	PotentialEnergy(t Type, pos geom.Vec, polarisation int) float64
}

// New constructs a particle from sampled quantities. The total energy at
// the start point is fixed at construction from the kinetic energy and the
// local potential.
func New(id int, t Type, time float64, pos geom.Vec, ekin, phi, theta float64,
	polarisation int, fld PotentialSource) *Particle {

	p := &Particle{
		ID:           id,
		Type:         t,
		Time:         time,
		Pos:          pos,
		Ekin:         ekin,
		Phi:          phi,
		Theta:        theta,
		Polarisation: polarisation,
	}
	if fld != nil {
		p.hStart = ekin + fld.PotentialEnergy(t, pos, polarisation)
	} else {
		p.hStart = ekin
	}
	return p
}

// Hstart returns the total (kinetic plus potential) energy at the start
// point, in eV.
func (p *Particle) Hstart() float64 { return p.hStart }

// Dir returns the unit velocity direction of p.
func (p *Particle) Dir() geom.Vec {
	return geom.UnitFromAngles(p.Phi, p.Theta)
}

// Momentum returns the initial four-momentum of p in eV, using the
// relativistic momentum for the sampled kinetic energy.
func (p *Particle) Momentum() fmom.PxPyPzE {
	mc2 := p.Type.Mass() * speedOfLight * speedOfLight / EleE // eV
	e := p.Ekin + mc2
	pc := math.Sqrt(p.Ekin * (p.Ekin + 2*mc2))

	dir := p.Dir()
	return fmom.NewPxPyPzE(pc*dir[0], pc*dir[1], pc*dir[2], e)
}
