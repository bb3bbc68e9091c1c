/*package field supplies the potential-energy landscape the source samples
against. Only the pieces the source core needs are implemented: the
gravitational potential and the potential of a magnetic moment in a
homogeneous field. Trajectory integration lives elsewhere.
*/
package field

import (
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/particle"
)

// Manager answers potential-energy queries for the sampling loops.
type Manager interface {
	// PotentialEnergy returns the potential energy, in eV, of a particle
	// of the given species and spin projection at pos.
	PotentialEnergy(t particle.Type, pos geom.Vec, polarisation int) float64
}

// Uniform is a field manager with gravity along -z and a homogeneous
// magnetic field of magnitude B. Spin-up particles (polarisation +1) have
// their moment aligned with the field.
type Uniform struct {
	B float64 // T
}

// PotentialEnergy implements Manager.
func (f *Uniform) PotentialEnergy(t particle.Type, pos geom.Vec,
	polarisation int) float64 {

	grav := t.Mass() * particle.GravAcc * pos[2] / particle.EleE
	mag := -float64(polarisation) * t.MagneticMoment() * f.B / particle.EleE
	return grav + mag
}
