package field

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/particle"
)

func TestGravitationalPotential(t *testing.T) {
	f := &Uniform{}

	// m*g*h/e for a neutron at 1 m is roughly 102.6 neV.
	v := f.PotentialEnergy(particle.Neutron, geom.Vec{0, 0, 1}, 1)
	assert.InDelta(t, 102.5e-9, v, 0.5e-9)

	// Linear in height, zero at the origin.
	assert.InDelta(t, 0, f.PotentialEnergy(particle.Neutron, geom.Vec{}, 1),
		1e-18)
	v2 := f.PotentialEnergy(particle.Neutron, geom.Vec{5, -2, 2}, 1)
	assert.InDelta(t, 2*v, v2, 1e-15)
}

func TestMagneticPotentialSplitsSpinStates(t *testing.T) {
	f := &Uniform{B: 1}
	pos := geom.Vec{0, 0, 0}

	up := f.PotentialEnergy(particle.Neutron, pos, 1)
	down := f.PotentialEnergy(particle.Neutron, pos, -1)

	// The neutron moment is negative, so the +1 projection is the
	// high-field seeker here: +-60 neV per tesla.
	assert.InDelta(t, 60.3e-9, up, 0.5e-9)
	assert.InDelta(t, -up, down, 1e-18)
}
