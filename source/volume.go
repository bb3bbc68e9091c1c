package source

import (
	"fmt"
	"math"

	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

// MaxDiceRoll bounds the number of trial positions the phase-space search
// may consume before giving up on a particle.
var MaxDiceRoll = 42000000

// RegionSampler draws a random point inside a bounded 3D region. Volume
// sources hold one and delegate all spatial sampling to it.
type RegionSampler interface {
	RandomPointInSourceVolume(gen *mc.Generator) geom.Vec
}

// VolumeSource emits particles from within a 3D region, optionally
// re-weighting the spatial density by the phase space available after
// subtracting the local potential energy.
type VolumeSource struct {
	base
	region              RegionSampler
	phaseSpaceWeighting bool
}

// NewVolumeSource builds a volume source over the given region sampler.
func NewVolumeSource(t particle.Type, activeTime float64,
	phaseSpaceWeighting bool, region RegionSampler) *VolumeSource {

	return &VolumeSource{
		base:                base{ptype: t, activeTime: activeTime},
		region:              region,
		phaseSpaceWeighting: phaseSpaceWeighting,
	}
}

// CreateParticle implements Source.
//
// With phase-space weighting enabled, the drawn spectrum energy is treated
// as the total energy H available to the particle. Candidate positions are
// accepted with probability sqrt((H-V)/H), the classical density of
// momentum states, and the final kinetic energy is corrected to H-V. If no
// acceptable position turns up within MaxDiceRoll trials the returned
// particle carries StatusInitialNotFound and must not be simulated.
func (s *VolumeSource) CreateParticle(gen *mc.Generator,
	fld field.Manager) *particle.Particle {

	t := gen.UniformDist(0, s.activeTime)
	e := gen.Spectrum(s.ptype)
	phiV, thetaV := gen.AngularDist(s.ptype)
	polarisation := gen.DicePolarisation(s.ptype)
	pos := s.region.RandomPointInSourceVolume(gen)

	if s.phaseSpaceWeighting {
		h := e // the spectrum determines the total energy
		log.Infof("looking for a %s starting position with total energy = %g neV",
			s.ptype, h*1e9)

		found := false
		for nroll := 0; nroll <= MaxDiceRoll; nroll++ {
			if nroll%100000 == 0 {
				fmt.Print(".") // progress
			}
			v := fld.PotentialEnergy(s.ptype, pos, polarisation)
			// Weight the spatial density with sqrt(Ekin/H). A potential
			// above H makes the argument negative, the square root NaN,
			// and the comparison false, so such spots always reject.
			if gen.UniformDist(0, 1) < math.Sqrt((h-v)/h) {
				e = h - v
				if e > 0 {
					found = true
					break
				}
			}
			pos = s.region.RandomPointInSourceVolume(gen)
		}
		fmt.Println()

		if !found {
			log.Warnf(
				"failed %d times to find a compatible spot, no particle will be simulated",
				MaxDiceRoll)
			p := s.make(t, pos, h, phiV, thetaV, polarisation, fld)
			p.Status = particle.StatusInitialNotFound
			return p
		}
	}

	return s.make(t, pos, e, phiV, thetaV, polarisation, fld)
}
