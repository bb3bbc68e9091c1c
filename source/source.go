/*package source implements the particle-source subsystem: strategies that
sample one validated initial particle state per call, and the factory that
builds the configured strategy.

Exactly one source exists per run and is invoked synchronously, so nothing
here is safe for concurrent use.
*/
package source

import (
	"github.com/ssc5/pentrack/config"
	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

var log = config.NamedLogger("source")

// ReflectTolerance is the distance, in meters, by which surface-emitted
// particles are offset along the facet normal. Without it the very first
// propagation step re-intersects the emitting facet.
const ReflectTolerance = 1e-8

// Source produces one initial particle state per call.
type Source interface {
	// CreateParticle draws all random quantities for one particle and
	// returns the constructed particle. Callers must check the particle's
	// Status before simulating it.
	CreateParticle(gen *mc.Generator, fld field.Manager) *particle.Particle
}

// base carries the identity shared by every source strategy: the emitted
// species, the active-time window, and the running particle counter.
type base struct {
	ptype      particle.Type
	activeTime float64
	counter    int
}

// make increments the particle counter and constructs a particle from the
// sampled quantities. Ids are sequential over accepted particles only; the
// phase-space search queries potentials directly and never burns an id on a
// rejected trial.
func (b *base) make(t float64, pos geom.Vec, ekin, phi, theta float64,
	polarisation int, fld field.Manager) *particle.Particle {

	b.counter++
	return particle.New(
		b.counter, b.ptype, t, pos, ekin, phi, theta, polarisation, fld,
	)
}

// ParticleCount returns the number of particles constructed so far.
func (b *base) ParticleCount() int { return b.counter }
