/*package mc contains the Monte Carlo random engine used by the particle
source: uniform and weighted scalar draws plus per-species energy spectra,
angular distributions, and polarisation dice.

Generators are not safe for concurrent use; every sampling thread needs its
own instance.
*/
package mc

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/num/rand"

	"github.com/ssc5/pentrack/particle"
)

const genType = rand.Xorshift

// TypeSettings configures the distributions of one particle species.
// Energies are in eV, angles in radians.
type TypeSettings struct {
	// Spectrum: density proportional to E^SpectrumPower over
	// [EMin, EMax], unless SpectrumFile names a two-column table of
	// (energy, density) pairs, which then takes precedence.
	EMin, EMax    float64
	SpectrumPower float64
	SpectrumFile  string

	// Emission direction: azimuth uniform over [PhiMin, PhiMax], polar
	// angle sin-weighted over [ThetaMin, ThetaMax].
	PhiMin, PhiMax     float64
	ThetaMin, ThetaMax float64

	// Probability of drawing spin projection +1.
	PolarisationProb float64
}

// DefaultSettings returns the distribution settings used when the
// configuration does not override them: an ultracold sqrt(E) spectrum up to
// 300 neV, isotropic emission, unpolarised.
func DefaultSettings() TypeSettings {
	return TypeSettings{
		EMin: 0, EMax: 300e-9, SpectrumPower: 0.5,
		PhiMin: 0, PhiMax: 2 * math.Pi,
		ThetaMin: 0, ThetaMax: math.Pi,
		PolarisationProb: 0.5,
	}
}

type typeDists struct {
	spec     spectrumSampler
	settings TypeSettings
}

// Generator draws all random quantities needed to start a particle.
type Generator struct {
	gen   *rand.Generator
	types map[particle.Type]*typeDists
}

// NewGenerator creates a time-seeded generator with the given per-species
// settings. Species without an entry fall back to DefaultSettings.
// Tabulated spectrum files are read eagerly, so a bad file fails here
// rather than mid-run.
func NewGenerator(settings map[particle.Type]TypeSettings) (*Generator, error) {
	g := &Generator{
		gen:   rand.NewTimeSeed(genType),
		types: make(map[particle.Type]*typeDists),
	}

	for _, t := range []particle.Type{
		particle.Neutron, particle.Proton, particle.Electron,
	} {
		s, ok := settings[t]
		if !ok {
			s = DefaultSettings()
		}
		spec, err := newSpectrumSampler(s)
		if err != nil {
			return nil, fmt.Errorf("mc: %s spectrum: %w", t, err)
		}
		g.types[t] = &typeDists{spec: spec, settings: s}
	}
	return g, nil
}

// UniformDist draws a value distributed uniformly over [lo, hi].
func (g *Generator) UniformDist(lo, hi float64) float64 {
	return g.gen.Uniform(lo, hi)
}

// LinearDist draws a value over [lo, hi] with density proportional to the
// value itself. This is the correct radial weighting for sampling
// uniformly over an annulus.
func (g *Generator) LinearDist(lo, hi float64) float64 {
	u := g.gen.Uniform(0, 1)
	return math.Sqrt(lo*lo + u*(hi*hi-lo*lo))
}

// SinDist draws an angle over [lo, hi] with density proportional to
// sin(x), the polar-angle weighting of an isotropic direction.
func (g *Generator) SinDist(lo, hi float64) float64 {
	u := g.gen.Uniform(0, 1)
	return math.Acos(math.Cos(lo) - u*(math.Cos(lo)-math.Cos(hi)))
}

// SinCosDist draws an angle over [lo, hi] within [0, pi/2] with density
// proportional to sin(x)cos(x), Lambert's law for emission from a surface.
func (g *Generator) SinCosDist(lo, hi float64) float64 {
	u := g.gen.Uniform(0, 1)
	slo, shi := math.Sin(lo), math.Sin(hi)
	return math.Asin(math.Sqrt(slo*slo + u*(shi*shi-slo*slo)))
}

// Spectrum draws a kinetic energy, in eV, from the configured energy
// spectrum of species t.
func (g *Generator) Spectrum(t particle.Type) float64 {
	return g.types[t].spec.sample(g)
}

// AngularDist draws an emission direction for species t: a uniform azimuth
// and a sin-weighted polar angle over the configured ranges.
func (g *Generator) AngularDist(t particle.Type) (phi, theta float64) {
	s := &g.types[t].settings
	phi = g.UniformDist(s.PhiMin, s.PhiMax)
	theta = g.SinDist(s.ThetaMin, s.ThetaMax)
	return phi, theta
}

// DicePolarisation draws a spin projection of +1 or -1 for species t.
func (g *Generator) DicePolarisation(t particle.Type) int {
	if g.gen.Uniform(0, 1) < g.types[t].settings.PolarisationProb {
		return 1
	}
	return -1
}
