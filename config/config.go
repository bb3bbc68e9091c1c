/*package config reads the simulation configuration file. The file uses the
gcfg/INI dialect: one [Source] section whose Entry lines declare particle
sources, and optional [Particle "name"] subsections overriding the default
sampling distributions of a species.
*/
package config

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"

	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

const Example = `[Source]

# Each Entry declares one particle source as a mode keyword followed by
# positional parameters. Only the first entry is used; later ones are
# ignored.
#
# Modes and their parameters:
#   boxvolume  type xmin xmax ymin ymax zmin zmax activeTime psWeight(0/1)
#   cylvolume  type rmin rmax phiminDeg phimaxDeg zmin zmax activeTime psWeight(0/1)
#   STLvolume  type meshFile activeTime psWeight(0/1)
#   cylsurface type rmin rmax phiminDeg phimaxDeg zmin zmax activeTime EnormalBoost
#   STLsurface type meshFile activeTime EnormalBoost
#
# Lengths in meters, angles in degrees, times in seconds, energies in eV.
Entry = cylvolume neutron 0.16 0.5 0 360 0.005 1.145 200 1

[Particle "neutron"]
# Energy spectrum: density ~ E^SpectrumPower over [SpectrumEMin, SpectrumEMax],
# or a two-column (energy, density) text table named by SpectrumFile.
SpectrumEMin  = 0
SpectrumEMax  = 300e-9
SpectrumPower = 0.5

# Emission direction ranges, degrees. Defaults cover the full sphere.
# PhiVMinDeg   = 0
# PhiVMaxDeg   = 360
# ThetaVMinDeg = 0
# ThetaVMaxDeg = 180

# Probability of drawing spin projection +1. Default 0.5.
# PolarisationProb = 0.5`

// DegToRad converts configuration angles, which are given in degrees, to
// the radians used internally.
const DegToRad = math.Pi / 180

type SourceSection struct {
	Entry []string
}

type ParticleSection struct {
	SpectrumEMin  float64
	SpectrumEMax  float64
	SpectrumPower float64
	SpectrumFile  string

	PhiVMinDeg   float64
	PhiVMaxDeg   float64
	ThetaVMinDeg float64
	ThetaVMaxDeg float64

	PolarisationProb float64
}

type Config struct {
	Source   SourceSection
	Particle map[string]*ParticleSection
}

// Read parses the configuration file at fname.
func Read(fname string) (*Config, error) {
	cfg := &Config{}
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if !cfg.ValidSource() {
		return nil, fmt.Errorf("config: %s declares no [Source] entry", fname)
	}
	return cfg, nil
}

func (c *Config) ValidSource() bool {
	return len(c.Source.Entry) > 0
}

// SourceEntry returns the source declaration to use. Configurations may
// list several entries, but only the first one is honored.
func (c *Config) SourceEntry() string {
	return c.Source.Entry[0]
}

// Settings converts the [Particle] sections into per-species sampler
// settings. Unset fields keep their defaults; unknown species names are an
// error.
func (c *Config) Settings() (map[particle.Type]mc.TypeSettings, error) {
	out := make(map[particle.Type]mc.TypeSettings)
	for name, sec := range c.Particle {
		t, err := particle.TypeFromName(name)
		if err != nil {
			return nil, fmt.Errorf("config: [Particle %q]: %w", name, err)
		}

		s := mc.DefaultSettings()
		if sec.SpectrumFile != "" {
			s.SpectrumFile = sec.SpectrumFile
		} else if sec.SpectrumEMax > 0 || sec.SpectrumEMin > 0 {
			s.EMin = sec.SpectrumEMin
			s.EMax = sec.SpectrumEMax
			s.SpectrumPower = sec.SpectrumPower
		}
		if sec.PhiVMaxDeg != 0 || sec.PhiVMinDeg != 0 {
			s.PhiMin = sec.PhiVMinDeg * DegToRad
			s.PhiMax = sec.PhiVMaxDeg * DegToRad
		}
		if sec.ThetaVMaxDeg != 0 || sec.ThetaVMinDeg != 0 {
			s.ThetaMin = sec.ThetaVMinDeg * DegToRad
			s.ThetaMax = sec.ThetaVMaxDeg * DegToRad
		}
		if sec.PolarisationProb != 0 {
			s.PolarisationProb = sec.PolarisationProb
		}
		out[t] = s
	}
	return out, nil
}
