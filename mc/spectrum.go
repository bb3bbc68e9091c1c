package mc

import (
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/table"
)

type spectrumSampler interface {
	sample(g *Generator) float64
}

func newSpectrumSampler(s TypeSettings) (spectrumSampler, error) {
	if s.SpectrumFile != "" {
		return newTableSpectrum(s.SpectrumFile)
	}
	if s.EMax < s.EMin {
		return nil, fmt.Errorf("EMax = %g below EMin = %g", s.EMax, s.EMin)
	}
	return &powerSpectrum{s.EMin, s.EMax, s.SpectrumPower}, nil
}

// powerSpectrum draws energies with density proportional to E^power over
// [emin, emax], by inverting the cumulative distribution analytically.
type powerSpectrum struct {
	emin, emax, power float64
}

func (p *powerSpectrum) sample(g *Generator) float64 {
	if p.emax == p.emin {
		return p.emin
	}
	u := g.UniformDist(0, 1)
	k := p.power + 1
	if k == 0 {
		// density ~ 1/E, log-uniform. emin must be positive here.
		return p.emin * math.Exp(u*math.Log(p.emax/p.emin))
	}
	lo, hi := math.Pow(p.emin, k), math.Pow(p.emax, k)
	return math.Pow(lo+u*(hi-lo), 1/k)
}

// tableSpectrum draws energies from a tabulated (energy, density) spectrum
// by inverting the trapezoid-integrated cumulative distribution, with
// linear interpolation inside each segment.
type tableSpectrum struct {
	energies []float64
	cdf      []float64 // cdf[i] integrates the density up to energies[i]
}

func newTableSpectrum(fname string) (*tableSpectrum, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}
	energies, density := cols[0], cols[1]
	if len(energies) < 2 {
		return nil, fmt.Errorf("%s: spectrum needs at least two rows", fname)
	}

	cdf := make([]float64, len(energies))
	for i := 1; i < len(energies); i++ {
		de := energies[i] - energies[i-1]
		if de <= 0 {
			return nil, fmt.Errorf("%s: energies not increasing at row %d",
				fname, i)
		}
		if density[i] < 0 || density[i-1] < 0 {
			return nil, fmt.Errorf("%s: negative density at row %d", fname, i)
		}
		cdf[i] = cdf[i-1] + 0.5*(density[i]+density[i-1])*de
	}
	if cdf[len(cdf)-1] <= 0 {
		return nil, fmt.Errorf("%s: spectrum integrates to zero", fname)
	}

	return &tableSpectrum{energies: energies, cdf: cdf}, nil
}

func (t *tableSpectrum) sample(g *Generator) float64 {
	target := g.UniformDist(0, t.cdf[len(t.cdf)-1])
	i := sort.SearchFloat64s(t.cdf, target)
	if i == 0 {
		return t.energies[0]
	}
	if i >= len(t.cdf) {
		return t.energies[len(t.energies)-1]
	}

	f := (target - t.cdf[i-1]) / (t.cdf[i] - t.cdf[i-1])
	return t.energies[i-1] + f*(t.energies[i]-t.energies[i-1])
}
