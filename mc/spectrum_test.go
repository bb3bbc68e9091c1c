package mc

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc5/pentrack/particle"
)

func writeSpectrumFile(t *testing.T, rows [][2]float64) string {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "spectrum.txt"))
	require.NoError(t, err)
	defer f.Close()
	for _, r := range rows {
		fmt.Fprintf(f, "%g %g\n", r[0], r[1])
	}
	return f.Name()
}

func TestTableSpectrum(t *testing.T) {
	// A triangular density rising linearly from 0 at E=0 to a peak at
	// E=1: mean 2/3, all draws inside [0, 1].
	fname := writeSpectrumFile(t, [][2]float64{
		{0, 0}, {0.25, 0.25}, {0.5, 0.5}, {0.75, 0.75}, {1, 1},
	})

	settings := map[particle.Type]TypeSettings{
		particle.Neutron: func() TypeSettings {
			s := DefaultSettings()
			s.SpectrumFile = fname
			return s
		}(),
	}
	g, err := NewGenerator(settings)
	require.NoError(t, err)

	n := 20000
	var sum float64
	for i := 0; i < n; i++ {
		e := g.Spectrum(particle.Neutron)
		require.True(t, e >= 0 && e <= 1)
		sum += e
	}
	assert.InDelta(t, 2.0/3, sum/float64(n), 0.01)
}

func TestTableSpectrumRejectsBadTables(t *testing.T) {
	// Energies must increase.
	fname := writeSpectrumFile(t, [][2]float64{{0, 1}, {0.5, 1}, {0.4, 1}})
	_, err := newTableSpectrum(fname)
	assert.Error(t, err)

	// A spectrum that integrates to zero is useless.
	fname = writeSpectrumFile(t, [][2]float64{{0, 0}, {1, 0}})
	_, err = newTableSpectrum(fname)
	assert.Error(t, err)

	// Missing files surface as errors at construction, not mid-run.
	_, err = newTableSpectrum("does/not/exist.txt")
	assert.Error(t, err)
}
