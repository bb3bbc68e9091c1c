package source

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

func init() {
	// Construction and phase-space progress logging drowns test output.
	log.Logger.SetLevel(logrus.ErrorLevel)
}

// testGenerator returns a generator whose neutron spectrum is pinned to a
// single energy, so energy assertions are exact.
func testGenerator(t *testing.T, ekin float64) *mc.Generator {
	t.Helper()
	s := mc.DefaultSettings()
	s.EMin, s.EMax = ekin, ekin
	gen, err := mc.NewGenerator(map[particle.Type]mc.TypeSettings{
		particle.Neutron: s,
	})
	require.NoError(t, err)
	return gen
}

func fullCylinderSource(t *testing.T, geo *geom.Geometry,
	eNormal float64) *SurfaceSource {
	t.Helper()
	s, err := NewCylindricalSurfaceSource(particle.Neutron, 100, eNormal,
		geo, 0, 100, -math.Pi, math.Pi, -100, 100)
	require.NoError(t, err)
	return s
}

func TestSurfaceFilterExcludesPartialTriangles(t *testing.T) {
	inside := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	partial := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 50}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{inside, partial}))

	// z range excludes one vertex of the second facet.
	s, err := NewCylindricalSurfaceSource(particle.Neutron, 100, 0,
		geo, 0, 100, -math.Pi, math.Pi, -1, 1)
	require.NoError(t, err)

	assert.Len(t, s.tris, 1)
	assert.InDelta(t, inside.Area(), s.Area(), 1e-12)
}

func TestSurfaceFilterEmptyRegion(t *testing.T) {
	tri := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{tri}))

	_, err := NewCylindricalSurfaceSource(particle.Neutron, 100, 0,
		geo, 0, 100, -math.Pi, math.Pi, 5, 10)
	assert.Error(t, err)
}

func TestSurfaceAreaWeightedSelection(t *testing.T) {
	small := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	big := geom.Triangle{V: [3]geom.Vec{{0, 0, 1}, {2, 0, 1}, {0, 2, 1}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{small, big}))

	s := fullCylinderSource(t, geo, 0)
	require.InDelta(t, 2.5, s.Area(), 1e-12)

	gen := testGenerator(t, 100e-9)
	n := 10000
	nBig := 0
	for i := 0; i < n; i++ {
		tri := s.selectTriangle(gen)
		if tri.V[0][2] == 1 {
			nBig++
		}
	}

	// Selection frequency converges to the 0.8 : 0.2 area ratio.
	assert.InDelta(t, 0.8, float64(nBig)/float64(n), 0.02)
}

func TestSurfaceCreateParticle(t *testing.T) {
	tri := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{tri}))

	s := fullCylinderSource(t, geo, 0)
	gen := testGenerator(t, 100e-9)
	fld := &field.Uniform{}

	for i := 0; i < 1000; i++ {
		p := s.CreateParticle(gen, fld)

		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, particle.StatusOK, p.Status)
		assert.True(t, p.Time >= 0 && p.Time <= 100)
		assert.True(t, p.Polarisation == 1 || p.Polarisation == -1)

		// The facet lies in the xy plane with normal +z: emitted points
		// sit one tolerance above it, directions point into the upper
		// hemisphere.
		assert.InDelta(t, ReflectTolerance, p.Pos[2], 1e-15)
		assert.True(t, p.Pos[0] >= 0 && p.Pos[1] >= 0 &&
			p.Pos[0]+p.Pos[1] <= 1+1e-12)
		assert.Less(t, p.Theta, 0.5*math.Pi)

		assert.InDelta(t, 100e-9, p.Ekin, 1e-18)
	}
}

func TestSurfaceLambertianPolarAngle(t *testing.T) {
	tri := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{tri}))

	s := fullCylinderSource(t, geo, 0)
	gen := testGenerator(t, 100e-9)
	fld := &field.Uniform{}

	// For a cosine-weighted polar angle the mean of cos^2(theta) is 1/2.
	n := 20000
	var cosSq float64
	for i := 0; i < n; i++ {
		p := s.CreateParticle(gen, fld)
		c := math.Cos(p.Theta)
		cosSq += c * c
	}
	assert.InDelta(t, 0.5, cosSq/float64(n), 0.01)
}

func TestSurfaceNormalEnergyBoost(t *testing.T) {
	tri := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{tri}))

	ekin, boost := 100e-9, 50e-9
	s := fullCylinderSource(t, geo, boost)
	gen := testGenerator(t, ekin)
	fld := &field.Uniform{}

	for i := 0; i < 1000; i++ {
		p := s.CreateParticle(gen, fld)

		// The boost injects a fixed extra energy along the facet normal:
		// Ekin' = Ekin*cos^2 + Eboost + Ekin*sin^2.
		assert.InDelta(t, ekin+boost, p.Ekin, 1e-18)
		assert.Less(t, p.Theta, 0.5*math.Pi)
	}
}

func TestSurfaceRotatesIntoFacetFrame(t *testing.T) {
	// A facet in the xz plane with normal -y: all emission directions
	// must point into y < 0.
	tri := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{tri}))

	require.InDelta(t, -1.0, tri.Normal()[1], 1e-12)

	s := fullCylinderSource(t, geo, 0)
	gen := testGenerator(t, 100e-9)
	fld := &field.Uniform{}

	for i := 0; i < 1000; i++ {
		p := s.CreateParticle(gen, fld)
		dir := p.Dir()
		assert.Negative(t, dir[1])
		assert.Negative(t, p.Pos[1]) // offset along the outward normal
	}
}
