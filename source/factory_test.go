package source

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/particle"
)

func writeTetraSTL(t *testing.T) string {
	t.Helper()
	tris := []geom.Triangle{
		{V: [3]geom.Vec{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}},
		{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}},
		{V: [3]geom.Vec{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}},
		{V: [3]geom.Vec{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "tetra.stl"))
	require.NoError(t, err)
	defer f.Close()

	fmt.Fprintln(f, "solid tetra")
	for i := range tris {
		n := tris[i].Normal()
		fmt.Fprintf(f, "facet normal %g %g %g\n", n[0], n[1], n[2])
		fmt.Fprintln(f, "outer loop")
		for _, v := range tris[i].V {
			fmt.Fprintf(f, "vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintln(f, "endloop")
		fmt.Fprintln(f, "endfacet")
	}
	fmt.Fprintln(f, "endsolid tetra")
	return f.Name()
}

func TestFactoryBoxVolume(t *testing.T) {
	src, err := New("boxvolume neutron 0 1 0 1 0 1 100 1", &geom.Geometry{})
	require.NoError(t, err)

	vs, ok := src.(*VolumeSource)
	require.True(t, ok)
	assert.Equal(t, particle.Neutron, vs.ptype)
	assert.Equal(t, 100.0, vs.activeTime)
	assert.True(t, vs.phaseSpaceWeighting)

	box, ok := vs.region.(*CuboidRegion)
	require.True(t, ok)
	assert.Equal(t, 1.0, box.XMax)
	assert.Equal(t, 1.0, box.ZMax)
}

func TestFactoryCylVolumeConvertsDegrees(t *testing.T) {
	src, err := New("cylvolume neutron 0.1 0.5 0 90 0 1 200 0", &geom.Geometry{})
	require.NoError(t, err)

	vs := src.(*VolumeSource)
	assert.False(t, vs.phaseSpaceWeighting)

	cyl, ok := vs.region.(*CylinderRegion)
	require.True(t, ok)
	assert.InDelta(t, 0.5*math.Pi, cyl.PhiMax, 1e-12)
	assert.InDelta(t, 0, cyl.PhiMin, 1e-12)
	assert.Equal(t, 0.1, cyl.RMin)
}

func TestFactorySTLVolume(t *testing.T) {
	fname := writeTetraSTL(t)
	src, err := New(fmt.Sprintf("STLvolume neutron %s 100 0", fname),
		&geom.Geometry{})
	require.NoError(t, err)

	vs := src.(*VolumeSource)
	region, ok := vs.region.(*MeshRegion)
	require.True(t, ok)

	gen := testGenerator(t, 100e-9)
	fld := &field.Uniform{}
	for i := 0; i < 200; i++ {
		p := vs.CreateParticle(gen, fld)
		assert.True(t, region.Mesh.InSolid(p.Pos),
			"sampled point %v outside solid", p.Pos)
	}
}

func TestFactoryCylSurface(t *testing.T) {
	inside := geom.Triangle{V: [3]geom.Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	outside := geom.Triangle{V: [3]geom.Vec{{0, 0, 40}, {1, 0, 40}, {0, 1, 40}}}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{inside, outside}))

	src, err := New("cylsurface neutron 0 10 -180 180 -1 1 100 0", geo)
	require.NoError(t, err)

	ss, ok := src.(*SurfaceSource)
	require.True(t, ok)
	assert.InDelta(t, inside.Area(), ss.Area(), 1e-12)
}

func TestFactorySTLSurface(t *testing.T) {
	fname := writeTetraSTL(t)

	// One facet inside the tetrahedral solid, one far outside.
	inner := geom.Triangle{
		V: [3]geom.Vec{{0.1, 0.1, 0.1}, {0.2, 0.1, 0.1}, {0.1, 0.2, 0.1}},
	}
	outer := geom.Triangle{
		V: [3]geom.Vec{{5, 5, 5}, {6, 5, 5}, {5, 6, 5}},
	}
	geo := geom.NewGeometry(geom.NewMesh([]geom.Triangle{inner, outer}))

	src, err := New(fmt.Sprintf("STLsurface neutron %s 100 0", fname), geo)
	require.NoError(t, err)

	ss := src.(*SurfaceSource)
	assert.InDelta(t, inner.Area(), ss.Area(), 1e-12)
}

func TestFactoryIncompleteEntry(t *testing.T) {
	_, err := New("boxvolume neutron 0 1 0 1 0 1 100", &geom.Geometry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boxvolume")
}

func TestFactoryMalformedNumber(t *testing.T) {
	_, err := New("boxvolume neutron 0 one 0 1 0 1 100 1", &geom.Geometry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one")
}

func TestFactoryBadWeightingFlag(t *testing.T) {
	_, err := New("boxvolume neutron 0 1 0 1 0 1 100 2", &geom.Geometry{})
	assert.Error(t, err)
}

func TestFactoryUnknownMode(t *testing.T) {
	_, err := New("sphere neutron 0 1 100 0", &geom.Geometry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sphere")
}

func TestFactoryUnknownParticle(t *testing.T) {
	_, err := New("boxvolume muon 0 1 0 1 0 1 100 1", &geom.Geometry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "muon")
}

func TestFactoryEmptyEntry(t *testing.T) {
	_, err := New("   ", &geom.Geometry{})
	assert.Error(t, err)
}
