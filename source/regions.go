package source

import (
	"math"

	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

// CuboidRegion samples points uniformly inside an axis-aligned box.
type CuboidRegion struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// RandomPointInSourceVolume implements RegionSampler.
func (r *CuboidRegion) RandomPointInSourceVolume(gen *mc.Generator) geom.Vec {
	return geom.Vec{
		gen.UniformDist(r.XMin, r.XMax),
		gen.UniformDist(r.YMin, r.YMax),
		gen.UniformDist(r.ZMin, r.ZMax),
	}
}

// CylinderRegion samples points uniformly inside a cylindrical shell
// segment. Angles are radians.
type CylinderRegion struct {
	RMin, RMax     float64
	PhiMin, PhiMax float64
	ZMin, ZMax     float64
}

// RandomPointInSourceVolume implements RegionSampler. The radius is drawn
// from a linear distribution to account for the r dr area element; a
// uniform radius would pile samples up near the axis.
func (r *CylinderRegion) RandomPointInSourceVolume(gen *mc.Generator) geom.Vec {
	rad := gen.LinearDist(r.RMin, r.RMax)
	phi := gen.UniformDist(r.PhiMin, r.PhiMax)
	return geom.Vec{
		rad * math.Cos(phi),
		rad * math.Sin(phi),
		gen.UniformDist(r.ZMin, r.ZMax),
	}
}

// MeshRegion samples points uniformly inside a triangulated solid by
// rejection from its bounding box. There is no iteration cap: a degenerate
// solid that contains no volume makes sampling spin forever, which is an
// accepted property of trusted input meshes. A warning is logged
// periodically so the degenerate case is at least visible.
type MeshRegion struct {
	Mesh *geom.Mesh
}

// rejectionWarnEvery is the number of consecutive misses between warnings
// while rejection-sampling a mesh region.
const rejectionWarnEvery = 10000000

// RandomPointInSourceVolume implements RegionSampler.
func (r *MeshRegion) RandomPointInSourceVolume(gen *mc.Generator) geom.Vec {
	b := r.Mesh.BBox()
	for n := 1; ; n++ {
		p := geom.Vec{
			gen.UniformDist(b.Min[0], b.Max[0]),
			gen.UniformDist(b.Min[1], b.Max[1]),
			gen.UniformDist(b.Min[2], b.Max[2]),
		}
		if r.Mesh.InSolid(p) {
			return p
		}
		if n%rejectionWarnEvery == 0 {
			log.Warnf("still rejection-sampling source mesh after %d draws", n)
		}
	}
}

// NewCuboidVolumeSource builds a volume source over an axis-aligned box.
func NewCuboidVolumeSource(t particle.Type, activeTime float64,
	phaseSpaceWeighting bool,
	xmin, xmax, ymin, ymax, zmin, zmax float64) *VolumeSource {

	return NewVolumeSource(t, activeTime, phaseSpaceWeighting,
		&CuboidRegion{xmin, xmax, ymin, ymax, zmin, zmax})
}

// NewCylindricalVolumeSource builds a volume source over a cylindrical
// shell segment. Angles are radians.
func NewCylindricalVolumeSource(t particle.Type, activeTime float64,
	phaseSpaceWeighting bool,
	rmin, rmax, phimin, phimax, zmin, zmax float64) *VolumeSource {

	return NewVolumeSource(t, activeTime, phaseSpaceWeighting,
		&CylinderRegion{rmin, rmax, phimin, phimax, zmin, zmax})
}

// NewMeshVolumeSource builds a volume source over the solid read from
// sourceFile.
func NewMeshVolumeSource(t particle.Type, activeTime float64,
	phaseSpaceWeighting bool, sourceFile string) (*VolumeSource, error) {

	m, err := geom.LoadMesh(sourceFile)
	if err != nil {
		return nil, err
	}
	return NewVolumeSource(t, activeTime, phaseSpaceWeighting,
		&MeshRegion{Mesh: m}), nil
}
