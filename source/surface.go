package source

import (
	"fmt"
	"math"

	"github.com/ssc5/pentrack/field"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/mc"
	"github.com/ssc5/pentrack/particle"
)

// weightedTri pairs a facet with the cumulative area of all facets up to
// and including it, for area-weighted selection.
type weightedTri struct {
	tri geom.Triangle
	cum float64
}

// SurfaceSource emits particles from a set of geometry facets, weighted by
// facet area, with a Lambertian angular distribution above each facet.
type SurfaceSource struct {
	base
	tris    []weightedTri
	area    float64
	eNormal float64 // extra kinetic energy injected along the normal, eV
}

// newSurfaceSource filters the geometry's facets down to those whose three
// vertices all satisfy inRegion, accumulating total source area.
func newSurfaceSource(t particle.Type, activeTime, eNormal float64,
	geo *geom.Geometry, inRegion func(geom.Vec) bool) (*SurfaceSource, error) {

	s := &SurfaceSource{
		base:    base{ptype: t, activeTime: activeTime},
		eNormal: eNormal,
	}
	for _, tri := range geo.Triangles() {
		if inRegion(tri.V[0]) && inRegion(tri.V[1]) && inRegion(tri.V[2]) {
			s.area += tri.Area()
			s.tris = append(s.tris, weightedTri{tri, s.area})
		}
	}
	if len(s.tris) == 0 {
		return nil, fmt.Errorf(
			"source: no geometry facets lie inside the source region")
	}

	log.Infof("source area: %g m^2 (%d facets)", s.area, len(s.tris))
	return s, nil
}

// Area returns the total emitting area in m^2.
func (s *SurfaceSource) Area() float64 { return s.area }

// selectTriangle picks a facet with probability proportional to its area:
// a uniform draw over the total area, then a linear scan of the cumulative
// sums. Ties go to the first facet whose cumulative sum reaches the draw.
func (s *SurfaceSource) selectTriangle(gen *mc.Generator) *geom.Triangle {
	randA := gen.UniformDist(0, s.area)
	for i := range s.tris {
		if randA <= s.tris[i].cum {
			return &s.tris[i].tri
		}
	}
	// Roundoff can push the draw past the last cumulative sum.
	return &s.tris[len(s.tris)-1].tri
}

// CreateParticle implements Source.
func (s *SurfaceSource) CreateParticle(gen *mc.Generator,
	fld field.Manager) *particle.Particle {

	t := gen.UniformDist(0, s.activeTime)

	tri := s.selectTriangle(gen)
	nv := tri.Normal()
	pos := tri.Point(gen.UniformDist(0, 1), gen.UniformDist(0, 1)).
		Add(nv.Scale(ReflectTolerance))

	ekin := gen.Spectrum(s.ptype)
	phiV := gen.UniformDist(0, 2*math.Pi)
	thetaV := gen.SinCosDist(0, 0.5*math.Pi) // Lambert's law
	if s.eNormal > 0 {
		// Add eNormal to the velocity component normal to the facet, then
		// recombine into an updated angle and energy.
		vnormal := math.Sqrt(ekin*math.Cos(thetaV)*math.Cos(thetaV) + s.eNormal)
		vtang := math.Sqrt(ekin) * math.Sin(thetaV)
		thetaV = math.Atan2(vtang, vnormal)
		ekin = vnormal*vnormal + vtang*vtang
	}

	// The direction was drawn in the hemisphere above the local z axis;
	// rotate it so that axis coincides with the facet normal.
	v := geom.RotateToNormal(geom.UnitFromAngles(phiV, thetaV), nv)
	phiV, thetaV = v.PolarAngles()

	polarisation := gen.DicePolarisation(s.ptype)
	return s.make(t, pos, ekin, phiV, thetaV, polarisation, fld)
}

// NewCylindricalSurfaceSource builds a surface source from all geometry
// facets contained in the cylindrical shell [rmin, rmax] x [phimin, phimax]
// x [zmin, zmax]. Angles are radians.
func NewCylindricalSurfaceSource(t particle.Type, activeTime, eNormal float64,
	geo *geom.Geometry,
	rmin, rmax, phimin, phimax, zmin, zmax float64) (*SurfaceSource, error) {

	inRegion := func(p geom.Vec) bool {
		r := math.Sqrt(p[0]*p[0] + p[1]*p[1])
		phi := math.Atan2(p[1], p[0])
		return r >= rmin && r <= rmax &&
			phi >= phimin && phi <= phimax &&
			p[2] >= zmin && p[2] <= zmax
	}
	return newSurfaceSource(t, activeTime, eNormal, geo, inRegion)
}

// NewMeshSurfaceSource builds a surface source from all geometry facets
// contained in the solid read from sourceFile.
func NewMeshSurfaceSource(t particle.Type, activeTime, eNormal float64,
	geo *geom.Geometry, sourceFile string) (*SurfaceSource, error) {

	m, err := geom.LoadMesh(sourceFile)
	if err != nil {
		return nil, err
	}
	return newSurfaceSource(t, activeTime, eNormal, geo, m.InSolid)
}
