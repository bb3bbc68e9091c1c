/*package geom contains the geometric primitives used by the particle
source: 3D vectors, mesh triangles, and triangulated solids read from STL
files.

Everything here works in meters and uses float64, since source positions
feed directly into energy bookkeeping where single precision is not enough.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector. (Duh!)
type Vec [3]float64

// Add returns the sum of v and u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the difference of v and u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns v multiplied by the scalar a.
func (v Vec) Scale(a float64) Vec {
	return Vec{v[0] * a, v[1] * a, v[2] * a}
}

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the cross product of v and u.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// PolarAngles returns the azimuthal and polar angles of v, with phi in
// (-pi, pi] and theta in [0, pi].
func (v Vec) PolarAngles() (phi, theta float64) {
	phi = math.Atan2(v[1], v[0])
	theta = math.Acos(v.Unit()[2])
	return phi, theta
}

// UnitFromAngles returns the unit vector with azimuthal angle phi and polar
// angle theta.
func UnitFromAngles(phi, theta float64) Vec {
	sinT := math.Sin(theta)
	return Vec{
		math.Cos(phi) * sinT,
		math.Sin(phi) * sinT,
		math.Cos(theta),
	}
}
