package geom

import (
	"math"
)

// RotationToNormal returns the 3x3 rotation matrix, in row-major order, that
// maps the z axis onto the unit vector n. Directions drawn in the local
// hemisphere above a facet are rotated through this matrix into the global
// frame.
func RotationToNormal(n Vec) [9]float64 {
	z := Vec{0, 0, 1}
	axis := z.Cross(n)
	s := axis.Norm()
	c := n[2]

	if s == 0 {
		// n is parallel or antiparallel to z.
		if c > 0 {
			return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
		}
		return [9]float64{1, 0, 0, 0, -1, 0, 0, 0, -1}
	}

	// Rodrigues' formula, R = I + sin*K + (1-cos)*K^2 with K the cross
	// product matrix of the unit rotation axis.
	k := axis.Scale(1 / s)
	theta := math.Atan2(s, c)
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	t := 1 - cosT

	return [9]float64{
		cosT + k[0]*k[0]*t, k[0]*k[1]*t - k[2]*sinT, k[0]*k[2]*t + k[1]*sinT,
		k[1]*k[0]*t + k[2]*sinT, cosT + k[1]*k[1]*t, k[1]*k[2]*t - k[0]*sinT,
		k[2]*k[0]*t - k[1]*sinT, k[2]*k[1]*t + k[0]*sinT, cosT + k[2]*k[2]*t,
	}
}

// RotateToNormal rotates v from a frame whose z axis is the unit normal n
// into the global frame.
func RotateToNormal(v, n Vec) Vec {
	m := RotationToNormal(n)
	return Vec{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}
