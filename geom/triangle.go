package geom

// Triangle is a single mesh facet. V holds the vertices in counterclockwise
// order when seen from outside the solid, so Normal points outward.
type Triangle struct {
	V [3]Vec
}

// Normal returns the unit outward normal of t.
func (t *Triangle) Normal() Vec {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Unit()
}

// Area returns the area of t.
func (t *Triangle) Area() float64 {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return 0.5 * e1.Cross(e2).Norm()
}

// Point maps two uniform draws in [0, 1] to a point distributed uniformly
// over the area of t. Draws with a + b > 1 are reflected back into the unit
// triangle, which keeps the distribution uniform instead of folding the
// parallelogram's second half onto an edge. (See Numerical Recipes 3rd ed.,
// p. 1114.)
func (t *Triangle) Point(a, b float64) Vec {
	if a+b > 1 {
		a, b = 1-a, 1-b
	}
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return t.V[0].Add(e1.Scale(a)).Add(e2.Scale(b))
}

// Barycentric returns the barycentric coordinates of p with respect to t,
// assuming p lies in the plane of t. The third coordinate is
// 1 - u - v.
func (t *Triangle) Barycentric(p Vec) (u, v float64) {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	d := p.Sub(t.V[0])

	d11 := e1.Dot(e1)
	d12 := e1.Dot(e2)
	d22 := e2.Dot(e2)
	dp1 := d.Dot(e1)
	dp2 := d.Dot(e2)

	det := d11*d22 - d12*d12
	u = (d22*dp1 - d12*dp2) / det
	v = (d11*dp2 - d12*dp1) / det
	return u, v
}
