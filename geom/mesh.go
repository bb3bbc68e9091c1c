package geom

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// All binary STL files are little endian.
var stlEndianness = binary.LittleEndian

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec
}

// Mesh is a closed triangulated solid.
type Mesh struct {
	Tris []Triangle
	bbox AABB
}

// NewMesh creates a mesh from a triangle list and computes its bounding box.
func NewMesh(tris []Triangle) *Mesh {
	m := &Mesh{Tris: tris}
	m.initBBox()
	return m
}

func (m *Mesh) initBBox() {
	if len(m.Tris) == 0 {
		return
	}
	m.bbox.Min = m.Tris[0].V[0]
	m.bbox.Max = m.Tris[0].V[0]
	for i := range m.Tris {
		for _, v := range m.Tris[i].V {
			for d := 0; d < 3; d++ {
				if v[d] < m.bbox.Min[d] {
					m.bbox.Min[d] = v[d]
				}
				if v[d] > m.bbox.Max[d] {
					m.bbox.Max[d] = v[d]
				}
			}
		}
	}
}

// BBox returns the axis-aligned bounding box of m.
func (m *Mesh) BBox() AABB { return m.bbox }

// Area returns the summed area of all facets of m.
func (m *Mesh) Area() float64 {
	sum := 0.0
	for i := range m.Tris {
		sum += m.Tris[i].Area()
	}
	return sum
}

// InSolid reports whether p lies inside the solid bounded by m. A ray is
// cast along +x and crossings are counted; an odd count means inside. The
// mesh must be closed for this to be meaningful.
func (m *Mesh) InSolid(p Vec) bool {
	b := m.bbox
	if p[0] < b.Min[0] || p[0] > b.Max[0] ||
		p[1] < b.Min[1] || p[1] > b.Max[1] ||
		p[2] < b.Min[2] || p[2] > b.Max[2] {
		return false
	}

	dir := Vec{1, 0, 0}
	crossings := 0
	for i := range m.Tris {
		if hit, dist := rayTriangle(p, dir, &m.Tris[i]); hit && dist > 0 {
			crossings++
		}
	}
	return crossings%2 == 1
}

const rayEps = 1e-12

// rayTriangle is the Moller-Trumbore ray-triangle intersection test. It
// returns the signed distance along dir if the ray hits t.
func rayTriangle(orig, dir Vec, t *Triangle) (bool, float64) {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -rayEps && a < rayEps {
		return false, 0
	}
	f := 1 / a
	s := orig.Sub(t.V[0])
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false, 0
	}
	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return false, 0
	}
	return true, f * e2.Dot(q)
}

// ReadSTL reads a triangle mesh from an STL file. Both the ASCII and the
// binary flavor are understood; degenerate facets with zero area are
// dropped.
func ReadSTL(fname string) (*Mesh, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	var tris []Triangle
	if looksASCII(data) {
		tris, err = parseASCIISTL(data)
	} else {
		tris, err = parseBinarySTL(data)
	}
	if err != nil {
		return nil, fmt.Errorf("geom: reading %s: %w", fname, err)
	}

	kept := tris[:0]
	for i := range tris {
		if tris[i].Area() > 0 {
			kept = append(kept, tris[i])
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("geom: %s contains no valid facets", fname)
	}

	return NewMesh(kept), nil
}

func looksASCII(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("solid")) &&
		bytes.Contains(head, []byte("facet"))
}

func parseBinarySTL(data []byte) ([]Triangle, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("binary STL shorter than its header")
	}
	n := stlEndianness.Uint32(data[80:84])
	if int64(len(data)) < 84+int64(n)*50 {
		return nil, fmt.Errorf("binary STL truncated: %d facets declared", n)
	}

	tris := make([]Triangle, n)
	buf := data[84:]
	for i := range tris {
		rec := buf[i*50:]
		// Skip the stored normal; it is recomputed from the vertices.
		for j := 0; j < 3; j++ {
			off := 12 + j*12
			for d := 0; d < 3; d++ {
				bits := stlEndianness.Uint32(rec[off+d*4:])
				tris[i].V[j][d] = float64(math.Float32frombits(bits))
			}
		}
	}
	return tris, nil
}

func parseASCIISTL(data []byte) ([]Triangle, error) {
	var (
		tris []Triangle
		cur  Triangle
		iv   int
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			iv = 0
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed vertex line %q",
					scanner.Text())
			}
			if iv >= 3 {
				return nil, fmt.Errorf("facet with more than 3 vertices")
			}
			for d := 0; d < 3; d++ {
				x, err := strconv.ParseFloat(fields[d+1], 64)
				if err != nil {
					return nil, err
				}
				cur.V[iv][d] = x
			}
			iv++
		case "endfacet":
			if iv != 3 {
				return nil, fmt.Errorf("facet with %d vertices", iv)
			}
			tris = append(tris, cur)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tris, nil
}
