package geom

// Geometry is the full simulation geometry: the union of all solid surfaces
// a particle can interact with. Surface sources filter its facets down to
// the emitting region.
type Geometry struct {
	Mesh *Mesh
}

// NewGeometry wraps a mesh in a Geometry.
func NewGeometry(m *Mesh) *Geometry {
	return &Geometry{Mesh: m}
}

// LoadGeometry reads the full simulation geometry from an STL file.
func LoadGeometry(fname string) (*Geometry, error) {
	m, err := LoadMesh(fname)
	if err != nil {
		return nil, err
	}
	return NewGeometry(m), nil
}

// Triangles returns all facets of the geometry.
func (g *Geometry) Triangles() []Triangle {
	if g == nil || g.Mesh == nil {
		return nil
	}
	return g.Mesh.Tris
}
