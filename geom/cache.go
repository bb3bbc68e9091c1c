package geom

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Source volumes and source surfaces may reference the same STL file, and
// loading plus bounding-box setup is not free, so loaded meshes are memoized
// by path. 16 slots is far more than any realistic geometry configuration
// uses.
var meshCache, _ = lru.New[string, *Mesh](16)

// LoadMesh reads the mesh at fname, reusing a previously loaded copy if one
// is cached. Meshes are never mutated after construction, so sharing is
// safe.
func LoadMesh(fname string) (*Mesh, error) {
	if m, ok := meshCache.Get(fname); ok {
		return m, nil
	}
	m, err := ReadSTL(fname)
	if err != nil {
		return nil, err
	}
	meshCache.Add(fname, m)
	return m, nil
}
