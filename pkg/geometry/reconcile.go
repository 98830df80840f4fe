package geometry

import "fmt"

// CanonicalMesh is a reconciled vertex set sharing one vertex count
// with every other mesh in its pool. Padding only ever adds vertices;
// OriginalVertexCount keeps the true model complexity for display.
type CanonicalMesh struct {
	Positions           []float32
	VertexCount         int
	OriginalVertexCount int
}

// Reconcile pads every mesh to the vertex count of the largest one so
// all of them can share a single interpolation buffer layout. A mesh
// with fewer vertices keeps its own vertices in [0, original) and fills
// [original, max) with vertex i mod original, cyclically repeating
// existing points.
//
// The repeated vertices collapse onto existing ones while the mesh is
// at rest and only separate once a morph target assigns them somewhere
// else; the payoff is a well-defined 1:1 correspondence between any two
// meshes in the pool. Reconcile must run once over the entire pool the
// system will ever morph between.
func Reconcile(meshes [][]float32) ([]CanonicalMesh, error) {
	maxCount := 0
	for i, m := range meshes {
		count := len(m) / 3
		if count == 0 {
			return nil, fmt.Errorf("mesh %d: %w", i, ErrEmptyMesh)
		}
		if count > maxCount {
			maxCount = count
		}
	}

	out := make([]CanonicalMesh, len(meshes))
	for i, m := range meshes {
		original := len(m) / 3
		padded := make([]float32, maxCount*3)
		copy(padded, m[:original*3])
		for v := original; v < maxCount; v++ {
			src := (v % original) * 3
			padded[v*3] = m[src]
			padded[v*3+1] = m[src+1]
			padded[v*3+2] = m[src+2]
		}
		out[i] = CanonicalMesh{
			Positions:           padded,
			VertexCount:         maxCount,
			OriginalVertexCount: original,
		}
	}
	return out, nil
}
