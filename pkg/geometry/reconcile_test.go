package geometry

import (
	"errors"
	"testing"
)

// gridPositions builds n distinct vertices.
func gridPositions(n int) []float32 {
	out := make([]float32, n*3)
	for i := 0; i < n; i++ {
		out[i*3] = float32(i)
		out[i*3+1] = float32(i) * 2
		out[i*3+2] = float32(i) * 3
	}
	return out
}

func TestReconcile_SharedCount(t *testing.T) {
	meshes := [][]float32{
		gridPositions(4),
		gridPositions(10),
		gridPositions(7),
	}

	out, err := Reconcile(meshes)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d meshes, want 3", len(out))
	}

	for i, m := range out {
		if m.VertexCount != 10 {
			t.Errorf("mesh %d: VertexCount = %d, want 10", i, m.VertexCount)
		}
		if len(m.Positions) != m.VertexCount*3 {
			t.Errorf("mesh %d: len(Positions) = %d, want %d", i, len(m.Positions), m.VertexCount*3)
		}
	}

	wantOriginals := []int{4, 10, 7}
	for i, m := range out {
		if m.OriginalVertexCount != wantOriginals[i] {
			t.Errorf("mesh %d: OriginalVertexCount = %d, want %d", i, m.OriginalVertexCount, wantOriginals[i])
		}
	}
}

func TestReconcile_CyclicPadding(t *testing.T) {
	small := gridPositions(4)
	out, err := Reconcile([][]float32{small, gridPositions(10)})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	m := out[0]
	// First OriginalVertexCount vertices are unchanged.
	for i := 0; i < m.OriginalVertexCount*3; i++ {
		if m.Positions[i] != small[i] {
			t.Fatalf("Positions[%d] = %v, want original %v", i, m.Positions[i], small[i])
		}
	}
	// Padding cycles: output[v] == output[v mod original].
	for v := m.OriginalVertexCount; v < m.VertexCount; v++ {
		src := v % m.OriginalVertexCount
		for j := 0; j < 3; j++ {
			if m.Positions[v*3+j] != m.Positions[src*3+j] {
				t.Errorf("vertex %d component %d = %v, want copy of vertex %d (%v)",
					v, j, m.Positions[v*3+j], src, m.Positions[src*3+j])
			}
		}
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	meshes := [][]float32{gridPositions(6), gridPositions(6)}
	out, err := Reconcile(meshes)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	for i, m := range out {
		if m.VertexCount != 6 || m.OriginalVertexCount != 6 {
			t.Errorf("mesh %d: counts = %d/%d, want 6/6", i, m.VertexCount, m.OriginalVertexCount)
		}
		for j, v := range meshes[i] {
			if m.Positions[j] != v {
				t.Fatalf("mesh %d: Positions[%d] changed on equal-length reconcile", i, j)
			}
		}
	}
}

func TestReconcile_EmptyMesh(t *testing.T) {
	_, err := Reconcile([][]float32{gridPositions(3), nil})
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("got error %v, want ErrEmptyMesh", err)
	}
}

func TestReconcile_SingleMesh(t *testing.T) {
	out, err := Reconcile([][]float32{gridPositions(5)})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if out[0].VertexCount != 5 || out[0].OriginalVertexCount != 5 {
		t.Errorf("counts = %d/%d, want 5/5", out[0].VertexCount, out[0].OriginalVertexCount)
	}
}

func TestFallbackSphere_Deterministic(t *testing.T) {
	a := FallbackSphere()
	b := FallbackSphere()

	if len(a) == 0 {
		t.Fatal("fallback sphere is empty")
	}
	if len(a)%3 != 0 {
		t.Fatalf("length %d is not a multiple of 3", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("fallback sphere is not deterministic")
		}
	}
}

func TestFallbackSphere_NotDegenerate(t *testing.T) {
	// The fallback must survive normalization, otherwise it cannot stand
	// in for a failed asset.
	points := FallbackSphere()
	if err := Normalize(points, 2); err != nil {
		t.Fatalf("fallback sphere failed normalization: %v", err)
	}
}

func TestSpherePoints_Count(t *testing.T) {
	points := SpherePoints(8, 12, 1)
	if len(points) != 8*12*3 {
		t.Errorf("got %d floats, want %d", len(points), 8*12*3)
	}
}
