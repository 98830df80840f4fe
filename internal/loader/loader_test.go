package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/morphview/internal/logger"
	"github.com/Faultbox/morphview/pkg/geometry"
)

func TestMain(m *testing.M) {
	// Silent logger; the fallback path logs warnings.
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func putU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// writeTriangleGLB writes a valid single-mesh GLB with the given
// non-indexed positions to dir and returns its path.
func writeTriangleGLB(t *testing.T, dir, name string, positions []float32) string {
	t.Helper()

	bin := make([]byte, len(positions)*4)
	for i, f := range positions {
		putU32(bin[i*4:], math.Float32bits(f))
	}

	jsonChunk := fmt.Sprintf(`{
		"meshes": [{"name": %q, "primitives": [{"attributes": {"POSITION": 0}}]}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": %d, "type": "VEC3"}],
		"bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": %d}],
		"buffers": [{"byteLength": %d}]
	}`, name, len(positions)/3, len(bin), len(bin))

	jsonPayload := []byte(jsonChunk)
	for len(jsonPayload)%4 != 0 {
		jsonPayload = append(jsonPayload, ' ')
	}

	total := 12 + 8 + len(jsonPayload) + 8 + len(bin)
	data := make([]byte, 0, total)

	header := make([]byte, 12)
	putU32(header[0:], 0x46546C67)
	putU32(header[4:], 2)
	putU32(header[8:], uint32(total))
	data = append(data, header...)

	chunk := make([]byte, 8)
	putU32(chunk[0:], uint32(len(jsonPayload)))
	putU32(chunk[4:], 0x4E4F534A)
	data = append(data, chunk...)
	data = append(data, jsonPayload...)

	putU32(chunk[0:], uint32(len(bin)))
	putU32(chunk[4:], 0x004E4942)
	data = append(data, chunk...)
	data = append(data, bin...)

	path := filepath.Join(dir, name+".glb")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadAll_EmptyPaths(t *testing.T) {
	_, err := LoadAll(nil, 2.0)
	if !errors.Is(err, ErrNoAssets) {
		t.Fatalf("expected ErrNoAssets, got %v", err)
	}
}

func TestLoadAll_SingleModel(t *testing.T) {
	dir := t.TempDir()
	path := writeTriangleGLB(t, dir, "tri", []float32{
		0, 0, 0,
		4, 0, 0,
		0, 4, 0,
	})

	assets, err := LoadAll([]string{path}, 2.0)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}

	a := assets[0]
	if a.Name != "tri" {
		t.Errorf("expected name 'tri', got %q", a.Name)
	}
	if a.Fallback {
		t.Error("expected no fallback for a valid file")
	}
	if a.Mesh.OriginalVertexCount != 3 {
		t.Errorf("expected 3 original vertices, got %d", a.Mesh.OriginalVertexCount)
	}

	// Normalized: largest extent equals the target size, centered at origin.
	b := geometry.ComputeBounds(a.Mesh.Positions)
	if ext := b.MaxExtent(); ext < 1.99999 || ext > 2.00001 {
		t.Errorf("expected max extent 2.0 after normalize, got %f", ext)
	}
	c := b.Center()
	for axis, v := range c {
		if v < -1e-5 || v > 1e-5 {
			t.Errorf("expected centered geometry, axis %d center is %f", axis, v)
		}
	}
}

func TestLoadAll_BadFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "broken.glb")
	if err := os.WriteFile(badPath, []byte("not a glb"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	assets, err := LoadAll([]string{badPath}, 2.0)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	a := assets[0]
	if !a.Fallback {
		t.Error("expected fallback for unparseable file")
	}
	if a.Name != "broken" {
		t.Errorf("expected name 'broken', got %q", a.Name)
	}

	want := len(geometry.FallbackSphere())
	if len(a.Mesh.Positions) != want {
		t.Errorf("expected %d floats from fallback sphere, got %d", want, len(a.Mesh.Positions))
	}
}

func TestLoadAll_MissingFileFallsBack(t *testing.T) {
	assets, err := LoadAll([]string{"/nonexistent/model.glb"}, 2.0)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !assets[0].Fallback {
		t.Error("expected fallback for missing file")
	}
}

func TestLoadAll_ReconcilesPool(t *testing.T) {
	dir := t.TempDir()

	// Two triangles (3 verts) and one quad fan (6 verts).
	small := writeTriangleGLB(t, dir, "small", []float32{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
	})
	big := writeTriangleGLB(t, dir, "big", []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		0, 0, 0, 1, 1, 0, 0, 1, 0,
	})

	assets, err := LoadAll([]string{small, big}, 2.0)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(assets[0].Mesh.Positions) != len(assets[1].Mesh.Positions) {
		t.Errorf("expected equal buffer lengths, got %d and %d",
			len(assets[0].Mesh.Positions), len(assets[1].Mesh.Positions))
	}
	if assets[0].Mesh.VertexCount != 6 {
		t.Errorf("expected padded count 6, got %d", assets[0].Mesh.VertexCount)
	}
	if assets[0].Mesh.OriginalVertexCount != 3 {
		t.Errorf("expected original count 3, got %d", assets[0].Mesh.OriginalVertexCount)
	}
	if assets[1].Mesh.OriginalVertexCount != 6 {
		t.Errorf("expected original count 6, got %d", assets[1].Mesh.OriginalVertexCount)
	}

	// Padding repeats existing vertices cyclically.
	p := assets[0].Mesh.Positions
	for v := 3; v < 6; v++ {
		src := (v % 3) * 3
		for j := 0; j < 3; j++ {
			if p[v*3+j] != p[src+j] {
				t.Errorf("vertex %d component %d: expected cyclic copy of vertex %d", v, j, v%3)
			}
		}
	}
}

func TestMeshes(t *testing.T) {
	assets := []Asset{
		{Name: "a", Mesh: geometry.CanonicalMesh{VertexCount: 3}},
		{Name: "b", Mesh: geometry.CanonicalMesh{VertexCount: 3}},
	}
	meshes := Meshes(assets)
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}
	if meshes[1].VertexCount != 3 {
		t.Errorf("expected vertex count 3, got %d", meshes[1].VertexCount)
	}
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"models/shape1.glb", "shape1"},
		{"/abs/path/thing.glb", "thing"},
		{"bare", "bare"},
	}
	for _, tt := range tests {
		if got := assetName(tt.path); got != tt.want {
			t.Errorf("assetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
