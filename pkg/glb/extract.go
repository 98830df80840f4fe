package glb

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MeshPrimitive is one primitive's geometry: flat xyz position triples
// and an optional triangle index list. Indices is nil for non-indexed
// geometry.
type MeshPrimitive struct {
	Name      string
	Positions []float32
	Indices   []uint32
}

// VertexCount returns the number of position triples.
func (p *MeshPrimitive) VertexCount() int {
	return len(p.Positions) / 3
}

// Deindexed returns the flat triangle-list form of the primitive. For
// indexed geometry each output triple equals positions[indices[i]] in
// index order, duplicating shared vertices. Non-indexed primitives are
// returned as-is.
func (p *MeshPrimitive) Deindexed() []float32 {
	if p.Indices == nil {
		return p.Positions
	}
	out := make([]float32, 0, len(p.Indices)*3)
	for _, idx := range p.Indices {
		base := int(idx) * 3
		out = append(out, p.Positions[base], p.Positions[base+1], p.Positions[base+2])
	}
	return out
}

// ExtractMeshes walks the metadata mesh list in document order and
// materializes every primitive's positions and indices against the
// binary payload.
func ExtractMeshes(c *Container) ([]MeshPrimitive, error) {
	doc := c.Doc
	if len(doc.Buffers) > 1 {
		return nil, fmt.Errorf("%w: %d buffers declared, only the embedded payload is supported",
			ErrUnsupportedFormat, len(doc.Buffers))
	}
	if len(doc.Buffers) == 1 && doc.Buffers[0].URI != "" {
		return nil, fmt.Errorf("%w: buffer declares external uri %q, only the embedded payload is supported",
			ErrUnsupportedFormat, doc.Buffers[0].URI)
	}

	var prims []MeshPrimitive
	for mi := range doc.Meshes {
		mesh := &doc.Meshes[mi]
		for pi := range mesh.Primitives {
			mp, err := extractPrimitive(doc, c.Bin, &mesh.Primitives[pi])
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			mp.Name = mesh.Name
			prims = append(prims, *mp)
		}
	}
	return prims, nil
}

// extractPrimitive reads one primitive's POSITION accessor and, if
// declared, its index accessor.
func extractPrimitive(doc *Document, bin []byte, prim *Primitive) (*MeshPrimitive, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no POSITION attribute", ErrMalformedMesh)
	}

	positions, err := readPositions(doc, bin, posIdx)
	if err != nil {
		return nil, err
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = readIndices(doc, bin, *prim.Indices)
		if err != nil {
			return nil, err
		}
		vertexCount := uint32(len(positions) / 3)
		for _, idx := range indices {
			if idx >= vertexCount {
				return nil, fmt.Errorf("%w: index %d out of range (%d vertices)",
					ErrMalformedMesh, idx, vertexCount)
			}
		}
	}

	return &MeshPrimitive{Positions: positions, Indices: indices}, nil
}

// resolveAccessor validates an accessor index and returns the accessor
// together with its absolute byte offset into the binary payload:
// bufferView.byteOffset + accessor.byteOffset, both defaulting to 0.
func resolveAccessor(doc *Document, accIdx int) (*Accessor, int, error) {
	if accIdx < 0 || accIdx >= len(doc.Accessors) {
		return nil, 0, fmt.Errorf("%w: accessor index %d out of range", ErrMalformedMesh, accIdx)
	}
	acc := &doc.Accessors[accIdx]

	if acc.Count <= 0 {
		return nil, 0, fmt.Errorf("%w: accessor %d has invalid count %d", ErrMalformedMesh, accIdx, acc.Count)
	}
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("%w: accessor %d has no bufferView", ErrMalformedMesh, accIdx)
	}
	bvIdx := *acc.BufferView
	if bvIdx < 0 || bvIdx >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("%w: bufferView index %d out of range", ErrMalformedMesh, bvIdx)
	}
	bv := &doc.BufferViews[bvIdx]

	if bv.Buffer != 0 {
		return nil, 0, fmt.Errorf("%w: bufferView %d references buffer %d, only the embedded payload is supported",
			ErrUnsupportedFormat, bvIdx, bv.Buffer)
	}

	return acc, bv.ByteOffset + acc.ByteOffset, nil
}

// readPositions decodes accessor.count consecutive float32 xyz triples
// from the payload.
func readPositions(doc *Document, bin []byte, accIdx int) ([]float32, error) {
	acc, offset, err := resolveAccessor(doc, accIdx)
	if err != nil {
		return nil, err
	}

	// Division form keeps a huge count from overflowing the byte length.
	if offset < 0 || offset > len(bin) || acc.Count > (len(bin)-offset)/12 {
		return nil, fmt.Errorf("%w: POSITION data at offset %d for %d vertices outside payload (%d bytes)",
			ErrMalformedMesh, offset, acc.Count, len(bin))
	}

	out := make([]float32, acc.Count*3)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(bin[offset+i*4:]))
	}
	return out, nil
}

// readIndices decodes an index accessor. The component type selects
// u16 vs u32 decoding; anything else is unsupported.
func readIndices(doc *Document, bin []byte, accIdx int) ([]uint32, error) {
	acc, offset, err := resolveAccessor(doc, accIdx)
	if err != nil {
		return nil, err
	}

	var compSize int
	switch acc.ComponentType {
	case ComponentUnsignedShort:
		compSize = 2
	case ComponentUnsignedInt:
		compSize = 4
	default:
		return nil, fmt.Errorf("%w: index component type %d", ErrUnsupportedFormat, acc.ComponentType)
	}

	if offset < 0 || offset > len(bin) || acc.Count > (len(bin)-offset)/compSize {
		return nil, fmt.Errorf("%w: index data at offset %d for %d indices outside payload (%d bytes)",
			ErrMalformedMesh, offset, acc.Count, len(bin))
	}

	out := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case ComponentUnsignedShort:
		for i := range out {
			out[i] = uint32(binary.LittleEndian.Uint16(bin[offset+i*2:]))
		}
	case ComponentUnsignedInt:
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(bin[offset+i*4:])
		}
	}
	return out, nil
}
