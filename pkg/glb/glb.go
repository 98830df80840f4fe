// Package glb provides a parser for binary glTF (GLB) containers.
// It decodes the chunked container layout and extracts vertex position
// and index data from the embedded binary payload.
package glb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// GLB container errors.
var (
	ErrTruncatedGLB      = errors.New("truncated GLB data")
	ErrInvalidGLBMagic   = errors.New("invalid GLB magic: expected 'glTF'")
	ErrMissingJSONChunk  = errors.New("GLB first chunk is not the JSON chunk")
	ErrInvalidMetadata   = errors.New("invalid GLB metadata JSON")
	ErrUnsupportedFormat = errors.New("unsupported GLB feature")
	ErrMalformedMesh     = errors.New("malformed mesh data")
)

// GLB layout constants.
const (
	glbMagic  = 0x46546C67 // "glTF"
	chunkJSON = 0x4E4F534A // "JSON"
	chunkBIN  = 0x004E4942 // "BIN\x00"

	headerSize      = 12
	chunkHeaderSize = 8
)

// Container holds the two chunks of a GLB file: the decoded metadata
// document and the raw binary payload. Bin is a subslice of the input
// buffer, never a copy, and never overlaps the metadata chunk.
type Container struct {
	Version uint32
	Doc     *Document
	Bin     []byte
}

// ParseContainer validates a GLB byte buffer and slices it into its
// metadata and binary-payload chunks. The buffer is not modified.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, ErrTruncatedGLB
	}
	if binary.LittleEndian.Uint32(data[0:4]) != glbMagic {
		return nil, ErrInvalidGLBMagic
	}

	c := &Container{
		Version: binary.LittleEndian.Uint32(data[4:8]),
	}
	// Total byte length at offset 8 must be present but is not enforced;
	// exporters disagree on whether it includes trailing padding.

	// Chunk 0: JSON metadata (required).
	jsonChunk, ctype, next, err := readChunk(data, headerSize)
	if err != nil {
		return nil, err
	}
	if ctype != chunkJSON {
		return nil, fmt.Errorf("%w: got chunk type 0x%08X", ErrMissingJSONChunk, ctype)
	}

	var doc Document
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	c.Doc = &doc

	// Chunk 1: binary payload (optional). The type tag is not enforced:
	// some writers emit nonstandard tags for the payload chunk.
	if next < len(data) {
		binChunk, _, _, err := readChunk(data, next)
		if err != nil {
			return nil, err
		}
		c.Bin = binChunk
	}

	return c, nil
}

// ParseContainerFile parses a GLB file from disk.
func ParseContainerFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GLB file: %w", err)
	}
	return ParseContainer(data)
}

// readChunk reads one 8-byte chunk header plus payload starting at
// offset. Returns the payload as a subslice of data, the chunk type,
// and the offset of the next chunk.
func readChunk(data []byte, offset int) (payload []byte, ctype uint32, next int, err error) {
	if offset+chunkHeaderSize > len(data) {
		return nil, 0, 0, ErrTruncatedGLB
	}
	length := int(binary.LittleEndian.Uint32(data[offset:]))
	ctype = binary.LittleEndian.Uint32(data[offset+4:])

	start := offset + chunkHeaderSize
	if length < 0 || start+length > len(data) {
		return nil, 0, 0, fmt.Errorf("%w: chunk at offset %d declares %d bytes past end of buffer",
			ErrTruncatedGLB, offset, length)
	}
	return data[start : start+length], ctype, start + length, nil
}
