package glb

// Accessor component types recognized for index data.
const (
	ComponentUnsignedShort = 5123 // u16
	ComponentUnsignedInt   = 5125 // u32
)

// Document is the subset of the glTF metadata consumed by the mesh
// extractor. Unknown fields are ignored by the JSON decoder.
type Document struct {
	Meshes      []Mesh       `json:"meshes"`
	Accessors   []Accessor   `json:"accessors"`
	BufferViews []BufferView `json:"bufferViews"`
	Buffers     []Buffer     `json:"buffers"`
}

// Mesh is one entry in the metadata mesh list.
type Mesh struct {
	Name       string      `json:"name"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive maps attribute names to accessor indices, with an optional
// index accessor.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
}

// Accessor describes a typed view over a bufferView.
type Accessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

// BufferView describes a byte range of a buffer.
type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

// Buffer declares a data source. Only the single embedded binary
// payload (buffer 0, no URI) is supported.
type Buffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri"`
}
