// Package geometry provides vertex-set transforms: canonical rescaling,
// vertex-count reconciliation, and the procedural fallback shape.
package geometry

import "errors"

// Geometry errors.
var (
	ErrDegenerateGeometry = errors.New("degenerate geometry: zero-extent bounding box")
	ErrEmptyMesh          = errors.New("mesh has no vertices")
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the box center.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// MaxExtent returns the largest of the three axis extents.
func (b Bounds) MaxExtent() float32 {
	ext := b.Max[0] - b.Min[0]
	if e := b.Max[1] - b.Min[1]; e > ext {
		ext = e
	}
	if e := b.Max[2] - b.Min[2]; e > ext {
		ext = e
	}
	return ext
}

// ComputeBounds returns the bounding box over a flat xyz position
// sequence. Positions must be non-empty.
func ComputeBounds(positions []float32) Bounds {
	b := Bounds{
		Min: [3]float32{positions[0], positions[1], positions[2]},
		Max: [3]float32{positions[0], positions[1], positions[2]},
	}
	for i := 3; i+2 < len(positions); i += 3 {
		for j := 0; j < 3; j++ {
			v := positions[i+j]
			if v < b.Min[j] {
				b.Min[j] = v
			}
			if v > b.Max[j] {
				b.Max[j] = v
			}
		}
	}
	return b
}

// Normalize recenters positions so the bounding-box center sits at the
// origin, then uniformly rescales so the largest axis extent equals
// targetSize. The scale divisor is the single largest extent, never
// per-axis, so aspect ratio is preserved. Mutates positions in place.
//
// A point set with zero extent on all axes cannot be scaled and returns
// ErrDegenerateGeometry; callers treat that mesh as invalid and fall
// back (see FallbackSphere).
func Normalize(positions []float32, targetSize float32) error {
	if len(positions) < 3 {
		return ErrEmptyMesh
	}

	b := ComputeBounds(positions)
	extent := b.MaxExtent()
	if extent == 0 {
		return ErrDegenerateGeometry
	}

	center := b.Center()
	scale := targetSize / extent

	for i := 0; i+2 < len(positions); i += 3 {
		positions[i] = (positions[i] - center[0]) * scale
		positions[i+1] = (positions[i+1] - center[1]) * scale
		positions[i+2] = (positions[i+2] - center[2]) * scale
	}
	return nil
}
