package geometry

import "math"

// UV-sphere resolution for the fallback shape.
const (
	sphereRings    = 24
	sphereSegments = 32
	sphereRadius   = 1.0
)

// FallbackSphere returns a deterministic UV-sphere point cloud used in
// place of an asset that failed to load. Only positions are produced;
// the morph pipeline never needs triangulation for it.
func FallbackSphere() []float32 {
	return SpherePoints(sphereRings, sphereSegments, sphereRadius)
}

// SpherePoints generates a UV-sphere point cloud at the given angular
// resolution. Poles are included once per segment so the vertex count
// stays a simple rings*segments product.
func SpherePoints(rings, segments int, radius float32) []float32 {
	out := make([]float32, 0, rings*segments*3)
	for r := 0; r < rings; r++ {
		// Latitude from pole to pole, excluding the south pole itself.
		phi := math.Pi * float64(r) / float64(rings)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			out = append(out,
				radius*float32(sinPhi*math.Cos(theta)),
				radius*float32(cosPhi),
				radius*float32(sinPhi*math.Sin(theta)),
			)
		}
	}
	return out
}
