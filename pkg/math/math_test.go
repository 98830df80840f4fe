package math

import (
	gomath "math"
	"testing"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestVec3_Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want z", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if !approx(n.Length(), 1) {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestMat4_IdentityTransform(t *testing.T) {
	p := Vec3{1, 2, 3}
	if got := Identity().TransformPoint(p); got != p {
		t.Errorf("identity transform = %v, want %v", got, p)
	}
}

func TestMat4_RotateY(t *testing.T) {
	// 90 degrees around Y sends +X to -Z.
	m := RotateY(gomath.Pi / 2)
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, -1) {
		t.Errorf("rotated point = %v, want (0,0,-1)", got)
	}
}

func TestMat4_RotateX(t *testing.T) {
	// 90 degrees around X sends +Y to +Z.
	m := RotateX(gomath.Pi / 2)
	got := m.TransformPoint(Vec3{0, 1, 0})
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, 1) {
		t.Errorf("rotated point = %v, want (0,0,1)", got)
	}
}

func TestMat4_MulIdentity(t *testing.T) {
	m := RotateY(0.7).Mul(RotateX(0.3))
	if got := m.Mul(Identity()); got != m {
		t.Error("m * I != m")
	}
	if got := Identity().Mul(m); got != m {
		t.Error("I * m != m")
	}
}

func TestLookAt_EyeMapsToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformPoint(eye)
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, 0) {
		t.Errorf("view * eye = %v, want origin", got)
	}
	// The center lands on the negative Z axis at distance 5.
	center := view.TransformPoint(Vec3{})
	if !approx(center.Z, -5) {
		t.Errorf("view * center = %v, want z=-5", center)
	}
}
