package lumengl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	if got := Mat4Mul(a, b); got != b {
		t.Fatalf("identity*a mismatch")
	}
	if got := Mat4Mul(b, a); got != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestMat4LookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestMat4MulPointTranslates(t *testing.T) {
	m := Mat4Translate(V3(1, -2, 3))
	got := Mat4MulPoint(m, V3(1, 1, 1))
	want := V3(2, -1, 4)
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := Mat4RotateY(math32.Pi / 2)
	got := Mat4MulPoint(m, V3(1, 0, 0))
	if math32.Abs(got.X) > 1e-5 || math32.Abs(got.Z+1) > 1e-5 {
		t.Fatalf("quarter turn moved (1,0,0) to %v", got)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := Normalize(Vec3{}); got != (Vec3{}) {
		t.Fatalf("normalize zero = %v", got)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{-0.5, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {7, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
