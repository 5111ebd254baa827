package lumengl

import (
	"bytes"
	"testing"
)

func cubeScene() *Scene {
	s := NewScene(4)
	s.Camera.Position = V3(0, 0, 6)
	s.Camera.Near = 0.1
	s.Camera.Far = 1000
	s.AddMesh(Mesh{
		Kind:     MeshTriangles,
		Geometry: NewBoxGeometry(2, 2, 2),
		Material: &Material{BaseColor: RGB(0xEC, 0x48, 0x99)},
	})
	return s
}

func litPixels(t *ImageTarget) int {
	n := 0
	for i := 3; i < len(t.Pix); i += 4 {
		if t.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestRenderDrawsSomething(t *testing.T) {
	tgt := NewImageTarget(64, 64)
	r := NewRenderer(64, 64, true)
	r.Render(tgt, cubeScene())
	if litPixels(tgt) == 0 {
		t.Fatalf("cube produced no pixels")
	}
}

func TestRenderTransparentBackground(t *testing.T) {
	tgt := NewImageTarget(32, 32)
	r := NewRenderer(32, 32, true)
	r.Render(tgt, NewScene(1)) // empty scene
	if litPixels(tgt) != 0 {
		t.Fatalf("empty scene left opaque pixels")
	}
}

func TestRenderWorkerCountDeterministic(t *testing.T) {
	s := cubeScene()
	s.AddMesh(Mesh{
		Kind:     MeshLines,
		Geometry: NewBoxEdges(2, 2, 2),
		Material: &Material{BaseColor: RGB(0x22, 0xD3, 0xEE)},
	})

	one := NewImageTarget(96, 64)
	r1 := NewRenderer(96, 64, true)
	r1.SetWorkers(1)
	r1.Render(one, s)

	four := NewImageTarget(96, 64)
	r4 := NewRenderer(96, 64, true)
	r4.SetWorkers(4)
	r4.Render(four, s)

	if !bytes.Equal(one.Pix, four.Pix) {
		t.Fatalf("worker count changed the rendered frame")
	}
}

func TestRenderSkipsReleasedResources(t *testing.T) {
	s := NewScene(2)
	g := NewBoxGeometry(2, 2, 2)
	m := &Material{BaseColor: RGB(0xFF, 0xFF, 0xFF)}
	s.AddMesh(Mesh{Kind: MeshTriangles, Geometry: g, Material: m})
	g.Release()

	tgt := NewImageTarget(32, 32)
	r := NewRenderer(32, 32, true)
	r.Render(tgt, s) // must not draw or panic
	if litPixels(tgt) != 0 {
		t.Fatalf("released geometry still rendered")
	}
}

func TestRenderZeroSizeTarget(t *testing.T) {
	tgt := NewImageTarget(0, 0)
	r := NewRenderer(0, 0, true)
	r.Render(tgt, cubeScene()) // no-op, no panic
}

func TestDepthOccludesFarTriangle(t *testing.T) {
	s := NewScene(2)
	near := &Geometry{
		Vertices: []Vec3{{-1, -1, 1}, {1, -1, 1}, {0, 1, 1}},
		Indices:  []uint16{0, 1, 2},
	}
	far := &Geometry{
		Vertices: []Vec3{{-1, -1, -1}, {1, -1, -1}, {0, 1, -1}},
		Indices:  []uint16{0, 1, 2},
	}
	// Far triangle is added first so depth, not draw order, must decide.
	s.AddMesh(Mesh{Kind: MeshTriangles, Geometry: far, Material: &Material{BaseColor: RGB(0, 0xFF, 0)}})
	s.AddMesh(Mesh{Kind: MeshTriangles, Geometry: near, Material: &Material{BaseColor: RGB(0xFF, 0, 0)}})
	s.Light.Ambient = 1
	s.Light.PointAmount = 0
	s.Camera.Position = V3(0, 0, 6)
	s.Camera.Near = 0.1
	s.Camera.Far = 1000

	tgt := NewImageTarget(64, 64)
	r := NewRenderer(64, 64, true)
	r.Render(tgt, s)

	// Center pixel belongs to the near (red) triangle.
	off := 32*tgt.Stride + 32*4
	if tgt.Pix[off] == 0 || tgt.Pix[off+1] != 0 {
		t.Fatalf("center pixel rgb = %v,%v,%v, want red",
			tgt.Pix[off], tgt.Pix[off+1], tgt.Pix[off+2])
	}
}
