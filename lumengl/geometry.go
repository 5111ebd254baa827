package lumengl

import "github.com/chewxy/math32"

// Geometry holds shared vertex/index buffers.
//
// A geometry may back several meshes; release it exactly once, after the last
// mesh referencing it has been removed.
type Geometry struct {
	Vertices []Vec3
	Indices  []uint16

	released bool
}

// Release drops the backing buffers. Meshes still referencing the geometry
// render nothing.
func (g *Geometry) Release() {
	if g == nil {
		return
	}
	g.Vertices = nil
	g.Indices = nil
	g.released = true
}

func (g *Geometry) Released() bool { return g != nil && g.released }

// boxCorners returns the 8 corners of an axis-aligned box centered at origin.
func boxCorners(sx, sy, sz float32) []Vec3 {
	hx, hy, hz := sx/2, sy/2, sz/2
	return []Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
}

// NewBoxGeometry builds a triangle box of the given dimensions, centered at the
// origin.
func NewBoxGeometry(sx, sy, sz float32) *Geometry {
	return &Geometry{
		Vertices: boxCorners(sx, sy, sz),
		Indices: []uint16{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			3, 6, 2, 3, 7, 6, // top
			0, 7, 3, 0, 4, 7, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

// NewBoxEdges builds the 12-edge outline of a box as a line-pair geometry, for
// use with MeshLines.
func NewBoxEdges(sx, sy, sz float32) *Geometry {
	return &Geometry{
		Vertices: boxCorners(sx, sy, sz),
		Indices: []uint16{
			0, 1, 1, 2, 2, 3, 3, 0, // back ring
			4, 5, 5, 6, 6, 7, 7, 4, // front ring
			0, 4, 1, 5, 2, 6, 3, 7, // connecting edges
		},
	}
}

// NewSphereGeometry builds a UV sphere of the given radius.
func NewSphereGeometry(radius float32, segU, segV int) *Geometry {
	if segU < 3 {
		segU = 3
	}
	if segV < 2 {
		segV = 2
	}

	verts := make([]Vec3, 0, (segV+1)*(segU+1))
	indices := make([]uint16, 0, segU*segV*6)

	for v := 0; v <= segV; v++ {
		phi := math32.Pi * float32(v) / float32(segV)
		sp := math32.Sin(phi)
		cp := math32.Cos(phi)
		for u := 0; u <= segU; u++ {
			theta := 2 * math32.Pi * float32(u) / float32(segU)
			verts = append(verts, Vec3{
				X: radius * sp * math32.Cos(theta),
				Y: radius * cp,
				Z: radius * sp * math32.Sin(theta),
			})
		}
	}

	cols := segU + 1
	for v := 0; v < segV; v++ {
		for u := 0; u < segU; u++ {
			i0 := uint16(v*cols + u)
			i1 := uint16(v*cols + u + 1)
			i2 := uint16((v+1)*cols + u + 1)
			i3 := uint16((v+1)*cols + u)

			if v != 0 {
				indices = append(indices, i0, i1, i2)
			}
			if v != segV-1 {
				indices = append(indices, i0, i2, i3)
			}
		}
	}

	return &Geometry{Vertices: verts, Indices: indices}
}
