package lumengl

import (
	"sync"

	"github.com/chewxy/math32"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations: the depth buffer and the
// per-frame primitive lists are recycled across frames.
type Renderer struct {
	ClearColor Color
	Depth      bool

	workers  int
	depthBuf []float32

	// Per-frame scratch, rebuilt in Render.
	tris  []shadedTri
	lines []shadedLine
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Depth:      enableDepth,
		ClearColor: RGBA(0, 0, 0, 0),
		workers:    1,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

// SetWorkers sets how many goroutines rasterize triangle row bands. Values
// below 1 are treated as 1.
func (r *Renderer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// EnableDepth toggles depth testing and sizes the depth buffer.
func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

// ReleaseBuffers drops the depth buffer and scratch lists.
func (r *Renderer) ReleaseBuffers() {
	if r == nil {
		return
	}
	r.depthBuf = nil
	r.tris = nil
	r.lines = nil
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// shadedTri is a screen-space triangle with its flat-shaded color.
type shadedTri struct {
	x0, y0 int
	x1, y1 int
	x2, y2 int
	z0     float32
	z1     float32
	z2     float32
	c      Color
}

// shadedLine is a screen-space segment. Lines are drawn after the solid pass
// and are not depth-tested, so outlines stay visible on top of their solid.
type shadedLine struct {
	x0, y0 int
	x1, y1 int
	c      Color
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	view := s.Camera.View()
	proj := s.Camera.Projection()
	vp := Mat4Mul(proj, view)

	r.tris = r.tris[:0]
	r.lines = r.lines[:0]
	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		if m.Geometry == nil || m.Geometry.Released() {
			return
		}
		if m.Material == nil || m.Material.Released() {
			return
		}
		switch m.Kind {
		case MeshLines:
			r.emitLines(w, h, vp, m)
		default:
			r.emitTriangles(w, h, vp, m, s)
		}
	})

	r.rasterTriangles(t, w, h)
	for i := range r.lines {
		l := &r.lines[i]
		drawLine(t, l.x0, l.y0, l.x1, l.y1, l.c)
	}
}

func (r *Renderer) emitTriangles(w, h int, vp Mat4, m *Mesh, s *Scene) {
	g := m.Geometry
	mvp := Mat4Mul(vp, m.Transform)

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}

		v0 := g.Vertices[i0]
		v1 := g.Vertices[i1]
		v2 := g.Vertices[i2]

		p0 := Mat4MulV4(mvp, Vec4{X: v0.X, Y: v0.Y, Z: v0.Z, W: 1})
		p1 := Mat4MulV4(mvp, Vec4{X: v1.X, Y: v1.Y, Z: v1.Z, W: 1})
		p2 := Mat4MulV4(mvp, Vec4{X: v2.X, Y: v2.Y, Z: v2.Z, W: 1})

		// Trivial clip: drop the triangle if any vertex sits on or behind the
		// camera plane.
		if p0.W <= 0 || p1.W <= 0 || p2.W <= 0 {
			continue
		}

		n0 := ndc(p0)
		n1 := ndc(p1)
		n2 := ndc(p2)

		x0, y0 := ndcToScreen(n0, w, h)
		x1, y1 := ndcToScreen(n1, w, h)
		x2, y2 := ndcToScreen(n2, w, h)

		c := shadeTriangle(m, s, v0, v1, v2)

		r.tris = append(r.tris, shadedTri{
			x0: x0, y0: y0, z0: n0.Z,
			x1: x1, y1: y1, z1: n1.Z,
			x2: x2, y2: y2, z2: n2.Z,
			c: c,
		})
	}
}

func (r *Renderer) emitLines(w, h int, vp Mat4, m *Mesh) {
	g := m.Geometry
	mvp := Mat4Mul(vp, m.Transform)
	c := m.Material.BaseColor

	for i := 0; i+1 < len(g.Indices); i += 2 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) {
			continue
		}

		v0 := g.Vertices[i0]
		v1 := g.Vertices[i1]
		p0 := Mat4MulV4(mvp, Vec4{X: v0.X, Y: v0.Y, Z: v0.Z, W: 1})
		p1 := Mat4MulV4(mvp, Vec4{X: v1.X, Y: v1.Y, Z: v1.Z, W: 1})
		if p0.W <= 0 || p1.W <= 0 {
			continue
		}

		n0 := ndc(p0)
		n1 := ndc(p1)
		x0, y0 := ndcToScreen(n0, w, h)
		x1, y1 := ndcToScreen(n1, w, h)
		r.lines = append(r.lines, shadedLine{x0: x0, y0: y0, x1: x1, y1: y1, c: c})
	}
}

// shadeTriangle computes the flat-shaded color of one face: ambient fill plus
// point-light diffuse, a Blinn specular term scaled by the material, and a
// gamma-encoded output.
func shadeTriangle(m *Mesh, s *Scene, v0, v1, v2 Vec3) Color {
	wv0 := Mat4MulPoint(m.Transform, v0)
	wv1 := Mat4MulPoint(m.Transform, v1)
	wv2 := Mat4MulPoint(m.Transform, v2)

	n := Normalize(Cross(wv1.Sub(wv0), wv2.Sub(wv0)))
	centroid := wv0.Add(wv1).Add(wv2).Mul(1.0 / 3.0)

	ldir := Normalize(s.Light.PointPos.Sub(centroid))
	diff := Dot(n, ldir)
	if diff < 0 {
		diff = -diff // unculled backfaces pick up the same diffuse term
	}

	intensity := Clamp01(s.Light.Ambient + diff*Clamp01(s.Light.PointAmount))
	intensity = math32.Pow(intensity, 1/2.2)

	c := m.Material.BaseColor.Scale(intensity)

	if m.Material.Metallic > 0 {
		vdir := Normalize(s.Camera.Position.Sub(centroid))
		half := Normalize(ldir.Add(vdir))
		nh := Dot(n, half)
		if nh < 0 {
			nh = -nh
		}
		shininess := 2 + (1-Clamp01(m.Material.Roughness))*62
		highlight := math32.Pow(nh, shininess) * Clamp01(m.Material.Metallic)
		c = c.AddScaled(highlight)
	}
	return c
}

type ndcPoint struct {
	X, Y, Z float32
}

func ndc(p Vec4) ndcPoint {
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

// rasterTriangles fills the collected triangles, splitting the target into
// disjoint row bands across workers. Bands never share pixels or depth cells,
// so no locking is needed.
func (r *Renderer) rasterTriangles(t Target, w, h int) {
	if len(r.tris) == 0 {
		return
	}
	n := r.workers
	if n > h {
		n = h
	}
	if n <= 1 {
		r.rasterBand(t, w, 0, h)
		return
	}

	var wg sync.WaitGroup
	rows := (h + n - 1) / n
	for y0 := 0; y0 < h; y0 += rows {
		y1 := y0 + rows
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			r.rasterBand(t, w, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// rasterBand fills every triangle's pixels within rows [bandY0, bandY1).
func (r *Renderer) rasterBand(t Target, w, bandY0, bandY1 int) {
	for i := range r.tris {
		tr := &r.tris[i]

		x0, y0, x1, y1, x2, y2 := tr.x0, tr.y0, tr.x1, tr.y1, tr.x2, tr.y2
		z0, z1, z2 := tr.z0, tr.z1, tr.z2

		area := edgeFn(x0, y0, x1, y1, x2, y2)
		if area == 0 {
			continue
		}
		if area < 0 {
			// Orient so interior weights come out non-negative; winding is not
			// used for culling.
			x1, y1, x2, y2 = x2, y2, x1, y1
			z1, z2 = z2, z1
			area = -area
		}

		minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
		minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
		if minX < 0 {
			minX = 0
		}
		if maxX >= w {
			maxX = w - 1
		}
		if minY < bandY0 {
			minY = bandY0
		}
		if maxY >= bandY1 {
			maxY = bandY1 - 1
		}
		if minX > maxX || minY > maxY {
			continue
		}

		invArea := 1 / float32(area)
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				w0 := edgeFn(x1, y1, x2, y2, x, y)
				w1 := edgeFn(x2, y2, x0, y0, x, y)
				w2 := edgeFn(x0, y0, x1, y1, x, y)
				if (w0 | w1 | w2) < 0 {
					continue
				}
				a0 := float32(w0) * invArea
				a1 := float32(w1) * invArea
				a2 := float32(w2) * invArea
				z := a0*z0 + a1*z1 + a2*z2
				if !r.depthTest(w, x, y, z) {
					continue
				}
				t.SetPixel(x, y, tr.c)
			}
		}
	}
}

func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]; map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
