package lumengl

import "github.com/chewxy/math32"

// Material is a minimal surface description, shareable across meshes.
type Material struct {
	BaseColor Color
	Metallic  float32 // 0..1 specular strength
	Roughness float32 // 0..1, lower means tighter highlight

	released bool
}

// Release marks the material as torn down. Meshes still referencing it render
// nothing.
func (m *Material) Release() {
	if m == nil {
		return
	}
	m.released = true
}

func (m *Material) Released() bool { return m != nil && m.released }

// Lighting is the scene light setup: an ambient fill plus one point light.
type Lighting struct {
	Ambient     float32 // 0..1
	PointPos    Vec3
	PointAmount float32 // 0..1 diffuse weight
}

// Camera describes a perspective viewing transform.
//
// Aspect is owned by the caller and updated on viewport resize; the renderer
// never derives it from the target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad float32
	Aspect  float32
	Near    float32
	Far     float32
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the perspective projection matrix.
func (c Camera) Projection() Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = math32.Pi / 4
	}
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// MeshKind selects how a mesh's indices are interpreted.
type MeshKind uint8

const (
	// MeshTriangles draws lit, depth-tested triangles from index triples.
	MeshTriangles MeshKind = iota
	// MeshLines draws unlit line segments from index pairs, over the solid pass.
	MeshLines
)

// Mesh is a renderable instance: shared geometry, shared material, own transform.
type Mesh struct {
	Enabled bool
	Kind    MeshKind

	Geometry *Geometry
	Material *Material

	Transform Mat4
}

// Scene is a fixed-capacity collection of meshes to render.
type Scene struct {
	Camera Camera
	Light  Lighting

	meshes []Mesh
	alive  []bool
}

// NewScene allocates a scene with a fixed mesh capacity.
func NewScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  math32.Pi / 4,
			Aspect:   1,
			Near:     0.05,
			Far:      100,
		},
		Light: Lighting{
			Ambient:     0.25,
			PointPos:    V3(2, 3, 4),
			PointAmount: 0.75,
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// SetTransform updates a mesh transform by id.
func (s *Scene) SetTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// MeshCount reports the number of live meshes.
func (s *Scene) MeshCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for i := range s.alive {
		if s.alive[i] {
			n++
		}
	}
	return n
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
