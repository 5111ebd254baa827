// Package hero implements the decorative, pointer-reactive 3D hero view: a
// rotating cube with a wireframe outline orbited by five bobbing satellite
// spheres, software-rendered into an RGBA framebuffer.
//
// The view owns its whole scene: it builds every geometry and material at
// mount, registers each one in a disposal list, and releases all of them on
// Close. Hosts drive it from a single loop: PointerMoved/Resize between
// frames, then Step and Render once per frame.
package hero

import (
	"errors"
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"lumen/lumengl"
)

var (
	// ErrNoSurface is returned when mounting without a surface.
	ErrNoSurface = errors.New("hero: no surface")
	// ErrZeroSize is returned when the surface has no layout size yet.
	ErrZeroSize = errors.New("hero: surface has zero size")
)

// Surface is the mounting container: something with a measurable layout size
// and a device pixel ratio.
type Surface interface {
	Size() (w, h int)
	ScaleFactor() float64
}

// Config holds the view construction parameters.
type Config struct {
	// Primary is the packed 0xRRGGBB color of the solid cube.
	Primary uint32
	// Accent is the packed 0xRRGGBB color of the outline and the satellites.
	Accent uint32
	// Rand is the layout randomness source. Leave nil for a time-seeded one;
	// inject a seeded source for reproducible satellite placement.
	Rand *rand.Rand
}

// Defaults: a pink/magenta primary with a cyan accent.
const (
	DefaultPrimary uint32 = 0xEC4899
	DefaultAccent  uint32 = 0x22D3EE
)

const (
	satelliteCount = 5

	fovYRad   = math32.Pi / 4 // 45 degrees
	nearPlane = 0.1
	farPlane  = 1000
	cameraZ   = 6

	// Device pixel ratio cap, bounds the framebuffer cost.
	maxScaleFactor = 2.0

	yawScale   = 0.6
	pitchScale = 0.4
	blendBase  = 0.06
	blendRate  = 0.3
	spinRate   = 0.18 // rad/s constant yaw drift

	bobAmplitude = 0.2

	// Guards against clock jumps and long stalls between frames.
	maxFrameDT = 0.1
)

type satellite struct {
	meshID int
	base   lumengl.Vec3
	pos    lumengl.Vec3
	radius float32
	phase  float32
}

type releasable interface {
	Release()
	Released() bool
}

// View is a mounted hero scene.
type View struct {
	surf Surface
	rnd  *rand.Rand

	scene *lumengl.Scene
	rend  *lumengl.Renderer
	fb    *lumengl.ImageTarget

	cubeID int
	edgeID int
	sats   [satelliteCount]satellite

	// Last observed pointer position in framebuffer pixels, written by the
	// host between frames and read once at the top of each Step.
	pointerX float64
	pointerY float64

	yaw   float32
	pitch float32

	epoch    time.Time
	lastStep time.Time
	frames   uint64
	closed   bool

	resources []releasable
}

// Mount builds the scene inside the given surface.
//
// The surface must already have a non-zero layout size; mounting into an empty
// surface fails with ErrZeroSize and creates nothing.
func Mount(surf Surface, cfg Config) (*View, error) {
	if surf == nil {
		return nil, ErrNoSurface
	}
	w, h := surf.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrZeroSize
	}

	if cfg.Primary == 0 {
		cfg.Primary = DefaultPrimary
	}
	if cfg.Accent == 0 {
		cfg.Accent = DefaultAccent
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	v := &View{surf: surf, rnd: rnd}

	pw, ph := v.pixelSize(w, h)
	v.fb = lumengl.NewImageTarget(pw, ph)
	v.track(v.fb)

	v.rend = lumengl.NewRenderer(pw, ph, true)
	v.rend.SetWorkers(2)
	v.rend.ClearColor = lumengl.RGBA(0, 0, 0, 0)

	v.scene = lumengl.NewScene(2 + satelliteCount)
	v.scene.Camera = lumengl.Camera{
		Position: lumengl.V3(0, 0, cameraZ),
		Target:   lumengl.V3(0, 0, 0),
		Up:       lumengl.V3(0, 1, 0),
		FOVYRad:  fovYRad,
		Aspect:   float32(pw) / float32(ph),
		Near:     nearPlane,
		Far:      farPlane,
	}
	v.scene.Light = lumengl.Lighting{
		Ambient:     0.35,
		PointPos:    lumengl.V3(2, 3, 4),
		PointAmount: 0.75,
	}

	v.buildOrnament(cfg)
	v.buildSatellites(cfg)

	// Pointer starts at the viewport center: zero target rotation until the
	// first real pointer event.
	v.pointerX = float64(pw) / 2
	v.pointerY = float64(ph) / 2

	return v, nil
}

// buildOrnament adds the centerpiece: a 2x2x2 solid cube in the primary color
// plus its edge outline in the accent color.
func (v *View) buildOrnament(cfg Config) {
	cubeGeom := lumengl.NewBoxGeometry(2, 2, 2)
	v.track(cubeGeom)
	cubeMat := &lumengl.Material{
		BaseColor: lumengl.Hex(cfg.Primary),
		Metallic:  0.6,
		Roughness: 0.25,
	}
	v.track(cubeMat)
	v.cubeID = v.scene.AddMesh(lumengl.Mesh{
		Kind:     lumengl.MeshTriangles,
		Geometry: cubeGeom,
		Material: cubeMat,
	})

	edgeGeom := lumengl.NewBoxEdges(2, 2, 2)
	v.track(edgeGeom)
	edgeMat := &lumengl.Material{BaseColor: lumengl.Hex(cfg.Accent)}
	v.track(edgeMat)
	v.edgeID = v.scene.AddMesh(lumengl.Mesh{
		Kind:     lumengl.MeshLines,
		Geometry: edgeGeom,
		Material: edgeMat,
	})
}

// buildSatellites places five spheres on a randomized ellipse around the
// ornament. All five share one unit-sphere geometry and one accent material;
// per-satellite size and position live in the mesh transform.
func (v *View) buildSatellites(cfg Config) {
	satGeom := lumengl.NewSphereGeometry(1, 12, 8)
	v.track(satGeom)
	satMat := &lumengl.Material{
		BaseColor: lumengl.Hex(cfg.Accent),
		Metallic:  0.3,
		Roughness: 0.4,
	}
	v.track(satMat)

	for i := 0; i < satelliteCount; i++ {
		angle := float32(i) / satelliteCount * 2 * math32.Pi
		rx := v.randRange(2.6, 3.2)
		ry := v.randRange(1.4, 2.0)

		s := &v.sats[i]
		s.base = lumengl.V3(
			math32.Cos(angle)*rx,
			math32.Sin(angle)*ry,
			v.randRange(-0.8, 0.8),
		)
		s.pos = s.base
		s.radius = v.randRange(0.18, 0.43)
		s.phase = float32(i)
		s.meshID = v.scene.AddMesh(lumengl.Mesh{
			Kind:      lumengl.MeshTriangles,
			Geometry:  satGeom,
			Material:  satMat,
			Transform: satTransform(s.base, s.base.Y, s.radius),
		})
	}
}

func (v *View) randRange(lo, hi float32) float32 {
	return lo + v.rnd.Float32()*(hi-lo)
}

func satTransform(base lumengl.Vec3, y, radius float32) lumengl.Mat4 {
	return lumengl.Mat4Mul(
		lumengl.Mat4Translate(lumengl.V3(base.X, y, base.Z)),
		lumengl.Mat4Scale(lumengl.V3(radius, radius, radius)),
	)
}

func (v *View) track(r releasable) {
	v.resources = append(v.resources, r)
}

// CapScaleFactor clamps a device pixel ratio to the range the view will
// actually render at. Hosts sizing their own pixel surface should apply the
// same cap so screen and framebuffer stay 1:1.
func CapScaleFactor(s float64) float64 {
	if s <= 0 {
		return 1
	}
	if s > maxScaleFactor {
		return maxScaleFactor
	}
	return s
}

func (v *View) pixelSize(w, h int) (pw, ph int) {
	s := 1.0
	if v.surf != nil {
		s = v.surf.ScaleFactor()
	}
	s = CapScaleFactor(s)
	pw = int(float64(w)*s + 0.5)
	ph = int(float64(h)*s + 0.5)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}

// PointerMoved records the last pointer position, in framebuffer pixels. The
// value is read once at the top of the next Step.
func (v *View) PointerMoved(x, y float64) {
	if v.closed {
		return
	}
	v.pointerX = x
	v.pointerY = y
}

// Resize reconciles the view with a new surface layout size: camera aspect and
// framebuffer follow, nothing else changes. Resizing to the current size is a
// no-op.
func (v *View) Resize(w, h int) {
	if v.closed || w <= 0 || h <= 0 {
		return
	}
	pw, ph := v.pixelSize(w, h)
	v.fb.Resize(pw, ph)
	v.scene.Camera.Aspect = float32(pw) / float32(ph)
}

// PointerTarget returns the rotation the ornament is currently easing toward,
// derived from the last pointer position normalized to [-1,1].
func (v *View) PointerTarget() (yaw, pitch float32) {
	w, h := v.fb.Size()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	nx := clampUnit(float32(v.pointerX/float64(w))*2 - 1)
	ny := clampUnit(float32(v.pointerY/float64(h))*2 - 1)
	return nx * yawScale, -ny * pitchScale
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Step advances the animation by one frame at the given wall-clock instant.
//
// The rotation eases toward the pointer-derived target with a time-dependent
// blend factor, a constant frame-rate-independent spin is added to yaw, and
// each satellite bobs on a sine of wall-clock time around its fixed base
// position, so positions never drift over long sessions.
func (v *View) Step(now time.Time) {
	if v.closed {
		return
	}
	if v.epoch.IsZero() {
		v.epoch = now
	}

	var dt float32
	if !v.lastStep.IsZero() {
		dt = float32(now.Sub(v.lastStep).Seconds())
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameDT {
			dt = maxFrameDT
		}
	}
	v.lastStep = now

	targetYaw, targetPitch := v.PointerTarget()
	blend := float32(blendBase) + dt*blendRate
	v.yaw += (targetYaw - v.yaw) * blend
	v.pitch += (targetPitch - v.pitch) * blend
	v.yaw += spinRate * dt

	rot := lumengl.Mat4Mul(lumengl.Mat4RotateY(v.yaw), lumengl.Mat4RotateX(v.pitch))
	v.scene.SetTransform(v.cubeID, rot)
	v.scene.SetTransform(v.edgeID, rot)

	t := float32(now.Sub(v.epoch).Seconds())
	for i := range v.sats {
		s := &v.sats[i]
		s.pos.Y = s.base.Y + math32.Sin(t+s.phase)*bobAmplitude
		v.scene.SetTransform(s.meshID, satTransform(s.base, s.pos.Y, s.radius))
	}

	v.frames++
}

// Render rasterizes the current scene state into the framebuffer.
func (v *View) Render() {
	if v.closed {
		return
	}
	v.rend.Render(v.fb, v.scene)
}

// Frame returns the view's framebuffer.
func (v *View) Frame() *lumengl.ImageTarget { return v.fb }

// FrameCount reports how many Steps have run. It stops changing after Close.
func (v *View) FrameCount() uint64 { return v.frames }

// Rotation returns the ornament's current yaw and pitch.
func (v *View) Rotation() (yaw, pitch float32) { return v.yaw, v.pitch }

// SatelliteCount reports the number of orbit satellites in the scene.
func (v *View) SatelliteCount() int {
	n := 0
	for i := range v.sats {
		if v.sats[i].meshID >= 0 {
			n++
		}
	}
	return n
}

// SatellitePositions returns the current world position of each satellite.
func (v *View) SatellitePositions() []lumengl.Vec3 {
	out := make([]lumengl.Vec3, len(v.sats))
	for i := range v.sats {
		out[i] = v.sats[i].pos
	}
	return out
}

// Scene exposes the underlying scene graph, mainly for hosts and tests.
func (v *View) Scene() *lumengl.Scene { return v.scene }

// Closed reports whether the view has been torn down.
func (v *View) Closed() bool { return v.closed }

// ResourcesReleased reports whether every tracked geometry, material and the
// framebuffer have been released.
func (v *View) ResourcesReleased() bool {
	for _, r := range v.resources {
		if !r.Released() {
			return false
		}
	}
	return len(v.resources) > 0
}

// Close tears the view down: every mesh leaves the scene and every tracked
// resource is released, including the satellite geometry and the framebuffer.
// Close is idempotent; Step, Render, PointerMoved and Resize become no-ops.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true

	v.scene.RemoveMesh(v.cubeID)
	v.scene.RemoveMesh(v.edgeID)
	for i := range v.sats {
		v.scene.RemoveMesh(v.sats[i].meshID)
		v.sats[i].meshID = -1
	}

	for _, r := range v.resources {
		r.Release()
	}
	v.rend.ReleaseBuffers()
}
