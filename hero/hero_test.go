package hero_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/hero"
)

type stubSurface struct {
	w, h  int
	scale float64
}

func (s stubSurface) Size() (int, int) { return s.w, s.h }

func (s stubSurface) ScaleFactor() float64 {
	if s.scale <= 0 {
		return 1
	}
	return s.scale
}

func mount(t *testing.T, w, h int) *hero.View {
	t.Helper()
	v, err := hero.Mount(stubSurface{w: w, h: h}, hero.Config{
		Rand: rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

// drive advances the view by steps frames of the given dt, after a baseline
// step that establishes the frame clock.
func drive(v *hero.View, steps int, dt time.Duration) {
	now := time.Unix(0, 0)
	v.Step(now)
	for i := 0; i < steps; i++ {
		now = now.Add(dt)
		v.Step(now)
	}
}

func TestMountInvariant(t *testing.T) {
	v := mount(t, 320, 240)

	assert.Equal(t, 5, v.SatelliteCount())
	// Cube + outline + five satellites.
	assert.Equal(t, 7, v.Scene().MeshCount())
}

func TestMountZeroSize(t *testing.T) {
	for _, s := range []stubSurface{{w: 0, h: 240}, {w: 320, h: 0}, {w: 0, h: 0}} {
		v, err := hero.Mount(s, hero.Config{})
		assert.ErrorIs(t, err, hero.ErrZeroSize)
		assert.Nil(t, v)
	}
}

func TestMountNilSurface(t *testing.T) {
	v, err := hero.Mount(nil, hero.Config{})
	assert.ErrorIs(t, err, hero.ErrNoSurface)
	assert.Nil(t, v)
}

func TestScaleFactorCapped(t *testing.T) {
	v, err := hero.Mount(stubSurface{w: 320, h: 240, scale: 3}, hero.Config{})
	require.NoError(t, err)
	defer v.Close()

	w, h := v.Frame().Size()
	assert.Equal(t, 640, w, "scale must cap at 2")
	assert.Equal(t, 480, h)
}

func TestResizeIdempotent(t *testing.T) {
	v := mount(t, 320, 240)

	v.Resize(400, 300)
	w1, h1 := v.Frame().Size()
	aspect1 := v.Scene().Camera.Aspect

	v.Resize(400, 300)
	w2, h2 := v.Frame().Size()

	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, aspect1, v.Scene().Camera.Aspect)
	assert.InDelta(t, 400.0/300.0, float64(aspect1), 1e-5)
}

func TestPointerTargetBounds(t *testing.T) {
	v := mount(t, 200, 100)

	positions := [][2]float64{
		{0, 0}, {199, 99}, {100, 50}, {1, 98},
		{-50, -50}, {1e6, 1e6}, // outside the container: clamped
	}
	for _, p := range positions {
		v.PointerMoved(p[0], p[1])
		yaw, pitch := v.PointerTarget()
		assert.GreaterOrEqual(t, yaw, float32(-0.6))
		assert.LessOrEqual(t, yaw, float32(0.6))
		assert.GreaterOrEqual(t, pitch, float32(-0.4))
		assert.LessOrEqual(t, pitch, float32(0.4))
	}
}

func TestSmoothingNoOvershoot(t *testing.T) {
	v := mount(t, 200, 200)
	v.PointerMoved(100, 0) // top center: pitch target positive, yaw target 0

	_, targetPitch := v.PointerTarget()
	require.Greater(t, targetPitch, float32(0))

	now := time.Unix(0, 0)
	v.Step(now)
	dt := time.Second / 60
	blend := float32(0.06) + float32(dt.Seconds())*0.3

	for i := 0; i < 200; i++ {
		_, before := v.Rotation()
		now = now.Add(dt)
		v.Step(now)
		_, after := v.Rotation()

		dist := targetPitch - before
		moved := after - before
		assert.LessOrEqual(t, float64(abs32(moved)), float64(abs32(dist)*blend)+1e-6,
			"per-frame rotation exceeded the smoothing law")
		// Never past the target.
		assert.LessOrEqual(t, after, targetPitch+1e-6)
	}
}

func TestFrameRateIndependence(t *testing.T) {
	mk := func() *hero.View {
		v, err := hero.Mount(stubSurface{w: 200, h: 200}, hero.Config{
			Rand: rand.New(rand.NewSource(7)),
		})
		require.NoError(t, err)
		t.Cleanup(v.Close)
		v.PointerMoved(100, 0)
		return v
	}

	a := mk()
	drive(a, 60, time.Second/60) // 1s at 60 fps

	b := mk()
	drive(b, 30, time.Second/30) // 1s at 30 fps

	yawA, pitchA := a.Rotation()
	yawB, pitchB := b.Rotation()
	assert.InDelta(t, float64(pitchA), float64(pitchB), 0.1,
		"smoothing must be time-scaled, not frame-count-scaled")
	assert.InDelta(t, float64(yawA), float64(yawB), 0.05)
}

func TestSatelliteBobDoesNotDrift(t *testing.T) {
	v := mount(t, 100, 100)

	base := v.SatellitePositions()
	now := time.Unix(0, 0)
	v.Step(now)
	for i := 0; i < 2000; i++ { // about a minute of wall clock
		now = now.Add(33 * time.Millisecond)
		v.Step(now)
		for j, p := range v.SatellitePositions() {
			assert.InDelta(t, float64(base[j].Y), float64(p.Y), 0.201,
				"satellite %d drifted from its base", j)
			assert.Equal(t, base[j].X, p.X)
			assert.Equal(t, base[j].Z, p.Z)
		}
	}
}

func TestSeededLayoutReproducible(t *testing.T) {
	mk := func() *hero.View {
		v, err := hero.Mount(stubSurface{w: 100, h: 100}, hero.Config{
			Rand: rand.New(rand.NewSource(42)),
		})
		require.NoError(t, err)
		t.Cleanup(v.Close)
		return v
	}
	assert.Equal(t, mk().SatellitePositions(), mk().SatellitePositions())
}

func TestTeardownCompleteness(t *testing.T) {
	v := mount(t, 320, 240)
	drive(v, 10, time.Second/60)
	v.Render()

	v.Close()
	assert.True(t, v.Closed())
	assert.True(t, v.ResourcesReleased(), "all tracked resources must report released")
	assert.True(t, v.Frame().Released())
	assert.Equal(t, 0, v.Scene().MeshCount())

	frames := v.FrameCount()
	now := time.Unix(100, 0)
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second / 60)
		v.Step(now)
		v.Render()
	}
	assert.Equal(t, frames, v.FrameCount(), "frames must not advance after Close")

	v.Close() // idempotent
	assert.True(t, v.Closed())
}

func TestInputIgnoredAfterClose(t *testing.T) {
	v := mount(t, 200, 200)
	v.Close()

	v.PointerMoved(0, 0)
	yaw, pitch := v.PointerTarget()
	assert.Zero(t, yaw, "pointer state must not move after Close")
	assert.Zero(t, pitch)

	v.Resize(500, 500) // no-op, no panic
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
