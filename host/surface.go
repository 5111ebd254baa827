// Package host provides the surfaces and run loops that drive a hero view: an
// ebiten desktop window and a headless ticker loop for tests and automation.
package host

// FixedSurface is a plain mounting surface with a fixed layout size and scale
// factor, for headless runs and tests.
type FixedSurface struct {
	W, H  int
	Scale float64
}

func (s FixedSurface) Size() (w, h int) { return s.W, s.H }

func (s FixedSurface) ScaleFactor() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}
