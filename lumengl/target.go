package lumengl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// ImageTarget renders into an RGBA8 buffer laid out like image.RGBA, so it can
// be handed to a window blit without conversion. A zero alpha clear color
// yields a transparent background.
type ImageTarget struct {
	Pix    []byte
	Stride int // bytes per row
	W      int
	H      int

	released bool
}

// NewImageTarget allocates a target of the given pixel size.
func NewImageTarget(w, h int) *ImageTarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ImageTarget{
		Pix:    make([]byte, w*4*h),
		Stride: w * 4,
		W:      w,
		H:      h,
	}
}

func (t *ImageTarget) Size() (w, h int) { return t.W, t.H }

// Resize adjusts the target to a new pixel size. Resizing to the current size
// is a no-op; the buffer is only reallocated when it has to grow.
func (t *ImageTarget) Resize(w, h int) {
	if t == nil || t.released || w < 0 || h < 0 {
		return
	}
	if w == t.W && h == t.H {
		return
	}
	need := w * 4 * h
	if cap(t.Pix) < need {
		t.Pix = make([]byte, need)
	} else {
		t.Pix = t.Pix[:need]
	}
	t.W = w
	t.H = h
	t.Stride = w * 4
}

func (t *ImageTarget) Clear(c Color) {
	if t == nil || t.Pix == nil {
		return
	}
	for i := 0; i+3 < len(t.Pix); i += 4 {
		t.Pix[i+0] = c.R
		t.Pix[i+1] = c.G
		t.Pix[i+2] = c.B
		t.Pix[i+3] = c.A
	}
}

func (t *ImageTarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Pix == nil {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Pix) {
		return
	}
	t.Pix[off+0] = c.R
	t.Pix[off+1] = c.G
	t.Pix[off+2] = c.B
	t.Pix[off+3] = c.A
}

// Release drops the pixel buffer. A released target ignores all draws.
func (t *ImageTarget) Release() {
	if t == nil {
		return
	}
	t.Pix = nil
	t.W = 0
	t.H = 0
	t.Stride = 0
	t.released = true
}

func (t *ImageTarget) Released() bool { return t != nil && t.released }
