package host

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"lumen/hero"
	"lumen/internal/buildinfo"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Title  string
	Width  int // initial layout width
	Height int // initial layout height
	HUD    bool

	Hero   hero.Config
	Logger *zap.Logger
}

// RunWindow opens a desktop window, mounts a hero view into it and runs the
// frame loop until the window closes. The view is torn down on exit.
func RunWindow(cfg WindowConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "lumen (" + buildinfo.Short() + ")"
	}

	w := &window{cfg: cfg, layoutW: cfg.Width, layoutH: cfg.Height}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(w)
	if w.view != nil {
		w.view.Close()
		cfg.Logger.Info("hero view closed",
			zap.Uint64("frames", w.view.FrameCount()),
			zap.Bool("resources_released", w.view.ResourcesReleased()))
	}
	return err
}

// window adapts the ebiten game loop to a hero view and doubles as its
// mounting surface.
type window struct {
	cfg  WindowConfig
	view *hero.View

	layoutW int
	layoutH int
	viewW   int
	viewH   int

	img *ebiten.Image
}

// Size implements hero.Surface with the current layout size.
func (w *window) Size() (int, int) { return w.layoutW, w.layoutH }

// ScaleFactor implements hero.Surface.
func (w *window) ScaleFactor() float64 { return ebiten.DeviceScaleFactor() }

func (w *window) Update() error {
	if w.view == nil {
		v, err := hero.Mount(w, w.cfg.Hero)
		if err != nil {
			return err
		}
		w.view = v
		w.viewW, w.viewH = w.layoutW, w.layoutH
		fw, fh := v.Frame().Size()
		w.cfg.Logger.Info("hero view mounted",
			zap.Int("width", fw), zap.Int("height", fh),
			zap.Float64("scale", hero.CapScaleFactor(ebiten.DeviceScaleFactor())))
	}

	if w.layoutW != w.viewW || w.layoutH != w.viewH {
		w.viewW, w.viewH = w.layoutW, w.layoutH
		w.view.Resize(w.viewW, w.viewH)
		w.cfg.Logger.Debug("hero view resized",
			zap.Int("width", w.viewW), zap.Int("height", w.viewH))
	}

	cx, cy := ebiten.CursorPosition()
	w.view.PointerMoved(float64(cx), float64(cy))

	w.view.Step(time.Now())
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.view == nil {
		return
	}
	w.view.Render()

	fb := w.view.Frame()
	fw, fh := fb.Size()
	if fw <= 0 || fh <= 0 || fb.Pix == nil {
		return
	}

	if w.img == nil || w.img.Bounds().Dx() != fw || w.img.Bounds().Dy() != fh {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(fw, fh)
	}

	if w.cfg.HUD {
		drawHUD(fb)
	}

	// The framebuffer clears to transparent; the window supplies the backdrop.
	screen.Fill(backdropColor)
	w.img.WritePixels(fb.Pix)
	screen.DrawImage(w.img, nil)
}

// Layout maps the outside layout size through the same scale cap the view
// applies, so window pixels and framebuffer pixels stay 1:1.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		w.layoutW = outsideWidth
		w.layoutH = outsideHeight
	}
	s := hero.CapScaleFactor(ebiten.DeviceScaleFactor())
	return int(float64(w.layoutW) * s), int(float64(w.layoutH) * s)
}
