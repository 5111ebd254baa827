package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"lumen/lumengl"
)

var backdropColor = color.RGBA{R: 0x0B, G: 0x10, B: 0x21, A: 0xFF}

// drawHUD overlays frame diagnostics onto the framebuffer before it is
// presented.
func drawHUD(fb *lumengl.ImageTarget) {
	d := &targetDisplayer{t: fb}
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 6, 14,
		fmt.Sprintf("lumen %.0f fps", ebiten.ActualFPS()),
		color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF})
}

// targetDisplayer adapts an ImageTarget to the displayer interface tinyfont
// draws through.
type targetDisplayer struct {
	t *lumengl.ImageTarget
}

func (d *targetDisplayer) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.t == nil {
		return
	}
	d.t.SetPixel(int(x), int(y), lumengl.RGBA(c.R, c.G, c.B, c.A))
}

func (d *targetDisplayer) Display() error { return nil }
