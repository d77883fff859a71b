package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/slip/fonts"
	"github.com/ByLCY/slip/layout"
	"github.com/ByLCY/slip/markup"
	"github.com/ByLCY/slip/renderer"
)

// Renderer draws receipt sections via github.com/tdewolff/canvas.
// One canvas unit is one pixel; the canvas is rasterized at 1 dot per unit.
type Renderer struct {
	// injected resources
	fontBlobs map[string][]byte // by face name: "regular", "bold"

	ink        color.Color
	background color.Color

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[markup.Style]*canvas.FontFace
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Fonts      map[string]Resource // overrides for fonts.Regular / fonts.Bold
	Ink        color.Color
	Background color.Color
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer using the built-in monospace faces.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts and colors.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:  map[string][]byte{},
		ink:        opts.Ink,
		background: opts.Background,
		faces:      map[markup.Style]*canvas.FontFace{},
	}
	if r.ink == nil {
		r.ink = canvas.Black
	}
	if r.background == nil {
		r.background = canvas.White
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // a bad path falls back to the built-in face
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Rasterize allocates a layout.Width × height canvas (height is raised to
// layout.MinHeight) and draws every placement. The transparent canvas is
// composited over the background when converting to greyscale.
// Lines that fall below the canvas are drawn outside the visible area.
func (r *Renderer) Rasterize(sections markup.Sections, height int) (*renderer.Raster, error) {
	if err := r.ensureFaces(); err != nil {
		return nil, err
	}
	height = layout.CanvasHeight(height)
	width := layout.Width

	res, err := layout.Plan(sections, layout.PlanOptions{
		Typesetter: r,
		Width:      float64(width),
		Height:     float64(height),
	})
	if err != nil {
		return nil, err
	}

	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	for _, p := range res.Placements {
		if !p.Drawn {
			continue
		}
		face := r.face(p.Line.Style)
		ctx.DrawText(p.X, p.Baseline, canvas.NewTextLine(face, p.Line.Text, canvas.Left))
	}

	rgba := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(gray, gray.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	draw.Draw(gray, gray.Bounds(), rgba, rgba.Bounds().Min, draw.Over)

	return &renderer.Raster{Image: gray, Layout: res}, nil
}

// TextWidth implements layout.Typesetter.
func (r *Renderer) TextWidth(style markup.Style, text string) float64 {
	face := r.face(style)
	if face == nil {
		return 0
	}
	return face.TextWidth(text)
}

// LineAdvance implements layout.Typesetter: ascent + descent of the face.
func (r *Renderer) LineAdvance(style markup.Style) float64 {
	face := r.face(style)
	if face == nil {
		return markup.NormalAdvance
	}
	m := face.Metrics()
	return math.Abs(m.Ascent) + math.Abs(m.Descent)
}

func (r *Renderer) face(style markup.Style) *canvas.FontFace {
	if err := r.ensureFaces(); err != nil {
		return nil
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if f, ok := r.faces[style]; ok {
		return f
	}
	return r.faces[markup.Normal]
}

func (r *Renderer) ensureFaces() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return nil
	}

	family := canvas.NewFontFamily("slip-mono")
	if err := r.loadFontIntoFamily(family, fonts.Regular, canvas.FontRegular); err != nil {
		return err
	}
	if err := r.loadFontIntoFamily(family, fonts.Bold, canvas.FontBold); err != nil {
		return err
	}
	for _, style := range []markup.Style{markup.Normal, markup.BoldLarge, markup.Large, markup.EmphasisMedium} {
		f := style.Font()
		weight := canvas.FontRegular
		if f.Bold {
			weight = canvas.FontBold
		}
		r.faces[style] = family.Face(layout.ToPt(f.Size), r.ink, weight, canvas.FontNormal)
	}
	r.family = family
	return nil
}

// loadFontIntoFamily prefers the injected blob and falls back to the built-in face.
func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, name string, style canvas.FontStyle) error {
	if blob, ok := r.fontBlobs[name]; ok {
		if err := family.LoadFont(blob, 0, style); err == nil {
			return nil
		}
	}
	data, err := fonts.Load(name)
	if err != nil {
		return err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	return nil
}
