package renderer

import (
	"image"

	"github.com/ByLCY/slip/layout"
	"github.com/ByLCY/slip/markup"
)

// Renderer 把三段标记光栅化到固定宽度、给定高度的画布上。
type Renderer interface {
	Rasterize(sections markup.Sections, height int) (*Raster, error)
}

// Raster 是交给打印方的成品画布，附带排版落点便于调试。
type Raster struct {
	Image  *image.Gray
	Layout *layout.Result
}

// Width 返回画布宽度（px）。
func (r *Raster) Width() int { return r.Image.Bounds().Dx() }

// Height 返回画布高度（px）。
func (r *Raster) Height() int { return r.Image.Bounds().Dy() }
