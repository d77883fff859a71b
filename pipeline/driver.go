// Package pipeline runs one order at a time through generate → estimate → rasterize → print.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ByLCY/slip/layout"
	"github.com/ByLCY/slip/markup"
	"github.com/ByLCY/slip/printer"
	"github.com/ByLCY/slip/receipt"
	"github.com/ByLCY/slip/renderer"
)

// ErrBusy is returned when a render is already in flight. The caller decides whether to retry.
var ErrBusy = errors.New("pipeline: 上一张小票仍在处理中")

// Result is everything produced for one order.
type Result struct {
	Job      string
	Sections markup.Sections
	Height   int // 估算高度，画布高度取 max(400, Height)
	Raster   *renderer.Raster
}

// Driver owns the single render slot.
type Driver struct {
	generator  *receipt.Generator
	renderer   renderer.Renderer
	printer    printer.Printer
	stagingDir string
	validate   bool
	newJobID   func() string
	logger     *zap.Logger

	busy atomic.Bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithGenerator replaces the default content generator.
func WithGenerator(g *receipt.Generator) Option {
	return func(d *Driver) {
		if g != nil {
			d.generator = g
		}
	}
}

// WithPrinter sets where finished rasters are delivered.
func WithPrinter(p printer.Printer) Option {
	return func(d *Driver) { d.printer = p }
}

// WithStagingDir round-trips the markup through header/body/footer files under dir.
func WithStagingDir(dir string) Option {
	return func(d *Driver) { d.stagingDir = dir }
}

// WithValidation logs validation issues of each order before generation.
func WithValidation(enabled bool) Option {
	return func(d *Driver) { d.validate = enabled }
}

// WithJobID overrides the job id source.
func WithJobID(fn func() string) Option {
	return func(d *Driver) {
		if fn != nil {
			d.newJobID = fn
		}
	}
}

// New creates a driver around a rasterizer.
func New(r renderer.Renderer, opts ...Option) (*Driver, error) {
	if r == nil {
		return nil, errors.New("renderer 不能为空")
	}
	d := &Driver{
		generator: receipt.NewGenerator(),
		renderer:  r,
		newJobID:  func() string { return uuid.NewString() },
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Busy reports whether a render is in flight.
func (d *Driver) Busy() bool { return d.busy.Load() }

// Submit renders and prints one order. It never waits: if another Submit is
// running it returns ErrBusy immediately. ctx only reaches the printer.
func (d *Driver) Submit(ctx context.Context, order receipt.Order) (*Result, error) {
	if !d.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer d.busy.Store(false)

	start := time.Now()
	job := d.newJobID()
	log := d.logger.With(zap.String("job", job), zap.String("order_id", order.ID))

	if d.validate {
		if err := receipt.Validate(order); err != nil {
			for _, is := range receipt.Issues(err) {
				log.Warn("订单字段校验未通过", zap.String("field", is.Field), zap.String("rule", is.Tag))
			}
		}
	}

	sections := d.generator.Generate(order)
	if d.stagingDir != "" {
		staged, err := d.stage(job, sections)
		if err != nil {
			log.Error("中间标记落盘失败", zap.Error(err))
			return nil, err
		}
		sections = staged
	}

	height := layout.Estimate(sections)
	raster, err := d.renderer.Rasterize(sections, height)
	if err != nil {
		return nil, fmt.Errorf("光栅化失败: %w", err)
	}
	if raster.Layout != nil && raster.Layout.Overflow() {
		log.Warn("内容超出画布", zap.Float64("bottom", raster.Layout.Bottom), zap.Int("height", raster.Height()))
	}

	res := &Result{Job: job, Sections: sections, Height: height, Raster: raster}
	if d.printer != nil {
		if err := d.printer.Print(ctx, job, raster.Image); err != nil {
			return res, fmt.Errorf("打印失败: %w", err)
		}
	}

	log.Info("slip rendered",
		zap.Int("lines", sections.Len()),
		zap.Int("height", raster.Height()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// stage writes the sections to <stagingDir>/<job> and reads them back.
func (d *Driver) stage(job string, sections markup.Sections) (markup.Sections, error) {
	dir := filepath.Join(d.stagingDir, job)
	if err := markup.WriteDir(dir, sections); err != nil {
		return markup.Sections{}, err
	}
	defer os.RemoveAll(dir)
	return markup.ReadDir(dir)
}
