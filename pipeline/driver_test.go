package pipeline

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/slip/layout"
	"github.com/ByLCY/slip/markup"
	"github.com/ByLCY/slip/printer"
	"github.com/ByLCY/slip/receipt"
	"github.com/ByLCY/slip/renderer"
	canvasrenderer "github.com/ByLCY/slip/renderer/canvas"
)

// stubRenderer allocates a blank canvas of the requested height.
type stubRenderer struct {
	mu      sync.Mutex
	heights []int
}

func (s *stubRenderer) Rasterize(sections markup.Sections, height int) (*renderer.Raster, error) {
	s.mu.Lock()
	s.heights = append(s.heights, height)
	s.mu.Unlock()
	h := layout.CanvasHeight(height)
	return &renderer.Raster{Image: image.NewGray(image.Rect(0, 0, layout.Width, h))}, nil
}

func order() receipt.Order {
	return receipt.Order{
		ID:        "101",
		Customer:  "Guest",
		Items:     []receipt.Item{{Name: "Cold Coffee", Variant: "Standard", UnitPrice: "3.50", Quantity: 2}},
		Total:     "7.00",
		Timestamp: time.Date(2024, 3, 9, 18, 5, 7, 0, time.UTC),
	}
}

func TestSubmitRendersAndPrints(t *testing.T) {
	var printed []string
	p := printer.Func(func(_ context.Context, job string, img image.Image) error {
		printed = append(printed, job)
		assert.Equal(t, layout.Width, img.Bounds().Dx())
		return nil
	})
	r := &stubRenderer{}
	d, err := New(r, WithPrinter(p), WithJobID(func() string { return "job-1" }))
	require.NoError(t, err)

	res, err := d.Submit(context.Background(), order())
	require.NoError(t, err)

	assert.Equal(t, "job-1", res.Job)
	assert.Equal(t, []string{"job-1"}, printed)
	assert.Equal(t, layout.Estimate(res.Sections), res.Height)
	assert.Equal(t, []int{res.Height}, r.heights)
	assert.Len(t, res.Sections.Body, 6)
	assert.False(t, d.Busy())
}

func TestSubmitRejectsWhileBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	p := printer.Func(func(context.Context, string, image.Image) error {
		close(entered)
		<-release
		return nil
	})
	d, err := New(&stubRenderer{}, WithPrinter(p))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), order())
		done <- err
	}()
	<-entered

	assert.True(t, d.Busy())
	_, err = d.Submit(context.Background(), order())
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, d.Busy())

	// 槽位释放后可以再次提交
	d.printer = nil
	_, err = d.Submit(context.Background(), order())
	assert.NoError(t, err)
}

func TestSubmitStaging(t *testing.T) {
	dir := t.TempDir()
	d, err := New(&stubRenderer{}, WithStagingDir(dir), WithJobID(func() string { return "j" }))
	require.NoError(t, err)

	o := order()
	o.Customer = "Ann\nBob\nCat"
	res, err := d.Submit(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, receipt.Generate(o), res.Sections)
	assert.Equal(t, "Name: Ann Bob Cat", res.Sections.Header[3].Text)

	_, statErr := os.Stat(filepath.Join(dir, "j"))
	assert.True(t, os.IsNotExist(statErr), "staging directory should be removed")
}

func TestSubmitStagingUnavailable(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))

	d, err := New(&stubRenderer{}, WithStagingDir(parent))
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), order())
	assert.ErrorIs(t, err, markup.ErrChannelUnavailable)
	assert.False(t, d.Busy())
}

func TestSubmitPrinterError(t *testing.T) {
	boom := errors.New("paper out")
	d, err := New(&stubRenderer{}, WithPrinter(printer.Func(func(context.Context, string, image.Image) error {
		return boom
	})))
	require.NoError(t, err)

	res, err := d.Submit(context.Background(), order())
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, res)
	assert.NotNil(t, res.Raster)
}

func TestSubmitLogsValidationIssues(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d, err := New(&stubRenderer{}, WithValidation(true), WithLogger(zap.New(core)))
	require.NoError(t, err)

	bad := order()
	bad.Total = "seven"
	res, err := d.Submit(context.Background(), bad)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL: 0.00", res.Sections.Body[4].Text)
	assert.Equal(t, 1, logs.FilterMessage("订单字段校验未通过").Len())
}

func TestNewRequiresRenderer(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestSubmitWithCanvasRenderer(t *testing.T) {
	dir := t.TempDir()
	d, err := New(canvasrenderer.NewRenderer(), WithPrinter(printer.NewPNGFile(dir, nil)), WithJobID(func() string { return "e2e" }))
	require.NoError(t, err)

	res, err := d.Submit(context.Background(), order())
	require.NoError(t, err)
	assert.Equal(t, layout.CanvasHeight(res.Height), res.Raster.Height())
	assert.False(t, res.Raster.Layout.Overflow())
	assert.FileExists(t, filepath.Join(dir, "e2e.png"))
}
