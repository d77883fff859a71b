// Package printer delivers finished slip rasters to their destinations.
package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// Printer receives one finished raster per print job.
type Printer interface {
	Print(ctx context.Context, job string, img image.Image) error
}

// Func adapts a function to Printer.
type Func func(ctx context.Context, job string, img image.Image) error

// Print implements Printer.
func (f Func) Print(ctx context.Context, job string, img image.Image) error {
	return f(ctx, job, img)
}

// Multi fans a job out to every printer in order. All printers are tried;
// the returned error joins every failure.
type Multi []Printer

// Print implements Printer.
func (m Multi) Print(ctx context.Context, job string, img image.Image) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Print(ctx, job, img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EncodePNG encodes the raster losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("图像不能为空")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
