package printer

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// PNGFile writes each job to <Dir>/<job>.png.
type PNGFile struct {
	dir    string
	logger *zap.Logger
}

// NewPNGFile creates a file sink; the directory is created on first print.
func NewPNGFile(dir string, logger *zap.Logger) *PNGFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PNGFile{dir: dir, logger: logger}
}

// Path returns the file written for job.
func (p *PNGFile) Path(job string) string {
	return filepath.Join(p.dir, job+".png")
}

// Print implements Printer.
func (p *PNGFile) Print(ctx context.Context, job string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := p.Path(job)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	p.logger.Debug("slip written", zap.String("job", job), zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
