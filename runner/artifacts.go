package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/entities"
)

var contentTypes = map[string]string{
	entities.FormatPNG: "image/png",
	entities.FormatSVG: "image/svg+xml",
	entities.FormatPDF: "application/pdf",
}

// SaveArtifacts writes every export of a map result to {basename}.{format}
// and, when an uploader is configured, mirrors each file to S3. The first
// failure aborts.
func SaveArtifacts(ctx context.Context, cfg *Config, logger *zap.Logger, result *entities.MapResult) ([]bharatviz.SavedFile, error) {
	var ans []bharatviz.SavedFile

	for _, export := range result.Exports {
		filename := cfg.Basename + "." + export.Format

		if err := os.WriteFile(filename, export.Data, 0o644); err != nil {
			return nil, fmt.Errorf("save %s: %w", filename, err)
		}

		saved := bharatviz.SavedFile{Path: filename, Size: int64(len(export.Data))}
		ans = append(ans, saved)

		logger.Info("saved map export",
			zap.String("file", saved.Path),
			zap.String("size", fmt.Sprintf("%.2f KiB", saved.KiB())),
		)

		if err := UploadArtifact(ctx, cfg, logger, saved.Path, export.Data); err != nil {
			return nil, err
		}
	}

	return ans, nil
}

// UploadArtifact mirrors one generated file to the configured S3 bucket.
// It is a no-op without an uploader.
func UploadArtifact(ctx context.Context, cfg *Config, logger *zap.Logger, path string, data []byte) error {
	if cfg.Uploader == nil || cfg.S3Bucket == "" {
		return nil
	}

	key := filepath.Base(path)
	contentType := contentTypes[strings.TrimPrefix(filepath.Ext(path), ".")]

	if err := cfg.Uploader.Upload(ctx, cfg.S3Bucket, key, contentType, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	logger.Info("uploaded map export",
		zap.String("bucket", cfg.S3Bucket),
		zap.String("key", key),
	)

	return nil
}
