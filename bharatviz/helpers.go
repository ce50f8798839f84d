package bharatviz

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/imaging"
)

// SavedFile records one artifact written to disk.
type SavedFile struct {
	Path string
	Size int64
}

// KiB returns the file size in kibibytes.
func (f SavedFile) KiB() float64 {
	return float64(f.Size) / 1024
}

// SaveAllFormats renders a state map in every format and writes each export
// to {basename}.{format}. The first failure aborts the whole operation.
func (c *Client) SaveAllFormats(ctx context.Context, data []entities.StateValue, basename string, opts *StatesOptions) ([]SavedFile, error) {
	o := opts.withDefaults()
	o.Formats = entities.Formats

	result, err := c.StatesMap(ctx, data, &o)
	if err != nil {
		return nil, err
	}

	return c.writeExports(result, basename)
}

// SaveAllDistrictFormats is the district-level twin of SaveAllFormats.
func (c *Client) SaveAllDistrictFormats(ctx context.Context, data []entities.DistrictValue, basename string, opts *DistrictsOptions) ([]SavedFile, error) {
	o := opts.withDefaults()
	o.Formats = entities.Formats

	result, err := c.DistrictsMap(ctx, data, &o)
	if err != nil {
		return nil, err
	}

	return c.writeExports(result, basename)
}

func (c *Client) writeExports(result *entities.MapResult, basename string) ([]SavedFile, error) {
	var ans []SavedFile

	for _, export := range result.Exports {
		filename := basename + "." + export.Format

		if err := os.WriteFile(filename, export.Data, 0o644); err != nil {
			return nil, fmt.Errorf("save %s: %w", filename, err)
		}

		saved := SavedFile{Path: filename, Size: int64(len(export.Data))}
		ans = append(ans, saved)

		c.logger.Info("saved map export",
			zap.String("file", saved.Path),
			zap.String("size", fmt.Sprintf("%.2f KiB", saved.KiB())),
		)
	}

	return ans, nil
}

// CompareScales renders the same data once per color scale and composites
// the results into a single grid sheet. Calls run sequentially and the first
// failure aborts. Passing no scales compares DefaultCompareScales.
func (c *Client) CompareScales(ctx context.Context, data []entities.StateValue, scales []string, opts *CompareOptions) (image.Image, error) {
	o := opts.withDefaults()

	if len(scales) == 0 {
		scales = DefaultCompareScales
	}

	images := make([]image.Image, 0, len(scales))

	for _, scale := range scales {
		result, err := c.StatesMap(ctx, data, &StatesOptions{
			Title:      titleCase(scale),
			ColorScale: scale,
		})
		if err != nil {
			return nil, fmt.Errorf("scale %s: %w", scale, err)
		}

		images = append(images, result.Image)
	}

	return imaging.Sheet(images, o.Columns), nil
}

// Show writes the result PNG to a temporary file and opens it with the
// configured viewer.
func (c *Client) Show(ctx context.Context, result *entities.MapResult, title string) error {
	if c.viewer == nil || !c.viewer.Available() {
		return fmt.Errorf("%w: no viewer available to display maps", ErrCapability)
	}

	f, err := os.CreateTemp("", sanitizeTitle(title)+"-*.png")
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}

	if _, err := f.Write(result.PNG); err != nil {
		f.Close()

		return fmt.Errorf("show: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("show: %w", err)
	}

	c.logger.Debug("opening viewer", zap.String("file", f.Name()))

	return c.viewer.Show(ctx, f.Name())
}

func sanitizeTitle(title string) string {
	if title == "" {
		return "bharatviz"
	}

	title = strings.ToLower(strings.ReplaceAll(title, " ", "-"))

	return filepath.Base(title)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
