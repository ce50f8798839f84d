// Package imaging holds the optional image capabilities of the client:
// decoding PNG payloads, opening results in a viewer and compositing
// comparison sheets. Capabilities are injected at construction time and
// expose a presence check, so missing ones surface as configuration
// errors instead of ambient failures.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"runtime"

	"golang.org/x/image/draw"
)

// Decoder turns raw PNG bytes into an image.
type Decoder interface {
	Available() bool
	Decode(data []byte) (image.Image, error)
}

// Viewer opens a rendered file for the user.
type Viewer interface {
	Available() bool
	Show(ctx context.Context, path string) error
}

type pngDecoder struct{}

// NewPNGDecoder returns the default Decoder backed by image/png.
func NewPNGDecoder() Decoder {
	return pngDecoder{}
}

func (pngDecoder) Available() bool {
	return true
}

func (pngDecoder) Decode(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	return img, nil
}

type execViewer struct {
	bin string
}

// NewExecViewer returns a Viewer that opens files with the platform opener
// (xdg-open on Linux, open on macOS). Available reports whether the opener
// binary is on PATH.
func NewExecViewer() Viewer {
	bin := "xdg-open"
	if runtime.GOOS == "darwin" {
		bin = "open"
	}

	return &execViewer{bin: bin}
}

func (v *execViewer) Available() bool {
	_, err := exec.LookPath(v.bin)

	return err == nil
}

func (v *execViewer) Show(ctx context.Context, path string) error {
	return exec.CommandContext(ctx, v.bin, path).Start()
}

type noViewer struct{}

// NewNoViewer returns a Viewer that is never available. Useful for headless
// environments and for testing the configuration error path.
func NewNoViewer() Viewer {
	return noViewer{}
}

func (noViewer) Available() bool {
	return false
}

func (noViewer) Show(context.Context, string) error {
	return fmt.Errorf("no viewer available")
}

// GridSize returns the rows x cols layout for n images laid out in up to
// cols columns.
func GridSize(n, cols int) (rows, columns int) {
	if cols < 1 {
		cols = 1
	}

	if n < cols {
		cols = n
	}

	if n == 0 {
		return 0, 0
	}

	return (n + cols - 1) / cols, cols
}

// Sheet composites images into a single grid image with cols columns.
// Every cell has the size of the largest image; smaller images are scaled
// up to fit, unused trailing cells stay blank.
func Sheet(images []image.Image, cols int) image.Image {
	rows, cols := GridSize(len(images), cols)
	if rows == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	var cellW, cellH int

	for _, img := range images {
		b := img.Bounds()
		if b.Dx() > cellW {
			cellW = b.Dx()
		}

		if b.Dy() > cellH {
			cellH = b.Dy()
		}
	}

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))

	for i, img := range images {
		row, col := i/cols, i%cols
		cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
		draw.BiLinear.Scale(sheet, cell, img, img.Bounds(), draw.Src, nil)
	}

	return sheet
}

// EncodePNG serializes an image back to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}
