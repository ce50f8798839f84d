package imaging_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/bharatviz-go/imaging"
)

func TestGridSize(t *testing.T) {
	cases := []struct {
		name    string
		n, cols int
		wantR   int
		wantC   int
	}{
		{"six in three columns", 6, 3, 2, 3},
		{"four in three columns", 4, 3, 2, 3},
		{"one image", 1, 3, 1, 1},
		{"fewer images than columns", 2, 3, 1, 2},
		{"zero images", 0, 3, 0, 0},
		{"zero columns falls back to one", 5, 0, 5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, cols := imaging.GridSize(tc.n, tc.cols)
			assert.Equal(t, tc.wantR, rows)
			assert.Equal(t, tc.wantC, cols)
		})
	}
}

func TestSheet(t *testing.T) {
	newImg := func(w, h int) image.Image {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	t.Run("uses largest image as cell size", func(t *testing.T) {
		sheet := imaging.Sheet([]image.Image{
			newImg(4, 2),
			newImg(2, 6),
			newImg(3, 3),
			newImg(1, 1),
		}, 3)

		// cell is 4x6, four images in 3 columns give 2 rows
		assert.Equal(t, 3*4, sheet.Bounds().Dx())
		assert.Equal(t, 2*6, sheet.Bounds().Dy())
	})

	t.Run("no images", func(t *testing.T) {
		sheet := imaging.Sheet(nil, 3)
		assert.True(t, sheet.Bounds().Empty())
	})
}

func TestPNGDecoder(t *testing.T) {
	decoder := imaging.NewPNGDecoder()
	require.True(t, decoder.Available())

	original := image.NewRGBA(image.Rect(0, 0, 5, 7))

	encoded, err := imaging.EncodePNG(original)
	require.NoError(t, err)

	decoded, err := decoder.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, original.Bounds(), decoded.Bounds())

	t.Run("invalid payload", func(t *testing.T) {
		_, err := decoder.Decode([]byte("not a png"))
		require.Error(t, err)
	})
}

func TestNoViewer(t *testing.T) {
	viewer := imaging.NewNoViewer()
	assert.False(t, viewer.Available())
}
