package bharatviz_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/entities"
)

func TestSaveAllFormats(t *testing.T) {
	pngData := tinyPNG(t)
	svgData := []byte("<svg>map</svg>")
	pdfData := []byte("%PDF-1.7 fake")

	var requestedFormats []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body entities.StatesMapRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		requestedFormats = body.Formats

		resp := entities.MapResponse{
			Success: true,
			Exports: []entities.ExportArtifact{
				{Format: "png", Data: base64.StdEncoding.EncodeToString(pngData)},
				{Format: "svg", Data: base64.StdEncoding.EncodeToString(svgData)},
				{Format: "pdf", Data: base64.StdEncoding.EncodeToString(pdfData)},
			},
		}

		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client := bharatviz.New(srv.URL)
	basename := filepath.Join(t.TempDir(), "out")

	saved, err := client.SaveAllFormats(context.Background(), stateData(), basename, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"png", "svg", "pdf"}, requestedFormats)
	require.Len(t, saved, 3)

	expected := map[string]int{
		basename + ".png": len(pngData),
		basename + ".svg": len(svgData),
		basename + ".pdf": len(pdfData),
	}

	for _, file := range saved {
		size, ok := expected[file.Path]
		require.True(t, ok, file.Path)
		assert.Equal(t, int64(size), file.Size)

		content, err := os.ReadFile(file.Path)
		require.NoError(t, err)
		assert.Len(t, content, size)
	}
}

func TestSaveAllFormatsAbortsOnFailure(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, entities.MapResponse{
		Success: false,
		Error:   &entities.APIError{Message: "unknown district"},
	})
	defer srv.Close()

	client := bharatviz.New(srv.URL)
	basename := filepath.Join(t.TempDir(), "out")

	data := []entities.DistrictValue{{State: "Maharashtra", District: "Nowhere", Value: 1}}

	_, err := client.SaveAllDistrictFormats(context.Background(), data, basename, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, bharatviz.ErrResponse)

	entries, err := os.ReadDir(filepath.Dir(basename))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareScales(t *testing.T) {
	var titles []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body entities.StatesMapRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		titles = append(titles, body.MainTitle)

		require.NoError(t, json.NewEncoder(w).Encode(successBody(t, tinyPNG(t))))
	}))
	defer srv.Close()

	client := bharatviz.New(srv.URL)

	t.Run("explicit scales", func(t *testing.T) {
		titles = nil

		sheet, err := client.CompareScales(context.Background(), stateData(),
			[]string{"viridis", "magma", "blues", "reds"}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"Viridis", "Magma", "Blues", "Reds"}, titles)

		// 4 images in 3 columns: 2 rows of 2x2 cells.
		assert.Equal(t, 3*2, sheet.Bounds().Dx())
		assert.Equal(t, 2*2, sheet.Bounds().Dy())
	})

	t.Run("default scales", func(t *testing.T) {
		titles = nil

		_, err := client.CompareScales(context.Background(), stateData(), nil, nil)
		require.NoError(t, err)
		assert.Len(t, titles, len(bharatviz.DefaultCompareScales))
	})

	t.Run("first failure aborts", func(t *testing.T) {
		failing := serveJSON(t, http.StatusOK, entities.MapResponse{
			Success: false,
			Error:   &entities.APIError{Message: "overloaded"},
		})
		defer failing.Close()

		failingClient := bharatviz.New(failing.URL)

		_, err := failingClient.CompareScales(context.Background(), stateData(), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrResponse)
		assert.Contains(t, err.Error(), "spectral")
	})

	t.Run("invalid scale rejected before any call", func(t *testing.T) {
		_, err := client.CompareScales(context.Background(), stateData(), []string{"neon"}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, bharatviz.ErrValidation)
	})
}

func TestShowWithoutViewer(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, successBody(t, tinyPNG(t)))
	defer srv.Close()

	client := bharatviz.New(srv.URL, bharatviz.WithViewer(noViewer{}))

	result, err := client.StatesMap(context.Background(), stateData(), nil)
	require.NoError(t, err)

	err = client.Show(context.Background(), result, "Test Map")
	require.Error(t, err)
	assert.ErrorIs(t, err, bharatviz.ErrCapability)
}

type noViewer struct{}

func (noViewer) Available() bool { return false }

func (noViewer) Show(context.Context, string) error { return nil }
