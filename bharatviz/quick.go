package bharatviz

import (
	"context"
	"fmt"
	"os"

	"github.com/gosom/bharatviz-go/entities"
)

// QuickStatesMap renders a state map with default options against the given
// server (empty selects the hosted one) and writes the PNG to savePath.
func QuickStatesMap(ctx context.Context, data []entities.StateValue, title, savePath, apiURL string) error {
	client := New(apiURL)

	result, err := client.StatesMap(ctx, data, &StatesOptions{Title: title})
	if err != nil {
		return err
	}

	return writePNG(result, savePath)
}

// QuickDistrictsMap renders a district map with default options and writes
// the PNG to savePath.
func QuickDistrictsMap(ctx context.Context, data []entities.DistrictValue, title, savePath, apiURL string) error {
	client := New(apiURL)

	result, err := client.DistrictsMap(ctx, data, &DistrictsOptions{Title: title})
	if err != nil {
		return err
	}

	return writePNG(result, savePath)
}

func writePNG(result *entities.MapResult, path string) error {
	if err := os.WriteFile(path, result.PNG, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}
