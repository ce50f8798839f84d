package runner

import (
	"io"
	"os"

	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/table"
)

// OpenInput returns the CSV input reader. An empty path selects stdin.
func OpenInput(path string) (io.Reader, error) {
	if path == "" {
		return os.Stdin, nil
	}

	return os.Open(path)
}

// CloseInput closes the input if it is closable and not stdin.
func CloseInput(input io.Reader) error {
	if input == nil || input == os.Stdin {
		return nil
	}

	if closer, ok := input.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// ParseStateValues normalizes CSV content into state records.
func ParseStateValues(r io.Reader) ([]entities.StateValue, error) {
	t, err := table.Read(r)
	if err != nil {
		return nil, err
	}

	return t.StateValues()
}

// ParseDistrictValues normalizes CSV content into district records.
func ParseDistrictValues(r io.Reader) ([]entities.DistrictValue, error) {
	t, err := table.Read(r)
	if err != nil {
		return nil, err
	}

	return t.DistrictValues()
}
