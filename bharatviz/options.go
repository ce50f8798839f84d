package bharatviz

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/imaging"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger sets the client logger. Default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDecoder injects the PNG decoding capability.
func WithDecoder(d imaging.Decoder) Option {
	return func(c *Client) {
		c.decoder = d
	}
}

// WithViewer injects the display capability.
func WithViewer(v imaging.Viewer) Option {
	return func(c *Client) {
		c.viewer = v
	}
}

// StatesOptions controls rendering of a state-level map. The zero value is
// usable: spectral scale, default titles, PNG only.
type StatesOptions struct {
	Title          string
	LegendTitle    string
	ColorScale     string
	InvertColors   bool
	HideStateNames bool
	HideValues     bool
	Formats        []string
}

func (o *StatesOptions) withDefaults() StatesOptions {
	ans := StatesOptions{}
	if o != nil {
		ans = *o
	}

	if ans.Title == "" {
		ans.Title = "BharatViz"
	}

	if ans.LegendTitle == "" {
		ans.LegendTitle = "Values"
	}

	if ans.ColorScale == "" {
		ans.ColorScale = "spectral"
	}

	if len(ans.Formats) == 0 {
		ans.Formats = []string{entities.FormatPNG}
	}

	return ans
}

// DistrictsOptions controls rendering of a district-level map. The zero
// value renders an LGD map with state boundaries drawn.
type DistrictsOptions struct {
	Title        string
	LegendTitle  string
	MapType      string
	ColorScale   string
	InvertColors bool
	HideValues   bool
	// HideStateBoundaries suppresses the state boundary overlay. The wire
	// flag is showStateBoundaries and defaults to on, so the zero value here
	// keeps the boundaries visible.
	HideStateBoundaries bool
	Formats             []string
}

func (o *DistrictsOptions) withDefaults() DistrictsOptions {
	ans := DistrictsOptions{}
	if o != nil {
		ans = *o
	}

	if ans.Title == "" {
		ans.Title = "BharatViz Districts"
	}

	if ans.LegendTitle == "" {
		ans.LegendTitle = "Values"
	}

	if ans.MapType == "" {
		ans.MapType = entities.MapTypeLGD
	}

	if ans.ColorScale == "" {
		ans.ColorScale = "spectral"
	}

	if len(ans.Formats) == 0 {
		ans.Formats = []string{entities.FormatPNG}
	}

	return ans
}

// CompareOptions controls the scale comparison sheet.
type CompareOptions struct {
	// Columns of the grid. Default 3.
	Columns int
}

func (o *CompareOptions) withDefaults() CompareOptions {
	ans := CompareOptions{}
	if o != nil {
		ans = *o
	}

	if ans.Columns <= 0 {
		ans.Columns = 3
	}

	return ans
}

// DefaultCompareScales are the scales compared when the caller passes none.
var DefaultCompareScales = []string{"spectral", "viridis", "plasma", "blues", "reds", "greens"}
