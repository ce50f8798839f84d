// Package bharatviz is a client for the BharatViz API, which renders India
// choropleth maps from tabular state or district data. All rendering happens
// server side; the client shapes requests, posts them and decodes the
// returned exports. Every call is independent, the client keeps no state
// beyond its configuration.
package bharatviz

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/imaging"
)

// DefaultAPIURL is the hosted BharatViz service.
const DefaultAPIURL = "http://bharatviz.saketlab.in"

// Endpoint describes one map generation endpoint. Districts get a longer
// timeout because they are costlier to render server side.
type Endpoint struct {
	Path    string
	Timeout time.Duration
}

var (
	// StatesEndpoint renders state-level maps.
	StatesEndpoint = Endpoint{Path: "/api/v1/states/map", Timeout: 30 * time.Second}
	// DistrictsEndpoint renders district-level maps.
	DistrictsEndpoint = Endpoint{Path: "/api/v1/districts/map", Timeout: 60 * time.Second}
)

// Client talks to a BharatViz server. Construct it with New; the zero value
// is not usable. A Client is immutable after construction and safe for
// concurrent use.
type Client struct {
	apiURL  string
	httpc   *http.Client
	logger  *zap.Logger
	decoder imaging.Decoder
	viewer  imaging.Viewer
}

// New returns a Client for the given API URL. An empty apiURL selects the
// hosted service. Trailing slashes are stripped.
func New(apiURL string, opts ...Option) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	ans := &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpc:   &http.Client{},
		logger:  zap.NewNop(),
		decoder: imaging.NewPNGDecoder(),
		viewer:  imaging.NewExecViewer(),
	}

	for _, opt := range opts {
		opt(ans)
	}

	return ans
}

// APIURL returns the configured base URL.
func (c *Client) APIURL() string {
	return c.apiURL
}

// StatesMap renders a state-level choropleth map.
func (c *Client) StatesMap(ctx context.Context, data []entities.StateValue, opts *StatesOptions) (*entities.MapResult, error) {
	o := opts.withDefaults()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data cannot be empty", ErrValidation)
	}

	for _, rec := range data {
		if !isFinite(rec.Value) {
			return nil, fmt.Errorf("%w: value for %q is not a finite number", ErrValidation, rec.State)
		}
	}

	if !entities.IsValidColorScale(o.ColorScale) {
		return nil, fmt.Errorf("%w: invalid color scale %q, choose from: %s",
			ErrValidation, o.ColorScale, strings.Join(entities.ColorScales, ", "))
	}

	body := entities.StatesMapRequest{
		Data:           data,
		ColorScale:     o.ColorScale,
		InvertColors:   o.InvertColors,
		HideStateNames: o.HideStateNames,
		HideValues:     o.HideValues,
		MainTitle:      o.Title,
		LegendTitle:    o.LegendTitle,
		Formats:        o.Formats,
	}

	resp, err := c.post(ctx, StatesEndpoint, body)
	if err != nil {
		return nil, err
	}

	return c.decode(resp)
}

// DistrictsMap renders a district-level choropleth map.
func (c *Client) DistrictsMap(ctx context.Context, data []entities.DistrictValue, opts *DistrictsOptions) (*entities.MapResult, error) {
	o := opts.withDefaults()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data cannot be empty", ErrValidation)
	}

	for _, rec := range data {
		if !isFinite(rec.Value) {
			return nil, fmt.Errorf("%w: value for %q/%q is not a finite number", ErrValidation, rec.State, rec.District)
		}
	}

	if !entities.IsValidColorScale(o.ColorScale) {
		return nil, fmt.Errorf("%w: invalid color scale %q, choose from: %s",
			ErrValidation, o.ColorScale, strings.Join(entities.ColorScales, ", "))
	}

	if !entities.IsValidMapType(o.MapType) {
		return nil, fmt.Errorf("%w: invalid map type %q, choose from: %s",
			ErrValidation, o.MapType, strings.Join(entities.MapTypes, ", "))
	}

	body := entities.DistrictsMapRequest{
		Data:                data,
		MapType:             o.MapType,
		ColorScale:          o.ColorScale,
		InvertColors:        o.InvertColors,
		HideValues:          o.HideValues,
		ShowStateBoundaries: !o.HideStateBoundaries,
		MainTitle:           o.Title,
		LegendTitle:         o.LegendTitle,
		Formats:             o.Formats,
	}

	resp, err := c.post(ctx, DistrictsEndpoint, body)
	if err != nil {
		return nil, err
	}

	return c.decode(resp)
}

// Metadata performs a single SVG round trip and returns only the server
// computed summary of the submitted values (min, max, mean).
func (c *Client) Metadata(ctx context.Context, data []entities.StateValue) (map[string]any, error) {
	result, err := c.StatesMap(ctx, data, &StatesOptions{Formats: []string{entities.FormatSVG}})
	if err != nil {
		return nil, err
	}

	return result.Metadata, nil
}

// post issues the single blocking POST of a map generation call. The
// endpoint timeout bounds the request; the caller context may shorten it.
// There are no retries, a failed call fails.
func (c *Client) post(ctx context.Context, ep Endpoint, body any) (*entities.MapResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, ep.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+ep.Path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	req.Header.Set("Content-Type", "application/json")

	t0 := time.Now()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	c.logger.Debug("api call",
		zap.String("path", ep.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(t0)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrTransport, resp.Status)
	}

	var ans entities.MapResponse
	if err := json.Unmarshal(raw, &ans); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON response", ErrTransport)
	}

	return &ans, nil
}

// decode validates the response envelope, base64 decodes every export and
// decodes the mandatory PNG into an image.
func (c *Client) decode(resp *entities.MapResponse) (*entities.MapResult, error) {
	if !resp.Success {
		msg := "unknown error"
		if resp.Error != nil && resp.Error.Message != "" {
			msg = resp.Error.Message
		}

		return nil, fmt.Errorf("%w: %s", ErrResponse, msg)
	}

	ans := &entities.MapResult{
		Metadata: resp.Metadata,
	}

	for _, e := range resp.Exports {
		data, err := base64.StdEncoding.DecodeString(e.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: export %s is not valid base64", ErrResponse, e.Format)
		}

		ans.Exports = append(ans.Exports, entities.Artifact{Format: e.Format, Data: data})
	}

	pngExport, ok := ans.Export(entities.FormatPNG)
	if !ok {
		return nil, fmt.Errorf("%w: png export not found in response", ErrResponse)
	}

	if c.decoder == nil || !c.decoder.Available() {
		return nil, fmt.Errorf("%w: image decoder is required to handle map results", ErrCapability)
	}

	img, err := c.decoder.Decode(pngExport.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResponse, err)
	}

	ans.PNG = pngExport.Data
	ans.Image = img

	return ans, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
