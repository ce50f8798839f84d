package entities

import (
	"image"
)

const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

const (
	MapTypeLGD   = "LGD"
	MapTypeNFHS5 = "NFHS5"
	MapTypeNFHS4 = "NFHS4"
)

// ColorScales is the set of scales the rendering service accepts.
var ColorScales = []string{
	"spectral",
	"rdylbu",
	"rdylgn",
	"brbg",
	"piyg",
	"puor",
	"blues",
	"greens",
	"reds",
	"oranges",
	"purples",
	"pinks",
	"viridis",
	"plasma",
	"inferno",
	"magma",
}

// MapTypes is the set of district boundary sets the service can render.
var MapTypes = []string{MapTypeLGD, MapTypeNFHS5, MapTypeNFHS4}

// Formats is the set of export formats the service can produce.
var Formats = []string{FormatPNG, FormatSVG, FormatPDF}

func IsValidColorScale(scale string) bool {
	for _, s := range ColorScales {
		if s == scale {
			return true
		}
	}

	return false
}

func IsValidMapType(mapType string) bool {
	for _, m := range MapTypes {
		if m == mapType {
			return true
		}
	}

	return false
}

// StateValue is one record of a state-level map.
type StateValue struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// DistrictValue is one record of a district-level map.
type DistrictValue struct {
	State    string  `json:"state"`
	District string  `json:"district"`
	Value    float64 `json:"value"`
}

// StatesMapRequest is the body posted to /api/v1/states/map.
type StatesMapRequest struct {
	Data           []StateValue `json:"data"`
	ColorScale     string       `json:"colorScale"`
	InvertColors   bool         `json:"invertColors"`
	HideStateNames bool         `json:"hideStateNames"`
	HideValues     bool         `json:"hideValues"`
	MainTitle      string       `json:"mainTitle"`
	LegendTitle    string       `json:"legendTitle"`
	Formats        []string     `json:"formats"`
}

// DistrictsMapRequest is the body posted to /api/v1/districts/map.
type DistrictsMapRequest struct {
	Data                []DistrictValue `json:"data"`
	MapType             string          `json:"mapType"`
	ColorScale          string          `json:"colorScale"`
	InvertColors        bool            `json:"invertColors"`
	HideValues          bool            `json:"hideValues"`
	ShowStateBoundaries bool            `json:"showStateBoundaries"`
	MainTitle           string          `json:"mainTitle"`
	LegendTitle         string          `json:"legendTitle"`
	Formats             []string        `json:"formats"`
}

// ExportArtifact is one rendered export as returned by the service.
// Data is the base64 encoded file content.
type ExportArtifact struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// APIError carries the server supplied failure message.
type APIError struct {
	Message string `json:"message"`
}

// MapResponse is the envelope both map endpoints return.
type MapResponse struct {
	Success  bool             `json:"success"`
	Exports  []ExportArtifact `json:"exports,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
	Error    *APIError        `json:"error,omitempty"`
}

// MapResult is the decoded outcome of a map generation call.
type MapResult struct {
	// Image is the decoded PNG export.
	Image image.Image
	// PNG holds the raw bytes of the PNG export.
	PNG []byte
	// Exports contains every artifact the server returned, base64 already decoded.
	Exports []Artifact
	// Metadata is the server computed summary (min, max, mean of the values).
	Metadata map[string]any
}

// Artifact is a decoded export ready for persistence.
type Artifact struct {
	Format string
	Data   []byte
}

// Export returns the artifact for the given format, if present.
func (r *MapResult) Export(format string) (Artifact, bool) {
	for _, e := range r.Exports {
		if e.Format == format {
			return e, true
		}
	}

	return Artifact{}, false
}
