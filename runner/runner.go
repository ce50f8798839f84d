package runner

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/s3uploader"
	"github.com/gosom/bharatviz-go/tlmt"
	"github.com/gosom/bharatviz-go/tlmt/gonoop"
	"github.com/gosom/bharatviz-go/tlmt/goposthog"
)

const (
	RunModeMap = iota + 1
	RunModeCompare
	RunModeMetadata
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
)

type Runner interface {
	Run(context.Context) error
	Close(context.Context) error
}

type ArtifactUploader interface {
	Upload(ctx context.Context, bucketName, key, contentType string, body io.Reader) error
}

type Config struct {
	APIURL         string
	InputFile      string
	Basename       string
	Districts      bool
	MapType        string
	ColorScale     string
	InvertColors   bool
	HideStateNames bool
	HideValues     bool
	HideBoundaries bool
	Title          string
	LegendTitle    string
	AllFormats     bool
	Show           bool
	Compare        bool
	Scales         []string
	MetadataOnly   bool
	Columns        int
	Debug          bool
	RunMode        int
	AwsAccessKey   string
	AwsSecretKey   string
	AwsRegion      string
	S3Bucket       string
	Uploader       ArtifactUploader
}

func ParseConfig() *Config {
	cfg := Config{}

	var scales string

	flag.StringVar(&cfg.APIURL, "api-url", "", "base URL of the BharatViz API server [default: hosted service]")
	flag.StringVar(&cfg.InputFile, "input", "", "path to the input CSV file [default: stdin]")
	flag.StringVar(&cfg.Basename, "out", "map", "base name for output files (extensions are added automatically)")
	flag.BoolVar(&cfg.Districts, "districts", false, "render a districts map (input needs state,district,value)")
	flag.StringVar(&cfg.MapType, "map-type", "LGD", "district map type: LGD, NFHS5 or NFHS4")
	flag.StringVar(&cfg.ColorScale, "scale", "spectral", "color scale to use")
	flag.BoolVar(&cfg.InvertColors, "invert", false, "invert the color scale")
	flag.BoolVar(&cfg.HideStateNames, "hide-names", false, "hide state name labels (states maps only)")
	flag.BoolVar(&cfg.HideValues, "hide-values", false, "hide value labels")
	flag.BoolVar(&cfg.HideBoundaries, "hide-boundaries", false, "hide state boundary lines (districts maps only)")
	flag.StringVar(&cfg.Title, "title", "", "main title for the map")
	flag.StringVar(&cfg.LegendTitle, "legend", "", "title for the color legend")
	flag.BoolVar(&cfg.AllFormats, "all-formats", false, "save png, svg and pdf instead of png only")
	flag.BoolVar(&cfg.Show, "show", false, "open the generated map with the system viewer")
	flag.BoolVar(&cfg.Compare, "compare", false, "render a comparison sheet of color scales")
	flag.StringVar(&scales, "scales", "", "comma separated list of scales for -compare [default: a built-in selection]")
	flag.BoolVar(&cfg.MetadataOnly, "metadata", false, "print the server computed metadata instead of rendering")
	flag.IntVar(&cfg.Columns, "columns", 3, "columns of the comparison sheet grid")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	flag.StringVar(&cfg.AwsAccessKey, "aws-access-key", "", "AWS access key for S3 upload")
	flag.StringVar(&cfg.AwsSecretKey, "aws-secret-key", "", "AWS secret key for S3 upload")
	flag.StringVar(&cfg.AwsRegion, "aws-region", "", "AWS region for S3 upload")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", "", "upload generated files to this S3 bucket")

	flag.Parse()

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("BHARATVIZ_API_URL")
	}

	if cfg.AwsAccessKey == "" {
		cfg.AwsAccessKey = os.Getenv("MY_AWS_ACCESS_KEY")
	}

	if cfg.AwsSecretKey == "" {
		cfg.AwsSecretKey = os.Getenv("MY_AWS_SECRET_KEY")
	}

	if cfg.AwsRegion == "" {
		cfg.AwsRegion = os.Getenv("MY_AWS_REGION")
	}

	if cfg.Columns < 1 {
		panic("Columns must be greater than 0")
	}

	if cfg.Compare && cfg.Districts {
		panic("scale comparison works on state data only")
	}

	if cfg.MetadataOnly && cfg.Districts {
		panic("metadata retrieval works on state data only")
	}

	if cfg.S3Bucket != "" && (cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" || cfg.AwsRegion == "") {
		panic("S3 upload requires AWS credentials and region")
	}

	if scales != "" {
		cfg.Scales = strings.Split(scales, ",")
	}

	if cfg.AwsAccessKey != "" && cfg.AwsSecretKey != "" && cfg.AwsRegion != "" {
		cfg.Uploader = s3uploader.New(cfg.AwsAccessKey, cfg.AwsSecretKey, cfg.AwsRegion)
	}

	switch {
	case cfg.MetadataOnly:
		cfg.RunMode = RunModeMetadata
	case cfg.Compare:
		cfg.RunMode = RunModeCompare
	default:
		cfg.RunMode = RunModeMap
	}

	return &cfg
}

// NewLogger builds the process logger. Debug selects the development
// console encoder.
func NewLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}

		return logger
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// NewClient builds the API client a runner drives.
func NewClient(cfg *Config, logger *zap.Logger) *bharatviz.Client {
	return bharatviz.New(cfg.APIURL, bharatviz.WithLogger(logger))
}

var (
	telemetryOnce sync.Once
	telemetry     tlmt.Telemetry
)

func Telemetry() tlmt.Telemetry {
	telemetryOnce.Do(func() {
		if os.Getenv("DISABLE_TELEMETRY") == "1" {
			telemetry = gonoop.New()

			return
		}

		key := os.Getenv("BHARATVIZ_POSTHOG_KEY")
		if key == "" {
			telemetry = gonoop.New()

			return
		}

		val, err := goposthog.New(key, "https://eu.i.posthog.com")
		if err != nil || val == nil {
			telemetry = gonoop.New()

			return
		}

		telemetry = val
	})

	return telemetry
}

func wrapText(text string, width int) []string {
	var lines []string

	currentLine := ""
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			lines = append(lines, currentLine)
			currentLine = string(r)
			currentWidth = runeWidth
		} else {
			currentLine += string(r)
			currentWidth += runeWidth
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func banner(messages []string, width int) string {
	if width <= 0 {
		var err error

		width, _, err = term.GetSize(0)
		if err != nil {
			width = 80
		}
	}

	if width < 20 {
		width = 20
	}

	contentWidth := width - 4

	var wrappedLines []string
	for _, message := range messages {
		wrappedLines = append(wrappedLines, wrapText(message, contentWidth)...)
	}

	var builder strings.Builder

	builder.WriteString("╔" + strings.Repeat("═", width-2) + "╗\n")

	for _, line := range wrappedLines {
		lineWidth := runewidth.StringWidth(line)
		paddingRight := contentWidth - lineWidth

		if paddingRight < 0 {
			paddingRight = 0
		}

		builder.WriteString(fmt.Sprintf("║ %s%s ║\n", line, strings.Repeat(" ", paddingRight)))
	}

	builder.WriteString("╚" + strings.Repeat("═", width-2) + "╝\n")

	return builder.String()
}

func Banner() {
	message1 := "🗺  BharatViz - India choropleth maps from the command line"
	message2 := "⭐ If you find this project useful, please star it on GitHub"

	fmt.Fprintln(os.Stderr, banner([]string{message1, message2}, 0))
}
