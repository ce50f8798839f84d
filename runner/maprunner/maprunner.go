package maprunner

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/entities"
	"github.com/gosom/bharatviz-go/runner"
	"github.com/gosom/bharatviz-go/tlmt"
)

type mapRunner struct {
	cfg    *runner.Config
	logger *zap.Logger
	client *bharatviz.Client
	input  io.Reader
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeMap {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger := runner.NewLogger(cfg.Debug)

	input, err := runner.OpenInput(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	return &mapRunner{
		cfg:    cfg,
		logger: logger,
		client: runner.NewClient(cfg, logger),
		input:  input,
	}, nil
}

func (r *mapRunner) Run(ctx context.Context) (err error) {
	var recordCount int

	t0 := time.Now().UTC()

	defer func() {
		elapsed := time.Now().UTC().Sub(t0)
		params := map[string]any{
			"records":   recordCount,
			"districts": r.cfg.Districts,
			"duration":  elapsed.String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("map_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	var result *entities.MapResult

	if r.cfg.Districts {
		var data []entities.DistrictValue

		data, err = runner.ParseDistrictValues(r.input)
		if err != nil {
			return err
		}

		recordCount = len(data)

		result, err = r.client.DistrictsMap(ctx, data, &bharatviz.DistrictsOptions{
			Title:               r.cfg.Title,
			LegendTitle:         r.cfg.LegendTitle,
			MapType:             r.cfg.MapType,
			ColorScale:          r.cfg.ColorScale,
			InvertColors:        r.cfg.InvertColors,
			HideValues:          r.cfg.HideValues,
			HideStateBoundaries: r.cfg.HideBoundaries,
			Formats:             r.formats(),
		})
	} else {
		var data []entities.StateValue

		data, err = runner.ParseStateValues(r.input)
		if err != nil {
			return err
		}

		recordCount = len(data)

		result, err = r.client.StatesMap(ctx, data, &bharatviz.StatesOptions{
			Title:          r.cfg.Title,
			LegendTitle:    r.cfg.LegendTitle,
			ColorScale:     r.cfg.ColorScale,
			InvertColors:   r.cfg.InvertColors,
			HideStateNames: r.cfg.HideStateNames,
			HideValues:     r.cfg.HideValues,
			Formats:        r.formats(),
		})
	}

	if err != nil {
		return err
	}

	if _, err = runner.SaveArtifacts(ctx, r.cfg, r.logger, result); err != nil {
		return err
	}

	if r.cfg.Show {
		err = r.client.Show(ctx, result, r.cfg.Title)
	}

	return err
}

func (r *mapRunner) Close(context.Context) error {
	return multierr.Append(
		runner.CloseInput(r.input),
		r.logger.Sync(),
	)
}

func (r *mapRunner) formats() []string {
	if r.cfg.AllFormats {
		return entities.Formats
	}

	return []string{entities.FormatPNG}
}
