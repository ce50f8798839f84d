package comparerunner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/imaging"
	"github.com/gosom/bharatviz-go/runner"
	"github.com/gosom/bharatviz-go/tlmt"
)

type compareRunner struct {
	cfg    *runner.Config
	logger *zap.Logger
	client *bharatviz.Client
	input  io.Reader
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeCompare {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger := runner.NewLogger(cfg.Debug)

	input, err := runner.OpenInput(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	return &compareRunner{
		cfg:    cfg,
		logger: logger,
		client: runner.NewClient(cfg, logger),
		input:  input,
	}, nil
}

func (r *compareRunner) Run(ctx context.Context) (err error) {
	scales := r.cfg.Scales
	if len(scales) == 0 {
		scales = bharatviz.DefaultCompareScales
	}

	t0 := time.Now().UTC()

	defer func() {
		elapsed := time.Now().UTC().Sub(t0)
		params := map[string]any{
			"scales":   len(scales),
			"duration": elapsed.String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("compare_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	data, err := runner.ParseStateValues(r.input)
	if err != nil {
		return err
	}

	sheet, err := r.client.CompareScales(ctx, data, scales, &bharatviz.CompareOptions{
		Columns: r.cfg.Columns,
	})
	if err != nil {
		return err
	}

	encoded, err := imaging.EncodePNG(sheet)
	if err != nil {
		return err
	}

	filename := r.cfg.Basename + "_scales.png"

	if err = os.WriteFile(filename, encoded, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}

	r.logger.Info("saved comparison sheet",
		zap.String("file", filename),
		zap.Strings("scales", scales),
	)

	if err = runner.UploadArtifact(ctx, r.cfg, r.logger, filename, encoded); err != nil {
		return err
	}

	if r.cfg.Show {
		viewer := imaging.NewExecViewer()
		if !viewer.Available() {
			return fmt.Errorf("%w: no viewer available to display maps", bharatviz.ErrCapability)
		}

		return viewer.Show(ctx, filename)
	}

	return nil
}

func (r *compareRunner) Close(context.Context) error {
	return multierr.Append(
		runner.CloseInput(r.input),
		r.logger.Sync(),
	)
}
