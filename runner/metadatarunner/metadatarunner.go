package metadatarunner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/runner"
	"github.com/gosom/bharatviz-go/tlmt"
)

type metadataRunner struct {
	cfg    *runner.Config
	logger *zap.Logger
	client *bharatviz.Client
	input  io.Reader
	output io.Writer
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeMetadata {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger := runner.NewLogger(cfg.Debug)

	input, err := runner.OpenInput(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	return &metadataRunner{
		cfg:    cfg,
		logger: logger,
		client: runner.NewClient(cfg, logger),
		input:  input,
		output: os.Stdout,
	}, nil
}

func (r *metadataRunner) Run(ctx context.Context) (err error) {
	t0 := time.Now().UTC()

	defer func() {
		elapsed := time.Now().UTC().Sub(t0)
		params := map[string]any{
			"duration": elapsed.String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("metadata_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	data, err := runner.ParseStateValues(r.input)
	if err != nil {
		return err
	}

	metadata, err := r.client.Metadata(ctx, data)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(r.output, string(encoded))

	return err
}

func (r *metadataRunner) Close(context.Context) error {
	return multierr.Append(
		runner.CloseInput(r.input),
		r.logger.Sync(),
	)
}
