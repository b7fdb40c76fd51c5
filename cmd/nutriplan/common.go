package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/config"
	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/observability"
	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/progress"
	"github.com/jonathan/nutriplan/internal/rendering"
	"github.com/jonathan/nutriplan/internal/snapshot"
	"github.com/jonathan/nutriplan/internal/types"
	"github.com/jonathan/nutriplan/internal/validation"
)

// loadConfig resolves the config file, the environment and the flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg.ApplyEnv()

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = rootLocale
	}
	if flags.Changed("store") {
		cfg.StoreDriver = rootStore
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = rootSQLitePath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      os.Stderr,
		ServiceName: "nutriplan",
	})
}

// newAggregator connects to the model provider. The returned closer releases the client.
func newAggregator(ctx context.Context, cfg config.Config, logger zerolog.Logger, strict bool, recorder pipeline.Recorder) (*pipeline.Aggregator, io.Closer, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable, api_key config or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, cfg.ModelConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	opts := pipeline.Options{
		Strategy:    progress.Strategy(cfg.Progress),
		Locale:      cfg.LocaleValue(),
		Tier:        cfg.TierValue(),
		Temperature: cfg.Temperature,
		Logger:      &logger,
		Recorder:    recorder,
	}
	if strict {
		opts.Validator = validation.Strict(messages.For(cfg.LocaleValue()).Weekdays)
	}

	logger.Debug().
		Str("model", client.GetModel(opts.Tier)).
		Str("locale", string(opts.Locale)).
		Str("progress", string(opts.Strategy)).
		Msg("generation client ready")

	return pipeline.NewAggregator(client, opts), client, nil
}

func newExporter(cfg config.Config, logger zerolog.Logger, recorder rendering.ExportRecorder) *rendering.Exporter {
	browser := snapshot.New(snapshot.Options{ExecPath: cfg.ChromePath}, logger)
	opts := []rendering.ExporterOption{rendering.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, rendering.WithExportRecorder(recorder))
	}
	return rendering.NewExporter(browser, messages.For(cfg.LocaleValue()), opts...)
}

// readPlanFile loads a plan document and runs it through the given validator.
func readPlanFile(path string, validator validation.Validator) (*types.PlanResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	if validator == nil {
		validator = validation.Shallow
	}
	return validator.Validate(string(data))
}

// writeJSON writes v as indented JSON to path, or to w when path is empty or "-".
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
