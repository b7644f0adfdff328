package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/datasource"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/runner"
	"github.com/rxtech-lab/argo-signal/internal/strategy"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/internal/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "argo-signal-config.json"
	sampleConfigName = "argo-signal-config.yaml"
)

// session is everything a command needs after flags are parsed.
type session struct {
	runID  string
	config config.Config
	logger *logger.Logger
	series []types.BarSeries
	writer *writer.CSVWriter
}

func openSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	runLogger, err := newLogger(cmd.String("log-file"))
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	runLogger = &logger.Logger{Logger: runLogger.With(zap.String("run_id", runID))}

	source, err := datasource.Open(cmd.String("data"), runLogger)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	symbols := cmd.StringSlice("symbol")
	if len(symbols) == 0 {
		symbols, err = source.Symbols(ctx)
		if err != nil {
			return nil, err
		}
	}

	query := datasource.Query{}
	if cmd.IsSet("start") {
		query.Start = optional.Some(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		query.End = optional.Some(cmd.Timestamp("end"))
	}

	if interval := cmd.String("interval"); interval != "" {
		query.Interval = optional.Some(datasource.Interval(interval))
	}

	series := make([]types.BarSeries, 0, len(symbols))

	for _, symbol := range symbols {
		query.Symbol = symbol

		bars, err := source.Load(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", symbol, err)
		}

		series = append(series, bars)
	}

	w, err := writer.NewCSVWriter(cmd.String("output"), runID)
	if err != nil {
		return nil, err
	}

	runLogger.Info("Session ready",
		zap.String("data", cmd.String("data")),
		zap.Strings("symbols", symbols),
		zap.String("strategy", cfg.Strategy.Name),
		zap.String("version", version.GetVersion()),
	)

	return &session{
		runID:  runID,
		config: cfg,
		logger: runLogger,
		series: series,
		writer: w,
	}, nil
}

func newLogger(path string) (*logger.Logger, error) {
	if path == "" {
		return logger.NewLogger()
	}

	return logger.NewFileLogger(logger.FileConfig{
		Path:       path,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}), nil
}

func totalBars(series []types.BarSeries) int {
	total := 0
	for _, s := range series {
		total += s.Len()
	}

	return total
}

// indicatorsAction computes the indicator table of every symbol.
func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.logger.Sync() //nolint:errcheck

	strat, err := strategy.NewRegistry().New(s.config)
	if err != nil {
		return err
	}

	pipeline, err := runner.NewPipeline(s.config, strat, s.logger, nil)
	if err != nil {
		return err
	}

	for _, series := range s.series {
		indicators, err := pipeline.Engine().Compute(series)
		if err != nil {
			return fmt.Errorf("failed to compute %s: %w", series.Symbol, err)
		}

		path, err := s.writer.WriteIndicators(series, indicators)
		if err != nil {
			return err
		}

		s.logger.Info("Indicators written", zap.String("symbol", series.Symbol), zap.String("path", path))
	}

	return nil
}

// signalsAction replays every symbol through a runner and writes the signal log.
func signalsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.logger.Sync() //nolint:errcheck

	strat, err := strategy.NewRegistry().New(s.config)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()

	pipeline, err := runner.NewPipeline(s.config, strat, s.logger, runner.NewMetrics(registry))
	if err != nil {
		return err
	}

	var onBar func()

	if !cmd.Bool("quiet") {
		bar := progressbar.Default(int64(totalBars(s.series)), "replaying")
		onBar = func() {
			_ = bar.Add(1)
		}
	}

	results, err := pipeline.ReplayAll(ctx, s.series, cmd.Bool("fill"), onBar)
	if err != nil {
		return err
	}

	var signals []types.Signal

	for _, result := range results {
		for _, signal := range result {
			if signal.IsHold() && !cmd.Bool("include-hold") {
				continue
			}

			signals = append(signals, signal)
		}
	}

	path, err := s.writer.WriteSignals(signals)
	if err != nil {
		return err
	}

	if metricsPath := cmd.String("metrics-file"); metricsPath != "" {
		if err := prometheus.WriteToTextfile(metricsPath, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	s.logger.Info("Signals written", zap.String("path", path), zap.Int("signals", len(signals)))

	return nil
}

// schemaAction prints the JSON schema of the config file. With --dir it writes
// the schema and a sample config next to each other instead.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.JSONSchema()
	if err != nil {
		return err
	}

	dir := cmd.String("dir")
	if dir == "" {
		_, err = fmt.Fprintln(cmd.Root().Writer, schema)

		return err
	}

	return writeSchemaFiles(dir, schema)
}

func writeSchemaFiles(dir, schema string) error {
	schemaPath := filepath.Join(dir, schemaName)
	sampleConfigPath := filepath.Join(dir, sampleConfigName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	// An existing sample config is left alone.
	if _, err := os.Stat(sampleConfigPath); !os.IsNotExist(err) {
		return nil
	}

	yamlBytes, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

	if err := os.WriteFile(sampleConfigPath, yamlBytes, 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	return nil
}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the YAML config file. Defaults are used when omitted",
		},
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to a .csv or .parquet bar file",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "Symbols to process. Every symbol in the data file when omitted",
		},
		&cli.TimestampFlag{
			Name:  "start",
			Usage: "Only bars at or after `YYYY-MM-DD`",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02"},
			},
		},
		&cli.TimestampFlag{
			Name:  "end",
			Usage: "Only bars at or before `YYYY-MM-DD`",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02"},
			},
		},
		&cli.StringFlag{
			Name:  "interval",
			Usage: "Resample parquet bars (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Directory for result files",
			Value:   "results",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write JSON logs to a rotating file instead of stdout",
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-signal",
		Usage:   "Compute technical indicators and trading signals from bar data",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:   "indicators",
				Usage:  "Write the indicator table of each symbol",
				Flags:  sessionFlags(),
				Action: indicatorsAction,
			},
			{
				Name:  "signals",
				Usage: "Replay bars through the strategy and write the signal log",
				Flags: append(sessionFlags(),
					&cli.BoolFlag{
						Name:  "fill",
						Usage: "Treat every signal as filled immediately at its price",
					},
					&cli.BoolFlag{
						Name:  "include-hold",
						Usage: "Keep HOLD signals in the log",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Hide the progress bar",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write Prometheus metrics in text format to this file",
					},
				),
				Action: signalsAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Write the schema and a sample config into this directory",
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
