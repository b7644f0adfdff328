// Package datasource loads validated bar series from files.
package datasource

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// Query selects the bars of one symbol.
type Query struct {
	Symbol string
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
	// Interval resamples the stored bars into larger buckets.
	Interval optional.Option[Interval]
}

type DataSource interface {
	// Load returns the bars matching query, validated and in ascending time
	// order.
	Load(ctx context.Context, query Query) (types.BarSeries, error)
	// Symbols lists the symbols present in the source.
	Symbols(ctx context.Context) ([]string, error)
	// Close releases any resources.
	Close() error
}

// Open picks a data source from the file extension: .parquet files are
// queried with DuckDB, .csv files are parsed directly.
func Open(path string, log *logger.Logger) (DataSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		source, err := NewDuckDBSource(log)
		if err != nil {
			return nil, err
		}

		if err := source.Initialize(path); err != nil {
			_ = source.Close()

			return nil, err
		}

		return source, nil
	case ".csv":
		return NewCSVSource(path, log)
	default:
		return nil, errors.Newf(errors.ErrCodeDataSourceUnavailable, "unsupported data file %s", path)
	}
}

func inRange(t time.Time, query Query) bool {
	if query.Start.IsSome() && t.Before(query.Start.Unwrap()) {
		return false
	}

	if query.End.IsSome() && t.After(query.End.Unwrap()) {
		return false
	}

	return true
}

func getIntervalMinutes(interval Interval) (int, error) {
	var intervalMinutes int

	switch interval {
	case Interval1m:
		intervalMinutes = 1
	case Interval5m:
		intervalMinutes = 5
	case Interval15m:
		intervalMinutes = 15
	case Interval30m:
		intervalMinutes = 30
	case Interval1h:
		intervalMinutes = 60
	case Interval4h:
		intervalMinutes = 240
	case Interval1d:
		intervalMinutes = 1440
	case Interval1w:
		intervalMinutes = 10080
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported interval: %s", interval)
	}

	return intervalMinutes, nil
}
