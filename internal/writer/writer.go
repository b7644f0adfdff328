// Package writer exports indicator tables and signal logs as CSV files.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// CSVWriter writes the output of one run into its own directory.
type CSVWriter struct {
	runDir string
}

// NewCSVWriter creates baseDir/<runID> and writes every file there.
func NewCSVWriter(baseDir, runID string) (*CSVWriter, error) {
	runDir := filepath.Join(baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create run directory", err)
	}

	return &CSVWriter{runDir: runDir}, nil
}

// RunDir returns the directory the writer owns.
func (w *CSVWriter) RunDir() string {
	return w.runDir
}

// WriteIndicators writes <symbol>_indicators.csv and returns its path.
func (w *CSVWriter) WriteIndicators(bars types.BarSeries, indicators types.IndicatorSeries) (string, error) {
	path := filepath.Join(w.runDir, fmt.Sprintf("%s_indicators.csv", bars.Symbol))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create indicators file", err)
	}
	defer file.Close()

	if err := WriteIndicatorTable(file, bars, indicators); err != nil {
		return "", err
	}

	return path, nil
}

// WriteSignals writes signals.csv and returns its path.
func (w *CSVWriter) WriteSignals(signals []types.Signal) (string, error) {
	path := filepath.Join(w.runDir, "signals.csv")

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create signals file", err)
	}
	defer file.Close()

	if err := WriteSignalLog(file, signals); err != nil {
		return "", err
	}

	return path, nil
}

// WriteIndicatorTable writes one row per bar: the bar fields followed by every
// indicator column in alphabetical order. Undefined values are left empty.
func WriteIndicatorTable(out io.Writer, bars types.BarSeries, indicators types.IndicatorSeries) error {
	columns := indicators.Columns()

	for _, column := range columns {
		if len(indicators[column]) != bars.Len() {
			return errors.Newf(errors.ErrCodeLengthMismatch, "column %s has %d values for %d bars",
				column, len(indicators[column]), bars.Len())
		}
	}

	csvWriter := gocsv.DefaultCSVWriter(out)

	header := append([]string{"time", "symbol", "open", "high", "low", "close", "volume"}, columns...)
	if err := csvWriter.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to write indicators header", err)
	}

	for i, bar := range bars.Bars {
		row := make([]string, 0, len(header))
		row = append(row,
			bar.Time.Format(time.RFC3339),
			bar.Symbol,
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatFloat(bar.Volume),
		)

		for _, column := range columns {
			value, ok := indicators[column].Value(i)
			if !ok {
				row = append(row, "")

				continue
			}

			row = append(row, formatFloat(value))
		}

		if err := csvWriter.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to write indicators row", err)
		}
	}

	csvWriter.Flush()

	if err := csvWriter.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to flush indicators", err)
	}

	return nil
}

// WriteSignalLog writes signals using their csv struct tags.
func WriteSignalLog(out io.Writer, signals []types.Signal) error {
	if err := gocsv.Marshal(signals, out); err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to write signals", err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
