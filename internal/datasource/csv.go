package datasource

import (
	"context"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// csvRecord is one row of a bar file. Time stays a string so both RFC 3339
// and plain "2006-01-02 15:04:05" timestamps are accepted.
type csvRecord struct {
	Time   string  `csv:"time"`
	Symbol string  `csv:"symbol"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// CSVSource holds every bar of a CSV file in memory, grouped by symbol.
type CSVSource struct {
	bars   map[string][]types.Bar
	logger *logger.Logger
}

// NewCSVSource parses the file at path. Rows are grouped by symbol and kept
// in file order; ordering is validated when a series is loaded.
func NewCSVSource(path string, log *logger.Logger) (*CSVSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path)
	}
	defer file.Close()

	var records []*csvRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "failed to parse %s", path)
	}

	source := &CSVSource{
		bars:   make(map[string][]types.Bar),
		logger: log,
	}

	for i, record := range records {
		timestamp, err := cast.ToTimeE(record.Time)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "row %d: invalid time %q", i+1, record.Time)
		}

		source.bars[record.Symbol] = append(source.bars[record.Symbol], types.Bar{
			Symbol: record.Symbol,
			Time:   timestamp,
			Open:   record.Open,
			High:   record.High,
			Low:    record.Low,
			Close:  record.Close,
			Volume: record.Volume,
		})
	}

	log.Debug("Loaded CSV data", zap.String("path", path), zap.Int("rows", len(records)), zap.Int("symbols", len(source.bars)))

	return source, nil
}

// Load implements DataSource. Resampling is not supported for CSV files.
func (c *CSVSource) Load(ctx context.Context, query Query) (types.BarSeries, error) {
	if query.Interval.IsSome() {
		return types.BarSeries{}, errors.New(errors.ErrCodeInvalidParameter, "csv source does not support resampling")
	}

	if err := ctx.Err(); err != nil {
		return types.BarSeries{}, err
	}

	stored, ok := c.bars[query.Symbol]
	if !ok {
		return types.BarSeries{}, errors.Newf(errors.ErrCodeDataNotFound, "no data found for symbol: %s", query.Symbol)
	}

	bars := make([]types.Bar, 0, len(stored))

	for _, bar := range stored {
		if inRange(bar.Time, query) {
			bars = append(bars, bar)
		}
	}

	if len(bars) == 0 {
		return types.BarSeries{}, errors.Newf(errors.ErrCodeDataNotFound, "no data found for symbol: %s", query.Symbol)
	}

	return types.NewBarSeries(query.Symbol, bars...)
}

// Symbols implements DataSource.
func (c *CSVSource) Symbols(ctx context.Context) ([]string, error) {
	symbols := make([]string, 0, len(c.bars))
	for symbol := range c.bars {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, ctx.Err()
}

// Close implements DataSource.
func (c *CSVSource) Close() error {
	return nil
}
