package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBSource queries bars from a Parquet file through an in-memory DuckDB
// view named market_data.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource opens an in-memory DuckDB database.
func NewDuckDBSource(log *logger.Logger) (*DuckDBSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize points the market_data view at the Parquet file at path.
func (d *DuckDBSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Squirrel does not build CREATE VIEW statements, and table functions
	// cannot take bind parameters here.
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM read_parquet(%s);
	`, quoteLiteral(path))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read parquet file %s", path)
	}

	return nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Load implements DataSource.
func (d *DuckDBSource) Load(ctx context.Context, query Query) (types.BarSeries, error) {
	sqlQuery, args, err := d.buildLoadQuery(query)
	if err != nil {
		return types.BarSeries{}, err
	}

	d.logger.Debug("Loading bars", zap.String("symbol", query.Symbol), zap.String("query", sqlQuery))

	rows, err := d.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return types.BarSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	bars := make([]types.Bar, 0, 1000)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			symbol                         string
		)

		if err := rows.Scan(&timestamp, &symbol, &open, &high, &low, &close, &volume); err != nil {
			return types.BarSeries{}, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan row", err)
		}

		bars = append(bars, types.Bar{
			Symbol: symbol,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return types.BarSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	if len(bars) == 0 {
		return types.BarSeries{}, errors.Newf(errors.ErrCodeDataNotFound, "no data found for symbol: %s", query.Symbol)
	}

	return types.NewBarSeries(query.Symbol, bars...)
}

// buildLoadQuery selects stored bars, or aggregates them into interval
// buckets when the query asks for resampling.
func (d *DuckDBSource) buildLoadQuery(query Query) (string, []any, error) {
	where := squirrel.And{squirrel.Eq{"symbol": query.Symbol}}

	if query.Start.IsSome() {
		where = append(where, squirrel.GtOrEq{"time": query.Start.Unwrap()})
	}

	if query.End.IsSome() {
		where = append(where, squirrel.LtOrEq{"time": query.End.Unwrap()})
	}

	builder := d.sq.
		Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(where).
		OrderBy("time ASC")

	if query.Interval.IsSome() {
		minutes, err := getIntervalMinutes(query.Interval.Unwrap())
		if err != nil {
			return "", nil, err
		}

		bucket := fmt.Sprintf("time_bucket(INTERVAL '%d minutes', time)", minutes)
		builder = d.sq.
			Select(
				bucket+" AS bucket_time",
				"symbol",
				"arg_min(open, time) AS open",
				"max(high) AS high",
				"min(low) AS low",
				"arg_max(close, time) AS close",
				"sum(volume) AS volume",
			).
			From("market_data").
			Where(where).
			GroupBy("bucket_time", "symbol").
			OrderBy("bucket_time ASC")
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	return sqlQuery, args, nil
}

// Symbols implements DataSource.
func (d *DuckDBSource) Symbols(ctx context.Context) ([]string, error) {
	query, args, err := d.sq.
		Select("DISTINCT symbol").
		From("market_data").
		OrderBy("symbol ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return symbols, nil
}

// Close implements DataSource.
func (d *DuckDBSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
