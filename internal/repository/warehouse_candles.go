package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	pkgch "MoverScan/pkg/clickhouse"
	applogger "MoverScan/pkg/logger"
)

// WarehouseName identifies the ClickHouse candle store in provider chains.
const WarehouseName = "warehouse"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// WarehouseCandles implements CandleProvider over a ClickHouse table with one
// row per (symbol, timeframe, bucket).
type WarehouseCandles struct {
	db    *sql.DB
	query string
	l     *applogger.Logger
}

func NewWarehouseCandles(ch *pkgch.Client, table string, l *applogger.Logger) (*WarehouseCandles, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid warehouse table %q", table)
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &WarehouseCandles{db: ch.DB(), query: candlesQuery(table), l: l}, nil
}

func (s *WarehouseCandles) Name() string { return WarehouseName }

func candlesQuery(table string) string {
	return fmt.Sprintf(`
        SELECT bucket, open, high, low, close, volume
        FROM %s
        WHERE symbol = ? AND timeframe = ? AND bucket >= ? AND bucket <= ?
        ORDER BY bucket ASC
    `, table)
}

func (s *WarehouseCandles) FetchCandles(ctx context.Context, symbol string, tf domrepo.Timeframe, from, to time.Time) ([]models.Candle, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, s.query, symbol, string(tf), from, to)
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, 512)
	for rows.Next() {
		var (
			c      models.Candle
			bucket time.Time
		)
		if err := rows.Scan(&bucket, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		c.Time = bucket.Unix()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.l.Debug("warehouse candles ok",
		applogger.String("symbol", symbol),
		applogger.String("tf", string(tf)),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}
