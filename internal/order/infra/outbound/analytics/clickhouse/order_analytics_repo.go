package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	orderDomain "github.com/davicafu/storefront/internal/order/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// OrderAnalyticsRepo implementa OrderAnalyticsRepository sobre ClickHouse.
type OrderAnalyticsRepo struct {
	db *sql.DB
}

func NewOrderAnalyticsRepo(addr string, dbName string) (*OrderAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return &OrderAnalyticsRepo{db: conn}, nil
}

// NewOrderAnalyticsRepoFromDB permite inyectar una conexión ya abierta.
func NewOrderAnalyticsRepoFromDB(db *sql.DB) *OrderAnalyticsRepo {
	return &OrderAnalyticsRepo{db: db}
}

func (r *OrderAnalyticsRepo) Close() error {
	return r.db.Close()
}

// InitSchema crea la tabla orders_log si no existe.
func (r *OrderAnalyticsRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders_log (
			id           UUID,
			user_id      UUID,
			event_type   String,
			order_status String,
			total_price  Float64,
			items        UInt32,
			created_at   DateTime64(3),
			event_time   DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (event_type, event_time);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// LogBatch inserta entries en un solo lote.
func (r *OrderAnalyticsRepo) LogBatch(ctx context.Context, entries []orderDomain.OrderLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO orders_log (id, user_id, event_type, order_status, total_price, items, created_at, event_time)")
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		eventTime := e.EventTime
		if eventTime.IsZero() {
			eventTime = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			e.ID,
			e.UserID,
			e.EventType,
			e.OrderStatus,
			e.TotalPrice,
			uint32(e.Items),
			e.CreatedAt,
			eventTime,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to exec statement for order %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetDailyRevenue cuenta pedidos creados y suma su importe por día.
func (r *OrderAnalyticsRepo) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]orderDomain.DailyRevenue, error) {
	query := `
		SELECT
			toStartOfDay(event_time) AS day,
			count() AS orders,
			sum(total_price) AS revenue
		FROM orders_log
		WHERE event_type = 'order.created' AND event_time BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenue := []orderDomain.DailyRevenue{}
	for rows.Next() {
		var d orderDomain.DailyRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		revenue = append(revenue, d)
	}
	return revenue, rows.Err()
}

var _ orderDomain.OrderAnalyticsRepository = (*OrderAnalyticsRepo)(nil)
