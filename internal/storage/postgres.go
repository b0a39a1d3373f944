package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Order is a completed order as written to the archive.
type Order struct {
	ID              int64     `db:"id"`
	ChatID          int64     `db:"chat_id"`
	Product         string    `db:"product"`
	Volume          float64   `db:"volume"`
	Address         string    `db:"address"`
	Phone           string    `db:"phone"`
	Discount        string    `db:"discount"`
	DiscountRate    float64   `db:"discount_rate"`
	DistanceKm      float64   `db:"distance_km"`
	BasePrice       float64   `db:"base_price"`
	DiscountValue   float64   `db:"discount_value"`
	DiscountedPrice float64   `db:"discounted_price"`
	DeliveryPrice   float64   `db:"delivery_price"`
	Total           float64   `db:"total"`
	CreatedAt       time.Time `db:"created_at"`
}

type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStorage(ctx context.Context, cfg Config, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	var db *sqlx.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err := backoff.RetryNotify(
		func() error {
			var err error
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := RunMigrations(ctx, db.DB, logger); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

func (s *PostgresStorage) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *PostgresStorage) SaveOrder(ctx context.Context, order Order) (int64, error) {
	const query = `
        INSERT INTO orders (
            chat_id, product, volume, address, phone,
            discount, discount_rate, distance_km, base_price,
            discount_value, discounted_price, delivery_price, total, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id
    `

	var orderID int64
	err := s.db.QueryRowContext(ctx, query,
		order.ChatID,
		order.Product,
		order.Volume,
		order.Address,
		order.Phone,
		order.Discount,
		order.DiscountRate,
		order.DistanceKm,
		order.BasePrice,
		order.DiscountValue,
		order.DiscountedPrice,
		order.DeliveryPrice,
		order.Total,
		order.CreatedAt,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	return orderID, nil
}

func (s *PostgresStorage) ListRecentOrders(ctx context.Context, limit int) ([]Order, error) {
	const query = `SELECT * FROM orders ORDER BY created_at DESC LIMIT $1`

	var orders []Order
	if err := s.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// ExportOrdersToExcel writes the given orders to an xlsx file under reports/
// and returns its path.
func (s *PostgresStorage) ExportOrdersToExcel(ctx context.Context, orders []Order) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Orders")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "Chat ID", "Product", "Volume", "Address", "Phone",
		"Discount", "Rate", "Distance (km)", "Base Price",
		"Discount Value", "Discounted Price", "Delivery", "Total", "Created At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Orders", cell, header)
	}

	for row, order := range orders {
		data := []interface{}{
			order.ID,
			order.ChatID,
			order.Product,
			order.Volume,
			order.Address,
			order.Phone,
			order.Discount,
			order.DiscountRate,
			order.DistanceKm,
			order.BasePrice,
			order.DiscountValue,
			order.DiscountedPrice,
			order.DeliveryPrice,
			order.Total,
			order.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Orders", cell, value)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Orders", "A1", "O1", style)
	f.SetActiveSheet(index)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("reports/orders_%s.xlsx", time.Now().Format("20060102_1504"))
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}
