package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/shopai/assistant/assistant/contract"
)

type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type storedCallback struct {
	bun.BaseModel `bun:"table:callback_requests,alias:cb"`

	ID           int64     `bun:"id,pk,autoincrement"`
	CustomerName string    `bun:"customer_name,notnull"`
	PhoneNumber  string    `bun:"phone_number,notnull"`
	Reason       string    `bun:"reason,notnull"`
	RequestedAt  time.Time `bun:"requested_at,notnull"`
}

var _ contractx.CallbackRecorder = (*PostgresRecorder)(nil)

// PostgresRecorder persists callback requests into a callback_requests
// table.
type PostgresRecorder struct {
	db      *bun.DB
	timeout time.Duration
}

func NewPostgresRecorder(cfg Config) (*PostgresRecorder, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("crm dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &PostgresRecorder{db: db, timeout: timeout}, nil
}

// Init creates the callback_requests table if it does not exist.
func (r *PostgresRecorder) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.NewCreateTable().
		Model((*storedCallback)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create callback_requests table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, req contractx.CallbackRequest) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := &storedCallback{
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Reason:       req.Reason,
		RequestedAt:  req.RequestedAt.UTC(),
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert callback request: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}
