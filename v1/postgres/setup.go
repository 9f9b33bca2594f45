package postgres

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverName is the database/sql driver used underneath gorm's postgres dialector.
const DriverName = "pgx"

// Dialect is the SQL dialect spoken by PostgreSQL.
var Dialect = dialect.Postgres

// DSN builds the key/value connection string for cfg.
func DSN(cfg Config) string {
	sslMode := cfg.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		sslMode)
}

// connectToPostgres establishes the connection through GORM, which verifies it
// with a ping, and returns the underlying pool wrapped for sqlx.
func connectToPostgres(cfg Config) (*sqlx.DB, error) {
	database, err := gorm.Open(
		postgres.Open(DSN(cfg)),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	return sqlx.NewDb(databaseInstance, DriverName), nil
}

// Open connects to the database described by cfg.
func Open(cfg Config) (*sqlx.DB, error) {
	return connectToPostgres(cfg)
}

func (c Config) dialect() dialect.Dialect {
	if c.KeyColumn != "" {
		return Dialect.WithKeyColumn(c.KeyColumn)
	}
	return Dialect
}

func (c Config) pool() unidb.PoolConfig {
	return unidb.PoolConfig{
		MinConns:        c.ConnectionDetails.MinConns,
		MaxConns:        c.ConnectionDetails.MaxOpenConns,
		AcquireTimeout:  c.ConnectionDetails.AcquireTimeout,
		ConnMaxLifetime: c.ConnectionDetails.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnectionDetails.ConnMaxIdleTime,
	}
}

// NewAsync creates a pooled executor for cfg.
func NewAsync(cfg Config) (*unidb.AsyncExecutor, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}
	return unidb.NewAsyncExecutor(db, cfg.dialect(), cfg.pool(), Translator), nil
}

// NewSync creates a single connection executor for cfg.
func NewSync(ctx context.Context, cfg Config) (*unidb.SyncExecutor, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}
	return unidb.NewSyncExecutor(ctx, db, cfg.dialect(), Translator)
}
