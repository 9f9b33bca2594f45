package mariadb

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverName is the database/sql driver used underneath gorm's mysql dialector.
const DriverName = "mysql"

// Dialect is the SQL dialect spoken by MariaDB and MySQL.
var Dialect = dialect.MariaDB

// DSN builds the go-sql-driver data source name for cfg.
// Format: username:password@tcp(host:port)/dbname?param=value
func DSN(cfg Config) string {
	charset := cfg.Connection.Charset
	if charset == "" {
		charset = "utf8mb4"
	}

	parseTime := "True"
	if !cfg.Connection.ParseTime {
		parseTime = "False"
	}

	loc := cfg.Connection.Loc
	if loc == "" {
		loc = "Local"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=%s&loc=%s",
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.DbName,
		charset,
		parseTime,
		loc,
	)

	if cfg.Connection.TLS != "" {
		dsn += "&tls=" + cfg.Connection.TLS
	}
	if cfg.Connection.Timeout != "" {
		dsn += "&timeout=" + cfg.Connection.Timeout
	}
	if cfg.Connection.ReadTimeout != "" {
		dsn += "&readTimeout=" + cfg.Connection.ReadTimeout
	}
	if cfg.Connection.WriteTimeout != "" {
		dsn += "&writeTimeout=" + cfg.Connection.WriteTimeout
	}
	return dsn
}

// connectToMariaDB establishes the connection through GORM, which verifies it
// with a ping, and returns the underlying pool wrapped for sqlx.
func connectToMariaDB(cfg Config) (*sqlx.DB, error) {
	database, err := gorm.Open(
		mysql.Open(DSN(cfg)),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MariaDB/MySQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	return sqlx.NewDb(databaseInstance, DriverName), nil
}

// Open connects to the database described by cfg.
func Open(cfg Config) (*sqlx.DB, error) {
	return connectToMariaDB(cfg)
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
		return nil, fmt.Errorf("error in connecting to MariaDB: %w", err)
	}
	return unidb.NewAsyncExecutor(db, Dialect, cfg.pool(), Translator), nil
}

// NewSync creates a single connection executor for cfg.
func NewSync(ctx context.Context, cfg Config) (*unidb.SyncExecutor, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to MariaDB: %w", err)
	}
	return unidb.NewSyncExecutor(ctx, db, Dialect, Translator)
}
