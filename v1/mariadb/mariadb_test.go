package mariadb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := Config{Connection: Connection{
		Host:     "db",
		Port:     "3306",
		User:     "app",
		Password: "secret",
		DbName:   "unidb",
	}}
	assert.Equal(t, "app:secret@tcp(db:3306)/unidb?charset=utf8mb4&parseTime=False&loc=Local", DSN(cfg))

	cfg.Connection.ParseTime = true
	cfg.Connection.TLS = "skip-verify"
	cfg.Connection.Timeout = "5s"
	dsn := DSN(cfg)
	assert.Contains(t, dsn, "parseTime=True")
	assert.Contains(t, dsn, "&tls=skip-verify")
	assert.Contains(t, dsn, "&timeout=5s")
	assert.NotContains(t, dsn, "readTimeout")
}

func TestPool(t *testing.T) {
	pool := Config{ConnectionDetails: ConnectionDetails{MaxOpenConns: 10}}.pool()
	assert.Equal(t, 10, pool.MaxConns)
	assert.Zero(t, pool.MinConns)
}

func TestTranslator(t *testing.T) {
	tests := []struct {
		number uint16
		want   error
	}{
		{1062, unidb.ErrDuplicateKey},
		{1451, unidb.ErrForeignKey},
		{1452, unidb.ErrForeignKey},
		{1146, unidb.ErrUndefinedTable},
		{1054, unidb.ErrInvalidField},
		{1048, unidb.ErrNotNull},
		{4025, unidb.ErrCheckViolation},
		{1213, unidb.ErrSerialization},
		{1064, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.number), func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &mysqldriver.MySQLError{Number: tt.number, Message: "boom"})
			assert.Equal(t, tt.want, Translator.Translate(err))
		})
	}

	assert.Equal(t, unidb.ErrConnection, Translator.Translate(mysqldriver.ErrInvalidConn))
	assert.Nil(t, Translator.Translate(errors.New("not mysql")))
}
