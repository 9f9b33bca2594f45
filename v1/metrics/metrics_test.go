package metrics

import (
	"database/sql"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aleph-Alpha/unidb/v1/observability"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component:   "unidb",
		Operation:   "select",
		Resource:    "foobar",
		SubResource: "sqlite",
		Duration:    20 * time.Millisecond,
		Size:        3,
	})
	m.ObserveOperation(observability.OperationContext{
		Component:   "unidb",
		Operation:   "select",
		Resource:    "missing",
		SubResource: "sqlite",
		Error:       errors.New("no such table"),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("unidb", "select", "foobar", "sqlite", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("unidb", "select", "missing", "sqlite", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("unidb", "select", "foobar")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestServiceLabelAndNamespace(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "orders", Namespace: "unidb"})
	m.ObserveOperation(observability.OperationContext{Component: "unidb", Operation: "insert", Resource: "foobar", SubResource: "duckdb", Size: 1})

	expected := `
# HELP unidb_rows_total Rows read, inserted, updated or deleted
# TYPE unidb_rows_total counter
unidb_rows_total{component="unidb",operation="insert",resource="foobar",service="orders"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "unidb_rows_total"))
}

func TestRegisterDBStats(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, m.RegisterDBStats(db, "sqlite"))
	assert.Error(t, m.RegisterDBStats(db, "sqlite"))

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `go_sql_max_open_connections{db_name="sqlite",service="test"}`)
}

func TestCreateCounter(t *testing.T) {
	m := NewMetrics(Config{})
	c := m.CreateCounter("retries_total", "Retries issued by the caller", []string{"operation"})
	c.WithLabelValues("insert").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.WithLabelValues("insert")))
	assert.Equal(t, DefaultMetricsAddress, m.Server.Addr)
}
