package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/unidb/v1/database"
	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/sqlite"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ctx)
}

func (r *recordingObserver) operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, op := range r.ops {
		out = append(out, op.Operation)
	}
	return out
}

func TestFXModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := unidb.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	// a health check racing with shutdown may observe the closed executor
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	obs := &recordingObserver{}

	var (
		db     unidb.AsyncDB
		client database.Client
	)
	app := fxtest.New(t,
		fx.Provide(
			func() database.Config {
				cfg := database.SQLiteConfig(sqlite.Config{})
				cfg.MonitorInterval = 20 * time.Millisecond
				return cfg
			},
			func() unidb.Logger { return mockLogger },
			func() observability.Observer { return obs },
		),
		database.FXModule,
		fx.Populate(&db, &client),
	)
	app.RequireStart()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.DQuery(ctx, `CREATE TABLE foobar (id INTEGER PRIMARY KEY AUTOINCREMENT, value TEXT)`, nil).Await(ctx)
	require.NoError(t, err)
	id, err := db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "sqlite", client.Dialect().Name)

	assert.Eventually(t, func() bool {
		for _, op := range obs.operations() {
			if op == "ping" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	app.RequireStop()

	_, err = db.DSelect(ctx, "foobar", unidb.SelectOptions{}).Await(ctx)
	assert.True(t, errors.Is(err, unidb.ErrClosed))
	assert.True(t, errors.Is(client.Ping(ctx), unidb.ErrClosed))
}

func TestFXModuleFailsOnInvalidConfig(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() database.Config { return database.Config{Type: "oracle"} }),
		database.FXModule,
		fx.Invoke(func(unidb.AsyncDB) {}),
	)
	assert.ErrorContains(t, app.Err(), "unsupported database type")
}
