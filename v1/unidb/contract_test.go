package unidb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aleph-Alpha/unidb/v1/duckdb"
	"github.com/Aleph-Alpha/unidb/v1/future"
	"github.com/Aleph-Alpha/unidb/v1/sqlite"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ unidb.AsyncDB = (*unidb.AsyncExecutor)(nil)
	_ unidb.AsyncDB = (*unidb.SyncExecutor)(nil)
	_ unidb.SyncDB  = (*unidb.SyncExecutor)(nil)
)

const trialTimeout = 3 * time.Second

var (
	sqliteSchema = []string{
		`CREATE TABLE foobar (id INTEGER PRIMARY KEY AUTOINCREMENT, value TEXT)`,
	}
	duckdbSchema = []string{
		`CREATE SEQUENCE foobar_id START 1`,
		`CREATE TABLE foobar (id BIGINT PRIMARY KEY DEFAULT nextval('foobar_id'), value VARCHAR)`,
	}
)

type asyncBackend struct {
	name   string
	schema []string
	open   func(t *testing.T) unidb.AsyncDB
}

type syncBackend struct {
	name   string
	schema []string
	open   func(t *testing.T) unidb.SyncDB
}

func asyncBackends() []asyncBackend {
	return []asyncBackend{
		{
			name:   "sqlite/async",
			schema: sqliteSchema,
			open: func(t *testing.T) unidb.AsyncDB {
				exec, err := sqlite.NewAsync(sqlite.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
		{
			name:   "sqlite/sync-deferred",
			schema: sqliteSchema,
			open: func(t *testing.T) unidb.AsyncDB {
				exec, err := sqlite.NewSync(context.Background(), sqlite.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
		{
			name:   "duckdb/async",
			schema: duckdbSchema,
			open: func(t *testing.T) unidb.AsyncDB {
				exec, err := duckdb.NewAsync(duckdb.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
		{
			name:   "duckdb/sync-deferred",
			schema: duckdbSchema,
			open: func(t *testing.T) unidb.AsyncDB {
				exec, err := duckdb.NewSync(context.Background(), duckdb.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
	}
}

func syncBackends() []syncBackend {
	return []syncBackend{
		{
			name:   "sqlite/sync",
			schema: sqliteSchema,
			open: func(t *testing.T) unidb.SyncDB {
				exec, err := sqlite.NewSync(context.Background(), sqlite.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
		{
			name:   "duckdb/sync",
			schema: duckdbSchema,
			open: func(t *testing.T) unidb.SyncDB {
				exec, err := duckdb.NewSync(context.Background(), duckdb.Config{})
				require.NoError(t, err)
				t.Cleanup(func() { _ = exec.Close() })
				return exec
			},
		},
	}
}

func trialContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), trialTimeout)
	t.Cleanup(cancel)
	return ctx
}

func await[T any](t *testing.T, ctx context.Context, f *future.Future[T]) T {
	t.Helper()
	require.NotNil(t, f)
	v, err := f.Await(ctx)
	require.NoError(t, err)
	return v
}

func prepareAsync(t *testing.T, b asyncBackend) (unidb.AsyncDB, context.Context) {
	db := b.open(t)
	ctx := trialContext(t)
	for _, ddl := range b.schema {
		await(t, ctx, db.DQuery(ctx, ddl, nil))
	}
	return db, ctx
}

func prepareSync(t *testing.T, b syncBackend) (unidb.SyncDB, context.Context) {
	db := b.open(t)
	ctx := trialContext(t)
	for _, ddl := range b.schema {
		_, err := db.Query(ctx, ddl, nil)
		require.NoError(t, err)
	}
	return db, ctx
}

func TestAsyncContract(t *testing.T) {
	for _, b := range asyncBackends() {
		t.Run(b.name, func(t *testing.T) {
			t.Run("insert", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)
				assert.Equal(t, int64(1), await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"})))
				assert.Equal(t, int64(2), await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "bar"})))
			})

			t.Run("select", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}))
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "bar"}))

				recs := await(t, ctx, db.DSelect(ctx, "foobar", unidb.SelectOptions{Order: "id asc"}))
				require.Len(t, recs, 2)
				assert.Equal(t, "foo", recs[0].String("value"))
				assert.Equal(t, "bar", recs[1].String("value"))
				assert.Equal(t, int64(1), recs[0].Int64("id"))
			})

			t.Run("query", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}))

				recs := await(t, ctx, db.DQuery(ctx, "SELECT value FROM foobar WHERE value = $v", unidb.Vars{"v": "foo"}))
				require.Len(t, recs, 1)
				assert.Equal(t, []string{"value"}, recs[0].Columns())
				assert.Equal(t, "foo", recs[0].String("value"))
			})

			t.Run("update", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}))
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "bar"}))

				n := await(t, ctx, db.DUpdate(ctx, "foobar", "value = $value", unidb.Vars{"value": "foo"}, unidb.Values{"value": "bar"}))
				assert.Equal(t, int64(1), n)

				n = await(t, ctx, db.DUpdate(ctx, "foobar", "value = $value", unidb.Vars{"value": "bar"}, unidb.Values{"value": "baz"}))
				assert.Equal(t, int64(2), n)
			})

			t.Run("delete", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}))
				await(t, ctx, db.DInsert(ctx, "foobar", unidb.Values{"value": "bar"}))
				await(t, ctx, db.DUpdate(ctx, "foobar", "value = $value", unidb.Vars{"value": "foo"}, unidb.Values{"value": "bar"}))

				assert.Equal(t, int64(2), await(t, ctx, db.DDelete(ctx, "foobar", "value = $value", unidb.Vars{"value": "bar"})))
				assert.Equal(t, int64(0), await(t, ctx, db.DDelete(ctx, "foobar", "value = $value", unidb.Vars{"value": "bar"})))
			})

			t.Run("missing table", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)

				f := db.DSelect(ctx, "missing", unidb.SelectOptions{})
				require.NotNil(t, f)
				_, err := f.Await(ctx)
				require.Error(t, err)
				assert.True(t, errors.Is(err, unidb.ErrExecution))
				assert.True(t, errors.Is(err, unidb.ErrUndefinedTable), "got %v", err)

				var execErr *unidb.ExecutionError
				require.True(t, errors.As(err, &execErr))
				assert.Equal(t, "select", execErr.Op)
			})

			t.Run("render error", func(t *testing.T) {
				db, ctx := prepareAsync(t, b)

				f := db.DSelect(ctx, "foobar", unidb.SelectOptions{Where: "value = $value"})
				assert.True(t, f.Ready())
				_, err := f.Await(ctx)
				assert.Equal(t, unidb.CategoryRender, unidb.Category(err))
			})
		})
	}
}

func TestSyncContract(t *testing.T) {
	for _, b := range syncBackends() {
		t.Run(b.name, func(t *testing.T) {
			db, ctx := prepareSync(t, b)

			id, err := db.Insert(ctx, "foobar", unidb.Values{"value": "foo"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)

			id, err = db.Insert(ctx, "foobar", unidb.Values{"value": "bar"})
			require.NoError(t, err)
			assert.Equal(t, int64(2), id)

			recs, err := db.Select(ctx, "foobar", unidb.SelectOptions{Order: "id asc"})
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "foo", recs[0].String("value"))
			assert.Equal(t, "bar", recs[1].String("value"))

			recs, err = db.Query(ctx, "SELECT count(*) AS n FROM foobar", nil)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, int64(2), recs[0].Int64("n"))

			n, err := db.Update(ctx, "foobar", "value = $value", unidb.Vars{"value": "foo"}, unidb.Values{"value": "bar"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			n, err = db.Delete(ctx, "foobar", "value = $value", unidb.Vars{"value": "bar"})
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			_, err = db.Select(ctx, "missing", unidb.SelectOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, unidb.ErrExecution))
			assert.True(t, errors.Is(err, unidb.ErrUndefinedTable), "got %v", err)
		})
	}
}

func TestSyncDeferredSurfaceIsCompleted(t *testing.T) {
	exec, err := sqlite.NewSync(context.Background(), sqlite.Config{})
	require.NoError(t, err)
	defer exec.Close()
	ctx := trialContext(t)

	f := exec.DQuery(ctx, sqliteSchema[0], nil)
	assert.True(t, f.Ready())
	_, err = f.Result()
	require.NoError(t, err)

	ins := exec.DInsert(ctx, "foobar", unidb.Values{"value": "foo"})
	assert.True(t, ins.Ready())
	id, err := ins.Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	failed := exec.DSelect(ctx, "missing", unidb.SelectOptions{})
	assert.True(t, failed.Ready())
	_, err = failed.Result()
	assert.True(t, errors.Is(err, unidb.ErrUndefinedTable))
}

func TestAsyncAndSyncAgree(t *testing.T) {
	ctx := trialContext(t)

	async, err := sqlite.NewAsync(sqlite.Config{})
	require.NoError(t, err)
	defer async.Close()
	sync, err := sqlite.NewSync(ctx, sqlite.Config{})
	require.NoError(t, err)
	defer sync.Close()

	await(t, ctx, async.DQuery(ctx, sqliteSchema[0], nil))
	_, err = sync.Query(ctx, sqliteSchema[0], nil)
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		asyncID := await(t, ctx, async.DInsert(ctx, "foobar", unidb.Values{"value": v}))
		syncID, err := sync.Insert(ctx, "foobar", unidb.Values{"value": v})
		require.NoError(t, err)
		assert.Equal(t, asyncID, syncID)
	}

	opts := unidb.SelectOptions{Where: "value <> $skip", Vars: unidb.Vars{"skip": "b"}, Order: "id desc", Limit: 1, Offset: 1}
	fromAsync := await(t, ctx, async.DSelect(ctx, "foobar", opts))
	fromSync, err := sync.Select(ctx, "foobar", opts)
	require.NoError(t, err)
	require.Len(t, fromAsync, 1)
	assert.Equal(t, fromAsync[0].Map(), fromSync[0].Map())
	assert.Equal(t, "a", fromSync[0].String("value"))
}
