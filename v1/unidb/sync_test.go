package unidb

import (
	"errors"
	"testing"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSync(t *testing.T) *SyncExecutor {
	t.Helper()
	exec, err := NewSyncExecutor(testContext(t), openTestDB(t), dialect.SQLite, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = exec.Close() })
	return exec
}

func TestSyncWriteRollsBackOnFailure(t *testing.T) {
	exec := newTestSync(t)
	ctx := testContext(t)

	_, err := exec.Insert(ctx, "foobar", Values{"value": "foo"})
	require.NoError(t, err)

	_, err = exec.Insert(ctx, "foobar", Values{"value": "foo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecution))

	// the single connection is usable again after the failed transaction
	n, err := exec.Update(ctx, "foobar", "value = $v", Vars{"v": "foo"}, Values{"value": "bar"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	recs, err := exec.Query(ctx, "SELECT value FROM foobar", nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "bar", recs[0].String("value"))
}

func TestSyncExecRunsDescriptors(t *testing.T) {
	exec := newTestSync(t)
	ctx := testContext(t)

	recs, err := exec.Exec(ctx, dialect.Insert{Table: "foobar", Values: dialect.Values{"value": "foo"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].Int64("n"))

	recs, err = exec.Exec(ctx, dialect.Query{
		SQL:       "SELECT value FROM foobar WHERE value = ?",
		Args:      []interface{}{"foo"},
		Processed: true,
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "foo", recs[0].String("value"))

	recs, err = exec.Exec(ctx, dialect.Delete{Table: "foobar", Where: "value = $v", Vars: dialect.Vars{"v": "foo"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), recs[0].Int64("n"))

	_, err = exec.Exec(ctx, dialect.Delete{Table: "foobar"})
	assert.True(t, errors.Is(err, dialect.ErrMissingWhere))
}

func TestSyncObserverMode(t *testing.T) {
	obs := &TestObserver{}
	exec := newTestSync(t).WithObserver(obs)
	ctx := testContext(t)

	_, err := exec.Delete(ctx, "foobar", "1=1", nil)
	require.NoError(t, err)

	ops := obs.GetOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "delete", ops[0].Operation)
	assert.Equal(t, "sync", ops[0].Metadata["mode"])
	assert.Equal(t, int64(0), ops[0].Size)
}

func TestSyncClosed(t *testing.T) {
	exec := newTestSync(t)
	ctx := testContext(t)

	require.NoError(t, exec.Close())
	require.NoError(t, exec.Close())

	_, err := exec.Select(ctx, "foobar", SelectOptions{})
	assert.True(t, errors.Is(err, ErrClosed))

	f := exec.DInsert(ctx, "foobar", Values{"value": "foo"})
	assert.True(t, f.Ready())
	_, err = f.Await(ctx)
	assert.True(t, errors.Is(err, ErrClosed))

	assert.True(t, errors.Is(exec.Ping(ctx), ErrClosed))

	// render failures are still reported as such
	_, err = exec.Delete(ctx, "foobar", "", nil)
	assert.True(t, errors.Is(err, dialect.ErrMissingWhere))
}
