package output_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/output"
)

func TestNewRecord(t *testing.T) {
	ego := entity.Vehicle{Lane: 1, S: 23, V: 22, A: 2, State: entity.PrepareLaneChangeLeft}
	r := output.NewRecord("run", 3, 1.5, ego, planner.Decision{Cost: -9.5}, nil)
	assert.Equal(t, output.Record{
		RunID: "run", Step: 3, T: 1.5, State: "PLCL", Lane: 1, S: 23, V: 22, A: 2, Cost: -9.5,
	}, r)

	r = output.NewRecord("run", 4, 2, ego, planner.Decision{}, planner.ErrNoFeasibleTrajectory)
	assert.Equal(t, planner.ErrNoFeasibleTrajectory.Error(), r.Error)
}

func TestSQLiteRecorder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.db")
	rec, err := output.NewSQLiteRecorder(path)
	require.NoError(t, err)

	want := []output.Record{
		{RunID: "a", Step: 0, T: 0, State: "KL", Lane: 1, S: 23, V: 22, A: 2, Cost: -1},
		{RunID: "a", Step: 1, T: 1, State: "PLCL", Lane: 1, S: 45, V: 22, Cost: -2, Error: "boom"},
	}
	// 乱序写入，按步数读出
	require.NoError(t, rec.Record(ctx, want[1]))
	require.NoError(t, rec.Record(ctx, want[0]))
	require.NoError(t, rec.Record(ctx, output.Record{RunID: "b", State: "KL"}))
	// 同一步重复写入违反主键
	assert.Error(t, rec.Record(ctx, want[0]))

	got, err := rec.Records(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, rec.Close(ctx))

	// 重新打开不丢失数据
	rec, err = output.NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close(ctx)
	got, err = rec.Records(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

type fakeRecorder struct {
	records []output.Record
	err     error
	closed  bool
}

func (f *fakeRecorder) Record(_ context.Context, r output.Record) error {
	f.records = append(f.records, r)
	return f.err
}

func (f *fakeRecorder) Close(context.Context) error {
	f.closed = true
	return f.err
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	a, b := &fakeRecorder{}, &fakeRecorder{err: boom}
	m := output.Multi{a, b}

	err := m.Record(ctx, output.Record{Step: 1})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)

	assert.ErrorIs(t, m.Close(ctx), boom)
	assert.True(t, a.closed)
	assert.True(t, b.closed)

	assert.NoError(t, output.Multi(nil).Record(ctx, output.Record{}))
}
