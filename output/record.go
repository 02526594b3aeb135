package output

import (
	"context"
	"errors"

	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
)

// Record 一个规划步的决策记录
type Record struct {
	RunID string  `bson:"run_id"`
	Step  int32   `bson:"step"`
	T     float64 `bson:"t"`
	State string  `bson:"state"`
	Lane  int     `bson:"lane"`
	S     float64 `bson:"s"`
	V     float64 `bson:"v"`
	A     float64 `bson:"a"`
	Cost  float64 `bson:"cost"`
	Error string  `bson:"error,omitempty"` // 规划失败原因，成功时为空
}

// NewRecord 由规划结果构造记录
// 说明：规划失败时记录失败原因与主车保持不变的状态
func NewRecord(runID string, step int32, t float64, ego entity.Vehicle, decision planner.Decision, err error) Record {
	r := Record{
		RunID: runID,
		Step:  step,
		T:     t,
		State: string(ego.State),
		Lane:  ego.Lane,
		S:     ego.S,
		V:     ego.V,
		A:     ego.A,
		Cost:  decision.Cost,
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Recorder 决策记录输出
type Recorder interface {
	Record(ctx context.Context, r Record) error
	Close(ctx context.Context) error
}

// Multi 将记录同时写入多个输出
type Multi []Recorder

func (m Multi) Record(ctx context.Context, r Record) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close(ctx context.Context) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
