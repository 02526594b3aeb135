package task

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/clock"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/road"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/output"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/randengine"
)

// Context 规划任务上下文
// 功能：包含一次规划运行的所有组件，包括时钟、道路、决策记录输出
type Context struct {
	// 本次运行的唯一标识，写入每条决策记录
	runID string
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock
	// 道路（主车与他车）
	road *road.Road
	// 决策记录输出，可以为空
	recorder output.Recorder
}

// Option 任务上下文选项
type Option func(*options)

type options struct {
	planner *planner.Planner
}

// WithPlanner 使用指定的决策引擎，默认按配置中的代价权重创建
func WithPlanner(p *planner.Planner) Option {
	return func(o *options) {
		o.planner = p
	}
}

// NewContext 创建新的规划任务上下文
// 参数：c-已校验的配置，recorder-决策记录输出（可以为nil），opts-可选项
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建时钟、决策引擎与道路
// 2. 添加主车
// 3. 配置了他车时逐一添加，否则按密度在主车附近随机生成
func NewContext(c config.Config, recorder output.Recorder, opts ...Option) (*Context, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.planner == nil {
		o.planner = planner.New(c.Weights())
	}
	ctx := &Context{
		runID:    uuid.NewString(),
		clock:    clock.New(c.Control.Step),
		recorder: recorder,
	}
	ctx.road = road.New(c.Road, o.planner, randengine.New(c.Traffic.Seed))
	if err := ctx.road.AddEgo(c.Ego.Lane, c.Ego.S, c.Ego.V, c.EgoConfig()); err != nil {
		return nil, fmt.Errorf("add ego: %w", err)
	}
	if len(c.Traffic.Vehicles) > 0 {
		for _, v := range c.Traffic.Vehicles {
			err := ctx.road.AddVehicle(v.ID, entity.Vehicle{Lane: v.Lane, S: v.S, V: v.V, State: entity.ConstantSpeed})
			if err != nil {
				return nil, fmt.Errorf("add vehicle: %w", err)
			}
		}
	} else if c.Road.Density > 0 {
		ctx.road.PopulateTraffic()
	}
	log.Infof("run %s: %d lanes, %d vehicles, steps [%d, %d)",
		ctx.runID, ctx.road.NumLanes(), len(ctx.road.Vehicles()), ctx.clock.START_STEP, ctx.clock.END_STEP)
	return ctx, nil
}

func (ctx *Context) RunID() string {
	return ctx.runID
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) Road() *road.Road {
	return ctx.road
}

// Close 关闭决策记录输出，重复调用无效果
func (ctx *Context) Close(goCtx context.Context) error {
	if ctx.closed.Swap(true) || ctx.recorder == nil {
		return nil
	}
	return ctx.recorder.Close(goCtx)
}
