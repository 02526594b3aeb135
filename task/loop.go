package task

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/output"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// heartbeat 定期输出主车状态
func (ctx *Context) heartbeat() {
	if *heartBeatInterval <= 0 || ctx.clock.InternalStep%int32(*heartBeatInterval) != 0 {
		return
	}
	ego, _ := ctx.road.Ego()
	hour, minute, second := ctx.clock.GetHourMinuteSecond()
	log.Infof("STEP: %d(%d:%d:%.2f) ego: %v", ctx.clock.InternalStep, hour, minute, second, ego)
}

// step 执行一个规划步
// 说明：规划失败只记录警告，主车保持上一步状态，下一步继续规划
func (ctx *Context) step(goCtx context.Context) error {
	ctx.heartbeat()
	decision, err := ctx.road.Advance()
	if err != nil {
		log.Warnf("step %d: %v", ctx.clock.InternalStep, err)
	} else {
		log.Debugf("step %d: choose %v with cost %.4f", ctx.clock.InternalStep, decision.State(), decision.Cost)
	}
	if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		log.Trace("\n" + ctx.road.Render(ctx.clock.InternalStep))
	}
	if ctx.recorder == nil {
		return nil
	}
	ego, _ := ctx.road.Ego()
	r := output.NewRecord(ctx.runID, ctx.clock.InternalStep, ctx.clock.T, ego, decision, err)
	if err := ctx.recorder.Record(goCtx, r); err != nil {
		return fmt.Errorf("record step %d: %w", ctx.clock.InternalStep, err)
	}
	return nil
}

// Run 运行
// 功能：从起始步运行到结束步，每步规划一次并记录决策
// 返回：上下文被取消或记录输出失败时返回错误
func (ctx *Context) Run(goCtx context.Context) error {
	ctx.clock.Init()
	for !ctx.clock.Done() {
		if ctx.closed.Load() {
			return fmt.Errorf("run %s: context closed", ctx.runID)
		}
		select {
		case <-goCtx.Done():
			return goCtx.Err()
		default:
		}
		if err := ctx.step(goCtx); err != nil {
			return err
		}
		ctx.clock.Next()
	}
	log.Infof("run %s complete", ctx.runID)
	return nil
}
