package planner

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

// laneGuard 状态转移的车道条件
type laneGuard func(lane, lanesAvailable int) bool

func always(int, int) bool { return true }

func notLeftmost(lane, _ int) bool { return lane > 0 }

func notRightmost(lane, lanesAvailable int) bool { return lane < lanesAvailable-1 }

type transition struct {
	to    entity.State
	guard laneGuard
}

// transitions 状态转移表
// 变道在一个规划步内完成，因此LCL/LCR只能回到KL
var transitions = map[entity.State][]transition{
	entity.KeepLane: {
		{entity.KeepLane, always},
		{entity.PrepareLaneChangeLeft, notLeftmost},
		{entity.PrepareLaneChangeRight, notRightmost},
	},
	entity.PrepareLaneChangeLeft: {
		{entity.KeepLane, always},
		{entity.PrepareLaneChangeLeft, notLeftmost},
		{entity.LaneChangeLeft, notLeftmost},
	},
	entity.PrepareLaneChangeRight: {
		{entity.KeepLane, always},
		{entity.PrepareLaneChangeRight, notRightmost},
		{entity.LaneChangeRight, notRightmost},
	},
	entity.LaneChangeLeft: {
		{entity.KeepLane, always},
	},
	entity.LaneChangeRight: {
		{entity.KeepLane, always},
	},
}

// SuccessorStates 后继状态枚举
// 功能：根据当前状态与车道查转移表，返回可达的下一状态
// 参数：state-当前状态，lane-当前车道，lanesAvailable-可用车道数
// 返回：可达状态列表，KL总是第一个；表中没有的状态（如CS）只能转移到KL
func SuccessorStates(state entity.State, lane, lanesAvailable int) []entity.State {
	ts, ok := transitions[state]
	if !ok {
		return []entity.State{entity.KeepLane}
	}
	return lo.FilterMap(ts, func(t transition, _ int) (entity.State, bool) {
		return t.to, t.guard(lane, lanesAvailable)
	})
}
