package planner

import (
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

// GenerateTrajectory 为指定机动生成轨迹
// 功能：按机动类型分派到对应的轨迹生成函数
// 参数：ego-主车，state-目标机动，predictions-预测表
// 返回：轨迹；机动不可行时ok为false，调用方应排除该候选
func GenerateTrajectory(ego *entity.Ego, state entity.State, predictions entity.Predictions) (t entity.Trajectory, ok bool) {
	switch state {
	case entity.ConstantSpeed:
		return constantSpeedTrajectory(ego.Vehicle), true
	case entity.KeepLane:
		return keepLaneTrajectory(ego, predictions), true
	case entity.PrepareLaneChangeLeft, entity.PrepareLaneChangeRight:
		return prepLaneChangeTrajectory(ego, state, predictions), true
	case entity.LaneChangeLeft, entity.LaneChangeRight:
		return laneChangeTrajectory(ego, state, predictions)
	default:
		log.Panicf("GenerateTrajectory: unknown state %q", state)
	}
	return
}

func constantSpeedTrajectory(v entity.Vehicle) entity.Trajectory {
	next := v
	next.S = v.PositionAt(1)
	next.A = 0
	return entity.Trajectory{v, next}
}

func keepLaneTrajectory(ego *entity.Ego, predictions entity.Predictions) entity.Trajectory {
	k := GetKinematics(ego, predictions, ego.Lane)
	return entity.Trajectory{
		ego.Vehicle,
		{Lane: ego.Lane, S: k.S, V: k.V, A: k.A, State: entity.KeepLane},
	}
}

// prepLaneChangeTrajectory 准备变道轨迹
// 功能：留在原车道，速度取原车道与目标车道中较保守的一个
// 说明：原车道有后车时保持原车道的运动学状态，避免被追尾
func prepLaneChangeTrajectory(ego *entity.Ego, state entity.State, predictions entity.Predictions) entity.Trajectory {
	newLane := ego.Lane + state.LaneDirection()
	k := GetKinematics(ego, predictions, ego.Lane)
	if _, ok := vehicleBehind(predictions, ego.Lane, ego.S); !ok {
		if next := GetKinematics(ego, predictions, newLane); next.V < k.V {
			k = next
		}
	}
	return entity.Trajectory{
		ego.Vehicle,
		{Lane: ego.Lane, S: k.S, V: k.V, A: k.A, State: state},
	}
}

// laneChangeTrajectory 变道轨迹
// 功能：目标车道同一位置有车时不可行；否则在一个规划步内完成变道
func laneChangeTrajectory(ego *entity.Ego, state entity.State, predictions entity.Predictions) (entity.Trajectory, bool) {
	newLane := ego.Lane + state.LaneDirection()
	if newLane < 0 || newLane >= ego.Config().LanesAvailable {
		return entity.Trajectory{}, false
	}
	if occupied(predictions, newLane, ego.S) {
		log.Debugf("lane change %v blocked at lane %d s %.2f", state, newLane, ego.S)
		return entity.Trajectory{}, false
	}
	k := GetKinematics(ego, predictions, newLane)
	return entity.Trajectory{
		ego.Vehicle,
		{Lane: newLane, S: k.S, V: k.V, A: k.A, State: state},
	}, true
}
