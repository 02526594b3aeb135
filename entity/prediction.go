package entity

import (
	"slices"

	"github.com/samber/lo"
)

const (
	// EgoID 主车在预测表中的保留ID，所有邻车查询都必须跳过
	EgoID int32 = -1
	// DefaultHorizon 默认预测长度（快照个数）
	DefaultHorizon = 2
)

// Predictions 车辆ID -> 未来快照序列
// 说明：规划只使用每辆他车的第一个快照（假设他车匀速）
type Predictions map[int32][]Vehicle

// GeneratePredictions 生成车辆未来horizon个快照
// 功能：按当前速度与加速度外推，快照速度取相邻两步的位置差
// 参数：horizon-快照个数
// 返回：快照序列，状态均为ConstantSpeed，加速度为0
func (v Vehicle) GeneratePredictions(horizon int) []Vehicle {
	predictions := make([]Vehicle, 0, horizon)
	for i := range horizon {
		t := float64(i)
		predictions = append(predictions, Vehicle{
			Lane:  v.Lane,
			S:     v.PositionAt(t),
			V:     v.PositionAt(t+1) - v.PositionAt(t),
			State: ConstantSpeed,
		})
	}
	return predictions
}

// BuildPredictions 为所有车辆生成预测
// 功能：每个规划步从最新的车辆表重新构建预测表，不复用上一步的结果
// 参数：ego-主车，others-他车（ID -> 快照），horizon-预测长度
// 返回：预测表，主车位于EgoID下
func BuildPredictions(ego *Ego, others map[int32]Vehicle, horizon int) Predictions {
	predictions := make(Predictions, len(others)+1)
	for id, v := range others {
		if id == EgoID {
			log.Panicf("vehicle id %d is reserved for ego", EgoID)
		}
		predictions[id] = v.GeneratePredictions(horizon)
	}
	if ego != nil {
		predictions[EgoID] = ego.Vehicle.GeneratePredictions(horizon)
	}
	return predictions
}

// Neighbors 所有他车的第一个快照
// 功能：跳过主车与空预测，按ID升序返回，保证邻车查询结果与map遍历顺序无关
func (p Predictions) Neighbors() []Vehicle {
	ids := lo.Filter(lo.Keys(p), func(id int32, _ int) bool {
		return id != EgoID && len(p[id]) > 0
	})
	slices.Sort(ids)
	return lo.Map(ids, func(id int32, _ int) Vehicle {
		return p[id][0]
	})
}
