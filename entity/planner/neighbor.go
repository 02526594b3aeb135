package planner

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

const (
	aheadGateDistance = 40 // 效率代价中只关心该距离内的前车
	besideWindow      = 20 // 判定侧方有车的纵向窗口（前后各）
)

// vehicleAhead 查找前车
// 功能：在lane上寻找位置位于(s, limit)之间且最近的车辆
// 参数：predictions-预测表，lane-车道，s-本车位置，limit-搜索上界（通常为目标位置）
// 返回：前车快照，找不到时ok为false
func vehicleAhead(predictions entity.Predictions, lane int, s, limit float64) (ahead entity.Vehicle, ok bool) {
	minS := limit
	for _, v := range predictions.Neighbors() {
		if v.Lane == lane && v.S > s && v.S < minS {
			minS = v.S
			ahead = v
			ok = true
		}
	}
	return
}

// vehicleBehind 查找后车
// 功能：在lane上寻找位置小于s且最近的车辆
func vehicleBehind(predictions entity.Predictions, lane int, s float64) (behind entity.Vehicle, ok bool) {
	maxS := -mathutil.INF
	for _, v := range predictions.Neighbors() {
		if v.Lane == lane && v.S < s && v.S > maxS {
			maxS = v.S
			behind = v
			ok = true
		}
	}
	return
}

// vehicleAheadWithin 查找gate距离内的前车
// 说明：先找最近前车，再用该车本身的距离判断是否在gate内
func vehicleAheadWithin(predictions entity.Predictions, lane int, s, limit, gate float64) (entity.Vehicle, bool) {
	ahead, ok := vehicleAhead(predictions, lane, s, limit)
	if !ok || ahead.S-s >= gate {
		return entity.Vehicle{}, false
	}
	return ahead, true
}

// vehicleBeside 侧方是否有车（纵向距离小于window）
func vehicleBeside(predictions entity.Predictions, lane int, s, window float64) bool {
	for _, v := range predictions.Neighbors() {
		if v.Lane == lane && math.Abs(v.S-s) < window {
			return true
		}
	}
	return false
}

// occupied 目标位置是否已被占用
func occupied(predictions entity.Predictions, lane int, s float64) bool {
	for _, v := range predictions.Neighbors() {
		if v.Lane == lane && v.S == s {
			return true
		}
	}
	return false
}
