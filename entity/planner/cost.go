package planner

import (
	"math"

	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

// 目标函数名，同时作为代价明细的键
const (
	GoalDistanceCost    = "goal_distance"
	InefficiencyCost    = "inefficiency"
	MaxAccelerationCost = "max_acceleration"
	SpeedLimitCost      = "speed_limit"
	LaneChangeCost      = "lane_change"
	OffRoadCost         = "off_road"
)

const (
	speedBufferRatio = 0.05 // 限速缓冲区占限速的比例
	stopCost         = 0.9  // 停车时的速度代价
)

// Weights 各目标函数的权重
type Weights struct {
	ReachGoal       float64
	Efficiency      float64
	MaxAcceleration float64
	SpeedLimit      float64
	LaneChange      float64
	OffRoad         float64
}

// DefaultWeights 默认权重
func DefaultWeights() Weights {
	return Weights{
		ReachGoal:       0.1e5,
		Efficiency:      2.0e2,
		MaxAcceleration: 1.5e6,
		SpeedLimit:      1.5e6,
		LaneChange:      1.5e6,
		OffRoad:         1.5e6,
	}
}

// trajectoryData 代价函数共用的辅助数据
type trajectoryData struct {
	intendedLane   int     // 准备变道时为目标车道，否则为终止车道
	finalLane      int     // 终止快照所在车道
	distanceToGoal float64 // 终止快照到目标位置的距离
}

func newTrajectoryData(ego *entity.Ego, t entity.Trajectory) trajectoryData {
	last := t.Last()
	intended := last.Lane
	if last.State.IsPrepare() {
		intended += last.State.LaneDirection()
	}
	return trajectoryData{
		intendedLane:   intended,
		finalLane:      last.Lane,
		distanceToGoal: ego.Config().GoalS - last.S,
	}
}

type costFunc func(ego *entity.Ego, predictions entity.Predictions, data trajectoryData) float64

type objective struct {
	name   string
	weight func(Weights) float64
	fn     costFunc
}

var objectives = []objective{
	{GoalDistanceCost, func(w Weights) float64 { return w.ReachGoal }, goalDistanceCost},
	{InefficiencyCost, func(w Weights) float64 { return w.Efficiency }, inefficiencyCost},
	{MaxAccelerationCost, func(w Weights) float64 { return w.MaxAcceleration }, maxAccelerationCost},
	{SpeedLimitCost, func(w Weights) float64 { return w.SpeedLimit }, speedLimitCost},
	{LaneChangeCost, func(w Weights) float64 { return w.LaneChange }, safetyLaneChangeCost},
	{OffRoadCost, func(w Weights) float64 { return w.OffRoad }, offRoadCost},
}

// CostModel 轨迹代价模型
type CostModel struct {
	weights Weights
}

// NewCostModel 创建代价模型
func NewCostModel(weights Weights) *CostModel {
	return &CostModel{weights: weights}
}

// Weights 代价模型使用的权重
func (m *CostModel) Weights() Weights {
	return m.weights
}

// Evaluate 计算轨迹的加权总代价
// 功能：对各目标函数加权求和
// 参数：ego-主车，predictions-预测表，t-候选轨迹
// 返回：总代价，以及每个目标函数加权后的代价明细
func (m *CostModel) Evaluate(ego *entity.Ego, predictions entity.Predictions, t entity.Trajectory) (float64, map[string]float64) {
	data := newTrajectoryData(ego, t)
	total := 0.
	breakdown := make(map[string]float64, len(objectives))
	for _, o := range objectives {
		c := o.weight(m.weights) * o.fn(ego, predictions, data)
		breakdown[o.name] = c
		total += c
	}
	return total, breakdown
}

// goalDistanceCost 目标距离代价
// 离目标越近，意图车道与终止车道偏离目标车道的代价越大；到达或越过目标后恒为1
func goalDistanceCost(ego *entity.Ego, _ entity.Predictions, data trajectoryData) float64 {
	if data.distanceToGoal <= 0 {
		return 1
	}
	deltaD := float64(2*ego.Config().GoalLane - data.intendedLane - data.finalLane)
	return 1 - 2*math.Exp(-math.Abs(deltaD)/data.distanceToGoal)
}

// inefficiencyCost 效率代价
// 意图车道与终止车道前车速度低于目标速度时代价升高，无前车时按目标速度计
func inefficiencyCost(ego *entity.Ego, predictions entity.Predictions, data trajectoryData) float64 {
	target := ego.Config().TargetSpeed
	intended := laneSpeed(ego, predictions, data.intendedLane)
	final := laneSpeed(ego, predictions, data.finalLane)
	return (2*target - intended - final) / target
}

func laneSpeed(ego *entity.Ego, predictions entity.Predictions, lane int) float64 {
	cfg := ego.Config()
	if ahead, ok := vehicleAheadWithin(predictions, lane, ego.S, cfg.GoalS, aheadGateDistance); ok {
		return ahead.V
	}
	return cfg.TargetSpeed
}

// safetyLaneChangeCost 变道安全代价
// 意图车道与终止车道不同且意图车道侧方有车时为1，否则为0
func safetyLaneChangeCost(ego *entity.Ego, predictions entity.Predictions, data trajectoryData) float64 {
	if data.intendedLane == data.finalLane {
		return 0
	}
	if vehicleBeside(predictions, data.intendedLane, ego.S, besideWindow) {
		return 1
	}
	return 0
}

// speedLimitCost 限速代价
// 低于缓冲目标速度时按比例趋向停车代价，缓冲区内线性增加，超过限速为1
func speedLimitCost(ego *entity.Ego, _ entity.Predictions, _ trajectoryData) float64 {
	maxSpeed := ego.Config().MaxSpeed
	buffer := speedBufferRatio * maxSpeed
	target := maxSpeed - buffer
	switch {
	case ego.V < target:
		return stopCost * (target - ego.V) / target
	case ego.V > maxSpeed:
		return 1
	default:
		return (ego.V - target) / buffer
	}
}

// maxAccelerationCost 加速度超过上限时为1
func maxAccelerationCost(ego *entity.Ego, _ entity.Predictions, _ trajectoryData) float64 {
	if ego.A > ego.Config().MaxAcceleration {
		return 1
	}
	return 0
}

// offRoadCost 意图车道或终止车道不在道路内时为1
func offRoadCost(ego *entity.Ego, _ entity.Predictions, data trajectoryData) float64 {
	lanes := ego.Config().LanesAvailable
	onRoad := func(lane int) bool { return lane >= 0 && lane < lanes }
	if onRoad(data.intendedLane) && onRoad(data.finalLane) {
		return 0
	}
	return 1
}
