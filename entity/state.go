package entity

// State 机动状态标签
// 功能：行为规划有限状态机中的状态，同时作为车辆快照的机动标签
type State string

const (
	KeepLane               State = "KL"   // 保持车道
	PrepareLaneChangeLeft  State = "PLCL" // 准备向左变道
	PrepareLaneChangeRight State = "PLCR" // 准备向右变道
	LaneChangeLeft         State = "LCL"  // 向左变道
	LaneChangeRight        State = "LCR"  // 向右变道
	ConstantSpeed          State = "CS"   // 匀速行驶，仅用于非主车
)

// 横向方向，与车道编号一致：最左侧车道为0，往右侧递增
const (
	LEFT  = -1
	RIGHT = 1
)

var laneDirection = map[State]int{
	PrepareLaneChangeLeft:  LEFT,
	LaneChangeLeft:         LEFT,
	PrepareLaneChangeRight: RIGHT,
	LaneChangeRight:        RIGHT,
}

// Valid 检查状态是否为已知状态
func (s State) Valid() bool {
	switch s {
	case KeepLane, PrepareLaneChangeLeft, PrepareLaneChangeRight,
		LaneChangeLeft, LaneChangeRight, ConstantSpeed:
		return true
	}
	return false
}

// LaneDirection 状态对应的车道偏移，左负右正，非变道类状态为0
func (s State) LaneDirection() int {
	return laneDirection[s]
}

// IsPrepare 是否为准备变道状态
func (s State) IsPrepare() bool {
	return s == PrepareLaneChangeLeft || s == PrepareLaneChangeRight
}

// IsLaneChange 是否为执行变道状态
func (s State) IsLaneChange() bool {
	return s == LaneChangeLeft || s == LaneChangeRight
}

func (s State) String() string {
	return string(s)
}
