package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidEgoConfig 主车配置不合法
var ErrInvalidEgoConfig = errors.New("invalid ego config")

// EgoConfig 主车规划包络参数
// 功能：主车启动时配置一次，之后不再修改
type EgoConfig struct {
	TargetSpeed     float64 // 目标速度
	LanesAvailable  int     // 可用车道数
	GoalS           float64 // 目标位置
	GoalLane        int     // 目标车道
	MaxAcceleration float64 // 最大加速度（每规划步）
	MaxSpeed        float64 // 道路限速
	PreferredBuffer float64 // 最小安全跟车距离
}

// Validate 检查配置是否合法
// 功能：在任何规划步执行前拒绝不合法的配置
// 返回：错误信息，合法则返回nil
func (c EgoConfig) Validate() error {
	switch {
	case c.LanesAvailable <= 0:
		return fmt.Errorf("%w: lanes_available must be positive, got %d", ErrInvalidEgoConfig, c.LanesAvailable)
	case c.GoalLane < 0 || c.GoalLane >= c.LanesAvailable:
		return fmt.Errorf("%w: goal_lane %d outside [0, %d)", ErrInvalidEgoConfig, c.GoalLane, c.LanesAvailable)
	case c.TargetSpeed <= 0:
		return fmt.Errorf("%w: target_speed must be positive, got %v", ErrInvalidEgoConfig, c.TargetSpeed)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive, got %v", ErrInvalidEgoConfig, c.MaxSpeed)
	case c.MaxAcceleration <= 0:
		return fmt.Errorf("%w: max_acceleration must be positive, got %v", ErrInvalidEgoConfig, c.MaxAcceleration)
	case c.PreferredBuffer < 0:
		return fmt.Errorf("%w: preferred_buffer must not be negative, got %v", ErrInvalidEgoConfig, c.PreferredBuffer)
	}
	return nil
}

// Vehicle 车辆快照
// 功能：记录一辆被跟踪车辆（主车或他车）在某一时刻的运动学状态
type Vehicle struct {
	Lane  int     // 车道编号，最左侧为0
	S     float64 // 纵向位置
	V     float64 // 纵向速度
	A     float64 // 纵向加速度
	State State   // 当前机动状态
}

func (v Vehicle) String() string {
	return fmt.Sprintf("Vehicle{State=%v, Lane=%d, S=%.2f, V=%.2f, A=%.2f}", v.State, v.Lane, v.S, v.V, v.A)
}

// PositionAt 按匀加速假设推算t时刻后的位置
func (v Vehicle) PositionAt(t float64) float64 {
	return v.S + v.V*t + v.A*t*t/2
}

// Increment 将车辆沿当前车道推进dt时间
func (v *Vehicle) Increment(dt float64) {
	v.S = v.PositionAt(dt)
}

// Trajectory 轨迹
// 功能：[当前快照, 下一规划步快照]，长度固定为2
type Trajectory [2]Vehicle

// Current 当前快照
func (t Trajectory) Current() Vehicle {
	return t[0]
}

// Last 终止快照
func (t Trajectory) Last() Vehicle {
	return t[1]
}

// Ego 主车
// 功能：主车快照与不可变的规划配置
// 说明：规划配置只能在创建时给定，每个规划步结束后由选中轨迹的终止快照覆盖运动学状态
type Ego struct {
	Vehicle
	config EgoConfig
}

// NewEgo 创建主车
// 参数：lane-初始车道，s-初始位置，v-初始速度，config-规划配置
// 返回：主车实例，配置或初始车道不合法时返回错误
func NewEgo(lane int, s, v float64, config EgoConfig) (*Ego, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if lane < 0 || lane >= config.LanesAvailable {
		return nil, fmt.Errorf("%w: lane %d outside [0, %d)", ErrInvalidEgoConfig, lane, config.LanesAvailable)
	}
	return &Ego{
		Vehicle: Vehicle{Lane: lane, S: s, V: v, State: KeepLane},
		config:  config,
	}, nil
}

// Config 主车规划配置
func (e *Ego) Config() EgoConfig {
	return e.config
}

// RealizeNextState 以轨迹终止快照覆盖主车状态
// 说明：这是一个规划步唯一的副作用
func (e *Ego) RealizeNextState(t Trajectory) {
	e.Vehicle = t.Last()
}
