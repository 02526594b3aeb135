package config

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
	"gopkg.in/yaml.v2"
)

const (
	defaultInterval    = 1
	defaultUpdateWidth = 70
)

// ErrInvalidConfig 配置不合法
var ErrInvalidConfig = errors.New("invalid config")

// Load 解析YAML配置
// 功能：严格解析配置（未知字段报错），填充默认值并校验
// 参数：data-YAML内容
// 返回：配置对象，解析或校验失败时返回错误
func Load(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Control.Step.Interval == 0 {
		c.Control.Step.Interval = defaultInterval
	}
	if c.Road.UpdateWidth == 0 {
		c.Road.UpdateWidth = defaultUpdateWidth
	}
}

// EgoConfig 转换为主车规划配置
func (c Config) EgoConfig() entity.EgoConfig {
	return entity.EgoConfig{
		TargetSpeed:     c.Ego.TargetSpeed,
		LanesAvailable:  c.Ego.LanesAvailable,
		GoalS:           c.Ego.GoalS,
		GoalLane:        c.Ego.GoalLane,
		MaxAcceleration: c.Ego.MaxAcceleration,
		MaxSpeed:        c.Ego.MaxSpeed,
		PreferredBuffer: c.Ego.PreferredBuffer,
	}
}

// Weights 代价权重，未配置时使用默认值
func (c Config) Weights() planner.Weights {
	if c.Cost == nil {
		return planner.DefaultWeights()
	}
	return planner.Weights(*c.Cost)
}

// Validate 校验配置
// 功能：在任何规划步之前拒绝不合法的配置
// 算法说明：
// 1. 主车规划包络与初始车道
// 2. 道路车道数与主车可用车道数一致，主车限速不超过道路限速
// 3. 代价权重非负
// 4. 仿真步数与交通流参数
func (c Config) Validate() error {
	if err := c.EgoConfig().Validate(); err != nil {
		return fmt.Errorf("%w: ego: %w", ErrInvalidConfig, err)
	}
	if c.Ego.Lane < 0 || c.Ego.Lane >= c.Ego.LanesAvailable {
		return fmt.Errorf("%w: ego lane %d outside [0, %d)", ErrInvalidConfig, c.Ego.Lane, c.Ego.LanesAvailable)
	}
	if len(c.Road.LaneSpeeds) != c.Ego.LanesAvailable {
		return fmt.Errorf("%w: road has %d lane speeds but ego has %d lanes available",
			ErrInvalidConfig, len(c.Road.LaneSpeeds), c.Ego.LanesAvailable)
	}
	w := c.Weights()
	for name, v := range map[string]float64{
		planner.GoalDistanceCost:    w.ReachGoal,
		planner.InefficiencyCost:    w.Efficiency,
		planner.MaxAccelerationCost: w.MaxAcceleration,
		planner.SpeedLimitCost:      w.SpeedLimit,
		planner.LaneChangeCost:      w.LaneChange,
		planner.OffRoadCost:         w.OffRoad,
	} {
		if v < 0 {
			return fmt.Errorf("%w: cost weight %s must not be negative, got %v", ErrInvalidConfig, name, v)
		}
	}
	if c.Control.Step.Total < 0 || c.Control.Step.Interval <= 0 {
		return fmt.Errorf("%w: bad control step %+v", ErrInvalidConfig, c.Control.Step)
	}
	if c.Road.SpeedLimit <= 0 || c.Ego.MaxSpeed > c.Road.SpeedLimit {
		return fmt.Errorf("%w: ego max_speed %v must not exceed road speed_limit %v",
			ErrInvalidConfig, c.Ego.MaxSpeed, c.Road.SpeedLimit)
	}
	if c.Road.SpeedJitter < 0 {
		return fmt.Errorf("%w: road speed_jitter must not be negative, got %v", ErrInvalidConfig, c.Road.SpeedJitter)
	}
	if c.Road.Density < 0 || c.Road.Density > 1 {
		return fmt.Errorf("%w: road density %v outside [0, 1]", ErrInvalidConfig, c.Road.Density)
	}
	for _, v := range c.Traffic.Vehicles {
		if v.ID == entity.EgoID {
			return fmt.Errorf("%w: vehicle id %d is reserved for ego", ErrInvalidConfig, v.ID)
		}
		if v.Lane < 0 || v.Lane >= c.Ego.LanesAvailable {
			return fmt.Errorf("%w: vehicle %d lane %d outside road", ErrInvalidConfig, v.ID, v.Lane)
		}
	}
	if m := c.Output.Mongo; m != nil && (m.URI == "" || m.DB == "" || m.Col == "") {
		return fmt.Errorf("%w: mongo output needs uri, db and col", ErrInvalidConfig)
	}
	if s := c.Output.SQLite; s != nil && s.Path == "" {
		return fmt.Errorf("%w: sqlite output needs path", ErrInvalidConfig)
	}
	return nil
}
