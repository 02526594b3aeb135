package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/config"
)

const sample = `
ego:
  lane: 1
  s: 0
  v: 20
  target_speed: 22
  lanes_available: 3
  goal_s: 300
  goal_lane: 0
  max_acceleration: 10
  max_speed: 22
  preferred_buffer: 6
road:
  speed_limit: 22
  lane_speeds: [20, 18, 16]
  density: 0.1
control:
  step:
    start: 0
    total: 50
traffic:
  seed: 42
  vehicles:
    - {id: 1, lane: 2, s: 10, v: 5}
output:
  sqlite:
    path: decisions.db
`

func TestLoad(t *testing.T) {
	c, err := config.Load([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Ego.Lane)
	assert.Equal(t, entity.EgoConfig{
		TargetSpeed:     22,
		LanesAvailable:  3,
		GoalS:           300,
		GoalLane:        0,
		MaxAcceleration: 10,
		MaxSpeed:        22,
		PreferredBuffer: 6,
	}, c.EgoConfig())
	// 默认值
	assert.Equal(t, 1., c.Control.Step.Interval)
	assert.Equal(t, 70., c.Road.UpdateWidth)
	assert.Equal(t, planner.DefaultWeights(), c.Weights())
	assert.Nil(t, c.Output.Mongo)
	assert.Equal(t, "decisions.db", c.Output.SQLite.Path)
	assert.Equal(t, []config.Vehicle{{ID: 1, Lane: 2, S: 10, V: 5}}, c.Traffic.Vehicles)
}

func TestLoadCustomWeights(t *testing.T) {
	c, err := config.Load([]byte(sample + `
cost:
  reach_goal: 1
  efficiency: 2
  max_acceleration: 3
  speed_limit: 4
  lane_change: 5
  off_road: 6
`))
	require.NoError(t, err)
	assert.Equal(t, planner.Weights{
		ReachGoal: 1, Efficiency: 2, MaxAcceleration: 3, SpeedLimit: 4, LaneChange: 5, OffRoad: 6,
	}, c.Weights())
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := config.Load([]byte(sample + "unknown: 1\n"))
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	base, err := config.Load([]byte(sample))
	require.NoError(t, err)

	for name, modify := range map[string]func(*config.Config){
		"no lanes":        func(c *config.Config) { c.Ego.LanesAvailable = 0 },
		"goal lane":       func(c *config.Config) { c.Ego.GoalLane = 5 },
		"ego lane":        func(c *config.Config) { c.Ego.Lane = 3 },
		"lane speeds":     func(c *config.Config) { c.Road.LaneSpeeds = []float64{1, 2} },
		"negative weight": func(c *config.Config) { c.Cost = &config.Cost{Efficiency: -1} },
		"density":         func(c *config.Config) { c.Road.Density = 2 },
		"speed limit":     func(c *config.Config) { c.Road.SpeedLimit = 20 },
		"no speed limit":  func(c *config.Config) { c.Road.SpeedLimit = 0 },
		"speed jitter":    func(c *config.Config) { c.Road.SpeedJitter = -1 },
		"interval":        func(c *config.Config) { c.Control.Step.Interval = 0 },
		"reserved id":     func(c *config.Config) { c.Traffic.Vehicles = []config.Vehicle{{ID: entity.EgoID}} },
		"vehicle lane":    func(c *config.Config) { c.Traffic.Vehicles = []config.Vehicle{{ID: 2, Lane: 9}} },
		"mongo":           func(c *config.Config) { c.Output.Mongo = &config.Mongo{URI: "mongodb://localhost"} },
		"sqlite":          func(c *config.Config) { c.Output.SQLite = &config.SQLite{} },
	} {
		c := base
		c.Traffic.Vehicles = append([]config.Vehicle(nil), base.Traffic.Vehicles...)
		modify(&c)
		assert.True(t, errors.Is(c.Validate(), config.ErrInvalidConfig), name)
	}
}

func TestValidateWrapsEgoError(t *testing.T) {
	c, err := config.Load([]byte(sample))
	require.NoError(t, err)
	c.Ego.TargetSpeed = 0
	err = c.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, entity.ErrInvalidEgoConfig)
}
