package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

func testConfig() entity.EgoConfig {
	return entity.EgoConfig{
		TargetSpeed:     22,
		LanesAvailable:  3,
		GoalS:           300,
		GoalLane:        0,
		MaxAcceleration: 10,
		MaxSpeed:        22,
		PreferredBuffer: 10,
	}
}

func newEgo(t *testing.T, lane int, s, v float64, modify ...func(*entity.EgoConfig)) *entity.Ego {
	cfg := testConfig()
	for _, m := range modify {
		m(&cfg)
	}
	ego, err := entity.NewEgo(lane, s, v, cfg)
	require.NoError(t, err)
	return ego
}

// predictionsOf 以ID从1开始为他车生成预测，主车放在EgoID下
func predictionsOf(ego *entity.Ego, others ...entity.Vehicle) entity.Predictions {
	m := make(map[int32]entity.Vehicle, len(others))
	for i, v := range others {
		v.State = entity.ConstantSpeed
		m[int32(i+1)] = v
	}
	return entity.BuildPredictions(ego, m, entity.DefaultHorizon)
}
