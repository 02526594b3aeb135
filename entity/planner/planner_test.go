package planner_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
)

func candidate(t *testing.T, d planner.Decision, state entity.State) planner.Candidate {
	c, ok := lo.Find(d.Candidates, func(c planner.Candidate) bool { return c.State == state })
	require.True(t, ok, "candidate %v not enumerated", state)
	return c
}

func TestPlanEmptyRoadTowardGoalLane(t *testing.T) {
	ego := newEgo(t, 1, 0, 20)
	p := planner.New(planner.DefaultWeights())
	d, err := p.Plan(ego, predictionsOf(ego))
	require.NoError(t, err)

	assert.Len(t, d.Candidates, 3)
	// 准备向目标车道（0）变道的代价最低，但本步仍在原车道
	assert.Equal(t, entity.PrepareLaneChangeLeft, d.State())
	assert.Equal(t, 1, ego.Lane)
	assert.Equal(t, 22., ego.V)
	assert.Equal(t, 2., ego.A)
	assert.Equal(t, 23., ego.S)
	assert.Equal(t, entity.PrepareLaneChangeLeft, ego.State)
}

func TestPlanEmptyRoadInGoalLane(t *testing.T) {
	ego := newEgo(t, 1, 0, 20, func(c *entity.EgoConfig) { c.GoalLane = 1 })
	d, err := planner.New(planner.DefaultWeights()).Plan(ego, predictionsOf(ego))
	require.NoError(t, err)
	assert.Equal(t, entity.KeepLane, d.State())
	assert.Equal(t, 1, ego.Lane)
	assert.Equal(t, 22., ego.V)
}

func TestPlanSlowVehicleAhead(t *testing.T) {
	ego := newEgo(t, 1, 0, 20)
	predictions := predictionsOf(ego, entity.Vehicle{Lane: 1, S: 10, V: 5})
	d, err := planner.New(planner.DefaultWeights()).ChooseNextState(ego, predictions)
	require.NoError(t, err)

	kl := candidate(t, d, entity.KeepLane)
	require.True(t, kl.Feasible)
	assert.Equal(t, 5., kl.Trajectory.Last().V)
	assert.Less(t, kl.Trajectory.Last().V, ego.Config().TargetSpeed)
	// 只选择不改变主车
	assert.Equal(t, 20., ego.V)
	assert.Equal(t, entity.KeepLane, ego.State)
}

func TestPlanRejectsOccupiedLaneChange(t *testing.T) {
	ego := newEgo(t, 1, 0, 20)
	predictions := predictionsOf(ego,
		entity.Vehicle{Lane: 1, S: 10, V: 5},
		entity.Vehicle{Lane: 2, S: 0, V: 20},
	)
	p := planner.New(planner.DefaultWeights())

	d, err := p.ChooseNextState(ego, predictions)
	require.NoError(t, err)
	assert.True(t, candidate(t, d, entity.PrepareLaneChangeRight).Feasible)

	ego.State = entity.PrepareLaneChangeRight
	d, err = p.ChooseNextState(ego, predictions)
	require.NoError(t, err)
	lcr := candidate(t, d, entity.LaneChangeRight)
	assert.False(t, lcr.Feasible)
	assert.Nil(t, lcr.Breakdown)
	assert.NotEqual(t, entity.LaneChangeRight, d.State())
}

func TestPlanTieKeepsEnumerationOrder(t *testing.T) {
	ego := newEgo(t, 1, 0, 20)
	d, err := planner.New(planner.Weights{}).ChooseNextState(ego, predictionsOf(ego))
	require.NoError(t, err)
	assert.Equal(t, entity.KeepLane, d.State())
	for _, c := range d.Candidates {
		assert.Equal(t, 0., c.Cost)
	}
}

func TestPlanDrivesTowardGoalLane(t *testing.T) {
	ego := newEgo(t, 2, 0, 10, func(c *entity.EgoConfig) { c.GoalS = 1000 })
	p := planner.New(planner.DefaultWeights())
	for range 10 {
		_, err := p.Plan(ego, predictionsOf(ego))
		require.NoError(t, err)
	}
	assert.Equal(t, 0, ego.Lane)
	assert.LessOrEqual(t, ego.V, ego.Config().TargetSpeed)
}
