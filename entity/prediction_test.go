package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

func TestGeneratePredictions(t *testing.T) {
	v := entity.Vehicle{Lane: 2, S: 10, V: 5, A: 0, State: entity.ConstantSpeed}
	preds := v.GeneratePredictions(3)
	assert.Equal(t, []entity.Vehicle{
		{Lane: 2, S: 10, V: 5, State: entity.ConstantSpeed},
		{Lane: 2, S: 15, V: 5, State: entity.ConstantSpeed},
		{Lane: 2, S: 20, V: 5, State: entity.ConstantSpeed},
	}, preds)

	// 有加速度时第一个快照的速度为一步内的位移
	v.A = 2
	preds = v.GeneratePredictions(entity.DefaultHorizon)
	require.Len(t, preds, 2)
	assert.Equal(t, 6., preds[0].V)
	assert.Equal(t, 0., preds[0].A)
}

func TestBuildPredictions(t *testing.T) {
	ego, err := entity.NewEgo(1, 0, 20, validConfig())
	require.NoError(t, err)
	preds := entity.BuildPredictions(ego, map[int32]entity.Vehicle{
		7: {Lane: 0, S: 30, V: 10},
		3: {Lane: 2, S: 15, V: 12},
	}, entity.DefaultHorizon)
	assert.Len(t, preds, 3)
	assert.Contains(t, preds, entity.EgoID)

	// 邻车不含主车，按ID升序
	neighbors := preds.Neighbors()
	require.Len(t, neighbors, 2)
	assert.Equal(t, 15., neighbors[0].S)
	assert.Equal(t, 30., neighbors[1].S)
}

func TestBuildPredictionsReservedID(t *testing.T) {
	assert.Panics(t, func() {
		entity.BuildPredictions(nil, map[int32]entity.Vehicle{entity.EgoID: {}}, 1)
	})
}

func TestNeighborsSkipsEmpty(t *testing.T) {
	preds := entity.Predictions{
		1:            {},
		2:            {{Lane: 0, S: 1}},
		entity.EgoID: {{Lane: 0, S: 0}},
	}
	assert.Equal(t, []entity.Vehicle{{Lane: 0, S: 1}}, preds.Neighbors())
}
