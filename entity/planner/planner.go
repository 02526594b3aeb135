package planner

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

// ErrNoFeasibleTrajectory 所有候选机动均不可行
var ErrNoFeasibleTrajectory = errors.New("no feasible trajectory")

// Candidate 一个候选机动的评估结果
type Candidate struct {
	State      entity.State
	Feasible   bool
	Trajectory entity.Trajectory
	Cost       float64
	Breakdown  map[string]float64
}

// Decision 一个规划步的决策结果
type Decision struct {
	Trajectory entity.Trajectory // 选中的轨迹
	Cost       float64           // 选中轨迹的总代价
	Candidates []Candidate       // 按枚举顺序排列的全部候选
}

// State 选中的机动
func (d Decision) State() entity.State {
	return d.Trajectory.Last().State
}

// SuccessorFunc 后继状态枚举函数
type SuccessorFunc func(state entity.State, lane, lanesAvailable int) []entity.State

// Option 决策引擎选项
type Option func(*Planner)

// WithSuccessors 替换后继状态枚举，默认为SuccessorStates
func WithSuccessors(fn SuccessorFunc) Option {
	return func(p *Planner) {
		p.successors = fn
	}
}

// Planner 行为规划决策引擎
type Planner struct {
	cost       *CostModel
	successors SuccessorFunc
}

// New 创建决策引擎
// 参数：weights-代价权重，opts-可选项
func New(weights Weights, opts ...Option) *Planner {
	p := &Planner{cost: NewCostModel(weights), successors: SuccessorStates}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChooseNextState 选择下一状态
// 功能：枚举后继状态，生成并评估轨迹，返回代价最小的可行轨迹
// 参数：ego-主车（只读），predictions-本步预测表
// 返回：决策结果；没有任何可行候选时返回ErrNoFeasibleTrajectory
// 算法说明：
// 1. 按转移表枚举后继状态
// 2. 逐个生成轨迹，不可行的候选不参与评估
// 3. 计算加权代价，严格最小者胜出，相等时先枚举者胜出
func (p *Planner) ChooseNextState(ego *entity.Ego, predictions entity.Predictions) (Decision, error) {
	states := p.successors(ego.State, ego.Lane, ego.Config().LanesAvailable)
	log.Debugf("choose next state: current %v lane %d successors %v", ego.State, ego.Lane, states)

	candidates := lo.Map(states, func(state entity.State, _ int) Candidate {
		c := Candidate{State: state}
		c.Trajectory, c.Feasible = GenerateTrajectory(ego, state, predictions)
		if c.Feasible {
			c.Cost, c.Breakdown = p.cost.Evaluate(ego, predictions, c.Trajectory)
			log.Debugf("+state [%v]: %v", state, c.Cost)
		}
		return c
	})

	feasible := lo.Filter(candidates, func(c Candidate, _ int) bool { return c.Feasible })
	if len(feasible) == 0 {
		return Decision{Candidates: candidates}, fmt.Errorf(
			"%w: state %v lane %d candidates %v", ErrNoFeasibleTrajectory, ego.State, ego.Lane, states,
		)
	}
	best := lo.MinBy(feasible, func(a, b Candidate) bool { return a.Cost < b.Cost })
	return Decision{
		Trajectory: best.Trajectory,
		Cost:       best.Cost,
		Candidates: candidates,
	}, nil
}

// Plan 执行一个规划步
// 功能：选择下一状态并写回主车；失败时主车保持不变
func (p *Planner) Plan(ego *entity.Ego, predictions entity.Predictions) (Decision, error) {
	d, err := p.ChooseNextState(ego, predictions)
	if err != nil {
		return d, err
	}
	ego.RealizeNextState(d.Trajectory)
	log.Debugf("realize next state: %v", ego.Vehicle)
	return d, nil
}
