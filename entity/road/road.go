package road

import (
	"errors"
	"fmt"
	"maps"

	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/randengine"
)

// ErrNoEgo 道路上尚未添加主车
var ErrNoEgo = errors.New("no ego on road")

// Road 多车道道路
// 功能：维护主车与周围车辆，每个规划步构建预测、调用决策引擎并推进他车
type Road struct {
	laneSpeeds  []float64 // 每条车道的车流速度，从左到右
	speedJitter float64   // 随机生成车辆的车速浮动幅度
	density     float64
	updateWidth float64

	cameraCenter float64 // 交通流生成与渲染窗口的中心

	ego      *entity.Ego
	vehicles map[int32]entity.Vehicle // 他车，不含主车
	nextID   int32                    // 随机生成车辆的下一个ID

	planner   *planner.Planner
	generator *randengine.Engine
}

// New 创建道路
// 参数：c-道路配置，p-决策引擎，generator-随机交通流使用的随机数引擎
// 返回：道路实例，车道数为len(c.LaneSpeeds)
func New(c config.Road, p *planner.Planner, generator *randengine.Engine) *Road {
	if len(c.LaneSpeeds) == 0 {
		log.Panicf("road must have at least one lane")
	}
	return &Road{
		laneSpeeds:   c.LaneSpeeds,
		speedJitter:  c.SpeedJitter,
		density:      c.Density,
		updateWidth:  c.UpdateWidth,
		cameraCenter: c.UpdateWidth / 2,
		vehicles:     make(map[int32]entity.Vehicle),
		nextID:       1,
		planner:      p,
		generator:    generator,
	}
}

// NumLanes 车道数
func (r *Road) NumLanes() int {
	return len(r.laneSpeeds)
}

// AddEgo 添加主车
// 功能：校验主车配置，主车以KeepLane状态、零加速度出现在道路上
func (r *Road) AddEgo(lane int, s, v float64, c entity.EgoConfig) error {
	if c.LanesAvailable != r.NumLanes() {
		return fmt.Errorf("%w: lanes_available %d does not match road with %d lanes",
			entity.ErrInvalidEgoConfig, c.LanesAvailable, r.NumLanes())
	}
	ego, err := entity.NewEgo(lane, s, v, c)
	if err != nil {
		return err
	}
	r.ego = ego
	r.cameraCenter = max(ego.S, r.updateWidth/2)
	return nil
}

// Ego 主车当前快照
func (r *Road) Ego() (entity.Vehicle, bool) {
	if r.ego == nil {
		return entity.Vehicle{}, false
	}
	return r.ego.Vehicle, true
}

// EgoLocalization 以定位结果覆盖主车纵向位置（取整）
func (r *Road) EgoLocalization(s float64) {
	if r.ego == nil {
		log.Panicf("EgoLocalization: %v", ErrNoEgo)
	}
	r.ego.S = float64(int(s))
}

// AddVehicle 添加一辆指定ID的他车
func (r *Road) AddVehicle(id int32, v entity.Vehicle) error {
	if id == entity.EgoID {
		return fmt.Errorf("vehicle id %d is reserved for ego", id)
	}
	if v.Lane < 0 || v.Lane >= r.NumLanes() {
		return fmt.Errorf("vehicle %d lane %d outside [0, %d)", id, v.Lane, r.NumLanes())
	}
	if _, ok := r.vehicles[id]; ok {
		return fmt.Errorf("duplicate vehicle id %d", id)
	}
	if v.State == "" {
		v.State = entity.ConstantSpeed
	}
	r.vehicles[id] = v
	r.nextID = max(r.nextID, id+1)
	return nil
}

// Vehicles 他车快照的副本
func (r *Road) Vehicles() map[int32]entity.Vehicle {
	return maps.Clone(r.vehicles)
}

// BehaviorPlanning 主车行为规划
// 功能：从最新的车辆表构建预测，选择代价最小的轨迹并应用到主车
// 返回：决策结果；无可行轨迹时返回错误且主车状态不变
func (r *Road) BehaviorPlanning() (planner.Decision, error) {
	if r.ego == nil {
		return planner.Decision{}, ErrNoEgo
	}
	predictions := entity.BuildPredictions(r.ego, r.vehicles, entity.DefaultHorizon)
	return r.planner.Plan(r.ego, predictions)
}

// Advance 推进一个规划步
// 算法说明：
// 1. 主车行为规划
// 2. 他车按匀速推进1秒，规划失败时同样推进
func (r *Road) Advance() (planner.Decision, error) {
	decision, err := r.BehaviorPlanning()
	for id, v := range r.vehicles {
		v.Increment(1)
		r.vehicles[id] = v
	}
	if r.ego != nil {
		r.cameraCenter = max(r.ego.S, r.updateWidth/2)
	}
	return decision, err
}
