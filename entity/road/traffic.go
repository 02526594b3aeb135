package road

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

const (
	laneWidth      = 4.   // 车道宽度（米）
	fusionTimestep = 0.02 // 上一周期剩余路径点的时间间隔（秒）
)

// FusionRecord 传感器融合记录
type FusionRecord struct {
	ID     int32
	X, Y   float64 // 全局坐标
	VX, VY float64 // 全局速度
	S, D   float64 // Frenet坐标
}

// UpdateSurroundings 以传感器融合结果重建他车表
// 功能：每次调用都从空表重建，不保留上一次的他车
// 参数：records-融合记录，prevSize-上一周期尚未执行的路径点个数，用于将他车位置外推到同一时刻
// 说明：d < 0（对向车道）、使用主车保留ID以及落在道路外的记录被丢弃
func (r *Road) UpdateSurroundings(records []FusionRecord, prevSize int) {
	r.vehicles = make(map[int32]entity.Vehicle, len(records))
	for _, rec := range records {
		if rec.D < 0 {
			continue
		}
		if rec.ID == entity.EgoID {
			log.Debugf("drop fused record with reserved ego id %d", rec.ID)
			continue
		}
		lane := int(rec.D / laneWidth)
		if lane >= r.NumLanes() {
			log.Debugf("drop fused vehicle %d in lane %d", rec.ID, lane)
			continue
		}
		v := math.Hypot(rec.VX, rec.VY)
		r.vehicles[rec.ID] = entity.Vehicle{
			Lane:  lane,
			S:     rec.S + float64(prevSize)*fusionTimestep*v,
			V:     v,
			State: entity.ConstantSpeed,
		}
		r.nextID = max(r.nextID, rec.ID+1)
	}
}

// PopulateTraffic 在主车附近随机生成交通流
// 功能：在[start, start+updateWidth)范围内逐米按density概率放置匀速车辆
// 算法说明：
// 1. 窗口起点 start = max(cameraCenter - updateWidth/2, 0)
// 2. 每条车道内刚放置过车辆的下一格跳过，车速在该车道车流速度的±speedJitter范围内均匀取值
// 3. 跳过已被占用的格子（包括主车所在格）
func (r *Road) PopulateTraffic() int {
	start := math.Floor(max(r.cameraCenter-r.updateWidth/2, 0))
	occupied := func(lane int, s float64) bool {
		if r.ego != nil && r.ego.Lane == lane && math.Floor(r.ego.S) == s {
			return true
		}
		return lo.SomeBy(lo.Values(r.vehicles), func(v entity.Vehicle) bool {
			return v.Lane == lane && math.Floor(v.S) == s
		})
	}
	added := 0
	for lane, speed := range r.laneSpeeds {
		justAdded := false
		for s := start; s < start+r.updateWidth; s++ {
			if justAdded {
				justAdded = false
				continue
			}
			if !r.generator.PTrue(r.density) || occupied(lane, s) {
				continue
			}
			r.vehicles[r.nextID] = entity.Vehicle{
				Lane:  lane,
				S:     s,
				V:     max(r.generator.Uniform(speed-r.speedJitter, speed+r.speedJitter), 0),
				State: entity.ConstantSpeed,
			}
			r.nextID++
			added++
			justAdded = true
		}
	}
	log.Debugf("populated %d vehicles around s=%.1f", added, r.cameraCenter)
	return added
}
