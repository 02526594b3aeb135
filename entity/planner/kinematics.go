package planner

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/entity"
)

// Kinematics 一个规划步（dt=1）之后的位置、速度、加速度
type Kinematics struct {
	S float64
	V float64
	A float64
}

func (k Kinematics) String() string {
	return fmt.Sprintf("Kinematics{S=%.2f, V=%.2f, A=%.2f}", k.S, k.V, k.A)
}

// GetKinematics 计算主车在指定车道上下一步的运动学状态
// 功能：在速度上限、加速度上限、前车约束下取尽可能大的速度
// 参数：ego-主车，predictions-预测表，lane-候选车道
// 返回：下一步的位置、速度、加速度
// 算法说明：
// 1. 自由流速度：min(v + maxA, targetV)
// 2. 前后都有车：与前车距离不足preferredBuffer时只能跟随前车速度
// 3. 只有前车：下一步不能把跟车距离压缩到preferredBuffer以内
// 4. 所有约束取最小值，且不倒车
// 说明：被夹住时只有前车速度不超过 v + maxA 与 targetV 时才恰好等于前车速度
// 5. a = v' - v，s' = s + v' + a/2
func GetKinematics(ego *entity.Ego, predictions entity.Predictions, lane int) Kinematics {
	cfg := ego.Config()
	bounds := []float64{ego.V + cfg.MaxAcceleration, cfg.TargetSpeed}
	if ahead, ok := vehicleAhead(predictions, lane, ego.S, cfg.GoalS); ok {
		if _, ok := vehicleBehind(predictions, lane, ego.S); ok {
			// 被前后车夹住，必须随车流行驶
			if ego.S+cfg.PreferredBuffer >= ahead.S {
				bounds = append(bounds, ahead.V)
			}
		} else {
			maxVInFront := ahead.S - ego.S - cfg.PreferredBuffer + ahead.V - 0.5*ego.A
			bounds = append(bounds, maxVInFront)
		}
	}
	newV := math.Max(lo.Min(bounds), 0)
	newA := newV - ego.V
	return Kinematics{
		S: ego.S + newV + newA/2,
		V: newV,
		A: newA,
	}
}
