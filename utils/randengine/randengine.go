// 随机数引擎，包装了golang.org/x/exp/rand，为随机交通流生成提供可复现的随机数
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：按种子生成确定性的随机序列，相同种子的两次运行得到相同的交通流
// 说明：非线程安全，规划循环为单线程
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Uniform 在[low, high)范围内均匀取值
func (e *Engine) Uniform(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}
