// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供场景生成所需的随机数，单线程同步使用
// 说明：基于golang.org/x/exp/rand库，回合内所有随机量（方位、抖动、朝向）均来自同一引擎，
// 保证相同种子下场景与轨迹完全可复现
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Reseed 重设随机数种子
// 功能：在不替换引擎实例的前提下重置随机数序列
// 参数：seed-随机数种子
// 说明：持有引擎指针的组件（场景生成器等）无需感知种子变化
func (e *Engine) Reseed(seed uint64) {
	e.Rand.Seed(seed + *seedOffset)
}

// Uniform 在[low, high)范围内生成均匀分布的随机浮点数
// 参数：low-下界，high-上界
// 返回：均匀分布随机数
func (e *Engine) Uniform(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}

// PTrue 以指定概率返回true
// 功能：根据给定概率返回布尔值
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
// 说明：实现伯努利分布，用于模拟概率事件
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}
