package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
)

// Clock 回合步进时钟
// 功能：管理单个回合的时间推进与步数截断
// 说明：维护当前步数与时间，Reset时归零；步数达到上限即判定回合超时
type Clock struct {
	DT        float64 // 每个模拟步时间间隔（秒）
	MAX_STEPS int32   // 回合最大步数

	Step int32 // 当前步数
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置，包含时间间隔与步数上限
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:        stepConfig.Interval,
		MAX_STEPS: stepConfig.MaxSteps,
	}
	c.Reset()
	return c
}

// Reset 重置时钟状态
// 说明：回合开始时将步数归零
func (c *Clock) Reset() {
	c.Step = 0
}

// Tick 推进一个模拟步
func (c *Clock) Tick() {
	c.Step++
}

// Done 判断是否达到步数上限
// 返回：true表示回合超时，应同时终止并截断
func (c *Clock) Done() bool {
	return c.Step >= c.MAX_STEPS
}

// T 获取当前回合已经过的模拟时间（秒）
func (c *Clock) T() float64 {
	return float64(c.Step) * c.DT
}

// String 获取时钟的字符串表示
func (c *Clock) String() string {
	return fmt.Sprintf("step %d/%d (%.1fs)", c.Step, c.MAX_STEPS, c.T())
}
