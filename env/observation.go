package env

import (
	"github.com/samber/lo"
)

// buildObservation 构造归一化观测向量
// 功能：将4个车位角点与车位中心变换到自车坐标系，按距离上限归一化后截断
// 返回：10维观测向量，各分量在[-1, 1]内
// 算法说明：
// 1. 每个车位角点经自车坐标变换得到(dx, dy)
// 2. 车位中心同样变换，作为最后两个分量（指引项）
// 3. 所有分量除以距离上限，再逐个截断到[-1, 1]
func (e *Env) buildObservation() []float64 {
	maxDistance := e.cfg.All.Reward.MaxDistance
	obs := make([]float64, 0, ObservationSize)
	for _, corner := range e.slotFootprint {
		p := e.car.ToEgoFrame(corner)
		obs = append(obs, p.X/maxDistance, p.Y/maxDistance)
	}
	center := e.car.ToEgoFrame(e.slotLoc)
	obs = append(obs, center.X/maxDistance, center.Y/maxDistance)
	return lo.Map(obs, func(v float64, _ int) float64 {
		return lo.Clamp(v, -1, 1)
	})
}
