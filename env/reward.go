package env

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
)

// parkingAngles 泊车成功时可接受的目标朝向集合，按（泊车方式, 方位）索引
// 说明：垂直泊车每个方位只有一个可接受朝向；
// 平行泊车允许两个相差180°的朝向（车头朝任一侧均可）
var parkingAngles = map[entity.ParkingType]map[entity.Side][]float64{
	entity.ParkingTypePerpendicular: {
		entity.SideBottom: {math.Pi / 2},
		entity.SideTop:    {-math.Pi / 2},
		entity.SideLeft:   {0},
		entity.SideRight:  {math.Pi},
	},
	entity.ParkingTypeParallel: {
		entity.SideBottom: {0, math.Pi},
		entity.SideTop:    {0, math.Pi},
		entity.SideLeft:   {math.Pi / 2, -math.Pi / 2},
		entity.SideRight:  {math.Pi / 2, -math.Pi / 2},
	},
}

// evaluate 每步的奖励与终止判定
// 功能：按固定优先级检查回合结局，首个命中者生效
// 返回：当步标量奖励
// 算法说明：
// 1. 步数达到上限：奖励-1，终止且截断
// 2. 车辆越过进入方向上的车位边界：奖励-1，终止
// 3. 车辆与车位角点的轴向距离超限：奖励-1，终止
// 4. 车辆与任一静态障碍车碰撞：奖励-1，终止
// 5. 车辆完整入位且中心对齐：奖励+1减朝向惩罚，终止；入位但未对齐不终止，奖励0
// 6. 其余情况：奖励0，回合继续
func (e *Env) evaluate() float64 {
	e.clock.Tick()
	if e.clock.Done() {
		e.terminated = true
		e.truncated = true
		log.Infof("the maximum step reaches: %v", e.clock)
		return -1
	}

	fp := e.car.Footprint()
	r := e.cfg.All.Reward
	if entity.CrossesBorder(fp, e.slotFootprint, e.side) {
		e.terminated = true
		log.Infof("the car crossed the parking border on side %v", e.side)
		return -1
	}
	if entity.ExceedsMaxDistance(e.slotFootprint, e.car.Loc, r.MaxDistance) {
		e.terminated = true
		log.Infof("the distance between the car and the parking is more than %v meters", r.MaxDistance)
		return -1
	}
	if entity.CollidesAny(fp, e.obstacleCars) {
		e.terminated = true
		log.Infof("the car has a collision")
		return -1
	}
	if entity.IsWithinRect(fp, e.slotFootprint) && e.isCentered() {
		e.terminated = true
		penalty := anglePenalty(e.car.Psi, parkingAngles[e.cfg.ParkingType][e.side], r.MaxAngleError)
		log.Infof("successful parking, angle penalty %.3f", penalty)
		return 1 - penalty
	}
	return 0
}

// isCentered 判断车辆中心与车位中心的逐轴距离是否都在对齐阈值内
func (e *Env) isCentered() bool {
	th := e.cfg.All.Reward.CenterThreshold
	return mathutil.Abs(e.slotLoc.X-e.car.Loc.X) <= th &&
		mathutil.Abs(e.slotLoc.Y-e.car.Loc.Y) <= th
}

// CalcAngleDifference 计算环绕角误差
// 功能：求两个角度的最小绝对差，对2π周期不敏感
// 参数：psi-车辆朝向角，target-目标朝向角
// 返回：[0, π]内的角误差
// 算法说明：((psi - target + π) mod 2π) - π，取绝对值；模运算结果先归入[0, 2π)
func CalcAngleDifference(psi, target float64) float64 {
	m := math.Mod(psi-target+math.Pi, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return math.Abs(m - math.Pi)
}

// anglePenalty 计算泊车成功时的朝向惩罚
// 功能：取车辆朝向到所有可接受目标朝向的最小角误差，线性折算为惩罚并封顶
// 参数：psi-车辆朝向角，targets-可接受目标朝向集合，maxAngleError-惩罚饱和角误差
// 返回：[0, 0.5]内的惩罚值，完全对齐为0
func anglePenalty(psi float64, targets []float64, maxAngleError float64) float64 {
	angleError := lo.Min(lo.Map(targets, func(target float64, _ int) float64 {
		return CalcAngleDifference(psi, target)
	}))
	return math.Min(0.5*angleError/maxAngleError, 0.5)
}
