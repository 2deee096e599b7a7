package vehicle

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
)

// 离散动作到（加速度, 前轮转角）的固定映射表
var discreteActionTable = map[entity.DiscreteAction][2]float64{
	entity.ActionForward:       {+1, 0},
	entity.ActionForwardRight:  {+1, -math.Pi / 6},
	entity.ActionForwardLeft:   {+1, +math.Pi / 6},
	entity.ActionBackward:      {-1, 0},
	entity.ActionBackwardRight: {-1, -math.Pi / 6},
	entity.ActionBackwardLeft:  {-1, +math.Pi / 6},
}

// Vehicle 车辆实体
// 功能：维护车辆运动状态并按运动学自行车模型推进
// 说明：占地总是由（位置, 朝向）即时重算；LocOld保留上一步位置，仅供渲染器绘制轨迹
type Vehicle struct {
	cfg *config.RuntimeConfig

	Loc    geometry.Point // 车辆中心位置（米）
	LocOld geometry.Point // 上一步的车辆中心位置（米）
	V      float64        // 标量速度（米/秒），后退为负
	Psi    float64        // 朝向角（弧度），规范化到(-π, π]
}

// New 创建车辆实体
// 参数：cfg-运行时配置，loc-初始位置，heading-初始朝向角
// 返回：车辆实体指针
func New(cfg *config.RuntimeConfig, loc geometry.Point, heading float64) *Vehicle {
	return &Vehicle{
		cfg:    cfg,
		Loc:    loc,
		LocOld: loc,
		Psi:    WrapAngle(heading),
	}
}

// ConstrainAction 约束动作并解算出物理控制量
// 功能：将外部动作转换为（加速度, 前轮转角），并校验其与配置动作空间的一致性
// 参数：action-外部动作，nil视为零控制量（滑行）
// 返回：加速度（米/秒²）、前轮转角（弧度），或entity.ErrInvalidAction
// 算法说明：
// 1. 连续动作：各分量先截断到[-1,1]，再分别乘以加速度与转角上限
// 2. 离散动作：查固定映射表，0~5之外的取值为非法动作
// 3. 动作种类与配置的动作空间类型不一致时为非法动作
// 说明：纯函数，失败时不产生任何状态变更
func (v *Vehicle) ConstrainAction(action entity.Action) (acc, steering float64, err error) {
	switch a := action.(type) {
	case nil:
		return 0, 0, nil
	case entity.ContinuousAction:
		if v.cfg.ActionType != entity.ActionTypeContinuous {
			return 0, 0, fmt.Errorf("%w: got continuous action in %v mode",
				entity.ErrInvalidAction, v.cfg.ActionType)
		}
		acc = lo.Clamp(a[0], -1, 1) * v.cfg.All.Vehicle.AccelerationLimit
		steering = lo.Clamp(a[1], -1, 1) * v.cfg.All.Vehicle.SteeringLimit
		return acc, steering, nil
	case entity.DiscreteAction:
		if v.cfg.ActionType != entity.ActionTypeDiscrete {
			return 0, 0, fmt.Errorf("%w: got discrete action in %v mode",
				entity.ErrInvalidAction, v.cfg.ActionType)
		}
		if !a.IsValid() {
			return 0, 0, fmt.Errorf("%w: invalid action value: %d, valid values are from 0 to 5",
				entity.ErrInvalidAction, int32(a))
		}
		pair := discreteActionTable[a]
		return pair[0], pair[1], nil
	default:
		// Action为闭集接口，正常情况下不可达
		return 0, 0, fmt.Errorf("%w: unknown action %v", entity.ErrInvalidAction, action)
	}
}

// Advance 按运动学自行车模型推进一个时间步
// 功能：依次更新速度、朝向与位置
// 参数：acc-加速度（米/秒²），steering-前轮转角（弧度）
// 算法说明：
// 1. v' = clamp(v + a·dt, ±velocityLimit)
// 2. ψ' = wrap(ψ + v'·tan(δ)/L·dt)，L为轴距
// 3. pos' = pos + v'·(cosψ', sinψ')·dt
// 说明：速度在更新后立即截断，任何动作下|v|不会超过配置上限
func (v *Vehicle) Advance(acc, steering float64) {
	attr := v.cfg.All.Vehicle
	dt := v.cfg.All.Step.Interval

	v.LocOld = v.Loc
	v.V = lo.Clamp(v.V+acc*dt, -attr.VelocityLimit, attr.VelocityLimit)
	v.Psi = WrapAngle(v.Psi + v.V*math.Tan(steering)/attr.Wheelbase*dt)
	v.Loc = geometry.Point{
		X: v.Loc.X + v.V*math.Cos(v.Psi)*dt,
		Y: v.Loc.Y + v.V*math.Sin(v.Psi)*dt,
	}
	log.Debugf("advance: loc=(%.3f, %.3f) v=%.3f psi=%.3f", v.Loc.X, v.Loc.Y, v.V, v.Psi)
}

// Footprint 计算车辆当前占地
// 功能：将车体矩形按当前朝向旋转并平移到当前位置
// 返回：按右上、右下、左下、左上顺序的4个世界坐标角点
// 说明：车体坐标系中+y为车头方向，旋转角为ψ-π/2
func (v *Vehicle) Footprint() entity.Footprint {
	attr := v.cfg.All.Vehicle
	return entity.NewRect(attr.Width/2, attr.Length/2).
		Rotate(v.Psi - math.Pi/2).
		Translate(v.Loc)
}

// ToEgoFrame 将世界坐标点变换到自车坐标系
// 参数：p-世界坐标点
// 返回：自车坐标系下的坐标（+y为车头方向）
func (v *Vehicle) ToEgoFrame(p geometry.Point) geometry.Point {
	return TransformPoint(p, v.Loc, v.Psi)
}

// TransformPoint 全局坐标系到自车坐标系的变换
// 功能：先按-origin平移，再按-(heading-π/2)旋转
// 参数：p-世界坐标点，origin-自车位置，heading-自车朝向角
// 返回：自车坐标系下的坐标
// 说明：π/2偏移使车头方向对齐+y轴，观测与奖励均依赖该约定，不可更改
func TransformPoint(p, origin geometry.Point, heading float64) geometry.Point {
	x := p.X - origin.X
	y := p.Y - origin.Y
	angle := heading - math.Pi/2
	sin, cos := math.Sin(-angle), math.Cos(-angle)
	return geometry.Point{
		X: x*cos - y*sin,
		Y: x*sin + y*cos,
	}
}

// WrapAngle 将角度规范化到(-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
