package scenario

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/randengine"
)

// Initializer 训练模式下的初始状态协作者
// 说明：训练模式开启时，车辆位置、车位位置与初始朝向由该协作者联合随机给出，
// 替代固定分布的场景生成路径
type Initializer interface {
	// InitPosition 联合给出（车辆位置, 车位位置, 初始朝向角）
	InitPosition(side entity.Side) (vehicleLoc, slotLoc geometry.Point, heading float64)
}

// RandomInitializer 默认训练初始化器
// 功能：在固定分布的基础上加大随机范围，联合随机化车位与车辆的相对位形
// 说明：间隔距离与朝向扰动范围均比评估分布更宽，便于训练覆盖更多初始位形
type RandomInitializer struct {
	g      *Generator
	cfg    *config.RuntimeConfig
	engine *randengine.Engine
}

// NewRandomInitializer 创建默认训练初始化器
// 参数：cfg-运行时配置，engine-回合随机数引擎
func NewRandomInitializer(cfg *config.RuntimeConfig, engine *randengine.Engine) *RandomInitializer {
	return &RandomInitializer{
		g:      New(cfg, engine),
		cfg:    cfg,
		engine: engine,
	}
}

// InitPosition 联合给出随机初始位形
// 算法说明：
// 1. 车位摆放与固定分布一致
// 2. 间隔距离在[0.7, 1.6]倍标准间隔内随机
// 3. 横向抖动与固定分布一致，初始朝向区间向两侧各放宽π/12
func (r *RandomInitializer) InitPosition(side entity.Side) (vehicleLoc, slotLoc geometry.Point, heading float64) {
	slotLoc = r.g.PlaceSlot(side)

	sc := r.cfg.All.Scenario
	standoff := sc.Standoff * r.engine.Uniform(0.7, 1.6)
	jitter := r.engine.Uniform(-sc.LateralJitter, sc.LateralJitter)
	switch side {
	case entity.SideBottom:
		vehicleLoc = geometry.Point{X: slotLoc.X + jitter, Y: slotLoc.Y + standoff}
	case entity.SideTop:
		vehicleLoc = geometry.Point{X: slotLoc.X + jitter, Y: slotLoc.Y - standoff}
	case entity.SideLeft:
		vehicleLoc = geometry.Point{X: slotLoc.X + standoff, Y: slotLoc.Y + jitter}
	default:
		vehicleLoc = geometry.Point{X: slotLoc.X - standoff, Y: slotLoc.Y + jitter}
	}

	hr := headingRanges[r.cfg.ParkingType][side]
	heading = vehicle.WrapAngle(r.engine.Uniform(hr.Low-math.Pi/12, hr.High+math.Pi/12))
	return vehicleLoc, slotLoc, heading
}
