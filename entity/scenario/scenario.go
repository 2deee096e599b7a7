// 场景生成器：选择泊车位方位、摆放目标车位与两侧静态障碍车、给出车辆初始位姿。
// 平行/垂直两种泊车方式共享同一套流程，仅几何常量（车位形状、障碍偏移、初始朝向区间）不同，
// 差异全部收敛在按（泊车方式, 方位）索引的查找表中。
package scenario

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/randengine"
)

// Generator 场景生成器
// 说明：持有回合的随机数引擎，所有随机量均出自该引擎以保证可复现
type Generator struct {
	cfg    *config.RuntimeConfig
	engine *randengine.Engine
}

// New 创建场景生成器
// 参数：cfg-运行时配置，engine-回合随机数引擎
func New(cfg *config.RuntimeConfig, engine *randengine.Engine) *Generator {
	return &Generator{cfg: cfg, engine: engine}
}

// ChooseSide 均匀随机选择泊车位方位
// 返回：1下/2上/3左/4右
func (g *Generator) ChooseSide() entity.Side {
	return entity.Side(g.engine.Intn(4) + 1)
}

// PlaceSlot 摆放目标泊车位中心
// 功能：方位对应的坐标固定在地图边缘附近，另一坐标在内部范围内均匀采样
// 参数：side-泊车位方位
// 返回：泊车位中心的世界坐标（米）
// 算法说明：
// 1. side=1/2：y固定在下/上边缘内侧50像素处，x在[100, W-100]像素内均匀采样
// 2. side=3/4：x固定在左/右边缘内侧50像素处，y在[100, H-100]像素内均匀采样
// 3. 统一按比例换算为米
func (g *Generator) PlaceSlot(side entity.Side) geometry.Point {
	scale := g.cfg.All.Map.PixelToMeter
	w, h := float64(g.cfg.All.Map.WindowW), float64(g.cfg.All.Map.WindowH)
	switch side {
	case entity.SideBottom:
		return geometry.Point{
			X: g.engine.Uniform(slotMarginPx, w-slotMarginPx) * scale,
			Y: slotEdgePx * scale,
		}
	case entity.SideTop:
		return geometry.Point{
			X: g.engine.Uniform(slotMarginPx, w-slotMarginPx) * scale,
			Y: (h - slotEdgePx) * scale,
		}
	case entity.SideLeft:
		return geometry.Point{
			X: slotEdgePx * scale,
			Y: g.engine.Uniform(slotMarginPx, h-slotMarginPx) * scale,
		}
	default:
		return geometry.Point{
			X: (w - slotEdgePx) * scale,
			Y: g.engine.Uniform(slotMarginPx, h-slotMarginPx) * scale,
		}
	}
}

// PlaceVehicle 给出车辆初始位置
// 功能：车辆沿进入方向距车位一个固定间隔，并带小幅横向随机抖动
// 参数：side-泊车位方位，slotLoc-泊车位中心
// 返回：车辆中心的世界坐标（米）
func (g *Generator) PlaceVehicle(side entity.Side, slotLoc geometry.Point) geometry.Point {
	sc := g.cfg.All.Scenario
	jitter := g.engine.Uniform(-sc.LateralJitter, sc.LateralJitter)
	switch side {
	case entity.SideBottom:
		return geometry.Point{X: slotLoc.X + jitter, Y: slotLoc.Y + sc.Standoff}
	case entity.SideTop:
		return geometry.Point{X: slotLoc.X + jitter, Y: slotLoc.Y - sc.Standoff}
	case entity.SideLeft:
		return geometry.Point{X: slotLoc.X + sc.Standoff, Y: slotLoc.Y + jitter}
	default:
		return geometry.Point{X: slotLoc.X - sc.Standoff, Y: slotLoc.Y + jitter}
	}
}

// InitialHeading 采样初始朝向角
// 参数：side-泊车位方位
// 返回：规范化到(-π, π]的朝向角
func (g *Generator) InitialHeading(side entity.Side) float64 {
	r := headingRanges[g.cfg.ParkingType][side]
	return vehicle.WrapAngle(g.engine.Uniform(r.Low, r.High))
}

// StaticObstacles 生成泊车位两侧的静态障碍车
// 功能：在垂直于进入方向的泊车行轴上，以±固定偏移摆放两辆障碍车
// 参数：slotLoc-泊车位中心，side-泊车位方位
// 返回：障碍车占地列表与各自的陪衬车位占地列表（后者仅供渲染器使用，不参与碰撞判定）
// 算法说明：
// 1. side=1/2：障碍车中心在x轴方向偏移±offset
// 2. side=3/4：障碍车中心在y轴方向偏移±offset
// 3. 每辆障碍车套用与泊车行朝向一致的车辆矩形与车位矩形
func (g *Generator) StaticObstacles(slotLoc geometry.Point, side entity.Side) (cars, phantomSlots []entity.Footprint) {
	offset := g.cfg.Slot().ObstacleOffset
	var locs [2]geometry.Point
	if side.IsHorizontalRow() {
		locs[0] = geometry.Point{X: slotLoc.X + offset, Y: slotLoc.Y}
		locs[1] = geometry.Point{X: slotLoc.X - offset, Y: slotLoc.Y}
	} else {
		locs[0] = geometry.Point{X: slotLoc.X, Y: slotLoc.Y + offset}
		locs[1] = geometry.Point{X: slotLoc.X, Y: slotLoc.Y - offset}
	}
	carRect := g.ObstacleCarRect(side)
	slotRect := g.SlotRect(side)
	cars = make([]entity.Footprint, 0, len(locs))
	phantomSlots = make([]entity.Footprint, 0, len(locs))
	for _, loc := range locs {
		cars = append(cars, carRect.Translate(loc))
		phantomSlots = append(phantomSlots, slotRect.Translate(loc))
	}
	return cars, phantomSlots
}
