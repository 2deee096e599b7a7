package scenario

import (
	"math"

	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
)

// 场景生成用到的像素坐标常量
const (
	slotEdgePx   = 50  // 泊车位中心到地图边缘的距离（像素）
	slotMarginPx = 100 // 泊车位中心在自由坐标轴上距地图边缘的最小距离（像素）
)

// rowAlongX 矩形长轴是否沿x轴的查找表，按（泊车方式, 方位）索引
// 说明：泊车位与障碍车共用同一朝向——平行泊车时长轴沿路缘方向，
// 垂直泊车时长轴沿进入方向；上下两侧（side 1/2）的路缘沿x轴
var rowAlongX = map[entity.ParkingType]map[entity.Side]bool{
	entity.ParkingTypeParallel: {
		entity.SideBottom: true,
		entity.SideTop:    true,
		entity.SideLeft:   false,
		entity.SideRight:  false,
	},
	entity.ParkingTypePerpendicular: {
		entity.SideBottom: false,
		entity.SideTop:    false,
		entity.SideLeft:   true,
		entity.SideRight:  true,
	},
}

// headingRange 初始朝向角的均匀采样区间
type headingRange struct {
	Low  float64 // 下界（弧度）
	High float64 // 上界（弧度）
}

// headingRanges 初始朝向角区间查找表，按（泊车方式, 方位）索引
// 说明：区间取值使车辆初始时大致朝向泊车位并带小幅扰动；
// 垂直泊车side 4在π附近环绕，采样后需要做角度规范化
var headingRanges = map[entity.ParkingType]map[entity.Side]headingRange{
	entity.ParkingTypeParallel: {
		entity.SideBottom: {5 * math.Pi / 12, 7 * math.Pi / 12},
		entity.SideTop:    {-7 * math.Pi / 12, -5 * math.Pi / 12},
		entity.SideLeft:   {-math.Pi / 12, math.Pi / 12},
		entity.SideRight:  {-11 * math.Pi / 12, 11 * math.Pi / 12},
	},
	entity.ParkingTypePerpendicular: {
		entity.SideBottom: {5 * math.Pi / 12, 7 * math.Pi / 12},
		entity.SideTop:    {-7 * math.Pi / 12, -5 * math.Pi / 12},
		entity.SideLeft:   {-math.Pi / 12, math.Pi / 12},
		entity.SideRight:  {math.Pi - math.Pi/12, math.Pi + math.Pi/12},
	},
}

// SlotRect 泊车位矩形（以原点为中心）
// 参数：side-泊车位方位
// 返回：按查找表朝向摆放的车位占地
func (g *Generator) SlotRect(side entity.Side) entity.Footprint {
	sc := g.cfg.Slot()
	if rowAlongX[g.cfg.ParkingType][side] {
		return entity.NewRect(sc.Length/2, sc.Width/2)
	}
	return entity.NewRect(sc.Width/2, sc.Length/2)
}

// ObstacleCarRect 障碍车矩形（以原点为中心）
// 参数：side-泊车位方位
// 返回：与泊车行朝向一致的障碍车占地
func (g *Generator) ObstacleCarRect(side entity.Side) entity.Footprint {
	vc := g.cfg.All.Vehicle
	if rowAlongX[g.cfg.ParkingType][side] {
		return entity.NewRect(vc.Length/2, vc.Width/2)
	}
	return entity.NewRect(vc.Width/2, vc.Length/2)
}
