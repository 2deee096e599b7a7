package entity

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
)

// Footprint 矩形占地，按右上、右下、左下、左上顺序给出的4个世界坐标角点
// 说明：车辆、泊车位与静态障碍车共用该表示，车辆占地总是由（位置, 朝向）即时重算，
// 不单独持久化
type Footprint [4]geometry.Point

// 角点下标
const (
	CornerTopRight    = 0 // 右上
	CornerBottomRight = 1 // 右下
	CornerBottomLeft  = 2 // 左下
	CornerTopLeft     = 3 // 左上
)

// NewRect 以原点为中心构造半宽halfX、半高halfY的矩形占地
func NewRect(halfX, halfY float64) Footprint {
	return Footprint{
		{X: +halfX, Y: +halfY},
		{X: +halfX, Y: -halfY},
		{X: -halfX, Y: -halfY},
		{X: -halfX, Y: +halfY},
	}
}

// TopRight 获取右上角点
func (f Footprint) TopRight() geometry.Point {
	return f[CornerTopRight]
}

// BottomLeft 获取左下角点
func (f Footprint) BottomLeft() geometry.Point {
	return f[CornerBottomLeft]
}

// Translate 平移占地
func (f Footprint) Translate(p geometry.Point) Footprint {
	var out Footprint
	for i, c := range f {
		out[i] = geometry.Point{X: c.X + p.X, Y: c.Y + p.Y}
	}
	return out
}

// Rotate 绕原点逆时针旋转占地
// 参数：theta-旋转角（弧度）
func (f Footprint) Rotate(theta float64) Footprint {
	sin, cos := math.Sin(theta), math.Cos(theta)
	var out Footprint
	for i, c := range f {
		out[i] = geometry.Point{
			X: c.X*cos - c.Y*sin,
			Y: c.X*sin + c.Y*cos,
		}
	}
	return out
}

// ContainsPoint 判断点是否落在由右上、左下两个对角点界定的轴对齐矩形内（含边界）
// 功能：所有上层几何判定（越界、入位、碰撞）的基础原语
// 参数：topRight-右上角点，bottomLeft-左下角点，p-被测点
// 返回：点在矩形内为true
func ContainsPoint(topRight, bottomLeft, p geometry.Point) bool {
	return bottomLeft.X <= p.X && p.X <= topRight.X &&
		bottomLeft.Y <= p.Y && p.Y <= topRight.Y
}

// CrossesBorder 判断车辆占地是否越过泊车位在进入方向上的边界
// 功能：施加"不得越过车位所在边"的单侧约束
// 参数：vehicle-车辆占地，slot-泊车位占地，side-泊车位方位
// 返回：任一车辆角点越过对应边界为true
// 算法说明：
// 1. side=1（自下方进入）：任一角点y低于车位下边界
// 2. side=2：任一角点y高于车位上边界
// 3. side=3/4：对左/右边界做同样的镜像判定
func CrossesBorder(vehicle, slot Footprint, side Side) bool {
	leftEdge := slot[CornerTopLeft].X
	rightEdge := slot[CornerTopRight].X
	topEdge := slot[CornerTopLeft].Y
	bottomEdge := slot[CornerBottomLeft].Y
	for _, c := range vehicle {
		switch side {
		case SideBottom:
			if c.Y < bottomEdge {
				return true
			}
		case SideTop:
			if c.Y > topEdge {
				return true
			}
		case SideLeft:
			if c.X < leftEdge {
				return true
			}
		default:
			if c.X > rightEdge {
				return true
			}
		}
	}
	return false
}

// IsWithinRect 判断inner占地是否完整落在outer占地的轴对齐矩形内
// 参数：inner-内侧占地（车辆），outer-外侧占地（泊车位）
// 返回：inner所有角点均在outer内为true
func IsWithinRect(inner, outer Footprint) bool {
	topRight, bottomLeft := outer.TopRight(), outer.BottomLeft()
	for _, c := range inner {
		if !ContainsPoint(topRight, bottomLeft, c) {
			return false
		}
	}
	return true
}

// CollidesAny 判断车辆占地是否与任一静态障碍占地发生碰撞
// 参数：vehicle-车辆占地，obstacles-障碍占地列表
// 返回：任一车辆角点落入任一障碍矩形内为true
// 说明：只做单侧的角点包含判定，不是完整的多边形相交；
// 车辆矩形整体包住障碍而角点都在外侧的深度穿插不会被发现，语义与判定结果的标定保持一致
func CollidesAny(vehicle Footprint, obstacles []Footprint) bool {
	for _, ob := range obstacles {
		topRight, bottomLeft := ob.TopRight(), ob.BottomLeft()
		for _, c := range vehicle {
			if ContainsPoint(topRight, bottomLeft, c) {
				return true
			}
		}
	}
	return false
}

// ExceedsMaxDistance 判断点到泊车位任一角点的轴向距离是否达到上限
// 参数：slot-泊车位占地，p-被测点（车辆中心），maxDistance-距离上限（米）
// 返回：任一角点的x或y轴向距离不小于上限为true
func ExceedsMaxDistance(slot Footprint, p geometry.Point, maxDistance float64) bool {
	for _, c := range slot {
		if mathutil.Abs(c.X-p.X) >= maxDistance || mathutil.Abs(c.Y-p.Y) >= maxDistance {
			return true
		}
	}
	return false
}
