package entity

// Action 车辆控制动作
// 说明：闭集接口，仅ContinuousAction与DiscreteAction两种实现，
// 与配置的动作空间类型不匹配时Step返回ErrInvalidAction
type Action interface {
	isAction()
}

// ContinuousAction 连续动作
// 说明：[0]为加速度分量，[1]为前轮转角分量，各分量先截断到[-1,1]再乘以对应物理上限
type ContinuousAction [2]float64

func (ContinuousAction) isAction() {}

// DiscreteAction 离散动作
// 说明：六个固定的（加速度符号, 前轮转角）组合
type DiscreteAction int32

const (
	ActionForward       DiscreteAction = 0 // 前进
	ActionForwardRight  DiscreteAction = 1 // 右前
	ActionForwardLeft   DiscreteAction = 2 // 左前
	ActionBackward      DiscreteAction = 3 // 后退
	ActionBackwardRight DiscreteAction = 4 // 右后
	ActionBackwardLeft  DiscreteAction = 5 // 左后
)

func (DiscreteAction) isAction() {}

// IsValid 判断离散动作取值是否在合法集合内
func (a DiscreteAction) IsValid() bool {
	return a >= ActionForward && a <= ActionBackwardLeft
}
