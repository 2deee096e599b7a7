package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidAction 非法动作错误
// 说明：动作值超出离散动作集合、或与配置的动作类型不匹配时由Step返回，
// 返回该错误时回合状态保证未被修改
var ErrInvalidAction = errors.New("invalid action")

// Side 泊车位相对地图的方位
// 说明：决定泊车位的摆放位置与车辆的进入方向
type Side int32

const (
	SideBottom Side = 1 // 下侧
	SideTop    Side = 2 // 上侧
	SideLeft   Side = 3 // 左侧
	SideRight  Side = 4 // 右侧
)

// IsValid 判断方位取值是否合法
func (s Side) IsValid() bool {
	return s >= SideBottom && s <= SideRight
}

// IsHorizontalRow 判断泊车行是否沿x轴方向展开
// 说明：上下两侧（side 1/2）的泊车行沿x轴排列，左右两侧（side 3/4）沿y轴排列
func (s Side) IsHorizontalRow() bool {
	return s == SideBottom || s == SideTop
}

func (s Side) String() string {
	switch s {
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int32(s))
	}
}

// ParkingType 泊车方式
type ParkingType int32

const (
	ParkingTypeParallel      ParkingType = iota // 平行泊车
	ParkingTypePerpendicular                    // 垂直泊车
)

// ParseParkingType 解析泊车方式配置字符串
func ParseParkingType(s string) (ParkingType, error) {
	switch s {
	case "parallel":
		return ParkingTypeParallel, nil
	case "perpendicular":
		return ParkingTypePerpendicular, nil
	default:
		return 0, fmt.Errorf("invalid parking type: %q, valid options are [parallel perpendicular]", s)
	}
}

func (t ParkingType) String() string {
	switch t {
	case ParkingTypeParallel:
		return "parallel"
	case ParkingTypePerpendicular:
		return "perpendicular"
	default:
		return fmt.Sprintf("ParkingType(%d)", int32(t))
	}
}

// ActionType 动作空间类型
type ActionType int32

const (
	ActionTypeContinuous ActionType = iota // 连续动作：[加速度, 前轮转角]，各分量范围[-1,1]
	ActionTypeDiscrete                     // 离散动作：0~5的整数
)

// ParseActionType 解析动作空间类型配置字符串
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "continuous":
		return ActionTypeContinuous, nil
	case "discrete":
		return ActionTypeDiscrete, nil
	default:
		return 0, fmt.Errorf("invalid action type: %q, valid options are [continuous discrete]", s)
	}
}

func (t ActionType) String() string {
	switch t {
	case ActionTypeContinuous:
		return "continuous"
	case ActionTypeDiscrete:
		return "discrete"
	default:
		return fmt.Sprintf("ActionType(%d)", int32(t))
	}
}

// TrainingMode 训练模式开关
// 说明：开启后初始位置改由训练初始化器联合随机给出
type TrainingMode int32

const (
	TrainingModeOff TrainingMode = iota // 固定分布模式
	TrainingModeOn                      // 训练模式
)

// ParseTrainingMode 解析训练模式配置字符串
func ParseTrainingMode(s string) (TrainingMode, error) {
	switch s {
	case "", "off":
		return TrainingModeOff, nil
	case "on":
		return TrainingModeOn, nil
	default:
		return 0, fmt.Errorf("invalid training mode: %q, valid options are [on off]", s)
	}
}

func (m TrainingMode) String() string {
	if m == TrainingModeOn {
		return "on"
	}
	return "off"
}
