package config

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
)

// ErrInvalidConfiguration 非法配置错误
// 说明：构造RuntimeConfig时发现未识别的模式或非正的物理常量时返回，
// 环境构造立即失败，不开始任何回合
var ErrInvalidConfiguration = errors.New("invalid configuration")

// RuntimeConfig 运行时配置
// 功能：存储解析校验后的配置，字符串模式已转换为枚举
// 说明：零值字段先以Default()补齐，再整体校验
type RuntimeConfig struct {
	All Config // 全部配置

	ActionType   entity.ActionType   // 动作空间类型
	ParkingType  entity.ParkingType  // 泊车方式
	TrainingMode entity.TrainingMode // 训练模式
}

// New 根据配置初始化运行时配置
// 功能：补齐默认值、解析模式枚举并校验配置合法性
// 参数：c-原始配置对象
// 返回：初始化的运行时配置指针，或ErrInvalidConfiguration
// 算法说明：
// 1. 对零值字段套用默认值
// 2. 解析三个模式字符串为枚举，未识别的取值直接失败
// 3. 校验物理常量与阈值为正数
func New(c Config) (*RuntimeConfig, error) {
	applyDefaults(&c)
	rc := &RuntimeConfig{All: c}

	var err error
	if rc.ActionType, err = entity.ParseActionType(c.Env.ActionType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if rc.ParkingType, err = entity.ParseParkingType(c.Env.ParkingType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if rc.TrainingMode, err = entity.ParseTrainingMode(c.Env.TrainingMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	for name, v := range map[string]float64{
		"map.pixel_to_meter":         c.Map.PixelToMeter,
		"vehicle.length":             c.Vehicle.Length,
		"vehicle.width":              c.Vehicle.Width,
		"vehicle.wheelbase":          c.Vehicle.Wheelbase,
		"vehicle.velocity_limit":     c.Vehicle.VelocityLimit,
		"vehicle.acceleration_limit": c.Vehicle.AccelerationLimit,
		"vehicle.steering_limit":     c.Vehicle.SteeringLimit,
		"step.interval":              c.Step.Interval,
		"step.max_steps":             float64(c.Step.MaxSteps),
		"reward.max_distance":        c.Reward.MaxDistance,
		"reward.center_threshold":    c.Reward.CenterThreshold,
		"reward.max_angle_error":     c.Reward.MaxAngleError,
		"scenario.standoff":          c.Scenario.Standoff,
	} {
		if v <= 0 {
			return nil, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfiguration, name, v)
		}
	}
	if c.Map.WindowW <= 0 || c.Map.WindowH <= 0 {
		return nil, fmt.Errorf("%w: map size must be positive, got %dx%d",
			ErrInvalidConfiguration, c.Map.WindowW, c.Map.WindowH)
	}
	return rc, nil
}

// Slot 获取当前泊车方式对应的车位几何配置
func (rc *RuntimeConfig) Slot() SlotConfig {
	if rc.ParkingType == entity.ParkingTypeParallel {
		return rc.All.Scenario.Parallel
	}
	return rc.All.Scenario.Perpendicular
}

// applyDefaults 对零值字段套用默认配置
func applyDefaults(c *Config) {
	d := Default()
	if c.Env.ActionType == "" {
		c.Env.ActionType = d.Env.ActionType
	}
	if c.Env.ParkingType == "" {
		c.Env.ParkingType = d.Env.ParkingType
	}
	if c.Map.WindowW == 0 {
		c.Map.WindowW = d.Map.WindowW
	}
	if c.Map.WindowH == 0 {
		c.Map.WindowH = d.Map.WindowH
	}
	if c.Map.PixelToMeter == 0 {
		c.Map.PixelToMeter = d.Map.PixelToMeter
	}
	if c.Vehicle.Length == 0 {
		c.Vehicle.Length = d.Vehicle.Length
	}
	if c.Vehicle.Width == 0 {
		c.Vehicle.Width = d.Vehicle.Width
	}
	if c.Vehicle.Wheelbase == 0 {
		c.Vehicle.Wheelbase = d.Vehicle.Wheelbase
	}
	if c.Vehicle.VelocityLimit == 0 {
		c.Vehicle.VelocityLimit = d.Vehicle.VelocityLimit
	}
	if c.Vehicle.AccelerationLimit == 0 {
		c.Vehicle.AccelerationLimit = d.Vehicle.AccelerationLimit
	}
	if c.Vehicle.SteeringLimit == 0 {
		c.Vehicle.SteeringLimit = d.Vehicle.SteeringLimit
	}
	if c.Step.Interval == 0 {
		c.Step.Interval = d.Step.Interval
	}
	if c.Step.MaxSteps == 0 {
		c.Step.MaxSteps = d.Step.MaxSteps
	}
	if c.Reward.MaxDistance == 0 {
		c.Reward.MaxDistance = d.Reward.MaxDistance
	}
	if c.Reward.CenterThreshold == 0 {
		c.Reward.CenterThreshold = d.Reward.CenterThreshold
	}
	if c.Reward.MaxAngleError == 0 {
		c.Reward.MaxAngleError = d.Reward.MaxAngleError
	}
	if c.Scenario.Standoff == 0 {
		c.Scenario.Standoff = d.Scenario.Standoff
	}
	if c.Scenario.LateralJitter == 0 {
		c.Scenario.LateralJitter = d.Scenario.LateralJitter
	}
	if c.Scenario.Parallel == (SlotConfig{}) {
		c.Scenario.Parallel = d.Scenario.Parallel
	}
	if c.Scenario.Perpendicular == (SlotConfig{}) {
		c.Scenario.Perpendicular = d.Scenario.Perpendicular
	}
}
