package config

// EnvConfig 环境模式配置
// 功能：指定动作空间类型、泊车方式与训练模式
// 说明：均为字符串枚举，构造RuntimeConfig时解析并校验，非法取值立即失败
type EnvConfig struct {
	ActionType   string `yaml:"action_type"`             // 动作空间类型（continuous/discrete）
	ParkingType  string `yaml:"parking_type"`            // 泊车方式（parallel/perpendicular）
	TrainingMode string `yaml:"training_mode,omitempty"` // 训练模式（on/off），默认off
}

// MapConfig 地图配置
// 说明：场景生成以像素坐标选点，再按比例换算到米制世界坐标
type MapConfig struct {
	WindowW      int32   `yaml:"window_w"`       // 地图宽度（像素）
	WindowH      int32   `yaml:"window_h"`       // 地图高度（像素）
	PixelToMeter float64 `yaml:"pixel_to_meter"` // 像素到米的换算比例
}

// VehicleConfig 车辆物理属性配置
type VehicleConfig struct {
	Length            float64 `yaml:"length"`             // 车长（米）
	Width             float64 `yaml:"width"`              // 车宽（米）
	Wheelbase         float64 `yaml:"wheelbase"`          // 轴距（米）
	VelocityLimit     float64 `yaml:"velocity_limit"`     // 速度上限（米/秒）
	AccelerationLimit float64 `yaml:"acceleration_limit"` // 加速度上限（米/秒²）
	SteeringLimit     float64 `yaml:"steering_limit"`     // 前轮转角上限（弧度）
}

// ControlStep 指定回合时间步长与步数上限的配置项
type ControlStep struct {
	Interval float64 `yaml:"interval"`  // 每步的时间间隔（秒）
	MaxSteps int32   `yaml:"max_steps"` // 回合最大步数，达到后截断
}

// RewardConfig 奖励与终止判定阈值配置
type RewardConfig struct {
	MaxDistance     float64 `yaml:"max_distance"`     // 车辆与泊车位角点的轴向距离上限（米）
	CenterThreshold float64 `yaml:"center_threshold"` // 泊车成功的中心对齐阈值（米）
	MaxAngleError   float64 `yaml:"max_angle_error"`  // 朝向惩罚饱和的角度误差（弧度）
}

// SlotConfig 单种泊车方式的车位几何配置
// 说明：Length为车位长边（平行泊车沿路缘方向、垂直泊车沿进入方向），Width为短边
type SlotConfig struct {
	Length         float64 `yaml:"length"`          // 车位长边（米）
	Width          float64 `yaml:"width"`           // 车位短边（米）
	ObstacleOffset float64 `yaml:"obstacle_offset"` // 两侧障碍车中心到车位中心的偏移（米）
}

// ScenarioConfig 场景生成配置
type ScenarioConfig struct {
	Standoff      float64    `yaml:"standoff"`       // 初始时车辆沿进入方向距车位的距离（米）
	LateralJitter float64    `yaml:"lateral_jitter"` // 初始位置的横向随机抖动幅度（米）
	Parallel      SlotConfig `yaml:"parallel"`       // 平行泊车车位几何
	Perpendicular SlotConfig `yaml:"perpendicular"`  // 垂直泊车车位几何
}

// Config YAML配置文件的根结构
// 功能：定义泊车模拟环境的全部配置项
// 说明：物理常量、阈值与模式均由配置注入，核心逻辑不持有硬编码常量
type Config struct {
	Env      EnvConfig      `yaml:"env"`      // 环境模式
	Map      MapConfig      `yaml:"map"`      // 地图
	Vehicle  VehicleConfig  `yaml:"vehicle"`  // 车辆
	Step     ControlStep    `yaml:"step"`     // 步进控制
	Reward   RewardConfig   `yaml:"reward"`   // 奖励与终止阈值
	Scenario ScenarioConfig `yaml:"scenario"` // 场景生成
}

// Default 返回全部配置项的默认值
// 说明：800x600像素地图按0.05米/像素换算为40mx30m世界，车辆与车位尺寸为常见乘用车量级
func Default() Config {
	return Config{
		Env: EnvConfig{
			ActionType:   "continuous",
			ParkingType:  "perpendicular",
			TrainingMode: "off",
		},
		Map: MapConfig{
			WindowW:      800,
			WindowH:      600,
			PixelToMeter: 0.05,
		},
		Vehicle: VehicleConfig{
			Length:            4.0,
			Width:             2.0,
			Wheelbase:         2.5,
			VelocityLimit:     2.5,
			AccelerationLimit: 1.0,
			SteeringLimit:     0.5235987755982988, // π/6
		},
		Step: ControlStep{
			Interval: 0.1,
			MaxSteps: 500,
		},
		Reward: RewardConfig{
			MaxDistance:     25,
			CenterThreshold: 0.5,
			MaxAngleError:   0.5235987755982988, // π/6
		},
		Scenario: ScenarioConfig{
			Standoff:      7.5,
			LateralJitter: 5,
			Parallel: SlotConfig{
				Length:         6.0,
				Width:          2.5,
				ObstacleOffset: 7.0,
			},
			Perpendicular: SlotConfig{
				Length:         5.0,
				Width:          2.8,
				ObstacleOffset: 3.0,
			},
		},
	}
}
