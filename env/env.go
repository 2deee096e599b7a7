// 泊车模拟环境：以回合制的reset/step驱动，每步推进车辆运动学模型、
// 判定终止/截断并给出奖励与归一化观测。外部的策略/训练循环是调用方，渲染器是只读消费方。
package env

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/parking-sim-oss/clock"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity/scenario"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/randengine"
)

// ObservationSize 观测向量维数：4个车位角点与车位中心的自车坐标，各2个分量
const ObservationSize = 10

// Info 每步附带的信息
type Info struct {
	Step int32 // 当前步数
}

// StepResult 单步执行结果
// 说明：Terminated为回合因明确结局（成功/失败）结束，Truncated为因步数上限被截断，
// 仅超时时两者同时为true
type StepResult struct {
	Observation []float64 // 归一化观测向量
	Reward      float64   // 标量奖励
	Terminated  bool      // 是否终止
	Truncated   bool      // 是否截断
	Info        Info      // 附带信息
}

// Env 泊车模拟环境
// 功能：持有回合状态并驱动每步的奖励与终止判定
// 说明：单线程同步模型，回合数据在Reset时整体重建，不跨回合保留任何状态
type Env struct {
	cfg         *config.RuntimeConfig
	engine      *randengine.Engine
	generator   *scenario.Generator
	initializer scenario.Initializer
	clock       *clock.Clock

	// 回合状态，Reset时整体重建
	side          entity.Side
	slotLoc       geometry.Point
	slotFootprint entity.Footprint
	obstacleCars  []entity.Footprint
	phantomSlots  []entity.Footprint
	car           *vehicle.Vehicle
	terminated    bool
	truncated     bool
	observation   []float64
}

// Option 环境构造选项
type Option func(*Env)

// WithInitializer 替换训练模式下的初始状态协作者
func WithInitializer(init scenario.Initializer) Option {
	return func(e *Env) {
		e.initializer = init
	}
}

// New 创建泊车模拟环境
// 功能：校验配置并构建环境实例，配置非法时立即失败
// 参数：c-原始配置，opts-构造选项
// 返回：环境实例，或config.ErrInvalidConfiguration
// 说明：构造不开始回合，首个回合由Reset触发
func New(c config.Config, opts ...Option) (*Env, error) {
	cfg, err := config.New(c)
	if err != nil {
		return nil, err
	}
	engine := randengine.New(0)
	e := &Env{
		cfg:         cfg,
		engine:      engine,
		generator:   scenario.New(cfg, engine),
		initializer: scenario.NewRandomInitializer(cfg, engine),
		clock:       clock.New(cfg.All.Step),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Reset 开始新回合
// 功能：重建全部回合状态（方位、车位、障碍车、车辆、计数器）并返回初始观测
// 参数：seed-可选随机数种子，给定时重置随机数序列
// 返回：归一化观测向量
// 算法说明：
// 1. 随机选择泊车位方位
// 2. 固定分布模式：摆放车位，反复采样车辆位置直到不超出距离上限，再采样初始朝向；
//    训练模式：初始位形改由训练初始化器联合给出
// 3. 生成两侧静态障碍车，重置时钟与终止标志
// 说明：相同种子与相同动作序列下回合完全可复现
func (e *Env) Reset(seed ...uint64) []float64 {
	if len(seed) > 0 {
		e.engine.Reseed(seed[0])
	}

	e.side = e.generator.ChooseSide()
	if e.cfg.TrainingMode == entity.TrainingModeOn {
		vehicleLoc, slotLoc, heading := e.initializer.InitPosition(e.side)
		e.slotLoc = slotLoc
		e.slotFootprint = e.generator.SlotRect(e.side).Translate(slotLoc)
		e.car = vehicle.New(e.cfg, vehicleLoc, heading)
	} else {
		e.slotLoc = e.generator.PlaceSlot(e.side)
		e.slotFootprint = e.generator.SlotRect(e.side).Translate(e.slotLoc)
		var loc geometry.Point
		for {
			loc = e.generator.PlaceVehicle(e.side, e.slotLoc)
			if !entity.ExceedsMaxDistance(e.slotFootprint, loc, e.cfg.All.Reward.MaxDistance) {
				break
			}
		}
		e.car = vehicle.New(e.cfg, loc, e.generator.InitialHeading(e.side))
	}
	e.obstacleCars, e.phantomSlots = e.generator.StaticObstacles(e.slotLoc, e.side)

	e.terminated = false
	e.truncated = false
	e.clock.Reset()
	e.observation = e.buildObservation()
	log.Debugf("reset: side=%v type=%v slot=(%.2f, %.2f) car=(%.2f, %.2f) psi=%.3f",
		e.side, e.cfg.ParkingType, e.slotLoc.X, e.slotLoc.Y, e.car.Loc.X, e.car.Loc.Y, e.car.Psi)
	return e.cloneObservation()
}

// Step 执行一个模拟步
// 功能：推进车辆运动学模型，判定终止/截断并给出奖励与新观测
// 参数：action-外部动作，nil视为零控制量
// 返回：单步执行结果，或entity.ErrInvalidAction（此时回合状态未被修改）
// 算法说明：
// 1. 先约束校验动作，失败立即返回且不产生任何状态变更
// 2. 推进车辆状态，依次判定超时、越界、超距、碰撞、入位
// 3. 终止/截断是正常的回合结局，通过标志返回而非错误
func (e *Env) Step(action entity.Action) (*StepResult, error) {
	if e.car == nil {
		log.Panicf("env: Step called before Reset")
	}
	if e.terminated || e.truncated {
		// 吸收态：回合结束后不再推进
		log.Debugf("step: episode already over at %v", e.clock)
		return e.result(0), nil
	}

	acc, steering, err := e.car.ConstrainAction(action)
	if err != nil {
		return nil, err
	}
	e.car.Advance(acc, steering)
	reward := e.evaluate()
	e.observation = e.buildObservation()
	return e.result(reward), nil
}

func (e *Env) result(reward float64) *StepResult {
	return &StepResult{
		Observation: e.cloneObservation(),
		Reward:      reward,
		Terminated:  e.terminated,
		Truncated:   e.truncated,
		Info:        Info{Step: e.clock.Step},
	}
}

func (e *Env) cloneObservation() []float64 {
	return append([]float64(nil), e.observation...)
}

// getter：供渲染器只读消费的几何状态

// Side 获取当前回合的泊车位方位
func (e *Env) Side() entity.Side {
	return e.side
}

// SlotCenter 获取目标泊车位中心
func (e *Env) SlotCenter() geometry.Point {
	return e.slotLoc
}

// SlotFootprint 获取目标泊车位占地
func (e *Env) SlotFootprint() entity.Footprint {
	return e.slotFootprint
}

// ObstacleFootprints 获取静态障碍车占地列表
func (e *Env) ObstacleFootprints() []entity.Footprint {
	return append([]entity.Footprint(nil), e.obstacleCars...)
}

// PhantomSlotFootprints 获取障碍车陪衬车位占地列表（仅渲染用）
func (e *Env) PhantomSlotFootprints() []entity.Footprint {
	return append([]entity.Footprint(nil), e.phantomSlots...)
}

// VehicleFootprint 获取车辆当前占地
func (e *Env) VehicleFootprint() entity.Footprint {
	return e.car.Footprint()
}

// VehiclePose 获取车辆当前位姿
// 返回：位置、标量速度、朝向角
func (e *Env) VehiclePose() (geometry.Point, float64, float64) {
	return e.car.Loc, e.car.V, e.car.Psi
}

// VehiclePath 获取车辆上一步到当前的位移线段（供渲染器绘制轨迹）
func (e *Env) VehiclePath() (from, to geometry.Point) {
	return e.car.LocOld, e.car.Loc
}
