package env_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/env"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/randengine"
)

// centeredInit 把车辆直接放在车位中心，朝向为该方位的目标朝向加固定偏差
type centeredInit struct {
	slotLoc      geometry.Point
	headingDelta float64
}

func (c *centeredInit) InitPosition(side entity.Side) (geometry.Point, geometry.Point, float64) {
	// 平行泊车各方位的目标朝向之一
	var target float64
	switch side {
	case entity.SideBottom, entity.SideTop:
		target = 0
	default:
		target = math.Pi / 2
	}
	return c.slotLoc, c.slotLoc, target + c.headingDelta
}

// standoffInit 把车辆放在指定锚点沿进入方向一个固定间隔处，车头背向车位
type standoffInit struct {
	slotLoc  geometry.Point
	anchorFn func(side entity.Side, slotLoc geometry.Point) geometry.Point
	standoff float64
}

func (s *standoffInit) InitPosition(side entity.Side) (geometry.Point, geometry.Point, float64) {
	anchor := s.anchorFn(side, s.slotLoc)
	switch side {
	case entity.SideBottom:
		return geometry.Point{X: anchor.X, Y: anchor.Y + s.standoff}, s.slotLoc, math.Pi / 2
	case entity.SideTop:
		return geometry.Point{X: anchor.X, Y: anchor.Y - s.standoff}, s.slotLoc, -math.Pi / 2
	case entity.SideLeft:
		return geometry.Point{X: anchor.X + s.standoff, Y: anchor.Y}, s.slotLoc, 0
	default:
		return geometry.Point{X: anchor.X - s.standoff, Y: anchor.Y}, s.slotLoc, math.Pi
	}
}

// slotAnchor 锚点取车位中心本身
func slotAnchor(_ entity.Side, slotLoc geometry.Point) geometry.Point {
	return slotLoc
}

// obstacleAnchor 锚点取泊车行正偏移侧的障碍车中心（平行泊车）
func obstacleAnchor(side entity.Side, slotLoc geometry.Point) geometry.Point {
	const offset = 7.0
	if side.IsHorizontalRow() {
		return geometry.Point{X: slotLoc.X + offset, Y: slotLoc.Y}
	}
	return geometry.Point{X: slotLoc.X, Y: slotLoc.Y + offset}
}

func TestResetObservation(t *testing.T) {
	e, err := env.New(config.Default())
	require.NoError(t, err)
	for seed := uint64(0); seed < 20; seed++ {
		obs := e.Reset(seed)
		require.Len(t, obs, env.ObservationSize)
		for _, v := range obs {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		// 车位中心不在自车原点，指引分量不应全为零
		assert.False(t, obs[8] == 0 && obs[9] == 0)
	}
}

func TestFirstStepDoesNotTerminate(t *testing.T) {
	e, err := env.New(config.Default())
	require.NoError(t, err)
	for seed := uint64(0); seed < 20; seed++ {
		e.Reset(seed)
		res, err := e.Step(nil)
		require.NoError(t, err)
		assert.False(t, res.Terminated)
		assert.False(t, res.Truncated)
		assert.Zero(t, res.Reward)
		assert.Equal(t, int32(1), res.Info.Step)
	}
}

func TestStepBeforeResetPanics(t *testing.T) {
	e, err := env.New(config.Default())
	require.NoError(t, err)
	assert.Panics(t, func() {
		_, _ = e.Step(nil)
	})
}

func TestInvalidActionLeavesStateUntouched(t *testing.T) {
	e, err := env.New(config.Default()) // 连续动作空间
	require.NoError(t, err)
	e.Reset(1)
	loc0, v0, psi0 := e.VehiclePose()

	_, err = e.Step(entity.ActionForward)
	assert.ErrorIs(t, err, entity.ErrInvalidAction)
	loc1, v1, psi1 := e.VehiclePose()
	assert.Equal(t, loc0, loc1)
	assert.Equal(t, v0, v1)
	assert.Equal(t, psi0, psi1)

	// 非法动作不消耗步数，后续合法动作照常推进
	res, err := e.Step(entity.ContinuousAction{1, 0})
	require.NoError(t, err)
	assert.Equal(t, int32(1), res.Info.Step)
}

func TestDeterminism(t *testing.T) {
	e1, err := env.New(config.Default())
	require.NoError(t, err)
	e2, err := env.New(config.Default())
	require.NoError(t, err)

	obs1 := e1.Reset(42)
	obs2 := e2.Reset(42)
	assert.Equal(t, obs1, obs2)
	assert.Equal(t, e1.Side(), e2.Side())

	policy1 := randengine.New(7)
	policy2 := randengine.New(7)
	for i := 0; i < 100; i++ {
		a1 := entity.ContinuousAction{policy1.Uniform(-1, 1), policy1.Uniform(-1, 1)}
		a2 := entity.ContinuousAction{policy2.Uniform(-1, 1), policy2.Uniform(-1, 1)}
		r1, err := e1.Step(a1)
		require.NoError(t, err)
		r2, err := e2.Step(a2)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
	}

	// 同一环境用相同种子重置得到相同回合
	assert.Equal(t, e1.Reset(42), obs1)
}

func TestTimeoutTruncates(t *testing.T) {
	c := config.Default()
	c.Env.ActionType = "discrete"
	c.Step.MaxSteps = 40
	e, err := env.New(c)
	require.NoError(t, err)
	e.Reset(3)

	// 前进/后退交替，车辆在原地附近徘徊直到超时
	var last *env.StepResult
	for i := 0; i < 40; i++ {
		a := entity.ActionForward
		if i%2 == 1 {
			a = entity.ActionBackward
		}
		last, err = e.Step(a)
		require.NoError(t, err)
		if i < 39 {
			require.False(t, last.Terminated, "episode ended early at step %d", i+1)
		}
	}
	assert.Equal(t, -1.0, last.Reward)
	assert.True(t, last.Terminated)
	assert.True(t, last.Truncated)
	assert.Equal(t, int32(40), last.Info.Step)

	// 吸收态：回合结束后继续Step不再推进也不再计酬
	res, err := e.Step(entity.ActionForward)
	require.NoError(t, err)
	assert.Zero(t, res.Reward)
	assert.True(t, res.Terminated)
	assert.True(t, res.Truncated)
}

func TestSuccessReward(t *testing.T) {
	c := config.Default()
	c.Env.ParkingType = "parallel"
	c.Env.TrainingMode = "on"

	// 完全对齐时奖励恰为+1
	e, err := env.New(c, env.WithInitializer(&centeredInit{
		slotLoc: geometry.Point{X: 20, Y: 15},
	}))
	require.NoError(t, err)
	for seed := uint64(0); seed < 8; seed++ {
		e.Reset(seed)
		res, err := e.Step(nil)
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Reward)
		assert.True(t, res.Terminated)
		assert.False(t, res.Truncated)
	}

	// 朝向偏差按比例折减奖励
	const delta = 0.1
	e, err = env.New(c, env.WithInitializer(&centeredInit{
		slotLoc:      geometry.Point{X: 20, Y: 15},
		headingDelta: delta,
	}))
	require.NoError(t, err)
	for seed := uint64(0); seed < 8; seed++ {
		e.Reset(seed)
		res, err := e.Step(nil)
		require.NoError(t, err)
		want := 1 - 0.5*delta/(math.Pi/6)
		assert.InDelta(t, want, res.Reward, 1e-9)
		assert.True(t, res.Terminated)
	}
}

func TestCollisionTerminates(t *testing.T) {
	c := config.Default()
	c.Env.ParkingType = "parallel"
	c.Env.ActionType = "discrete"
	c.Env.TrainingMode = "on"
	// 车辆在障碍车正前方，倒车直至相撞
	e, err := env.New(c, env.WithInitializer(&standoffInit{
		slotLoc:  geometry.Point{X: 20, Y: 15},
		anchorFn: obstacleAnchor,
		standoff: 7.5,
	}))
	require.NoError(t, err)
	for seed := uint64(0); seed < 8; seed++ {
		e.Reset(seed)
		var last *env.StepResult
		for i := 0; i < 200; i++ {
			last, err = e.Step(entity.ActionBackward)
			require.NoError(t, err)
			if last.Terminated {
				break
			}
		}
		require.True(t, last.Terminated)
		assert.False(t, last.Truncated)
		assert.Equal(t, -1.0, last.Reward)
		fp := e.VehicleFootprint()
		assert.True(t, entity.CollidesAny(fp, e.ObstacleFootprints()))
	}
}

func TestBorderCrossingTerminates(t *testing.T) {
	c := config.Default()
	c.Env.ParkingType = "parallel"
	c.Env.ActionType = "discrete"
	c.Env.TrainingMode = "on"
	// 车辆在车位正前方，倒车穿过进入方向上的车位边界
	e, err := env.New(c, env.WithInitializer(&standoffInit{
		slotLoc:  geometry.Point{X: 20, Y: 15},
		anchorFn: slotAnchor,
		standoff: 7.5,
	}))
	require.NoError(t, err)
	for seed := uint64(0); seed < 8; seed++ {
		e.Reset(seed)
		var last *env.StepResult
		for i := 0; i < 200; i++ {
			last, err = e.Step(entity.ActionBackward)
			require.NoError(t, err)
			if last.Terminated {
				break
			}
		}
		require.True(t, last.Terminated)
		assert.False(t, last.Truncated)
		assert.Equal(t, -1.0, last.Reward)
		fp := e.VehicleFootprint()
		assert.True(t, entity.CrossesBorder(fp, e.SlotFootprint(), e.Side()))
	}
}

func TestMaxDistanceTerminates(t *testing.T) {
	c := config.Default()
	c.Env.ActionType = "discrete"
	c.Env.TrainingMode = "on"
	// 车头背向车位，一路前进直到超出距离上限
	e, err := env.New(c, env.WithInitializer(&standoffInit{
		slotLoc:  geometry.Point{X: 20, Y: 15},
		anchorFn: slotAnchor,
		standoff: 7.5,
	}))
	require.NoError(t, err)
	e.Reset(1)
	var last *env.StepResult
	var err2 error
	for i := 0; i < 400; i++ {
		last, err2 = e.Step(entity.ActionForward)
		require.NoError(t, err2)
		if last.Terminated {
			break
		}
	}
	require.True(t, last.Terminated)
	assert.False(t, last.Truncated)
	assert.Equal(t, -1.0, last.Reward)
	loc, _, _ := e.VehiclePose()
	assert.True(t, entity.ExceedsMaxDistance(e.SlotFootprint(), loc, config.Default().Reward.MaxDistance))
}

func TestObservationValues(t *testing.T) {
	c := config.Default()
	c.Env.ParkingType = "parallel"
	c.Env.TrainingMode = "on"
	slotLoc := geometry.Point{X: 20, Y: 15}
	e, err := env.New(c, env.WithInitializer(&standoffInit{
		slotLoc:  slotLoc,
		anchorFn: slotAnchor,
		standoff: 7.5,
	}))
	require.NoError(t, err)

	// 寻找方位为下侧的回合：车辆在车位正上方7.5米处、车头朝+y，
	// 自车坐标变换退化为纯平移
	var found bool
	var obs []float64
	for seed := uint64(0); seed < 64; seed++ {
		obs = e.Reset(seed)
		if e.Side() == entity.SideBottom {
			found = true
			break
		}
	}
	require.True(t, found)

	// 车位中心在自车正后方7.5米
	assert.InDelta(t, 0, obs[8], 1e-9)
	assert.InDelta(t, -7.5/25, obs[9], 1e-9)
	// 右上角点：车位中心偏移(+3, +1.25)
	assert.InDelta(t, 3.0/25, obs[0], 1e-9)
	assert.InDelta(t, (1.25-7.5)/25, obs[1], 1e-9)
	// 左下角点：车位中心偏移(-3, -1.25)
	assert.InDelta(t, -3.0/25, obs[4], 1e-9)
	assert.InDelta(t, (-1.25-7.5)/25, obs[5], 1e-9)
}

func TestCalcAngleDifference(t *testing.T) {
	assert.InDelta(t, 0, env.CalcAngleDifference(math.Pi/2, math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, env.CalcAngleDifference(0, math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/6, env.CalcAngleDifference(-math.Pi/12, math.Pi/12), 1e-12)
	// π与-π是同一朝向
	assert.InDelta(t, 0, env.CalcAngleDifference(math.Pi, -math.Pi), 1e-12)
	// 对2π周期不敏感
	for _, psi := range []float64{-3, -1, 0, 1, 3} {
		for _, target := range []float64{-2, 0, 2} {
			assert.InDelta(t,
				env.CalcAngleDifference(psi, target),
				env.CalcAngleDifference(psi+2*math.Pi, target-2*math.Pi), 1e-9)
		}
	}
}
