package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/types"
	"github.com/gonewx/skywhack/pkg/world"
)

// MotionSystem 推进目标运动并维护其生命周期
// 飞行中的目标按速度前进并叠加物种轨迹修正；被击中的目标
// 受重力下坠。越出场地宽裕边界的目标就地退场回池。
type MotionSystem struct {
	world *world.World
	rng   *rand.Rand
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(w *world.World) *MotionSystem {
	return &MotionSystem{
		world: w,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Update 推进一帧运动
// 退场采用交换删除，遍历不前进下标以处理换入的目标
func (m *MotionSystem) Update(deltaTime float64) {
	w, h := m.world.Size()

	for i := 0; i < len(m.world.Targets); {
		t := m.world.Targets[i]

		switch t.Status {
		case world.StatusHit:
			m.fall(t, deltaTime)
		default:
			m.fly(t, deltaTime)
		}

		if m.shouldRetire(t, w, h) {
			m.world.RetireAt(i)
			continue
		}

		m.world.Index().Update(t)
		i++
	}
}

// fly 推进飞行中的目标
func (m *MotionSystem) fly(t *world.Target, deltaTime float64) {
	t.X += t.VX * deltaTime

	switch t.Species.Motion() {
	case types.MotionSine:
		// 水平速度过低时飞行进度无法定义，退化为直线
		if math.Abs(t.VX) < config.MinHorizontalSpeed {
			t.Y += t.VY * deltaTime
			return
		}
		progress := (t.X - t.SpawnX) / t.VX
		t.Y = t.SpawnY + t.VY*progress +
			config.ButterflyWaveAmplitude*math.Sin(config.ButterflyWaveAngularSpeed*progress)
	case types.MotionJitter:
		t.X += (m.rng.Float64()*2 - 1) * config.BeeJitterSpeed * deltaTime
		t.Y += t.VY * deltaTime
	default:
		t.Y += t.VY * deltaTime
	}
}

// fall 推进被击中目标的重力下坠
func (m *MotionSystem) fall(t *world.Target, deltaTime float64) {
	t.VY += config.HitGravity * deltaTime
	t.X += t.VX * deltaTime
	t.Y += t.VY * deltaTime
}

// shouldRetire 判断目标是否越出宽裕边界
func (m *MotionSystem) shouldRetire(t *world.Target, w, h float64) bool {
	return t.X < -config.OffscreenMargin ||
		t.X > w+config.OffscreenMargin ||
		t.Y < -config.OffscreenMargin ||
		t.Y > h+config.OffscreenMargin
}
