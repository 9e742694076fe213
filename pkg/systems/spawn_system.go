// Package systems 实现回合内的各个游戏系统
// 每个系统持有自己的依赖，由场景按固定顺序驱动
package systems

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/entities"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/types"
	"github.com/gonewx/skywhack/pkg/world"
)

// SpawnSide 生成侧别
type SpawnSide int

const (
	// SideAny 在四条边中随机挑选
	SideAny SpawnSide = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// pendingSpawn 编队中延迟投放的成员
type pendingSpawn struct {
	dueIn float64 // 距投放还剩的时间（秒）
	side  SpawnSide
	y     float64
}

// SpawnSystem 管理目标的定时生成与编队投放
type SpawnSystem struct {
	world   *world.World
	tuning  *config.SpawnTuningConfig
	round   *game.Round
	rng     *rand.Rand
	pending []pendingSpawn // 尚未到期的编队成员
	nextIn  float64        // 距下一次生成决策还剩的时间（秒）
}

// NewSpawnSystem 创建目标生成系统
// 参数:
//   - w: 目标世界
//   - tuning: 生成节奏参数，nil 时使用内置默认值
//   - round: 当前回合（提供已进行时间与运行状态）
func NewSpawnSystem(w *world.World, tuning *config.SpawnTuningConfig, round *game.Round) *SpawnSystem {
	if tuning == nil {
		tuning = config.DefaultSpawnTuning()
	}
	log.Printf("[SpawnSystem] Initialized with delay=%.2fs..%.2fs, flock chance=%.0f%%",
		tuning.SpawnDelayStart, tuning.SpawnDelayEnd, tuning.FlockChance*100)
	return &SpawnSystem{
		world:  w,
		tuning: tuning,
		round:  round,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextIn: tuning.SpawnDelayStart,
	}
}

// SetRound 切换到新的回合并清空上一回合的生成状态
// 再来一局时由场景调用
func (s *SpawnSystem) SetRound(round *game.Round) {
	s.round = round
	s.Reset()
}

// Reset 丢弃待投放的编队成员并重置生成计时
// 回合收尾时调用，保证不会有迟到的投放改写已复位的世界
func (s *SpawnSystem) Reset() {
	s.pending = s.pending[:0]
	s.nextIn = s.tuning.SpawnDelayStart
}

// Update 推进生成计时器
func (s *SpawnSystem) Update(deltaTime float64) {
	if !s.canSpawn() {
		return
	}

	// 投放到期的编队成员
	for i := 0; i < len(s.pending); {
		s.pending[i].dueIn -= deltaTime
		if s.pending[i].dueIn <= 0 {
			s.spawnAt(s.pending[i].side, s.pending[i].y, true)
			last := len(s.pending) - 1
			s.pending[i] = s.pending[last]
			s.pending = s.pending[:last]
			continue
		}
		i++
	}

	s.nextIn -= deltaTime
	if s.nextIn > 0 {
		return
	}

	if s.rng.Float64() < s.tuning.FlockChance {
		s.SpawnFlock()
	} else {
		s.SpawnSingle(SideAny, -1)
	}
	s.nextIn = s.currentDelay()
}

// canSpawn 返回生成操作是否可执行
// 回合未运行或场地尺寸未就绪时所有生成操作空转
func (s *SpawnSystem) canSpawn() bool {
	return s.round != nil && s.round.Running() && s.world.HasSize()
}

// currentDelay 计算下一次生成决策的间隔
// 间隔随回合推进从 SpawnDelayStart 线性收缩到 SpawnDelayEnd，
// 并叠加随机抖动
func (s *SpawnSystem) currentDelay() float64 {
	duration := float64(s.round.DurationSeconds())
	progress := 0.0
	if duration > 0 {
		progress = s.round.Elapsed() / duration
	}
	if progress > 1 {
		progress = 1
	}
	delay := s.tuning.SpawnDelayStart + (s.tuning.SpawnDelayEnd-s.tuning.SpawnDelayStart)*progress
	delay += (s.rng.Float64()*2 - 1) * s.tuning.SpawnDelayJitter
	if delay < 0.05 {
		delay = 0.05
	}
	return delay
}

// SpawnSingle 立即投放一个目标
// 参数:
//   - side: 进入侧别，SideAny 表示在四条边中随机挑选
//   - yOverride: 左右侧的进入高度，负值表示在安全带内随机；
//     上下侧进入时忽略
//
// 返回: 投放的目标，生成条件不满足时返回 nil
func (s *SpawnSystem) SpawnSingle(side SpawnSide, yOverride float64) *world.Target {
	if !s.canSpawn() {
		return nil
	}
	return s.spawnAt(side, yOverride, yOverride >= 0)
}

// SpawnFlock 调度一个编队
// 编队成员共享左右侧之一与一条基准高度线，首个成员立即投放，
// 其余按随机间隔错开入场
// 返回: 编队规模（含已投放的首个成员），生成条件不满足时为 0
func (s *SpawnSystem) SpawnFlock() int {
	if !s.canSpawn() {
		return 0
	}
	size := s.tuning.FlockSizeMin + s.rng.Intn(s.tuning.FlockSizeMax-s.tuning.FlockSizeMin+1)
	side := s.randomHorizontalSide()
	baseY := s.randomLaneY()

	log.Printf("[SpawnSystem] Flock of %d from side %d at baseY=%.0f", size, side, baseY)

	s.spawnAt(side, s.flockMemberY(baseY), true)
	due := 0.0
	for i := 1; i < size; i++ {
		due += s.tuning.FlockStaggerMin +
			s.rng.Float64()*(s.tuning.FlockStaggerMax-s.tuning.FlockStaggerMin)
		s.pending = append(s.pending, pendingSpawn{
			dueIn: due,
			side:  side,
			y:     s.flockMemberY(baseY),
		})
	}
	return size
}

// PendingCount 返回尚未到期的编队成员数量
func (s *SpawnSystem) PendingCount() int {
	return len(s.pending)
}

// flockMemberY 在基准线附近散布编队成员的进入高度
func (s *SpawnSystem) flockMemberY(baseY float64) float64 {
	return baseY + (s.rng.Float64()*2-1)*s.tuning.FlockYSpread
}

// randomSide 在四条边中均匀随机挑选
func (s *SpawnSystem) randomSide() SpawnSide {
	switch s.rng.Intn(4) {
	case 0:
		return SideLeft
	case 1:
		return SideRight
	case 2:
		return SideTop
	default:
		return SideBottom
	}
}

// randomHorizontalSide 在左右侧中随机挑选（编队专用）
func (s *SpawnSystem) randomHorizontalSide() SpawnSide {
	if s.rng.Intn(2) == 0 {
		return SideLeft
	}
	return SideRight
}

// randomLaneY 在上下安全带之间随机挑选高度
func (s *SpawnSystem) randomLaneY() float64 {
	_, h := s.world.Size()
	return s.randomInBand(h)
}

// randomLaneX 在左右安全带之间随机挑选横坐标
func (s *SpawnSystem) randomLaneX() float64 {
	w, _ := s.world.Size()
	return s.randomInBand(w)
}

// randomInBand 在 [margin, extent-margin] 内均匀取值
func (s *SpawnSystem) randomInBand(extent float64) float64 {
	low := config.SpawnLaneMargin
	high := extent - config.SpawnLaneMargin
	if high <= low {
		return extent / 2
	}
	return low + s.rng.Float64()*(high-low)
}

// spawnAt 在指定侧别投放一个目标
// 生成点取边外一小段距离，速度方向指向对侧的随机点，
// 速度大小由基础区间、回合爬坡与物种倍率共同决定
func (s *SpawnSystem) spawnAt(side SpawnSide, y float64, hasY bool) *world.Target {
	if !s.canSpawn() {
		return nil
	}
	w, h := s.world.Size()

	if side == SideAny {
		side = s.randomSide()
	}

	var spawnX, spawnY, targetX, targetY float64
	switch side {
	case SideLeft:
		spawnY = s.entryY(y, hasY, h)
		spawnX = -config.SpawnEdgeInset
		targetX = w + config.SpawnEdgeInset
		targetY = s.randomLaneY()
	case SideRight:
		spawnY = s.entryY(y, hasY, h)
		spawnX = w + config.SpawnEdgeInset
		targetX = -config.SpawnEdgeInset
		targetY = s.randomLaneY()
	case SideTop:
		spawnX = s.randomLaneX()
		spawnY = -config.SpawnEdgeInset
		targetX = s.randomLaneX()
		targetY = h + config.SpawnEdgeInset
	default: // SideBottom
		spawnX = s.randomLaneX()
		spawnY = h + config.SpawnEdgeInset
		targetX = s.randomLaneX()
		targetY = -config.SpawnEdgeInset
	}

	species := types.PickWeighted(s.rng)
	speed := s.rollSpeed(species)

	dx := targetX - spawnX
	dy := targetY - spawnY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	vx := dx / dist * speed
	vy := dy / dist * speed

	return entities.NewTarget(s.world, species, spawnX, spawnY, vx, vy)
}

// entryY 求左右侧进入时的高度
func (s *SpawnSystem) entryY(y float64, hasY bool, height float64) float64 {
	if !hasY {
		return s.randomLaneY()
	}
	return clampLaneY(y, height)
}

// rollSpeed 掷出目标的初始速度
func (s *SpawnSystem) rollSpeed(species types.Species) float64 {
	speed := s.tuning.BaseSpeedMin +
		s.rng.Float64()*(s.tuning.BaseSpeedMax-s.tuning.BaseSpeedMin)
	speed += s.tuning.SpeedRampPerSecond * s.round.Elapsed()
	return speed * species.SpeedScale()
}

// clampLaneY 将进入高度压回上下安全带之间
func clampLaneY(y, height float64) float64 {
	low := config.SpawnLaneMargin
	high := height - config.SpawnLaneMargin
	if high < low {
		return height / 2
	}
	if y < low {
		return low
	}
	if y > high {
		return high
	}
	return y
}
