package systems

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/world"
)

// CollisionSystem 处理触发输入到命中的判定
// 判定以触发点为圆心、按场地宽度缩放的固定半径为界：
// 先向空间索引要 3×3 邻域候选，再做精确的平方距离过滤
type CollisionSystem struct {
	world      *world.World
	round      *game.Round
	indicators *IndicatorSystem
	audio      *game.AudioManager // 可为 nil（测试或静音环境）

	queryBuf []*world.Target // 复用的候选缓冲，避免每次触发分配
}

// NewCollisionSystem 创建命中判定系统
// 参数:
//   - w: 目标世界
//   - round: 当前回合（命中历史的归宿）
//   - indicators: 浮动得分提示系统
//   - audio: 音频管理器，可传 nil
func NewCollisionSystem(w *world.World, round *game.Round, indicators *IndicatorSystem, audio *game.AudioManager) *CollisionSystem {
	return &CollisionSystem{
		world:      w,
		round:      round,
		indicators: indicators,
		audio:      audio,
		queryBuf:   make([]*world.Target, 0, 16),
	}
}

// SetRound 切换到新的回合
func (s *CollisionSystem) SetRound(round *game.Round) {
	s.round = round
}

// ResolveHit 在 (x, y) 处结算一次触发
// 半径内所有仍在飞行的目标都会被命中：状态切换为被击中、
// 速度重置为小幅下坠、弹出得分提示并计入回合命中历史。
// 状态切换对单个目标幂等，已被击中或已退场的目标不会重复命中。
// 返回: 本次触发命中的目标数
func (s *CollisionSystem) ResolveHit(x, y float64) int {
	radius := s.world.HitRadius()
	if radius <= 0 {
		return 0
	}
	if s.round == nil || !s.round.Running() {
		return 0
	}

	radiusSq := radius * radius

	s.queryBuf = s.queryBuf[:0]
	s.queryBuf = s.world.Index().QueryNeighbors(x, y, s.queryBuf)

	hits := 0
	for _, t := range s.queryBuf {
		// 候选集构建阶段的状态过滤
		if t.Status != world.StatusFlying {
			continue
		}
		dx := t.X - x
		dy := t.Y - y
		if dx*dx+dy*dy > radiusSq {
			continue
		}
		if s.registerHit(t) {
			hits++
		}
	}

	if hits > 0 {
		log.Printf("[CollisionSystem] Trigger at (%.0f, %.0f) hit %d target(s)", x, y, hits)
		if s.audio != nil {
			s.audio.PlaySound(game.SoundIDWhack)
		}
	}
	return hits
}

// registerHit 将单个目标登记为命中
// 状态守卫在此处复述，保证转换只发生一次
func (s *CollisionSystem) registerHit(t *world.Target) bool {
	if t.Status != world.StatusFlying {
		return false
	}
	t.Status = world.StatusHit
	t.VX = 0
	t.VY = config.HitFallInitialSpeed

	points := t.Species.Points()
	s.indicators.Spawn(t.X, t.Y, fmt.Sprintf("+%d", points))
	s.round.RecordHit(t.Species.String(), points, time.Now().UnixMilli())
	return true
}
