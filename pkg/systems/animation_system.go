package systems

import (
	"github.com/gonewx/skywhack/internal/sheet"
	"github.com/gonewx/skywhack/pkg/world"
)

// AnimationSystem 推进所有目标的精灵帧
type AnimationSystem struct {
	world  *world.World
	sheets *sheet.Registry
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(w *world.World, sheets *sheet.Registry) *AnimationSystem {
	return &AnimationSystem{
		world:  w,
		sheets: sheets,
	}
}

// Update 更新所有目标的动画帧
// 帧时长由精灵表的循环时长均分得出；计时器每累计满一帧
// 时长就步进一帧，帧号按帧数取模循环。精灵表未注册的目标
// 停留在当前帧。
func (s *AnimationSystem) Update(deltaTime float64) {
	for _, t := range s.world.Targets {
		sh := s.sheets.Lookup(t.Species.SheetID())
		if sh == nil {
			continue
		}
		frameDuration := sh.FrameDuration()
		if frameDuration <= 0 {
			continue
		}

		// 增加帧计时器
		t.FrameTimer += deltaTime

		// 检查是否需要切换到下一帧
		for t.FrameTimer >= frameDuration {
			t.FrameTimer -= frameDuration
			t.Frame = (t.Frame + 1) % sh.FrameCount
		}
	}
}
