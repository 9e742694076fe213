package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/skywhack/internal/sheet"
	"github.com/gonewx/skywhack/pkg/world"
)

// RenderSystem 绘制世界中的全部活动目标
//
// 职责范围：
//   - 按目标当前帧从精灵表取子图，居中绘制在目标位置
//   - 朝向与贴图原始朝向不一致时做水平镜像
//   - 精灵表未注册或贴图未就绪时静默跳过该目标，
//     资源补齐后自动恢复绘制
//
// 不包括：
//   - 背景、HUD、倒计时等由场景自行绘制
//   - 浮动得分提示由 IndicatorSystem 绘制
type RenderSystem struct {
	world  *world.World
	sheets *sheet.Registry
}

// NewRenderSystem 创建目标渲染系统
func NewRenderSystem(w *world.World, sheets *sheet.Registry) *RenderSystem {
	return &RenderSystem{
		world:  w,
		sheets: sheets,
	}
}

// Draw 绘制全部活动目标
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	for _, t := range r.world.Targets {
		sh := r.sheets.Lookup(t.Species.SheetID())
		if !sh.Ready() {
			continue
		}
		frame := sh.Frame(t.Frame)
		if frame == nil {
			continue
		}

		fw := float64(sh.FrameWidth)
		fh := float64(sh.FrameHeight)

		op := &ebiten.DrawImageOptions{}
		if needsMirror(t) {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(fw, 0)
		}
		op.GeoM.Translate(t.X-fw/2, t.Y-fh/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(frame, op)
	}
}

// needsMirror 判断目标是否需要水平镜像
// 贴图原始朝向与目标飞行朝向不一致时镜像
func needsMirror(t *world.Target) bool {
	facingLeft := t.Facing == world.FacingLeft
	return facingLeft != t.Species.ArtFacesLeft()
}
