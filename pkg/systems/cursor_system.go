package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/skywhack/internal/sheet"
	"github.com/gonewx/skywhack/pkg/config"
)

// 光标化身使用的精灵表 ID
const (
	cursorSheetID      = "cursor"
	cursorWhackSheetID = "cursor_whack"
)

// CursorSystem 绘制跟随输入位置的光标化身
// 平时循环播放待机动画，触发挥击后在固定时长内播完挥击
// 动画。化身与回合状态无关，菜单与对局场景都绘制它。
type CursorSystem struct {
	sheets *sheet.Registry

	x, y      float64
	idleTimer float64
	whackLeft float64 // 挥击动画剩余时间，0 表示待机
}

// NewCursorSystem 创建光标化身系统
func NewCursorSystem(sheets *sheet.Registry) *CursorSystem {
	return &CursorSystem{sheets: sheets}
}

// SetPosition 更新化身位置（场地坐标）
func (c *CursorSystem) SetPosition(x, y float64) {
	c.x = x
	c.y = y
}

// Position 返回化身当前位置
func (c *CursorSystem) Position() (x, y float64) {
	return c.x, c.y
}

// TriggerWhack 播放一次挥击动画
// 动画播放中再次触发会从头开始
func (c *CursorSystem) TriggerWhack() {
	c.whackLeft = config.CursorWhackSeconds
}

// Whacking 返回挥击动画是否正在播放
func (c *CursorSystem) Whacking() bool {
	return c.whackLeft > 0
}

// Update 推进化身动画
func (c *CursorSystem) Update(deltaTime float64) {
	c.idleTimer += deltaTime
	if c.whackLeft > 0 {
		c.whackLeft -= deltaTime
		if c.whackLeft < 0 {
			c.whackLeft = 0
		}
	}
}

// Draw 绘制化身
// 贴图未就绪时静默跳过
func (c *CursorSystem) Draw(screen *ebiten.Image) {
	sh, frame := c.currentFrame()
	if sh == nil || frame == nil {
		return
	}

	fw := float64(sh.FrameWidth)
	fh := float64(sh.FrameHeight)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(c.x-fw/2, c.y-fh/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(frame, op)
}

// currentFrame 选出当前应显示的精灵表与帧
func (c *CursorSystem) currentFrame() (*sheet.Sheet, *ebiten.Image) {
	if c.whackLeft > 0 {
		sh := c.sheets.Lookup(cursorWhackSheetID)
		if sh.Ready() {
			// 按挥击进度取帧，最后一刻停在末帧
			progress := 1 - c.whackLeft/config.CursorWhackSeconds
			frame := int(progress * float64(sh.FrameCount))
			if frame >= sh.FrameCount {
				frame = sh.FrameCount - 1
			}
			return sh, sh.Frame(frame)
		}
	}

	sh := c.sheets.Lookup(cursorSheetID)
	if !sh.Ready() {
		return nil, nil
	}
	frameDuration := sh.FrameDuration()
	if frameDuration <= 0 {
		return sh, sh.Frame(0)
	}
	frame := int(c.idleTimer/frameDuration) % sh.FrameCount
	return sh, sh.Frame(frame)
}
