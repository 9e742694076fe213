package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/utils"
)

// Indicator 一条浮动得分提示
type Indicator struct {
	X, SpawnY float64
	Text      string
	Age       float64 // 已存活时间（秒）
}

// progress 返回提示的归一化寿命进度 [0, 1]
func (ind *Indicator) progress() float64 {
	p := ind.Age / config.IndicatorLifetime
	if p > 1 {
		return 1
	}
	return p
}

// riseOffset 返回当前的上浮距离
// 缓出曲线：刚弹出时窜得快，随后缓缓漂移
func (ind *Indicator) riseOffset() float64 {
	total := config.IndicatorRiseSpeed * config.IndicatorLifetime
	return total * utils.EaseOutCubic(ind.progress())
}

// alpha 返回当前的不透明度
// 缓入衰减：前段几乎不透明，临近消失时快速淡出
func (ind *Indicator) alpha() float64 {
	return 1 - utils.EaseInQuad(ind.progress())
}

// IndicatorSystem 管理命中时弹出的浮动得分提示
// 提示缓出上浮并在寿命尾段淡出，寿命耗尽后交换删除
type IndicatorSystem struct {
	items []Indicator
}

// NewIndicatorSystem 创建浮动提示系统
func NewIndicatorSystem() *IndicatorSystem {
	return &IndicatorSystem{}
}

// Spawn 在 (x, y) 弹出一条提示
func (s *IndicatorSystem) Spawn(x, y float64, text string) {
	s.items = append(s.items, Indicator{
		X:      x,
		SpawnY: y,
		Text:   text,
	})
}

// Update 推进提示的存活时间并移除到期的提示
func (s *IndicatorSystem) Update(deltaTime float64) {
	for i := 0; i < len(s.items); {
		s.items[i].Age += deltaTime
		if s.items[i].Age >= config.IndicatorLifetime {
			last := len(s.items) - 1
			s.items[i] = s.items[last]
			s.items = s.items[:last]
			continue
		}
		i++
	}
}

// Draw 绘制全部存活的提示
// 字体未就绪时静默跳过
func (s *IndicatorSystem) Draw(screen *ebiten.Image, face *text.GoTextFace) {
	if face == nil {
		return
	}
	for i := range s.items {
		ind := &s.items[i]

		width, _ := text.Measure(ind.Text, face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(ind.X-width/2, ind.SpawnY-ind.riseOffset())
		op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 242, B: 0, A: 255})
		op.ColorScale.ScaleAlpha(float32(ind.alpha()))
		text.Draw(screen, ind.Text, face, op)
	}
}

// Count 返回存活的提示数量
func (s *IndicatorSystem) Count() int {
	return len(s.items)
}

// Reset 丢弃全部提示
// 回合收尾时与世界复位一起调用
func (s *IndicatorSystem) Reset() {
	s.items = s.items[:0]
}
