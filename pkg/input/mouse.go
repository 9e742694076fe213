package input

import (
	"github.com/gonewx/skywhack/pkg/utils"
)

// MouseSource 桌面指针来源
// 包装 ebiten 的鼠标与触摸查询，触摸优先于鼠标
type MouseSource struct{}

// NewMouseSource 创建鼠标/触摸指针来源
func NewMouseSource() *MouseSource {
	return &MouseSource{}
}

// Poll 读取当前帧的指针状态
func (m *MouseSource) Poll(dt float64) Pointer {
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		return Pointer{X: float64(x), Y: float64(y), Triggered: true}
	}

	x, y := utils.GetPointerPosition()
	return Pointer{X: float64(x), Y: float64(y)}
}
