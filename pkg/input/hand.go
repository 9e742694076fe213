package input

import (
	"github.com/gonewx/skywhack/internal/handproto"
)

// HandSource 手部追踪指针来源
//
// 追踪进程通过 WebSocket 推送归一化的手掌样本（见 internal/handproto），
// 监听端把样本放进事件通道。HandSource 每帧把通道清空，只认最新的
// 样本：坐标按游玩区尺寸换算成像素，捏合的上升沿算一次敲击。
//
// 通道空时保持上一帧的位置，这样追踪短暂卡顿不会让光标跳回原点。
type HandSource struct {
	events   <-chan handproto.Input
	playSize func() (w, h float64)

	x, y    float64
	pinched bool
}

// NewHandSource 创建手部追踪指针来源
//
// 参数：
//   - events: 监听端产出的样本通道
//   - playSize: 返回当前游玩区像素尺寸的回调（窗口可随时改变大小）
func NewHandSource(events <-chan handproto.Input, playSize func() (w, h float64)) *HandSource {
	return &HandSource{
		events:   events,
		playSize: playSize,
	}
}

// Poll 清空事件通道并返回当前帧的指针状态
// 一帧内到达多个样本时位置取最新；其中任何一个捏合上升沿都算敲击
func (h *HandSource) Poll(dt float64) Pointer {
	triggered := false

	for {
		select {
		case sample, ok := <-h.events:
			if !ok {
				return h.snapshot(triggered)
			}
			if sample.Pinch && !h.pinched {
				triggered = true
			}
			h.pinched = sample.Pinch

			w, hh := h.playSize()
			h.x = clamp01(sample.X) * w
			h.y = clamp01(sample.Y) * hh
		default:
			return h.snapshot(triggered)
		}
	}
}

// snapshot 组装当前指针快照
func (h *HandSource) snapshot(triggered bool) Pointer {
	return Pointer{X: h.x, Y: h.y, Triggered: triggered}
}

// clamp01 把归一化坐标限制在 0.0 ~ 1.0
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
