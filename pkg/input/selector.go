package input

import "log"

// Mode 指针来源模式
type Mode int

const (
	// ModeMouse 鼠标/触摸输入
	ModeMouse Mode = iota
	// ModeHand 手部追踪输入
	ModeHand
)

// String 返回模式名，用于日志和成绩上报
func (m Mode) String() string {
	switch m {
	case ModeHand:
		return "hand"
	default:
		return "mouse"
	}
}

// Selector 指针来源选择器
//
// 同一时间只有一个来源处于激活状态：切到手部追踪后鼠标不再被
// 轮询，反之亦然。两种输入不会互相插队。
type Selector struct {
	mouse Source
	hand  Source
	mode  Mode
}

// NewSelector 创建选择器，初始使用鼠标
//
// 参数：
//   - mouse: 鼠标/触摸来源，必须非 nil
//   - hand: 手部追踪来源，可为 nil（未启用监听时）
func NewSelector(mouse, hand Source) *Selector {
	return &Selector{
		mouse: mouse,
		hand:  hand,
		mode:  ModeMouse,
	}
}

// Poll 轮询当前激活的来源
func (s *Selector) Poll(dt float64) Pointer {
	if s.mode == ModeHand && s.hand != nil {
		return s.hand.Poll(dt)
	}
	return s.mouse.Poll(dt)
}

// Mode 返回当前激活的模式
func (s *Selector) Mode() Mode {
	return s.mode
}

// Use 切换到指定模式
// 没有手部追踪来源时切换请求被忽略
func (s *Selector) Use(mode Mode) {
	if mode == ModeHand && s.hand == nil {
		log.Printf("[Input] Hand mode requested but no hand source available")
		return
	}
	if s.mode != mode {
		log.Printf("[Input] Pointer source switched to %s", mode)
	}
	s.mode = mode
}

// Toggle 在鼠标和手部追踪之间切换，返回切换后的模式
func (s *Selector) Toggle() Mode {
	if s.mode == ModeMouse {
		s.Use(ModeHand)
	} else {
		s.Use(ModeMouse)
	}
	return s.mode
}
