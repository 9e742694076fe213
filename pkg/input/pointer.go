// Package input 统一游戏的指针输入来源
//
// 游戏只关心一种交互：指针在哪里、这一帧有没有敲击。
// 鼠标（含触摸）和手部追踪都被抽象成 Source，场景每帧轮询
// 当前激活的来源拿到一份 Pointer 快照。
package input

// Pointer 一帧的指针快照
type Pointer struct {
	// X, Y 游玩区像素坐标
	X, Y float64
	// Triggered 本帧是否产生一次敲击（鼠标点击或捏合瞬间）
	Triggered bool
}

// Source 指针来源
// Poll 每帧调用一次，dt 为距上一帧的秒数
type Source interface {
	Poll(dt float64) Pointer
}
