// Package world 维护回合内的活动目标集合、对象池与空间索引
package world

import "github.com/gonewx/skywhack/pkg/types"

// TargetStatus 目标的生命周期状态
type TargetStatus int

const (
	// StatusFlying 飞行中，可被命中
	StatusFlying TargetStatus = iota
	// StatusHit 已被命中，重力坠落中，不再参与命中判定
	StatusHit
)

// Facing 目标的水平朝向
type Facing int

const (
	// FacingRight 朝右飞行
	FacingRight Facing = iota
	// FacingLeft 朝左飞行
	FacingLeft
)

// FacingFromVelocity 根据水平速度推导朝向
func FacingFromVelocity(vx float64) Facing {
	if vx < 0 {
		return FacingLeft
	}
	return FacingRight
}

// Target 一个活动中的飞行目标
// 实例由对象池复用，重新投放时所有字段必须经工厂重置
type Target struct {
	Species types.Species
	Status  TargetStatus

	// X, Y 当前中心位置（场地坐标，像素）
	X, Y float64
	// VX, VY 当前速度（像素/秒）
	VX, VY float64

	Facing Facing

	// SpawnX, SpawnY 生成时的位置，非直线轨迹以此为基准线
	SpawnX, SpawnY float64

	// Frame 当前动画帧序号，FrameTimer 为帧内累计时间（秒）
	Frame      int
	FrameTimer float64

	// 空间索引簿记，仅由 SpatialIndex 读写
	cell   CellKey
	inCell bool
}
