// Package entities 提供目标实体的构建与字段重置
package entities

import (
	"github.com/gonewx/skywhack/pkg/types"
	"github.com/gonewx/skywhack/pkg/world"
)

// NewTarget 向世界投放一个新目标
// 优先复用对象池中的实例，池空时才分配新实例
// 参数:
//   - w: 目标所属的世界
//   - species: 物种
//   - x, y: 生成位置（场地坐标）
//   - vx, vy: 初始速度（像素/秒）
//
// 返回: 投放完成的目标实例
func NewTarget(w *world.World, species types.Species, x, y, vx, vy float64) *world.Target {
	t, ok := w.Pool().Acquire()
	if !ok {
		t = &world.Target{}
	}
	ResetTarget(t, species, x, y, vx, vy)
	w.Add(t)
	return t
}

// ResetTarget 重置目标的全部领域字段
// 对象池复用的实例必须经过完整重置后才能再次投放，
// 任何新增字段都要在这里补充清零
func ResetTarget(t *world.Target, species types.Species, x, y, vx, vy float64) {
	t.Species = species
	t.Status = world.StatusFlying
	t.X = x
	t.Y = y
	t.VX = vx
	t.VY = vy
	t.Facing = world.FacingFromVelocity(vx)
	t.SpawnX = x
	t.SpawnY = y
	t.Frame = 0
	t.FrameTimer = 0
}
