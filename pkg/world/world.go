package world

import (
	"github.com/gonewx/skywhack/pkg/config"
)

// World 持有一个回合内的全部活动目标及其配套设施
// 活动目标保存在稠密切片中，退场采用交换删除，
// 遍历顺序不保证稳定。
type World struct {
	// Targets 当前活动的目标，遍历热路径直接访问
	Targets []*Target

	pool  *TargetPool
	index *SpatialIndex

	width     float64
	height    float64
	hitRadius float64
}

// NewWorld 创建空世界，场地尺寸在场景初始化时设置
func NewWorld() *World {
	return &World{
		pool:  NewTargetPool(),
		index: NewSpatialIndex(0),
	}
}

// SetSize 设置场地尺寸并重新推导命中半径与网格格边长
// 格边长变化时重建空间索引。尺寸非法时保持未就绪状态，
// 生成与命中判定对未就绪的世界一律空操作。
func (w *World) SetSize(width, height float64) {
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height

	if width <= 0 || height <= 0 {
		w.hitRadius = 0
		w.index.Reset(0)
		return
	}

	w.hitRadius = config.HitRadiusBase * width / config.ReferencePlayWidth
	cellSize := config.SpatialCellFactor * w.hitRadius
	if cellSize == w.index.CellSize() {
		return
	}
	w.index.Reset(cellSize)
	for _, t := range w.Targets {
		t.inCell = false
		w.index.Insert(t)
	}
}

// Size 返回场地尺寸
func (w *World) Size() (width, height float64) {
	return w.width, w.height
}

// HasSize 返回场地尺寸是否已就绪
func (w *World) HasSize() bool {
	return w.width > 0 && w.height > 0
}

// HitRadius 返回按场地宽度缩放后的命中半径
func (w *World) HitRadius() float64 {
	return w.hitRadius
}

// Pool 返回目标对象池
func (w *World) Pool() *TargetPool {
	return w.pool
}

// Index 返回空间索引
func (w *World) Index() *SpatialIndex {
	return w.index
}

// Add 将新投放的目标纳入世界并登记空间索引
func (w *World) Add(t *Target) {
	if t == nil {
		return
	}
	w.Targets = append(w.Targets, t)
	w.index.Insert(t)
}

// Count 返回活动目标数量
func (w *World) Count() int {
	return len(w.Targets)
}

// RetireAt 让第 i 个目标退场：移出索引、交换删除、归还对象池
// 交换删除会把末尾目标移到位置 i，倒序或带回退的遍历需自行处理
func (w *World) RetireAt(i int) {
	if i < 0 || i >= len(w.Targets) {
		return
	}
	t := w.Targets[i]
	w.index.Remove(t)

	last := len(w.Targets) - 1
	w.Targets[i] = w.Targets[last]
	w.Targets[last] = nil
	w.Targets = w.Targets[:last]

	w.pool.Release(t)
}

// Reset 同步清空全部活动目标、对象池与空间索引
// 回合结束或切出对局场景时调用，之后世界可立即复用
func (w *World) Reset() {
	for i := range w.Targets {
		w.Targets[i] = nil
	}
	w.Targets = w.Targets[:0]
	w.pool.Clear()
	w.index.Reset(w.index.CellSize())
}
