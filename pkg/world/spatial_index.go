package world

import "math"

// CellKey 均匀网格中一个格子的坐标
type CellKey struct {
	X int
	Y int
}

// SpatialIndex 基于均匀网格的空间索引
// 每个目标按中心点归属到恰好一个格子，命中判定只需扫描
// 命中点所在格子及其八邻域。格边长取 2 倍命中半径时，
// 3×3 邻域必然完整覆盖判定圆。
type SpatialIndex struct {
	cellSize    float64
	invCellSize float64
	cells       map[CellKey][]*Target
	count       int
}

// NewSpatialIndex 创建空间索引，cellSize 为格边长（像素）
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	idx := &SpatialIndex{
		cells: make(map[CellKey][]*Target),
	}
	idx.setCellSize(cellSize)
	return idx
}

func (idx *SpatialIndex) setCellSize(cellSize float64) {
	idx.cellSize = cellSize
	if cellSize > 0 {
		idx.invCellSize = 1.0 / cellSize
	} else {
		idx.invCellSize = 0
	}
}

// CellSize 返回当前格边长
func (idx *SpatialIndex) CellSize() float64 {
	return idx.cellSize
}

// Len 返回索引中的目标数量
func (idx *SpatialIndex) Len() int {
	return idx.count
}

// KeyFor 返回坐标 (x, y) 归属的格子
func (idx *SpatialIndex) KeyFor(x, y float64) CellKey {
	return CellKey{
		X: int(math.Floor(x * idx.invCellSize)),
		Y: int(math.Floor(y * idx.invCellSize)),
	}
}

// Insert 将目标按其当前位置加入索引
// 已在索引中的目标会先被移除，等价于强制重新归格
func (idx *SpatialIndex) Insert(t *Target) {
	if t == nil || idx.cellSize <= 0 {
		return
	}
	if t.inCell {
		idx.Remove(t)
	}
	key := idx.KeyFor(t.X, t.Y)
	idx.cells[key] = append(idx.cells[key], t)
	t.cell = key
	t.inCell = true
	idx.count++
}

// Update 在目标移动后刷新其格子归属
// 格子未变化时不做任何桶操作
func (idx *SpatialIndex) Update(t *Target) {
	if t == nil || !t.inCell || idx.cellSize <= 0 {
		return
	}
	key := idx.KeyFor(t.X, t.Y)
	if key == t.cell {
		return
	}
	if !idx.removeFromCell(t) {
		t.inCell = false
		return
	}
	idx.cells[key] = append(idx.cells[key], t)
	t.cell = key
}

// Remove 将目标从索引中移除，未入索引时为空操作
func (idx *SpatialIndex) Remove(t *Target) {
	if t == nil || !t.inCell {
		return
	}
	if idx.removeFromCell(t) {
		idx.count--
	}
	t.inCell = false
}

// removeFromCell 从目标当前格子的桶中交换移除该目标
// 返回是否确实找到了该目标（Reset 之后簿记可能过期）
func (idx *SpatialIndex) removeFromCell(t *Target) bool {
	bucket := idx.cells[t.cell]
	found := false
	for i := range bucket {
		if bucket[i] != t {
			continue
		}
		bucket[i] = bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		found = true
		break
	}
	if !found {
		return false
	}
	if len(bucket) == 0 {
		delete(idx.cells, t.cell)
	} else {
		idx.cells[t.cell] = bucket
	}
	return true
}

// QueryNeighbors 将 (x, y) 所在格子及其八邻域内的全部目标追加到 buf
// 返回追加后的切片。结果是候选集，精确的圆形判定由调用方完成。
func (idx *SpatialIndex) QueryNeighbors(x, y float64, buf []*Target) []*Target {
	if idx.cellSize <= 0 {
		return buf
	}
	center := idx.KeyFor(x, y)
	for row := center.Y - 1; row <= center.Y+1; row++ {
		for col := center.X - 1; col <= center.X+1; col++ {
			buf = append(buf, idx.cells[CellKey{X: col, Y: row}]...)
		}
	}
	return buf
}

// Reset 清空全部格子并重设格边长
// 场地尺寸变化导致格边长变化时，调用方负责重新插入所有目标
func (idx *SpatialIndex) Reset(cellSize float64) {
	idx.cells = make(map[CellKey][]*Target)
	idx.count = 0
	idx.setCellSize(cellSize)
}
