package world

import "testing"

func newIndexedTarget(idx *SpatialIndex, x, y float64) *Target {
	t := &Target{X: x, Y: y, Status: StatusFlying}
	idx.Insert(t)
	return t
}

func containsTarget(list []*Target, t *Target) bool {
	for _, c := range list {
		if c == t {
			return true
		}
	}
	return false
}

func TestSpatialIndexInsertAndQuery(t *testing.T) {
	idx := NewSpatialIndex(64)

	a := newIndexedTarget(idx, 10, 10)
	b := newIndexedTarget(idx, 200, 200)

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}

	got := idx.QueryNeighbors(10, 10, nil)
	if !containsTarget(got, a) {
		t.Error("query near a should contain a")
	}
	if containsTarget(got, b) {
		t.Error("query near a should not contain distant b")
	}
}

func TestSpatialIndexSameCellKeepsBothEntries(t *testing.T) {
	idx := NewSpatialIndex(64)

	a := newIndexedTarget(idx, 10, 10)
	b := newIndexedTarget(idx, 12, 11)

	if a.cell != b.cell {
		t.Fatalf("targets should share a cell, got %v and %v", a.cell, b.cell)
	}

	got := idx.QueryNeighbors(11, 11, nil)
	if !containsTarget(got, a) || !containsTarget(got, b) {
		t.Errorf("query should return both co-located targets, got %d entries", len(got))
	}
}

func TestSpatialIndexQueryCoversNeighborCells(t *testing.T) {
	idx := NewSpatialIndex(64)

	// 命中点在格 (1,1)，候选必须覆盖全部八邻域
	center := newIndexedTarget(idx, 96, 96)
	left := newIndexedTarget(idx, 32, 96)    // 格 (0,1)
	topRight := newIndexedTarget(idx, 160, 32) // 格 (2,0)
	far := newIndexedTarget(idx, 400, 400)   // 格 (6,6)，不应出现

	got := idx.QueryNeighbors(96, 96, nil)
	for _, want := range []*Target{center, left, topRight} {
		if !containsTarget(got, want) {
			t.Errorf("query should contain target at (%v,%v)", want.X, want.Y)
		}
	}
	if containsTarget(got, far) {
		t.Error("query should not contain target outside the 3x3 block")
	}
}

func TestSpatialIndexUpdateMovesBetweenCells(t *testing.T) {
	idx := NewSpatialIndex(64)
	a := newIndexedTarget(idx, 10, 10)
	oldCell := a.cell

	// 小位移不换格
	a.X, a.Y = 20, 20
	idx.Update(a)
	if a.cell != oldCell {
		t.Error("small move should not change cell")
	}

	// 大位移换格
	a.X, a.Y = 200, 10
	idx.Update(a)
	if a.cell == oldCell {
		t.Error("large move should change cell")
	}

	got := idx.QueryNeighbors(10, 10, nil)
	if containsTarget(got, a) {
		t.Error("old neighborhood should no longer contain the moved target")
	}
	got = idx.QueryNeighbors(200, 10, nil)
	if !containsTarget(got, a) {
		t.Error("new neighborhood should contain the moved target")
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestSpatialIndexRemove(t *testing.T) {
	idx := NewSpatialIndex(64)
	a := newIndexedTarget(idx, 10, 10)
	b := newIndexedTarget(idx, 12, 12)

	idx.Remove(a)
	if idx.Len() != 1 {
		t.Errorf("Len() after remove = %d, want 1", idx.Len())
	}
	got := idx.QueryNeighbors(10, 10, nil)
	if containsTarget(got, a) {
		t.Error("removed target should not be returned")
	}
	if !containsTarget(got, b) {
		t.Error("co-located survivor should still be returned")
	}

	// 重复移除为空操作
	idx.Remove(a)
	if idx.Len() != 1 {
		t.Errorf("Len() after double remove = %d, want 1", idx.Len())
	}
}

func TestSpatialIndexResetHealsStaleBookkeeping(t *testing.T) {
	idx := NewSpatialIndex(64)
	a := newIndexedTarget(idx, 10, 10)

	idx.Reset(128)
	if idx.Len() != 0 {
		t.Fatalf("Len() after reset = %d, want 0", idx.Len())
	}

	// Reset 后重插带过期簿记的目标不得破坏计数
	idx.Insert(a)
	if idx.Len() != 1 {
		t.Errorf("Len() after re-insert = %d, want 1", idx.Len())
	}
	if got := idx.QueryNeighbors(10, 10, nil); !containsTarget(got, a) {
		t.Error("re-inserted target should be queryable")
	}
}

func TestSpatialIndexZeroCellSizeIsInert(t *testing.T) {
	idx := NewSpatialIndex(0)
	a := &Target{X: 10, Y: 10}
	idx.Insert(a)
	if idx.Len() != 0 {
		t.Errorf("insert with zero cell size should be a no-op, Len() = %d", idx.Len())
	}
	if got := idx.QueryNeighbors(10, 10, nil); len(got) != 0 {
		t.Errorf("query with zero cell size should be empty, got %d", len(got))
	}
}

func TestSpatialIndexQueryAppendsToBuffer(t *testing.T) {
	idx := NewSpatialIndex(64)
	a := newIndexedTarget(idx, 10, 10)

	buf := make([]*Target, 0, 8)
	got := idx.QueryNeighbors(10, 10, buf)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected single candidate, got %d", len(got))
	}
	// 复用同一底层数组
	got2 := idx.QueryNeighbors(10, 10, got[:0])
	if len(got2) != 1 || got2[0] != a {
		t.Fatalf("reused buffer query failed, got %d", len(got2))
	}
}
