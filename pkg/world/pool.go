package world

// TargetPool 退场目标的复用池
// 回合中高频生成/退场时避免反复分配。池只负责存取，
// 字段重置由投放目标的工厂完成。
type TargetPool struct {
	free []*Target
}

// NewTargetPool 创建空的对象池
func NewTargetPool() *TargetPool {
	return &TargetPool{}
}

// Acquire 从池中取出一个可复用实例
// 池为空时返回 (nil, false)，由调用方自行分配新实例
func (p *TargetPool) Acquire() (*Target, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	t := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return t, true
}

// Release 将退场目标放回池中
func (p *TargetPool) Release(t *Target) {
	if t == nil {
		return
	}
	p.free = append(p.free, t)
}

// Len 返回池中可复用实例的数量
func (p *TargetPool) Len() int {
	return len(p.free)
}

// Clear 清空池并释放对实例的引用
func (p *TargetPool) Clear() {
	p.free = nil
}
