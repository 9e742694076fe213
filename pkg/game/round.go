package game

// RoundPhase 回合所处的阶段
type RoundPhase int

const (
	// PhaseCountdown 开场倒计时，目标不生成、命中不判定
	PhaseCountdown RoundPhase = iota
	// PhaseRunning 回合进行中
	PhaseRunning
	// PhaseOver 回合结束，模拟冻结，展示结算
	PhaseOver
)

// HitRecord 一次命中的历史记录
// 得分不单独计数，始终由命中历史累加得出
type HitRecord struct {
	Species     string `json:"species" yaml:"species"`
	Points      int    `json:"points" yaml:"points"`
	TimestampMs int64  `json:"timestampMs" yaml:"timestampMs"`
}

// Round 一个回合的进行状态与命中历史
type Round struct {
	phase           RoundPhase
	durationSeconds int
	remaining       int
	elapsed         float64
	secondTimer     float64
	history         []HitRecord
}

// NewRound 创建处于倒计时阶段的新回合
// durationSeconds 为运行阶段的总时长（秒）
func NewRound(durationSeconds int) *Round {
	if durationSeconds <= 0 {
		durationSeconds = 1
	}
	return &Round{
		phase:           PhaseCountdown,
		durationSeconds: durationSeconds,
		remaining:       durationSeconds,
	}
}

// Phase 返回当前阶段
func (r *Round) Phase() RoundPhase {
	return r.phase
}

// Running 返回回合是否处于运行阶段
func (r *Round) Running() bool {
	return r.phase == PhaseRunning
}

// Start 结束倒计时，进入运行阶段
// 仅在倒计时阶段有效
func (r *Round) Start() {
	if r.phase != PhaseCountdown {
		return
	}
	r.phase = PhaseRunning
}

// Tick 推进回合计时
// 运行阶段内每累计满一秒扣减一次剩余时间；剩余时间归零时
// 切换到结束阶段并返回 true（仅在切换那一帧返回 true）
func (r *Round) Tick(deltaTime float64) bool {
	if r.phase != PhaseRunning {
		return false
	}
	r.elapsed += deltaTime
	r.secondTimer += deltaTime
	for r.secondTimer >= 1.0 && r.remaining > 0 {
		r.secondTimer -= 1.0
		r.remaining--
	}
	if r.remaining <= 0 {
		r.phase = PhaseOver
		return true
	}
	return false
}

// Remaining 返回剩余整秒数
func (r *Round) Remaining() int {
	return r.remaining
}

// DurationSeconds 返回回合配置时长
func (r *Round) DurationSeconds() int {
	return r.durationSeconds
}

// Elapsed 返回运行阶段的累计时间（秒）
// 生成节奏与速度爬坡以此为输入
func (r *Round) Elapsed() float64 {
	return r.elapsed
}

// RecordHit 追加一条命中记录
// 仅运行阶段接受记录，其余阶段丢弃
func (r *Round) RecordHit(species string, points int, timestampMs int64) {
	if r.phase != PhaseRunning {
		return
	}
	r.history = append(r.history, HitRecord{
		Species:     species,
		Points:      points,
		TimestampMs: timestampMs,
	})
}

// Score 返回当前得分（命中历史分值之和）
func (r *Round) Score() int {
	total := 0
	for i := range r.history {
		total += r.history[i].Points
	}
	return total
}

// Hits 返回命中次数
func (r *Round) Hits() int {
	return len(r.history)
}

// History 返回命中历史（只读视图，调用方不得修改）
func (r *Round) History() []HitRecord {
	return r.history
}
