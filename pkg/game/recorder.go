package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// 会话输入方式，写入上报记录
const (
	SessionKindMouse = "mouse"
	SessionKindHand  = "hand"
)

// RoundRecord 一场回合的完整成绩，用于上报远端记录服务
// 字段结构同时驱动 cmd/schemagen 生成的 JSON Schema
type RoundRecord struct {
	SessionKind     string      `json:"sessionKind" jsonschema:"title=Session kind,description=Input method used for the round: mouse or hand"`
	Player          string      `json:"player" jsonschema:"title=Player,description=Name of the player who finished the round"`
	Score           int         `json:"score" jsonschema:"title=Score,description=Total score derived from the hit history"`
	Hits            int         `json:"hits" jsonschema:"title=Hits,description=Number of registered hits"`
	History         []HitRecord `json:"history" jsonschema:"title=History,description=Every registered hit in chronological order"`
	DurationSeconds int         `json:"durationSeconds" jsonschema:"title=Duration,description=Configured round length in seconds"`
	FinishedAtMs    int64       `json:"finishedAtMs" jsonschema:"title=FinishedAt,description=Round end time in Unix milliseconds"`
}

// RecordOutcome 一次上报的结局
type RecordOutcome struct {
	Player string // 上报的玩家名
	Score  int    // 上报的分数
	Err    error  // 失败原因，nil 表示成功
}

// RoundRecorder 回合成绩上报接口
// Record 不得阻塞调用方：回合结束发生在游戏循环里
type RoundRecorder interface {
	Record(rec RoundRecord)
}

// NopRecorder 丢弃所有成绩的空实现
// 未配置上报端点时使用
type NopRecorder struct{}

// Record 直接丢弃成绩
func (NopRecorder) Record(RoundRecord) {}

// recordTimeout 单次上报的整体超时
const recordTimeout = 5 * time.Second

// HTTPRecorder 把回合成绩 POST 到远端记录服务
// 发射后不管：Record 立即返回，上报在后台进行，
// 结局通过 Results 通道回流给关心的人（比如场景里的提示条）
type HTTPRecorder struct {
	endpoint string
	client   *http.Client
	results  chan RecordOutcome
}

// NewHTTPRecorder 创建指向 endpoint 的上报器
//
// 参数：
//   - endpoint: 接收 POST 的完整 URL（如 "http://127.0.0.1:9090/rounds"）
func NewHTTPRecorder(endpoint string) *HTTPRecorder {
	return &HTTPRecorder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: recordTimeout},
		results:  make(chan RecordOutcome, 8),
	}
}

// Record 异步上报一场回合成绩并立即返回
func (r *HTTPRecorder) Record(rec RoundRecord) {
	go r.post(rec)
}

// Results 返回上报结局通道
// 通道带缓冲；无人消费时新结局会被丢弃而不是阻塞上报
func (r *HTTPRecorder) Results() <-chan RecordOutcome {
	return r.results
}

// post 执行实际的 HTTP 上报
func (r *HTTPRecorder) post(rec RoundRecord) {
	outcome := RecordOutcome{Player: rec.Player, Score: rec.Score}

	body, err := json.Marshal(rec)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to marshal round record: %w", err)
		r.deliver(outcome)
		return
	}

	resp, err := r.client.Post(r.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		outcome.Err = fmt.Errorf("failed to post round record: %w", err)
		r.deliver(outcome)
		return
	}
	defer resp.Body.Close()

	// 读完响应体以便复用连接
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome.Err = fmt.Errorf("record endpoint returned %s", resp.Status)
	}
	r.deliver(outcome)
}

// deliver 非阻塞投递结局
func (r *HTTPRecorder) deliver(outcome RecordOutcome) {
	select {
	case r.results <- outcome:
	default:
		log.Printf("[Recorder] Results channel full, dropping outcome for %s", outcome.Player)
	}
}
