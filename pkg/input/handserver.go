package input

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gonewx/skywhack/internal/handproto"
)

const (
	// feedPath 追踪进程连接的 WebSocket 路径
	feedPath = "/hand"

	// feedEventBuffer 样本通道容量；满了丢最旧的，流是有损的
	feedEventBuffer = 64

	feedReadLimit    = 1 << 20
	feedReadTimeout  = 60 * time.Second
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 25 * time.Second
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 局域网开发工具，放开所有来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed 手部追踪数据的 WebSocket 监听端
//
// 追踪进程拨入 ws://<addr>/hand，先发 hello 协商协议版本，收到
// welcome 后开始以固定频率推送手掌样本。样本进入带缓冲的事件
// 通道，由帧循环里的 HandSource 清空；通道满时丢最旧的样本，
// 迟到的数据没有价值。
type Feed struct {
	addr     string
	events   chan handproto.Input
	server   *http.Server
	listener net.Listener
	trackers atomic.Int32
}

// NewFeed 创建监听 addr 的手部追踪数据源
func NewFeed(addr string) *Feed {
	f := &Feed{
		addr:   addr,
		events: make(chan handproto.Input, feedEventBuffer),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(feedPath, f.handle)
	f.server = &http.Server{Handler: mux}

	return f
}

// Listen 绑定端口并在后台开始接受连接
// 端口被占用等绑定错误同步返回
func (f *Feed) Listen() error {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return fmt.Errorf("hand feed listen %s: %w", f.addr, err)
	}
	f.listener = ln

	go func() {
		if err := f.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[HandFeed] Server stopped: %v", err)
		}
	}()

	log.Printf("[HandFeed] Listening on ws://%s%s", ln.Addr(), feedPath)
	return nil
}

// Addr 返回实际监听地址（Listen 后有效，端口 0 时为分到的端口）
func (f *Feed) Addr() string {
	if f.listener != nil {
		return f.listener.Addr().String()
	}
	return f.addr
}

// Events 返回样本通道，交给 HandSource 消费
func (f *Feed) Events() <-chan handproto.Input {
	return f.events
}

// Connected 是否有追踪进程在线
// 菜单用它决定手部追踪模式能不能打开
func (f *Feed) Connected() bool {
	return f.trackers.Load() > 0
}

// Close 停止监听并断开所有追踪连接
func (f *Feed) Close() error {
	if f.listener == nil {
		return nil
	}
	return f.server.Close()
}

// handle 处理一条追踪连接的完整生命周期
func (f *Feed) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandFeed] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))
		return nil
	})

	// 第一条消息必须是 hello，版本对不上直接拒绝
	name, ok := f.expectHello(conn)
	if !ok {
		return
	}

	if err := f.sendWelcome(conn); err != nil {
		log.Printf("[HandFeed] Failed to send welcome to %s: %v", name, err)
		return
	}

	f.trackers.Add(1)
	defer f.trackers.Add(-1)
	log.Printf("[HandFeed] Tracker connected: %s", name)

	// Ping 循环保活，追踪端的 pong 会刷新读超时
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(feedPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[HandFeed] Tracker disconnected: %s (%v)", name, err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))

		env, err := handproto.DecodeEnvelope(payload)
		if err != nil {
			log.Printf("[HandFeed] Discarding malformed message from %s: %v", name, err)
			continue
		}

		switch env.T {
		case handproto.MsgInput:
			sample, err := handproto.DecodePayload[handproto.Input](env)
			if err != nil {
				log.Printf("[HandFeed] Discarding bad input payload from %s: %v", name, err)
				continue
			}
			f.push(sample)
		case handproto.MsgHello:
			// 重复的 hello 无害，忽略
		default:
			log.Printf("[HandFeed] Unknown message type %q from %s", env.T, name)
		}
	}
}

// expectHello 读取并校验开场握手，返回追踪端自报的名字
func (f *Feed) expectHello(conn *websocket.Conn) (string, bool) {
	_, payload, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[HandFeed] Connection closed before hello: %v", err)
		return "", false
	}

	env, err := handproto.DecodeEnvelope(payload)
	if err != nil || env.T != handproto.MsgHello {
		log.Printf("[HandFeed] Expected hello, got %q", env.T)
		f.rejectConn(conn, "expected hello")
		return "", false
	}

	hello, err := handproto.DecodePayload[handproto.Hello](env)
	if err != nil {
		log.Printf("[HandFeed] Bad hello payload: %v", err)
		f.rejectConn(conn, "bad hello payload")
		return "", false
	}

	if hello.V != handproto.Version {
		log.Printf("[HandFeed] Protocol version mismatch: tracker %d, game %d", hello.V, handproto.Version)
		f.rejectConn(conn, "protocol version mismatch")
		return "", false
	}

	name := hello.Name
	if name == "" {
		name = "tracker"
	}
	return name, true
}

// rejectConn 发送关闭帧并结束握手失败的连接
func (f *Feed) rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	_ = conn.WriteMessage(websocket.CloseMessage, message)
}

// sendWelcome 回复握手
func (f *Feed) sendWelcome(conn *websocket.Conn) error {
	data, err := handproto.Encode(handproto.MsgWelcome, handproto.Welcome{
		V:       handproto.Version,
		Game:    "skywhack",
		InputHz: handproto.DefaultInputHz,
	})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// push 把样本放进事件通道，满了丢最旧的
func (f *Feed) push(sample handproto.Input) {
	select {
	case f.events <- sample:
	default:
		select {
		case <-f.events:
		default:
		}
		select {
		case f.events <- sample:
		default:
		}
	}
}
