// handsim 模拟一个手部追踪数据源
//
// 它以 websocket 客户端身份连上游戏的 /hand 监听端口，完成
// hello/welcome 握手后按服务端建议的频率推送归一化手掌位置：
// 手掌沿圆形轨迹扫动，每隔固定时间捏合一次。用于在没有真实
// 摄像头追踪程序的环境里联调手部输入链路。
//
// 用法：
//
//	go run ./cmd/handsim --addr 127.0.0.1:8765
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gonewx/skywhack/internal/handproto"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8765", "游戏手部追踪监听地址")
	name := flag.String("name", "handsim", "握手时上报的来源名")
	radius := flag.Float64("radius", 0.3, "扫动圆半径（归一化，0~0.5）")
	sweepSeconds := flag.Float64("sweep", 4.0, "扫完一圈的时长（秒）")
	pinchEvery := flag.Float64("pinch-every", 1.5, "捏合间隔（秒）")
	pinchHold := flag.Float64("pinch-hold", 0.2, "捏合保持时长（秒）")
	flag.Parse()

	if *radius < 0 || *radius > 0.5 {
		fmt.Fprintf(os.Stderr, "radius 必须在 0~0.5 之间，当前为 %v\n", *radius)
		os.Exit(1)
	}

	url := fmt.Sprintf("ws://%s/hand", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "连接 %s 失败: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	welcome, err := handshake(conn, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "握手失败: %v\n", err)
		os.Exit(1)
	}
	hz := welcome.InputHz
	if hz <= 0 {
		hz = handproto.DefaultInputHz
	}
	log.Printf("[handsim] 已连接 %s（game=%s v=%d），推送频率 %d Hz", url, welcome.Game, welcome.V, hz)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	start := time.Now()
	var pinchTimer float64
	pinching := false
	interval := 1.0 / float64(hz)

	for {
		select {
		case <-interrupt:
			log.Printf("[handsim] 收到中断，断开连接")
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		case <-ticker.C:
			elapsed := time.Since(start).Seconds()

			// 圆形扫动轨迹，圆心在画面中央
			angle := 2 * math.Pi * elapsed / *sweepSeconds
			sample := handproto.Input{
				X: 0.5 + *radius*math.Cos(angle),
				Y: 0.5 + *radius*math.Sin(angle),
			}

			// 周期性捏合：到点捏住，保持一小段后松开
			pinchTimer += interval
			if pinching {
				sample.Pinch = true
				if pinchTimer >= *pinchHold {
					pinching = false
					pinchTimer = 0
				}
			} else if pinchTimer >= *pinchEvery {
				pinching = true
				pinchTimer = 0
				sample.Pinch = true
				log.Printf("[handsim] 捏合 @ (%.2f, %.2f)", sample.X, sample.Y)
			}

			frame, err := handproto.Encode(handproto.MsgInput, sample)
			if err != nil {
				log.Printf("[handsim] 编码失败: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				fmt.Fprintf(os.Stderr, "推送中断: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

// handshake 发送 hello 并等待 welcome
func handshake(conn *websocket.Conn, name string) (handproto.Welcome, error) {
	hello, err := handproto.Encode(handproto.MsgHello, handproto.Hello{
		V:    handproto.Version,
		Name: name,
	})
	if err != nil {
		return handproto.Welcome{}, err
	}
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return handproto.Welcome{}, fmt.Errorf("发送 hello: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return handproto.Welcome{}, fmt.Errorf("等待 welcome: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	env, err := handproto.DecodeEnvelope(raw)
	if err != nil {
		return handproto.Welcome{}, err
	}
	if env.T != handproto.MsgWelcome {
		return handproto.Welcome{}, fmt.Errorf("期望 welcome，收到 %q", env.T)
	}
	return handproto.DecodePayload[handproto.Welcome](env)
}
