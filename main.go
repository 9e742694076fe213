package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/skywhack/pkg/app"
	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "输出详细日志")
	player := flag.String("player", "", "预设玩家名（跳过主菜单输入）")
	handListen := flag.String("hand-listen", "", "手部追踪数据源监听地址，留空使用设置中保存的地址")
	noHand := flag.Bool("no-hand", false, "禁用手部追踪监听")
	recordEndpoint := flag.String("record-endpoint", "", "回合成绩上报端点 URL，留空则不上报")
	fullscreen := flag.Bool("fullscreen", false, "启动时全屏")
	flag.Parse()

	// 嵌入配置必须在任何加载动作之前初始化
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		PlayerName:     *player,
		HandListen:     *handListen,
		NoHand:         *noHand,
		RecordEndpoint: *recordEndpoint,
		Fullscreen:     *fullscreen,
	})
	// 非 verbose 模式下 log 输出已被丢弃，致命错误直接写 stderr
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Skywhack")

	if err := ebiten.RunGame(gameApp); err != nil {
		gameApp.Close()
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", err)
		os.Exit(1)
	}
	gameApp.Close()
}
