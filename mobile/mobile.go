//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前先把项目
// 根目录的 data/ 复制到本目录（embed 指令只能嵌入包目录
// 及其子目录的文件）：
//
//	cp -r data mobile/
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.skywhack -o build/android/skywhack.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Skywhack.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/skywhack/pkg/app"
	"github.com/gonewx/skywhack/pkg/embedded"
)

func init() {
	// 初始化嵌入配置
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 创建游戏应用。移动端没有命令行参数，
	// 玩家名在主菜单输入，触摸输入走与鼠标相同的指针来源
	cfg := app.Config{
		Verbose: true, // 便于真机调试
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
