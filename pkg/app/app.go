// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/embedded"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/input"
	"github.com/gonewx/skywhack/pkg/scenes"
	"github.com/gonewx/skywhack/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// PlayerName 预设玩家名，为空则从设置恢复或在主菜单输入
	PlayerName string
	// HandListen 手部追踪数据源的监听地址，为空则使用设置中保存的地址
	HandListen string
	// NoHand 完全禁用手部追踪监听
	NoHand bool
	// RecordEndpoint 回合成绩上报端点 URL，为空则不上报
	RecordEndpoint string
	// Fullscreen 启动时进入全屏
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	feed                     *input.Feed
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 创建资源管理器并加载嵌入的资源配置
	resourceManager := game.NewResourceManager(audioContext)
	configData, err := embedded.ReadFile("data/resources.yaml")
	if err != nil {
		return nil, fmt.Errorf("资源配置读取失败: %w", err)
	}
	if err := resourceManager.LoadResourceConfigData(configData); err != nil {
		return nil, fmt.Errorf("资源配置解析失败: %w", err)
	}

	// 预加载资源组。美术与音频文件缺失不是致命错误：
	// 贴图未就绪的目标会被渲染系统跳过，缺失的音效静默不播
	for _, group := range []string{"menu", "game"} {
		missing, err := resourceManager.LoadResourceGroup(group)
		if err != nil {
			return nil, fmt.Errorf("资源组 %s 加载失败: %w", group, err)
		}
		if missing > 0 {
			log.Printf("[App] 资源组 %s 缺失 %d 项资源，跳过后继续", group, missing)
		}
	}

	gameState := game.GetGameState()

	// 生成节奏参数，解析失败时回落到内置默认值
	if tuningData, err := embedded.ReadFile("data/spawn_tuning.yaml"); err != nil {
		log.Printf("[App] 生成节奏配置缺失，使用内置默认值: %v", err)
	} else if tuning, terr := config.ParseSpawnTuning(tuningData); terr != nil {
		log.Printf("[App] 生成节奏配置解析失败，使用内置默认值: %v", terr)
	} else {
		gameState.SetSpawnTuning(tuning)
	}

	// 本地持久化：设置 + 成绩档案。存储不可用时两个管理器
	// 均降级为仅内存模式，游戏照常运行
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] 存储目录准备失败: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: "skywhack"})
	if err != nil {
		log.Printf("[App] 本地存储不可用，设置与成绩档案不会保存: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	gameState.SetSettingsManager(settingsManager)

	saveManager, err := game.NewSaveManager(gdataManager)
	if err != nil {
		log.Printf("[App] 成绩名册加载失败，从空档案继续: %v", err)
	}
	gameState.SetSaveManager(saveManager)

	// 初始化音频管理器
	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	gameState.SetAudioManager(audioManager)

	// 命令行预设的玩家名覆盖设置中恢复的玩家名
	if name := strings.TrimSpace(cfg.PlayerName); name != "" {
		if err := game.ValidatePlayerName(name); err != nil {
			log.Printf("[App] 忽略非法的预设玩家名 %q: %v", cfg.PlayerName, err)
		} else {
			gameState.PlayerName = name
			settingsManager.SetPlayerName(name)
			if err := settingsManager.Save(); err != nil {
				log.Printf("[App] 玩家名保存失败: %v", err)
			}
		}
	}

	// 手部追踪数据源监听器。监听失败只影响手部模式，
	// 鼠标输入不受影响
	var feed *input.Feed
	if !cfg.NoHand {
		addr := cfg.HandListen
		if addr == "" {
			addr = settingsManager.GetSettings().HandListenAddr
		}
		feed = input.NewFeed(addr)
		if err := feed.Listen(); err != nil {
			log.Printf("[App] 手部追踪监听启动失败，本次仅鼠标输入: %v", err)
			feed = nil
		}
	}

	// 指针来源：鼠标始终可用，手部来源仅在监听器就绪时创建
	var hand input.Source
	if feed != nil {
		hand = input.NewHandSource(feed.Events(), func() (w, h float64) {
			return float64(config.GameWindowWidth), float64(config.GameWindowHeight)
		})
	}
	pointer := input.NewSelector(input.NewMouseSource(), hand)

	// 成绩上报：未配置端点时使用空实现
	var recorder game.RoundRecorder = game.NopRecorder{}
	if cfg.RecordEndpoint != "" {
		recorder = game.NewHTTPRecorder(cfg.RecordEndpoint)
		log.Printf("[App] 回合成绩将上报至 %s", cfg.RecordEndpoint)
	}

	// 启动时的全屏状态：命令行参数或上次保存的设置
	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器并进入主菜单
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewMenuScene(resourceManager, sceneManager, pointer, feed, recorder))

	return &App{
		sceneManager: sceneManager,
		feed:         feed,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		// 记住全屏偏好
		if sm := game.GetGameState().GetSettingsManager(); sm != nil {
			sm.SetFullscreen(!isFullscreen)
			if err := sm.Save(); err != nil {
				log.Printf("[App] 全屏设置保存失败: %v", err)
			}
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 释放应用持有的后台资源
// 目前只有手部追踪监听器需要显式关闭
func (a *App) Close() error {
	if a.feed != nil {
		return a.feed.Close()
	}
	return nil
}
