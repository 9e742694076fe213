package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/input"
	"github.com/gonewx/skywhack/pkg/systems"
)

// 菜单布局
const (
	menuTitleY      = 150.0
	menuPlayerY     = 320.0
	menuInputModeY  = 400.0
	menuStartY      = 480.0
	menuStartWidth  = 260.0
	menuStartHeight = 64.0
	menuHintSeconds = 2.5
	maxNameRunes    = 20
)

// MenuScene 主菜单场景
//
// 渲染循环的空闲态：背景与光标化身每帧照常绘制。展示玩家身份、
// 历史最高分和输入方式，开始按钮在玩家身份就绪前不可用。
// 没有身份时键盘输入直接进入取名框，回车确认。
type MenuScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	pointer         *input.Selector
	feed            *input.Feed // 可为 nil（未开启手部追踪监听）
	recorder        game.RoundRecorder

	cursor     *systems.CursorSystem
	background *ebiten.Image
	titleFont  *text.GoTextFace
	font       *text.GoTextFace
	smallFont  *text.GoTextFace
	startImage *ebiten.Image

	nameBuffer    string  // 取名框里键入中的内容
	nameError     string  // 取名校验失败的提示
	statusHint    string  // 瞬时状态提示（如追踪器未连接）
	statusLeft    float64 // 状态提示剩余显示时间
	musicStarted  bool
	autoHandTried bool // 启动时按设置自动切手部模式，只试一次
}

// NewMenuScene 创建主菜单场景
//
// 参数：
//   - rm: 资源管理器
//   - sm: 场景管理器，开始对局时切换场景
//   - pointer: 指针来源选择器（鼠标/手部追踪）
//   - feed: 手部追踪监听端，未启用时传 nil
//   - recorder: 回合成绩上报器，传给对局场景
func NewMenuScene(rm *game.ResourceManager, sm *game.SceneManager, pointer *input.Selector, feed *input.Feed, recorder game.RoundRecorder) *MenuScene {
	if recorder == nil {
		recorder = game.NopRecorder{}
	}
	scene := &MenuScene{
		resourceManager: rm,
		sceneManager:    sm,
		pointer:         pointer,
		feed:            feed,
		recorder:        recorder,
		cursor:          systems.NewCursorSystem(rm.Sheets()),
		background:      rm.GetImageByID(game.ImageIDMenuBackground),
		titleFont:       rm.GetFontByID(game.FontIDMain, 72),
		font:            rm.GetFontByID(game.FontIDMain, 28),
		smallFont:       rm.GetFontByID(game.FontIDMain, 20),
	}
	if scene.background == nil {
		log.Printf("[MenuScene] Menu background missing, falling back to solid color")
	}
	return scene
}

// Update 推进菜单逻辑
func (s *MenuScene) Update(deltaTime float64) {
	gs := game.GetGameState()

	s.ensureMusic(gs)
	s.autoEnableHandMode(gs)
	s.handleNameEntry(gs)

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.toggleHandMode(gs)
	}

	p := s.pointer.Poll(deltaTime)
	s.cursor.SetPosition(p.X, p.Y)
	s.cursor.Update(deltaTime)

	if s.statusLeft > 0 {
		s.statusLeft -= deltaTime
		if s.statusLeft <= 0 {
			s.statusHint = ""
		}
	}

	if p.Triggered {
		s.cursor.TriggerWhack()
		if s.startBounds().contains(p.X, p.Y) {
			s.startRound(gs)
		}
	}

	// 已有身份时回车直接开局；没有身份时回车归取名框
	if gs.PlayerName != "" && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.startRound(gs)
	}
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	drawBackdrop(screen, s.background, color.RGBA{R: 34, G: 52, B: 94, A: 255})

	gs := game.GetGameState()

	drawLabelCentered(screen, "SKYWHACK", config.GameWindowWidth/2, menuTitleY, color.White, s.titleFont)

	s.drawPlayerBlock(screen, gs)
	s.drawInputModeBlock(screen)
	s.drawStartButton(screen, gs)

	if gs.LastScore > 0 || gs.LastWasBest {
		last := fmt.Sprintf("Last round: %d", gs.LastScore)
		if gs.LastWasBest {
			last += "  NEW BEST!"
		}
		drawLabelCentered(screen, last, config.GameWindowWidth/2, menuStartY+menuStartHeight+36,
			color.RGBA{R: 255, G: 230, B: 120, A: 255}, s.smallFont)
	}

	if s.statusHint != "" {
		drawLabelCentered(screen, s.statusHint, config.GameWindowWidth/2, config.GameWindowHeight-64,
			color.RGBA{R: 255, G: 160, B: 120, A: 255}, s.smallFont)
	}

	// 化身永远压在一切之上
	s.cursor.Draw(screen)
}

// ensureMusic 开始播放菜单音乐（只触发一次）
func (s *MenuScene) ensureMusic(gs *game.GameState) {
	if s.musicStarted {
		return
	}
	s.musicStarted = true
	if am := gs.GetAudioManager(); am != nil {
		am.PlayMusic(game.MusicIDMenu)
	}
}

// autoEnableHandMode 追踪器上线后按持久化的偏好自动切换
func (s *MenuScene) autoEnableHandMode(gs *game.GameState) {
	if s.autoHandTried || s.feed == nil || !s.feed.Connected() {
		return
	}
	sm := gs.GetSettingsManager()
	if sm == nil || !sm.GetSettings().HandTracking {
		s.autoHandTried = true
		return
	}
	s.autoHandTried = true
	if s.pointer.Mode() == input.ModeMouse {
		s.pointer.Use(input.ModeHand)
		s.showHint("Hand tracking enabled")
	}
}

// handleNameEntry 处理取名框的键盘输入
// 只在没有玩家身份时生效
func (s *MenuScene) handleNameEntry(gs *game.GameState) {
	if gs.PlayerName != "" {
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if len([]rune(s.nameBuffer)) < maxNameRunes {
			s.nameBuffer += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && s.nameBuffer != "" {
		runes := []rune(s.nameBuffer)
		s.nameBuffer = string(runes[:len(runes)-1])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.commitName(gs)
	}
}

// commitName 校验并保存键入的玩家名
func (s *MenuScene) commitName(gs *game.GameState) {
	name := strings.TrimSpace(s.nameBuffer)
	if err := game.ValidatePlayerName(name); err != nil {
		s.nameError = err.Error()
		return
	}

	gs.PlayerName = name
	s.nameBuffer = ""
	s.nameError = ""

	if sm := gs.GetSettingsManager(); sm != nil {
		sm.SetPlayerName(name)
		if err := sm.Save(); err != nil {
			log.Printf("[MenuScene] Failed to persist player name: %v", err)
		}
	}
	log.Printf("[MenuScene] Player identity set: %s", name)
}

// toggleHandMode 在鼠标与手部追踪之间切换
// 切向手部追踪要求监听端已有追踪器在线
func (s *MenuScene) toggleHandMode(gs *game.GameState) {
	if s.pointer.Mode() == input.ModeMouse {
		if s.feed == nil {
			s.showHint("Hand tracking is disabled (start with --hand-listen)")
			return
		}
		if !s.feed.Connected() {
			s.showHint("No hand tracker connected")
			return
		}
		s.pointer.Use(input.ModeHand)
	} else {
		s.pointer.Use(input.ModeMouse)
	}

	if sm := gs.GetSettingsManager(); sm != nil {
		sm.SetHandTracking(s.pointer.Mode() == input.ModeHand)
		if err := sm.Save(); err != nil {
			log.Printf("[MenuScene] Failed to persist input mode: %v", err)
		}
	}
}

// startRound 开始一个回合
// 玩家身份缺失时拒绝开局并提示
func (s *MenuScene) startRound(gs *game.GameState) {
	if gs.PlayerName == "" {
		s.nameError = "请输入玩家名，成绩会按玩家名保存"
		return
	}

	if am := gs.GetAudioManager(); am != nil {
		am.PlaySound(game.SoundIDButton)
		am.StopMusic()
	}
	log.Printf("[MenuScene] Starting round for %s (input: %s)", gs.PlayerName, s.pointer.Mode())
	s.sceneManager.SwitchTo(NewGameScene(s.resourceManager, s.sceneManager, s.pointer, s.feed, s.recorder))
}

// showHint 显示一条会自动消失的状态提示
func (s *MenuScene) showHint(hint string) {
	s.statusHint = hint
	s.statusLeft = menuHintSeconds
}

// startBounds 返回开始按钮的点击区域
func (s *MenuScene) startBounds() rect {
	return rect{
		x: (config.GameWindowWidth - menuStartWidth) / 2,
		y: menuStartY,
		w: menuStartWidth,
		h: menuStartHeight,
	}
}

// drawPlayerBlock 绘制玩家身份与历史最高分，或取名框
func (s *MenuScene) drawPlayerBlock(screen *ebiten.Image, gs *game.GameState) {
	centerX := float64(config.GameWindowWidth) / 2

	if gs.PlayerName != "" {
		drawLabelCentered(screen, "Player: "+gs.PlayerName, centerX, menuPlayerY, color.White, s.font)
		best := fmt.Sprintf("Best score: %d", gs.BestScore())
		drawLabelCentered(screen, best, centerX, menuPlayerY+36, color.RGBA{R: 200, G: 220, B: 255, A: 255}, s.smallFont)
		return
	}

	drawLabelCentered(screen, "Type your name, press Enter to confirm", centerX, menuPlayerY,
		color.RGBA{R: 200, G: 220, B: 255, A: 255}, s.smallFont)
	drawLabelCentered(screen, s.nameBuffer+"_", centerX, menuPlayerY+34, color.White, s.font)
	if s.nameError != "" {
		drawLabelCentered(screen, s.nameError, centerX, menuPlayerY+76,
			color.RGBA{R: 255, G: 120, B: 120, A: 255}, s.smallFont)
	}
}

// drawInputModeBlock 绘制输入方式与追踪器状态
func (s *MenuScene) drawInputModeBlock(screen *ebiten.Image) {
	centerX := float64(config.GameWindowWidth) / 2

	mode := fmt.Sprintf("Input: %s  [H] switch", s.pointer.Mode())
	drawLabelCentered(screen, mode, centerX, menuInputModeY, color.White, s.smallFont)

	var status string
	switch {
	case s.feed == nil:
		status = "hand tracking disabled"
	case s.feed.Connected():
		status = fmt.Sprintf("tracker online at ws://%s/hand", s.feed.Addr())
	default:
		status = fmt.Sprintf("waiting for tracker on ws://%s/hand", s.feed.Addr())
	}
	drawLabelCentered(screen, status, centerX, menuInputModeY+28,
		color.RGBA{R: 160, G: 180, B: 210, A: 255}, s.smallFont)
}

// drawStartButton 绘制开始按钮
// 玩家身份缺失时按钮置灰
func (s *MenuScene) drawStartButton(screen *ebiten.Image, gs *game.GameState) {
	bounds := s.startBounds()

	if s.startImage == nil {
		s.startImage = ebiten.NewImage(int(bounds.w), int(bounds.h))
	}
	if gs.PlayerName == "" {
		s.startImage.Fill(color.RGBA{R: 90, G: 90, B: 90, A: 220})
	} else {
		s.startImage.Fill(color.RGBA{R: 46, G: 140, B: 62, A: 235})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bounds.x, bounds.y)
	screen.DrawImage(s.startImage, op)

	label := "START"
	labelY := bounds.y + bounds.h/2 - 16
	drawLabelCentered(screen, label, bounds.x+bounds.w/2, labelY, color.White, s.font)
}
