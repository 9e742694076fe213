package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/skywhack/pkg/config"
	"github.com/gonewx/skywhack/pkg/game"
	"github.com/gonewx/skywhack/pkg/input"
	"github.com/gonewx/skywhack/pkg/systems"
	"github.com/gonewx/skywhack/pkg/world"
)

// 对局界面布局
const (
	hudMargin      = 18.0
	toastSeconds   = 3.0
	overButtonW    = 260.0
	overButtonH    = 56.0
	overButtonY    = 470.0
	overButtonsGap = 40.0
)

// GameScene 对局场景
//
// 内部分三个阶段：开场倒计时（不模拟）、进行中（完整推进生成/
// 运动/判定/计时）、结算（模拟冻结，展示成绩与再来一局）。
// 进行中按 Esc 暂停，计时与模拟原地停住，恢复后继续。
type GameScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	pointer         *input.Selector
	feed            *input.Feed
	recorder        game.RoundRecorder

	world      *world.World
	round      *game.Round
	spawn      *systems.SpawnSystem
	motion     *systems.MotionSystem
	animation  *systems.AnimationSystem
	indicators *systems.IndicatorSystem
	collision  *systems.CollisionSystem
	render     *systems.RenderSystem
	cursor     *systems.CursorSystem

	background *ebiten.Image
	hudFont    *text.GoTextFace
	bigFont    *text.GoTextFace
	smallFont  *text.GoTextFace
	overlay    *ebiten.Image
	againImage *ebiten.Image
	menuImage  *ebiten.Image

	countdownLeft float64
	lastBeep      int    // 最近播过音效的倒计时数字
	sessionKind   string // 本回合的输入方式，开局时定格
	paused        bool
	recorded      bool // 成绩是否已经上报（只许一次）

	results   <-chan game.RecordOutcome // 上报结局回流通道，可为 nil
	toast     string
	toastLeft float64
}

// NewGameScene 创建并初始化对局场景
//
// 参数：
//   - rm: 资源管理器
//   - sm: 场景管理器，回主菜单时切换场景
//   - pointer: 指针来源选择器
//   - feed: 手部追踪监听端，回主菜单时传还给菜单
//   - recorder: 回合成绩上报器
func NewGameScene(rm *game.ResourceManager, sm *game.SceneManager, pointer *input.Selector, feed *input.Feed, recorder game.RoundRecorder) *GameScene {
	if recorder == nil {
		recorder = game.NopRecorder{}
	}

	w := world.NewWorld()
	w.SetSize(config.GameWindowWidth, config.GameWindowHeight)

	round := game.NewRound(config.RoundSeconds)
	tuning := game.GetGameState().SpawnTuning()
	sheets := rm.Sheets()
	indicators := systems.NewIndicatorSystem()
	am := game.GetGameState().GetAudioManager()

	scene := &GameScene{
		resourceManager: rm,
		sceneManager:    sm,
		pointer:         pointer,
		feed:            feed,
		recorder:        recorder,
		world:           w,
		round:           round,
		spawn:           systems.NewSpawnSystem(w, tuning, round),
		motion:          systems.NewMotionSystem(w),
		animation:       systems.NewAnimationSystem(w, sheets),
		indicators:      indicators,
		collision:       systems.NewCollisionSystem(w, round, indicators, am),
		render:          systems.NewRenderSystem(w, sheets),
		cursor:          systems.NewCursorSystem(sheets),
		background:      rm.GetImageByID(game.ImageIDBackground),
		hudFont:         rm.GetFontByID(game.FontIDMain, 28),
		bigFont:         rm.GetFontByID(game.FontIDMain, 96),
		smallFont:       rm.GetFontByID(game.FontIDMain, 20),
		countdownLeft:   config.CountdownSeconds,
		sessionKind:     sessionKindOf(pointer),
	}

	if hr, ok := recorder.(*game.HTTPRecorder); ok {
		scene.results = hr.Results()
	}
	if am != nil {
		am.PlayMusic(game.MusicIDRound)
	}
	return scene
}

// sessionKindOf 把指针模式折算成上报记录的会话类型
func sessionKindOf(pointer *input.Selector) string {
	if pointer != nil && pointer.Mode() == input.ModeHand {
		return game.SessionKindHand
	}
	return game.SessionKindMouse
}

// Update 推进对局逻辑
func (s *GameScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.handleEscape()
	}
	if s.paused {
		return
	}

	p := s.pointer.Poll(deltaTime)
	s.cursor.SetPosition(p.X, p.Y)

	switch s.round.Phase() {
	case game.PhaseCountdown:
		// 倒计时阶段化身可以挥，但不生成、不判定
		if p.Triggered {
			s.cursor.TriggerWhack()
		}
		s.tickCountdown(deltaTime)

	case game.PhaseRunning:
		if p.Triggered {
			s.cursor.TriggerWhack()
			if hits := s.collision.ResolveHit(p.X, p.Y); hits == 0 {
				s.playSound(game.SoundIDSwish)
			}
		}
		s.spawn.Update(deltaTime)
		s.motion.Update(deltaTime)
		s.animation.Update(deltaTime)
		s.indicators.Update(deltaTime)
		if s.round.Tick(deltaTime) {
			s.finishRound()
		}

	case game.PhaseOver:
		// 模拟冻结，只剩化身与残留提示还在动
		if p.Triggered {
			s.cursor.TriggerWhack()
			s.handleOverClick(p.X, p.Y)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.playAgain()
		}
		s.indicators.Update(deltaTime)
		s.pollRecordOutcome()
		if s.toastLeft > 0 {
			s.toastLeft -= deltaTime
			if s.toastLeft <= 0 {
				s.toast = ""
			}
		}
	}

	s.cursor.Update(deltaTime)
}

// Draw 绘制对局画面
// 顺序：背景、目标、得分提示、HUD、阶段覆盖层，化身永远最后
func (s *GameScene) Draw(screen *ebiten.Image) {
	drawBackdrop(screen, s.background, color.RGBA{R: 96, G: 160, B: 220, A: 255})

	s.render.Draw(screen)
	s.indicators.Draw(screen, s.hudFont)
	s.drawHUD(screen)

	switch s.round.Phase() {
	case game.PhaseCountdown:
		s.drawCountdown(screen)
	case game.PhaseOver:
		s.drawSummary(screen)
	}

	if s.toast != "" {
		drawLabelCentered(screen, s.toast, config.GameWindowWidth/2, config.GameWindowHeight-72,
			color.RGBA{R: 220, G: 230, B: 255, A: 255}, s.smallFont)
	}
	if s.paused {
		s.drawPauseOverlay(screen)
	}

	s.cursor.Draw(screen)
}

// handleEscape 处理 Esc：进行中切换暂停，其余阶段回主菜单
func (s *GameScene) handleEscape() {
	am := game.GetGameState().GetAudioManager()

	switch s.round.Phase() {
	case game.PhaseRunning:
		s.paused = !s.paused
		if am != nil {
			if s.paused {
				am.PauseMusic()
			} else {
				am.ResumeMusic()
			}
		}
		log.Printf("[GameScene] Paused: %v", s.paused)
	default:
		s.backToMenu()
	}
}

// tickCountdown 推进开场倒计时
// 每跨过一个整数播一次提示音，归零后回合进入运行阶段
func (s *GameScene) tickCountdown(deltaTime float64) {
	current := int(math.Ceil(s.countdownLeft))
	if current != s.lastBeep && current > 0 {
		s.lastBeep = current
		s.playSound(game.SoundIDCountdown)
	}

	s.countdownLeft -= deltaTime
	if s.countdownLeft <= 0 {
		s.round.Start()
		log.Printf("[GameScene] Round started (session: %s)", s.sessionKind)
	}
}

// finishRound 回合到点收尾：冻结已由阶段切换完成，这里负责
// 成绩落盘与上报。守卫保证只执行一次。
func (s *GameScene) finishRound() {
	if s.recorded {
		return
	}
	s.recorded = true

	gs := game.GetGameState()
	score := s.round.Score()
	hits := s.round.Hits()

	gs.LastScore = score
	gs.LastWasBest = false

	if am := gs.GetAudioManager(); am != nil {
		am.StopMusic()
		am.PlaySound(game.SoundIDRoundOver)
	}
	log.Printf("[GameScene] Round over: score=%d hits=%d", score, hits)

	// 本地成绩档案
	if sm := gs.GetSaveManager(); sm != nil && gs.PlayerName != "" && hits > 0 {
		if _, newBest, err := sm.RecordRound(gs.PlayerName, score, hits, time.Now()); err != nil {
			log.Printf("[GameScene] Failed to save round locally: %v", err)
		} else {
			gs.LastWasBest = newBest
		}
	}

	// 远端上报：没有身份或一次都没打中就跳过
	if gs.PlayerName == "" || hits == 0 {
		log.Printf("[GameScene] Skipping round recording (player=%q, hits=%d)", gs.PlayerName, hits)
		return
	}

	history := append([]game.HitRecord(nil), s.round.History()...)
	s.recorder.Record(game.RoundRecord{
		SessionKind:     s.sessionKind,
		Player:          gs.PlayerName,
		Score:           score,
		Hits:            hits,
		History:         history,
		DurationSeconds: s.round.DurationSeconds(),
		FinishedAtMs:    time.Now().UnixMilli(),
	})
	s.showToast("Uploading score...")
}

// pollRecordOutcome 轮询上报结局，驱动提示条
// 未配置上报端点时通道为 nil，select 永远走 default
func (s *GameScene) pollRecordOutcome() {
	select {
	case outcome := <-s.results:
		if outcome.Err != nil {
			log.Printf("[GameScene] Score upload failed: %v", outcome.Err)
			s.showToast("Score upload failed")
		} else {
			s.showToast("Score uploaded")
		}
	default:
	}
}

// handleOverClick 结算界面的按钮点击
func (s *GameScene) handleOverClick(x, y float64) {
	if s.againBounds().contains(x, y) {
		s.playSound(game.SoundIDButton)
		s.playAgain()
		return
	}
	if s.menuBounds().contains(x, y) {
		s.playSound(game.SoundIDButton)
		s.backToMenu()
	}
}

// playAgain 原地重开一局
// 世界、对象池、空间索引、命中历史、提示、待生成队列全部清零
func (s *GameScene) playAgain() {
	s.world.Reset()
	s.indicators.Reset()
	s.spawn.Reset()

	s.round = game.NewRound(config.RoundSeconds)
	s.spawn.SetRound(s.round)
	s.collision.SetRound(s.round)

	s.countdownLeft = config.CountdownSeconds
	s.lastBeep = 0
	s.paused = false
	s.recorded = false
	s.toast = ""
	s.toastLeft = 0
	s.sessionKind = sessionKindOf(s.pointer)

	if am := game.GetGameState().GetAudioManager(); am != nil {
		am.PlayMusic(game.MusicIDRound)
	}
	log.Printf("[GameScene] Play again (session: %s)", s.sessionKind)
}

// backToMenu 清场并回主菜单
func (s *GameScene) backToMenu() {
	s.world.Reset()
	if am := game.GetGameState().GetAudioManager(); am != nil {
		am.StopMusic()
	}
	s.sceneManager.SwitchTo(NewMenuScene(s.resourceManager, s.sceneManager, s.pointer, s.feed, s.recorder))
}

// playSound 播放音效，音频管理器未注入时静默
func (s *GameScene) playSound(soundID string) {
	if am := game.GetGameState().GetAudioManager(); am != nil {
		am.PlaySound(soundID)
	}
}

// showToast 显示一条会自动消失的提示
func (s *GameScene) showToast(msg string) {
	s.toast = msg
	s.toastLeft = toastSeconds
}

// againBounds 返回“再来一局”按钮区域
func (s *GameScene) againBounds() rect {
	return rect{
		x: config.GameWindowWidth/2 - overButtonW - overButtonsGap/2,
		y: overButtonY,
		w: overButtonW,
		h: overButtonH,
	}
}

// menuBounds 返回“回主菜单”按钮区域
func (s *GameScene) menuBounds() rect {
	return rect{
		x: config.GameWindowWidth/2 + overButtonsGap/2,
		y: overButtonY,
		w: overButtonW,
		h: overButtonH,
	}
}

// drawHUD 绘制得分与剩余时间
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	score := fmt.Sprintf("Score: %d", s.round.Score())
	drawLabel(screen, score, hudMargin, hudMargin, color.White, s.hudFont)

	remain := fmt.Sprintf("Time: %d", s.round.Remaining())
	x := config.GameWindowWidth - hudMargin - labelWidth(remain, s.hudFont)
	drawLabel(screen, remain, x, hudMargin, color.White, s.hudFont)
}

// drawCountdown 绘制开场倒计时数字
func (s *GameScene) drawCountdown(screen *ebiten.Image) {
	digit := int(math.Ceil(s.countdownLeft))
	if digit <= 0 {
		return
	}
	drawLabelCentered(screen, fmt.Sprintf("%d", digit), config.GameWindowWidth/2,
		config.GameWindowHeight/2-64, color.RGBA{R: 255, G: 242, B: 0, A: 255}, s.bigFont)
}

// drawSummary 绘制结算面板
func (s *GameScene) drawSummary(screen *ebiten.Image) {
	s.drawDimOverlay(screen)

	gs := game.GetGameState()
	centerX := float64(config.GameWindowWidth) / 2

	drawLabelCentered(screen, "TIME'S UP!", centerX, 180, color.RGBA{R: 255, G: 242, B: 0, A: 255}, s.bigFont)

	scoreLine := fmt.Sprintf("Score: %d", s.round.Score())
	if gs.LastWasBest {
		scoreLine += "  NEW BEST!"
	}
	drawLabelCentered(screen, scoreLine, centerX, 320, color.White, s.hudFont)
	drawLabelCentered(screen, fmt.Sprintf("Hits: %d", s.round.Hits()), centerX, 360, color.White, s.hudFont)

	s.drawOverButton(screen, &s.againImage, s.againBounds(), "PLAY AGAIN [Enter]",
		color.RGBA{R: 46, G: 140, B: 62, A: 235})
	s.drawOverButton(screen, &s.menuImage, s.menuBounds(), "MENU [Esc]",
		color.RGBA{R: 70, G: 86, B: 120, A: 235})
}

// drawOverButton 绘制一个结算面板按钮
func (s *GameScene) drawOverButton(screen *ebiten.Image, cache **ebiten.Image, bounds rect, label string, fill color.RGBA) {
	if *cache == nil {
		*cache = ebiten.NewImage(int(bounds.w), int(bounds.h))
	}
	(*cache).Fill(fill)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bounds.x, bounds.y)
	screen.DrawImage(*cache, op)

	drawLabelCentered(screen, label, bounds.x+bounds.w/2, bounds.y+bounds.h/2-12, color.White, s.smallFont)
}

// drawPauseOverlay 绘制暂停遮罩
func (s *GameScene) drawPauseOverlay(screen *ebiten.Image) {
	s.drawDimOverlay(screen)
	centerX := float64(config.GameWindowWidth) / 2
	drawLabelCentered(screen, "PAUSED", centerX, config.GameWindowHeight/2-80, color.White, s.bigFont)
	drawLabelCentered(screen, "Press Esc to resume", centerX, config.GameWindowHeight/2+40,
		color.RGBA{R: 200, G: 200, B: 200, A: 255}, s.smallFont)
}

// drawDimOverlay 给整个画面盖一层半透明黑
func (s *GameScene) drawDimOverlay(screen *ebiten.Image) {
	if s.overlay == nil {
		s.overlay = ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
		s.overlay.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 140})
	}
	screen.DrawImage(s.overlay, nil)
}
