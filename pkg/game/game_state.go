package game

import (
	"github.com/gonewx/skywhack/pkg/config"
)

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// PlayerName 当前玩家名
	// 启动时从设置里恢复，主菜单可修改；开局前必须非空
	PlayerName string

	// LastScore 最近一场回合的得分，用于回到主菜单后展示
	LastScore int
	// LastWasBest 最近一场是否刷新了最高分
	LastWasBest bool

	settingsManager *SettingsManager
	saveManager     *SaveManager
	audioManager    *AudioManager
	spawnTuning     *config.SpawnTuningConfig
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{}
	}
	return globalGameState
}

// SetSettingsManager 注入设置管理器
func (gs *GameState) SetSettingsManager(sm *SettingsManager) {
	gs.settingsManager = sm
	if sm != nil && gs.PlayerName == "" {
		gs.PlayerName = sm.GetSettings().PlayerName
	}
}

// GetSettingsManager 返回设置管理器，未注入时为 nil
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// SetSaveManager 注入成绩档案管理器
func (gs *GameState) SetSaveManager(sm *SaveManager) {
	gs.saveManager = sm
}

// GetSaveManager 返回成绩档案管理器，未注入时为 nil
func (gs *GameState) GetSaveManager() *SaveManager {
	return gs.saveManager
}

// SetAudioManager 注入音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，未注入时为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// SetSpawnTuning 注入生成节奏参数（应用启动时从配置文件加载）
func (gs *GameState) SetSpawnTuning(t *config.SpawnTuningConfig) {
	gs.spawnTuning = t
}

// SpawnTuning 返回生成节奏参数
// 未注入时回落到内置默认值，调用方无需判空
func (gs *GameState) SpawnTuning() *config.SpawnTuningConfig {
	if gs.spawnTuning == nil {
		return config.DefaultSpawnTuning()
	}
	return gs.spawnTuning
}

// BestScore 返回当前玩家的历史最高分
// 没有玩家或档案管理器时返回 0
func (gs *GameState) BestScore() int {
	if gs.saveManager == nil || gs.PlayerName == "" {
		return 0
	}
	return gs.saveManager.BestScore(gs.PlayerName)
}
