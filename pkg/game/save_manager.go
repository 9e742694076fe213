package game

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RoundSummary 单场回合的成绩摘要
type RoundSummary struct {
	Score    int       `yaml:"score"`    // 回合总分
	Hits     int       `yaml:"hits"`     // 命中次数
	PlayedAt time.Time `yaml:"playedAt"` // 回合结束时间
}

// PlayerRecord 单个玩家的成绩档案
type PlayerRecord struct {
	Name         string         `yaml:"name"`         // 玩家名
	BestScore    int            `yaml:"bestScore"`    // 历史最高分
	RoundsPlayed int            `yaml:"roundsPlayed"` // 累计对局数
	Recent       []RoundSummary `yaml:"recent"`       // 最近对局，新的在前
	UpdatedAt    time.Time      `yaml:"updatedAt"`    // 最后更新时间
}

// 存储路径常量
const (
	scoresObject   = "scores"
	rosterProperty = "roster"

	// maxRecentRounds 每个玩家保留的最近对局条数
	maxRecentRounds = 10
)

// playerNamePattern 玩家名允许的字符
var playerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// SaveManager 成绩档案管理器
//
// 职责：
//   - 按玩家名持久化最高分和最近对局
//   - 维护出现过的玩家名册
//
// 架构说明：
//   - 数据通过 gdata 持久化（YAML 格式，与设置存储一致）
//   - 由 GameState 持有，场景在回合结束时调用
//   - gdataManager 为 nil 时降级为仅内存模式
type SaveManager struct {
	gdataManager *gdata.Manager           // gdata 跨平台存储管理器，可为 nil（降级模式）
	players      map[string]*PlayerRecord // 已加载档案缓存（玩家名 -> 档案）
	roster       []string                 // 出现过的玩家名，按首次出现排序
}

// NewSaveManager 创建成绩档案管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *SaveManager: 新创建的管理器实例
//   - error: 如果名册数据损坏返回错误（不影响创建）
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	sm := &SaveManager{
		gdataManager: gdataManager,
		players:      make(map[string]*PlayerRecord),
	}

	if err := sm.loadRoster(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load player roster: %v", err)
		return sm, err
	}

	return sm, nil
}

// ValidatePlayerName 验证玩家名合法性
//
// 规则：
//   - 不能为空
//   - 只能包含字母、数字、空格
//   - 长度限制 1-20 字符
//
// 参数：
//   - name: 玩家名
//
// 返回：
//   - error: 如果验证失败返回错误
func ValidatePlayerName(name string) error {
	if name == "" {
		return fmt.Errorf("请输入玩家名，成绩会按玩家名保存")
	}
	if len(name) > 20 {
		return fmt.Errorf("玩家名长度不能超过 20 个字符")
	}
	if !playerNamePattern.MatchString(name) {
		return fmt.Errorf("玩家名只能包含字母、数字和空格")
	}
	return nil
}

// LoadPlayer 加载玩家档案
// 档案不存在时返回全新的空档案（不落盘）
//
// 参数：
//   - name: 玩家名
//
// 返回：
//   - *PlayerRecord: 玩家档案
//   - error: 玩家名非法或数据损坏时返回错误
func (sm *SaveManager) LoadPlayer(name string) (*PlayerRecord, error) {
	if err := ValidatePlayerName(name); err != nil {
		return nil, err
	}

	if rec, exists := sm.players[name]; exists {
		return rec, nil
	}

	rec := &PlayerRecord{Name: name}

	if sm.gdataManager != nil {
		prop := playerProperty(name)
		if sm.gdataManager.ObjectPropExists(scoresObject, prop) {
			data, err := sm.gdataManager.LoadObjectProp(scoresObject, prop)
			if err != nil {
				return nil, fmt.Errorf("failed to load player record %s: %w", name, err)
			}
			var loaded PlayerRecord
			if err := yaml.Unmarshal(data, &loaded); err != nil {
				return nil, fmt.Errorf("failed to unmarshal player record %s: %w", name, err)
			}
			rec = &loaded
		}
	}

	sm.players[name] = rec
	return rec, nil
}

// BestScore 返回玩家的历史最高分
// 玩家名非法或档案不存在时返回 0
func (sm *SaveManager) BestScore(name string) int {
	rec, err := sm.LoadPlayer(name)
	if err != nil {
		return 0
	}
	return rec.BestScore
}

// RecordRound 登记一场结束的回合
// 更新累计对局数、最近对局列表，并在刷新纪录时更新最高分
//
// 参数：
//   - name: 玩家名
//   - score: 回合总分
//   - hits: 命中次数
//   - playedAt: 回合结束时间
//
// 返回：
//   - *PlayerRecord: 更新后的档案
//   - bool: 是否刷新了最高分
//   - error: 玩家名非法或保存失败时返回错误
func (sm *SaveManager) RecordRound(name string, score, hits int, playedAt time.Time) (*PlayerRecord, bool, error) {
	rec, err := sm.LoadPlayer(name)
	if err != nil {
		return nil, false, err
	}

	newBest := score > rec.BestScore
	if newBest {
		rec.BestScore = score
	}
	rec.RoundsPlayed++
	rec.UpdatedAt = playedAt

	// 新对局放最前，超出上限的最老条目滚出
	rec.Recent = append([]RoundSummary{{Score: score, Hits: hits, PlayedAt: playedAt}}, rec.Recent...)
	if len(rec.Recent) > maxRecentRounds {
		rec.Recent = rec.Recent[:maxRecentRounds]
	}

	if err := sm.savePlayer(rec); err != nil {
		return nil, false, err
	}
	if err := sm.addToRoster(name); err != nil {
		return nil, false, err
	}

	log.Printf("[SaveManager] Recorded round for %s: score=%d hits=%d best=%d", name, score, hits, rec.BestScore)
	return rec, newBest, nil
}

// Players 返回出现过的玩家名列表（副本，按首次出现排序）
func (sm *SaveManager) Players() []string {
	roster := make([]string, len(sm.roster))
	copy(roster, sm.roster)
	return roster
}

// savePlayer 持久化单个玩家档案
func (sm *SaveManager) savePlayer(rec *PlayerRecord) error {
	// 降级模式：只保留在内存缓存里
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal player record %s: %w", rec.Name, err)
	}

	if err := sm.gdataManager.SaveObjectProp(scoresObject, playerProperty(rec.Name), data); err != nil {
		return fmt.Errorf("failed to save player record %s: %w", rec.Name, err)
	}
	return nil
}

// addToRoster 把玩家名加入名册（已存在时不变）
func (sm *SaveManager) addToRoster(name string) error {
	for _, existing := range sm.roster {
		if existing == name {
			return nil
		}
	}
	sm.roster = append(sm.roster, name)
	return sm.saveRoster()
}

// loadRoster 从 gdata 加载玩家名册
func (sm *SaveManager) loadRoster() error {
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(scoresObject, rosterProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(scoresObject, rosterProperty)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	var roster []string
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	sm.roster = roster
	return nil
}

// saveRoster 持久化玩家名册
func (sm *SaveManager) saveRoster() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.roster)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(scoresObject, rosterProperty, data); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// playerProperty 把玩家名转成 gdata 属性名
// 玩家名已通过校验，只需把空格换成下划线
func playerProperty(name string) string {
	return "player_" + strings.ReplaceAll(name, " ", "_")
}
