package game

import (
	"os"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时 HOME 下创建 gdata 管理器
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

func TestSaveManager_NewEmpty(t *testing.T) {
	sm, err := NewSaveManager(nil)
	if err != nil {
		t.Fatalf("NewSaveManager(nil) error: %v", err)
	}

	// 初始名册为空
	if players := sm.Players(); len(players) != 0 {
		t.Errorf("Expected empty roster, got %v", players)
	}

	// 没有档案的玩家最高分为 0
	if best := sm.BestScore("Mika"); best != 0 {
		t.Errorf("Expected best score 0 for fresh player, got %d", best)
	}
}

func TestSaveManager_ValidatePlayerName(t *testing.T) {
	tests := []struct {
		name       string
		playerName string
		wantErr    bool
	}{
		{"Valid name", "player1", false},
		{"Valid with space", "Player One", false},
		{"Valid alphanumeric", "User123", false},
		{"Empty name", "", true},
		{"Too long", "abcdefghijklmnopqrstuvwxyz", true},
		{"Special characters", "user@#$", true},
		{"Chinese characters", "用户", true},
		{"Underscore", "user_name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayerName(tt.playerName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlayerName(%q) error = %v, wantErr %v", tt.playerName, err, tt.wantErr)
			}
		})
	}
}

func TestSaveManager_LoadPlayer_Fresh(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	rec, err := sm.LoadPlayer("Mika")
	if err != nil {
		t.Fatalf("LoadPlayer failed: %v", err)
	}

	// 全新档案：名字已填，其余为零值
	if rec.Name != "Mika" {
		t.Errorf("Expected name 'Mika', got %q", rec.Name)
	}
	if rec.BestScore != 0 || rec.RoundsPlayed != 0 || len(rec.Recent) != 0 {
		t.Errorf("Expected zero-valued record, got %+v", rec)
	}

	// 二次加载命中缓存，返回同一实例
	again, err := sm.LoadPlayer("Mika")
	if err != nil {
		t.Fatalf("Second LoadPlayer failed: %v", err)
	}
	if again != rec {
		t.Error("Expected cached record instance on repeat load")
	}
}

func TestSaveManager_LoadPlayer_InvalidName(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	if _, err := sm.LoadPlayer(""); err == nil {
		t.Error("Expected error for empty player name")
	}
	if _, err := sm.LoadPlayer("bad_name!"); err == nil {
		t.Error("Expected error for invalid characters")
	}
}

func TestSaveManager_RecordRound(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)
	t3 := t2.Add(5 * time.Minute)

	// 第一局必然刷新纪录
	rec, newBest, err := sm.RecordRound("Mika", 320, 12, t1)
	if err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}
	if !newBest {
		t.Error("First round should be a new best")
	}
	if rec.BestScore != 320 {
		t.Errorf("BestScore = %d, want 320", rec.BestScore)
	}
	if rec.RoundsPlayed != 1 {
		t.Errorf("RoundsPlayed = %d, want 1", rec.RoundsPlayed)
	}

	// 低分不刷新纪录
	rec, newBest, err = sm.RecordRound("Mika", 150, 6, t2)
	if err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}
	if newBest {
		t.Error("Lower score should not be a new best")
	}
	if rec.BestScore != 320 {
		t.Errorf("BestScore after lower round = %d, want 320", rec.BestScore)
	}
	if rec.RoundsPlayed != 2 {
		t.Errorf("RoundsPlayed = %d, want 2", rec.RoundsPlayed)
	}

	// 最近对局按时间倒序，新的在前
	if len(rec.Recent) != 2 {
		t.Fatalf("Recent length = %d, want 2", len(rec.Recent))
	}
	if rec.Recent[0].Score != 150 || rec.Recent[1].Score != 320 {
		t.Errorf("Recent order wrong: %+v", rec.Recent)
	}
	if !rec.Recent[0].PlayedAt.Equal(t2) {
		t.Errorf("Recent[0].PlayedAt = %v, want %v", rec.Recent[0].PlayedAt, t2)
	}
	if rec.Recent[0].Hits != 6 {
		t.Errorf("Recent[0].Hits = %d, want 6", rec.Recent[0].Hits)
	}

	// 更高分再次刷新纪录
	rec, newBest, err = sm.RecordRound("Mika", 480, 18, t3)
	if err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}
	if !newBest {
		t.Error("Higher score should be a new best")
	}
	if rec.BestScore != 480 {
		t.Errorf("BestScore = %d, want 480", rec.BestScore)
	}
	if !rec.UpdatedAt.Equal(t3) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, t3)
	}
}

func TestSaveManager_RecordRound_InvalidName(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	if _, _, err := sm.RecordRound("", 100, 5, time.Now()); err == nil {
		t.Error("Expected error for empty player name")
	}

	// 非法名字不应进名册
	if players := sm.Players(); len(players) != 0 {
		t.Errorf("Roster should stay empty, got %v", players)
	}
}

func TestSaveManager_RecentRoundsCapped(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	var rec *PlayerRecord
	var err error
	for i := 0; i < 13; i++ {
		rec, _, err = sm.RecordRound("Mika", 100+i, i, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("RecordRound %d failed: %v", i, err)
		}
	}

	// 超出上限的最老条目滚出
	if len(rec.Recent) != maxRecentRounds {
		t.Errorf("Recent length = %d, want %d", len(rec.Recent), maxRecentRounds)
	}
	if rec.Recent[0].Score != 112 {
		t.Errorf("Newest recent score = %d, want 112", rec.Recent[0].Score)
	}
	if rec.Recent[len(rec.Recent)-1].Score != 103 {
		t.Errorf("Oldest kept recent score = %d, want 103", rec.Recent[len(rec.Recent)-1].Score)
	}
	if rec.RoundsPlayed != 13 {
		t.Errorf("RoundsPlayed = %d, want 13", rec.RoundsPlayed)
	}
}

func TestSaveManager_Roster(t *testing.T) {
	sm, _ := NewSaveManager(nil)

	now := time.Now()
	sm.RecordRound("Mika", 100, 4, now)
	sm.RecordRound("Ava Lee", 200, 8, now)
	sm.RecordRound("Mika", 50, 2, now)

	players := sm.Players()
	if len(players) != 2 {
		t.Fatalf("Roster length = %d, want 2", len(players))
	}

	// 按首次出现排序，重复登记不重复进名册
	if players[0] != "Mika" || players[1] != "Ava Lee" {
		t.Errorf("Roster order wrong: %v", players)
	}

	// Players() 返回副本，外部修改不影响内部名册
	players[0] = "hacked"
	if sm.Players()[0] != "Mika" {
		t.Error("Players() should return a copy of the roster")
	}
}

func TestSaveManager_Persistence(t *testing.T) {
	gdataManager := newTestGdata(t, "test_scores")

	sm1, err := NewSaveManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSaveManager error: %v", err)
	}

	playedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, _, err := sm1.RecordRound("Ava Lee", 540, 21, playedAt); err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}
	if _, _, err := sm1.RecordRound("Mika", 310, 11, playedAt.Add(time.Minute)); err != nil {
		t.Fatalf("RecordRound failed: %v", err)
	}

	// 新实例从 gdata 恢复名册和档案
	sm2, err := NewSaveManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSaveManager on reload error: %v", err)
	}

	players := sm2.Players()
	if len(players) != 2 || players[0] != "Ava Lee" || players[1] != "Mika" {
		t.Errorf("Reloaded roster = %v, want [Ava Lee Mika]", players)
	}

	rec, err := sm2.LoadPlayer("Ava Lee")
	if err != nil {
		t.Fatalf("LoadPlayer after reload failed: %v", err)
	}
	if rec.BestScore != 540 {
		t.Errorf("Reloaded BestScore = %d, want 540", rec.BestScore)
	}
	if rec.RoundsPlayed != 1 {
		t.Errorf("Reloaded RoundsPlayed = %d, want 1", rec.RoundsPlayed)
	}
	if len(rec.Recent) != 1 || rec.Recent[0].Hits != 21 {
		t.Errorf("Reloaded Recent = %+v", rec.Recent)
	}
	if !rec.Recent[0].PlayedAt.Equal(playedAt) {
		t.Errorf("Reloaded PlayedAt = %v, want %v", rec.Recent[0].PlayedAt, playedAt)
	}

	if best := sm2.BestScore("Mika"); best != 310 {
		t.Errorf("Reloaded BestScore for Mika = %d, want 310", best)
	}
}

func TestSaveManager_CorruptedRoster(t *testing.T) {
	gdataManager := newTestGdata(t, "test_scores_corrupt")

	// 写入损坏的名册数据
	if err := gdataManager.SaveObjectProp(scoresObject, rosterProperty, []byte("invalid: yaml: content: [")); err != nil {
		t.Fatalf("Failed to seed corrupted roster: %v", err)
	}

	sm, err := NewSaveManager(gdataManager)
	if err == nil {
		t.Error("Expected error when loading corrupted roster, got nil")
	}
	if sm == nil {
		t.Fatal("SaveManager should still be usable after roster load failure")
	}

	// 损坏的名册不阻止继续记录成绩
	if _, _, err := sm.RecordRound("Mika", 90, 3, time.Now()); err != nil {
		t.Errorf("RecordRound after corrupted roster failed: %v", err)
	}
}

func TestSaveManager_PlayerProperty(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Mika", "player_Mika"},
		{"Ava Lee", "player_Ava_Lee"},
		{"A B C", "player_A_B_C"},
	}

	for _, tt := range tests {
		if got := playerProperty(tt.name); got != tt.expected {
			t.Errorf("playerProperty(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
