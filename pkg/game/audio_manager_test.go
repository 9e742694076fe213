package game

import (
	"testing"
)

// newTestAudioManager 创建带已解析资源配置的音频管理器
// 磁盘上没有任何音频文件，加载必然软失败
func newTestAudioManager(t *testing.T) (*AudioManager, *SettingsManager) {
	t.Helper()

	rm := NewResourceManager(testAudioContext)
	if err := rm.LoadResourceConfigData([]byte(testResourceYAML)); err != nil {
		t.Fatalf("LoadResourceConfigData failed: %v", err)
	}

	sm, _ := NewSettingsManager(nil)
	return NewAudioManager(rm, sm), sm
}

// TestPlaySoundMissingFile 测试音频文件缺失时播放软失败
func TestPlaySoundMissingFile(t *testing.T) {
	am, _ := newTestAudioManager(t)

	// 配置里有 SOUND_WHACK，但磁盘上没有文件
	if am.PlaySound(SoundIDWhack) {
		t.Error("PlaySound should fail when the audio file is missing")
	}
}

// TestPlaySoundUnknownID 测试未配置的音效 ID
func TestPlaySoundUnknownID(t *testing.T) {
	am, _ := newTestAudioManager(t)

	if am.PlaySound("SOUND_NOT_IN_CONFIG") {
		t.Error("PlaySound should fail for an unknown sound ID")
	}
}

// TestPlaySoundDisabled 测试音效开关关闭时直接拒绝播放
func TestPlaySoundDisabled(t *testing.T) {
	am, sm := newTestAudioManager(t)

	sm.SetSoundEnabled(false)
	if am.PlaySound(SoundIDWhack) {
		t.Error("PlaySound should fail when sound is disabled")
	}
}

// TestPlayMusicDisabled 测试音乐开关关闭时直接拒绝播放
func TestPlayMusicDisabled(t *testing.T) {
	am, sm := newTestAudioManager(t)

	sm.SetMusicEnabled(false)
	if am.PlayMusic(MusicIDMenu) {
		t.Error("PlayMusic should fail when music is disabled")
	}
}

// TestPlayMusicMissingFile 测试音乐文件缺失时播放软失败
func TestPlayMusicMissingFile(t *testing.T) {
	am, _ := newTestAudioManager(t)

	if am.PlayMusic(MusicIDRound) {
		t.Error("PlayMusic should fail when the music file is missing")
	}
}

// TestAudioVolumeFromSettings 测试音量从设置联动读取
func TestAudioVolumeFromSettings(t *testing.T) {
	am, sm := newTestAudioManager(t)

	sm.SetMusicVolume(0.25)
	sm.SetSoundVolume(0.35)

	if am.GetMusicVolume() != 0.25 {
		t.Errorf("GetMusicVolume = %v, want 0.25", am.GetMusicVolume())
	}
	if am.GetSoundVolume() != 0.35 {
		t.Errorf("GetSoundVolume = %v, want 0.35", am.GetSoundVolume())
	}

	// 通过 AudioManager 设置会写回设置管理器
	am.SetMusicVolume(0.5)
	am.SetSoundVolume(0.6)

	if sm.GetSettings().MusicVolume != 0.5 {
		t.Errorf("Settings MusicVolume = %v, want 0.5", sm.GetSettings().MusicVolume)
	}
	if sm.GetSettings().SoundVolume != 0.6 {
		t.Errorf("Settings SoundVolume = %v, want 0.6", sm.GetSettings().SoundVolume)
	}
}

// TestAudioVolumeDefaults 测试没有设置管理器时的默认音量
func TestAudioVolumeDefaults(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	am := NewAudioManager(rm, nil)

	if am.GetMusicVolume() != 0.7 {
		t.Errorf("Default music volume = %v, want 0.7", am.GetMusicVolume())
	}
	if am.GetSoundVolume() != 0.8 {
		t.Errorf("Default sound volume = %v, want 0.8", am.GetSoundVolume())
	}
}

// TestStopMusicWithoutPlaying 测试没有音乐时停止操作安全
func TestStopMusicWithoutPlaying(t *testing.T) {
	am, _ := newTestAudioManager(t)

	// 不应 panic
	am.StopMusic()
	am.PauseMusic()
	am.ResumeMusic()
}
