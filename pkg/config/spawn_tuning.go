package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnTuningConfig 目标生成节奏的可调参数
type SpawnTuningConfig struct {
	BaseSpeedMin       float64 `yaml:"baseSpeedMin"`       // 基础速度下限（像素/秒）
	BaseSpeedMax       float64 `yaml:"baseSpeedMax"`       // 基础速度上限（像素/秒）
	SpeedRampPerSecond float64 `yaml:"speedRampPerSecond"` // 每经过一秒回合时间增加的速度
	SpawnDelayStart    float64 `yaml:"spawnDelayStart"`    // 回合开始时的生成间隔（秒）
	SpawnDelayEnd      float64 `yaml:"spawnDelayEnd"`      // 回合结束时的生成间隔（秒）
	SpawnDelayJitter   float64 `yaml:"spawnDelayJitter"`   // 生成间隔的随机抖动幅度（秒）
	FlockChance        float64 `yaml:"flockChance"`        // 本次生成为编队的概率（0~1）
	FlockSizeMin       int     `yaml:"flockSizeMin"`       // 编队最小规模
	FlockSizeMax       int     `yaml:"flockSizeMax"`       // 编队最大规模
	FlockStaggerMin    float64 `yaml:"flockStaggerMin"`    // 编队成员间的最小延迟（秒）
	FlockStaggerMax    float64 `yaml:"flockStaggerMax"`    // 编队成员间的最大延迟（秒）
	FlockYSpread       float64 `yaml:"flockYSpread"`       // 编队成员相对基准线的垂直散布（像素）
}

// DefaultSpawnTuning 返回内置的默认生成参数
// 配置文件缺失或解析失败时作为兜底
func DefaultSpawnTuning() *SpawnTuningConfig {
	return &SpawnTuningConfig{
		BaseSpeedMin:       140,
		BaseSpeedMax:       220,
		SpeedRampPerSecond: 2.5,
		SpawnDelayStart:    1.2,
		SpawnDelayEnd:      0.45,
		SpawnDelayJitter:   0.2,
		FlockChance:        0.15,
		FlockSizeMin:       3,
		FlockSizeMax:       5,
		FlockStaggerMin:    0.05,
		FlockStaggerMax:    0.25,
		FlockYSpread:       48,
	}
}

// ParseSpawnTuning 从 YAML 字节解析生成参数配置
func ParseSpawnTuning(data []byte) (*SpawnTuningConfig, error) {
	var config SpawnTuningConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse spawn tuning YAML: %w", err)
	}

	if err := validateSpawnTuning(&config); err != nil {
		return nil, fmt.Errorf("invalid spawn tuning config: %w", err)
	}

	return &config, nil
}

// LoadSpawnTuning 从 YAML 文件加载生成参数配置
func LoadSpawnTuning(filePath string) (*SpawnTuningConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawn tuning file: %w", err)
	}
	return ParseSpawnTuning(data)
}

// validateSpawnTuning 验证配置的有效性
func validateSpawnTuning(config *SpawnTuningConfig) error {
	if config.BaseSpeedMin <= 0 {
		return fmt.Errorf("baseSpeedMin must be > 0, got %v", config.BaseSpeedMin)
	}
	if config.BaseSpeedMax < config.BaseSpeedMin {
		return fmt.Errorf("baseSpeedMax must be >= baseSpeedMin, got %v < %v",
			config.BaseSpeedMax, config.BaseSpeedMin)
	}
	if config.SpeedRampPerSecond < 0 {
		return fmt.Errorf("speedRampPerSecond must be >= 0, got %v", config.SpeedRampPerSecond)
	}
	if config.SpawnDelayStart <= 0 {
		return fmt.Errorf("spawnDelayStart must be > 0, got %v", config.SpawnDelayStart)
	}
	if config.SpawnDelayEnd <= 0 || config.SpawnDelayEnd > config.SpawnDelayStart {
		return fmt.Errorf("spawnDelayEnd must be in (0, spawnDelayStart], got %v", config.SpawnDelayEnd)
	}
	if config.SpawnDelayJitter < 0 {
		return fmt.Errorf("spawnDelayJitter must be >= 0, got %v", config.SpawnDelayJitter)
	}
	if config.FlockChance < 0 || config.FlockChance > 1 {
		return fmt.Errorf("flockChance must be in [0, 1], got %v", config.FlockChance)
	}
	if config.FlockSizeMin < 2 {
		return fmt.Errorf("flockSizeMin must be >= 2, got %d", config.FlockSizeMin)
	}
	if config.FlockSizeMax < config.FlockSizeMin {
		return fmt.Errorf("flockSizeMax must be >= flockSizeMin, got %d < %d",
			config.FlockSizeMax, config.FlockSizeMin)
	}
	if config.FlockStaggerMin < 0 {
		return fmt.Errorf("flockStaggerMin must be >= 0, got %v", config.FlockStaggerMin)
	}
	if config.FlockStaggerMax < config.FlockStaggerMin {
		return fmt.Errorf("flockStaggerMax must be >= flockStaggerMin, got %v < %v",
			config.FlockStaggerMax, config.FlockStaggerMin)
	}
	if config.FlockYSpread < 0 {
		return fmt.Errorf("flockYSpread must be >= 0, got %v", config.FlockYSpread)
	}
	return nil
}
