// Package config 提供游戏的配置常量与可调参数加载
package config

// 窗口与场地配置
// 逻辑分辨率固定，实际缩放由 ebiten 的 Layout 机制处理
const (
	// GameWindowWidth 游戏窗口逻辑宽度（像素）
	GameWindowWidth = 1280

	// GameWindowHeight 游戏窗口逻辑高度（像素）
	GameWindowHeight = 720

	// ReferencePlayWidth 命中半径的基准场地宽度
	// 场地宽度与基准不同时，命中半径按比例缩放
	ReferencePlayWidth = 1280.0
)

// 回合配置
const (
	// RoundSeconds 一个回合的时长（秒）
	RoundSeconds = 60

	// CountdownSeconds 回合开始前的倒计时时长（秒）
	CountdownSeconds = 3
)

// 命中判定配置
const (
	// HitRadiusBase 基准命中半径（像素，基准场地宽度下）
	HitRadiusBase = 32.0

	// SpatialCellFactor 空间网格格边长与命中半径的比值
	// 格边长 = 2 × 命中半径时，3×3 邻域扫描必然覆盖整个判定圆
	SpatialCellFactor = 2.0
)

// 运动配置
const (
	// HitGravity 被击中后的下坠加速度（像素/秒²）
	HitGravity = 2200.0

	// HitFallInitialSpeed 被击中瞬间的初始下落速度（像素/秒）
	HitFallInitialSpeed = 120.0

	// OffscreenMargin 目标超出场地边界该距离后退场（像素）
	// 留出余量避免贴图尚未完全移出就消失
	OffscreenMargin = 160.0

	// ButterflyWaveAmplitude 蝴蝶正弦轨迹的垂直振幅（像素）
	ButterflyWaveAmplitude = 46.0

	// ButterflyWaveAngularSpeed 蝴蝶正弦轨迹的角速度（弧度/秒）
	ButterflyWaveAngularSpeed = 4.2

	// BeeJitterSpeed 蜜蜂水平抖动速度上限（像素/秒）
	BeeJitterSpeed = 90.0

	// MinHorizontalSpeed 正弦轨迹有效的最小水平速度（像素/秒）
	// 水平速度低于该值时退化为直线飞行，避免飞行进度除零
	MinHorizontalSpeed = 1.0
)

// 生成配置
const (
	// SpawnEdgeInset 生成点距场地边界的外侧距离（像素）
	SpawnEdgeInset = 48.0

	// SpawnLaneMargin 生成点与目标点距场地上下边的最小距离（像素）
	// 避免目标贴着屏幕边缘飞行难以点击
	SpawnLaneMargin = 64.0
)

// 浮动得分提示配置
const (
	// IndicatorLifetime 浮动得分提示的存活时长（秒）
	IndicatorLifetime = 0.8

	// IndicatorRiseSpeed 浮动得分提示的上浮速度（像素/秒）
	IndicatorRiseSpeed = 60.0
)

// 光标化身配置
const (
	// CursorWhackSeconds 挥击动画的播放时长（秒）
	CursorWhackSeconds = 0.25
)
