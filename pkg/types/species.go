// Package types 定义共享的基础类型
package types

import "math/rand"

// Species 定义飞行目标的物种
type Species int

const (
	// SpeciesUnknown 未知物种
	SpeciesUnknown Species = iota

	SpeciesBee       // 蜜蜂（常见）
	SpeciesButterfly // 蝴蝶（较常见）
	SpeciesFly       // 苍蝇（少见）
	SpeciesAva       // 艾娃鸟（稀有）
)

// MotionKind 定义物种的运动模式
type MotionKind int

const (
	// MotionLinear 匀速直线飞行
	MotionLinear MotionKind = iota
	// MotionSine 在直线轨迹上叠加正弦垂直偏移
	MotionSine
	// MotionJitter 每帧叠加随机水平抖动
	MotionJitter
)

// SheetID 常量 - 用于在精灵表注册表中查找物种贴图
const (
	SheetIDBee       = "bee"
	SheetIDButterfly = "butterfly"
	SheetIDFly       = "fly"
	SheetIDAva       = "ava"
)

// speciesStringMap 物种到配置字符串的映射
var speciesStringMap = map[Species]string{
	SpeciesBee:       "bee",
	SpeciesButterfly: "butterfly",
	SpeciesFly:       "fly",
	SpeciesAva:       "ava",
}

// speciesSheetIDMap 物种到精灵表 ID 的映射
var speciesSheetIDMap = map[Species]string{
	SpeciesBee:       SheetIDBee,
	SpeciesButterfly: SheetIDButterfly,
	SpeciesFly:       SheetIDFly,
	SpeciesAva:       SheetIDAva,
}

// speciesPointsMap 物种到击中得分的映射（越稀有分越高）
var speciesPointsMap = map[Species]int{
	SpeciesBee:       10,
	SpeciesButterfly: 25,
	SpeciesFly:       50,
	SpeciesAva:       100,
}

// speciesWeightMap 物种到生成权重的映射（权重和为 100）
var speciesWeightMap = map[Species]int{
	SpeciesBee:       60,
	SpeciesButterfly: 25,
	SpeciesFly:       10,
	SpeciesAva:       5,
}

// stringToSpeciesMap 配置字符串到物种的反向映射
var stringToSpeciesMap map[string]Species

func init() {
	stringToSpeciesMap = make(map[string]Species)
	for sp, s := range speciesStringMap {
		stringToSpeciesMap[s] = sp
	}
}

// AllSpecies 按权重从高到低排列的全部可生成物种
// 顺序固定，固定随机种子时加权抽样结果可复现
var AllSpecies = []Species{
	SpeciesBee,
	SpeciesButterfly,
	SpeciesFly,
	SpeciesAva,
}

// String 返回物种的配置字符串表示（用于配置文件与对局记录）
func (s Species) String() string {
	if name, ok := speciesStringMap[s]; ok {
		return name
	}
	return "unknown"
}

// SheetID 返回物种对应的精灵表 ID
func (s Species) SheetID() string {
	if id, ok := speciesSheetIDMap[s]; ok {
		return id
	}
	return SheetIDBee // 默认返回蜜蜂
}

// Points 返回击中该物种获得的分数
func (s Species) Points() int {
	if p, ok := speciesPointsMap[s]; ok {
		return p
	}
	return 0
}

// Weight 返回该物种的生成权重
func (s Species) Weight() int {
	if w, ok := speciesWeightMap[s]; ok {
		return w
	}
	return 0
}

// Motion 返回该物种的运动模式
func (s Species) Motion() MotionKind {
	switch s {
	case SpeciesButterfly:
		return MotionSine
	case SpeciesBee:
		return MotionJitter
	default:
		return MotionLinear
	}
}

// SpeedScale 返回该物种相对基础速度的倍率
func (s Species) SpeedScale() float64 {
	switch s {
	case SpeciesFly:
		return 1.5
	case SpeciesAva:
		return 1.2
	case SpeciesButterfly:
		return 0.85
	default:
		return 1.0
	}
}

// ArtFacesLeft 返回该物种的原始贴图是否朝左
// 朝向与贴图不一致时渲染系统需要水平镜像
func (s Species) ArtFacesLeft() bool {
	switch s {
	case SpeciesBee, SpeciesFly:
		return true
	default:
		return false
	}
}

// SpeciesFromString 将配置字符串转换为 Species
func SpeciesFromString(name string) Species {
	if sp, ok := stringToSpeciesMap[name]; ok {
		return sp
	}
	return SpeciesUnknown
}

// TotalSpawnWeight 返回全部物种权重之和
func TotalSpawnWeight() int {
	total := 0
	for _, sp := range AllSpecies {
		total += sp.Weight()
	}
	return total
}

// PickWeighted 按生成权重随机抽取一个物种
// 抽样使用累积权重法，r 为调用方持有的随机源
func PickWeighted(r *rand.Rand) Species {
	total := TotalSpawnWeight()
	if total <= 0 {
		return SpeciesBee
	}
	roll := r.Intn(total)
	for _, sp := range AllSpecies {
		roll -= sp.Weight()
		if roll < 0 {
			return sp
		}
	}
	return AllSpecies[len(AllSpecies)-1]
}
