package game

// 资源 ID 常量
// 代码中引用资源一律使用 ID，路径只出现在 data/resources.yaml 里
const (
	// ImageIDBee 蜜蜂精灵表贴图
	ImageIDBee = "IMAGE_BEE"
	// ImageIDButterfly 蝴蝶精灵表贴图
	ImageIDButterfly = "IMAGE_BUTTERFLY"
	// ImageIDFly 苍蝇精灵表贴图
	ImageIDFly = "IMAGE_FLY"
	// ImageIDAva 艾娃鸟精灵表贴图
	ImageIDAva = "IMAGE_AVA"
	// ImageIDCursor 光标化身待机精灵表贴图
	ImageIDCursor = "IMAGE_CURSOR"
	// ImageIDCursorWhack 光标化身挥击精灵表贴图
	ImageIDCursorWhack = "IMAGE_CURSOR_WHACK"
	// ImageIDBackground 对局场景背景图
	ImageIDBackground = "IMAGE_BACKGROUND"
	// ImageIDMenuBackground 主菜单背景图
	ImageIDMenuBackground = "IMAGE_MENU_BACKGROUND"

	// SoundIDWhack 命中音效
	SoundIDWhack = "SOUND_WHACK"
	// SoundIDSwish 挥空音效
	SoundIDSwish = "SOUND_SWISH"
	// SoundIDButton 按钮点击音效
	SoundIDButton = "SOUND_BUTTONCLICK"
	// SoundIDCountdown 开局倒计时音效
	SoundIDCountdown = "SOUND_COUNTDOWN"
	// SoundIDRoundOver 回合结束音效
	SoundIDRoundOver = "SOUND_ROUNDOVER"

	// MusicIDMenu 主菜单背景音乐
	MusicIDMenu = "MUSIC_MENU"
	// MusicIDRound 对局背景音乐
	MusicIDRound = "MUSIC_ROUND"

	// FontIDMain 界面主字体
	FontIDMain = "FONT_MAIN"
)

// ResourceConfig 顶层资源配置，对应 data/resources.yaml
//
// 结构：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  组名:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
//	sheets:
//	  - id: bee
//	    image: IMAGE_BEE
//	    frame_width: 96
//	    ...
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // 配置文件版本
	BasePath string                   `yaml:"base_path"` // 所有资源的基准目录（如 "assets"）
	Groups   map[string]ResourceGroup `yaml:"groups"`    // 按组名索引的资源组
	Sheets   []SheetResource          `yaml:"sheets"`    // 精灵表几何定义
}

// ResourceGroup 一组可以整体加载的相关资源
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // 本组的图片资源
	Sounds []SoundResource `yaml:"sounds"` // 本组的音频资源
	Fonts  []FontResource  `yaml:"fonts"`  // 本组的字体资源
}

// ImageResource 单个图片资源定义
//
// 示例：
//
//	- id: IMAGE_BEE
//	  path: images/bee
type ImageResource struct {
	ID   string `yaml:"id"`   // 资源 ID（全局唯一）
	Path string `yaml:"path"` // 相对 base_path 的路径，可省略扩展名
}

// SoundResource 单个音频资源定义
//
// 示例：
//
//	- id: SOUND_WHACK
//	  path: sounds/whack.ogg
type SoundResource struct {
	ID   string `yaml:"id"`   // 资源 ID（全局唯一）
	Path string `yaml:"path"` // 相对 base_path 的路径
}

// FontResource 单个字体资源定义
//
// 示例：
//
//	- id: FONT_MAIN
//	  path: fonts/main.ttf
type FontResource struct {
	ID   string `yaml:"id"`   // 资源 ID（全局唯一）
	Path string `yaml:"path"` // 相对 base_path 的路径
}

// SheetResource 精灵表几何定义
// 把一张图片资源按固定网格切成动画帧
//
// 示例：
//
//	- id: bee
//	  image: IMAGE_BEE
//	  frame_width: 96
//	  frame_height: 80
//	  frame_count: 6
//	  columns: 3
//	  loop_seconds: 0.6
type SheetResource struct {
	ID          string  `yaml:"id"`           // 精灵表 ID，与目标种类的 SheetID 对应
	Image       string  `yaml:"image"`        // 引用的图片资源 ID
	FrameWidth  int     `yaml:"frame_width"`  // 单帧宽度（像素）
	FrameHeight int     `yaml:"frame_height"` // 单帧高度（像素）
	FrameCount  int     `yaml:"frame_count"`  // 帧数
	Columns     int     `yaml:"columns"`      // 每行帧数
	LoopSeconds float64 `yaml:"loop_seconds"` // 一轮动画时长（秒）
}

// buildFullPath 拼出资源的完整文件路径
// 把基准目录和资源的相对路径连起来
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
