package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"gopkg.in/yaml.v3"

	au "github.com/gonewx/skywhack/internal/audio"
	"github.com/gonewx/skywhack/internal/sheet"
)

// ResourceManager is responsible for centralized management of game assets.
// It provides loading and caching for images, audio and fonts, and owns the
// sprite sheet registry that render and animation code read frames from.
//
// Assets are addressed by resource ID. The ID to file path mapping comes from
// the resource configuration (data/resources.yaml), so code never hard-codes
// asset paths.
//
// Missing assets are not fatal: a sheet whose image failed to load simply
// never becomes ready and is skipped at draw time, and a missing sound stays
// silent. This keeps the game runnable from a bare checkout.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go
// maps. Load everything from the main goroutine before the game loop starts,
// or add external locking.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: path -> Image
	audioCache    map[string]*audio.Player    // Cache for loaded audio players: path -> Player
	audioContext  *audio.Context              // Global audio context for audio decoding
	fontFaceCache map[string]*text.GoTextFace // Cache for Ebitengine v2 text faces

	sheets *sheet.Registry // Sprite sheet registry, populated from the resource config

	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
	sheetImage  map[string]string // Sheet ID -> image resource ID mapping
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// The audioContext parameter is required for audio decoding and playback.
// It should be created once at game startup with a sample rate of 48000 Hz.
//
// Parameters:
//   - audioContext: The global audio context used for decoding and playing audio files.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
//
// Example:
//
//	audioContext := audio.NewContext(48000)
//	resourceManager := NewResourceManager(audioContext)
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
		sheets:        sheet.NewRegistry(),
		resourceMap:   make(map[string]string),
		sheetImage:    make(map[string]string),
	}
}

// Sheets returns the sprite sheet registry.
// Sheet geometry is registered when the resource configuration is parsed;
// images are bound as they get loaded.
func (rm *ResourceManager) Sheets() *sheet.Registry {
	return rm.sheets
}

// LoadResourceConfig loads the resource configuration from a YAML file on disk.
// This method should be called once during game initialization, before loading
// any resources.
//
// Parameters:
//   - configPath: Path to the YAML configuration file (e.g., "data/resources.yaml")
//
// Returns:
//   - An error if the file cannot be opened or parsed
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.LoadResourceConfigData(data)
}

// LoadResourceConfigData parses the resource configuration from raw YAML bytes.
// Use this variant when the configuration comes from the embedded data
// filesystem instead of a loose file.
//
// Parameters:
//   - data: Raw YAML content of the resource configuration
//
// Returns:
//   - An error if the content cannot be parsed or a sheet definition is invalid
func (rm *ResourceManager) LoadResourceConfigData(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}

	rm.config = &config
	rm.buildResourceMap()

	if err := rm.registerSheets(); err != nil {
		return err
	}

	log.Printf("[ResourceManager] Resource config loaded: %d resources, %d sheets",
		len(rm.resourceMap), len(config.Sheets))
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
// This allows fast lookup when loading resources by ID.
//
// The mapping combines the base path with each resource's relative path.
// For example:
//
//	IMAGE_BEE -> assets/images/bee.png
//	SOUND_WHACK -> assets/sounds/whack.ogg
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	rm.resourceMap = make(map[string]string)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			// Add file extension if not present
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".ogg" // Default to OGG for sounds
			}
			rm.resourceMap[sound.ID] = fullPath
		}

		for _, font := range group.Fonts {
			fullPath := buildFullPath(rm.config.BasePath, font.Path)
			rm.resourceMap[font.ID] = fullPath
		}
	}
}

// registerSheets registers every sheet definition from the configuration with
// the sprite sheet registry. Geometry errors are reported immediately; image
// binding happens later, when the referenced images get loaded.
func (rm *ResourceManager) registerSheets() error {
	if rm.config == nil {
		return nil
	}

	rm.sheetImage = make(map[string]string)

	for _, sh := range rm.config.Sheets {
		info := sheet.Info{
			ID:          sh.ID,
			FrameWidth:  sh.FrameWidth,
			FrameHeight: sh.FrameHeight,
			FrameCount:  sh.FrameCount,
			Columns:     sh.Columns,
			LoopSeconds: sh.LoopSeconds,
		}
		if err := rm.sheets.Register(info); err != nil {
			return fmt.Errorf("failed to register sheet %s: %w", sh.ID, err)
		}
		if sh.Image == "" {
			return fmt.Errorf("sheet %s: missing image resource ID", sh.ID)
		}
		rm.sheetImage[sh.ID] = sh.Image
	}

	return nil
}

// BindSheets binds every registered sheet whose source image is already in
// the image cache. Call it after loading an image group; sheets whose images
// failed to load stay unbound and are skipped at draw time.
//
// Returns:
//   - The number of sheets that are now bound.
func (rm *ResourceManager) BindSheets() int {
	bound := 0
	for sheetID, imageID := range rm.sheetImage {
		sh := rm.sheets.Lookup(sheetID)
		if sh == nil {
			continue
		}
		if sh.Ready() {
			bound++
			continue
		}
		img := rm.GetImageByID(imageID)
		if img == nil {
			continue
		}
		if err := rm.sheets.Bind(sheetID, img); err != nil {
			log.Printf("[ResourceManager] Warning: failed to bind sheet %s: %v", sheetID, err)
			continue
		}
		bound++
	}
	return bound
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Parameters:
//   - path: The file path to the image resource (e.g., "assets/images/bee.png").
//
// Returns:
//   - A pointer to the loaded ebiten.Image.
//   - An error if the file cannot be opened, decoded, or converted.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg

	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// pcmStream is the decoded stream shape the audio player consumes:
// seekable 16-bit PCM with a known total byte length.
type pcmStream interface {
	io.ReadSeeker
	Length() int64
}

// resampledStream pairs a rate-converted stream with its recomputed byte
// length, since audio.Resample returns a plain io.ReadSeeker.
type resampledStream struct {
	io.ReadSeeker
	length int64
}

func (s *resampledStream) Length() int64 { return s.length }

// decodeAU decodes a Sun/NeXT .au file and adapts the PCM to the stereo
// layout and context sample rate the audio player expects.
func (rm *ResourceManager) decodeAU(reader io.Reader, path string) (pcmStream, error) {
	decoded, err := au.DecodeAU(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode AU audio %s: %w", path, err)
	}

	pcm := decoded.UpmixMonoToStereo()
	contextRate := int64(rm.audioContext.SampleRate())
	if pcm.SampleRate() == contextRate {
		return pcm, nil
	}

	// 4 bytes per frame: two 16-bit channels
	length := pcm.Length() * contextRate / pcm.SampleRate()
	length -= length % 4
	return &resampledStream{
		ReadSeeker: audio.Resample(pcm, pcm.Length(), int(pcm.SampleRate()), int(contextRate)),
		length:     length,
	}, nil
}

// LoadAudio loads an audio file from the specified path and caches it for future use.
// If the audio has already been loaded, it returns the cached player.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and Sun/NeXT μ-law audio (.au).
//
// The audio is automatically wrapped in an infinite loop, making it suitable
// for background music. For one-shot sound effects use LoadSoundEffect.
//
// Parameters:
//   - path: The file path to the audio resource (e.g., "assets/music/round.ogg").
//
// Returns:
//   - A pointer to the audio player (ready to play, but not started).
//   - An error if the file cannot be opened, decoded, or the format is unsupported.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}
	defer file.Close()

	// Read the entire file into memory so the stream can seek without
	// keeping the file handle open
	audioData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	reader := bytes.NewReader(audioData)
	ext := strings.ToLower(filepath.Ext(path))

	var stream pcmStream

	switch ext {
	case ".mp3":
		decodedStream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decodedStream
	case ".ogg":
		decodedStream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decodedStream
	case ".au":
		decodedStream, err := rm.decodeAU(reader, path)
		if err != nil {
			return nil, err
		}
		stream = decodedStream
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .au)", ext)
	}

	// Wrap the stream in an infinite loop for background music
	loopStream := audio.NewInfiniteLoop(stream, stream.Length())

	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// LoadSoundEffect loads a sound effect from the specified path and caches it for future use.
// Unlike LoadAudio, this method does NOT wrap the audio in an infinite loop,
// making it suitable for one-shot sound effects like whack hits or button clicks.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and Sun/NeXT μ-law audio (.au).
//
// Parameters:
//   - path: The file path to the sound effect resource (e.g., "assets/sounds/whack.ogg").
//
// Returns:
//   - A pointer to the audio player (ready to play, but not started).
//   - An error if the file cannot be opened, decoded, or the format is unsupported.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}

	reader := bytes.NewReader(audioData)
	ext := strings.ToLower(filepath.Ext(path))

	var stream io.ReadSeeker

	switch ext {
	case ".mp3":
		decodedStream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = decodedStream
	case ".ogg":
		decodedStream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = decodedStream
	case ".au":
		decodedStream, err := rm.decodeAU(reader, path)
		if err != nil {
			return nil, err
		}
		stream = decodedStream
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .au)", ext)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// GetAudioPlayer retrieves a previously loaded audio player from the cache.
// If the audio has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates
// a text face with the given size. The font face is cached with a key that
// combines path and size, so the same font can be used at several sizes.
//
// Parameters:
//   - path: The file path to the font resource (e.g., "assets/fonts/main.ttf").
//   - size: The font size in pixels.
//
// Returns:
//   - A pointer to the text.GoTextFace ready for rendering.
//   - An error if the file cannot be opened or parsed.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)

	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}

	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// GetFont retrieves a previously loaded font face from the cache.
// If the font has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	return rm.fontFaceCache[cacheKey]
}

// LoadFontByID loads a font by resource ID at the given size.
func (rm *ResourceManager) LoadFontByID(resourceID string, size float64) (*text.GoTextFace, error) {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadFont(filePath, size)
}

// GetFontByID retrieves a previously loaded font face by resource ID, or nil.
func (rm *ResourceManager) GetFontByID(resourceID string, size float64) *text.GoTextFace {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil
	}
	return rm.GetFont(filePath, size)
}

// LoadImageByID loads an image resource using its resource ID.
// The resource ID must be defined in the YAML configuration file.
//
// Parameters:
//   - resourceID: The resource ID (e.g., "IMAGE_BEE")
//
// Returns:
//   - A pointer to the loaded ebiten.Image
//   - An error if the ID is not found or the image cannot be loaded
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}

	return rm.LoadImage(filePath)
}

// GetImageByID retrieves a previously loaded image using its resource ID.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	if rm.config == nil {
		return nil
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil
	}

	return rm.GetImage(filePath)
}

// LoadResourceGroup loads all resources in a specified group and binds any
// sheets whose images became available.
//
// Individual assets that fail to load are logged and skipped instead of
// aborting the whole group: the game degrades gracefully when art or audio
// files are missing. Only an unknown group name is an error.
//
// Parameters:
//   - groupName: The name of the resource group (e.g., "game")
//
// Returns:
//   - The number of assets that failed to load.
//   - An error if the group does not exist or the config is not loaded.
//
// Example:
//
//	if missing, err := rm.LoadResourceGroup("game"); err != nil {
//	    log.Fatal(err)
//	} else if missing > 0 {
//	    log.Printf("%d assets missing, continuing without them", missing)
//	}
func (rm *ResourceManager) LoadResourceGroup(groupName string) (int, error) {
	if rm.config == nil {
		return 0, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return 0, fmt.Errorf("resource group not found: %s", groupName)
	}

	failed := 0

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			log.Printf("[ResourceManager] Warning: image %s in group %s: %v", img.ID, groupName, err)
			failed++
		}
	}

	for _, snd := range group.Sounds {
		filePath, exists := rm.resourceMap[snd.ID]
		if !exists {
			log.Printf("[ResourceManager] Warning: sound resource ID not found: %s", snd.ID)
			failed++
			continue
		}
		// Sound effects load without looping; music players are created on
		// demand by the AudioManager
		if _, err := rm.LoadSoundEffect(filePath); err != nil {
			log.Printf("[ResourceManager] Warning: sound %s in group %s: %v", snd.ID, groupName, err)
			failed++
		}
	}

	// Fonts are not loaded here as they require a size parameter.
	// They should be loaded individually using LoadFontByID when needed.

	rm.BindSheets()

	return failed, nil
}

// ResolvePath returns the file path registered for a resource ID, or "" when
// the ID is unknown. Used by the AudioManager to load by ID.
func (rm *ResourceManager) ResolvePath(resourceID string) string {
	return rm.resourceMap[resourceID]
}
