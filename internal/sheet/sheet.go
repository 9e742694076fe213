// Package sheet implements fixed-grid sprite sheet bookkeeping.
//
// A sheet slices a single source image into equally sized frames laid out in
// row-major order. Registering a sheet and binding its decoded image are
// separate steps: geometry comes from the resource configuration and is
// available immediately, while the image may arrive later (or never, when
// the asset is missing on disk). A sheet without a bound image reports
// itself as not ready and callers are expected to skip drawing it.
package sheet

import (
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Info describes the fixed frame grid of one sprite sheet.
type Info struct {
	// ID is the registry key, e.g. "bee".
	ID string
	// FrameWidth and FrameHeight are the pixel size of a single frame.
	FrameWidth  int
	FrameHeight int
	// FrameCount is the number of animation frames stored in the image.
	FrameCount int
	// Columns is the number of frames per row in the image.
	Columns int
	// LoopSeconds is the duration of one full animation cycle.
	LoopSeconds float64
}

// Validate reports whether the geometry is usable.
func (info Info) Validate() error {
	if info.ID == "" {
		return fmt.Errorf("sheet: empty id")
	}
	if info.FrameWidth <= 0 || info.FrameHeight <= 0 {
		return fmt.Errorf("sheet %q: invalid frame size %dx%d", info.ID, info.FrameWidth, info.FrameHeight)
	}
	if info.FrameCount <= 0 {
		return fmt.Errorf("sheet %q: invalid frame count %d", info.ID, info.FrameCount)
	}
	if info.Columns <= 0 {
		return fmt.Errorf("sheet %q: invalid column count %d", info.ID, info.Columns)
	}
	if info.LoopSeconds <= 0 {
		return fmt.Errorf("sheet %q: invalid loop duration %v", info.ID, info.LoopSeconds)
	}
	return nil
}

// FrameDuration returns how long a single frame is shown.
func (info Info) FrameDuration() float64 {
	if info.FrameCount <= 0 {
		return 0
	}
	return info.LoopSeconds / float64(info.FrameCount)
}

// FrameRect returns the pixel rectangle of frame i within the source image.
// The index wraps modulo FrameCount, so callers may pass a monotonically
// increasing counter.
func (info Info) FrameRect(i int) image.Rectangle {
	if info.FrameCount <= 0 || info.Columns <= 0 {
		return image.Rectangle{}
	}
	i %= info.FrameCount
	if i < 0 {
		i += info.FrameCount
	}
	col := i % info.Columns
	row := i / info.Columns
	x0 := col * info.FrameWidth
	y0 := row * info.FrameHeight
	return image.Rect(x0, y0, x0+info.FrameWidth, y0+info.FrameHeight)
}

// Sheet couples frame geometry with the (optionally bound) source image.
type Sheet struct {
	Info
	img *ebiten.Image
}

// Ready reports whether the source image has been bound.
func (s *Sheet) Ready() bool {
	return s != nil && s.img != nil
}

// Image returns the bound source image, or nil when not ready.
func (s *Sheet) Image() *ebiten.Image {
	if s == nil {
		return nil
	}
	return s.img
}

// Frame returns the sub-image for frame i, or nil when the sheet is not
// ready. The returned image shares pixels with the source image.
func (s *Sheet) Frame(i int) *ebiten.Image {
	if !s.Ready() {
		return nil
	}
	return s.img.SubImage(s.FrameRect(i)).(*ebiten.Image)
}

// Registry tracks every declared sheet by ID.
type Registry struct {
	sheets map[string]*Sheet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sheets: make(map[string]*Sheet)}
}

// Register adds a sheet with the given geometry. Duplicate IDs and invalid
// geometry are rejected.
func (r *Registry) Register(info Info) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if _, exists := r.sheets[info.ID]; exists {
		return fmt.Errorf("sheet %q: already registered", info.ID)
	}
	r.sheets[info.ID] = &Sheet{Info: info}
	return nil
}

// Bind attaches the decoded source image to a registered sheet.
func (r *Registry) Bind(id string, img *ebiten.Image) error {
	s, ok := r.sheets[id]
	if !ok {
		return fmt.Errorf("sheet %q: not registered", id)
	}
	s.img = img
	return nil
}

// Lookup returns the sheet for id, or nil when it was never registered.
func (r *Registry) Lookup(id string) *Sheet {
	return r.sheets[id]
}

// IDs returns all registered sheet IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.sheets))
	for id := range r.sheets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
