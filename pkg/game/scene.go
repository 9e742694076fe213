package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (main menu, whack round).
// Each scene owns its update and rendering logic; the SceneManager decides
// which one is active.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}
