// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-vampires/pkg/input"
)

// Button names registered with engo.
const (
	ButtonUp    = "up"
	ButtonDown  = "down"
	ButtonLeft  = "left"
	ButtonRight = "right"
	ButtonFire  = "fire"
	ButtonQuit  = "quit"
)

// SetupInputBindings registers the movement, fire and quit buttons.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)

	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}

// pollInput samples the registered buttons.
func pollInput() input.Snapshot {
	return snapshotFrom(func(name string) bool {
		return engo.Input.Button(name).Down()
	})
}

// snapshotFrom builds a snapshot from a button state lookup.
func snapshotFrom(down func(name string) bool) input.Snapshot {
	return input.Snapshot{
		Quit:      down(ButtonQuit),
		Fire:      down(ButtonFire),
		Direction: input.FromKeys(down(ButtonUp), down(ButtonDown), down(ButtonLeft), down(ButtonRight)),
	}
}
