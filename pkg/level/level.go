// Package level describes map data: ground tiles, obstacles, invisible
// collision boxes and entity markers, and turns it into session entities.
package level

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Layer names every map must provide.
const (
	LayerGround     = "Ground"
	LayerObjects    = "Objects"
	LayerCollisions = "Collisions"
	LayerEntities   = "Entities"

	// PlayerMarker names the entity marker that places the player. Every
	// other marker is a hostile spawn point.
	PlayerMarker = "Player"
)

// RequiredLayers lists the layers in load order.
var RequiredLayers = []string{LayerGround, LayerObjects, LayerCollisions, LayerEntities}

var (
	ErrMissingLayer      = errors.New("missing map layer")
	ErrMalformedGeometry = errors.New("malformed map geometry")
	ErrNoPlayer          = errors.New("map has no player marker")
)

// Tile is one ground cell, positioned by grid coordinate.
type Tile struct {
	Col, Row int
	Frame    entity.Frame
}

// Object is a drawn obstacle with its top-left corner at X, Y.
type Object struct {
	X, Y  float64
	Frame entity.Frame
}

// Box is invisible collision geometry.
type Box struct {
	X, Y, Width, Height float64
}

// Marker is a named point from the entities layer.
type Marker struct {
	Name string
	X, Y float64
}

// Level is the decoded content of a map.
type Level struct {
	TileSize   float64
	Ground     []Tile
	Objects    []Object
	Collisions []Box
	Entities   []Marker
}

// Built is what Populate registered.
type Built struct {
	Player      *entity.Entity
	SpawnPoints []physics.Vector2D
	Obstacles   []physics.Rect
}

// CheckLayers returns ErrMissingLayer naming the first required layer absent
// from present.
func CheckLayers(present []string) error {
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}
	for _, name := range RequiredLayers {
		if !have[name] {
			return fmt.Errorf("%w: %s", ErrMissingLayer, name)
		}
	}
	return nil
}

// Validate checks geometry and the player marker.
func (l *Level) Validate() error {
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %v", ErrMalformedGeometry, l.TileSize)
	}
	for i, o := range l.Objects {
		if o.Frame.Width <= 0 || o.Frame.Height <= 0 {
			return fmt.Errorf("%w: object %d has size %vx%v", ErrMalformedGeometry, i, o.Frame.Width, o.Frame.Height)
		}
	}
	for i, b := range l.Collisions {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: collision box %d has size %vx%v", ErrMalformedGeometry, i, b.Width, b.Height)
		}
	}
	if _, ok := l.Player(); !ok {
		return ErrNoPlayer
	}
	return nil
}

// Player returns the player marker.
func (l *Level) Player() (Marker, bool) {
	for _, m := range l.Entities {
		if m.Name == PlayerMarker {
			return m, true
		}
	}
	return Marker{}, false
}

// SpawnPoints returns every marker that is not the player, in map order.
func (l *Level) SpawnPoints() []physics.Vector2D {
	var points []physics.Vector2D
	for _, m := range l.Entities {
		if m.Name != PlayerMarker {
			points = append(points, physics.Vector2D{X: m.X, Y: m.Y})
		}
	}
	return points
}

// Populate validates the level and registers its entities in store: ground
// tiles, then objects, then collision boxes, then the player centred on its
// marker. Registration order is draw order.
func (l *Level) Populate(store *entity.Store, player *entity.Entity) (*Built, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	built := &Built{}
	for _, t := range l.Ground {
		pos := physics.Vector2D{X: float64(t.Col) * l.TileSize, Y: float64(t.Row) * l.TileSize}
		store.Add(entity.NewGround(pos, t.Frame))
	}
	for _, o := range l.Objects {
		e := store.Add(entity.NewObstacle(physics.Vector2D{X: o.X, Y: o.Y}, o.Frame, true))
		built.Obstacles = append(built.Obstacles, e.Rect())
	}
	for _, b := range l.Collisions {
		e := store.Add(entity.NewObstacle(physics.Vector2D{X: b.X, Y: b.Y}, entity.BoxFrame(b.Width, b.Height), false))
		built.Obstacles = append(built.Obstacles, e.Rect())
	}

	marker, _ := l.Player()
	player.SetCenter(physics.Vector2D{X: marker.X, Y: marker.Y})
	built.Player = store.Add(player)
	built.SpawnPoints = l.SpawnPoints()
	return built, nil
}
