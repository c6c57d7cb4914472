// pkg/render/engo/tmx.go
package engo

import (
	"fmt"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/level"
)

// LoadTMX loads a Tiled map through engo's file loader and converts it. It
// needs a running engo context.
func LoadTMX(url string) (*level.Level, error) {
	if err := engo.Files.Load(url); err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", url, err)
	}
	res, err := engo.Files.Resource(url)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", url, err)
	}
	tmx, ok := res.(common.TMXResource)
	if !ok {
		return nil, fmt.Errorf("map %s is not a TMX resource", url)
	}
	return levelFromTMX(tmx.Level)
}

// levelFromTMX converts the four named layers of a decoded map. Ground tiles
// are positioned by grid cell; drawn objects use their tile position when
// they have one.
func levelFromTMX(tl *common.Level) (*level.Level, error) {
	if tl == nil || tl.TileWidth <= 0 {
		return nil, fmt.Errorf("%w: map has no tile size", level.ErrMalformedGeometry)
	}

	var names []string
	for _, layer := range tl.TileLayers {
		names = append(names, layer.Name)
	}
	for _, layer := range tl.ObjectLayers {
		names = append(names, layer.Name)
	}
	if err := level.CheckLayers(names); err != nil {
		return nil, err
	}

	size := float64(tl.TileWidth)
	lvl := &level.Level{TileSize: size}

	for _, layer := range tl.TileLayers {
		if layer.Name != level.LayerGround {
			continue
		}
		for _, tile := range layer.Tiles {
			if tile == nil || tile.Image == nil {
				continue
			}
			lvl.Ground = append(lvl.Ground, level.Tile{
				Col:   int(float64(tile.X) / size),
				Row:   int(float64(tile.Y) / size),
				Frame: entity.Frame{Visual: tile.Image, Width: size, Height: size},
			})
		}
	}

	for _, layer := range tl.ObjectLayers {
		switch layer.Name {
		case level.LayerObjects:
			for _, obj := range layer.Objects {
				lvl.Objects = append(lvl.Objects, objectFromTMX(obj))
			}
		case level.LayerCollisions:
			for _, obj := range layer.Objects {
				lvl.Collisions = append(lvl.Collisions, level.Box{
					X:      float64(obj.X),
					Y:      float64(obj.Y),
					Width:  float64(obj.Width),
					Height: float64(obj.Height),
				})
			}
		case level.LayerEntities:
			for _, obj := range layer.Objects {
				lvl.Entities = append(lvl.Entities, level.Marker{
					Name: obj.Name,
					X:    float64(obj.X),
					Y:    float64(obj.Y),
				})
			}
		}
	}

	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// objectFromTMX converts a drawn object. Tiled anchors tile objects at their
// bottom-left corner, so those are shifted up by their height to get the
// top-left. Collision masks of objects are never consulted, so the frame
// carries none.
func objectFromTMX(obj *common.Object) level.Object {
	o := level.Object{
		X: float64(obj.X),
		Y: float64(obj.Y),
		Frame: entity.Frame{
			Width:  float64(obj.Width),
			Height: float64(obj.Height),
		},
	}
	if len(obj.Tiles) == 0 || obj.Tiles[0] == nil || obj.Tiles[0].Image == nil {
		return o
	}

	img := obj.Tiles[0].Image
	o.Frame.Visual = img
	if o.Frame.Width == 0 {
		o.Frame.Width = float64(img.Width())
	}
	if o.Frame.Height == 0 {
		o.Frame.Height = float64(img.Height())
	}
	o.Y -= o.Frame.Height
	return o
}
