// pkg/render/engo/assets.go
package engo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/level"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/session"
)

// Facings the player has animation folders for.
var Facings = []string{"up", "down", "left", "right"}

// AssetManager loads sprite frames from disk, generating simple sprites for
// any folder that does not exist.
type AssetManager struct {
	root     string
	variants []string
	fps      float64
	// texture turns a decoded image into something the canvas can draw. Nil
	// leaves frames without a visual.
	texture func(*image.NRGBA) any
	logger  *logging.Logger
}

// NewAssetManager creates an asset manager rooted at root.
func NewAssetManager(root string, variants []string, fps float64, logger *logging.Logger) *AssetManager {
	return &AssetManager{
		root:     root,
		variants: variants,
		fps:      fps,
		texture:  convertToEngoTexture,
		logger:   logger,
	}
}

// Load decodes the player animations, every hostile variant and the
// projectile sprite.
func (am *AssetManager) Load() (session.Assets, error) {
	assets := session.Assets{
		PlayerAnimations: make(map[string]*entity.Animation, len(Facings)),
		Variants:         make(map[string][]entity.Frame, len(am.variants)),
	}

	for _, facing := range Facings {
		frames, err := am.loadFrames(filepath.Join("images", "player", facing), playerSprite)
		if err != nil {
			return assets, err
		}
		assets.PlayerAnimations[facing] = entity.NewAnimation(am.fps, frames...)
	}

	for _, variant := range am.variants {
		frames, err := am.loadFrames(filepath.Join("images", "enemies", variant), func() *image.NRGBA {
			return hostileSprite(variant)
		})
		if err != nil {
			return assets, err
		}
		assets.Variants[variant] = frames
	}

	bullet, err := am.loadFrames(filepath.Join("images", "gun"), bulletSprite)
	if err != nil {
		return assets, err
	}
	assets.Projectile = bullet[0]

	return assets, nil
}

// loadFrames decodes every PNG in dir, ordered by numeric file name. A
// missing directory yields the generated fallback frame.
func (am *AssetManager) loadFrames(dir string, fallback func() *image.NRGBA) ([]entity.Frame, error) {
	images, err := decodeDir(filepath.Join(am.root, dir))
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(images) == 0) {
		am.logger.Warn(context.Background(), "Sprite folder missing, using generated sprite", "dir", dir)
		images = []*image.NRGBA{fallback()}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load sprites from %s: %w", dir, err)
	}

	frames := make([]entity.Frame, len(images))
	for i, img := range images {
		frames[i] = am.frame(img)
	}
	return frames, nil
}

func (am *AssetManager) frame(img *image.NRGBA) entity.Frame {
	var visual any
	if am.texture != nil {
		visual = am.texture(img)
	}
	return entity.NewFrameWithVisual(visual, img)
}

// Skin gives generated visuals to level geometry that has none, so a
// procedural level can be drawn.
func (am *AssetManager) Skin(l *level.Level) {
	ground := am.solid(int(l.TileSize), int(l.TileSize), color.NRGBA{0x4a, 0x3d, 0x52, 0xff})
	for i := range l.Ground {
		if l.Ground[i].Frame.Visual == nil {
			l.Ground[i].Frame.Visual = ground
		}
	}
	for i := range l.Objects {
		f := &l.Objects[i].Frame
		if f.Visual == nil {
			f.Visual = am.solid(int(f.Width), int(f.Height), color.NRGBA{0x6b, 0x5e, 0x70, 0xff})
		}
	}
}

func (am *AssetManager) solid(w, h int, c color.NRGBA) any {
	if am.texture == nil {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return am.texture(img)
}

// decodeDir decodes the PNG files in dir in numeric name order.
func decodeDir(dir string) ([]*image.NRGBA, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, aerr := strconv.Atoi(strings.TrimSuffix(names[i], filepath.Ext(names[i])))
		b, berr := strconv.Atoi(strings.TrimSuffix(names[j], filepath.Ext(names[j])))
		if aerr == nil && berr == nil {
			return a < b
		}
		return names[i] < names[j]
	})

	images := make([]*image.NRGBA, 0, len(names))
	for _, name := range names {
		img, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func decodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toNRGBA(src), nil
}

// toNRGBA copies any image into a zero-origin NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// convertToEngoTexture uploads an image as an engo texture.
func convertToEngoTexture(img *image.NRGBA) any {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// Generated sprites, one pattern cell per scale x scale block of pixels.

func playerSprite() *image.NRGBA {
	return patternImage([]string{
		"..####..",
		"..#..#..",
		"..####..",
		".######.",
		"#.####.#",
		"..####..",
		"..#..#..",
		".##..##.",
	}, color.NRGBA{0xe8, 0xd4, 0x8a, 0xff}, 6)
}

func hostileSprite(variant string) *image.NRGBA {
	switch variant {
	case "bat":
		return patternImage([]string{
			"#......#",
			"##.##.##",
			"########",
			".######.",
			"..#..#..",
		}, color.NRGBA{0x8c, 0x4a, 0xb8, 0xff}, 6)
	case "skeleton":
		return patternImage([]string{
			"..###...",
			".#.#.#..",
			"..###...",
			"...#....",
			".#####..",
			"...#....",
			"..#.#...",
			".#...#..",
		}, color.NRGBA{0xdd, 0xdd, 0xd0, 0xff}, 6)
	default:
		return patternImage([]string{
			"..####..",
			".######.",
			"##.##.##",
			"########",
			"########",
			".######.",
		}, color.NRGBA{0x5c, 0xc8, 0x5a, 0xff}, 6)
	}
}

func bulletSprite() *image.NRGBA {
	return patternImage([]string{
		".#.",
		"###",
		".#.",
	}, color.NRGBA{0xff, 0xf0, 0xc0, 0xff}, 4)
}

// patternImage draws '#' cells of pattern in c on a transparent image.
func patternImage(pattern []string, c color.NRGBA, scale int) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		width = max(width, len(row))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width*scale, len(pattern)*scale))
	for y, row := range pattern {
		for x, cell := range row {
			if cell != '#' {
				continue
			}
			block := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			draw.Draw(img, block, &image.Uniform{c}, image.Point{}, draw.Src)
		}
	}
	return img
}
