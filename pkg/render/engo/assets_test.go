package engo

import (
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-vampires/pkg/level"
	"github.com/opd-ai/go-vampires/pkg/logging"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestAssetManager(root string, variants ...string) *AssetManager {
	am := NewAssetManager(root, variants, 5, logging.Discard())
	am.texture = nil
	return am
}

func TestDecodeDir_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "10.png"), 3, 3)
	writePNG(t, filepath.Join(dir, "2.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "1.png"), 1, 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	images, err := decodeDir(dir)
	if err != nil {
		t.Fatalf("decodeDir() error = %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("decoded %d images, want 3", len(images))
	}
	for i, want := range []int{1, 2, 3} {
		if got := images[i].Bounds().Dx(); got != want {
			t.Errorf("image %d width = %d, want %d", i, got, want)
		}
	}
}

func TestDecodeFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeFile(path); err == nil {
		t.Error("decodeFile() should fail on corrupt data")
	}
}

func TestAssetManager_LoadFromDisk(t *testing.T) {
	root := t.TempDir()
	for _, facing := range Facings {
		writePNG(t, filepath.Join(root, "images", "player", facing, "0.png"), 40, 50)
		writePNG(t, filepath.Join(root, "images", "player", facing, "1.png"), 40, 50)
	}
	writePNG(t, filepath.Join(root, "images", "enemies", "bat", "0.png"), 20, 20)
	writePNG(t, filepath.Join(root, "images", "gun", "bullet.png"), 8, 4)

	assets, err := newTestAssetManager(root, "bat").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	down := assets.PlayerAnimations["down"]
	if down == nil || len(down.Frames) != 2 {
		t.Fatalf("down animation = %+v, want 2 frames", down)
	}
	if f := down.Frames[0]; f.Width != 40 || f.Height != 50 {
		t.Errorf("player frame size = %vx%v, want 40x50", f.Width, f.Height)
	}
	if f := down.Frames[0]; f.Mask == nil || f.Mask.Count() != 1 {
		t.Error("player frame mask should hold the single opaque pixel")
	}
	if len(assets.Variants["bat"]) != 1 {
		t.Errorf("bat frames = %d, want 1", len(assets.Variants["bat"]))
	}
	if assets.Projectile.Width != 8 || assets.Projectile.Height != 4 {
		t.Errorf("projectile size = %vx%v, want 8x4", assets.Projectile.Width, assets.Projectile.Height)
	}
}

func TestAssetManager_GeneratedFallback(t *testing.T) {
	assets, err := newTestAssetManager(t.TempDir(), "bat", "blob", "skeleton").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, facing := range Facings {
		if anim := assets.PlayerAnimations[facing]; anim == nil || len(anim.Frames) != 1 {
			t.Errorf("facing %q should fall back to one generated frame", facing)
		}
	}
	for _, v := range []string{"bat", "blob", "skeleton"} {
		frames := assets.Variants[v]
		if len(frames) != 1 || frames[0].Mask == nil || frames[0].Mask.Count() == 0 {
			t.Errorf("variant %q fallback frame is empty", v)
		}
	}
	if assets.Projectile.Width != 12 || assets.Projectile.Height != 12 {
		t.Errorf("projectile size = %vx%v, want 12x12", assets.Projectile.Width, assets.Projectile.Height)
	}
}

func TestAssetManager_CorruptFrameFails(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "images", "player", "up")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "0.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newTestAssetManager(root).Load(); err == nil {
		t.Error("Load() should fail on an undecodable frame")
	}
}

func TestPatternImage(t *testing.T) {
	img := patternImage([]string{"#.", ".#"}, color.NRGBA{1, 2, 3, 255}, 3)

	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("size = %v, want 6x6", b)
	}
	tests := []struct {
		x, y  int
		solid bool
	}{
		{0, 0, true},
		{2, 2, true},
		{3, 0, false},
		{0, 3, false},
		{5, 5, true},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y).A == 255; got != tt.solid {
			t.Errorf("pixel (%d,%d) solid = %v, want %v", tt.x, tt.y, got, tt.solid)
		}
	}
}

func TestToNRGBA_RebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 9))
	src.Set(5, 5, color.White)

	dst := toNRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 3, 4) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if dst.NRGBAAt(0, 0).A != 255 {
		t.Error("top-left pixel should be opaque")
	}
}

func TestAssetManager_SkinWithoutTextures(t *testing.T) {
	lvl := level.Arena(8, 8, 16, rand.New(rand.NewPCG(1, 1)))
	newTestAssetManager("").Skin(lvl)
	if lvl.Ground[0].Frame.Visual != nil {
		t.Error("without a texture function visuals stay nil")
	}
}
