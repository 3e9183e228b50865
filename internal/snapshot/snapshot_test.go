package snapshot

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"
)

func testFrame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 6))
	for x := 0; x < 12; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 40), B: 90, A: 255})
		}
	}
	return img
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "moon.webp")
	if err := Save(path, testFrame()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 6 {
		t.Errorf("size = %dx%d, want 12x6", cfg.Width, cfg.Height)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moon.png")
	if err := Save(path, testFrame()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moon.gif")
	if err := Save(path, testFrame()); err == nil {
		t.Fatal("Save accepted .gif")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file created for rejected format")
	}
}
