package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipRGBA(t *testing.T) {
	// 1x2: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRGBA(pixels, 1, 2)

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "grass")
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	pixels := make([]byte, 4*3*4)
	path, err := c.SavePixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}

	if want := filepath.Join(dir, "grass_2024-05-01_12-30-00.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("image size = %dx%d, want 4x3", b.Dx(), b.Dy())
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "grass")
	_, err := c.SavePixels(make([]byte, 10), 2, 2)
	if err == nil || !strings.Contains(err.Error(), "mismatch") {
		t.Errorf("expected size mismatch error, got %v", err)
	}
}
