// Package viewer runs the interactive window that displays a grass world.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/engine/camera"
	"github.com/Faultbox/grassland/internal/engine/input"
	"github.com/Faultbox/grassland/internal/engine/lighting"
	"github.com/Faultbox/grassland/internal/engine/renderer"
	"github.com/Faultbox/grassland/internal/engine/screenshot"
	"github.com/Faultbox/grassland/internal/engine/window"
	"github.com/Faultbox/grassland/internal/game"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// Config holds viewer configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	FOV        float32 // vertical, degrees
	Sun        lighting.Sun
	Screenshot string // directory for P captures
}

// Viewer owns the window, the GL renderer and the camera looking at a world.
type Viewer struct {
	config   Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	capture  *screenshot.Capture
	world    *game.World

	// Set by P, handled after the next frame is drawn
	wantCapture bool
}

// New opens the window and creates the renderer. The world is attached
// later with SetWorld since its material template comes from the renderer.
func New(cfg Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	v := &Viewer{
		config:  cfg,
		camera:  camera.NewOrbitCamera(),
		capture: screenshot.New(cfg.Screenshot, "grassland"),
	}

	// Window first, it owns the OpenGL context
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, Sun: cfg.Sun})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	logger.Info("viewer initialized")
	return v, nil
}

// Renderer returns the GL renderer, mainly for its material template.
func (v *Viewer) Renderer() *renderer.Renderer {
	return v.renderer
}

// SetWorld attaches the world to display and frames the camera on it.
func (v *Viewer) SetWorld(w *game.World) {
	v.world = w
	v.sync()
	if b, ok := w.Scene.Bounds(); ok {
		v.camera.FitToBounds(b)
	}
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	if v.world == nil {
		return fmt.Errorf("viewer has no world")
	}
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update()

		v.render(float32(now.Sub(start).Seconds()))
		if v.wantCapture {
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.config.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.GetSize()
			v.renderer.Resize(w, h)
		case input.EventMouseDrag:
			v.camera.HandleDrag(event.DeltaX, event.DeltaY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.DeltaY)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_P:
				v.wantCapture = true
			case sdl.SCANCODE_F:
				if b, ok := v.world.Scene.Bounds(); ok {
					v.camera.FitToBounds(b)
				}
			}
		}
	}
}

// update runs the world systems and uploads any meshes they produced.
// A failed entity only loses its own grass, so errors are logged.
func (v *Viewer) update() {
	n, err := v.world.Update()
	if n > 0 {
		v.sync()
	}
	if err != nil {
		logger.Error("grass update failed", zap.Error(err))
	}
}

func (v *Viewer) sync() {
	v.renderer.Upload(v.world.Scene)
	logger.Debug("scene uploaded",
		zap.Int("meshes", v.renderer.MeshCount()),
		zap.Int("vertices", v.world.Scene.VertexCount()),
	)
}

func (v *Viewer) saveScreenshot() {
	v.wantCapture = false
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.capture.SavePixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) render(t float32) {
	near, far := v.camera.ClipPlanes()
	fov := v.config.FOV * gomath.Pi / 180
	proj := math.Perspective(fov, v.renderer.Aspect(), near, far)
	viewProj := proj.Mul(v.camera.ViewMatrix())

	v.renderer.Begin()
	v.renderer.Draw(viewProj, t)
}
