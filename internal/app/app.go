package app

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"figment/internal/field"
)

// Options is the app-level wiring the CLI resolves before the loop starts.
type Options struct {
	SVGPath      string
	SettingsPath string
	Mute         bool
}

// Run owns the desktop session: window, GL, audio, formation load, and the
// frame loop. Blocks until the window closes.
func Run(cfg *field.Config, opts Options, log *zap.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if !opts.Mute {
		if err := InitAudio(); err != nil {
			log.Warn("audio init failed, continuing without sound", zap.Error(err))
		}
	}

	// Persisted settings override the configured duration/curve.
	if opts.SettingsPath != "" {
		if s, ok, err := field.LoadSettings(opts.SettingsPath); err != nil {
			log.Warn("settings load failed", zap.Error(err))
		} else if ok {
			s.Apply(cfg)
			log.Info("settings restored", zap.Float64("loading_duration", s.LoadingDuration))
		}
	}

	// Geometry load failure is fatal: the frame loop must not start.
	sil, err := field.LoadSilhouette(opts.SVGPath)
	if err != nil {
		return err
	}
	log.Info("silhouette loaded",
		zap.String("path", opts.SVGPath),
		zap.Int("rings", len(sil.Rings)),
		zap.Float64("width", sil.Box.Width()),
		zap.Float64("height", sil.Box.Height()),
	)

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("FIGMENT_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	f := field.New(cfg, seed)
	f.BuildFormation(sil, glfw.GetTime())
	log.Info("formation built",
		zap.Int("particles", f.S.InsideCount),
		zap.Int("outside", cfg.OutsideParticleCount),
		zap.Uint64("seed", seed),
	)

	rend, err := NewRenderer(cfg.ParticleCount + cfg.OutsideParticleCount)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 1)

	input := NewInput(window)

	for !window.ShouldClose() {
		now := glfw.GetTime()
		glfw.PollEvents()

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		// Replay the appear animation.
		if input.JustPressed(window, glfw.KeyR) {
			f.Replay(now)
		}

		f.SetPointer(input.Pointer(window, cfg.CameraZ, fbW, fbH, now))
		f.SetScroll(input.ScrollProgress())

		if input.JustClicked(window, glfw.MouseButtonLeft) && f.Phase() == field.PhaseSettled {
			p := f.Pointer()
			f.Explode(p.Pos, now)
			PlayExplosion()
		}

		wavesBefore := len(f.Waves())
		f.Step(now)
		if len(f.Waves()) > wavesBefore {
			PlayWaveSweep()
		}

		rend.Draw(f, fbW, fbH)
		window.SwapBuffers()
	}

	if opts.SettingsPath != "" {
		if err := field.SaveSettings(opts.SettingsPath, field.SettingsFromConfig(cfg)); err != nil {
			log.Warn("settings save failed", zap.Error(err))
		}
	}
	return nil
}
