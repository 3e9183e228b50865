package main

import (
	"Moonrise/internal/config"
	"Moonrise/internal/engine"
	"Moonrise/internal/logger"
	"Moonrise/internal/renderer"
	"Moonrise/internal/snapshot"
	"Moonrise/internal/window"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// GLFW and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	scene := flag.String("scene", "", "Scene to show: moon or saturn")
	texture := flag.String("texture", "", "Moon surface texture (jpg, png, bmp, webp, tga)")
	snapshotPath := flag.String("snapshot", "", "Write the first settled frame to this .webp or .png file and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{Scene: *scene, Texture: *texture, Debug: *debug})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug)
	defer logger.Sync()
	renderer.Debug = cfg.Debug

	if err := run(cfg, *snapshotPath); err != nil {
		logger.Log.Error("Moonrise stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, snapshotPath string) error {
	preset, err := engine.PresetFor(cfg)
	if err != nil {
		return err
	}

	host, err := window.Open(cfg.Window)
	if err != nil {
		return err
	}
	defer host.Close()

	backend := renderer.NewOpenGLRenderer()
	stage, err := engine.Mount(backend, host, host, host, preset)
	if err != nil {
		return err
	}
	defer stage.Unmount()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var snapErr error
	if snapshotPath != "" {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		captureWhenSettled(host, stage, func() {
			snapErr = snapshot.Save(snapshotPath, backend.ReadPixels())
			cancel()
		})
	}

	err = host.Run(ctx)
	if snapErr != nil {
		return snapErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// captureWhenSettled calls capture once, right after the first frame in which
// every body has finished its entrance. It is queued after the stage's own
// frame so the back buffer already holds that frame.
func captureWhenSettled(frames engine.FrameSource, stage *engine.Stage, capture func()) {
	var check func()
	check = func() {
		if stage.Ready() {
			capture()
			return
		}
		frames.RequestFrame(check)
	}
	frames.RequestFrame(check)
}
