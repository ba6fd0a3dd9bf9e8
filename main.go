package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quillon/prism/viewer"
	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/renderer"
	"github.com/quillon/prism/viewer/renderer/vulkan"
)

func main() {
	configPath := flag.String("config", "prism.toml", "path to the TOML configuration file")
	modelPath := flag.String("model", "", "model file to load on startup (gltf, glb, obj)")
	headless := flag.Bool("headless", false, "run without a window or GPU")
	flag.Parse()

	cfg, err := viewer.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	core.SetLogLevel(cfg.LogLevel)

	var backend renderer.Backend
	if *headless {
		backend = renderer.NewHeadless()
	} else {
		backend = vulkan.New()
	}

	session := viewer.NewSession(cfg, backend, &viewer.Callbacks{
		OnLoaded: func(success bool, errorMessage string) {
			if !success {
				core.LogError("load failed: %s", errorMessage)
			}
		},
		OnAnimationsAvailable: func(available bool, durationSeconds float64) {
			if available {
				core.LogInfo("animations available, %.2fs", durationSeconds)
			}
		},
		OnFpsSample: func(fps float64) {
			core.LogDebug("fps: %.1f", fps)
		},
	})

	if err := session.Startup(!*headless); err != nil {
		core.LogFatal("startup failed: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		session.Shutdown()
		os.Exit(0)
	}()

	if *modelPath != "" {
		session.LoadRequest(*modelPath, "")
	}

	if err := session.Run(); err != nil {
		core.LogError("run loop: %v", err)
	}
	session.Shutdown()
}
