package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"Beneath/internal/config"
	"Beneath/internal/demo"
	"Beneath/internal/engine"
	"Beneath/internal/logger"

	"go.uber.org/zap"
)

func init() {
	// glfw and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config file, watched for changes")
	preset := flag.String("preset", "default", "base config: default, pixelart or cinematic")
	objPath := flag.String("obj", "", "optional OBJ model shown as the last scene")
	seed := flag.Int64("seed", 42, "terrain noise seed")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	base, ok := config.Preset(*preset)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset %q\n", *preset)
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath, base)
	if err != nil {
		logger.Log.Error("Could not load config", zap.String("path", *configPath), zap.Error(err))
		os.Exit(1)
	}

	logger.Log.Info("Beneath starting", zap.String("preset", *preset), zap.String("config", *configPath))

	e := engine.New(cfg, demo.New(demo.Options{Seed: *seed, OBJPath: *objPath}))
	e.ConfigPath = *configPath
	e.Base = base
	if err := e.Run(); err != nil {
		logger.Log.Error("Engine failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
