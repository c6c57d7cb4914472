// cmd/vampires/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-vampires/pkg/audio"
	"github.com/opd-ai/go-vampires/pkg/config"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/logging"
	engorender "github.com/opd-ai/go-vampires/pkg/render/engo"
	"github.com/opd-ai/go-vampires/pkg/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file (YAML or JSON)")
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo' or 'terminal'")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 0, "Window width, overrides config (Engo only)")
	height := flag.Int("height", 0, "Window height, overrides config (Engo only)")
	arena := flag.Bool("arena", false, "Use a generated arena instead of the map file (Engo only)")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	logLevel := flag.String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	// Load configuration
	var gameConfig *config.GameConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if *width > 0 {
		gameConfig.Viewport.Width = *width
	}
	if *height > 0 {
		gameConfig.Viewport.Height = *height
	}
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The terminal frontend owns stdout, so it always logs to a file.
	if *logFile == "" && *renderer == "terminal" {
		*logFile = "vampires.log"
	}
	logger, closeLog, err := newLogger(*logFile, *logLevel)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())
	eventBus := event.NewEventBus()

	var sink *audio.Sink
	if gameConfig.Audio.Enabled {
		sink = audio.NewSink(gameConfig.Audio.Volume, logger)
		if err := sink.Initialize(); err != nil {
			logger.Warn(ctx, "Audio disabled", "error", err.Error())
			sink = nil
		} else {
			sink.Attach(eventBus)
			defer sink.Close()
		}
	}

	// Choose renderer based on command line flag
	var s *session.Session
	switch *renderer {
	case "terminal":
		s, err = runTerminal(ctx, gameConfig, eventBus, logger)
	case "engo":
		s, err = runEngo(ctx, gameConfig, eventBus, logger, *fullscreen, *arena)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil {
		logger.Error(ctx, "Game exited with error", err)
		if sink != nil {
			sink.Close()
		}
		closeLog()
		log.Fatalf("%v", err)
	}
	if s != nil {
		fmt.Println(summary(s))
	}
}

// runEngo opens a window and runs the session until it ends.
func runEngo(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger, fullscreen, arena bool) (*session.Session, error) {
	scene := engorender.NewGameScene(ctx, cfg, bus, logger, arena)

	// Configure Engo options
	opts := engo.RunOptions{
		Title:      cfg.Viewport.Title,
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Fullscreen: fullscreen,
		VSync:      true,
		AssetsRoot: cfg.Assets.Root,
	}

	// Run Engo with the game scene
	engo.Run(opts, scene)

	if err := scene.Err(); err != nil {
		return nil, err
	}
	return scene.Session(), nil
}

// newLogger builds the logger for the run. An empty level falls back to
// VAMPIRES_LOG_LEVEL; an empty path logs to stdout.
func newLogger(path, level string) (*logging.Logger, func(), error) {
	if level == "" {
		level = os.Getenv(logging.LevelEnvVar)
	}
	var w io.Writer = os.Stdout
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}
	return logging.NewLoggerWithWriter(w, logging.ParseLevel(level)), closeFn, nil
}
