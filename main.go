package main

import (
	"errors"
	"os"

	"raycaster/internal/audio"
	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/logger"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logger.Log.WithError(err).Error("raycaster stopped")
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")
	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	log := logger.For("main")

	levels, err := world.LoadLevels(cfg.World.LevelsDir, cfg.World.TileSize)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"dir": cfg.World.LevelsDir, "levels": levels.Len()}).Info("levels loaded")

	var sound game.SoundPlayer
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.SampleRate, cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	g, err := game.NewGame(cfg, levels, sound)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, game.ErrExit) {
		return err
	}
	return nil
}
