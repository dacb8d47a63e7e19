package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/sticky-orbit/internal/audio"
	"github.com/Garsondee/sticky-orbit/internal/config"
	"github.com/Garsondee/sticky-orbit/internal/game"
	"github.com/Garsondee/sticky-orbit/internal/spectate"
	"github.com/Garsondee/sticky-orbit/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
		cfg = config.Default()
	}

	player, err := audio.Open(cfg.Audio, cfg.Volume)
	if err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer player.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := game.Options{
		Store: store.NewFileStore(cfg.BestFile),
		Audio: player,
	}
	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub()
		opts.Hub = hub
		go func() {
			if err := spectate.Serve(ctx, cfg.SpectateAddr, hub); err != nil {
				log.Printf("spectator feed stopped: %v", err)
			}
		}()
	}

	ebiten.SetWindowTitle("Sticky Orbit")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(game.New(cfg, opts)); err != nil {
		log.Fatal(err)
	}
}
