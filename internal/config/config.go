// Package config loads runtime settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

// ErrInvalid is wrapped by every error caused by a malformed setting.
var ErrInvalid = errors.New("invalid configuration")

// Environment variable names.
const (
	EnvWidth        = "ORBIT_WIDTH"
	EnvHeight       = "ORBIT_HEIGHT"
	EnvSeed         = "ORBIT_SEED"
	EnvMode         = "ORBIT_MODE"
	EnvBestFile     = "ORBIT_BEST_FILE"
	EnvAudio        = "ORBIT_AUDIO"
	EnvVolume       = "ORBIT_VOLUME"
	EnvSpectateAddr = "ORBIT_SPECTATE_ADDR"
)

// Config is the resolved runtime configuration.
type Config struct {
	Width        int
	Height       int
	Seed         int64 // 0 picks a time-based seed per run
	Mode         sim.Mode
	BestFile     string
	Audio        bool
	Volume       float64 // beep volume exponent, base 2; 0 is unity gain
	SpectateAddr string  // empty disables the spectator server
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Width:    480,
		Height:   800,
		Mode:     sim.ModeClassic,
		BestFile: defaultBestFile(),
		Audio:    true,
		Volume:   -1,
	}
}

// Viewport is the play area as the simulation sees it.
func (c Config) Viewport() sim.Viewport {
	return sim.Viewport{W: float64(c.Width), H: float64(c.Height)}
}

// Load reads the given .env files (".env" when none are given) into the
// process environment without overriding variables that are already set,
// then resolves the configuration. Missing .env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the process environment.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error

	if cfg.Width, err = intVar(EnvWidth, cfg.Width, 100); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = intVar(EnvHeight, cfg.Height, 100); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(EnvSeed); ok {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvSeed, v, err)
		}
	}
	if v, ok := lookup(EnvMode); ok {
		if cfg.Mode, err = sim.ParseMode(v); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvMode, err)
		}
	}
	if v, ok := lookup(EnvBestFile); ok {
		cfg.BestFile = v
	}
	if v, ok := lookup(EnvAudio); ok {
		if cfg.Audio, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvAudio, v, err)
		}
	}
	if v, ok := lookup(EnvVolume); ok {
		if cfg.Volume, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvVolume, v, err)
		}
	}
	if v, ok := lookup(EnvSpectateAddr); ok {
		cfg.SpectateAddr = v
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func intVar(key string, def, minVal int) (int, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
	}
	if n < minVal {
		return 0, fmt.Errorf("%w: %s=%d below minimum %d", ErrInvalid, key, n, minVal)
	}
	return n, nil
}

func defaultBestFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sticky-orbit-best.json"
	}
	return filepath.Join(dir, "sticky-orbit", "best.json")
}
