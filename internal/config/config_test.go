package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

var allVars = []string{EnvWidth, EnvHeight, EnvSeed, EnvMode, EnvBestFile, EnvAudio, EnvVolume, EnvSpectateAddr}

// clearEnv blanks every setting for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Fatalf("expected defaults %+v, got %+v", def, cfg)
	}
	if cfg.Width != 480 || cfg.Height != 800 || cfg.Mode != sim.ModeClassic || !cfg.Audio || cfg.SpectateAddr != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if vp := cfg.Viewport(); vp.W != 480 || vp.H != 800 {
		t.Fatalf("viewport %+v", vp)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvWidth, "600")
	t.Setenv(EnvHeight, " 900 ")
	t.Setenv(EnvSeed, "-42")
	t.Setenv(EnvMode, "SURVIVAL")
	t.Setenv(EnvBestFile, "/tmp/best.json")
	t.Setenv(EnvAudio, "false")
	t.Setenv(EnvVolume, "-2.5")
	t.Setenv(EnvSpectateAddr, ":8090")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Width: 600, Height: 900, Seed: -42, Mode: sim.ModeSurvival,
		BestFile: "/tmp/best.json", Audio: false, Volume: -2.5, SpectateAddr: ":8090",
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		key, val string
	}{
		{EnvWidth, "wide"},
		{EnvHeight, "20"},
		{EnvSeed, "1.5"},
		{EnvMode, "zen"},
		{EnvAudio, "maybe"},
		{EnvVolume, "loud"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			_, err := FromEnv()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("%s=%q: expected ErrInvalid, got %v", tc.key, tc.val, err)
			}
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides set variables, so unset the blanks it should fill.
	for _, k := range []string{EnvMode, EnvSeed} {
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "orbit.env")
	body := "ORBIT_MODE=survival\nORBIT_SEED=7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvMode)
		os.Unsetenv(EnvSeed)
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != sim.ModeSurvival || cfg.Seed != 7 {
		t.Fatalf("expected survival/7 from %s, got %s/%d", path, cfg.Mode, cfg.Seed)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.env")
	if err := os.WriteFile(path, []byte("ORBIT_MODE='unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
