package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	SceneMoon   = "moon"
	SceneSaturn = "saturn"
)

// WindowConfig describes the host window the canvas is mounted in.
type WindowConfig struct {
	Title       string `json:"title"`
	Width       int32  `json:"width"`
	Height      int32  `json:"height"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Transparent bool   `json:"transparent"`
	VSync       bool   `json:"vsync"`
}

type Config struct {
	Window      WindowConfig `json:"window"`
	Scene       string       `json:"scene"`
	MoonTexture string       `json:"moon_texture"`
	// MaxTextureSize bounds the longest edge of an uploaded texture. 0 disables it.
	MaxTextureSize int  `json:"max_texture_size"`
	Debug          bool `json:"debug"`
}

// Flags carries command line overrides. Zero values leave the file value alone.
type Flags struct {
	Scene   string
	Texture string
	Debug   bool
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "Moonrise",
			Width:       1280,
			Height:      720,
			X:           -1,
			Y:           -1,
			Transparent: true,
			VSync:       true,
		},
		Scene:          SceneMoon,
		MoonTexture:    "assets/moon.jpg",
		MaxTextureSize: 4096,
	}
}

// Load reads a JSON config file on top of Default. A missing file is not an
// error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies command line overrides.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Texture != "" {
		c.MoonTexture = flags.Texture
	}
	if flags.Debug {
		c.Debug = true
	}
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Scene {
	case SceneMoon, SceneSaturn:
	default:
		return fmt.Errorf("unknown scene %q", c.Scene)
	}
	if c.MaxTextureSize < 0 {
		return fmt.Errorf("max_texture_size must not be negative")
	}
	return nil
}
