// Package config loads the JSON configuration shared by the command-line
// tools and applies flag overrides on top of it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and run settings for the tools. The
// scene's own look is configured separately through SettingsFile.
type Config struct {
	// Paths
	PhotosDir    string `json:"photos_dir"`    // directory of image files; empty = synthetic feed
	SettingsFile string `json:"settings_file"` // collage settings JSON; empty = defaults
	OutDir       string `json:"out_dir"`

	// Run settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Frames      int     `json:"frames"`
	FPS         float64 `json:"fps"`
	Seed        int64   `json:"seed"` // feed simulator seed
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values until Resolve fills them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	PhotosDir    string
	SettingsFile string
	OutDir       string
	Width        int
	Height       int
	Supersample  int
	Workers      int
	Frames       int
	FPS          float64
	Seed         int64
}

// Resolve applies flag overrides, then fills any remaining zero fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.PhotosDir != "" {
		c.PhotosDir = flags.PhotosDir
	}
	if flags.SettingsFile != "" {
		c.SettingsFile = flags.SettingsFile
	}
	if flags.OutDir != "" {
		c.OutDir = flags.OutDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}

	if c.OutDir == "" {
		c.OutDir = "frames"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = 300
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
}
