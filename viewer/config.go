package viewer

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quillon/prism/viewer/scene"
)

// Config is the viewer configuration, loadable from a TOML file.
type Config struct {
	Title  string `toml:"title"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	LogLevel string `toml:"log_level"`

	// Style is the initial rendering style: shaded, non-shaded or
	// wireframe.
	Style string `toml:"style"`

	AutoRotate  bool `toml:"auto_rotate"`
	GridVisible bool `toml:"grid_visible"`

	NearClip float32 `toml:"near_clip"`
	FarClip  float32 `toml:"far_clip"`

	// Watch reloads the current model when its file changes on disk.
	Watch bool `toml:"watch"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:       "Prism Viewer",
		X:           100,
		Y:           100,
		Width:       1280,
		Height:      720,
		LogLevel:    "info",
		Style:       StyleShaded.String(),
		GridVisible: true,
		NearClip:    scene.DefaultNearClip,
		FarClip:     scene.DefaultFarClip,
		Watch:       true,
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing
// file is not an error; the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
