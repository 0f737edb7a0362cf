package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config for the engine run and the game on top of it.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"` // RGBA
	TickRate   int        `toml:"tick_rate"`   // fixed updates per second

	UI   UIConfig   `toml:"ui"`
	Game GameConfig `toml:"game"`
}

type UIConfig struct {
	Capacity int     `toml:"capacity"` // elements per frame
	FontSize float32 `toml:"font_size"`
	FontPath string  `toml:"font_path"` // empty means the built-in Go font
}

type GameConfig struct {
	MoveDuration float32 `toml:"move_duration"` // seconds per cell
	Zoom         float32 `toml:"zoom"`
	TileSize     int     `toml:"tile_size"`
	TilesetPath  string  `toml:"tileset_path"` // PNG atlas; empty means generated
}

func DefaultConfig() Config {
	return Config{
		Title:      "cratepush",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.4, 0.75, 0.92, 1},
		TickRate:   60,
		UI: UIConfig{
			Capacity: 1024,
			FontSize: 24,
		},
		Game: GameConfig{
			MoveDuration: 0.2,
			Zoom:         2,
			TileSize:     16,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("core: load config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("core: load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML over DefaultConfig. Unknown keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Width, c.Height))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d", c.TickRate))
	}
	if c.UI.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("ui.capacity %d", c.UI.Capacity))
	}
	if c.UI.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.font_size %v", c.UI.FontSize))
	}
	if c.Game.MoveDuration <= 0 {
		errs = append(errs, fmt.Errorf("game.move_duration %v", c.Game.MoveDuration))
	}
	if c.Game.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("game.zoom %v", c.Game.Zoom))
	}
	if c.Game.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("game.tile_size %d", c.Game.TileSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
