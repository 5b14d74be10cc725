package config

import (
	"fmt"
	"os"

	"github.com/san-kum/galaxy/internal/galaxy"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = ".galaxy"
	DefaultWidth      = 60
	DefaultHeight     = 22
	DefaultFPS        = 30
	DefaultAutoRotate = 0.01
	DefaultTilt       = 0.6
	DefaultZoom       = 1.0
	DefaultMaxPoints  = 1000000
)

type Config struct {
	Seed    int64  `yaml:"seed"`
	DataDir string `yaml:"data_dir"`
	// MaxPoints caps a single generation; 0 disables the cap.
	MaxPoints int          `yaml:"max_points"`
	Galaxy    GalaxyConfig `yaml:"galaxy"`
	Render    RenderConfig `yaml:"render"`
	Log       LogConfig    `yaml:"log"`
}

// GalaxyConfig mirrors galaxy.Parameters with colors kept as hex strings.
type GalaxyConfig struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	InsideColor     string  `yaml:"inside_color"`
	OutsideColor    string  `yaml:"outside_color"`
}

type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	AutoRotate float64 `yaml:"auto_rotate"`
	Tilt       float64 `yaml:"tilt"`
	Zoom       float64 `yaml:"zoom"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

func DefaultGalaxy() GalaxyConfig {
	return FromParameters(galaxy.DefaultParameters())
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:   DefaultDataDir,
		MaxPoints: DefaultMaxPoints,
		Galaxy:    DefaultGalaxy(),
		Render: RenderConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			FPS:        DefaultFPS,
			AutoRotate: DefaultAutoRotate,
			Tilt:       DefaultTilt,
			Zoom:       DefaultZoom,
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxPoints < 0 {
		return nil, fmt.Errorf("%s: max_points must not be negative, got %d", path, cfg.MaxPoints)
	}
	if _, err := cfg.Galaxy.Parameters(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts to galaxy.Parameters and checks declared ranges.
func (g GalaxyConfig) Parameters() (galaxy.Parameters, error) {
	inside, err := galaxy.ParseColor(g.InsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("inside_color: %w", err)
	}
	outside, err := galaxy.ParseColor(g.OutsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("outside_color: %w", err)
	}
	p := galaxy.Parameters{
		Count:           g.Count,
		PointSize:       g.Size,
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}
	if err := p.Validate(); err != nil {
		return galaxy.Parameters{}, err
	}
	return p, nil
}

func FromParameters(p galaxy.Parameters) GalaxyConfig {
	return GalaxyConfig{
		Count:           p.Count,
		Size:            p.PointSize,
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
	}
}
