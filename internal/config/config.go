package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all engine configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Raycast  RaycastConfig  `yaml:"raycast"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Minimap  MinimapConfig  `yaml:"minimap"`
	Screamer ScreamerConfig `yaml:"screamer"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	TileSize      int     `yaml:"tile_size"`
	LevelsDir     string  `yaml:"levels_dir"`
	DefaultSpawnX float64 `yaml:"default_spawn_x"` // world units, used when a map has no spawn marker
	DefaultSpawnY float64 `yaml:"default_spawn_y"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`        // world units per second
	RotationSpeed    float64 `yaml:"rotation_speed"`    // radians per second
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pixel
	StickDeadzone    float64 `yaml:"stick_deadzone"`
	PlayerRadius     float64 `yaml:"player_radius"`
	StepInterval     float64 `yaml:"step_interval"` // seconds between footstep sounds
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // degrees
	StartAngle  float64 `yaml:"start_angle"`   // degrees, 0 = east
}

type RaycastConfig struct {
	MaxSteps       int     `yaml:"max_steps"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxHeightScale float64 `yaml:"max_height_scale"`
	Workers        int     `yaml:"workers"` // 0 = one per CPU, 1 = sequential
}

type GraphicsConfig struct {
	BrightnessMin float64           `yaml:"brightness_min"`
	ShadeFalloff  float64           `yaml:"shade_falloff"`
	SideShade     float64           `yaml:"side_shade"`
	TextureSize   int               `yaml:"texture_size"`
	TextureDir    string            `yaml:"texture_dir"` // optional PNG overrides, see graphics.TextureName
	Colors        ColorsConfig      `yaml:"colors"`
	WallColors    map[string][3]int `yaml:"wall_colors"` // wall symbol -> base texture color
}

type ColorsConfig struct {
	Ceiling    [3]int `yaml:"ceiling"`
	Floor      [3]int `yaml:"floor"`
	Background [3]int `yaml:"background"`
}

type MinimapConfig struct {
	Enabled bool `yaml:"enabled"`
	TilePx  int  `yaml:"tile_px"`
	Margin  int  `yaml:"margin"`
}

type ScreamerConfig struct {
	RadiusTiles float64 `yaml:"radius_tiles"`
	Duration    float64 `yaml:"duration"` // seconds
	LOSMode     string  `yaml:"los_mode"` // "sampled" or "exact"
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

var GlobalConfig *Config

// Default returns a complete configuration. LoadConfig starts from it, so a
// config file only needs the values it changes.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 600,
			WindowTitle:  "Raycaster",
			Resizable:    false,
			TPS:          60,
		},
		World: WorldConfig{
			TileSize:      64,
			LevelsDir:     "levels",
			DefaultSpawnX: 96,
			DefaultSpawnY: 96,
		},
		Movement: MovementConfig{
			MoveSpeed:        256,
			RotationSpeed:    2.5,
			MouseSensitivity: 0.003,
			StickDeadzone:    0.2,
			PlayerRadius:     12,
			StepInterval:     0.35,
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			StartAngle:  0,
		},
		Raycast: RaycastConfig{
			MaxSteps:       4096,
			MinDistance:    1e-4,
			MaxHeightScale: 2,
			Workers:        0,
		},
		Graphics: GraphicsConfig{
			BrightnessMin: 0.25,
			ShadeFalloff:  0.15,
			SideShade:     0.75,
			TextureSize:   64,
			TextureDir:    "assets/textures",
			Colors: ColorsConfig{
				Ceiling:    [3]int{40, 40, 56},
				Floor:      [3]int{72, 64, 56},
				Background: [3]int{0, 0, 0},
			},
			WallColors: map[string][3]int{
				"#": {150, 150, 150},
				"1": {178, 34, 34},
				"2": {34, 139, 34},
				"3": {65, 105, 225},
				"+": {218, 165, 32},
				"-": {139, 90, 43},
				"|": {112, 128, 144},
				"D": {160, 110, 50},
			},
		},
		Minimap: MinimapConfig{
			Enabled: true,
			TilePx:  6,
			Margin:  12,
		},
		Screamer: ScreamerConfig{
			RadiusTiles: 1.5,
			Duration:    1.5,
			LOSMode:     "sampled",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads the configuration from a YAML file over the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Display.ScreenWidth > 0 && c.Display.ScreenHeight > 0,
		"display size %dx%d must be positive", c.Display.ScreenWidth, c.Display.ScreenHeight)
	check(c.Display.TPS > 0, "display.tps %d must be positive", c.Display.TPS)
	check(c.World.TileSize > 0, "world.tile_size %d must be positive", c.World.TileSize)
	check(c.World.LevelsDir != "", "world.levels_dir must be set")
	check(c.Movement.MoveSpeed >= 0, "movement.move_speed %v must not be negative", c.Movement.MoveSpeed)
	check(c.Movement.PlayerRadius >= 0 && c.Movement.PlayerRadius < float64(c.World.TileSize)/2,
		"movement.player_radius %v must be in [0, tile_size/2)", c.Movement.PlayerRadius)
	check(c.Movement.StickDeadzone >= 0 && c.Movement.StickDeadzone < 1,
		"movement.stick_deadzone %v must be in [0, 1)", c.Movement.StickDeadzone)
	check(c.Camera.FieldOfView > 0 && c.Camera.FieldOfView < 180,
		"camera.field_of_view %v must be in (0, 180) degrees", c.Camera.FieldOfView)
	check(c.Raycast.MaxSteps > 0, "raycast.max_steps %d must be positive", c.Raycast.MaxSteps)
	check(c.Raycast.MinDistance > 0, "raycast.min_distance %v must be positive", c.Raycast.MinDistance)
	check(c.Raycast.MaxHeightScale >= 1, "raycast.max_height_scale %v must be at least 1", c.Raycast.MaxHeightScale)
	check(c.Raycast.Workers >= 0, "raycast.workers %d must not be negative", c.Raycast.Workers)
	check(c.Graphics.BrightnessMin >= 0 && c.Graphics.BrightnessMin <= 1,
		"graphics.brightness_min %v must be in [0, 1]", c.Graphics.BrightnessMin)
	check(c.Graphics.ShadeFalloff >= 0, "graphics.shade_falloff %v must not be negative", c.Graphics.ShadeFalloff)
	check(c.Graphics.SideShade > 0 && c.Graphics.SideShade <= 1,
		"graphics.side_shade %v must be in (0, 1]", c.Graphics.SideShade)
	check(c.Graphics.TextureSize > 0, "graphics.texture_size %d must be positive", c.Graphics.TextureSize)
	for symbol := range c.Graphics.WallColors {
		check(len([]rune(symbol)) == 1, "graphics.wall_colors key %q must be a single symbol", symbol)
	}
	check(!c.Minimap.Enabled || c.Minimap.TilePx > 0, "minimap.tile_px %d must be positive", c.Minimap.TilePx)
	check(c.Screamer.RadiusTiles >= 0, "screamer.radius_tiles %v must not be negative", c.Screamer.RadiusTiles)
	check(c.Screamer.Duration >= 0, "screamer.duration %v must not be negative", c.Screamer.Duration)
	check(c.Screamer.LOSMode == "" || c.Screamer.LOSMode == "sampled" || c.Screamer.LOSMode == "exact",
		"screamer.los_mode %q must be sampled or exact", c.Screamer.LOSMode)
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio.sample_rate %d must be positive", c.Audio.SampleRate)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume %v must be in [0, 1]", c.Audio.Volume)

	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTPS() int {
	return c.Display.TPS
}

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetCameraFOV returns the field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

// GetStartAngle returns the initial heading in radians.
func (c *Config) GetStartAngle() float64 {
	return c.Camera.StartAngle * math.Pi / 180
}

// GetScreamRadius returns the trigger radius in world units.
func (c *Config) GetScreamRadius() float64 {
	return c.Screamer.RadiusTiles * c.GetTileSize()
}

// GetWallColor returns the base color for a wall symbol, falling back to
// the '#' entry and then to grey.
func (c *Config) GetWallColor(symbol rune) color.RGBA {
	if rgb, ok := c.Graphics.WallColors[string(symbol)]; ok {
		return RGB(rgb)
	}
	if rgb, ok := c.Graphics.WallColors["#"]; ok {
		return RGB(rgb)
	}
	return color.RGBA{128, 128, 128, 255}
}

// RGB converts a config color triple into an opaque color, clamping each
// channel to [0, 255].
func RGB(c [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		return uint8(min(max(v, 0), 255))
	}
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}
