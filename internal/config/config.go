// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig      `yaml:"window"`
	Camera  CameraConfig      `yaml:"camera"`
	World   WorldConfig       `yaml:"world"`
	Assets  AssetsConfig      `yaml:"assets"`
	Keys    map[string]string `yaml:"keys"` // action name -> key name overrides
	Logging LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera pose and controller tuning.
type CameraConfig struct {
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel of mouse motion
	LookRate    float32    `yaml:"look_rate"`   // degrees per frame while an arrow key is held
	FovY        float32    `yaml:"fovy"`        // degrees
	ZNear       float32    `yaml:"znear"`
	ZFar        float32    `yaml:"zfar"`
	Eye         [3]float32 `yaml:"eye"`
	Target      [3]float32 `yaml:"target"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
}

// WorldConfig holds instance grid settings.
type WorldConfig struct {
	GridSize int     `yaml:"grid_size"`
	Spacing  float32 `yaml:"spacing"`
}

// AssetsConfig holds resource locations.
type AssetsConfig struct {
	Root        string `yaml:"root"`
	Manifest    string `yaml:"manifest"`
	LoadWorkers int    `yaml:"load_workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Grid Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Speed:       0.05,
			Sensitivity: 0.1,
			LookRate:    0.5,
			FovY:        45,
			ZNear:       0.1,
			ZFar:        100,
			Eye:         [3]float32{0, 1, 2},
			Target:      [3]float32{0, 0, 0},
			Yaw:         -90, // looking down -Z
			Pitch:       0,
		},
		World: WorldConfig{
			GridSize: 5,
			Spacing:  3.0,
		},
		Assets: AssetsConfig{
			Root:        "res",
			Manifest:    "resources.txt",
			LoadWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
