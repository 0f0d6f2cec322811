// Package config loads workspace settings from COGWORKS_* environment
// variables.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/chazu/cogworks/pkg/cog"
)

// Kernel backend names.
const (
	KernelSdfx     = "sdfx"
	KernelManifold = "manifold"
)

// Config holds every tunable of the gear workspace.
type Config struct {
	MinToothCount     int `env:"COGWORKS_MIN_TOOTH_COUNT"     envDefault:"7"`
	MaxToothCount     int `env:"COGWORKS_MAX_TOOTH_COUNT"     envDefault:"40"`
	DefaultToothCount int `env:"COGWORKS_DEFAULT_TOOTH_COUNT" envDefault:"10"`
	RootToothCount    int `env:"COGWORKS_ROOT_TOOTH_COUNT"    envDefault:"20"`

	ToothTopWidth    float64 `env:"COGWORKS_TOOTH_TOP_WIDTH"    envDefault:"1.5"`
	ToothValleyWidth float64 `env:"COGWORKS_TOOTH_VALLEY_WIDTH" envDefault:"1.65"`
	ToothHeight      float64 `env:"COGWORKS_TOOTH_HEIGHT"       envDefault:"2.5"`
	SlopeWidth       float64 `env:"COGWORKS_SLOPE_WIDTH"        envDefault:"0.7"`

	CollisionOffset  float64 `env:"COGWORKS_COLLISION_OFFSET"  envDefault:"0.5"`
	ConnectionOffset float64 `env:"COGWORKS_CONNECTION_OFFSET" envDefault:"0.5"`
	Scale            float64 `env:"COGWORKS_SCALE"             envDefault:"0.1"`
	Speed            float64 `env:"COGWORKS_SPEED"             envDefault:"1"`

	BaseDepth  float64 `env:"COGWORKS_BASE_DEPTH"  envDefault:"2"`
	PlateDepth float64 `env:"COGWORKS_PLATE_DEPTH" envDefault:"1"`
	AxleDepth  float64 `env:"COGWORKS_AXLE_DEPTH"  envDefault:"2"`

	CameraZ float64 `env:"COGWORKS_CAMERA_Z" envDefault:"10"`
	FOV     float64 `env:"COGWORKS_FOV"      envDefault:"50"`
	Near    float64 `env:"COGWORKS_NEAR"     envDefault:"0.1"`
	Far     float64 `env:"COGWORKS_FAR"      envDefault:"10"`

	MeshCells int    `env:"COGWORKS_MESH_CELLS" envDefault:"120"`
	Kernel    string `env:"COGWORKS_KERNEL"     envDefault:"sdfx"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in settings, ignoring the environment.
func Default() Config {
	var cfg Config
	// Tag defaults always parse.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.MinToothCount < 3 {
		errs = append(errs, fmt.Errorf("min tooth count %d is below 3", c.MinToothCount))
	}
	if c.MinToothCount > c.MaxToothCount {
		errs = append(errs, fmt.Errorf("min tooth count %d exceeds max %d", c.MinToothCount, c.MaxToothCount))
	}
	if c.DefaultToothCount < c.MinToothCount || c.DefaultToothCount > c.MaxToothCount {
		errs = append(errs, fmt.Errorf("default tooth count %d outside [%d, %d]", c.DefaultToothCount, c.MinToothCount, c.MaxToothCount))
	}
	if c.RootToothCount < c.MinToothCount || c.RootToothCount > c.MaxToothCount {
		errs = append(errs, fmt.Errorf("root tooth count %d outside [%d, %d]", c.RootToothCount, c.MinToothCount, c.MaxToothCount))
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"tooth top width", c.ToothTopWidth},
		{"tooth valley width", c.ToothValleyWidth},
		{"tooth height", c.ToothHeight},
		{"slope width", c.SlopeWidth},
		{"scale", c.Scale},
		{"base depth", c.BaseDepth},
		{"plate depth", c.PlateDepth},
		{"axle depth", c.AxleDepth},
		{"fov", c.FOV},
		{"near", c.Near},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.v))
		}
	}
	if c.CollisionOffset < 0 || c.ConnectionOffset < 0 {
		errs = append(errs, errors.New("offsets must not be negative"))
	}
	if c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("far plane %v must lie beyond near plane %v", c.Far, c.Near))
	}
	if c.MeshCells < 8 {
		errs = append(errs, fmt.Errorf("mesh cells %d is below 8", c.MeshCells))
	}
	if c.Kernel != KernelSdfx && c.Kernel != KernelManifold {
		errs = append(errs, fmt.Errorf("unknown kernel %q", c.Kernel))
	}
	return errors.Join(errs...)
}

// Spec returns the tooth profile of a gear with n teeth.
func (c Config) Spec(n int) cog.Spec {
	return cog.Spec{
		ToothCount:       n,
		ToothTopWidth:    c.ToothTopWidth,
		ToothValleyWidth: c.ToothValleyWidth,
		ToothHeight:      c.ToothHeight,
		SlopeWidth:       c.SlopeWidth,
	}
}

// ClampToothCount bounds n to the configured tooth range.
func (c Config) ClampToothCount(n int) int {
	return cog.ClampToothCount(n, c.MinToothCount, c.MaxToothCount)
}
