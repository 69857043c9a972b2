package multitouch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config tunes the engine's noise suppression. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// SettleInterval is how long motion is suppressed after a mode change or
	// a rejected jump.
	SettleInterval time.Duration
	// MaxPosJump is the largest midpoint move between two stretch frames
	// that is treated as real motion.
	MaxPosJump float64
	// MaxDimJump is the largest half-change of span width or height between
	// two stretch frames that is treated as real motion.
	MaxDimJump float64
	// MinSeparation is the smallest diameter used when computing scale.
	MinSeparation float64
	// HandleSingleTouch controls whether a lone first finger starts a drag.
	// When false, single-touch events are reported unhandled until a second
	// finger is down, so the caller can route them elsewhere.
	HandleSingleTouch bool
	// Debug enables diagnostic output on the engine's debug writer.
	Debug bool
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		SettleInterval:    DefaultSettleInterval,
		MaxPosJump:        DefaultMaxPosJump,
		MaxDimJump:        DefaultMaxDimJump,
		MinSeparation:     DefaultMinSeparation,
		HandleSingleTouch: true,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.SettleInterval < 0:
		return fmt.Errorf("%w: settle interval %v is negative", ErrInvalidConfig, c.SettleInterval)
	case c.MaxPosJump <= 0:
		return fmt.Errorf("%w: max position jump %v must be > 0", ErrInvalidConfig, c.MaxPosJump)
	case c.MaxDimJump <= 0:
		return fmt.Errorf("%w: max dimension jump %v must be > 0", ErrInvalidConfig, c.MaxDimJump)
	case c.MinSeparation <= 0:
		return fmt.Errorf("%w: min separation %v must be > 0", ErrInvalidConfig, c.MinSeparation)
	}
	return nil
}

// configFile is the on-disk TOML layout. Durations are stored in
// milliseconds; absent keys keep their defaults.
type configFile struct {
	SettleIntervalMs  *int64   `toml:"settle_interval_ms"`
	MaxPosJump        *float64 `toml:"max_pos_jump"`
	MaxDimJump        *float64 `toml:"max_dim_jump"`
	MinSeparation     *float64 `toml:"min_separation"`
	HandleSingleTouch *bool    `toml:"handle_single_touch"`
	Debug             *bool    `toml:"debug"`
}

// DecodeConfig reads a TOML tuning file from r on top of DefaultConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	var file configFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if file.SettleIntervalMs != nil {
		cfg.SettleInterval = time.Duration(*file.SettleIntervalMs) * time.Millisecond
	}
	if file.MaxPosJump != nil {
		cfg.MaxPosJump = *file.MaxPosJump
	}
	if file.MaxDimJump != nil {
		cfg.MaxDimJump = *file.MaxDimJump
	}
	if file.MinSeparation != nil {
		cfg.MinSeparation = *file.MinSeparation
	}
	if file.HandleSingleTouch != nil {
		cfg.HandleSingleTouch = *file.HandleSingleTouch
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML tuning file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	ms := cfg.SettleInterval.Milliseconds()
	file := configFile{
		SettleIntervalMs:  &ms,
		MaxPosJump:        &cfg.MaxPosJump,
		MaxDimJump:        &cfg.MaxDimJump,
		MinSeparation:     &cfg.MinSeparation,
		HandleSingleTouch: &cfg.HandleSingleTouch,
		Debug:             &cfg.Debug,
	}
	if err := toml.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Capabilities describes what the event source can deliver.
type Capabilities struct {
	// MultiTouch is false when the platform only reports a single pointer.
	MultiTouch bool
}

// Platform is negotiated once when the engine is created.
type Platform interface {
	Capabilities() Capabilities
}

type fullPlatform struct{}

func (fullPlatform) Capabilities() Capabilities { return Capabilities{MultiTouch: true} }

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cfg      Config
	platform Platform
	debugOut io.Writer

	// Field overrides, applied over cfg whatever the option order.
	handleSingleTouch *bool
	debug             bool
	// cfgErr is the validation error of an ignored WithConfig.
	cfgErr error
}

// config returns cfg with the field overrides applied.
func (o *engineOptions) config() Config {
	cfg := o.cfg
	if o.handleSingleTouch != nil {
		cfg.HandleSingleTouch = *o.handleSingleTouch
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg
}

// WithConfig replaces the default tuning. An invalid cfg is ignored and the
// previous tuning is kept; the engine reports the validation error on its
// debug writer when debugging is enabled. WithHandleSingleTouch and
// WithDebug take precedence over cfg in any order.
func WithConfig(cfg Config) Option {
	return func(o *engineOptions) {
		if err := cfg.Validate(); err != nil {
			o.cfgErr = err
			return
		}
		o.cfg = cfg
		o.cfgErr = nil
	}
}

// WithPlatform sets the event source capabilities.
func WithPlatform(p Platform) Option {
	return func(o *engineOptions) {
		if p != nil {
			o.platform = p
		}
	}
}

// WithHandleSingleTouch overrides Config.HandleSingleTouch.
func WithHandleSingleTouch(handle bool) Option {
	return func(o *engineOptions) {
		o.handleSingleTouch = &handle
	}
}

// WithDebug enables diagnostics written to w (os.Stderr when w is nil).
func WithDebug(w io.Writer) Option {
	return func(o *engineOptions) {
		o.debug = true
		if w != nil {
			o.debugOut = w
		}
	}
}
