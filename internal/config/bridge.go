// Package config loads the bridge configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied by the Get* accessors.
const (
	DefaultBaudRate    = 38400
	DefaultDataBits    = 8
	DefaultStopBits    = 1
	DefaultParity      = "N"
	DefaultReadTimeout = time.Millisecond
	DefaultSink        = "uinput"
)

// BridgeConfig is the optional JSON configuration for the bridge. Fields
// omitted from the file keep their defaults, so partial configs are safe, and
// command-line flags override whatever the file sets.
type BridgeConfig struct {
	// Serial link
	BaudRate    *int    `json:"baud_rate,omitempty"`
	DataBits    *int    `json:"data_bits,omitempty"`
	StopBits    *int    `json:"stop_bits,omitempty"`
	Parity      *string `json:"parity,omitempty"`
	ReadTimeout *string `json:"read_timeout,omitempty"` // duration string like "1ms"

	// Screen geometry; zero means detect from the framebuffer
	ScreenWidth  *int `json:"screen_width,omitempty"`
	ScreenHeight *int `json:"screen_height,omitempty"`

	// Pointer sink: "uinput" or "log"
	Sink *string `json:"sink,omitempty"`

	// Idle back-off between empty polls, for sources whose reads return
	// immediately. Zero or unset polls again at once.
	IdleBackoff *string `json:"idle_backoff,omitempty"`

	// Debug HTTP listen address; empty disables the listener
	Listen *string `json:"listen,omitempty"`

	Verbose *bool `json:"verbose,omitempty"`
}

// Helper functions to create pointers
func ptrInt(v int) *int          { return &v }
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }

// EmptyBridgeConfig returns a BridgeConfig with all fields set to nil.
func EmptyBridgeConfig() *BridgeConfig {
	return &BridgeConfig{}
}

// LoadBridgeConfig loads a BridgeConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadBridgeConfig(path string) (*BridgeConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyBridgeConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid. Serial parameters
// beyond basic sanity are checked again when the port is opened.
func (c *BridgeConfig) Validate() error {
	if c.BaudRate != nil && *c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", *c.BaudRate)
	}

	if c.ReadTimeout != nil && *c.ReadTimeout != "" {
		d, err := time.ParseDuration(*c.ReadTimeout)
		if err != nil {
			return fmt.Errorf("invalid read_timeout '%s': %w", *c.ReadTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("read_timeout must be positive, got %s", d)
		}
	}

	if c.IdleBackoff != nil && *c.IdleBackoff != "" {
		d, err := time.ParseDuration(*c.IdleBackoff)
		if err != nil {
			return fmt.Errorf("invalid idle_backoff '%s': %w", *c.IdleBackoff, err)
		}
		if d < 0 {
			return fmt.Errorf("idle_backoff must be non-negative, got %s", d)
		}
	}

	if c.ScreenWidth != nil && *c.ScreenWidth < 0 {
		return fmt.Errorf("screen_width must be non-negative, got %d", *c.ScreenWidth)
	}
	if c.ScreenHeight != nil && *c.ScreenHeight < 0 {
		return fmt.Errorf("screen_height must be non-negative, got %d", *c.ScreenHeight)
	}
	if (c.GetScreenWidth() == 0) != (c.GetScreenHeight() == 0) {
		return fmt.Errorf("screen_width and screen_height must be set together")
	}

	if c.Sink != nil {
		switch strings.ToLower(*c.Sink) {
		case "uinput", "log":
		default:
			return fmt.Errorf("sink must be \"uinput\" or \"log\", got %q", *c.Sink)
		}
	}

	return nil
}

// GetBaudRate returns the baud_rate value or the default.
func (c *BridgeConfig) GetBaudRate() int {
	if c.BaudRate == nil {
		return DefaultBaudRate
	}
	return *c.BaudRate
}

// GetDataBits returns the data_bits value or the default.
func (c *BridgeConfig) GetDataBits() int {
	if c.DataBits == nil {
		return DefaultDataBits
	}
	return *c.DataBits
}

// GetStopBits returns the stop_bits value or the default.
func (c *BridgeConfig) GetStopBits() int {
	if c.StopBits == nil {
		return DefaultStopBits
	}
	return *c.StopBits
}

// GetParity returns the parity value or the default.
func (c *BridgeConfig) GetParity() string {
	if c.Parity == nil || *c.Parity == "" {
		return DefaultParity
	}
	return *c.Parity
}

// GetReadTimeout parses and returns the ReadTimeout as a time.Duration.
func (c *BridgeConfig) GetReadTimeout() time.Duration {
	if c.ReadTimeout == nil || *c.ReadTimeout == "" {
		return DefaultReadTimeout
	}
	d, err := time.ParseDuration(*c.ReadTimeout)
	if err != nil || d <= 0 {
		return DefaultReadTimeout // default on parse error
	}
	return d
}

// GetIdleBackoff returns the idle back-off, zero when unset or invalid.
func (c *BridgeConfig) GetIdleBackoff() time.Duration {
	if c.IdleBackoff == nil || *c.IdleBackoff == "" {
		return 0
	}
	d, err := time.ParseDuration(*c.IdleBackoff)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (c *BridgeConfig) GetScreenWidth() int {
	if c.ScreenWidth == nil {
		return 0
	}
	return *c.ScreenWidth
}

func (c *BridgeConfig) GetScreenHeight() int {
	if c.ScreenHeight == nil {
		return 0
	}
	return *c.ScreenHeight
}

// GetSink returns the sink name, lower-cased, or the default.
func (c *BridgeConfig) GetSink() string {
	if c.Sink == nil || *c.Sink == "" {
		return DefaultSink
	}
	return strings.ToLower(*c.Sink)
}

// GetListen returns the debug listen address; empty means disabled.
func (c *BridgeConfig) GetListen() string {
	if c.Listen == nil {
		return ""
	}
	return *c.Listen
}

func (c *BridgeConfig) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}

// SetBaudRate and the other setters let flag overrides be applied on top of a
// loaded file.
func (c *BridgeConfig) SetBaudRate(v int)       { c.BaudRate = ptrInt(v) }
func (c *BridgeConfig) SetReadTimeout(v string) { c.ReadTimeout = ptrString(v) }
func (c *BridgeConfig) SetIdleBackoff(v string) { c.IdleBackoff = ptrString(v) }
func (c *BridgeConfig) SetSink(v string)        { c.Sink = ptrString(v) }
func (c *BridgeConfig) SetListen(v string)      { c.Listen = ptrString(v) }
func (c *BridgeConfig) SetVerbose(v bool)       { c.Verbose = ptrBool(v) }

// SetScreen sets both screen dimensions.
func (c *BridgeConfig) SetScreen(width, height int) {
	c.ScreenWidth = ptrInt(width)
	c.ScreenHeight = ptrInt(height)
}
