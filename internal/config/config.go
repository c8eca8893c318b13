// Package config loads the host tool settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"longan/app"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Serial struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type Config struct {
	Variant        string `yaml:"variant"`
	PollLimit      uint32 `yaml:"poll_limit"`
	RejectNegative bool   `yaml:"reject_negative"`
	StrictParse    bool   `yaml:"strict_parse"`
	Trace          bool   `yaml:"trace"`
	Headless       bool   `yaml:"headless"`
	Capture        string `yaml:"capture"`
	Serial         Serial `yaml:"serial"`
}

func Default() Config {
	return Config{
		Variant: string(app.VariantToggle),
		Serial:  Serial{Baud: 115200},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := app.ParseVariant(c.Variant); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("%w: serial baud %d", ErrInvalid, c.Serial.Baud)
	}
	return nil
}

// App returns the firmware runtime settings.
func (c Config) App() app.Config {
	v, _ := app.ParseVariant(c.Variant)
	return app.Config{
		Variant:        v,
		PollLimit:      c.PollLimit,
		RejectNegative: c.RejectNegative,
		StrictParse:    c.StrictParse,
		Trace:          c.Trace,
	}
}
