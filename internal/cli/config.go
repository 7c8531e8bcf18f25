package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tirja/porygon/blob"
	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/format"
	"github.com/tirja/porygon/section"
)

const (
	defaultItems       = 2
	defaultCompression = "zstd"
	endianLittle       = "little"
	endianBig          = "big"
)

// Config holds the codec settings shared by all commands.
//
// Example file:
//
//	items: 3
//	precision: 6
//	compression: s2
//	endian: little
type Config struct {
	Items       int    `yaml:"items"`
	Precision   int    `yaml:"precision"`
	Compression string `yaml:"compression"`
	Endian      string `yaml:"endian"`
}

// defaultConfig returns the settings used when no config file is given.
func defaultConfig() Config {
	return Config{
		Items:       defaultItems,
		Precision:   encoding.DefaultPrecision,
		Compression: defaultCompression,
		Endian:      endianLittle,
	}
}

// loadConfig reads a YAML config file on top of the defaults.
// An empty path returns the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every setting is in range for the codec commands.
// Track blobs narrow the axis count further, see validateBlob.
func (c Config) Validate() error {
	if c.Items < 1 {
		return fmt.Errorf("items must be positive, got %d", c.Items)
	}

	if c.Precision < 0 || c.Precision > encoding.MaxPrecision {
		return fmt.Errorf("precision must be in [0, %d], got %d", encoding.MaxPrecision, c.Precision)
	}

	if _, err := format.ParseCompressionType(c.Compression); err != nil {
		return err
	}

	switch strings.ToLower(c.Endian) {
	case "", endianLittle, endianBig:
	default:
		return fmt.Errorf("endian must be %q or %q, got %q", endianLittle, endianBig, c.Endian)
	}

	return nil
}

// validateBlob checks the settings a track blob header can record.
func (c Config) validateBlob() error {
	if c.Items > section.MaxItems {
		return fmt.Errorf("track blobs hold at most %d items per point, got %d", section.MaxItems, c.Items)
	}

	return nil
}

// encoderOptions converts the settings to track encoder options.
// It assumes c has been validated.
func (c Config) encoderOptions() []blob.TrackEncoderOption {
	comp, _ := format.ParseCompressionType(c.Compression)

	opts := []blob.TrackEncoderOption{
		blob.WithPrecision(c.Precision),
		blob.WithCompression(comp),
	}

	if strings.EqualFold(c.Endian, endianBig) {
		opts = append(opts, blob.WithBigEndian())
	} else {
		opts = append(opts, blob.WithLittleEndian())
	}

	return opts
}
