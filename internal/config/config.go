// Package config holds chonker's settings.
//
// Settings are layered, each layer overriding the one below:
//
//  1. built-in defaults
//  2. the TOML config file (default ~/.config/chonker/config.toml)
//  3. CHONKER_* environment variables, e.g. CHONKER_INDEX_CELL_SIZE=40
//
// The merged result is decoded strictly into Config, so unknown keys in
// the file are reported rather than ignored.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/chonker/internal/config/loader"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHONKER_"

// Config is the complete settings tree.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Mapper  MapperConfig  `toml:"mapper"`
	Buffer  BufferConfig  `toml:"buffer"`
	Index   IndexConfig   `toml:"index"`
	View    ViewConfig    `toml:"view"`
	Logging LoggingConfig `toml:"logging"`
	Input   InputConfig   `toml:"input"`
}

// LayoutConfig tunes text reconstruction.
type LayoutConfig struct {
	LineThreshold     float64 `toml:"line_threshold"`
	SpaceThreshold    float64 `toml:"space_threshold"`
	CharWidth         float64 `toml:"char_width"`
	MaxSpaces         int     `toml:"max_spaces"`
	SectionThreshold  float64 `toml:"section_threshold"`
	SectionLineHeight float64 `toml:"section_line_height"`
	MaxBlankLines     int     `toml:"max_blank_lines"`
}

// MapperConfig tunes how tokens are laid into the editable buffer.
type MapperConfig struct {
	SameLineTolerance float64 `toml:"same_line_tolerance"`
}

// BufferConfig tunes edit bookkeeping.
type BufferConfig struct {
	AvgCharWidth float64 `toml:"avg_char_width"`
}

// IndexConfig tunes the spatial index.
type IndexConfig struct {
	CellSize float64 `toml:"cell_size"`
}

// ViewConfig tunes the terminal editor.
type ViewConfig struct {
	Scale         float64 `toml:"scale"`
	CellWidth     float64 `toml:"cell_width"`
	CellHeight    float64 `toml:"cell_height"`
	BlinkMS       int     `toml:"blink_ms"`
	ModifiedColor string  `toml:"modified_color"`
	OverflowColor string  `toml:"overflow_color"`
	TableColor    string  `toml:"table_color"`
}

// LoggingConfig selects log level and destination.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// InputConfig selects how token files are read.
type InputConfig struct {
	// Format is "alto", "json", "image" or empty to detect from the file.
	Format string `toml:"format"`

	// OCR settings for image input. Languages are joined with '+', as
	// Tesseract writes them.
	OCRLanguage      string  `toml:"ocr_language"`
	OCRDPI           float64 `toml:"ocr_dpi"`
	OCRUpscale       float64 `toml:"ocr_upscale"`
	OCRMinConfidence float64 `toml:"ocr_min_confidence"`
}

// Default returns the built-in settings.
func Default() *Config {
	lp := layout.DefaultParams()
	sp := spatial.DefaultParams()
	return &Config{
		Layout: LayoutConfig{
			LineThreshold:     lp.LineThreshold,
			SpaceThreshold:    lp.SpaceThreshold,
			CharWidth:         lp.CharWidth,
			MaxSpaces:         lp.MaxSpaces,
			SectionThreshold:  lp.SectionThreshold,
			SectionLineHeight: lp.SectionLineHeight,
			MaxBlankLines:     lp.MaxBlankLines,
		},
		Mapper: MapperConfig{SameLineTolerance: sp.SameLineTolerance},
		Buffer: BufferConfig{AvgCharWidth: sp.AvgCharWidth},
		Index:  IndexConfig{CellSize: sp.CellSize},
		View: ViewConfig{
			Scale:         1,
			CellWidth:     8,
			CellHeight:    15,
			BlinkMS:       500,
			ModifiedColor: "#ffd75f",
			OverflowColor: "#ff5f5f",
			TableColor:    "#96ff96",
		},
		Logging: LoggingConfig{Level: "info"},
		Input:   InputConfig{OCRLanguage: "eng", OCRDPI: 72, OCRUpscale: 1},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "chonker.toml"
	}
	return filepath.Join(dir, "chonker", "config.toml")
}

// Load builds the configuration from defaults, the file at path and the
// process environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), NewEnvLoader())
}

// LoadFrom merges the given sources, lowest priority first, over the
// defaults and validates the result.
func LoadFrom(sources ...loader.Loader) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewEnvLoader returns a loader binding CHONKER_<SECTION>_<KEY> for every
// setting, plus the CHONKER_LOG_LEVEL and CHONKER_LOG_FILE shorthands.
func NewEnvLoader() *loader.EnvLoader {
	l := loader.NewEnvLoader(nil)
	m, _ := toMap(Default())
	for section, v := range m {
		keys, _ := v.(map[string]any)
		for key := range keys {
			path := section + "." + key
			l.AddMapping(loader.EnvName(EnvPrefix, path), path)
		}
	}
	l.AddMapping(EnvPrefix+"LOG_LEVEL", "logging.level")
	l.AddMapping(EnvPrefix+"LOG_FILE", "logging.file")
	return l
}

func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// LayoutParams converts the layout section for the reconstructor.
func (c *Config) LayoutParams() layout.Params {
	return layout.Params{
		LineThreshold:     c.Layout.LineThreshold,
		SpaceThreshold:    c.Layout.SpaceThreshold,
		CharWidth:         c.Layout.CharWidth,
		MaxSpaces:         c.Layout.MaxSpaces,
		SectionThreshold:  c.Layout.SectionThreshold,
		SectionLineHeight: c.Layout.SectionLineHeight,
		MaxBlankLines:     c.Layout.MaxBlankLines,
	}
}

// SpatialParams converts the mapper, buffer and index sections.
func (c *Config) SpatialParams() spatial.Params {
	return spatial.Params{
		SameLineTolerance: c.Mapper.SameLineTolerance,
		AvgCharWidth:      c.Buffer.AvgCharWidth,
		CellSize:          c.Index.CellSize,
	}
}

// BlinkInterval returns the caret blink period.
func (c *Config) BlinkInterval() time.Duration {
	return time.Duration(c.View.BlinkMS) * time.Millisecond
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	l, _ := logging.ParseLevel(c.Logging.Level)
	return l
}
