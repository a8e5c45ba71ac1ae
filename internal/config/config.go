// Package config loads run configuration for the sir tools from defaults, an
// optional YAML file, environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"sir-ca/internal/logging"
	"sir-ca/internal/sims/sir"
)

// EnvPrefix is prepended to upper-cased keys to form environment overrides,
// e.g. SIR_WIDTH or SIR_CHART_BACKEND.
const EnvPrefix = "SIR_"

// Config contains every setting of a run.
type Config struct {
	Grid        GridConfig       `yaml:"grid"`
	Transitions TransitionConfig `yaml:"transitions"`
	Run         RunConfig        `yaml:"run"`
	Output      OutputConfig     `yaml:"output"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GridConfig sizes and seeds the automaton.
type GridConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Seed            int64   `yaml:"seed"`
	InitialInfected float64 `yaml:"initial_infected"`
}

// TransitionConfig holds the six transition parameters.
type TransitionConfig struct {
	Pv float64 `yaml:"pv"`
	Ps float64 `yaml:"ps"`
	Pc float64 `yaml:"pc"`
	Pd float64 `yaml:"pd"`
	Po float64 `yaml:"po"`
	K  float64 `yaml:"k"`
}

// RunConfig controls the step loop.
type RunConfig struct {
	Steps int `yaml:"steps"`
}

// OutputConfig selects where results go. Empty paths disable an output.
type OutputConfig struct {
	Chart        string `yaml:"chart"`
	ChartBackend string `yaml:"chart_backend"`
	ChartWidth   int    `yaml:"chart_width"`
	ChartHeight  int    `yaml:"chart_height"`
	CSV          string `yaml:"csv"`
	Video        string `yaml:"video"`
	VideoScale   int    `yaml:"video_scale"`
	VideoFPS     int    `yaml:"video_fps"`
	DB           string `yaml:"db"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

// Default returns the 200x200, 100-step configuration.
func Default() *Config {
	sc := sir.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			Width:           sc.Width,
			Height:          sc.Height,
			Seed:            sc.Seed,
			InitialInfected: sc.InitialInfected,
		},
		Transitions: TransitionConfig{
			Pv: sc.Params.Pv,
			Ps: sc.Params.Ps,
			Pc: sc.Params.Pc,
			Pd: sc.Params.Pd,
			Po: sc.Params.Po,
			K:  sc.Params.K,
		},
		Run: RunConfig{Steps: 100},
		Output: OutputConfig{
			Chart:        "sir.png",
			ChartBackend: "gochart",
			ChartWidth:   800,
			ChartHeight:  600,
			VideoScale:   2,
			VideoFPS:     10,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds a config from defaults, the YAML file at path (if non-empty)
// and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if err := cfg.applyEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Keys lists every settable key in flag spelling.
var Keys = []string{
	"width", "height", "seed", "initial-infected",
	"pv", "ps", "pc", "pd", "po", "k",
	"steps",
	"chart", "chart-backend", "chart-width", "chart-height",
	"csv", "video", "video-scale", "video-fps", "db",
	"log-level",
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func (c *Config) applyEnv(environ []string) error {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	for _, key := range Keys {
		v, ok := env[EnvName(key)]
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}
	return nil
}

// Set assigns a single key (flag spelling) from its string form.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "width":
		c.Grid.Width, err = strconv.Atoi(value)
	case "height":
		c.Grid.Height, err = strconv.Atoi(value)
	case "seed":
		c.Grid.Seed, err = strconv.ParseInt(value, 10, 64)
	case "initial-infected":
		c.Grid.InitialInfected, err = strconv.ParseFloat(value, 64)
	case "pv":
		c.Transitions.Pv, err = strconv.ParseFloat(value, 64)
	case "ps":
		c.Transitions.Ps, err = strconv.ParseFloat(value, 64)
	case "pc":
		c.Transitions.Pc, err = strconv.ParseFloat(value, 64)
	case "pd":
		c.Transitions.Pd, err = strconv.ParseFloat(value, 64)
	case "po":
		c.Transitions.Po, err = strconv.ParseFloat(value, 64)
	case "k":
		c.Transitions.K, err = strconv.ParseFloat(value, 64)
	case "steps":
		c.Run.Steps, err = strconv.Atoi(value)
	case "chart":
		c.Output.Chart = value
	case "chart-backend":
		c.Output.ChartBackend = value
	case "chart-width":
		c.Output.ChartWidth, err = strconv.Atoi(value)
	case "chart-height":
		c.Output.ChartHeight, err = strconv.Atoi(value)
	case "csv":
		c.Output.CSV = value
	case "video":
		c.Output.Video = value
	case "video-scale":
		c.Output.VideoScale, err = strconv.Atoi(value)
	case "video-fps":
		c.Output.VideoFPS, err = strconv.Atoi(value)
	case "db":
		c.Output.DB = value
	case "log-level":
		c.Logging.Level = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	return nil
}

// Bind declares one flag per key on fs, defaulting to the values in c.
// Parsed flags are applied later with ApplyFlags so that only flags the user
// actually passed override file and environment settings.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.Int("width", c.Grid.Width, "grid width in cells")
	fs.Int("height", c.Grid.Height, "grid height in cells")
	fs.Int64("seed", c.Grid.Seed, "random seed (0 picks a time-based seed)")
	fs.Float64("initial-infected", c.Grid.InitialInfected, "chance each cell starts infected")
	fs.Float64("pv", c.Transitions.Pv, "vaccination probability (S -> R)")
	fs.Float64("ps", c.Transitions.Ps, "imported case probability (S -> I)")
	fs.Float64("pc", c.Transitions.Pc, "cure probability (I -> R)")
	fs.Float64("pd", c.Transitions.Pd, "death-while-infected probability (I -> S)")
	fs.Float64("po", c.Transitions.Po, "death-while-recovered probability (R -> S)")
	fs.Float64("k", c.Transitions.K, "infectivity coefficient")
	fs.Int("steps", c.Run.Steps, "number of steps to simulate")
	fs.String("chart", c.Output.Chart, "PNG chart output path (empty disables)")
	fs.String("chart-backend", c.Output.ChartBackend, "chart backend: gochart or gonum")
	fs.Int("chart-width", c.Output.ChartWidth, "chart width in pixels")
	fs.Int("chart-height", c.Output.ChartHeight, "chart height in pixels")
	fs.String("csv", c.Output.CSV, "CSV history output path (empty disables)")
	fs.String("video", c.Output.Video, "MJPEG AVI output path (empty disables)")
	fs.Int("video-scale", c.Output.VideoScale, "pixels per cell in video frames")
	fs.Int("video-fps", c.Output.VideoFPS, "video frames per second")
	fs.String("db", c.Output.DB, "sqlite database recording completed runs (empty disables)")
}

// ApplyFlags copies every flag the user set on fs into c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	known := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		known[k] = true
	}
	var firstErr error
	fs.Visit(func(f *pflag.Flag) {
		if firstErr != nil || !known[f.Name] {
			return
		}
		if err := c.Set(f.Name, f.Value.String()); err != nil {
			firstErr = fmt.Errorf("--%s: %w", f.Name, err)
		}
	})
	return firstErr
}

// Validate checks the run-level settings and the automaton configuration.
func (c *Config) Validate() error {
	if c.Run.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Run.Steps)
	}
	if err := c.Sim().Validate(); err != nil {
		return err
	}
	switch c.Output.ChartBackend {
	case "", "gochart", "gonum":
	default:
		return fmt.Errorf("invalid chart backend %q (valid: gochart, gonum)", c.Output.ChartBackend)
	}
	if c.Output.Chart != "" && (c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0) {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", c.Output.ChartWidth, c.Output.ChartHeight)
	}
	if c.Output.Video != "" && (c.Output.VideoScale <= 0 || c.Output.VideoFPS <= 0) {
		return fmt.Errorf("video scale and fps must be positive, got scale=%d fps=%d", c.Output.VideoScale, c.Output.VideoFPS)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", c.Logging.Level)
	}
	return nil
}

// Sim converts the grid and transition sections to an automaton config.
func (c *Config) Sim() sir.Config {
	return sir.Config{
		Width:           c.Grid.Width,
		Height:          c.Grid.Height,
		Seed:            c.Grid.Seed,
		InitialInfected: c.Grid.InitialInfected,
		Params: sir.Params{
			Pv: c.Transitions.Pv,
			Ps: c.Transitions.Ps,
			Pc: c.Transitions.Pc,
			Pd: c.Transitions.Pd,
			Po: c.Transitions.Po,
			K:  c.Transitions.K,
		},
	}
}
