package sir

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidSize is returned for non-positive grid dimensions.
var ErrInvalidSize = errors.New("sir: grid dimensions must be positive")

// Config controls the automaton dimensions, seeding and transitions.
type Config struct {
	Width  int
	Height int

	Seed int64

	// InitialInfected is the chance each cell starts infected.
	InitialInfected float64

	Params Params
}

// DefaultConfig returns the standard 200x200 configuration.
func DefaultConfig() Config {
	return Config{
		Width:           200,
		Height:          200,
		Seed:            42,
		InitialInfected: 0.01,
		Params: Params{
			Pv: 0.03,
			Ps: 0.01,
			Pc: 0.6,
			Pd: 0.3,
			Po: 0.1,
			K:  1.0,
		},
	}
}

// Validate checks dimensions, the initial infected fraction and params.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if math.IsNaN(c.InitialInfected) || c.InitialInfected < 0 || c.InitialInfected > 1 {
		return fmt.Errorf("%w: initial_infected=%v must be within [0, 1]", ErrInvalidParams, c.InitialInfected)
	}
	return c.Params.Validate()
}

// FromMap populates a config from defaults and a string map (flag-style
// key/value pairs).
func FromMap(kv map[string]string) (Config, error) {
	return DefaultConfig().Apply(kv)
}

// Apply returns a copy of c with the key/value overrides applied. Unknown keys
// and unparsable values are reported. The result is not validated.
func (c Config) Apply(kv map[string]string) (Config, error) {
	for k, v := range kv {
		if err := c.set(k, v); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "w", "width":
		return parseInt(key, value, &c.Width)
	case "h", "height":
		return parseInt(key, value, &c.Height)
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("sir: parsing %s: %w", key, err)
		}
		c.Seed = parsed
		return nil
	case "initial_infected":
		return parseFloat(key, value, &c.InitialInfected)
	case "pv":
		return parseFloat(key, value, &c.Params.Pv)
	case "ps":
		return parseFloat(key, value, &c.Params.Ps)
	case "pc":
		return parseFloat(key, value, &c.Params.Pc)
	case "pd":
		return parseFloat(key, value, &c.Params.Pd)
	case "po":
		return parseFloat(key, value, &c.Params.Po)
	case "k":
		return parseFloat(key, value, &c.Params.K)
	}
	return fmt.Errorf("sir: unknown parameter %q", key)
}

func parseInt(key, value string, dst *int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("sir: parsing %s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func parseFloat(key, value string, dst *float64) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("sir: parsing %s: %w", key, err)
	}
	*dst = parsed
	return nil
}
