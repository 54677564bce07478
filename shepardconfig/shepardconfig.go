// Package shepardconfig defines the pipeline's runtime configuration
// and its JSON loading rules: unknown keys are ignored, a key that is
// absent or holds a value of the wrong JSON type leaves the
// corresponding field at its default, and an empty string value for a
// filename field is treated the same as absent.
package shepardconfig

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AxisNames names the coordinate keys read from and written to point
// files, in axis order. ValueName names the scalar-value key. Unlike
// the other Config fields, these are not configurable at runtime: they
// are fixed constants.
var AxisNames = []string{"x", "y"}

const ValueName = "value"

// Config holds the pipeline's tunable parameters. The zero value is
// not the default configuration; use Default.
type Config struct {
	ConfigFn        string
	OutputFn        string
	KnownPointsFn   string
	UnknownPointsFn string
	NumNeighbors    uint
	ReverseSearch   bool
	IdwPower        float64
	JSONIndent      int
}

// Default returns the pipeline's built-in configuration.
func Default() Config {
	return Config{
		ConfigFn:        "config.json",
		OutputFn:        "output.json",
		KnownPointsFn:   "known_points.json",
		UnknownPointsFn: "unknown_points.json",
		NumNeighbors:    100,
		ReverseSearch:   false,
		IdwPower:        2.0,
		JSONIndent:      4,
	}
}

// ErrMalformedConfig is returned when the JSON root is not a non-empty
// object.
var ErrMalformedConfig = errors.New("shepardconfig: malformed config data")

// Load reads a config document from r on top of base, returning a copy
// of base with every recognized, correctly-typed, non-empty field
// overridden. base.ConfigFn is never touched: the config document names
// every file but its own.
//
// Each field is looked up and type-checked independently against the
// decoded map, so one mistyped key (e.g. a string where a number is
// expected) only costs that field its override — it does not abort
// the rest of the document.
func Load(r io.Reader, base Config) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return base, errors.Wrap(err, "shepardconfig: read")
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return base, errors.Wrap(ErrMalformedConfig, err.Error())
	}
	if len(data) == 0 {
		return base, ErrMalformedConfig
	}

	cfg := base
	if s, ok := stringField(data, "output_fn"); ok && s != "" {
		cfg.OutputFn = s
	}
	if s, ok := stringField(data, "known_points_fn"); ok && s != "" {
		cfg.KnownPointsFn = s
	}
	if s, ok := stringField(data, "unknown_points_fn"); ok && s != "" {
		cfg.UnknownPointsFn = s
	}
	if n, ok := numberField(data, "num_neighbors"); ok && n > 0 {
		cfg.NumNeighbors = uint(n)
	}
	if b, ok := boolField(data, "reverse_search"); ok {
		cfg.ReverseSearch = b
	}
	if n, ok := numberField(data, "idw_power"); ok {
		cfg.IdwPower = n
	}
	if n, ok := numberField(data, "json_indent"); ok {
		cfg.JSONIndent = int(n)
	}

	return cfg, nil
}

func stringField(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func numberField(data map[string]any, key string) (float64, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

func boolField(data map[string]any, key string) (bool, bool) {
	v, ok := data[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// LoadFile reads a config document from filename; an empty filename
// means base.ConfigFn. If the file cannot be opened, it returns base
// unchanged except that ConfigFn records the path it tried, silently
// keeping the running defaults when no config file exists yet.
func LoadFile(filename string, base Config) (Config, error) {
	if filename == "" {
		filename = base.ConfigFn
	}

	file, err := os.Open(filename)
	if err != nil {
		cfg := base
		cfg.ConfigFn = filename
		return cfg, nil
	}
	defer file.Close()

	cfg, err := Load(file, base)
	if err != nil {
		return base, err
	}
	cfg.ConfigFn = filename
	return cfg, nil
}
