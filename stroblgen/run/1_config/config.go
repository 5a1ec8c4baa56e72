// Package config loads stroblgen settings from an optional TOML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// FileName is the config file looked up in the package directory when no explicit path is given.
const FileName = "stroblgen.toml"

// Config holds the marker names and naming rules the generator works with.
type Config struct {
	Markers    Markers    `toml:"markers"`
	Generation Generation `toml:"generation"`
}

// Generation controls the names and imports of generated code.
type Generation struct {
	// TestBase is the embedded type that selects the suite convention, compared to the first embedded field's text.
	TestBase      string `toml:"test_base"`
	EnumSuffix    string `toml:"enum_suffix"`
	VerifyMethod  string `toml:"verify_method"`
	RuntimeImport string `toml:"runtime_import"`
}

// Markers are directive names without the leading "//".
type Markers struct {
	UsesMocks string `toml:"uses_mocks"`
	Mock      string `toml:"mock"`
	Test      string `toml:"test"`
}

// ReadFileFunc matches os.ReadFile.
type ReadFileFunc func(name string) ([]byte, error)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Markers: Markers{
			UsesMocks: "strobl:usesmocks",
			Mock:      "strobl:mock",
			Test:      "strobl:test",
		},
		Generation: Generation{
			TestBase:      "suite.Suite",
			EnumSuffix:    "StroblMock",
			VerifyMethod:  "VerifyStroblMocksUnused",
			RuntimeImport: "github.com/gstrobl17/stroblmocks/stroblmock",
		},
	}
}

// Load reads the config for dir. An explicit path must exist; otherwise dir/stroblgen.toml is used when present and
// the defaults when it is not. Keys missing from the file keep their defaults.
func Load(dir, explicitPath string, readFile ReadFileFunc) (Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		path = filepath.Join(dir, FileName)
	}

	data, err := readFile(path)
	if err != nil {
		if explicitPath == "" && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return Config{}, errors.WithHint(
			errors.Wrapf(errUnknownKeys, "%s: %s", path, strings.Join(keys, ", ")),
			"known tables are [markers] and [generation]",
		)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

// Validate reports empty settings and markers written with their comment prefix.
func (c Config) Validate() error {
	values := []struct {
		key, value string
	}{
		{"markers.uses_mocks", c.Markers.UsesMocks},
		{"markers.mock", c.Markers.Mock},
		{"markers.test", c.Markers.Test},
		{"generation.test_base", c.Generation.TestBase},
		{"generation.enum_suffix", c.Generation.EnumSuffix},
		{"generation.verify_method", c.Generation.VerifyMethod},
		{"generation.runtime_import", c.Generation.RuntimeImport},
	}

	for _, v := range values {
		if strings.TrimSpace(v.value) == "" {
			return errors.Wrapf(errEmptySetting, "%s", v.key)
		}
	}

	for _, marker := range []string{c.Markers.UsesMocks, c.Markers.Mock, c.Markers.Test} {
		if strings.HasPrefix(marker, "//") || strings.ContainsAny(marker, " \t") {
			return errors.WithHint(
				errors.Wrapf(errBadMarker, "%q", marker),
				"write markers without the leading // and without spaces, e.g. strobl:mock",
			)
		}
	}

	return nil
}

// unexported variables.
var (
	errBadMarker    = errors.New("malformed marker")
	errEmptySetting = errors.New("setting must not be empty")
	errUnknownKeys  = errors.New("unknown config keys")
)
