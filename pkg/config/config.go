// Package config resolves autodoc settings from defaults, an optional
// .autodoc.yaml file, AUTODOC_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory.
const FileName = ".autodoc.yaml"

// EnvPrefix prefixes every environment override, e.g. AUTODOC_OUTPUT_DIR.
const EnvPrefix = "AUTODOC"

// Config holds the resolved settings.
type Config struct {
	// OutputDir is where default-named reports are written.
	OutputDir string `mapstructure:"output_dir" json:"output_dir,omitempty" jsonschema:"description=Directory for reports written without an explicit output path"`
	// Select filters plays with an expr-lang expression.
	Select  string        `mapstructure:"select" json:"select,omitempty" jsonschema:"description=expr-lang expression selecting the plays to document"`
	Verbose bool          `mapstructure:"verbose" json:"verbose,omitempty" jsonschema:"description=Log debug details to stderr"`
	Preview PreviewConfig `mapstructure:"preview" json:"preview,omitempty"`
}

// PreviewConfig configures terminal previews.
type PreviewConfig struct {
	Style string `mapstructure:"style" json:"style,omitempty" jsonschema:"enum=auto,enum=dark,enum=light,enum=notty,description=glamour style"`
	Width int    `mapstructure:"width" json:"width,omitempty" jsonschema:"minimum=0,description=Word-wrap width; 0 disables wrapping"`
}

// Defaults applied before any file, environment or flag value.
var Defaults = Config{
	Preview: PreviewConfig{Style: "auto", Width: 100},
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("output_dir", Defaults.OutputDir)
	v.SetDefault("select", Defaults.Select)
	v.SetDefault("verbose", Defaults.Verbose)
	v.SetDefault("preview.style", Defaults.Preview.Style)
	v.SetDefault("preview.width", Defaults.Preview.Width)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path into v and returns the merged config.
// With an empty path, FileName in the working directory is used if present.
// The file is validated against the config schema before it is read.
func Load(v *viper.Viper, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if verrs := Validate(data); len(verrs) > 0 {
			return nil, &InvalidError{Path: path, Errors: verrs}
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file; defaults and environment apply
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// InvalidError reports a config file that does not match the schema.
type InvalidError struct {
	Path   string
	Errors []*ValidationError
}

func (e *InvalidError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config %s:", e.Path)
	for _, ve := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(ve.Error())
	}
	return b.String()
}
