package texta

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up by the CLI.
const DefaultConfigFile = "texta.yaml"

// Config holds settings shared by the library's components.
type Config struct {
	Search  SearchConfig
	Lexicon LexiconConfig
	Toolkit ToolkitConfig
}

// SearchConfig controls the Finder.
type SearchConfig struct {
	Var           string // Custom search path variable
	PathVar       string // System search path variable
	PathSeparator string // Separator for both variables
}

// LexiconConfig controls the custom lexicon.
type LexiconConfig struct {
	Filename string
}

// ToolkitConfig selects an external toolkit program. An empty Command means
// only the in-process stages are available.
type ToolkitConfig struct {
	Command []string
	Timeout time.Duration
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Var:           DefaultSearchVar,
			PathVar:       DefaultPathVar,
			PathSeparator: DefaultPathListSeparator,
		},
		Lexicon: LexiconConfig{
			Filename: CustomLexiconFilename,
		},
		Toolkit: ToolkitConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// LoadConfig reads the YAML file at path and applies its values on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &OpError{
			Op:   "config.load",
			Kind: fsErrorKind(err),
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &OpError{
			Op:   "config.load",
			Kind: KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Search.Var != "" {
		cfg.Search.Var = y.Search.Var
	}
	if y.Search.PathVar != "" {
		cfg.Search.PathVar = y.Search.PathVar
	}
	if y.Search.PathSeparator != "" {
		cfg.Search.PathSeparator = y.Search.PathSeparator
	}
	if y.Lexicon.Filename != "" {
		cfg.Lexicon.Filename = y.Lexicon.Filename
	}
	if len(y.Toolkit.Command) > 0 {
		cfg.Toolkit.Command = y.Toolkit.Command
	}
	if y.Toolkit.Timeout != nil {
		if *y.Toolkit.Timeout < 0 {
			return cfg, &OpError{
				Op:   "config.load",
				Kind: KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("%w: toolkit.timeout must not be negative", ErrInvalidConfig),
			}
		}
		cfg.Toolkit.Timeout = *y.Toolkit.Timeout
	}

	return cfg, nil
}

// FinderOpts converts the search settings into Finder options.
func (c Config) FinderOpts() []FinderOpt {
	return []FinderOpt{
		WithSearchVar(c.Search.Var),
		WithPathVar(c.Search.PathVar),
		WithPathListSeparator(c.Search.PathSeparator),
	}
}

type yamlConfig struct {
	Search struct {
		Var           string `yaml:"var"`
		PathVar       string `yaml:"path_var"`
		PathSeparator string `yaml:"path_separator"`
	} `yaml:"search"`

	Lexicon struct {
		Filename string `yaml:"filename"`
	} `yaml:"lexicon"`

	Toolkit struct {
		Command []string       `yaml:"command"`
		Timeout *time.Duration `yaml:"timeout"`
	} `yaml:"toolkit"`
}
