package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the configuration file looked up in the checked directory.
const ConfigFile = "nojs-html.yaml"

// Config holds the checker settings. Zero values are filled by Defaults.
type Config struct {
	Suffix                string            `yaml:"suffix"`
	Dev                   bool              `yaml:"dev"`
	ReplaceAllTokens      bool              `yaml:"replace_all_tokens"`
	RawTemplateEvaluation bool              `yaml:"raw_template_evaluation"`
	AttributeMap          map[string]string `yaml:"attribute_map"`
	Components            []string          `yaml:"components"`
	Context               map[string]any    `yaml:"context"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Suffix:  ".gt.html",
		Context: map[string]any{},
	}
}

// Load reads dir/nojs-html.yaml over Defaults. ${NAME} and ${NAME:-default}
// are replaced with environment values before parsing. A missing file is
// not an error.
func Load(dir string, getenv func(string) string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(interpolateEnv(data, getenv), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Suffix == "" {
		cfg.Suffix = Defaults().Suffix
	}
	if cfg.Context == nil {
		cfg.Context = map[string]any{}
	}
	cfg.Path = path
	return cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		value := getenv(string(parts[1]))
		if value == "" && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}
