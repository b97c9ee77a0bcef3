// Package config loads javagen.yaml or javagen.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/pom"
)

var log = commonlog.GetLogger("javagen.config")

// FileNames are searched in this order when no config path is given.
var FileNames = []string{"javagen.yaml", "javagen.yml", "javagen.toml"}

const DefaultJDKVersion = "1.8"

type Config struct {
	Output Output `yaml:"output" toml:"output"`
	Emit   Emit   `yaml:"emit" toml:"emit"`
	Java   Java   `yaml:"java" toml:"java"`

	path string
}

type Output struct {
	Root        string `yaml:"root,omitempty" toml:"root,omitempty"`
	SourceDir   string `yaml:"source_dir,omitempty" toml:"source_dir,omitempty"`
	ResourceDir string `yaml:"resource_dir,omitempty" toml:"resource_dir,omitempty"`
}

type Emit struct {
	Workers       int  `yaml:"workers,omitempty" toml:"workers,omitempty"`
	StrictImports bool `yaml:"strict_imports,omitempty" toml:"strict_imports,omitempty"`
}

type Java struct {
	JDKVersion string      `yaml:"jdk_version,omitempty" toml:"jdk_version,omitempty"`
	PomParent  *pom.Parent `yaml:"pom_parent,omitempty" toml:"pom_parent,omitempty"`
	// PomDependencies are "groupId:artifactId[:version]" coordinates added
	// to every generated POM.
	PomDependencies []string     `yaml:"pom_dependencies,omitempty" toml:"pom_dependencies,omitempty"`
	PomPlugins      []pom.Plugin `yaml:"pom_plugins,omitempty" toml:"pom_plugins,omitempty"`
}

func Default() *Config {
	return &Config{
		Output: Output{Root: "."},
		Emit:   Emit{Workers: runtime.GOMAXPROCS(0)},
		Java: Java{
			JDKVersion: DefaultJDKVersion,
			PomParent:  pom.SpringBootParent(),
			PomPlugins: []pom.Plugin{pom.SpringBootPlugin()},
		},
	}
}

// Path returns the file the config was read from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// CollisionPolicy maps emit.strict_imports to an import collision policy.
func (c *Config) CollisionPolicy() java.CollisionPolicy {
	if c.Emit.StrictImports {
		return java.RejectCollisions
	}
	return java.FirstSeenWins
}

// Dependencies parses the configured POM dependency coordinates.
func (c *Config) Dependencies() ([]pom.Dependency, error) {
	deps := make([]pom.Dependency, 0, len(c.Java.PomDependencies))
	for _, coord := range c.Java.PomDependencies {
		dep, err := pom.ParseCoordinate(coord)
		if err != nil {
			return nil, fmt.Errorf("java.pom_dependencies: %w", err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (c *Config) Validate() error {
	if c.Emit.Workers < 0 {
		return fmt.Errorf("emit.workers must not be negative, got %d", c.Emit.Workers)
	}
	if c.Java.JDKVersion == "" {
		return fmt.Errorf("java.jdk_version must not be empty")
	}
	if _, err := c.Dependencies(); err != nil {
		return err
	}
	return nil
}

// Load reads the config at path. With an empty path it looks for one of
// FileNames in the working directory and falls back to Default.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		path = Find(wd)
		if path == "" {
			log.Debug("no config file found, using default config")
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	log.Debugf("config file found: %s", path)
	return cfg, nil
}

// Find returns the first of FileNames present in dir, or "".
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

type Format int

const (
	YAML Format = iota
	TOML
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case TOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes c in the given format.
func Marshal(c *Config, format Format) ([]byte, error) {
	if format == TOML {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return []byte(sb.String()), nil
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}
