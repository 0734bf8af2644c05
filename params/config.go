package params

import (
	"flag"
	"os"
	"slices"

	"github.com/m4gshm/flag/flagenum"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/m4gshm/restruct/config"
	"github.com/m4gshm/restruct/logger"
)

const (
	Name              = "restruct"
	DefaultFileSuffix = "_" + Name + ".go"
)

func toString[F ~string](from F) string { return string(from) }
func fromString[F ~string](s string) F  { return F(s) }

func NewConfig(flagSet *flag.FlagSet) (*Config, error) {
	capabilities, err := flagenum.Multiple(flagSet, "capability", []config.Capability{}, config.AllCapabilities,
		fromString[config.Capability], toString[config.Capability], "enabled integration")
	if err != nil {
		return nil, err
	}
	return &Config{
		Type:           flagSet.String("type", "", "type name; must be set"),
		Output:         flagSet.String("out", "", "output file name; default srcdir/<type>"+DefaultFileSuffix),
		PackagePattern: flagSet.String("package", ".", "used package"),
		BuildTags:      multiVal(flagSet, "buildTag", []string{}, "include build tag"),
		OutBuildTags:   multiVal(flagSet, "outBuildTag", []string{}, "add build tag to generated file"),
		Capabilities:   capabilities,
		Schema:         flagSet.String("schema", "", "openapi schema file of the generated types, .json or .yaml; requires the openapi capability"),
		Select:         flagSet.String("select", "", "directive filter expression over kind, name, type and fields; example: kind == \"view\""),
		File:           flagSet.String("config", "", "yaml config file; flags override its values"),
		Nolint:         Nolint(flagSet),
		Debug:          flagSet.Bool("debug", false, "debug logging; also enabled by the "+logger.DebugEnv+" environment variable"),
	}, nil
}

func Nolint(flagSet *flag.FlagSet) *bool {
	return flagSet.Bool("nolint", false, "add //nolint comment")
}

type Config struct {
	Type           *string
	Output         *string
	PackagePattern *string
	BuildTags      *[]string
	OutBuildTags   *[]string
	Capabilities   *[]config.Capability
	Schema         *string
	Select         *string
	File           *string
	Nolint         *bool
	Debug          *bool
}

// FileConfig is the yaml form of the configuration.
type FileConfig struct {
	Type         string   `yaml:"type"`
	Output       string   `yaml:"out"`
	Package      string   `yaml:"package"`
	BuildTags    []string `yaml:"buildTags"`
	OutBuildTags []string `yaml:"outBuildTags"`
	Capabilities []string `yaml:"capabilities"`
	Schema       string   `yaml:"schema"`
	Select       string   `yaml:"select"`
	Nolint       bool     `yaml:"nolint"`
	Debug        bool     `yaml:"debug"`
}

// LoadFile reads the yaml config file.
func LoadFile(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", fileName)
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (*Config, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	capabilities := make([]config.Capability, 0, len(fc.Capabilities))
	for _, name := range fc.Capabilities {
		capability := fromString[config.Capability](name)
		if !slices.Contains(config.AllCapabilities, capability) {
			return nil, errors.Errorf("unknown capability %q, allowed values are %v", name, config.AllCapabilities)
		}
		capabilities = append(capabilities, capability)
	}
	return &Config{
		Type:           &fc.Type,
		Output:         &fc.Output,
		PackagePattern: &fc.Package,
		BuildTags:      &fc.BuildTags,
		OutBuildTags:   &fc.OutBuildTags,
		Capabilities:   &capabilities,
		Schema:         &fc.Schema,
		Select:         &fc.Select,
		File:           new(string),
		Nolint:         &fc.Nolint,
		Debug:          &fc.Debug,
	}, nil
}

// MergeWith fills the values that are not set by c from src.
func (c *Config) MergeWith(src *Config) *Config {
	logger.Debugw("config merging", "dest", c, "src", src)
	if src == nil {
		return c
	}
	if len(*c.Type) == 0 {
		c.Type = src.Type
	}
	if len(*c.Output) == 0 {
		c.Output = src.Output
	}
	if (len(*c.PackagePattern) == 0 || *c.PackagePattern == ".") && len(*src.PackagePattern) > 0 {
		c.PackagePattern = src.PackagePattern
	}
	if len(*c.BuildTags) == 0 {
		c.BuildTags = src.BuildTags
	}
	if len(*c.OutBuildTags) == 0 {
		c.OutBuildTags = src.OutBuildTags
	}
	if len(*c.Capabilities) == 0 {
		c.Capabilities = src.Capabilities
	}
	if len(*c.Schema) == 0 {
		c.Schema = src.Schema
	}
	if len(*c.Select) == 0 {
		c.Select = src.Select
	}
	if !*c.Nolint {
		c.Nolint = src.Nolint
	}
	if !*c.Debug {
		c.Debug = src.Debug
	}
	logger.Debugw("config merged", "dest", c)
	return c
}
