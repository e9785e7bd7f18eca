package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CFPSTATS_OUT_DIR.
const EnvPrefix = "CFPSTATS"

// Global configuration structure.
type Global struct {
	// Output placement and formats
	OutDir  string   `mapstructure:"out_dir" yaml:"out_dir"`
	Formats []string `mapstructure:"formats" yaml:"formats" validate:"min=1,dive,oneof=csv svg png CSV SVG PNG"`

	// Chart sizing in pixels; BarWidth is the console bar length in glyphs.
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width" validate:"gte=200,lte=8000"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height" validate:"gte=150,lte=8000"`
	BarWidth    int `mapstructure:"bar_width" yaml:"bar_width" validate:"gte=5,lte=200"`

	// Employer detection
	CompanyColumn   string `mapstructure:"company_column" yaml:"company_column" validate:"required"`
	EmployerPattern string `mapstructure:"employer_pattern" yaml:"employer_pattern" validate:"required"`
	EmployerName    string `mapstructure:"employer_name" yaml:"employer_name" validate:"required"`

	// Extra outputs
	Workbook bool `mapstructure:"workbook" yaml:"workbook"`
	Manifest bool `mapstructure:"manifest" yaml:"manifest"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		Formats:         []string{"csv", "svg", "png"},
		ChartWidth:      960,
		ChartHeight:     540,
		BarWidth:        40,
		CompanyColumn:   "Company",
		EmployerPattern: "hashicorp",
		EmployerName:    "HashiCorp",
	}
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		"out_dir", "formats", "chart_width", "chart_height", "bar_width",
		"company_column", "employer_pattern", "employer_name", "workbook", "manifest",
	}
}

var validate = validator.New()

// Validate checks value ranges and required fields.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Get returns the value of key formatted for display.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "out_dir":
		return c.OutDir, nil
	case "formats":
		return strings.Join(c.Formats, ","), nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	case "bar_width":
		return strconv.Itoa(c.BarWidth), nil
	case "company_column":
		return c.CompanyColumn, nil
	case "employer_pattern":
		return c.EmployerPattern, nil
	case "employer_name":
		return c.EmployerName, nil
	case "workbook":
		return strconv.FormatBool(c.Workbook), nil
	case "manifest":
		return strconv.FormatBool(c.Manifest), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val into key and validates the result.
func (c *Global) Set(key, val string) error {
	next := *c
	switch key {
	case "out_dir":
		next.OutDir = val
	case "formats":
		next.Formats = splitList(val)
	case "chart_width", "chart_height", "bar_width":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "chart_width":
			next.ChartWidth = i
		case "chart_height":
			next.ChartHeight = i
		default:
			next.BarWidth = i
		}
	case "company_column":
		next.CompanyColumn = val
	case "employer_pattern":
		next.EmployerPattern = val
	case "employer_name":
		next.EmployerName = val
	case "workbook", "manifest":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		if key == "workbook" {
			next.Workbook = b
		} else {
			next.Manifest = b
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dir is the default config directory, ~/.cfpstats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cfpstats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cfpstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("formats", d.Formats)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("bar_width", d.BarWidth)
	v.SetDefault("company_column", d.CompanyColumn)
	v.SetDefault("employer_pattern", d.EmployerPattern)
	v.SetDefault("employer_name", d.EmployerName)
	v.SetDefault("workbook", d.Workbook)
	v.SetDefault("manifest", d.Manifest)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
