// Package config loads promptgen's configuration from flags, PROMPTGEN_*
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables, e.g. PROMPTGEN_COUNT.
const EnvPrefix = "PROMPTGEN"

// Config controls a generation run.
type Config struct {
	// Count is the number of rounds to generate.
	Count int `mapstructure:"count" yaml:"count"`
	// ExhaustList lets lists drain across rounds instead of resetting them
	// after every round.
	ExhaustList bool `mapstructure:"exhaust_list" yaml:"exhaust_list"`
	// DuplicateDelimiter separates alias bases from suffixes, as in
	// "{artist 1}".
	DuplicateDelimiter string `mapstructure:"duplicate_delimiter" yaml:"duplicate_delimiter"`
	// DefaultList loads every list in LibraryPath before generating.
	DefaultList bool   `mapstructure:"default_list" yaml:"default_list"`
	LibraryPath string `mapstructure:"library_path" yaml:"library_path"`
	// Lists is an optional YAML file of extra lists.
	Lists          string `mapstructure:"lists" yaml:"lists"`
	Echo           bool   `mapstructure:"echo" yaml:"echo"`
	SaveToFile     bool   `mapstructure:"save_to_file" yaml:"save_to_file"`
	SaveToFilePath string `mapstructure:"save_to_file_path" yaml:"save_to_file_path"`
	Template       string `mapstructure:"template" yaml:"template"`
	// Seed makes runs reproducible; zero seeds from system entropy.
	Seed uint64   `mapstructure:"seed" yaml:"seed"`
	S3   S3Config `mapstructure:"s3" yaml:"s3"`
}

// S3Config points the output at an S3-compatible bucket. It's only used when
// Bucket is set.
type S3Config struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Region   string        `mapstructure:"region" yaml:"region"`
	Bucket   string        `mapstructure:"bucket" yaml:"bucket"`
	User     string        `mapstructure:"user" yaml:"user"`
	Password string        `mapstructure:"password" yaml:"password"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Enabled reports whether output should go to S3.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the documented defaults. Output goes to the current
// working directory.
func Default() Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Config{
		Count:              1,
		DuplicateDelimiter: " ",
		DefaultList:        true,
		LibraryPath:        "library",
		Echo:               true,
		SaveToFile:         true,
		SaveToFilePath:     wd,
		S3: S3Config{
			Region:  "us-east-1",
			Timeout: time.Minute,
		},
	}
}

// Validate checks the config for values that can't produce a run.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Template == "" {
		return errors.New("template is required")
	}
	if c.DefaultList && c.LibraryPath == "" {
		return errors.New("library path is required when loading default lists")
	}
	if c.S3.Enabled() && c.S3.Endpoint == "" {
		return errors.New("s3 endpoint is required when an s3 bucket is set")
	}
	return nil
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"count":               "count",
	"exhaust-list":        "exhaust_list",
	"duplicate-delimiter": "duplicate_delimiter",
	"default-list":        "default_list",
	"library":             "library_path",
	"lists":               "lists",
	"echo":                "echo",
	"save":                "save_to_file",
	"out-dir":             "save_to_file_path",
	"template":            "template",
	"seed":                "seed",
	"s3-addr":             "s3.endpoint",
	"s3-region":           "s3.region",
	"s3-bucket":           "s3.bucket",
	"s3-user":             "s3.user",
	"s3-pass":             "s3.password",
	"s3-prefix":           "s3.prefix",
	"s3-timeout":          "s3.timeout",
}

// RegisterFlags adds a flag for every config key to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.IntP("count", "n", d.Count, "number of prompts to generate")
	flags.Bool("exhaust-list", d.ExhaustList, "drain lists across prompts instead of resetting them")
	flags.String("duplicate-delimiter", d.DuplicateDelimiter, "separator for alias placeholders like {artist 1}")
	flags.Bool("default-list", d.DefaultList, "load every list in the library directory")
	flags.String("library", d.LibraryPath, "directory of newline-delimited *.txt lists")
	flags.String("lists", d.Lists, "YAML file of additional lists")
	flags.Bool("echo", d.Echo, "print the last prompt and a summary")
	flags.Bool("save", d.SaveToFile, "save prompts to a file")
	flags.String("out-dir", d.SaveToFilePath, "directory for saved prompts")
	flags.StringP("template", "t", d.Template, "prompt template")
	flags.Uint64("seed", d.Seed, "random seed; 0 seeds from system entropy")
	flags.String("s3-addr", d.S3.Endpoint, "object storage address; saves to S3 when --s3-bucket is set")
	flags.String("s3-region", d.S3.Region, "object storage region")
	flags.String("s3-bucket", d.S3.Bucket, "object storage bucket")
	flags.String("s3-user", d.S3.User, "object storage user")
	flags.String("s3-pass", d.S3.Password, "object storage password")
	flags.String("s3-prefix", d.S3.Prefix, "object key prefix")
	flags.Duration("s3-timeout", d.S3.Timeout, "object storage timeout")
}

// Load merges defaults, the config file (if any), environment variables and
// flags, in increasing order of precedence. Without an explicit cfgFile,
// promptgen.yaml in the working directory is used if present. Flags may be
// nil.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for key, value := range toMap(Default()) {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("promptgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// toMap flattens cfg into dotted viper keys.
func toMap(cfg Config) map[string]any {
	return map[string]any{
		"count":               cfg.Count,
		"exhaust_list":        cfg.ExhaustList,
		"duplicate_delimiter": cfg.DuplicateDelimiter,
		"default_list":        cfg.DefaultList,
		"library_path":        cfg.LibraryPath,
		"lists":               cfg.Lists,
		"echo":                cfg.Echo,
		"save_to_file":        cfg.SaveToFile,
		"save_to_file_path":   cfg.SaveToFilePath,
		"template":            cfg.Template,
		"seed":                cfg.Seed,
		"s3.endpoint":         cfg.S3.Endpoint,
		"s3.region":           cfg.S3.Region,
		"s3.bucket":           cfg.S3.Bucket,
		"s3.user":             cfg.S3.User,
		"s3.password":         cfg.S3.Password,
		"s3.prefix":           cfg.S3.Prefix,
		"s3.timeout":          cfg.S3.Timeout,
	}
}

// WriteDefault writes the default configuration as YAML to path. Output goes
// to the working directory of whichever run loads the file.
func WriteDefault(path string) error {
	cfg := Default()
	cfg.SaveToFilePath = "."
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# promptgen configuration\n# Every key can also be set with a PROMPTGEN_ environment variable,\n# e.g. PROMPTGEN_COUNT=10 or PROMPTGEN_S3_BUCKET=prompts.\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
