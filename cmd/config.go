package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/store"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by spt, and passed to extensions.
const (
	EnvStore    = "SPT_STORE"
	EnvBackend  = "SPT_BACKEND"
	EnvCurrency = "SPT_CURRENCY"
	EnvVerbose  = "SPT_VERBOSE"
	EnvConfig   = "SPT_CONFIG"
)

// DefaultConfigFile is the configuration file read from the working folder.
const DefaultConfigFile = "spt.yaml"

// Config is the resolved configuration of spt.
//
// Each field is taken from, by decreasing priority: the command line flags,
// the environment (possibly loaded from a .env file), the YAML
// configuration file, and the defaults.
type Config struct {
	Store    string `yaml:"store"`
	Backend  string `yaml:"backend"`
	Currency string `yaml:"currency"`
	Verbose  bool   `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store:    store.DefaultDir,
		Backend:  store.BackendDir,
		Currency: string(folio.DefaultCurrency),
	}
}

// ResolveConfig loads .env, then resolves the configuration from the
// process flags, environment and configuration file.
func ResolveConfig() (Config, error) {
	// a missing .env is fine, existing variables are not overridden.
	_ = godotenv.Load()

	file, required := DefaultConfigFile, false
	if v, ok := os.LookupEnv(EnvConfig); ok && v != "" {
		file, required = v, true
	}
	if *configFlag != "" {
		file, required = *configFlag, true
	}
	return LoadConfig(file, required, os.LookupEnv, flag.CommandLine)
}

// LoadConfig resolves the configuration from file, the environment lookup
// and the flags explicitly set in flags. A missing file is an error only if it
// is required.
func LoadConfig(file string, required bool, lookup func(string) (string, bool), flags *flag.FlagSet) (Config, error) {
	c := DefaultConfig()
	if err := c.readFile(file, required); err != nil {
		return Config{}, err
	}
	if err := c.readEnv(lookup); err != nil {
		return Config{}, err
	}
	if flags != nil {
		if err := c.readFlags(flags); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) readFile(name string, required bool) error {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %q: %w", name, err)
	}
	return nil
}

func (c *Config) readEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvCurrency); ok && v != "" {
		c.Currency = v
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvVerbose, v, err)
		}
		c.Verbose = b
	}
	return nil
}

// readFlags applies the global flags that were explicitly set.
func (c *Config) readFlags(flags *flag.FlagSet) (err error) {
	flags.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "store":
			c.Store = v
		case "backend":
			c.Backend = v
		case "currency":
			c.Currency = v
		case "v":
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = perr
			}
			c.Verbose = b
		}
	})
	return err
}

// Validate checks the backend and currency names.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	if !slices.Contains(store.Backends, c.Backend) {
		return fmt.Errorf("unknown backend %q, want one of %s", c.Backend, strings.Join(store.Backends, ", "))
	}
	cur, err := folio.ParseCurrency(c.Currency)
	if err != nil {
		return err
	}
	c.Currency = string(cur)
	return nil
}

// Env returns the configuration as environment variables.
func (c Config) Env() []string {
	return []string{
		EnvStore + "=" + c.Store,
		EnvBackend + "=" + c.Backend,
		EnvCurrency + "=" + c.Currency,
		EnvVerbose + "=" + strconv.FormatBool(c.Verbose),
	}
}
