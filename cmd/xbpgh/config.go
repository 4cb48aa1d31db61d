package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// Config holds the CLI configuration.
type Config struct {
	LevelsFile string
	LogLevel   string
	Workers    int
}

// configResolver defines how to resolve a single configuration value
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*Config, string) error
}

var resolvers = []configResolver{
	{
		flagName:    "levels",
		envVarName:  "XBPGH_LEVELS",
		defaultVal:  "",
		description: "YAML level table to use instead of the built-in one",
		setter:      func(c *Config, v string) error { c.LevelsFile = v; return nil },
	},
	{
		flagName:    "log-level",
		envVarName:  "XBPGH_LOG_LEVEL",
		defaultVal:  "warn",
		description: "Log level: debug, info, warn, error",
		setter:      func(c *Config, v string) error { c.LogLevel = v; return nil },
	},
	{
		flagName:    "workers",
		envVarName:  "XBPGH_WORKERS",
		defaultVal:  "0",
		description: "Solutions simulated in parallel; 0 uses every CPU",
		setter: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid workers value %q: must be a non-negative integer", v)
			}
			c.Workers = n
			return nil
		},
	},
}

// globalFlags are registered on the root command; the rest only on the
// commands that use them.
var globalFlags = map[string]bool{"levels": true, "log-level": true}

func registerFlags(cmd *cobra.Command, global bool) {
	for _, r := range resolvers {
		if globalFlags[r.flagName] != global {
			continue
		}
		help := fmt.Sprintf("%s (env %s)", r.description, r.envVarName)
		if global {
			cmd.PersistentFlags().String(r.flagName, "", help)
		} else {
			cmd.Flags().String(r.flagName, "", help)
		}
	}
}

// loadConfig resolves every option as flag, then environment variable, then
// default. Flags the command does not define count as unset.
func loadConfig(cmd *cobra.Command, getenv func(string) string) (Config, error) {
	var cfg Config
	for _, r := range resolvers {
		value := r.defaultVal
		if v, err := cmd.Flags().GetString(r.flagName); err == nil && v != "" {
			value = v
		} else if env := getenv(r.envVarName); env != "" {
			value = env
		}
		if err := r.setter(&cfg, value); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
