package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Store     string `json:"store" yaml:"store"`         // Store backend: localfs or badger
	Path      string `json:"path" yaml:"path"`           // Location of the store
	LogLevel  string `json:"loglevel" yaml:"loglevel"`   // Log level of the core library
	Lookahead int    `json:"lookahead" yaml:"lookahead"` // Depth of the cycle detection
	System    string `json:"system" yaml:"system"`       // Name of the archived system to work on
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setRootParams fills in the settings not given on the command line
func (c *CLIConfig) setRootParams(flags *flagsT) {
	if flags.root.store == "" {
		flags.root.store = c.Store
	}
	if flags.root.path == "" {
		flags.root.path = c.Path
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.root.lookahead == 0 {
		flags.root.lookahead = c.Lookahead
	}
	if flags.root.system == "" {
		flags.root.system = c.System
	}
}
