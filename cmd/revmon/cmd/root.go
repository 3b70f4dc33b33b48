// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "revmon",
	Short: "Revmon keeps track of how artifacts evolve across several repositories",
	Long: `Revmon records the revision history of several repositories as a set of revision graphs.

Revisions succeed one another and branches are joined by merges. Relations point from a revision
of one graph to a revision of another, and projections name an artifact computed from revisions
spanning several graphs.

Revmon answers "what surrounds this revision" along time, space, relational and projective axes,
and keeps the whole structure consistent after every change.
`,
	SilenceUsage: true,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&revmonFlags.root.store, "store", "", `The store backend for archived systems: "localfs" or "badger"`)
	rootCmd.PersistentFlags().StringVar(&revmonFlags.root.path, "path", "", "The location of the store")
	rootCmd.PersistentFlags().StringVar(&revmonFlags.root.system, "system", "", "The name of the archived system")
	rootCmd.PersistentFlags().StringVar(&revmonFlags.root.logLevel, "loglevel", "", "The logging level: debug, info, warn, error or none")
	rootCmd.PersistentFlags().IntVar(&revmonFlags.root.lookahead, "lookahead", 0, "The depth of cycle detection when validating graphs")
	rootCmd.PersistentFlags().StringVarP(&revmonFlags.root.output, "output", "o", "text", `The output format: "text" or "yaml"`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("store", storeLocalFS)
	viper.SetDefault("path", "")
	viper.SetDefault("loglevel", dlogger.LogLevelWarn)
	viper.SetDefault("lookahead", core.DefaultLookahead)
	viper.SetDefault("system", "default")
	if os.Getenv("REVMON_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("REVMON_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.revmon")
		viper.AddConfigPath("/etc/revmon")
		viper.SetConfigName("revmon")
	}

	viper.SetEnvPrefix("revmon")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
		return
	}
	config.setRootParams(&revmonFlags)
}
