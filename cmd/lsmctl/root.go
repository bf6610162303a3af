// Command lsmctl drives the surface boundary-condition core in isolation
// from a host dynamical core, for local testing and checkpoint inspection.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/microhh-go/landsurface/config"
	"github.com/microhh-go/landsurface/surferr"
)

var configFile string

// RootCmd is the main command, structured like the teacher's modern
// inmap/cmd package: a RootCmd with run/checkpoint subcommands bound once
// at startup rather than the older global-package-variable style.
var RootCmd = &cobra.Command{
	Use:   "lsmctl",
	Short: "Drive the land-surface boundary condition core in isolation.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML configuration file (optional, flags/env override)")
	config.Bind(RootCmd.PersistentFlags())
	RootCmd.AddCommand(runCmd, checkpointCmd)
}

func loadConfig() error {
	if configFile != "" {
		if err := config.LoadTOML(config.Cfg, configFile); err != nil {
			return err
		}
	}
	return config.Validate(config.Cfg)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		if se, ok := err.(*surferr.Error); ok && se.Kind.IsFatal() {
			logrus.WithError(err).Error("lsmctl: fatal error")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
