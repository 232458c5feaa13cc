package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "enotok",
		Short:        "enotok",
		SilenceUsage: true,
		Long:         `CLI tool for tokenizing and linting eno-lang documents.`,
	}

	directory string
	locale    string
	verbose   bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to the directory enotok.yaml is loaded from")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "locale used to format diagnostics (defaults to enotok.yaml, then \"en\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	return rootCmd.Execute()
}

func logger() *logrus.Logger {
	log := logrus.StandardLogger()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
