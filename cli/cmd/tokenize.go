package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize path",
	Short: "Print the instruction stream for a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <path>")
		}

		result, opts, cat, err := tokenizeFile(args[0])
		if err != nil {
			return err
		}

		for _, in := range result.Instructions {
			fmt.Printf("%d: %s\n", in.Line+opts.Indexing(), in.Kind)
		}
		for _, d := range result.Diagnostics {
			logger().Warn(d.Format(cat, opts.Indexing()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
