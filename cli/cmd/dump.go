package cmd

import (
	"errors"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump path",
	Short: "Pretty-print the full tokenizer result for a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <path>")
		}

		result, _, _, err := tokenizeFile(args[0])
		if err != nil {
			return err
		}

		repr.Println(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
