package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eno-lang/enotok/sink"
)

var recordDsn string

var lintCmd = &cobra.Command{
	Use:   "lint path",
	Short: "Report syntax diagnostics for a document; exits non-zero if any are found",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <path>")
		}
		path := args[0]

		result, opts, cat, err := tokenizeFile(path)
		if err != nil {
			return err
		}

		for _, d := range result.Diagnostics {
			fmt.Println(d.Format(cat, opts.Indexing()))
			logger().WithFields(map[string]interface{}{
				"file": path,
				"line": d.Line + opts.Indexing(),
				"key":  d.Key,
			}).Warn("diagnostic")
		}

		if recordDsn != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			s, err := sink.Open(ctx, recordDsn)
			if err != nil {
				return err
			}
			defer s.Close()

			recordedAt := time.Now().UTC().Format(time.RFC3339)
			if err := s.Record(ctx, path, result.Diagnostics, opts, recordedAt); err != nil {
				return err
			}
		}

		if len(result.Diagnostics) > 0 {
			return fmt.Errorf("%d diagnostic(s) found in %s", len(result.Diagnostics), path)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVar(&recordDsn, "record", "", "record diagnostics to a SQL table at this DSN (postgres://, sqlserver://, azuresql://)")
	rootCmd.AddCommand(lintCmd)
}
