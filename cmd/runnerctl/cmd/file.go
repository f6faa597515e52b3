package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var fileOutput string

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Download a file from the server's working directory",
	Long: `Download a file from the server's working directory. The path is
relative to the working root; paths escaping it are refused by the server.
Example: runnerctl file task-9ae4ef2b/result.tar -o result.tar`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = cmd.OutOrStdout()
		if fileOutput != "" {
			f, err := os.Create(fileOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", fileOutput, err)
			}
			defer f.Close()
			w = f
		}

		n, err := newClient().FetchFile(context.Background(), args[0], w)
		if err != nil {
			return fmt.Errorf("failed to fetch file: %w", err)
		}
		if fileOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", n, fileOutput)
		}
		return nil
	},
}

func init() {
	fileCmd.Flags().StringVarP(&fileOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(fileCmd)
}
