package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runnerhq/runnerd/pkg/types"
)

var runStdin bool

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Run a command on the server",
	Long: `Run a command on the server and print its output. Arguments are
passed as-is; no shell is involved on either side.
Example: runnerctl run ls -la task-9ae4ef2b/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := types.RunRequest{
			Command: args[0],
			Args:    args[1:],
		}
		if runStdin {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			req.Stdin = data
		}

		status, err := newClient().Run(context.Background(), req)
		if err != nil {
			return fmt.Errorf("failed to run command: %w", err)
		}
		return printStatus(cmd, status)
	},
}

// printStatus prints a run outcome the way a local command would behave:
// stdout to stdout, stderr to stderr, nonzero exits as errors.
func printStatus(cmd *cobra.Command, status *types.RunStatus) error {
	if status.Status == types.StatusError {
		return fmt.Errorf("command could not start: %s", status.Message)
	}

	if r := status.Result; r != nil {
		if r.Stdout != "" {
			fmt.Fprint(cmd.OutOrStdout(), r.Stdout)
		}
		if r.Stderr != "" {
			fmt.Fprint(cmd.ErrOrStderr(), r.Stderr)
		}
	}
	if status.Status == types.StatusFailure {
		return fmt.Errorf("command failed: %s", status.Reason)
	}
	return nil
}

func init() {
	runCmd.Flags().BoolVar(&runStdin, "stdin", false, "forward local stdin to the command")
	rootCmd.AddCommand(runCmd)
}
