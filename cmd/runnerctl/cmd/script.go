package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runnerhq/runnerd/pkg/types"
)

var scriptInterpreter string

var scriptCmd = &cobra.Command{
	Use:   "script <file> [args...]",
	Short: "Upload a script and run it through an interpreter",
	Long: `Upload a local script file (or - for stdin) and run it on the
server with the given interpreter.
Example: runnerctl script -i bash deploy.sh prod`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var body []byte
		var err error
		if args[0] == "-" {
			body, err = io.ReadAll(cmd.InOrStdin())
		} else {
			body, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}

		status, err := newClient().RunScript(context.Background(), types.ScriptRequest{
			Interpreter: scriptInterpreter,
			Script:      body,
			Args:        args[1:],
		})
		if err != nil {
			return fmt.Errorf("failed to run script: %w", err)
		}
		return printStatus(cmd, status)
	},
}

func init() {
	scriptCmd.Flags().StringVarP(&scriptInterpreter, "interpreter", "i", "sh", "interpreter to run the script with")
	rootCmd.AddCommand(scriptCmd)
}
