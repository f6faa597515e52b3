package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := newClient().Info(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch info: %w", err)
		}

		data, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
