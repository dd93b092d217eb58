package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"textlens/internal/clix"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	Long:  `Displays every stored analysis ordered by ID.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		records, err := appInstance.AnalysisService.ListEntries(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		return printEntries(cmd.OutOrStdout(), records, clix.ParseOutputFormat(cmd.Flags()))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	clix.AddOutputFlag(listCmd.Flags())
}
