package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textlens/internal/clix"
	"textlens/internal/store"
)

var getCmd = &cobra.Command{
	Use:   "get [entry_id]",
	Short: "Show one stored entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := clix.ParseEntryID(args[0])
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		record, err := appInstance.AnalysisService.GetEntry(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("entry %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get entry %d: %w", id, err)
		}
		return printEntry(cmd.OutOrStdout(), record, clix.ParseOutputFormat(cmd.Flags()))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	clix.AddOutputFlag(getCmd.Flags())
}
