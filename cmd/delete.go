package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textlens/internal/clix"
	"textlens/internal/store"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [entry_id]",
	Short: "Delete a stored entry",
	Args:  cobra.ExactArgs(1), // Requires exactly one argument: the entry ID
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := clix.ParseEntryID(args[0])
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		err = appInstance.AnalysisService.DeleteEntry(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("entry %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to delete entry %d: %w", id, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted entry with ID: %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
