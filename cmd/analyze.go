package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"textlens/internal/clix"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text...>",
	Short: "Analyze a text and store the result",
	Long: `Runs the emotion and gibberish models over the given text, stores the
result like POST /analyze does and prints it. Multiple arguments are joined
with spaces.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationLoadModels: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		record, err := appInstance.AnalysisService.Analyze(cmd.Context(), clix.JoinText(args))
		if err != nil {
			return fmt.Errorf("failed to analyze text: %w", err)
		}
		return printAnalysis(cmd.OutOrStdout(), record, clix.ParseOutputFormat(cmd.Flags()))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	clix.AddOutputFlag(analyzeCmd.Flags())
}
