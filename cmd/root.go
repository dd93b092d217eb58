package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"textlens/internal/app"
	"textlens/internal/config"
	"textlens/internal/logger"
)

// Command annotations read by PersistentPreRunE.
const (
	annotationLoadModels = "textlens/load-models"
	annotationNoApp      = "textlens/no-app"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "textlens",
	Short: "Emotion and gibberish analysis for short texts",
	Long: `textlens classifies text with a pretrained emotion model and a gibberish
detector, stores every result in PostgreSQL and serves them over HTTP.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		_ = cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsApp(cmd) {
			return nil
		}

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Configure(cfg.Log.Level, cfg.Log.Format)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg, app.Options{
			LoadModels: cmd.Annotations[annotationLoadModels] == "true",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store the app instance in the command's context
		cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
		return nil
	},
}

// needsApp is false for help, shell completion and commands annotated no-app.
func needsApp(cmd *cobra.Command) bool {
	if cmd == cmd.Root() || cmd.Name() == "help" || cmd.Annotations[annotationNoApp] == "true" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return false
		}
	}
	return true
}

func Execute() {
	if err := executeCommand(context.Background(), rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// executeCommand runs root and then closes the App the executed command
// opened. Cobra skips post-run hooks when RunE fails, so closing happens here.
func executeCommand(ctx context.Context, root *cobra.Command) error {
	executed, err := root.ExecuteContextC(ctx)
	if executed != nil {
		closeApp(executed.Context())
	}
	return err
}

func closeApp(ctx context.Context) {
	if ctx == nil {
		return
	}
	if c, ok := ctx.Value(appKey).(interface{ Close() }); ok {
		c.Close()
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext returns the App built by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./config.yaml)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Checking database connectivity...")
		if err := appInstance.AnalysisService.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database connection successful.")
		return nil
	},
}
