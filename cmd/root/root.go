// Package root contains the root command for the application
package root

import (
	"github.com/Te4g/financial-tracker/internal/config"
	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/export"
	"github.com/Te4g/financial-tracker/internal/fileutils"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/statementparser"
	"github.com/Te4g/financial-tracker/internal/store"
	"github.com/Te4g/financial-tracker/internal/taxprofile"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved configuration after PersistentPreRun
	Cfg *config.Config

	// Store holds the entry store all commands operate on
	Store *store.EntryStore

	// Profiles holds the tax profile store
	Profiles *taxprofile.Store

	// IDs stamps identifiers on entries and tax elements created by commands
	IDs models.IDSource = models.UUIDSource{}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	cleanup store.CleanupFunc

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "financial-tracker",
		Short: "A CLI tool to track recurring income and expenses and project a monthly budget.",
		Long: `financial-tracker keeps recurring income and expense entries, normalizes
them to a monthly basis and reports income, taxes, expenses and balance.
Bank statement CSV files can be imported to seed the expense list.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to financial-tracker!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger on every package that keeps one
			statementparser.SetLogger(Log)
			currencyutils.SetLogger(Log)
			store.SetLogger(Log)
			taxprofile.SetLogger(Log)
			export.SetLogger(Log)
			fileutils.SetLogger(Log)

			// Ensure CSV delimiter follows the configuration
			if cfg.CSV.Delimiter != "" {
				Log.WithField("delimiter", cfg.CSV.Delimiter).Debug("Setting CSV delimiter from configuration")
				export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}

			backend, cleanupFn, err := store.NewBackend(store.BackendConfig{
				Type:          store.BackendType(cfg.Storage.Backend),
				DataDirectory: cfg.ResolveDataDir(),
				SQLiteDBPath:  cfg.ResolveSQLitePath(),
			})
			if err != nil {
				Log.Fatalf("Error initializing storage backend: %v", err)
			}
			cleanup = cleanupFn

			Store = store.New(backend, cfg.Storage.Slot)
			if err := Store.Restore(cmd.Context()); err != nil {
				Log.Fatalf("Error restoring saved entries: %v", err)
			}

			Profiles = taxprofile.NewStore(cfg.ResolveTaxProfilesPath())
		},
		// Close the storage backend when ANY command finishes
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup == nil {
				return
			}
			if err := cleanup(); err != nil {
				Log.Warnf("Failed to close storage backend: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before importing")
}
