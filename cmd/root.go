package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studentsim/internal/config"
	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studentsim",
	Short: "Simulate a classroom of student responses",
	Long: "StudentSim - ask a question, get a classroom of realistic student answers, " +
		"then ask follow-up questions about them.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile == "" {
			return config.LoadDotEnv()
		}
		return config.LoadDotEnv(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDENTSIM_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default .env)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDENTSIM_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// cliLogger logs to stderr with --verbose and discards otherwise.
func cliLogger(cmd *cobra.Command) *logger.Logger {
	if v, _ := cmd.Flags().GetBool("verbose"); !v {
		return logger.Nop()
	}
	log, err := logger.New(config.DefaultLogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logger unavailable:", err)
		return logger.Nop()
	}
	return log
}

// envProvider builds the provider configured in the environment. It
// returns nil, after a warning on stderr when the configuration is broken,
// so callers run offline.
func envProvider(ctx context.Context, events store.EventRepo, log *logger.Logger) (llm.Provider, llm.Config) {
	provider, cfg, err := llm.NewProviderFromEnv(ctx, events, log)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Using offline mock data.")
		}
		return nil, cfg
	}
	return provider, cfg
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
