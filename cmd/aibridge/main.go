// Command aibridge is a host stand-in for the bridge library: it exposes the
// prompt, model-listing, and settings surfaces from the command line.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/noteflow/aibridge/pkg/bridge"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/noteflow/aibridge/pkg/settings"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	bridgeDir string
	envFile   string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "aibridge",
	Short: "Bridge prompts from note-taking plugins to cloud and local AI providers",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadDotEnv(envFile)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bridgeDir, "dir", defaultBridgeDir(), "path to the bridge settings directory")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to .env file (ignored if missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log request details")

	rootCmd.AddCommand(askCmd, modelsCmd, settingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// defaultBridgeDir resolves the per-user settings directory, falling back to
// a local path when the home directory is unknown.
func defaultBridgeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aibridge"
	}

	return filepath.Join(home, ".aibridge")
}

// loadDotEnv loads environment variables from path. Missing files are
// ignored so the flag's default never fails.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

// newLogger builds a console logger; non-verbose runs only show warnings.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}

	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// envKeys maps cloud providers to the conventional environment variable
// consulted when no key is stored in the settings.
var envKeys = map[provider.ID]string{
	provider.OpenAI:    "OPENAI_API_KEY",
	provider.Anthropic: "ANTHROPIC_API_KEY",
	provider.Gemini:    "GEMINI_API_KEY",
}

// openBridge loads the bridge from the settings directory and fills missing
// API keys from the environment for this session (never persisted).
func openBridge() (*bridge.Bridge, error) {
	store := settings.NewFileStore(bridgeDir)

	b, err := bridge.New(store, bridge.WithLogger(newLogger()))
	if err != nil {
		return nil, err
	}

	s := b.Settings()
	for id, envVar := range envKeys {
		if s.APIKey(id) == "" {
			if v := os.Getenv(envVar); v != "" {
				s.ForProvider(id).APIKey = v
			}
		}
	}

	return b, nil
}
