package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/rimlocale/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rimlocale [mod-dir]",
		Short: "RimWorld mod translator",
		Long: `rimlocale translates the XML data files of a RimWorld mod into every
supported game language using a language model.

Defs are translated into Languages/<Language>/DefInjected and English Keyed
strings into Languages/<Language>/Keyed. Model responses are cached on disk
by prompt, so running again only pays for files that changed.

Examples:
  rimlocale                          # Translate the mod in the parent directory
  rimlocale ~/mods/MyMod             # Translate a specific mod
  rimlocale --languages German,French
  rimlocale --dry-run                # Show what would be translated
  rimlocale --report-db runs.db --last-run
  rimlocale --archive-cache          # Move old cache entries aside`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.rimlocale.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputDir, "input", "i", flags.InputDir, "Mod directory to translate")
	cmd.Flags().StringSliceVarP(&flags.Languages, "languages", "l", flags.Languages, "Target languages (RimWorld folder names)")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 0, "Maximum files in flight (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.WarmEveryFile, "warm-every-file", false, "Translate the first language of every file before its other languages")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "List the planned translations without calling the model")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.ArchiveCache, "archive-cache", false, "Move the prompt cache into a timestamped archive and exit")
	cmd.Flags().StringVar(&flags.ReportDB, "report-db", "", "Record per file results in this SQLite database")
	cmd.Flags().BoolVar(&flags.LastRun, "last-run", false, "Print the last run recorded in --report-db and its failures, then exit")

	// Cache flags
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", flags.CacheDir, "Prompt cache directory")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Always call the model and do not write the prompt cache")

	// Model flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Model provider: openai or gemini")
	cmd.Flags().StringVarP(&flags.Model, "model", "m", flags.Model, "Model used for translation")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "OpenAI compatible API base URL")
	cmd.Flags().IntVar(&flags.BreakerFailures, "breaker-failures", 0, "Stop calling the model after this many consecutive failures (0 = never)")
	cmd.Flags().DurationVar(&flags.BreakerTimeout, "breaker-timeout", flags.BreakerTimeout, "How long the breaker stays open before probing again")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable coloured console output")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.directory", cmd.Flags().Lookup("input"))
	viper.BindPFlag("translation.languages", cmd.Flags().Lookup("languages"))
	viper.BindPFlag("translation.concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("translation.warm_every_file", cmd.Flags().Lookup("warm-every-file"))
	viper.BindPFlag("report.database", cmd.Flags().Lookup("report-db"))
	viper.BindPFlag("cache.directory", cmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("cache.disabled", cmd.Flags().Lookup("no-cache"))
	viper.BindPFlag("model.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("model.name", cmd.Flags().Lookup("model"))
	viper.BindPFlag("model.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("breaker.failures", cmd.Flags().Lookup("breaker-failures"))
	viper.BindPFlag("breaker.timeout", cmd.Flags().Lookup("breaker-timeout"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
	viper.BindPFlag("log.no_color", cmd.Flags().Lookup("no-color"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".rimlocale" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rimlocale")
	}

	// Environment variables
	viper.SetEnvPrefix("RIMLOCALE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
	}
}

// LoadDotEnv exports the variables of a dotenv file into the process
// environment. Variables that are already set win. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}

// ErrMissingAPIKey is returned when no credential is configured for the
// selected provider
var ErrMissingAPIKey = errors.New("API key not found")

// GetAPIKey retrieves the API key for provider from environment or config
func GetAPIKey(provider string) string {
	envVars := []string{"OPENAI_API_KEY"}
	if provider == "gemini" {
		envVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}

	// First check environment variables
	for _, name := range envVars {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}

	// Then check config file
	return viper.GetString("model.api_key")
}

// RequireAPIKey returns the API key for provider or an error naming the
// environment variable to set
func RequireAPIKey(provider string) (string, error) {
	if key := GetAPIKey(provider); key != "" {
		return key, nil
	}
	name := "OPENAI_API_KEY"
	if provider == "gemini" {
		name = "GEMINI_API_KEY"
	}
	return "", fmt.Errorf("%w: set the %s environment variable or model.api_key in .rimlocale.yaml", ErrMissingAPIKey, name)
}
