package cli

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "rimlocale [mod-dir]" {
		t.Errorf("Expected Use to be 'rimlocale [mod-dir]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "RimWorld mod translator") {
		t.Errorf("Expected Short description to contain 'RimWorld mod translator'")
	}

	// Test that flags are set up
	flagNames := []string{
		"config", "input", "languages", "concurrency", "warm-every-file",
		"dry-run", "list-models", "archive-cache", "report-db", "last-run", "cache-dir",
		"no-cache", "provider", "model", "base-url", "breaker-failures",
		"breaker-timeout", "log-level", "log-format", "no-color",
	}

	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestCreateRootCommand_Args(t *testing.T) {
	cmd := CreateRootCommand(NewFlags())
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("Expected error for two positional arguments")
	}
	if err := cmd.Args(cmd, []string{"mods/MyMod"}); err != nil {
		t.Errorf("Unexpected error for one argument: %v", err)
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	inputFlag := cmd.Flags().Lookup("input")
	if inputFlag == nil {
		t.Fatal("input flag not found")
	}
	if inputFlag.DefValue != ".." {
		t.Errorf("Expected default input dir to be .., got %s", inputFlag.DefValue)
	}

	modelFlag := cmd.Flags().Lookup("model")
	if modelFlag == nil {
		t.Fatal("model flag not found")
	}
	if modelFlag.DefValue != "o4-mini" {
		t.Errorf("Expected default model to be o4-mini, got %s", modelFlag.DefValue)
	}

	concurrencyFlag := cmd.Flags().Lookup("concurrency")
	if concurrencyFlag == nil {
		t.Fatal("concurrency flag not found")
	}
	// The limit applies to files; a file's languages always run together
	if !strings.Contains(concurrencyFlag.Usage, "files in flight") {
		t.Errorf("concurrency usage = %q", concurrencyFlag.Usage)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `model:
  name: gpt-4.1-mini
  api_key: test-key
input:
  directory: /test/mod`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			InitConfig(cfgPath)

			// Test environment variable prefix
			os.Setenv("RIMLOCALE_TEST_VAR", "test-value")
			defer os.Unsetenv("RIMLOCALE_TEST_VAR")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			if cfgPath != "" && viper.GetString("model.name") != "gpt-4.1-mini" {
				t.Errorf("model.name = %s, want gpt-4.1-mini", viper.GetString("model.name"))
			}
		})
	}
}

func TestNestedKeysFromEnvironment(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	InitConfig("")
	os.Setenv("RIMLOCALE_MODEL_NAME", "o3")
	defer os.Unsetenv("RIMLOCALE_MODEL_NAME")

	if got := viper.GetString("model.name"); got != "o3" {
		t.Errorf("model.name = %s, want o3", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "RIMLOCALE_DOTENV_A=from-file\nRIMLOCALE_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	os.Setenv("RIMLOCALE_DOTENV_B", "from-env")
	defer os.Unsetenv("RIMLOCALE_DOTENV_A")
	defer os.Unsetenv("RIMLOCALE_DOTENV_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	if got := os.Getenv("RIMLOCALE_DOTENV_A"); got != "from-file" {
		t.Errorf("RIMLOCALE_DOTENV_A = %q, want from-file", got)
	}
	if got := os.Getenv("RIMLOCALE_DOTENV_B"); got != "from-env" {
		t.Errorf("RIMLOCALE_DOTENV_B = %q, existing variables must win", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should not be an error: %v", err)
	}
}

func TestGetAPIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		provider  string
		envName   string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "openai from environment",
			provider:  "openai",
			envName:   "OPENAI_API_KEY",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "gemini from environment",
			provider:  "gemini",
			envName:   "GEMINI_API_KEY",
			envKey:    "gemini-key",
			configKey: "config-test-key",
			expected:  "gemini-key",
		},
		{
			name:      "from config when no env",
			provider:  "openai",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:     "empty when neither set",
			provider: "openai",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()

			for _, name := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
				if value, ok := os.LookupEnv(name); ok {
					os.Unsetenv(name)
					defer os.Setenv(name, value)
				}
			}
			if tt.envName != "" {
				os.Setenv(tt.envName, tt.envKey)
				defer os.Unsetenv(tt.envName)
			}

			if tt.configKey != "" {
				viper.Set("model.api_key", tt.configKey)
			}

			if got := GetAPIKey(tt.provider); got != tt.expected {
				t.Errorf("GetAPIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRequireAPIKey_Missing(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
		os.Unsetenv("OPENAI_API_KEY")
		defer os.Setenv("OPENAI_API_KEY", value)
	}

	_, err := RequireAPIKey("openai")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error does not name the variable: %v", err)
	}
}

func TestBindFlagsAndLoadFromViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("input", "/test/mod")
	cmd.Flags().Set("languages", "German,French")
	cmd.Flags().Set("model", "gpt-4.1")
	cmd.Flags().Set("breaker-timeout", "1m")

	bindFlagsToViper(cmd)

	// Values from the config file fill in what was not given on the command line
	viper.Set("report.database", "/test/runs.db")

	loaded := &Flags{}
	loaded.LoadFromViper()

	if loaded.InputDir != "/test/mod" {
		t.Errorf("InputDir = %s, want /test/mod", loaded.InputDir)
	}
	if !reflect.DeepEqual(loaded.Languages, []string{"German", "French"}) {
		t.Errorf("Languages = %v", loaded.Languages)
	}
	if loaded.Model != "gpt-4.1" {
		t.Errorf("Model = %s, want gpt-4.1", loaded.Model)
	}
	if loaded.BreakerTimeout != time.Minute {
		t.Errorf("BreakerTimeout = %v, want 1m", loaded.BreakerTimeout)
	}
	if loaded.Provider != "openai" {
		t.Errorf("Provider = %s, want flag default openai", loaded.Provider)
	}
	if loaded.ReportDB != "/test/runs.db" {
		t.Errorf("ReportDB = %s, want /test/runs.db", loaded.ReportDB)
	}
}
