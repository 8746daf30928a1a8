package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/rimlocale/internal/batch"
	"codeberg.org/snonux/rimlocale/internal/promptcache"
	"codeberg.org/snonux/rimlocale/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	InputDir      string
	Languages     []string
	Concurrency   int
	WarmEveryFile bool
	DryRun        bool
	ListModels    bool
	ArchiveCache  bool
	ReportDB      string
	LastRun       bool

	// Cache flags
	CacheDir string
	NoCache  bool

	// Model flags
	Provider        string
	Model           string
	BaseURL         string
	BreakerFailures int
	BreakerTimeout  time.Duration

	// Logging flags
	LogLevel  string
	LogFormat string
	NoColor   bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputDir:       "..",
		Languages:      append([]string(nil), batch.SupportedLanguages...),
		CacheDir:       DefaultCacheDir(),
		Provider:       "openai",
		Model:          translation.DefaultModel,
		BreakerTimeout: 30 * time.Second,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// DefaultCacheDir returns the prompt cache directory next to the installed
// binary, or in the working directory when the binary cannot be located
func DefaultCacheDir() string {
	exe, err := os.Executable()
	if err != nil {
		return promptcache.DirName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), promptcache.DirName)
}

// LoadFromViper refreshes the flag values from viper, which merges command
// line flags, RIMLOCALE_* environment variables and the config file
func (f *Flags) LoadFromViper() {
	f.InputDir = viper.GetString("input.directory")
	f.Languages = viper.GetStringSlice("translation.languages")
	f.Concurrency = viper.GetInt("translation.concurrency")
	f.WarmEveryFile = viper.GetBool("translation.warm_every_file")
	f.ReportDB = viper.GetString("report.database")
	f.CacheDir = viper.GetString("cache.directory")
	f.NoCache = viper.GetBool("cache.disabled")
	f.Provider = viper.GetString("model.provider")
	f.Model = viper.GetString("model.name")
	f.BaseURL = viper.GetString("model.base_url")
	f.BreakerFailures = viper.GetInt("breaker.failures")
	f.BreakerTimeout = viper.GetDuration("breaker.timeout")
	f.LogLevel = viper.GetString("log.level")
	f.LogFormat = viper.GetString("log.format")
	f.NoColor = viper.GetBool("log.no_color")
}
