package cli

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"codeberg.org/snonux/rimlocale/internal/batch"
	"codeberg.org/snonux/rimlocale/internal/promptcache"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"InputDir", flags.InputDir, ".."},
		{"Provider", flags.Provider, "openai"},
		{"Model", flags.Model, "o4-mini"},
		{"BreakerTimeout", flags.BreakerTimeout, 30 * time.Second},
		{"LogLevel", flags.LogLevel, "info"},
		{"LogFormat", flags.LogFormat, "console"},
		{"Languages", flags.Languages, batch.SupportedLanguages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"WarmEveryFile", flags.WarmEveryFile},
		{"DryRun", flags.DryRun},
		{"ListModels", flags.ListModels},
		{"ArchiveCache", flags.ArchiveCache},
		{"LastRun", flags.LastRun},
		{"NoCache", flags.NoCache},
		{"NoColor", flags.NoColor},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"BaseURL", flags.BaseURL},
		{"ReportDB", flags.ReportDB},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestNewFlags_LanguagesAreACopy(t *testing.T) {
	flags := NewFlags()
	flags.Languages[0] = "Klingon"
	if batch.SupportedLanguages[0] == "Klingon" {
		t.Error("modifying flags changed the supported languages")
	}
}

func TestDefaultCacheDir(t *testing.T) {
	dir := DefaultCacheDir()
	if filepath.Base(dir) != promptcache.DirName {
		t.Errorf("DefaultCacheDir() = %s, want a %s directory", dir, promptcache.DirName)
	}
}
