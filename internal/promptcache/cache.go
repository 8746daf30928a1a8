package promptcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/rimlocale/internal"
	"codeberg.org/snonux/rimlocale/internal/llm"
)

// DirName is the default cache directory name
const DirName = ".prompt-cache"

// StoreStatus describes the outcome of a Store call
type StoreStatus int

const (
	StoreWritten StoreStatus = iota
	StoreSkipped
	StoreFailed
)

func (s StoreStatus) String() string {
	switch s {
	case StoreWritten:
		return "written"
	case StoreSkipped:
		return "skipped"
	case StoreFailed:
		return "failed"
	default:
		return fmt.Sprintf("StoreStatus(%d)", int(s))
	}
}

// StoreResult reports what Store did. Failures are reported here instead of
// as an error because caching must never fail a translation.
type StoreResult struct {
	Status StoreStatus
	Path   string
	Err    error
}

// Cache is a directory of response payloads, one file per prompt
type Cache struct {
	dir string
	log zerolog.Logger
}

// New creates a cache rooted at dir. The directory is created on first store.
func New(dir string, log zerolog.Logger) *Cache {
	return &Cache{
		dir: dir,
		log: log.With().Str("component", "promptcache").Logger(),
	}
}

// Dir returns the cache directory
func (c *Cache) Dir() string {
	return c.dir
}

// Serialize renders a prompt in the form that is hashed into its key
func Serialize(prompt []llm.Message) string {
	var sb strings.Builder
	for _, m := range prompt {
		sb.WriteString(string(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Key returns the cache key for prompt; ok is false for an empty prompt
func Key(prompt []llm.Message) (key string, ok bool) {
	if len(prompt) == 0 {
		return "", false
	}
	return internal.HashText(Serialize(prompt)), true
}

// Path returns the entry file for prompt
func (c *Cache) Path(prompt []llm.Message) (string, bool) {
	key, ok := Key(prompt)
	if !ok {
		return "", false
	}
	return filepath.Join(c.dir, key+".json"), true
}

// Lookup returns the stored payload for prompt. Any problem, including an
// empty prompt or an unreadable file, is reported as a miss.
func (c *Cache) Lookup(prompt []llm.Message) (string, bool) {
	path, ok := c.Path(prompt)
	if !ok {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Debug().Err(err).Str("path", path).Msg("cache read failed, treating as miss")
		}
		return "", false
	}
	return string(data), true
}

// Store saves payload under prompt's key. Empty prompts and payloads are
// skipped. The entry is written to a temporary file and renamed into place
// so concurrent readers never see a partial entry.
func (c *Cache) Store(prompt []llm.Message, payload string) StoreResult {
	path, ok := c.Path(prompt)
	if !ok || payload == "" {
		return StoreResult{Status: StoreSkipped}
	}

	if err := c.write(path, payload); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("failed to save prompt to cache")
		return StoreResult{Status: StoreFailed, Path: path, Err: err}
	}
	return StoreResult{Status: StoreWritten, Path: path}
}

func (c *Cache) write(path, payload string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set cache file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move cache file into place: %w", err)
	}
	return nil
}
