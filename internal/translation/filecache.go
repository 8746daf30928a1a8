package translation

import (
	"fmt"
	"os"
	"sync"
)

// FileContentCache keeps source file contents in memory for the lifetime of
// a run so each file is read once no matter how many languages it goes to
type FileContentCache struct {
	mu    sync.Mutex
	files map[string]string
	reads int
}

// NewFileContentCache creates a new file content cache
func NewFileContentCache() *FileContentCache {
	return &FileContentCache{
		files: make(map[string]string),
	}
}

// Load returns the contents of path, reading it on first use. Two callers
// racing on the same path may both read it; they store the same value.
func (c *FileContentCache) Load(path string) (string, error) {
	c.mu.Lock()
	contents, ok := c.files[path]
	c.mu.Unlock()
	if ok {
		return contents, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = string(data)
	c.reads++
	return string(data), nil
}

// Get returns cached contents without touching the disk
func (c *FileContentCache) Get(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contents, ok := c.files[path]
	return contents, ok
}

// Reads returns how many times a file was read from disk
func (c *FileContentCache) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
