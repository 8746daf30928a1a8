package translation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath joins outPath onto root and rejects results outside root
func ResolveOutputPath(root, outPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve input directory: %w", err)
	}

	full := filepath.Join(absRoot, filepath.FromSlash(outPath))
	rel, err := filepath.Rel(absRoot, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, outPath)
	}
	return full, nil
}

// WriteOutput writes content verbatim to outPath below root, creating parent
// directories and replacing any existing file. It returns the written path.
func WriteOutput(root, outPath, content string) (string, error) {
	full, err := ResolveOutputPath(root, outPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return full, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return full, fmt.Errorf("failed to write translation file: %w", err)
	}

	return full, nil
}
