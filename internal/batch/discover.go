package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	// DataExt is the extension of translatable mod data files
	DataExt = ".xml"

	// MetadataFile is the mod descriptor, which is never translated
	MetadataFile = "About.xml"

	// SourceLanguage is the language the mod is written in
	SourceLanguage = "English"
)

// IsEligible reports whether path is a mod data file that should be sent for
// translation. Files already inside a Languages directory are skipped, except
// the English Keyed strings, which are the source for every other language.
func IsEligible(path string) bool {
	slashed := filepath.ToSlash(path)
	if !strings.HasSuffix(slashed, DataExt) {
		return false
	}
	if filepath.Base(path) == MetadataFile {
		return false
	}
	if inLanguagesDir(slashed) {
		return IsKeyedEnglish(path)
	}
	return true
}

// IsKeyedEnglish reports whether path lies in the Languages/English/Keyed tree
func IsKeyedEnglish(path string) bool {
	return strings.Contains("/"+filepath.ToSlash(path), "/Languages/"+SourceLanguage+"/Keyed/")
}

func inLanguagesDir(slashed string) bool {
	return strings.Contains("/"+slashed, "/Languages/")
}

// Discover walks root in lexical order and returns the absolute paths of all
// eligible files. Directories starting with a dot are not entered.
func Discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if IsEligible(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	return files, nil
}
