package batch

import (
	"path/filepath"
)

// SupportedLanguages are the RimWorld language folder names translated by
// default
var SupportedLanguages = []string{
	"Catalan",
	"ChineseSimplified",
	"ChineseTraditional",
	"Czech",
	"Danish",
	"Dutch",
	"English",
	"Estonian",
	"Finnish",
	"French",
	"German",
	"Greek",
	"Hungarian",
	"Italian",
	"Japanese",
	"Korean",
	"Norwegian",
	"Polish",
	"Portuguese",
	"PortugueseBrazilian",
	"Romanian",
	"Russian",
	"Slovak",
	"Spanish",
	"SpanishLatin",
	"Swedish",
	"Turkish",
	"Ukrainian",
	"Vietnamese",
}

// Unit is one source file to be translated into one language
type Unit struct {
	SourcePath string // absolute
	RelPath    string // slash separated, relative to the input root
	Language   string
	IsFirst    bool
}

// String formats the unit for log output
func (u Unit) String() string {
	return u.RelPath + " -> " + u.Language
}

// FileUnits groups the units of one source file, in language order
type FileUnits struct {
	SourcePath string
	RelPath    string
	Units      []Unit
}

// Plan builds the translation units for files. English Keyed sources are not
// translated into English. The first unit of the first file is marked IsFirst.
// Files left with no units are omitted.
func Plan(root string, files []string, languages []string) []FileUnits {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	var plan []FileUnits
	first := true
	for _, file := range files {
		rel, err := filepath.Rel(absRoot, file)
		if err != nil {
			rel = file
		}
		rel = filepath.ToSlash(rel)
		keyed := IsKeyedEnglish(rel)

		group := FileUnits{SourcePath: file, RelPath: rel}
		for _, lang := range languages {
			if keyed && lang == SourceLanguage {
				continue
			}
			group.Units = append(group.Units, Unit{
				SourcePath: file,
				RelPath:    rel,
				Language:   lang,
				IsFirst:    first,
			})
			first = false
		}

		if len(group.Units) > 0 {
			plan = append(plan, group)
		}
	}
	return plan
}

// Count returns the total number of units in plan
func Count(plan []FileUnits) int {
	n := 0
	for _, group := range plan {
		n += len(group.Units)
	}
	return n
}
