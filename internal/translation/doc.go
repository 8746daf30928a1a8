// Package translation turns one mod file and one target language into a
// translated RimWorld language file. It builds the model prompt, parses the
// fenced answer into an output path and body, and writes the result below
// the mod root. Source files are read once and shared across languages.
package translation
