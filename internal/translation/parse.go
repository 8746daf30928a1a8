package translation

import (
	"errors"
	"strings"
)

const fence = "```"

var (
	ErrEmptyOutput     = errors.New("model returned no output")
	ErrMissingFence    = errors.New("model output has no code fence")
	ErrEmptyPath       = errors.New("model output has no output path")
	ErrPathEscapesRoot = errors.New("output path escapes the input directory")
)

// ParseOutput splits a model answer of the form
//
//	<path>
//	```xml
//	<body>
//	```
//
// into the output path and the file body.
func ParseOutput(output string) (outPath, content string, err error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return "", "", ErrEmptyOutput
	}
	if !strings.Contains(output, fence) {
		return "", "", ErrMissingFence
	}

	parts := strings.Split(output, fence)

	outPath = strings.Trim(strings.TrimSpace(parts[0]), "`")
	outPath = strings.TrimLeft(strings.TrimSpace(outPath), "/")
	if outPath == "" {
		return "", "", ErrEmptyPath
	}

	content = strings.TrimSpace(strings.Join(parts[1:], "\n"))
	// Leftover language tag from an opening "```xml" fence
	if len(content) >= 3 && strings.EqualFold(content[:3], "xml") {
		content = strings.TrimSpace(content[3:])
	}
	content = strings.TrimSpace(strings.Trim(content, "`"))

	return outPath, content, nil
}
