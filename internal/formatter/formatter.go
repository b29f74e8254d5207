// Package formatter runs generated Go code through go/format and groups
// imports the conventional way.
package formatter

import (
	"fmt"
	"go/format"
	"regexp"
	"sort"
	"strings"
)

// Formatter is responsible for formatting Go code according to standard conventions
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Go code as a string and returns properly formatted Go code
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}

	return f.formatImports(string(formatted)), nil
}

// formatImports organizes import statements with standard library imports first,
// followed by third-party imports with a blank line in between
func (f *Formatter) formatImports(code string) string {
	importRegex := regexp.MustCompile(`(?s)import\s*\((.+?)\)`)
	importMatches := importRegex.FindStringSubmatch(code)
	if len(importMatches) < 2 {
		// No import block found or it's a single-line import
		return code
	}

	importBlock := importMatches[1]
	importLines := strings.Split(strings.TrimSpace(importBlock), "\n")

	stdLibImports := []string{}
	thirdPartyImports := []string{}

	for _, line := range importLines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		importPath := strings.Trim(line, `"`)
		// Standard library imports don't have dots
		if !strings.Contains(importPath, ".") {
			stdLibImports = append(stdLibImports, line)
		} else {
			thirdPartyImports = append(thirdPartyImports, line)
		}
	}

	sort.Strings(stdLibImports)
	sort.Strings(thirdPartyImports)

	newImportBlock := "import (\n"
	for _, imp := range stdLibImports {
		newImportBlock += "\t" + imp + "\n"
	}
	if len(stdLibImports) > 0 && len(thirdPartyImports) > 0 {
		newImportBlock += "\n"
	}
	for _, imp := range thirdPartyImports {
		newImportBlock += "\t" + imp + "\n"
	}
	newImportBlock += ")"

	return importRegex.ReplaceAllString(code, newImportBlock)
}
