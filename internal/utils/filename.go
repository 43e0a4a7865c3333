package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

const maxFilenameLength = 200

// SanitizeFilename makes a book title safe to use as a markdown file name.
// Markdown-hostile characters (#, brackets) are dropped or softened too.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateRunes(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// BookFilename returns "<Title> - <Author>.md", or "<Title>.md" without author.
func BookFilename(title string, author *string) string {
	name := title
	if author != nil && strings.TrimSpace(*author) != "" {
		name += " - " + *author
	}
	return SanitizeFilename(name) + ".md"
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}

// UniqueFilename returns name, or name with a " (n)" suffix before the
// extension when it is already in used. Case-insensitive filesystems treat
// "Dune.md" and "dune.md" as the same file, so keys are compared folded.
// The returned name is recorded in used.
func UniqueFilename(name string, used map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
