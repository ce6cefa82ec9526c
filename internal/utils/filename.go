package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxFilenameLength = 200

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename sanitizes a filename for Obsidian compatibility.
// It removes or replaces characters that are invalid in filenames or
// problematic in Obsidian (slashes, colons, quotes, hashtags, brackets, etc.)
// Titles coming from Apple Books may be decomposed (NFD), so the result is
// normalized to NFC.
func SanitizeFilename(filename string) string {
	filename = norm.NFC.String(filename)

	// Remove invalid filename characters
	filename = invalidFilenameChars.ReplaceAllString(filename, "")

	// Replace newlines/tabs with spaces
	filename = whitespaceChars.ReplaceAllString(filename, " ")

	// Collapse multiple spaces
	filename = multipleSpaces.ReplaceAllString(filename, " ")

	// Trim whitespace
	filename = strings.TrimSpace(filename)

	// Obsidian-specific sanitization
	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Limit length without splitting a multi-byte character
	if len(filename) > maxFilenameLength {
		cut := maxFilenameLength
		for cut > 0 && !utf8.RuneStart(filename[cut]) {
			cut--
		}
		filename = strings.TrimSpace(filename[:cut])
	}

	// Ensure it's not empty
	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// UniqueFilename returns base, or base with a numeric suffix when base was
// already handed out. Comparison is case-insensitive because macOS
// filesystems are.
func UniqueFilename(base string, used map[string]bool) string {
	candidate := base
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s (%d)", base, i)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
