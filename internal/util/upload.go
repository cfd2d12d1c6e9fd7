package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

var AllowedExtensions = map[string]bool{
	"pdf":  true,
	"docx": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AllowedFile reports whether filename carries an allowed extension.
func AllowedFile(filename string) bool {
	filename = strings.TrimSpace(filename)
	if filename == "" || !strings.Contains(filename, ".") {
		return false
	}
	ext := filename[strings.LastIndex(filename, ".")+1:]
	return AllowedExtensions[strings.ToLower(ext)]
}

// SecureFilename drops any directory part and replaces characters outside
// [A-Za-z0-9._-] with underscores.
func SecureFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}
