package util

import (
	"errors"
	"strings"
)

const maxFileNameLen = 180

// SanitizeFileName removes path separators and rejects traversal patterns.
// Whitespace runs collapse to a single underscore.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.Join(strings.Fields(name), "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if len(s) > maxFileNameLen {
		// Truncate from the front so the extension survives.
		s = s[len(s)-maxFileNameLen:]
	}
	return s, nil
}
