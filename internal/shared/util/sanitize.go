package util

import (
	"errors"
	"strings"
)

// SanitizeFileName flattens path separators into underscores and rejects "." and ".." segments.
// Dots inside a segment ("J..Doe.pdf") are kept.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	segments := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '\\' })
	if len(segments) == 0 {
		return "", errors.New("invalid file name")
	}
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return "", errors.New("invalid file name")
		}
	}
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s, nil
}
