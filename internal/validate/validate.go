package validate

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{1,80}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 120 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reUsername.MatchString(s)
}

// Role normalizes the requested role, defaulting to "user".
func Role(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "user", true
	}
	return s, s == "user" || s == "admin"
}

func RatingValue(n int) bool { return n >= 1 && n <= 5 }

// SortBy whitelists catalog sort keys, defaulting to created_at.
func SortBy(s string) string {
	switch s {
	case "name", "price":
		return s
	default:
		return "created_at"
	}
}

// SortOrder whitelists sort directions, defaulting to desc.
func SortOrder(s string) string {
	if strings.EqualFold(s, "asc") {
		return "asc"
	}
	return "desc"
}

// ImageExt reports whether an upload filename carries an allowed
// image extension and returns the extension without the dot.
func ImageExt(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "png", "jpg", "jpeg", "gif":
		return ext, true
	}
	return "", false
}
