package strata

import "strings"

// KeyDelimiter separates the segments of a configuration path.
const KeyDelimiter = ":"

// NormalizeKey returns the canonical form of a configuration key.
// All store lookups and insertions use the normalized form, making
// keys case-insensitive everywhere.
func NormalizeKey(key string) string {
	return strings.ToLower(key)
}

// KeysEqual reports whether two keys address the same value.
func KeysEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Combine joins a parent path and a child key into a single path.
// If either side is empty the other is returned unchanged.
func Combine(parent, key string) string {
	if parent == "" {
		return key
	}
	if key == "" {
		return parent
	}
	return NormalizeKey(parent) + KeyDelimiter + NormalizeKey(key)
}

// CombineAll joins all non-empty segments into a single path.
func CombineAll(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, NormalizeKey(s))
	}
	return strings.Join(parts, KeyDelimiter)
}

// SectionKey returns the last segment of a path, or the whole path
// when it has a single segment. The empty path yields "".
func SectionKey(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndex(path, KeyDelimiter); i >= 0 {
		return NormalizeKey(path[i+1:])
	}
	return NormalizeKey(path)
}

// ParentPath returns everything before the last segment of a path,
// or "" for a single-segment path.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, KeyDelimiter); i >= 0 {
		return NormalizeKey(path[:i])
	}
	return ""
}

// Segments splits a path into its normalized segments.
// The empty path yields no segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(NormalizeKey(path), KeyDelimiter)
}
