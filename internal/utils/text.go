package utils

import "strconv"

// FormatThousands renders n with comma separators, e.g. 12345 -> "12,345".
func FormatThousands(n int) string {
	if n < 0 {
		return "-" + FormatThousands(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// TruncateRunes shortens text to limit runes and appends "..." when it was
// longer than limit. Counting runes keeps multi-byte titles intact.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
