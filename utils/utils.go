package utils

import "regexp"

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

var snowflakeRegex = regexp.MustCompile(`^\d{17,19}$`)

// IsSnowflake reports whether s looks like a Discord snowflake ID.
func IsSnowflake(s string) bool {
	return snowflakeRegex.MatchString(s)
}

// Truncate shortens text to at most length runes, appending "..." when cut.
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}
