package dispatch

import (
	"log"
	"regexp"
	"strings"
)

// MatchesPattern reports whether content satisfies a trigger pattern.
// A pattern wrapped as /.../i is compiled as a case-insensitive regular
// expression; an invalid regex is a non-match, never an error. Any other
// pattern matches by case-insensitive substring containment.
func MatchesPattern(content, pattern string) bool {
	if pattern == "" {
		return false
	}

	if strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/i") {
		expr := pattern[1 : len(pattern)-2]
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			log.Printf("⚠️ Invalid regex pattern %q: %v", pattern, err)
			return false
		}
		return re.MatchString(content)
	}

	return strings.Contains(strings.ToLower(content), strings.ToLower(pattern))
}

// MatchesReaction reconciles the three spellings of an emoji: the
// observed reaction carries a short name (or unicode glyph) and, for
// custom emoji, a snowflake id, while the operator may have configured
// the bare name, the literal glyph, :name: shorthand, or <:name:id>
// markup. First match wins.
func MatchesReaction(emojiName, emojiID, spec string) bool {
	if spec == "" {
		return false
	}

	if spec == emojiName || (emojiID != "" && spec == emojiID) {
		return true
	}

	if strings.HasPrefix(spec, ":") && strings.HasSuffix(spec, ":") && len(spec) > 2 {
		return strings.Trim(spec, ":") == emojiName
	}

	if strings.HasPrefix(spec, "<:") && strings.HasSuffix(spec, ">") {
		if emojiName != "" && strings.Contains(spec, emojiName) {
			return true
		}
		if emojiID != "" && strings.Contains(spec, emojiID) {
			return true
		}
	}

	return false
}
