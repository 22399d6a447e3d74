package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pattern string
		want    bool
	}{
		{
			name:    "substring match is case-insensitive",
			content: "Hallo Leute, wie geht's?",
			pattern: "hallo leute",
			want:    true,
		},
		{
			name:    "substring no match",
			content: "guten morgen",
			pattern: "hallo",
			want:    false,
		},
		{
			name:    "regex pattern matches",
			content: "GG everyone",
			pattern: "/^gg\\b/i",
			want:    true,
		},
		{
			name:    "regex pattern anchored no match",
			content: "that was gg",
			pattern: "/^gg\\b/i",
			want:    false,
		},
		{
			name:    "invalid regex is a non-match",
			content: "anything",
			pattern: "/([invalid/i",
			want:    false,
		},
		{
			name:    "empty pattern never matches",
			content: "anything",
			pattern: "",
			want:    false,
		},
		{
			name:    "slash without i suffix is treated as substring",
			content: "use /help for info",
			pattern: "/help",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesPattern(tt.content, tt.pattern))
		})
	}
}

func TestMatchesReaction(t *testing.T) {
	tests := []struct {
		name      string
		emojiName string
		emojiID   string
		spec      string
		want      bool
	}{
		{
			name:      "unicode glyph equality",
			emojiName: "✅",
			spec:      "✅",
			want:      true,
		},
		{
			name:      "custom emoji id equality",
			emojiName: "pog",
			emojiID:   "123456789012345678",
			spec:      "123456789012345678",
			want:      true,
		},
		{
			name:      "colon shorthand strips to name",
			emojiName: "pog",
			spec:      ":pog:",
			want:      true,
		},
		{
			name:      "full markup matches by name",
			emojiName: "pog",
			emojiID:   "123456789012345678",
			spec:      "<:pog:123456789012345678>",
			want:      true,
		},
		{
			name:      "full markup matches by id only",
			emojiName: "renamed",
			emojiID:   "123456789012345678",
			spec:      "<:pog:123456789012345678>",
			want:      true,
		},
		{
			name:      "different emoji does not match",
			emojiName: "❌",
			spec:      "✅",
			want:      false,
		},
		{
			name:      "empty spec never matches",
			emojiName: "✅",
			spec:      "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesReaction(tt.emojiName, tt.emojiID, tt.spec))
		})
	}
}
