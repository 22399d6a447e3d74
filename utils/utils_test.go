package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "ok") })
	assert.PanicsWithValue(t, "invariant violated - boom", func() {
		AssertInvariant(false, "boom")
	})
}

func TestIsSnowflake(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "123456789012345678", want: true},
		{id: "12345678901234567", want: true},
		{id: "1234567890123456789", want: true},
		{id: "1234", want: false},
		{id: "", want: false},
		{id: "not-a-snowflake", want: false},
		{id: "12345678901234567890", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSnowflake(tt.id), tt.id)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "lon...", Truncate("longer text", 3))
	assert.Equal(t, "äöü...", Truncate("äöüäöü", 3))
}
