package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeScreenName(t *testing.T) {
	tests := map[string]string{
		"alice":                               "alice",
		"  @alice ":                           "alice",
		"alice/":                              "alice",
		"https://twitter.com/alice":           "alice",
		"https://www.twitter.com/alice/":      "alice",
		"https://mobile.twitter.com/alice":    "alice",
		"https://x.com/alice?lang=en":         "alice",
		"https://www.x.com/alice/status/1":    "alice",
		"http://mobile.x.com/alice#followers": "alice",
		"www.x.com/alice":                     "alice",
		"":                                    "",
	}

	for input, want := range tests {
		assert.Equal(t, want, SanitizeScreenName(input), input)
	}
}

func TestIsValidScreenName(t *testing.T) {
	assert.True(t, IsValidScreenName("alice_99"))
	assert.False(t, IsValidScreenName(""))
	assert.False(t, IsValidScreenName("sixteen_chars_xx"))
	assert.False(t, IsValidScreenName("not valid"))
}
