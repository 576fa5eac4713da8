package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWithCommas(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		123456:   "123,456",
		1234567:  "1,234,567",
		-9876543: "-9,876,543",
	}
	for n, want := range cases {
		assert.Equal(t, want, FormatWithCommas(n))
	}
}

func TestJoinLimited(t *testing.T) {
	words := []string{"ate", "eat", "tea", "eta"}

	assert.Equal(t, "ate eat tea eta", JoinLimited(words, " ", 0))
	assert.Equal(t, "ate eat tea eta", JoinLimited(words, " ", 4))
	assert.Equal(t, "ate eat (+2 more)", JoinLimited(words, " ", 2))
	assert.Equal(t, "", JoinLimited(nil, " ", 3))
}
