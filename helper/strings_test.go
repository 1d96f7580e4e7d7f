package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Title":      "title",
		"PostID":     "post_id",
		"CreatedAt":  "created_at",
		"HTMLParser": "html_parser",
		"already_ok": "already_ok",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}
