package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Introduction to Go", "introduction-to-go"},
		{"uppercase", "SQL Basics", "sql-basics"},
		{"punctuation collapses", "C++ & Rust: a comparison!", "c-rust-a-comparison"},
		{"digits kept", "Go 102", "go-102"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"multiple separators collapse", "a___b   c", "a-b-c"},
		{"unicode stripped", "Café au lait", "caf-au-lait"},
		{"empty input", "", ""},
		{"only junk", "!!! ???", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.title))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	titles := []string{"Introduction to Go", "a---b", "Go 102", "!!x!!"}
	for _, title := range titles {
		once := Make(title)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", title)
	}
}
