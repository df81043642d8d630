package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashID(t *testing.T) {
	tests := []struct {
		name string
		u1   string
		u2   string
		same bool
	}{
		{
			name: "same url same id",
			u1:   "https://example.com/a",
			u2:   "https://example.com/a",
			same: true,
		},
		{
			name: "different urls different ids",
			u1:   "https://example.com/a",
			u2:   "https://example.com/b",
			same: false,
		},
		{
			name: "query string matters",
			u1:   "https://example.com/a?page=1",
			u2:   "https://example.com/a?page=2",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := HashID(tt.u1)
			id2 := HashID(tt.u2)

			require.Len(t, id1, 24)

			if tt.same {
				assert.Equal(t, id1, id2)
			} else {
				assert.NotEqual(t, id1, id2)
			}
		})
	}
}

func TestContentFingerprint(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "case and punctuation insensitive",
			a:    "Test Content",
			b:    "test content!!",
			same: true,
		},
		{
			name: "whitespace runs collapse",
			a:    "breaking:  rate   filing approved",
			b:    "Breaking rate filing approved",
			same: true,
		},
		{
			name: "different leads differ",
			a:    "Hurricane Milton struck Florida on Wednesday",
			b:    "Regulators fined a carrier over claims handling",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := ContentFingerprint(tt.a)
			fb := ContentFingerprint(tt.b)

			require.Len(t, fa, 16)

			if tt.same {
				assert.Equal(t, fa, fb)
			} else {
				assert.NotEqual(t, fa, fb)
			}
		})
	}
}

func TestContentFingerprintLeadOnly(t *testing.T) {
	lead := ""
	for i := 0; i < 60; i++ {
		lead += "same lead "
	}

	// Both exceed 500 normalized chars before the texts diverge.
	a := lead + "tail one"
	b := lead + "completely different tail"

	assert.Equal(t, ContentFingerprint(a), ContentFingerprint(b))
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		html string
		want string
	}{
		{
			name: "og:url preferred",
			url:  "https://example.com/amp/story",
			html: `<html><head><meta property="og:url" content="https://example.com/story"/><link rel="canonical" href="https://other.com/story"/></head></html>`,
			want: "https://example.com/story",
		},
		{
			name: "rel canonical fallback",
			url:  "https://example.com/amp/story",
			html: `<html><head><link rel="canonical" href="https://example.com/story"/></head></html>`,
			want: "https://example.com/story",
		},
		{
			name: "relative canonical resolved against page url",
			url:  "https://example.com/amp/story",
			html: `<html><head><link rel="canonical" href="/story"/></head></html>`,
			want: "https://example.com/story",
		},
		{
			name: "no declaration keeps original",
			url:  "https://example.com/story",
			html: `<html><head><title>t</title></head></html>`,
			want: "https://example.com/story",
		},
		{
			name: "empty html keeps original",
			url:  "https://example.com/story",
			html: "",
			want: "https://example.com/story",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalURL(tt.url, []byte(tt.html)))
		})
	}
}
