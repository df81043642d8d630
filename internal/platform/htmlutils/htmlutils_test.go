package htmlutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "plain text",
			want: "plain text",
		},
		{
			name: "tags removed",
			in:   "<p>Rates <b>rise</b> in Florida</p>",
			want: "Rates rise in Florida",
		},
		{
			name: "entities decoded",
			in:   "Lloyd&#39;s &amp; peers",
			want: "Lloyd's & peers",
		},
		{
			name: "whitespace collapsed",
			in:   "<div>a</div>\n\n  <div>b</div>",
			want: "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTMLTags(tt.in))
		})
	}
}
