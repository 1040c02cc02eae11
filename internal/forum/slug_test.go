package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"News & Updates", "news-updates"},
		{"  Local   Events  ", "local-events"},
		{"Новости", "novosti"},
		{"Спільнота", "spilnota"},
		{"Q&A 2024", "q-a-2024"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
