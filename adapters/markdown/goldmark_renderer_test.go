package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func TestRender(t *testing.T) {
	r := NewRenderer(logger.NewNopLogger())

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Builds things.", "<p>Builds things.</p>"},
		{"emphasis", "**bold** move", "<p><strong>bold</strong> move</p>"},
		{"strikethrough", "~~old~~", "<p><del>old</del></p>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, strings.TrimSpace(string(r.Render(tc.in))))
		})
	}
}

func TestRender_DropsRawHTML(t *testing.T) {
	out := string(NewRenderer(logger.NewNopLogger()).Render("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}
