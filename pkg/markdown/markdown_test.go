package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := string(Render("**bold** text"))
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderDropsRawHTML(t *testing.T) {
	out := string(Render("<script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}

func TestRenderHardWraps(t *testing.T) {
	out := string(Render("line one\nline two"))
	assert.Contains(t, out, "<br")
}
