package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrintParams(t *testing.T) {
	p := buildPrintParams(10)
	assert.InDelta(t, 8.2677, p.paperWidth, 0.0001)
	assert.InDelta(t, 11.6929, p.paperHeight, 0.0001)
	assert.InDelta(t, 0.3937, p.margin, 0.0001)
	assert.True(t, p.background)

	assert.Zero(t, buildPrintParams(-3).margin)

	cmd := p.command()
	assert.Equal(t, p.paperWidth, cmd.PaperWidth)
	assert.True(t, cmd.PrintBackground)
}

func TestWrapHTML(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, wrapHTML(full))

	wrapped := wrapHTML("<p>halo</p>")
	assert.Contains(t, wrapped, "<!DOCTYPE html>")
	assert.Contains(t, wrapped, "<body><p>halo</p></body>")
}

func TestRenderRejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{})
	defer r.Close()

	_, err := r.Render(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyHTML)
}
