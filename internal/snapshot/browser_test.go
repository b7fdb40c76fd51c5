package snapshot

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/rendering"
	"github.com/jonathan/nutriplan/internal/testutil"
	"github.com/jonathan/nutriplan/internal/types"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor(DefaultBackground)
	require.NoError(t, err)
	assert.Equal(t, int64(31), c.R)
	assert.Equal(t, int64(41), c.G)
	assert.Equal(t, int64(55), c.B)
	assert.Equal(t, 1.0, c.A)

	c, err = ParseHexColor("FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, int64(255), c.B)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestNew_Defaults(t *testing.T) {
	b := New(Options{}, zerolog.Nop())
	assert.Equal(t, DefaultOptions(), b.opts)

	b = New(Options{Scale: 1, Background: "#000000"}, zerolog.Nop())
	assert.Equal(t, 1.0, b.opts.Scale)
	assert.Equal(t, "#000000", b.opts.Background)
}

func TestRasterize_InvalidBackground(t *testing.T) {
	b := New(Options{Background: "blue"}, zerolog.Nop())
	_, err := b.Rasterize(context.Background(), "<div id=\"x\"></div>", "#x")
	assert.Error(t, err)
}

func chromeAvailable() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestRasterize_PlanGrid(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	if !chromeAvailable() {
		t.Skip("Skipping browser test: Chrome not installed")
	}

	page, err := rendering.RenderHTML(testutil.Plan(7), messages.For(types.LocaleEnglish), 600)
	require.NoError(t, err)

	b := New(Options{Timeout: 45 * time.Second}, zerolog.Nop())
	bitmap, err := b.Rasterize(context.Background(), page, rendering.PlanGridSelector)
	require.NoError(t, err)

	assert.Equal(t, "png", bitmap.Format)
	// the grid is 600 CSS pixels wide, captured at 2x
	assert.InDelta(t, 1200, bitmap.Width, 20)
	assert.Positive(t, bitmap.Height)
}
