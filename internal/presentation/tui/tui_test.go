package tui_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/brush/internal/presentation/tui"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "0.1.0\n")
	assert.Contains(t, buf.String(), "v0.1.0")
	assert.NotContains(t, buf.String(), "\x1b[", "non-terminals get no escape codes")
}

func TestPrintPalette(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintPalette(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(domain.Palette))
	assert.True(t, strings.HasPrefix(lines[0], "0 "))
	assert.Contains(t, lines[len(lines)-1], "#FFCCAA")
}

func TestPrintCanvas(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintCanvas(&buf, "..e\nd..\n")
	assert.Equal(t, "..e\nd..\n", buf.String())
}

func TestReport_Markdown(t *testing.T) {
	r := tui.Report{
		Bot:       domain.Identity{Name: "Bob", ID: "42"},
		SessionID: "s-1",
		Shapes:    2,
		Final:     domain.AgentState{Location: domain.Known(domain.Pos(3, 4)), Color: domain.Pink},
		Commands:  map[domain.CommandKind]int{domain.CommandPaint: 10, domain.CommandMove: 20, domain.CommandColor: 2},
		Elapsed:   1500 * time.Millisecond,
	}

	md := r.Markdown()
	assert.Contains(t, md, "# Drawing finished")
	assert.Contains(t, md, "- **Bot:** Bob (`42`)")
	assert.Contains(t, md, "- **Position:** (3, 4), color e")
	assert.Contains(t, md, "| color | 2 |\n| move | 20 |\n| paint | 10 |")

	r.Err = errors.New("paint: (500) boom")
	r.Failures = 1
	md = r.Markdown()
	assert.Contains(t, md, "# Drawing failed")
	assert.Contains(t, md, "Failed commands: 1")
	assert.Contains(t, md, "> paint: (500) boom")
}

func TestPrintReport_PlainOutsideTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := tui.Report{Bot: domain.Identity{Name: "Bob", ID: "1"}}
	require.NoError(t, tui.PrintReport(&buf, r))
	assert.Equal(t, r.Markdown(), buf.String())
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer(60)
	require.NoError(t, err)
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
