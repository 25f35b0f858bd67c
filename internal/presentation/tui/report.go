package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/brush/pkg/domain"
)

// Report summarizes a drawing run.
type Report struct {
	Bot       domain.Identity
	SessionID string
	Shapes    int
	Final     domain.AgentState
	Commands  map[domain.CommandKind]int
	Failures  int
	Elapsed   time.Duration
	Err       error
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var sb strings.Builder
	status := "finished"
	if r.Err != nil {
		status = "failed"
	}
	fmt.Fprintf(&sb, "# Drawing %s\n\n", status)
	fmt.Fprintf(&sb, "- **Bot:** %s (`%s`)\n", r.Bot.Name, r.Bot.ID)
	if r.SessionID != "" {
		fmt.Fprintf(&sb, "- **Session:** `%s`\n", r.SessionID)
	}
	fmt.Fprintf(&sb, "- **Shapes:** %d\n", r.Shapes)
	fmt.Fprintf(&sb, "- **Position:** %s, color %s\n", r.Final.Location, r.Final.Color)
	fmt.Fprintf(&sb, "- **Elapsed:** %s\n", r.Elapsed.Round(time.Millisecond))

	if len(r.Commands) > 0 {
		sb.WriteString("\n| command | count |\n|---|---:|\n")
		kinds := make([]domain.CommandKind, 0, len(r.Commands))
		for k := range r.Commands {
			kinds = append(kinds, k)
		}
		slices.Sort(kinds)
		for _, k := range kinds {
			fmt.Fprintf(&sb, "| %s | %d |\n", k, r.Commands[k])
		}
	}
	if r.Failures > 0 {
		fmt.Fprintf(&sb, "\nFailed commands: %d\n", r.Failures)
	}
	if r.Err != nil {
		fmt.Fprintf(&sb, "\n> %v\n", r.Err)
	}
	return sb.String()
}

// PrintReport writes the report, rendered with glamour on terminals and as
// plain markdown elsewhere.
func PrintReport(w io.Writer, r Report) error {
	md := r.Markdown()
	if !IsTerminal(w) {
		_, err := io.WriteString(w, md)
		return err
	}
	render, err := NewRenderer(Width(w, 80))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
