package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/brush/pkg/domain"
)

// PrintPalette lists every palette token with a color swatch.
func PrintPalette(w io.Writer) {
	out := Output(w)
	for _, c := range domain.Palette {
		swatch := out.String("    ").Background(out.Color(c.Hex()))
		fmt.Fprintf(w, "%s %s  %s\n", c, swatch, c.Hex())
	}
}

// PrintCanvas writes look rows, painting each cell with its palette color.
// Cells that are not palette tokens are written as is.
func PrintCanvas(w io.Writer, rows string) {
	out := Output(w)
	for _, row := range strings.Split(strings.TrimSuffix(rows, "\n"), "\n") {
		var sb strings.Builder
		for _, r := range row {
			c := domain.Color(string(r))
			if !c.Valid() {
				sb.WriteRune(r)
				continue
			}
			sb.WriteString(out.String(string(r)).Background(out.Color(c.Hex())).String())
		}
		fmt.Fprintln(w, sb.String())
	}
}
