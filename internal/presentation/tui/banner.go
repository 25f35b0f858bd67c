package tui

import (
	"fmt"
	"io"
	"strings"
)

// PrintBanner writes the brush banner with a palette gradient.
func PrintBanner(w io.Writer, version string) {
	out := Output(w)
	lines := []struct{ text, hex string }{
		{` _                    _     `, "#FF004D"},
		{`| |__  _ __ _   _ ___| |__  `, "#FFA300"},
		{`| '_ \| '__| | | / __| '_ \ `, "#FFEC27"},
		{`| |_) | |  | |_| \__ \ | | |`, "#00E436"},
		{`|_.__/|_|   \__,_|___/_| |_|`, "#29ADFF"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.hex)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

