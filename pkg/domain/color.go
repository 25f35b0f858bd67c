package domain

import (
	"fmt"
	"strings"
)

// Color is one of the 16 palette tokens of the canvas service (pico-8 palette).
// NoColor marks a color that has not been reported yet.
type Color string

const (
	NoColor Color = ""

	Black      Color = "0"
	DarkBlue   Color = "1"
	DarkPurple Color = "2"
	DarkGreen  Color = "3"
	Brown      Color = "4"
	DarkGray   Color = "5"
	LightGray  Color = "6"
	White      Color = "7"
	Red        Color = "8"
	Orange     Color = "9"
	Yellow     Color = "a"
	Green      Color = "b"
	Blue       Color = "c"
	Lavender   Color = "d"
	Pink       Color = "e"
	Peach      Color = "f"
)

// Palette lists the colors in token order.
var Palette = []Color{
	Black, DarkBlue, DarkPurple, DarkGreen, Brown, DarkGray, LightGray, White,
	Red, Orange, Yellow, Green, Blue, Lavender, Pink, Peach,
}

var paletteHex = map[Color]string{
	Black:      "#000000",
	DarkBlue:   "#1D2B53",
	DarkPurple: "#7E2553",
	DarkGreen:  "#008751",
	Brown:      "#AB5236",
	DarkGray:   "#5F574F",
	LightGray:  "#C2C3C7",
	White:      "#FFF1E8",
	Red:        "#FF004D",
	Orange:     "#FFA300",
	Yellow:     "#FFEC27",
	Green:      "#00E436",
	Blue:       "#29ADFF",
	Lavender:   "#83769C",
	Pink:       "#FF77A8",
	Peach:      "#FFCCAA",
}

// Valid reports whether c is a palette token.
func (c Color) Valid() bool {
	_, ok := paletteHex[c]
	return ok
}

// Hex returns the display value of the color, or "" for NoColor.
// The engine never interprets it; it exists for terminal previews.
func (c Color) Hex() string {
	return paletteHex[c]
}

func (c Color) String() string {
	if c == NoColor {
		return "none"
	}
	return string(c)
}

// ParseColor accepts a single hex digit token ("0"-"f", case-insensitive).
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return NoColor, fmt.Errorf("%w: unknown color %q", ErrParameter, s)
	}
	return c, nil
}
