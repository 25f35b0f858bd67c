package domain

// CurveSample is one grid position produced while tracing a curve.
// T is kept because color and radius rules are functions of the parameter.
type CurveSample struct {
	Position Position `json:"position"`
	T        float64  `json:"t"`
	Index    int      `json:"index"`
}

// ColorRule picks the color for a sample relative to a reference point.
// Rules are pure and called once per sample.
type ColorRule func(reference Position, sample CurveSample) Color
