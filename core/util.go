package core

import "strconv"

// formatFloat renders a float the way the teacher's bench package
// renders its numeric CSV fields (strconv, not fmt, to avoid pulling in
// fmt's reflection-based formatting for a single well-known verb).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
