package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPoints renders a points figure for display: signed when nonzero,
// rounded to two decimals when fractional.
func FormatPoints(v float64) string {
	s := formatNumber(v)
	if v > 0 {
		return "+" + s
	}
	return s
}

// FormatMatch renders match state for display. A decided match label like
// "4 & 3" passes through; otherwise positive is up, negative is down, zero is
// tied. showDown blanks the trailing side's figure for scoreboard layouts
// that only show the leader.
func FormatMatch(v float64, label string, showDown bool) string {
	if strings.Contains(label, "&") {
		return label
	}
	switch {
	case v < 0:
		if !showDown {
			return ""
		}
		return formatNumber(-v) + " dn"
	case v > 0:
		return formatNumber(v) + " up"
	}
	return "tied"
}

// FormatToPar renders a to-par figure: "E" for even, signed otherwise.
func FormatToPar(v float64) string {
	if v == 0 {
		return "E"
	}
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%.2f", v)
}
