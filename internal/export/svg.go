package export

import (
	"fmt"
	"strings"

	"functrace/internal/poly"
	"functrace/internal/viz"
)

var svgPalette = []string{"#2dd4bf", "#f472b6", "#fbbf24", "#60a5fa", "#a3e635"}

// PolylinesToSVG renders the traced polylines as a standalone SVG
// document on a dark background, one path per tracer.
func PolylinesToSVG(lines [][]poly.Point, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	vp := viz.FitViewport(lines, 0.05)
	sx := width / (vp.MaxX - vp.MinX)
	sy := height / (vp.MaxY - vp.MinY)

	for i, pts := range lines {
		coords := make([]string, 0, len(pts))
		for _, p := range pts {
			if !p.IsValid() {
				continue
			}
			x := (p.X - vp.MinX) * sx
			y := height - (p.Y-vp.MinY)*sy
			coords = append(coords, fmt.Sprintf("%.2f,%.2f", x, y))
		}
		if len(coords) == 0 {
			continue
		}
		color := svgPalette[i%len(svgPalette)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="2" points="%s"/>`,
			color, strings.Join(coords, " ")))
		sb.WriteByte('\n')
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
