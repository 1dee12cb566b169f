package report

import (
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/edumeet/notifier/internal/domain/entities"
)

// ChartMimeSVG is the MIME type of service-generated charts.
const ChartMimeSVG = "image/svg+xml"

var chartPalette = []string{
	"#3498db", "#e74c3c", "#2ecc71", "#f39c12",
	"#9b59b6", "#1abc9c", "#e67e22", "#34495e",
}

type chartSlice struct {
	label string
	value float64
}

// speakerChartSlices counts transcript entries per speaker.
func speakerChartSlices(transcript map[string][]entities.TranscriptEntry) []chartSlice {
	slices := make([]chartSlice, 0, len(transcript))
	for speaker, entries := range transcript {
		if len(entries) == 0 {
			continue
		}
		slices = append(slices, chartSlice{label: speaker, value: float64(len(entries))})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].label < slices[j].label })
	return slices
}

// emotionChartSlices counts observations per emotion across all persons.
func emotionChartSlices(emotions map[string][]entities.EmotionEntry) []chartSlice {
	counts := make(map[string]float64)
	for _, entries := range emotions {
		for _, e := range entries {
			counts[e.Emotion]++
		}
	}
	slices := make([]chartSlice, 0, len(counts))
	for emotion, count := range counts {
		slices = append(slices, chartSlice{label: emotion, value: count})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].label < slices[j].label })
	return slices
}

// renderPieChart renders the slices as a base64-encoded SVG pie chart with a
// legend carrying per-slice percentages. Returns "" when there is nothing to
// chart. Slice order is the caller's, so equal input yields equal output.
func renderPieChart(title string, slices []chartSlice) string {
	var total float64
	for _, s := range slices {
		total += s.value
	}
	if total <= 0 {
		return ""
	}

	const (
		size    = 320.0
		cx      = size / 2
		cy      = size / 2
		radius  = 120.0
		rowH    = 18.0
		padding = 16.0
	)
	legendH := float64(len(slices))*rowH + padding
	height := size + legendH

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		size, height+24, size, height+24)
	fmt.Fprintf(&b, `<text x="%.0f" y="18" text-anchor="middle" font-family="Arial" font-size="14" font-weight="bold" fill="#2c3e50">%s</text>`,
		cx, escapeXML(title))

	if len(slices) == 1 {
		fmt.Fprintf(&b, `<circle cx="%.0f" cy="%.0f" r="%.0f" fill="%s"/>`, cx, cy+24, radius, chartPalette[0])
	} else {
		angle := -math.Pi / 2
		for i, s := range slices {
			sweep := s.value / total * 2 * math.Pi
			x1 := cx + radius*math.Cos(angle)
			y1 := cy + 24 + radius*math.Sin(angle)
			angle += sweep
			x2 := cx + radius*math.Cos(angle)
			y2 := cy + 24 + radius*math.Sin(angle)
			large := 0
			if sweep > math.Pi {
				large = 1
			}
			fmt.Fprintf(&b, `<path d="M%.2f,%.2f L%.2f,%.2f A%.0f,%.0f 0 %d,1 %.2f,%.2f Z" fill="%s"/>`,
				cx, cy+24, x1, y1, radius, radius, large, x2, y2, chartPalette[i%len(chartPalette)])
		}
	}

	y := size + padding + 24
	for i, s := range slices {
		fmt.Fprintf(&b, `<rect x="20" y="%.1f" width="12" height="12" fill="%s"/>`, y-10, chartPalette[i%len(chartPalette)])
		fmt.Fprintf(&b, `<text x="40" y="%.1f" font-family="Arial" font-size="12" fill="#333333">%s: %.1f%%</text>`,
			y, escapeXML(s.label), s.value/total*100)
		y += rowH
	}
	b.WriteString(`</svg>`)

	return base64.StdEncoding.EncodeToString([]byte(b.String()))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
