package domain

import (
	"html"
	"strings"
)

// LegendPosition is the map corner the legend is anchored to.
const LegendPosition = "bottomright"

// LegendEntry is one swatch and its label.
type LegendEntry struct {
	Floor float64 `json:"floor"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Legend maps color buckets to magnitude ranges.
type Legend struct {
	Position string        `json:"position"`
	Entries  []LegendEntry `json:"entries"`
}

// BuildLegend derives one entry per threshold. Each swatch samples the ramp one
// unit above the bucket floor so it lands inside the bucket it labels.
func BuildLegend() Legend {
	entries := make([]LegendEntry, len(Thresholds))
	for i, t := range Thresholds {
		entries[i] = LegendEntry{
			Floor: t.Floor,
			Color: Color(t.Floor + 1),
			Label: BucketLabel(i),
		}
	}
	return Legend{Position: LegendPosition, Entries: entries}
}

// HTML renders the legend body for the map's legend control.
func (l Legend) HTML() string {
	var b strings.Builder
	for i, e := range l.Entries {
		b.WriteString(`<i style="background:`)
		b.WriteString(html.EscapeString(e.Color))
		b.WriteString(`"></i> `)
		b.WriteString(html.EscapeString(e.Label))
		if i < len(l.Entries)-1 {
			b.WriteString("<br>")
		}
	}
	return b.String()
}
