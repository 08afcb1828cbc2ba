package domain

import (
	"html"
	"math"
	"strconv"
)

// popupTimeLayout matches the string form of a browser Date in UTC.
const popupTimeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// Fixed marker stroke and fill settings.
const (
	MarkerStrokeColor = "#000"
	MarkerWeight      = 1.0
	MarkerFillOpacity = 0.5
)

// Popup is the text attached to a marker.
type Popup struct {
	Place     string `json:"place"`
	Magnitude string `json:"magnitude"`
	Time      string `json:"time"`
}

// HTML renders the popup body. Place names are escaped; the feed is untrusted.
func (p Popup) HTML() string {
	return "<h3>" + html.EscapeString(p.Place) + "</h3><hr><p>" +
		html.EscapeString(p.Magnitude) + " Magnitude<br>" + html.EscapeString(p.Time) + "</p>"
}

// Marker is a styled circle marker for one earthquake.
type Marker struct {
	ID          string  `json:"id"`
	Position    Geo     `json:"position"`
	Magnitude   float64 `json:"magnitude"`
	Bucket      int     `json:"bucket"`
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	StrokeColor string  `json:"color"`
	Stroke      bool    `json:"stroke"`
	Weight      float64 `json:"weight"`
	Popup       Popup   `json:"popup"`
}

// MarkerStyler turns earthquakes into markers. MinRadius floors the encoded
// radius so that zero and negative magnitudes never emit a negative size.
type MarkerStyler struct {
	MinRadius float64
}

// Marker styles a single earthquake.
func (s MarkerStyler) Marker(eq Earthquake) Marker {
	enc := Encode(eq.Magnitude)
	return Marker{
		ID:          eq.ID,
		Position:    eq.Position,
		Magnitude:   eq.Magnitude,
		Bucket:      BucketIndex(eq.Magnitude),
		Radius:      math.Max(enc.Radius, s.MinRadius),
		FillColor:   enc.Color,
		FillOpacity: MarkerFillOpacity,
		StrokeColor: MarkerStrokeColor,
		Stroke:      true,
		Weight:      MarkerWeight,
		Popup:       NewPopup(eq),
	}
}

// Markers styles every earthquake, preserving input order. An empty input
// yields an empty, non-nil layer.
func (s MarkerStyler) Markers(eqs []Earthquake) []Marker {
	out := make([]Marker, 0, len(eqs))
	for _, eq := range eqs {
		out = append(out, s.Marker(eq))
	}
	return out
}

// NewPopup builds the popup text for an earthquake.
func NewPopup(eq Earthquake) Popup {
	return Popup{
		Place:     eq.Place,
		Magnitude: strconv.FormatFloat(eq.Magnitude, 'f', -1, 64),
		Time:      eq.Time().Format(popupTimeLayout),
	}
}
