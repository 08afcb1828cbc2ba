package domain

import "time"

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Earthquake is a single event from the daily feed, kept verbatim.
type Earthquake struct {
	ID              string  `json:"id"`
	Place           string  `json:"place"`
	Magnitude       float64 `json:"mag"`
	TimestampMillis int64   `json:"time"`
	Position        Geo     `json:"position"`
}

// Time returns the event time in UTC.
func (e Earthquake) Time() time.Time {
	return time.UnixMilli(e.TimestampMillis).UTC()
}

// LineString is an ordered list of coordinates.
type LineString []Geo

// PlateBoundaries is the ordered set of boundary polylines.
type PlateBoundaries struct {
	Lines []LineString `json:"lines"`
}

// PointCount returns the number of coordinates across all lines.
func (p PlateBoundaries) PointCount() int {
	n := 0
	for _, l := range p.Lines {
		n += len(l)
	}
	return n
}

// EarthquakeFeed is a decoded earthquake dataset. Skipped lists features that
// could not be used; the rest still render.
type EarthquakeFeed struct {
	Events  []Earthquake
	Skipped []*MalformedFeatureError
}

// PlateFeed is a decoded plate boundary dataset.
type PlateFeed struct {
	Boundaries PlateBoundaries
	Skipped    []*MalformedFeatureError
}
