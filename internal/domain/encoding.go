package domain

import "strconv"

// RadiusScale converts magnitude to marker radius in pixels.
const RadiusScale = 5.0

// Threshold is one bucket of the color ramp. A magnitude belongs to the bucket
// with the highest Floor it strictly exceeds; the lowest bucket catches the rest.
type Threshold struct {
	Floor float64
	Color string
}

// Thresholds is the color ramp, ordered by ascending floor. The encoder and the
// legend both read it.
var Thresholds = []Threshold{
	{Floor: 0, Color: "#FEB24C"},
	{Floor: 1, Color: "#FD8D3C"},
	{Floor: 2, Color: "#FC4E2A"},
	{Floor: 3, Color: "#E31A1C"},
	{Floor: 4, Color: "#BD0026"},
	{Floor: 5, Color: "#800026"},
}

// Encoding is the visual form of a magnitude.
type Encoding struct {
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// Encode computes radius and color for a magnitude.
func Encode(mag float64) Encoding {
	return Encoding{Radius: Radius(mag), Color: Color(mag)}
}

// Radius scales magnitude linearly. Negative magnitudes yield a negative radius.
func Radius(mag float64) float64 {
	return mag * RadiusScale
}

// Color returns the fill color for a magnitude.
func Color(mag float64) string {
	return Thresholds[BucketIndex(mag)].Color
}

// BucketIndex returns the index into Thresholds for a magnitude. Lower bounds are
// exclusive above the first bucket: 5.0 maps to the Floor 4 bucket.
func BucketIndex(mag float64) int {
	for i := len(Thresholds) - 1; i > 0; i-- {
		if mag > Thresholds[i].Floor {
			return i
		}
	}
	return 0
}

// BucketLabel names the bucket at index i, e.g. "2–3" or "5+".
func BucketLabel(i int) string {
	low := formatFloor(Thresholds[i].Floor)
	if i == len(Thresholds)-1 {
		return low + "+"
	}
	return low + "–" + formatFloor(Thresholds[i+1].Floor)
}

func formatFloor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
