package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuake(id string, mag, lat, lon float64) Earthquake {
	return Earthquake{
		ID:              id,
		Place:           "10 km NE of Ridgecrest, CA",
		Magnitude:       mag,
		TimestampMillis: 1714144200000, // 2024-04-26T15:10:00Z
		Position:        Geo{Lat: lat, Lon: lon},
	}
}

func TestMarkerStyler_Marker(t *testing.T) {
	m := MarkerStyler{}.Marker(testQuake("ci40000001", 4.0, 35.7, -117.5))

	assert.Equal(t, "ci40000001", m.ID)
	assert.Equal(t, Geo{Lat: 35.7, Lon: -117.5}, m.Position)
	assert.InDelta(t, 20.0, m.Radius, 1e-9)
	assert.Equal(t, "#E31A1C", m.FillColor)
	assert.Equal(t, 3, m.Bucket)
	assert.InDelta(t, 0.5, m.FillOpacity, 1e-9)
	assert.Equal(t, "#000", m.StrokeColor)
	assert.True(t, m.Stroke)
	assert.InDelta(t, 1.0, m.Weight, 1e-9)
}

func TestMarkerStyler_NegativeMagnitudeFloorsRadius(t *testing.T) {
	eq := testQuake("nc1", -0.6, 38.8, -122.8)

	assert.InDelta(t, 0.0, MarkerStyler{}.Marker(eq).Radius, 1e-9)
	assert.InDelta(t, 1.0, MarkerStyler{MinRadius: 1}.Marker(eq).Radius, 1e-9)
	assert.InDelta(t, -3.0, Encode(eq.Magnitude).Radius, 1e-9, "encoder itself does not clamp")
}

func TestMarkerStyler_Markers(t *testing.T) {
	eqs := []Earthquake{
		testQuake("a", 1.2, 10, 20),
		testQuake("b", 5.8, -33.4, -70.6),
		testQuake("c", 2.0, 61.2, -149.9),
	}

	markers := MarkerStyler{}.Markers(eqs)

	require.Len(t, markers, len(eqs))
	for i, m := range markers {
		assert.Equal(t, eqs[i].ID, m.ID)
		assert.Equal(t, eqs[i].Position, m.Position)
	}
}

func TestMarkerStyler_MarkersEmpty(t *testing.T) {
	markers := MarkerStyler{}.Markers(nil)
	assert.NotNil(t, markers)
	assert.Empty(t, markers)
}

func TestNewPopup(t *testing.T) {
	p := NewPopup(testQuake("a", 4.5, 0, 0))

	assert.Equal(t, "10 km NE of Ridgecrest, CA", p.Place)
	assert.Equal(t, "4.5", p.Magnitude)
	assert.Equal(t, "Fri Apr 26 2024 15:10:00 GMT+0000 (UTC)", p.Time)
}

func TestPopup_HTMLEscapesPlace(t *testing.T) {
	p := Popup{Place: "<script>x</script>", Magnitude: "3", Time: "t"}

	out := p.HTML()

	assert.Equal(t, "<h3>&lt;script&gt;x&lt;/script&gt;</h3><hr><p>3 Magnitude<br>t</p>", out)
}
