package httpadapter

import (
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MarkersToGeoJSON renders styled markers as Point features whose properties
// carry the circle style and popup HTML.
func MarkersToGeoJSON(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lon, m.Position.Lat})
		if m.ID != "" {
			f.ID = m.ID
		}
		f.Properties["place"] = m.Popup.Place
		f.Properties["mag"] = m.Magnitude
		f.Properties["bucket"] = m.Bucket
		f.Properties["radius"] = m.Radius
		f.Properties["fillColor"] = m.FillColor
		f.Properties["fillOpacity"] = m.FillOpacity
		f.Properties["color"] = m.StrokeColor
		f.Properties["stroke"] = m.Stroke
		f.Properties["weight"] = m.Weight
		f.Properties["popup"] = m.Popup.HTML()
		fc.Append(f)
	}
	return fc
}

// PlatesToGeoJSON renders boundary lines as LineString features.
func PlatesToGeoJSON(lines []domain.LineString) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range lines {
		ls := make(orb.LineString, len(l))
		for i, g := range l {
			ls[i] = orb.Point{g.Lon, g.Lat}
		}
		fc.Append(geojson.NewFeature(ls))
	}
	return fc
}
