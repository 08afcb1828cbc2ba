package feed

import (
	"fmt"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ParseEarthquakes decodes a USGS FeatureCollection. Features without a point
// geometry, a numeric "mag", or a numeric "time" are skipped.
func ParseEarthquakes(data []byte) (domain.EarthquakeFeed, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.EarthquakeFeed{}, fmt.Errorf("decode feature collection: %w", err)
	}

	out := domain.EarthquakeFeed{Events: make([]domain.Earthquake, 0, len(fc.Features))}
	for i, f := range fc.Features {
		eq, reason := earthquakeFromFeature(f)
		if reason != "" {
			out.Skipped = append(out.Skipped, &domain.MalformedFeatureError{Index: i, Reason: reason})
			continue
		}
		out.Events = append(out.Events, eq)
	}
	return out, nil
}

func earthquakeFromFeature(f *geojson.Feature) (domain.Earthquake, string) {
	if f == nil {
		return domain.Earthquake{}, "null feature"
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return domain.Earthquake{}, fmt.Sprintf("geometry is %s, want Point", geometryType(f.Geometry))
	}
	mag, ok := f.Properties["mag"].(float64)
	if !ok {
		return domain.Earthquake{}, "missing or non-numeric mag"
	}
	ts, ok := f.Properties["time"].(float64)
	if !ok {
		return domain.Earthquake{}, "missing or non-numeric time"
	}
	place, _ := f.Properties["place"].(string)

	return domain.Earthquake{
		ID:              featureID(f),
		Place:           place,
		Magnitude:       mag,
		TimestampMillis: int64(ts),
		Position:        domain.Geo{Lat: pt.Lat(), Lon: pt.Lon()},
	}, ""
}

// ParsePlateBoundaries decodes the boundary FeatureCollection. LineStrings are
// kept in order and MultiLineStrings are flattened in place.
func ParsePlateBoundaries(data []byte) (domain.PlateFeed, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.PlateFeed{}, fmt.Errorf("decode feature collection: %w", err)
	}

	out := domain.PlateFeed{Boundaries: domain.PlateBoundaries{Lines: make([]domain.LineString, 0, len(fc.Features))}}
	for i, f := range fc.Features {
		if f == nil {
			out.Skipped = append(out.Skipped, &domain.MalformedFeatureError{Index: i, Reason: "null feature"})
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.LineString:
			out.Boundaries.Lines = append(out.Boundaries.Lines, toLine(g))
		case orb.MultiLineString:
			for _, ls := range g {
				out.Boundaries.Lines = append(out.Boundaries.Lines, toLine(ls))
			}
		default:
			out.Skipped = append(out.Skipped, &domain.MalformedFeatureError{
				Index:  i,
				Reason: fmt.Sprintf("geometry is %s, want LineString", geometryType(f.Geometry)),
			})
		}
	}
	return out, nil
}

func toLine(ls orb.LineString) domain.LineString {
	line := make(domain.LineString, len(ls))
	for i, p := range ls {
		line[i] = domain.Geo{Lat: p.Lat(), Lon: p.Lon()}
	}
	return line
}

func featureID(f *geojson.Feature) string {
	if f.ID == nil {
		return ""
	}
	if s, ok := f.ID.(string); ok {
		return s
	}
	return fmt.Sprint(f.ID)
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
