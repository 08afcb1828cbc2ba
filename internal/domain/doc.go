// Package domain models daily earthquake reports and the visual encoding used to
// draw them on a map.
//
// # Data Sources
//
// Earthquake events come from the USGS real-time summary feed, a GeoJSON
// FeatureCollection refreshed every minute:
//
//	https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson
//
// Each feature is a Point with [lon, lat, depth] coordinates. Only three
// properties are used: "place" (human-readable region), "mag" (may be null for
// events still under review), and "time" (milliseconds since the Unix epoch, UTC).
//
// Plate boundaries come from the PB2002 model (Bird, 2003) as published in the
// fraxen/tectonicplates repository. Each feature is a LineString; the few
// MultiLineString features are flattened in order.
//
// # Visual Encoding
//
// Marker radius is linear in magnitude:
//
//	radius = 5 * mag
//
// Fill color is a six-step ramp with exclusive lower bounds:
//
//	mag > 5  #800026
//	mag > 4  #BD0026
//	mag > 3  #E31A1C
//	mag > 2  #FC4E2A
//	mag > 1  #FD8D3C
//	else     #FEB24C
//
// A magnitude exactly on a threshold falls into the lower bucket: 4.0 is drawn
// with the "> 3" color. The legend samples each bucket one unit above its floor
// so that its swatches line up with the ramp. Both the ramp and the legend are
// read from [Thresholds]; change the table, not the functions.
//
// Negative magnitudes occur for micro-events near dense station networks. The
// encoder returns the raw negative radius; marker construction floors it at a
// configurable minimum (see [MarkerStyler]).
package domain
