package domain

import "time"

// Overlay names shown in the layer control.
const (
	OverlayEarthquakes = "Earthquakes"
	OverlayPlates      = "Tectonic Plates"
)

// Plate boundary line style.
const (
	PlateLineColor  = "yellow"
	PlateLineWeight = 2.0
)

// TileLayer is a base map theme. Exactly one is visible at a time.
type TileLayer struct {
	Name        string `json:"name"`
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"max_zoom"`
	Default     bool   `json:"default"`
}

// LineStyle styles a polyline overlay.
type LineStyle struct {
	Color  string  `json:"color"`
	Weight float64 `json:"weight"`
}

// EarthquakeOverlay is the toggleable marker layer.
type EarthquakeOverlay struct {
	Name    string   `json:"name"`
	Visible bool     `json:"visible"`
	Markers []Marker `json:"markers"`
}

// PlateOverlay is the toggleable boundary layer. Lines stay empty until the
// boundary fetch succeeds.
type PlateOverlay struct {
	Name    string       `json:"name"`
	Visible bool         `json:"visible"`
	Style   LineStyle    `json:"style"`
	Lines   []LineString `json:"lines"`
}

// Overlays holds both overlay layers.
type Overlays struct {
	Earthquakes EarthquakeOverlay `json:"earthquakes"`
	Plates      PlateOverlay      `json:"plates"`
}

// LayerControl configures the base/overlay selector.
type LayerControl struct {
	Collapsed bool `json:"collapsed"`
}

// Degradation records a non-fatal problem that left part of a layer empty.
type Degradation struct {
	Layer string `json:"layer"`
	Error string `json:"error"`
}

// MapView is everything the page needs to draw the map.
type MapView struct {
	Center       Geo           `json:"center"`
	Zoom         int           `json:"zoom"`
	BaseLayers   []TileLayer   `json:"base_layers"`
	Overlays     Overlays      `json:"overlays"`
	Control      LayerControl  `json:"control"`
	Legend       Legend        `json:"legend"`
	Degradations []Degradation `json:"degradations,omitempty"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// NewMapView returns a view with empty, visible overlays and the legend in
// place. Layers are attached as their data arrives.
func NewMapView(center Geo, zoom int, base []TileLayer) *MapView {
	return &MapView{
		Center:     center,
		Zoom:       zoom,
		BaseLayers: base,
		Overlays: Overlays{
			Earthquakes: EarthquakeOverlay{Name: OverlayEarthquakes, Visible: true, Markers: []Marker{}},
			Plates: PlateOverlay{
				Name:    OverlayPlates,
				Visible: true,
				Style:   LineStyle{Color: PlateLineColor, Weight: PlateLineWeight},
				Lines:   []LineString{},
			},
		},
		Control:     LayerControl{Collapsed: false},
		Legend:      BuildLegend(),
		GeneratedAt: clock.Now(),
	}
}

// Degrade appends a degradation for the named layer.
func (v *MapView) Degrade(layer string, err error) {
	v.Degradations = append(v.Degradations, Degradation{Layer: layer, Error: err.Error()})
}
