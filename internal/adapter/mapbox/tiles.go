package mapbox

import (
	"strings"

	"github.com/couchcryptid/quake-map/internal/domain"
)

// DefaultTileURL is the raster tile endpoint. {id} and {accessToken} are filled
// in here; {z}/{x}/{y} are left for the map widget.
const DefaultTileURL = "https://api.tiles.mapbox.com/v4/{id}/{z}/{x}/{y}.png?access_token={accessToken}"

const (
	tileMaxZoom = 18
	attribution = `Map data &copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a> contributors, ` +
		`<a href="https://creativecommons.org/licenses/by-sa/2.0/">CC-BY-SA</a>, ` +
		`Imagery © <a href="https://www.mapbox.com/">Mapbox</a>`
)

// Style is a named Mapbox map id offered as a base layer.
type Style struct {
	Name string
	ID   string
}

// BaseStyles lists the base themes in control order. The first is shown on load.
var BaseStyles = []Style{
	{Name: "Comic Map", ID: "mapbox.comic"},
	{Name: "Pirate Map", ID: "mapbox.pirates"},
	{Name: "Outdoor Map", ID: "mapbox.outdoors"},
	{Name: "Satellite Map", ID: "mapbox.satellite"},
	{Name: "High-Contrast Map", ID: "mapbox.high-contrast"},
}

// TileLayers builds the base layer set for a tile URL template and token.
func TileLayers(urlTemplate, token string) []domain.TileLayer {
	if urlTemplate == "" {
		urlTemplate = DefaultTileURL
	}
	layers := make([]domain.TileLayer, len(BaseStyles))
	for i, s := range BaseStyles {
		r := strings.NewReplacer("{id}", s.ID, "{accessToken}", token)
		layers[i] = domain.TileLayer{
			Name:        s.Name,
			URLTemplate: r.Replace(urlTemplate),
			Attribution: attribution,
			MaxZoom:     tileMaxZoom,
			Default:     i == 0,
		}
	}
	return layers
}
