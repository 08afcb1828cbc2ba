package httpadapter

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/couchcryptid/quake-map/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const contentTypeGeoJSON = "application/geo+json"

//go:embed templates/map.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html"))

type pageData struct {
	View       *domain.MapView
	LegendHTML string
}

type legendResponse struct {
	domain.Legend
	HTML string `json:"html"`
}

// handlePage renders the Leaflet page. Overlays are loaded by the page from
// their own routes, so the map is interactive before either fetch completes.
func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	view := s.maps.Frame()

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{View: view, LegendHTML: view.Legend.HTML()}); err != nil {
		s.logger.Error("render map page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// handleMap returns the full composed view. It always answers 200; failed
// layers are listed under "degradations".
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	view := s.maps.Compose(r.Context())
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleEarthquakes(w http.ResponseWriter, r *http.Request) {
	markers, skipped, err := s.maps.Markers(r.Context())
	if err != nil {
		s.layerUnavailable(w, domain.OverlayEarthquakes, err)
		return
	}
	if len(skipped) > 0 {
		w.Header().Set("X-Skipped-Features", strconv.Itoa(len(skipped)))
	}
	writeGeoJSON(w, http.StatusOK, MarkersToGeoJSON(markers))
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	lines, skipped, err := s.maps.Boundaries(r.Context())
	if err != nil {
		s.layerUnavailable(w, domain.OverlayPlates, err)
		return
	}
	if len(skipped) > 0 {
		w.Header().Set("X-Skipped-Features", strconv.Itoa(len(skipped)))
	}
	writeGeoJSON(w, http.StatusOK, PlatesToGeoJSON(lines))
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	legend := domain.BuildLegend()
	sharedobs.WriteJSON(w, http.StatusOK, legendResponse{Legend: legend, HTML: legend.HTML()})
}

func (s *Server) layerUnavailable(w http.ResponseWriter, layer string, err error) {
	s.logger.Warn("layer unavailable", "layer", layer, "error", err)
	sharedobs.WriteJSON(w, http.StatusBadGateway, domain.Degradation{Layer: layer, Error: err.Error()})
}
