package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mkt0301/food-reviews-services/api/internal/geocode"
	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
)

type geocodeResponse struct {
	Results []geocode.Result `json:"results"`
}

// geocodeHandler proxies address search so the admin UI never talks to the
// geocoding provider directly.
func (h *Handler) geocodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Missing query parameter: q")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		results, err := h.geocoder.Search(ctx, query)
		if err != nil {
			h.logger.Printf("admin geocode failed q=%q err=%v", query, err)
			common.WriteError(h.logger, w, http.StatusBadGateway, "Geocoding failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, geocodeResponse{Results: results})
	}
}
