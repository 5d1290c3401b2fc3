package public

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
	publicapp "github.com/mkt0301/food-reviews-services/api/internal/public/application"
)

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		queryValues := r.URL.Query()
		filter := publicapp.RestaurantFilter{
			Categories: splitCSV(queryValues.Get("categories")),
			Cuisine:    strings.TrimSpace(queryValues.Get("cuisine")),
		}
		// 解釈できない値は「フィルタ無し」として扱う。
		if rating, ok := common.ParsePositiveInt(queryValues.Get("rating"), 0); ok {
			filter.MinRating = rating
		}

		restaurants, err := h.queries.List(ctx, filter)
		if err != nil {
			h.logger.Printf("public restaurant list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch restaurants")
			return
		}

		items := make([]restaurantResponse, 0, len(restaurants))
		for _, restaurant := range restaurants {
			items = append(items, restaurantDomainToResponse(restaurant))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		detail, err := h.queries.Detail(ctx, slug)
		if err != nil {
			if errors.Is(err, publicapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Restaurant not found")
				return
			}
			h.logger.Printf("public restaurant detail failed slug=%s err=%v", slug, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch restaurant")
			return
		}

		dishes := make([]dishResponse, 0, len(detail.Dishes))
		for _, dish := range detail.Dishes {
			dishes = append(dishes, dishDomainToResponse(dish))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, restaurantDetailResponse{
			restaurantResponse: restaurantDomainToResponse(detail.Restaurant),
			Dishes:             dishes,
		})
	}
}

func (h *Handler) cuisineListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cuisines, err := h.queries.Cuisines(ctx)
		if err != nil {
			h.logger.Printf("public cuisine list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch cuisines")
			return
		}
		if cuisines == nil {
			cuisines = []string{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, cuisines)
	}
}

func (h *Handler) mapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pins, err := h.queries.MapPins(ctx)
		if err != nil {
			h.logger.Printf("public map fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch map data")
			return
		}

		items := make([]mapPinResponse, 0, len(pins))
		for _, pin := range pins {
			items = append(items, mapPinResponse{
				ID:        pin.ID,
				Name:      pin.Name,
				Slug:      pin.Slug,
				Category:  pin.Category,
				Rating:    pin.Rating,
				Latitude:  pin.Latitude,
				Longitude: pin.Longitude,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

// splitCSV はカンマ区切りのクエリ値を空要素を除いて分解する。
func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
