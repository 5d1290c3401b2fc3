package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
)

// requiredRestaurantFields is checked in order so validation errors are
// deterministic.
var requiredRestaurantFields = []string{"name", "slug", "category", "rating", "review_text", "address", "latitude", "longitude"}

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		restaurants, err := h.restaurantService.List(ctx)
		if err != nil {
			h.logger.Printf("admin restaurant list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch restaurants")
			return
		}

		items := make([]adminRestaurantResponse, 0, len(restaurants))
		for _, restaurant := range restaurants {
			items = append(items, adminRestaurantDomainToResponse(restaurant))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		restaurant, err := h.restaurantService.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Restaurant not found")
				return
			}
			h.logger.Printf("admin restaurant detail failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch restaurant")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminRestaurantDomainToResponse(*restaurant))
	}
}

func (h *Handler) restaurantCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeRawBody(r.Body, common.MaxJSONRequestBody)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}

		for _, field := range requiredRestaurantFields {
			if missingRestaurantField(body, field) {
				common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
				return
			}
		}

		var cmd adminapp.UpsertRestaurantCommand
		if err := applyRestaurantFields(&cmd, body); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		if message, ok := validateRestaurantCommand(cmd); !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, message)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		restaurant, err := h.restaurantService.Create(ctx, cmd)
		if err != nil {
			h.writeRestaurantMutationError(w, err, "create")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, adminRestaurantDomainToResponse(*restaurant))
	}
}

func (h *Handler) restaurantUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := h.restaurantService.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Restaurant not found")
				return
			}
			h.logger.Printf("admin restaurant update fetch failed id=%s err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch restaurant")
			return
		}

		body, err := decodeRawBody(r.Body, common.MaxJSONRequestBody)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// 省略されたフィールドは既存値を保ち、明示的な null は任意項目をクリアする。
		cmd := restaurantCommandFromDomain(*existing)
		for _, field := range requiredRestaurantFields {
			if body.has(field) && missingRestaurantField(body, field) {
				common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
				return
			}
		}
		if err := applyRestaurantFields(&cmd, body); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		if message, ok := validateRestaurantCommand(cmd); !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, message)
			return
		}

		restaurant, err := h.restaurantService.Update(ctx, id, cmd)
		if err != nil {
			h.writeRestaurantMutationError(w, err, "update")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminRestaurantDomainToResponse(*restaurant))
	}
}

func (h *Handler) restaurantDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		// 画像の一括削除とカスケードがあるため通常より長めのタイムアウト。
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		if err := h.restaurantService.Delete(ctx, id); err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Restaurant not found")
				return
			}
			h.logger.Printf("admin restaurant delete failed id=%s err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to delete restaurant")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"success": true})
	}
}

// writeRestaurantMutationError maps service errors onto statuses. Unknown
// errors are storage failures: logged, answered with a generic 500 so driver
// internals never reach the client.
func (h *Handler) writeRestaurantMutationError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, adminapp.ErrConflict):
		common.WriteError(h.logger, w, http.StatusConflict, "A restaurant with this slug already exists")
	case errors.Is(err, adminapp.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, adminapp.ErrValidation):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Printf("admin restaurant %s failed: %v", action, err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s restaurant", action))
	}
}

// missingRestaurantField はフィールドが欠落扱いになるかを判定する。
// 文字列は空文字も欠落、数値は null のみ欠落とみなす。
func missingRestaurantField(body rawBody, field string) bool {
	switch field {
	case "rating", "latitude", "longitude":
		return !body.presentNumber(field)
	default:
		return !body.presentString(field)
	}
}

// applyRestaurantFields copies every field present in the body onto cmd.
func applyRestaurantFields(cmd *adminapp.UpsertRestaurantCommand, body rawBody) error {
	var err error
	if body.has("name") {
		if cmd.Name, err = body.stringField("name"); err != nil {
			return err
		}
	}
	if body.has("slug") {
		if cmd.Slug, err = body.stringField("slug"); err != nil {
			return err
		}
	}
	if body.has("category") {
		if cmd.Category, err = body.stringField("category"); err != nil {
			return err
		}
	}
	if body.has("cuisine_type") {
		if cmd.CuisineType, err = body.stringField("cuisine_type"); err != nil {
			return err
		}
	}
	if body.has("rating") {
		if cmd.Rating, err = body.intField("rating"); err != nil {
			return err
		}
	}
	if body.has("review_text") {
		if cmd.ReviewText, err = body.stringField("review_text"); err != nil {
			return err
		}
	}
	if body.has("address") {
		if cmd.Address, err = body.stringField("address"); err != nil {
			return err
		}
	}
	if body.has("latitude") {
		if cmd.Latitude, err = body.floatField("latitude"); err != nil {
			return err
		}
	}
	if body.has("longitude") {
		if cmd.Longitude, err = body.floatField("longitude"); err != nil {
			return err
		}
	}
	if body.has("image_url") {
		if cmd.ImageURL, err = body.stringField("image_url"); err != nil {
			return err
		}
	}
	if body.has("images") {
		if cmd.Images, err = body.stringSliceField("images"); err != nil {
			return err
		}
	}
	optional := map[string]**int{
		"ambiance_rating":    &cmd.AmbianceRating,
		"cleanliness_rating": &cmd.CleanlinessRating,
		"service_rating":     &cmd.ServiceRating,
		"value_rating":       &cmd.ValueRating,
		"wait_time_rating":   &cmd.WaitTimeRating,
	}
	for field, target := range optional {
		if !body.has(field) {
			continue
		}
		value, err := body.optionalIntField(field)
		if err != nil {
			return err
		}
		*target = value
	}
	sections := map[string]*string{
		"menu_review":     &cmd.MenuReview,
		"vibe_review":     &cmd.VibeReview,
		"location_review": &cmd.LocationReview,
		"tips":            &cmd.Tips,
	}
	for field, target := range sections {
		if !body.has(field) {
			continue
		}
		if *target, err = body.stringField(field); err != nil {
			return err
		}
	}
	return nil
}

// validateRestaurantCommand mirrors the form's validation messages so the
// UI can surface them verbatim.
func validateRestaurantCommand(cmd adminapp.UpsertRestaurantCommand) (string, bool) {
	if _, err := admindomain.NewCategory(cmd.Category); err != nil {
		return "Invalid category", false
	}
	if _, err := admindomain.NewRating(cmd.Rating); err != nil {
		return "Rating must be between 1 and 5", false
	}
	if _, err := admindomain.NewSlug(cmd.Slug); err != nil {
		return "Slug must contain only lowercase letters, numbers, and hyphens", false
	}
	return "", true
}

// restaurantCommandFromDomain seeds a PATCH command from the stored record.
func restaurantCommandFromDomain(restaurant admindomain.Restaurant) adminapp.UpsertRestaurantCommand {
	return adminapp.UpsertRestaurantCommand{
		Name:              restaurant.Name,
		Slug:              restaurant.Slug.String(),
		Category:          restaurant.Category.String(),
		CuisineType:       restaurant.CuisineType,
		Rating:            restaurant.Rating.Int(),
		ReviewText:        restaurant.ReviewText,
		Address:           restaurant.Address,
		Latitude:          restaurant.Latitude,
		Longitude:         restaurant.Longitude,
		ImageURL:          restaurant.ImageURL,
		Images:            restaurant.Images,
		AmbianceRating:    restaurant.AmbianceRating,
		CleanlinessRating: restaurant.CleanlinessRating,
		ServiceRating:     restaurant.ServiceRating,
		ValueRating:       restaurant.ValueRating,
		WaitTimeRating:    restaurant.WaitTimeRating,
		MenuReview:        restaurant.MenuReview,
		VibeReview:        restaurant.VibeReview,
		LocationReview:    restaurant.LocationReview,
		Tips:              restaurant.Tips,
	}
}
