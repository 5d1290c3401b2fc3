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

var requiredDishFields = []string{"restaurant_id", "name", "review_text", "food_rating", "service_rating", "price_rating"}

func (h *Handler) dishListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		filter := adminapp.DishFilter{RestaurantID: strings.TrimSpace(r.URL.Query().Get("restaurant_id"))}
		dishes, err := h.dishService.List(ctx, filter)
		if err != nil {
			h.logger.Printf("admin dish list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch dishes")
			return
		}

		items := make([]adminDishResponse, 0, len(dishes))
		for _, dish := range dishes {
			items = append(items, adminDishDomainToResponse(dish))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) dishDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dish, err := h.dishService.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Dish not found")
				return
			}
			h.logger.Printf("admin dish detail failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch dish")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminDishDomainToResponse(*dish))
	}
}

func (h *Handler) dishCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeRawBody(r.Body, common.MaxJSONRequestBody)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}

		for _, field := range requiredDishFields {
			if missingDishField(body, field) {
				common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
				return
			}
		}

		var cmd adminapp.UpsertDishCommand
		if err := applyDishFields(&cmd, body); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		if message, ok := validateDishCommand(cmd); !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, message)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dish, err := h.dishService.Create(ctx, cmd)
		if err != nil {
			// Create 時の ErrNotFound は親レストラン側の欠落を指す。
			h.writeDishMutationError(w, err, "create", "Restaurant not found")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, adminDishDomainToResponse(*dish))
	}
}

func (h *Handler) dishUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := h.dishService.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Dish not found")
				return
			}
			h.logger.Printf("admin dish update fetch failed id=%s err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to fetch dish")
			return
		}

		body, err := decodeRawBody(r.Body, common.MaxJSONRequestBody)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}

		cmd := dishCommandFromDomain(*existing)
		for _, field := range requiredDishFields {
			if body.has(field) && missingDishField(body, field) {
				common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
				return
			}
		}
		if err := applyDishFields(&cmd, body); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		if message, ok := validateDishCommand(cmd); !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, message)
			return
		}

		dish, err := h.dishService.Update(ctx, id, cmd)
		if err != nil {
			h.writeDishMutationError(w, err, "update", "Dish not found")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminDishDomainToResponse(*dish))
	}
}

func (h *Handler) dishDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		if err := h.dishService.Delete(ctx, id); err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "Dish not found")
				return
			}
			h.logger.Printf("admin dish delete failed id=%s err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to delete dish")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"success": true})
	}
}

// writeDishMutationError maps service errors onto statuses. Unknown errors
// are storage failures and answer with a generic 500.
func (h *Handler) writeDishMutationError(w http.ResponseWriter, err error, action, notFoundMessage string) {
	switch {
	case errors.Is(err, adminapp.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, adminapp.ErrValidation):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Printf("admin dish %s failed: %v", action, err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s dish", action))
	}
}

func missingDishField(body rawBody, field string) bool {
	switch field {
	case "food_rating", "service_rating", "price_rating":
		return !body.presentNumber(field)
	default:
		return !body.presentString(field)
	}
}

func applyDishFields(cmd *adminapp.UpsertDishCommand, body rawBody) error {
	var err error
	if body.has("restaurant_id") {
		if cmd.RestaurantID, err = body.stringField("restaurant_id"); err != nil {
			return err
		}
	}
	if body.has("name") {
		if cmd.Name, err = body.stringField("name"); err != nil {
			return err
		}
	}
	if body.has("review_text") {
		if cmd.ReviewText, err = body.stringField("review_text"); err != nil {
			return err
		}
	}
	if body.has("food_rating") {
		if cmd.FoodRating, err = body.intField("food_rating"); err != nil {
			return err
		}
	}
	if body.has("service_rating") {
		if cmd.ServiceRating, err = body.intField("service_rating"); err != nil {
			return err
		}
	}
	if body.has("price_rating") {
		if cmd.PriceRating, err = body.intField("price_rating"); err != nil {
			return err
		}
	}
	if body.has("images") {
		if cmd.Images, err = body.stringSliceField("images"); err != nil {
			return err
		}
	}
	return nil
}

func validateDishCommand(cmd adminapp.UpsertDishCommand) (string, bool) {
	ratings := []struct {
		field string
		value int
	}{
		{"food_rating", cmd.FoodRating},
		{"service_rating", cmd.ServiceRating},
		{"price_rating", cmd.PriceRating},
	}
	for _, rating := range ratings {
		if _, err := admindomain.NewRating(rating.value); err != nil {
			return fmt.Sprintf("%s must be between 1 and 5", rating.field), false
		}
	}
	return "", true
}

func dishCommandFromDomain(dish admindomain.Dish) adminapp.UpsertDishCommand {
	return adminapp.UpsertDishCommand{
		RestaurantID:  dish.RestaurantID,
		Name:          dish.Name,
		ReviewText:    dish.ReviewText,
		FoodRating:    dish.FoodRating.Int(),
		ServiceRating: dish.ServiceRating.Int(),
		PriceRating:   dish.PriceRating.Int(),
		Images:        dish.Images,
	}
}
