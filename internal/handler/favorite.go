package handler

import (
	"context"
	"net/http"

	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/model"
)

// FavoriteService is the favorites surface the handler needs
type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, coffeeID string) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, coffeeID string) error
	IsFavorite(ctx context.Context, userID, coffeeID string) (*model.FavoriteStatus, error)
	ListFavorites(ctx context.Context, userID string) ([]*model.Favorite, error)
}

// FavoriteHandler handles saved-coffee endpoints. All routes require auth.
type FavoriteHandler struct {
	favoriteService FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List handles GET /v1/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	favorites, err := h.favoriteService.ListFavorites(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list favorites"))
		return
	}

	WriteCollection(w, http.StatusOK, favorites, nil, map[string]string{
		"self": "/v1/favorites",
	})
}

// Add handles PUT /v1/coffees/{coffeeId}/favorite
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	coffeeID := r.PathValue("coffeeId")

	favorite, err := h.favoriteService.AddFavorite(r.Context(), userID, coffeeID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "add favorite"))
		return
	}

	WriteData(w, http.StatusOK, favorite, map[string]string{
		"coffee":    "/v1/coffees/" + coffeeID,
		"favorites": "/v1/favorites",
	})
}

// Remove handles DELETE /v1/coffees/{coffeeId}/favorite
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.favoriteService.RemoveFavorite(r.Context(), userID, r.PathValue("coffeeId")); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "remove favorite"))
		return
	}

	WriteNoContent(w)
}

// Status handles GET /v1/favorites/{coffeeId}
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	coffeeID := r.PathValue("coffeeId")

	status, err := h.favoriteService.IsFavorite(r.Context(), userID, coffeeID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get favorite status"))
		return
	}

	WriteData(w, http.StatusOK, status, map[string]string{
		"self":   "/v1/favorites/" + coffeeID,
		"coffee": "/v1/coffees/" + coffeeID,
	})
}
