package handler

import (
	"context"
	"net/http"

	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/model"
)

// ReviewService is the review surface the handler needs
type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *model.CreateReviewRequest) (*model.Review, error)
	ListCoffeeReviews(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error)
	ListUserReviews(ctx context.Context, userID string) ([]*model.Review, error)
	GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error)
}

// ReviewHandler handles coffee review endpoints
type ReviewHandler struct {
	reviewService ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create handles POST /v1/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateReviewRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if problem := validateRequest(&req); problem != nil {
		WriteError(w, problem)
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create review"))
		return
	}

	WriteData(w, http.StatusCreated, review, map[string]string{
		"coffee":  "/v1/coffees/" + review.CoffeeID,
		"reviews": "/v1/coffees/" + review.CoffeeID + "/reviews",
	})
}

// ListForCoffee handles GET /v1/coffees/{coffeeId}/reviews
func (h *ReviewHandler) ListForCoffee(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.PathValue("coffeeId")

	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reviews, err := h.reviewService.ListCoffeeReviews(r.Context(), coffeeID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list coffee reviews"))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, &PaginationInfo{
		Limit:   limit,
		Offset:  offset,
		HasMore: len(reviews) == limit,
	}, map[string]string{
		"self":   "/v1/coffees/" + coffeeID + "/reviews",
		"coffee": "/v1/coffees/" + coffeeID,
	})
}

// ListForUser handles GET /v1/users/{userId}/reviews
func (h *ReviewHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	reviews, err := h.reviewService.ListUserReviews(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list user reviews"))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, nil, map[string]string{
		"self": "/v1/users/" + userID + "/reviews",
	})
}

// GetRating handles GET /v1/coffees/{coffeeId}/rating
func (h *ReviewHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.PathValue("coffeeId")

	summary, err := h.reviewService.GetRatingSummary(r.Context(), coffeeID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get rating summary"))
		return
	}

	WriteData(w, http.StatusOK, summary, map[string]string{
		"self":   "/v1/coffees/" + coffeeID + "/rating",
		"coffee": "/v1/coffees/" + coffeeID,
	})
}
