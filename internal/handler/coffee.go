package handler

import (
	"context"
	"net/http"

	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/model"
)

// CoffeeService is the catalog surface the coffee handler needs
type CoffeeService interface {
	ListCoffees(ctx context.Context, limit, offset int) ([]*model.Coffee, error)
	GetCoffee(ctx context.Context, id string) (*model.Coffee, error)
	SearchCoffees(ctx context.Context, term string, limit int) ([]*model.Coffee, error)
	CreateCoffee(ctx context.Context, userID string, req *model.CreateCoffeeRequest) (*model.Coffee, error)
	ListFlavorNotes(ctx context.Context) ([]*model.FlavorNote, error)
	CreateFlavorNote(ctx context.Context, req *model.CreateFlavorNoteRequest) (*model.FlavorNote, error)
	GetCoffeeFlavorNotes(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error)
}

// CoffeeHandler handles catalog and flavor note endpoints
type CoffeeHandler struct {
	coffeeService CoffeeService
}

// NewCoffeeHandler creates a new coffee handler
func NewCoffeeHandler(coffeeService CoffeeService) *CoffeeHandler {
	return &CoffeeHandler{coffeeService: coffeeService}
}

// List handles GET /v1/coffees
func (h *CoffeeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", model.DefaultCoffeePageSize)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}
	if limit <= 0 || limit > model.MaxCoffeePageSize {
		limit = model.DefaultCoffeePageSize
	}
	if offset < 0 {
		offset = 0
	}

	coffees, err := h.coffeeService.ListCoffees(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list coffees"))
		return
	}

	WriteCollection(w, http.StatusOK, coffees, &PaginationInfo{
		Limit:   limit,
		Offset:  offset,
		HasMore: len(coffees) == limit,
	}, map[string]string{
		"self": "/v1/coffees",
	})
}

// Search handles GET /v1/coffees/search?q=
func (h *CoffeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", model.DefaultCoffeePageSize)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}

	coffees, err := h.coffeeService.SearchCoffees(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "search coffees"))
		return
	}

	WriteCollection(w, http.StatusOK, coffees, nil, map[string]string{
		"self": "/v1/coffees/search",
	})
}

// Get handles GET /v1/coffees/{coffeeId}
func (h *CoffeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.PathValue("coffeeId")

	coffee, err := h.coffeeService.GetCoffee(r.Context(), coffeeID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get coffee"))
		return
	}

	WriteData(w, http.StatusOK, coffee, coffeeLinks(coffee.ID))
}

// Create handles POST /v1/coffees
func (h *CoffeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCoffeeRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if problem := validateRequest(&req); problem != nil {
		WriteError(w, problem)
		return
	}

	coffee, err := h.coffeeService.CreateCoffee(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create coffee"))
		return
	}

	w.Header().Set("Location", "/v1/coffees/"+coffee.ID)
	WriteData(w, http.StatusCreated, coffee, coffeeLinks(coffee.ID))
}

// GetFlavorNotes handles GET /v1/coffees/{coffeeId}/flavor-notes.
// Notes are aggregated from the coffee's reviews.
func (h *CoffeeHandler) GetFlavorNotes(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.PathValue("coffeeId")

	notes, err := h.coffeeService.GetCoffeeFlavorNotes(r.Context(), coffeeID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get coffee flavor notes"))
		return
	}

	WriteCollection(w, http.StatusOK, notes, nil, map[string]string{
		"self":   "/v1/coffees/" + coffeeID + "/flavor-notes",
		"coffee": "/v1/coffees/" + coffeeID,
	})
}

// ListFlavorNotes handles GET /v1/flavor-notes
func (h *CoffeeHandler) ListFlavorNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.coffeeService.ListFlavorNotes(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list flavor notes"))
		return
	}

	WriteCollection(w, http.StatusOK, notes, nil, map[string]string{
		"self": "/v1/flavor-notes",
	})
}

// CreateFlavorNote handles POST /v1/flavor-notes
func (h *CoffeeHandler) CreateFlavorNote(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateFlavorNoteRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if problem := validateRequest(&req); problem != nil {
		WriteError(w, problem)
		return
	}

	note, err := h.coffeeService.CreateFlavorNote(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create flavor note"))
		return
	}

	WriteData(w, http.StatusCreated, note, map[string]string{
		"collection": "/v1/flavor-notes",
	})
}

func coffeeLinks(coffeeID string) map[string]string {
	base := "/v1/coffees/" + coffeeID
	return map[string]string{
		"self":         base,
		"reviews":      base + "/reviews",
		"rating":       base + "/rating",
		"flavor_notes": base + "/flavor-notes",
		"favorite":     base + "/favorite",
	}
}
