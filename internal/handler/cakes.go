package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/shopspring/decimal"
)

// CakeStore defines the database methods needed by cake handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CakeStore interface {
	ListCakes(ctx context.Context) ([]database.Cake, error)
	CreateCake(ctx context.Context, arg database.CreateCakeParams) (database.Cake, error)
}

// CakeHandler handles the cake type reference list.
type CakeHandler struct {
	store CakeStore
}

// NewCakeHandler creates a new CakeHandler.
func NewCakeHandler(store CakeStore) *CakeHandler {
	return &CakeHandler{store: store}
}

// RegisterRoutes registers cake endpoints on the given Chi router.
// Expected to be mounted at /cakes.
func (h *CakeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

// Column limits, see migrations/000001_init.up.sql.
const (
	maxCakeNameLength = 255
	maxCakeSizeLength = 100
)

// maxMoney is the first value NUMERIC(12,2) cannot hold.
var maxMoney = decimal.New(1, 10)

// --- Request / Response types ---

// Money fields are pointers so a missing field is told apart from zero.
type createCakeRequest struct {
	Name      string           `json:"name"`
	Size      string           `json:"size"`
	BaseCost  *decimal.Decimal `json:"baseCost"`
	BasePrice *decimal.Decimal `json:"basePrice"`
}

type cakeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	BaseCost  string    `json:"baseCost"`
	BasePrice string    `json:"basePrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCakeResponse(c database.Cake) cakeResponse {
	return cakeResponse{
		ID:        c.ID,
		Name:      c.Name,
		Size:      c.Size,
		BaseCost:  numericToString(c.BaseCost),
		BasePrice: numericToString(c.BasePrice),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

// --- Handlers ---

// List returns every cake type sorted by name.
func (h *CakeHandler) List(w http.ResponseWriter, r *http.Request) {
	cakes, err := h.store.ListCakes(r.Context())
	if err != nil {
		log.Printf("ERROR: list cakes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch cakes")
		return
	}

	resp := make([]cakeResponse, len(cakes))
	for i, c := range cakes {
		resp[i] = toCakeResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a cake type.
func (h *CakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Size = strings.TrimSpace(req.Size)
	if req.Name == "" || req.Size == "" || req.BaseCost == nil || req.BasePrice == nil {
		writeError(w, http.StatusBadRequest, "name, size, baseCost and basePrice are required")
		return
	}
	if utf8.RuneCountInString(req.Name) > maxCakeNameLength || utf8.RuneCountInString(req.Size) > maxCakeSizeLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("name must be at most %d and size at most %d characters", maxCakeNameLength, maxCakeSizeLength))
		return
	}
	if req.BaseCost.IsNegative() || req.BasePrice.IsNegative() {
		writeError(w, http.StatusBadRequest, "baseCost and basePrice must not be negative")
		return
	}
	if !fitsMoneyColumn(*req.BaseCost) || !fitsMoneyColumn(*req.BasePrice) {
		writeError(w, http.StatusBadRequest, "baseCost and basePrice must be below 10000000000 with at most 2 decimal places")
		return
	}

	cake, err := h.store.CreateCake(r.Context(), database.CreateCakeParams{
		Name:      req.Name,
		Size:      req.Size,
		BaseCost:  decimalToNumeric(*req.BaseCost),
		BasePrice: decimalToNumeric(*req.BasePrice),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "cake name already exists")
			return
		}
		log.Printf("ERROR: create cake: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create cake")
		return
	}

	writeJSON(w, http.StatusCreated, toCakeResponse(cake))
}

// fitsMoneyColumn reports whether d is stored by NUMERIC(12,2) without
// rounding or overflow.
func fitsMoneyColumn(d decimal.Decimal) bool {
	return d.Abs().LessThan(maxMoney) && d.Equal(d.Round(2))
}
