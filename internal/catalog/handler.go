package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

var maxRating = decimal.NewFromInt(5)

type Handler struct {
	repo   *ProductRepository
	logger *slog.Logger
}

func NewHandler(repo *ProductRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

type sizeInput struct {
	Size     string `json:"size"`
	Quantity *int   `json:"quantity"`
	Stock    *int   `json:"stock"`
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Rating      decimal.Decimal `json:"rating"`
	Image       *string         `json:"image"`
	ImageURL    *string         `json:"image_url"`
	Sizes       []sizeInput     `json:"sizes"`
}

// validate normalizes the request into repository input, or returns a
// message describing the first offending field.
func (req *createProductRequest) validate() (CreateProductInput, string) {
	in := CreateProductInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Rating:      req.Rating,
	}

	if in.Name == "" {
		return in, "name is required"
	}
	if in.Price.IsNegative() {
		return in, "price must be >= 0"
	}
	if in.Rating.IsNegative() || in.Rating.GreaterThan(maxRating) {
		return in, "rating must be between 0 and 5"
	}

	// clients send either image or image_url; both are fine if they agree
	in.ImageURL = req.ImageURL
	if req.Image != nil {
		if req.ImageURL != nil && *req.ImageURL != *req.Image {
			return in, "image and image_url differ; use image_url"
		}
		in.ImageURL = req.Image
	}

	// duplicate sizes resolve last-write-wins
	index := make(map[string]int)
	for _, s := range req.Sizes {
		size := strings.TrimSpace(s.Size)
		if size == "" {
			return in, "size name is required"
		}

		quantity := 0
		switch {
		case s.Stock != nil:
			quantity = *s.Stock
		case s.Quantity != nil:
			quantity = *s.Quantity
		}
		if quantity < 0 {
			return in, "size quantity must be >= 0"
		}

		if i, ok := index[size]; ok {
			in.Sizes[i].Quantity = quantity
			continue
		}
		index[size] = len(in.Sizes)
		in.Sizes = append(in.Sizes, domain.SizeStock{Size: size, Quantity: quantity})
	}

	return in, ""
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, msg := req.validate()
	if msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := h.repo.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("failed to create product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "sizes", len(product.Sizes))
	h.writeJSON(w, http.StatusCreated, map[string]*domain.Product{"product": product})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultLimit)
	if !ok || limit <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	offset, ok := queryInt(r, "offset", defaultOffset)
	if !ok || offset < 0 {
		h.writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	products, err := h.repo.FindAll(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]domain.Product{"products": products})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]*domain.Product{"product": product})
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
