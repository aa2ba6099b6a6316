package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/CarlPerezV/babyjo-back/internal/auth"
	"github.com/CarlPerezV/babyjo-back/internal/domain"
	"github.com/CarlPerezV/babyjo-back/internal/messaging"
)

type Handler struct {
	repo     *OrderRepository
	producer *messaging.Producer
	logger   *slog.Logger
}

func NewHandler(repo *OrderRepository, producer *messaging.Producer, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

type checkoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
}

type checkoutResponse struct {
	Order *domain.Order      `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "items are required")
		return
	}

	order, err := h.repo.Checkout(r.Context(), &ident.UserID, req.Items, req.PaymentMethod)
	if err != nil {
		if isDomainError(err) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("checkout failed", "error", err, "user_id", ident.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.producer != nil {
		event := domain.OrderCreatedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Items:     order.Items,
			Total:     order.Total.String(),
			Timestamp: order.CreatedAt,
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			h.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order created", "order_id", order.ID, "user_id", ident.UserID, "total", order.Total)

	items := order.Items
	header := *order
	header.Items = nil
	h.writeJSON(w, http.StatusCreated, checkoutResponse{Order: &header, Items: items})
}

// isDomainError separates checkout validation failures (client fault) from
// storage errors by the failure's type, never by message content.
func isDomainError(err error) bool {
	var itemErr *ItemError
	var notFound *NotFoundError
	var noStock *InsufficientStockError
	return errors.As(err, &itemErr) || errors.As(err, &notFound) || errors.As(err, &noStock)
}

func (h *Handler) HandleMyOrders(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	orders, err := h.repo.ListByUser(r.Context(), ident.UserID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "user_id", ident.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]domain.Order{"orders": orders})
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.repo.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to compute order summary", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
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
