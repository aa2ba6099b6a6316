package orders

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

type CheckoutItem struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type Summary struct {
	OrdersCount int             `json:"orders_count"`
	Total       decimal.Decimal `json:"total"`
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func validateItems(items []CheckoutItem) error {
	for i, it := range items {
		switch {
		case it.ProductID <= 0:
			return &ItemError{Index: i, Field: "productId"}
		case strings.TrimSpace(it.Size) == "":
			return &ItemError{Index: i, Field: "size"}
		case it.Quantity <= 0:
			return &ItemError{Index: i, Field: "quantity"}
		}
	}
	return nil
}

// Checkout atomically reserves stock for every item and materializes the
// order. It either commits the order header, its line items and all
// inventory decrements together, or rolls back leaving nothing behind.
// userID may be nil; whether guest checkout is allowed is the edge's call.
func (r *OrderRepository) Checkout(ctx context.Context, userID *string, items []CheckoutItem, paymentMethod string) (*domain.Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if paymentMethod == "" {
		paymentMethod = "pending"
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	order := &domain.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Status:        domain.OrderStatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, payment_method, created_at)
		VALUES ($1, $2, 0, $3, $4, $5)
	`, order.ID, order.UserID, order.Status, order.PaymentMethod, order.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Inventory rows are always locked in (product_id, size) order, so two
	// checkouts listing overlapping items differently cannot deadlock.
	locked := make([]CheckoutItem, len(items))
	copy(locked, items)
	for i := range locked {
		locked[i].Size = strings.TrimSpace(locked[i].Size)
	}
	sort.Slice(locked, func(i, j int) bool {
		if locked[i].ProductID != locked[j].ProductID {
			return locked[i].ProductID < locked[j].ProductID
		}
		return locked[i].Size < locked[j].Size
	})

	total := decimal.Zero
	for _, it := range locked {
		var unitPrice decimal.Decimal
		var available int
		err := tx.QueryRowContext(ctx, `
			SELECT p.price, i.quantity
			FROM products p
			JOIN inventory i ON i.product_id = p.id AND i.size = $2
			WHERE p.id = $1
			FOR UPDATE
		`, it.ProductID, it.Size).Scan(&unitPrice, &available)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, &NotFoundError{ProductID: it.ProductID, Size: it.Size}
			}
			return nil, err
		}

		if it.Quantity > available {
			return nil, &InsufficientStockError{ProductID: it.ProductID, Size: it.Size, Available: available}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE inventory SET quantity = quantity - $3
			WHERE product_id = $1 AND size = $2
		`, it.ProductID, it.Size, it.Quantity)
		if err != nil {
			return nil, err
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, size, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, it.ProductID, it.Size, it.Quantity, unitPrice, subtotal)
		if err != nil {
			return nil, err
		}

		order.Items = append(order.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET total = $2 WHERE id = $1`, order.ID, total); err != nil {
		return nil, err
	}
	order.Total = total

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return order, nil
}

// Summary reports the count and combined value of all pending orders.
func (r *OrderRepository) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'pending'
	`).Scan(&s.OrdersCount, &s.Total)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByUser returns the user's orders newest first, each with its line
// items in insertion order.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, status, payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		var uid sql.NullString
		if err := rows.Scan(&order.ID, &uid, &order.Total, &order.Status, &order.PaymentMethod, &order.CreatedAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			order.UserID = &uid.String
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.product_id, p.name, oi.size, oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Size, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}
