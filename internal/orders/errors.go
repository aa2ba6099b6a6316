package orders

import "fmt"

// ItemError reports a malformed checkout item and the field that failed.
type ItemError struct {
	Index int
	Field string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("invalid item at index %d: bad %s", e.Index, e.Field)
}

// NotFoundError means no inventory row exists for the (product, size) pair.
type NotFoundError struct {
	ProductID int64
	Size      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d size %q not found", e.ProductID, e.Size)
}

// InsufficientStockError carries the quantity still available so the client
// can adjust the request.
type InsufficientStockError struct {
	ProductID int64
	Size      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d size %q (available: %d)", e.ProductID, e.Size, e.Available)
}
