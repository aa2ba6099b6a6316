package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Rating      decimal.Decimal `json:"rating"`
	ImageURL    *string         `json:"image_url"`
	Sizes       []SizeStock     `json:"sizes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SizeStock is one inventory row of a product: quantity on hand for a size.
type SizeStock struct {
	Size     string `json:"size"`
	Quantity int    `json:"stock"`
}
