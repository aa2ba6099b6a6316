package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Rating      decimal.Decimal
	ImageURL    *string
	Sizes       []domain.SizeStock
}

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists the product and seeds its inventory rows in one
// transaction. Re-creating an existing (product, size) pair resets its
// quantity to the given value.
func (r *ProductRepository) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, rating, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, in.Name, in.Description, in.Price, in.Rating, in.ImageURL).Scan(&id)
	if err != nil {
		return nil, err
	}

	if len(in.Sizes) > 0 {
		sizes := make([]string, len(in.Sizes))
		quantities := make([]int64, len(in.Sizes))
		for i, s := range in.Sizes {
			sizes[i] = s.Size
			quantities[i] = int64(s.Quantity)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO inventory (product_id, size, quantity)
			SELECT $1, UNNEST($2::text[]), UNNEST($3::int[])
			ON CONFLICT (product_id, size) DO UPDATE SET quantity = EXCLUDED.quantity
		`, id, pq.Array(sizes), pq.Array(quantities))
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// FindAll returns a newest-first page of products, each annotated with its
// current inventory.
func (r *ProductRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, rating, image_url, created_at
		FROM products
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	productMap := make(map[int64]*domain.Product)
	var productIDs []int64

	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Rating, &product.ImageURL, &product.CreatedAt); err != nil {
			return nil, err
		}
		product.Sizes = []domain.SizeStock{}
		productMap[product.ID] = &product
		productIDs = append(productIDs, product.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(productIDs) == 0 {
		return []domain.Product{}, nil
	}

	sizeRows, err := r.db.QueryContext(ctx, `
		SELECT product_id, size, quantity
		FROM inventory
		WHERE product_id = ANY($1)
		ORDER BY size
	`, pq.Array(productIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = sizeRows.Close() }()

	for sizeRows.Next() {
		var productID int64
		var size domain.SizeStock
		if err := sizeRows.Scan(&productID, &size.Size, &size.Quantity); err != nil {
			return nil, err
		}
		product := productMap[productID]
		product.Sizes = append(product.Sizes, size)
	}

	if err := sizeRows.Err(); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		products = append(products, *productMap[id])
	}

	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product := &domain.Product{Sizes: []domain.SizeStock{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, rating, image_url, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Rating, &product.ImageURL, &product.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT size, quantity
		FROM inventory
		WHERE product_id = $1
		ORDER BY size
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var size domain.SizeStock
		if err := rows.Scan(&size.Size, &size.Quantity); err != nil {
			return nil, err
		}
		product.Sizes = append(product.Sizes, size)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return product, nil
}
