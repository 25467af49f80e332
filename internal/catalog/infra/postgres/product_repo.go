package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/solestride/shoe-shop/internal/catalog/app"
	"github.com/solestride/shoe-shop/internal/catalog/domain"
)

const productColumns = `id, name, description, price, image_url, discount, category,
	sizes, colors, in_stock, featured, stock_quantity, rating, review_count,
	created_at, updated_at`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

var _ app.ProductRepo = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	id := uuid.New()

	query := `INSERT INTO products
		(id, name, description, price, image_url, discount, category, sizes, colors,
		 in_stock, featured, stock_quantity, rating, review_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		id, p.Name, p.Description, p.Price, p.ImageURL, p.Discount, p.Category,
		pq.Array(p.Sizes), pq.Array(p.Colors),
		p.InStock, p.Featured, p.StockQuantity, p.Rating, p.ReviewCount,
	)

	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, prodID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE featured ORDER BY created_at DESC`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, category)
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	prodID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	query := `UPDATE products SET
		name = $2, description = $3, price = $4, image_url = $5, discount = $6,
		category = $7, sizes = $8, colors = $9, in_stock = $10, featured = $11,
		stock_quantity = $12, rating = $13, review_count = $14, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		prodID, p.Name, p.Description, p.Price, p.ImageURL, p.Discount,
		p.Category, pq.Array(p.Sizes), pq.Array(p.Colors), p.InStock, p.Featured,
		p.StockQuantity, p.Rating, p.ReviewCount,
	)

	updated, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return updated, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, prodID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) SetStock(ctx context.Context, id string, quantity int32) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	query := `UPDATE products SET
		stock_quantity = $2, in_stock = $2 > 0, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, prodID, quantity))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p      domain.Product
		id     uuid.UUID
		sizes  pq.Float64Array
		colors pq.StringArray
	)

	err := row.Scan(
		&id, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Discount,
		&p.Category, &sizes, &colors, &p.InStock, &p.Featured,
		&p.StockQuantity, &p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, err
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}

	p.ID = id.String()
	p.Sizes = sizes
	p.Colors = colors
	return p, nil
}
