package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solestride/shoe-shop/internal/cart/app"
	"github.com/solestride/shoe-shop/internal/cart/domain"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

var _ app.CartRepo = (*CartRepo)(nil)

const itemsQuery = `SELECT ci.id, ci.product_id, ci.quantity, ci.size, ci.color,
		p.name, p.price, p.image_url, p.stock_quantity
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
	ORDER BY ci.created_at`

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Cart{}, app.ErrNotFound
	}

	var cart domain.Cart
	var cartID uuid.UUID

	row := r.db.QueryRowContext(ctx,
		`SELECT id, total_amount, created_at, updated_at FROM carts WHERE user_id = $1`,
		userUUID,
	)
	err = row.Scan(&cartID, &cart.TotalAmount, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	cart.ID = cartID.String()
	cart.UserID = userID

	rows, err := r.db.QueryContext(ctx, itemsQuery, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it        domain.CartItem
			itemID    uuid.UUID
			productID uuid.UUID
		)
		err := rows.Scan(&itemID, &productID, &it.Quantity, &it.Size, &it.Color,
			&it.Product.Name, &it.Product.Price, &it.Product.ImageURL, &it.Product.StockQuantity)
		if err != nil {
			return domain.Cart{}, err
		}
		it.ID = itemID.String()
		it.ProductID = productID.String()
		it.Product.ID = it.ProductID
		cart.Items = append(cart.Items, it)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := r.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrNotFound) {
		return domain.Cart{}, err
	}

	userUUID, parseErr := uuid.Parse(userID)
	if parseErr != nil {
		return domain.Cart{}, parseErr
	}

	_, createErr := r.db.ExecContext(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1, $2)`,
		uuid.New(), userUUID,
	)
	if createErr == nil {
		return r.Get(ctx, userID)
	}

	// Someone else created the cart concurrently; the unique user_id
	// constraint guarantees a single active cart, so just re-get.
	if isUniqueViolation(createErr) {
		return r.Get(ctx, userID)
	}

	return domain.Cart{}, createErr
}

func (r *CartRepo) InsertItem(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return err
	}
	itemUUID, err := uuid.Parse(item.ID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, quantity, size, color)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		itemUUID, cartUUID, productUUID, item.Quantity, item.Size, item.Color,
	)
	return err
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int32) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE cart_id = $1 AND id = $2`,
		cartUUID, itemUUID, quantity,
	)
	return err
}

// RemoveItem deletes the line if present. Deleting an absent item affects
// zero rows and is not an error.
func (r *CartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		// A malformed item id cannot match anything; treat as absent.
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`,
		cartUUID, itemUUID,
	)
	return err
}

func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartUUID)
	return err
}

func (r *CartRepo) SetTotal(ctx context.Context, cartID string, total decimal.Decimal) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE carts SET total_amount = $2, updated_at = now() WHERE id = $1`,
		cartUUID, total,
	)
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
