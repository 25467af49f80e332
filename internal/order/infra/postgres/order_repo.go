package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/solestride/shoe-shop/internal/order/app"
	"github.com/solestride/shoe-shop/internal/order/domain"
)

const orderColumns = `id, customer_name, customer_email, order_date, status,
	subtotal, shipping_cost, tax, total_amount, shipping_address,
	payment_method, tracking_number, delivery_date, created_at, updated_at`

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

var _ app.OrderRepo = (*OrderRepo)(nil)

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// CreateOrderTx inserts the order and its item snapshots atomically.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	orderID := uuid.New()

	err := r.execTX(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders
			 (id, customer_name, customer_email, order_date, status, subtotal,
			  shipping_cost, tax, total_amount, shipping_address, payment_method)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			orderID, order.CustomerName, order.CustomerEmail, order.OrderDate,
			order.Status, order.Subtotal, order.ShippingCost, order.Tax,
			order.TotalAmount, order.ShippingAddress, order.PaymentMethod,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, it := range order.Items {
			productUUID, err := uuid.Parse(it.ProductID)
			if err != nil {
				return fmt.Errorf("item %d: invalid product id: %w", i, err)
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (id, order_id, product_id, name, price, quantity, size, color)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				uuid.New(), orderID, productUUID, it.Name, it.Price, it.Quantity, it.Size, it.Color,
			)
			if err != nil {
				return fmt.Errorf("insert item %d: %w", i, err)
			}
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return r.Get(ctx, orderID.String())
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`
	return r.queryOrders(ctx, query)
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, status)
}

func (r *OrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, start, end)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return domain.Order{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, err
	}
	if n == 0 {
		return domain.Order{}, app.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Statistics aggregates in one round trip per figure. Revenue excludes
// cancelled orders and coalesces to zero when nothing matches.
func (r *OrderRepo) Statistics(ctx context.Context) (domain.Statistics, error) {
	stats := domain.Statistics{OrdersByStatus: []domain.StatusCount{}}

	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(total_amount) FILTER (WHERE status <> $1), 0)
		 FROM orders`,
		domain.StatusCancelled,
	)
	if err := row.Scan(&stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return domain.Statistics{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`,
	)
	if err != nil {
		return domain.Statistics{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return domain.Statistics{}, err
		}
		stats.OrdersByStatus = append(stats.OrdersByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return domain.Statistics{}, err
	}

	return stats, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		orderID, err := uuid.Parse(out[i].ID)
		if err != nil {
			return nil, err
		}
		items, err := r.loadItems(ctx, orderID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}

	return out, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, name, price, quantity, size, color
		 FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			it        domain.OrderItem
			productID uuid.UUID
		)
		if err := rows.Scan(&productID, &it.Name, &it.Price, &it.Quantity, &it.Size, &it.Color); err != nil {
			return nil, err
		}
		it.ProductID = productID.String()
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order        domain.Order
		id           uuid.UUID
		deliveryDate sql.NullTime
	)

	err := row.Scan(
		&id, &order.CustomerName, &order.CustomerEmail, &order.OrderDate,
		&order.Status, &order.Subtotal, &order.ShippingCost, &order.Tax,
		&order.TotalAmount, &order.ShippingAddress, &order.PaymentMethod,
		&order.TrackingNumber, &deliveryDate, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	order.ID = id.String()
	if deliveryDate.Valid {
		t := deliveryDate.Time
		order.DeliveryDate = &t
	}
	return order, nil
}
