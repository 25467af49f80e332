package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestride/shoe-shop/internal/order/app"
	"github.com/solestride/shoe-shop/internal/order/domain"
)

var (
	orderCols = []string{
		"id", "customer_name", "customer_email", "order_date", "status",
		"subtotal", "shipping_cost", "tax", "total_amount", "shipping_address",
		"payment_method", "tracking_number", "delivery_date", "created_at", "updated_at",
	}
	orderItemCols = []string{"product_id", "name", "price", "quantity", "size", "color"}
)

func orderRow(id uuid.UUID, status domain.Status) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(orderCols).AddRow(
		id, "Ada Lovelace", "ada@example.com", now, int32(status),
		"389.99", "10.00", "31.20", "431.19", "1 Analytical Way",
		"card", "", nil, now, now,
	)
}

func expectOrderFetch(mock sqlmock.Sqlmock, id uuid.UUID, status domain.Status, items *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(orderRow(id, status))
	mock.ExpectQuery(`SELECT (.+) FROM order_items WHERE order_id = \$1`).
		WithArgs(id).
		WillReturnRows(items)
}

func TestOrderRepoGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	ctx := context.Background()

	t.Run("found with items", func(t *testing.T) {
		id := uuid.New()
		productID := uuid.New()
		items := sqlmock.NewRows(orderItemCols).
			AddRow(productID, "Trail Runner", "150.00", int32(2), "9", "Black")
		expectOrderFetch(mock, id, domain.StatusProcessing, items)

		order, err := repo.Get(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, id.String(), order.ID)
		assert.Equal(t, domain.StatusProcessing, order.Status)
		assert.Nil(t, order.DeliveryDate)
		require.Len(t, order.Items, 1)
		assert.Equal(t, productID.String(), order.Items[0].ProductID)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("431.19")))
	})

	t.Run("missing order", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.Get(ctx, id.String())
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateOrderTx(t *testing.T) {
	ctx := context.Background()

	draft := domain.Order{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		OrderDate:       time.Now().UTC(),
		Status:          domain.StatusProcessing,
		Subtotal:        decimal.RequireFromString("389.99"),
		ShippingCost:    decimal.RequireFromString("10.00"),
		Tax:             decimal.RequireFromString("31.20"),
		TotalAmount:     decimal.RequireFromString("431.19"),
		ShippingAddress: "1 Analytical Way",
		PaymentMethod:   "card",
		Items: []domain.OrderItem{
			{ProductID: uuid.NewString(), Name: "Trail Runner", Price: decimal.RequireFromString("150.00"), Quantity: 2, Size: "9", Color: "Black"},
		},
	}

	t.Run("commits order and items", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOrderRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// CreateOrderTx re-reads the committed row.
		mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
			WillReturnRows(orderRow(uuid.New(), domain.StatusProcessing))
		mock.ExpectQuery(`SELECT (.+) FROM order_items WHERE order_id = \$1`).
			WillReturnRows(sqlmock.NewRows(orderItemCols).
				AddRow(uuid.New(), "Trail Runner", "150.00", int32(2), "9", "Black"))

		order, err := repo.CreateOrderTx(ctx, draft)
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Len(t, order.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on item insert failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOrderRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(ctx, draft)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepoUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	ctx := context.Background()

	t.Run("updates and reloads", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`)).
			WithArgs(id, domain.StatusShipped).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectOrderFetch(mock, id, domain.StatusShipped, sqlmock.NewRows(orderItemCols))

		order, err := repo.UpdateStatus(ctx, id.String(), domain.StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusShipped, order.Status)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`)).
			WithArgs(id, domain.StatusShipped).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateStatus(ctx, id.String(), domain.StatusShipped)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)
	ctx := context.Background()

	t.Run("aggregates", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(domain.StatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).
				AddRow(int64(5), "1200.50"))
		mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM orders GROUP BY status ORDER BY status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow(int32(1), int64(3)).
				AddRow(int32(4), int64(2)))

		stats, err := repo.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalOrders)
		assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("1200.50")))
		require.Len(t, stats.OrdersByStatus, 2)
		assert.Equal(t, domain.StatusProcessing, stats.OrdersByStatus[0].Status)
		assert.Equal(t, int64(3), stats.OrdersByStatus[0].Count)
		assert.Equal(t, domain.StatusCancelled, stats.OrdersByStatus[1].Status)
	})

	t.Run("empty table coalesces to zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(domain.StatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).
				AddRow(int64(0), "0"))
		mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM orders GROUP BY status ORDER BY status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))

		stats, err := repo.Statistics(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalOrders)
		assert.True(t, stats.TotalRevenue.IsZero())
		assert.NotNil(t, stats.OrdersByStatus)
		assert.Empty(t, stats.OrdersByStatus)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
