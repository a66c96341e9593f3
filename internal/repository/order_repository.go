package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrOrderNotFound is returned when an order lookup yields no rows.  Owner
// scoped lookups deliberately return the same error for rows owned by
// someone else, so out-of-scope ids are indistinguishable from missing ids.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo provides access to the orders table.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts an order owned by userID and reads the row back so
// CreatedAt carries the database timestamp.
func (r *OrderRepo) Create(ctx context.Context, userID uint64) (*model.Order, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var o model.Order
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ?`, uint64(id)).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves an order regardless of owner.  Staff callers use this.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetByIDAndOwner retrieves an order only if it belongs to the given user.
func (r *OrderRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListByOwner returns the orders created by userID, newest first.
func (r *OrderRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Order, error) {
	return r.list(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE user_id = ? ORDER BY id DESC`, userID)
}

// ListAll returns every order, newest first.  Staff callers only.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT id, user_id, created_at FROM orders ORDER BY id DESC`)
}

func (r *OrderRepo) list(ctx context.Context, q string, args ...any) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reassign moves an order to another user (or detaches it when userID is
// nil).  Staff callers only.
func (r *OrderRepo) Reassign(ctx context.Context, id uint64, userID *uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET user_id = ? WHERE id = ?`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an order row.  Tickets referencing the order keep their
// rows with the link cleared (ON DELETE SET NULL).
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
