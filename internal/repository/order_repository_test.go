package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOrderCreateReadsBackCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewOrderRepo(db)

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(21, 7, created))

	o, err := repo.Create(context.Background(), 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID != 21 || !o.CreatedAt.Equal(created) {
		t.Fatalf("unexpected order: %+v", o)
	}
}

func TestOrderGetByIDAndOwnerConcealsForeignOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(21), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	_, err = repo.GetByIDAndOwner(context.Background(), 21, 99)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderReassignDetachesOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewOrderRepo(db)

	mock.ExpectExec("UPDATE orders SET user_id").
		WithArgs(nil, uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Reassign(context.Background(), 21, nil); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
