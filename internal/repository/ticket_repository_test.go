package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

func newMock(t *testing.T) (*TicketRepo, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return NewTicketRepo(db), mock, func() { db.Close() }
}

func uptr(v uint64) *uint64 { return &v }

func TestTicketCreatePopulatesID(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(4), uint64(9), uint32(2), uint32(3)).
		WillReturnResult(sqlmock.NewResult(17, 1))

	tk := &model.Ticket{OrderID: uptr(4), FlightID: uptr(9), Row: 2, Seat: 3}
	if err := repo.Create(context.Background(), tk); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tk.ID != 17 {
		t.Fatalf("expected id 17, got %d", tk.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketCreateDuplicateSeat(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry '9-2-3-4' for key 'uq_tickets_seat'"))

	tk := &model.Ticket{OrderID: uptr(4), FlightID: uptr(9), Row: 2, Seat: 3}
	err := repo.Create(context.Background(), tk)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestTicketGetByIDAndOwnerConcealsForeignTicket(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	// The ticket exists but belongs to someone else's order; the scoped
	// query matches nothing and the caller sees a plain not-found.
	mock.ExpectQuery("FROM tickets t").
		WithArgs(uint64(12), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "flight_id", "seat_row", "seat"}))

	_, err := repo.GetByIDAndOwner(context.Background(), 12, 7)
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketGetByIDAndOwner(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "order_id", "flight_id", "seat_row", "seat"}).
		AddRow(12, 4, 9, 2, 3)
	mock.ExpectQuery("FROM tickets t").
		WithArgs(uint64(12), uint64(7)).
		WillReturnRows(rows)

	tk, err := repo.GetByIDAndOwner(context.Background(), 12, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tk.Row != 2 || tk.Seat != 3 {
		t.Fatalf("unexpected seat position: row=%d seat=%d", tk.Row, tk.Seat)
	}
	if tk.OrderID == nil || *tk.OrderID != 4 {
		t.Fatalf("unexpected order ref: %v", tk.OrderID)
	}
}

func TestTicketSeatMap(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "seat_row", "seat"}).
		AddRow(1, 1, 1).
		AddRow(3, 1, 2).
		AddRow(2, 2, 1)
	mock.ExpectQuery("FROM tickets").
		WithArgs(uint64(9)).
		WillReturnRows(rows)

	seats, err := repo.SeatMap(context.Background(), 9)
	if err != nil {
		t.Fatalf("seat map: %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(seats))
	}
	if seats[1].Row != 1 || seats[1].Seat != 2 {
		t.Fatalf("unexpected second seat: %+v", seats[1])
	}
}

func TestTicketDeleteMissing(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM tickets").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}
