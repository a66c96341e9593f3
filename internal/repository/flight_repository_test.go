package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

func TestFlightCreateLinksCrewInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO flights").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO flight_crews").
		WithArgs(uint64(5), uint64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO flight_crews").
		WithArgs(uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	f := &model.Flight{
		RouteID:       1,
		AirplaneID:    4,
		DepartureTime: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), f, []uint64{2, 3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.ID != 5 {
		t.Fatalf("expected id 5, got %d", f.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFlightGetByIDCarriesCabinLayout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewFlightRepo(db)

	cols := []string{"id", "route_id", "airplane_id", "departure_time", "arrival_time",
		"source", "destination", "distance", "airplane", "seat_rows", "seats_per_row"}
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM flights f").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, 4, dep, arr, "Heathrow", "Schiphol", 371, "B738-01", 32, 6))

	row, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.AirplaneRows != 32 || row.SeatsPerRow != 6 {
		t.Fatalf("unexpected layout: rows=%d seats=%d", row.AirplaneRows, row.SeatsPerRow)
	}
	if row.SourceName != "Heathrow" || row.DestinationName != "Schiphol" {
		t.Fatalf("unexpected endpoints: %s %s", row.SourceName, row.DestinationName)
	}
}

func TestFlightUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewFlightRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE flights").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM flights").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	f := &model.Flight{ID: 404, RouteID: 1, AirplaneID: 4}
	err = repo.Update(context.Background(), f, nil)
	if !errors.Is(err, ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}
}
