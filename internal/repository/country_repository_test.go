package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

func TestCountryCreateDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewCountryRepo(db)

	mock.ExpectExec("INSERT INTO countries").
		WithArgs("France").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry 'France' for key 'uq_countries_name'"))

	err = repo.Create(context.Background(), &model.Country{Name: "France"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCountryUpdateNoOpRenameIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewCountryRepo(db)

	// MySQL reports zero affected rows when the new value equals the old
	// one; the repo re-checks existence before deciding the row is gone.
	mock.ExpectExec("UPDATE countries").
		WithArgs("France", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name FROM countries").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "France"))

	if err := repo.Update(context.Background(), &model.Country{ID: 3, Name: "France"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestCountryUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewCountryRepo(db)

	mock.ExpectExec("UPDATE countries").
		WithArgs("France", uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name FROM countries").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	err = repo.Update(context.Background(), &model.Country{ID: 404, Name: "France"})
	if !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}
