package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestValidateRefreshLiveToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), nil))

	uid, err := repo.ValidateRefresh(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user 7, got %d", uid)
	}
}

func TestValidateRefreshRevokedToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), time.Now().UTC()))

	_, err = repo.ValidateRefresh(context.Background(), "abc123")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for revoked token, got %v", err)
	}
}

func TestValidateRefreshExpiredToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(-time.Minute), nil))

	_, err = repo.ValidateRefresh(context.Background(), "abc123")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for expired token, got %v", err)
	}
}
