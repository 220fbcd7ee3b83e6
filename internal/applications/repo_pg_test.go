package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateNullsOptionalColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	app := Application{
		ID:        "app-1",
		UserID:    "guest:a",
		Company:   "Acme",
		Position:  "Engineer",
		Status:    StatusApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO job_applications").
		WithArgs(
			app.ID,
			app.UserID,
			app.Company,
			app.Position,
			nil, // job_description
			app.Status,
			app.Location,
			app.Notes,
			nil, // applied_at
			app.CreatedAt,
			app.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM job_applications").
		WithArgs("guest:a", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "company", "position", "job_description",
			"status", "location", "notes", "applied_at", "created_at", "updated_at",
		}))

	_, err = repo.GetByID(context.Background(), "guest:a", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE job_applications").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Application{
		ID:      "app-1",
		UserID:  "guest:b",
		Company: "Acme",
		Status:  StatusOffer,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM job_applications").
		WithArgs("guest:a", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "guest:a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT status, COUNT").
		WithArgs("guest:a").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("applied", 3).
			AddRow("rejected", 1))

	counts, err := repo.CountByStatus(context.Background(), "guest:a")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[StatusApplied] != 3 || counts[StatusRejected] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
