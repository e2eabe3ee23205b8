package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"confdesk/internal/domain"
)

func TestEventRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reg     *domain.EventRegistration
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success returns generated id",
			reg: &domain.EventRegistration{
				UserID: "u-1", EventID: "ev-1",
				Plan: domain.PlanGeneral, Price: 15000, CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WithArgs("u-1", "ev-1", "general", int64(15000), createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-uuid-1"))
			},
		},
		{
			name: "unique violation becomes conflict",
			reg: &domain.EventRegistration{
				UserID: "u-1", EventID: "ev-1",
				Plan: domain.PlanStudent, Price: 8000, CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WithArgs("u-1", "ev-1", "student", int64(8000), createdAt).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrConflict,
		},
		{
			name: "db error passes through",
			reg: &domain.EventRegistration{
				UserID: "u-1", EventID: "ev-1",
				Plan: domain.PlanGeneral, Price: 15000, CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WithArgs("u-1", "ev-1", "general", int64(15000), createdAt).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewEventRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, "reg-uuid-1", tt.reg.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRegistrationRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, user_id, event_id, plan, price, created_at`).
			WithArgs("ev-1", "u-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id", "plan", "price", "created_at"}).
				AddRow("reg-1", "u-1", "ev-1", "workshop", int64(25000), createdAt))

		repo := NewEventRegistrationRepository(db)
		reg, err := repo.GetByEventAndUser(ctx, "ev-1", "u-1")
		require.NoError(t, err)
		require.Equal(t, domain.PlanWorkshop, reg.Plan)
		require.Equal(t, int64(25000), reg.Price)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, user_id, event_id, plan, price, created_at`).
			WithArgs("ev-1", "u-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRegistrationRepository(db)
		_, err = repo.GetByEventAndUser(ctx, "ev-1", "u-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRegistrationRepository_DeleteByEventAndUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_registrations WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no rows is not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_registrations WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error passes through",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_registrations`).
					WithArgs("ev-1", "u-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewEventRegistrationRepository(db)
			err = repo.DeleteByEventAndUser(ctx, "ev-1", "u-1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
