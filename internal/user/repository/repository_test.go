package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"tour-booking-api/internal/database"
	"tour-booking-api/internal/user/model"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(&database.Database{DB: gormDB}), mock
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "active"}).
		AddRow(userID, "Alice Doe", "alice@example.com", "user", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email`).
		WithArgs("alice@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByResetToken_UnknownHashIsInvalid(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE password_reset_token`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByResetToken(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, appErrors.ErrInvalidResetToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByResetToken_MatchesStoredHash(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "password_reset_token", "active"}).
		AddRow(userID, "deadbeef", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE password_reset_token`).
		WithArgs("deadbeef", 1).
		WillReturnRows(rows)

	user, err := repo.GetByResetToken(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_DuplicateEmailConflicts(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`))

	err := repo.UpdateProfile(context.Background(), &model.User{
		ID:    uuid.New(),
		Name:  "Alice Doe",
		Email: "taken@example.com",
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_MissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(context.Background(), &model.User{
		ID:    uuid.New(),
		Name:  "Alice Doe",
		Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword_ClearsResetFields(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "users" SET .*"password_reset_token"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), uuid.New(), "$2a$12$hash", time.Now())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetResetToken_MissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetResetToken(context.Background(), uuid.New(), "deadbeef", time.Now().Add(10*time.Minute))
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "users" SET .*"active"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
