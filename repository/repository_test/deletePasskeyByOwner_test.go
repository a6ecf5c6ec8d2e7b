package repository_test_test

import (
	"testing"

	"health_record_ms/repository"
	"health_record_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDeletePasskeyByOwner_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	credID := []byte{0x0a, 0x0b}
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_passkeys" WHERE credential_id = \$1 AND user_id = \$2`).
		WithArgs(credID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewUserRepository()
	err := repo.DeletePasskeyByOwner(conn, credID, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting another user's credential must not report success.
func TestDeletePasskeyByOwner_WrongOwner(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	credID := []byte{0x0a, 0x0b}
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_passkeys" WHERE credential_id = \$1 AND user_id = \$2`).
		WithArgs(credID, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := repository.NewUserRepository()
	err := repo.DeletePasskeyByOwner(conn, credID, 9)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
