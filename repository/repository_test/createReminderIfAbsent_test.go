package repository_test_test

import (
	"testing"
	"time"

	"health_record_ms/domain"
	"health_record_ms/repository"
	"health_record_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateReminderIfAbsent_Inserts(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reminders" .* ON CONFLICT \("dedupe_hash"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	repo := repository.NewReminderRepository()
	entity := &domain.Reminder{
		UserID:     1,
		Kind:       "medicine",
		SourceID:   5,
		DueAt:      time.Now(),
		Message:    "Time to take Aspirin",
		DedupeHash: "medicine:5:2026-01-02T08:00:00Z",
	}
	created, err := repo.CreateIfAbsent(conn, entity)

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(42), entity.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The second insert with the same dedupe hash hits the unique index and
// reports false instead of producing a duplicate reminder.
func TestCreateReminderIfAbsent_Duplicate(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reminders" .* ON CONFLICT \("dedupe_hash"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	repo := repository.NewReminderRepository()
	created, err := repo.CreateIfAbsent(conn, &domain.Reminder{
		UserID:     1,
		Kind:       "medicine",
		SourceID:   5,
		DueAt:      time.Now(),
		DedupeHash: "medicine:5:2026-01-02T08:00:00Z",
	})

	assert.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
