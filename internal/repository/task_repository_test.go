package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/models"
)

// newMockTaskRepository creates a GormTaskRepository with a mocked SQL connection
func newMockTaskRepository(t *testing.T) (TaskRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock, mockDB
}

func TestGormTaskRepository_CountByStatus(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE status = \$1`).
		WithArgs(string(models.TaskStatusPending)).
		WillReturnRows(rows)

	count, err := repo.CountByStatus(models.TaskStatusPending)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CountByPriority(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(5)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE priority = \$1`).
		WithArgs(string(models.TaskPriorityHigh)).
		WillReturnRows(rows)

	count, err := repo.CountByPriority(models.TaskPriorityHigh)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_MarkOverdue(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE "tasks" SET "status"=\$1,"updated_at"=\$2 WHERE status IN \(\$3,\$4\) AND due_date < \$5`).
		WithArgs(
			string(models.TaskStatusOverdue),
			sqlmock.AnyArg(),
			string(models.TaskStatusPending),
			string(models.TaskStatusInProgress),
			now,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.MarkOverdue(now)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_Delete(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`DELETE FROM "tasks" WHERE "tasks"\."id" = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
