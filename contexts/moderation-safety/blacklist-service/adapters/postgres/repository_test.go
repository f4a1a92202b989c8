package postgresadapter

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
	domainerrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return NewRepository(gdb, nil), mock
}

func TestRepository_CreateItem(t *testing.T) {
	tests := []struct {
		name      string
		execErr   error
		expectErr error
	}{
		{name: "insert succeeds"},
		{name: "duplicate name", execErr: &pgconn.PgError{Code: "23505"}, expectErr: domainerrors.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectBegin()
			exec := mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "blacklist_items"`))
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
				mock.ExpectRollback()
			} else {
				exec.WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			}

			err := repo.CreateItem(context.Background(), entities.BlacklistItem{
				Name:      "spam",
				CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetItem(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blacklist_items" WHERE name = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "created_at"}).AddRow("spam", createdAt))

		item, found, err := repo.GetItem(context.Background(), "spam")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "spam", item.Name)
		assert.True(t, item.CreatedAt.Equal(createdAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing is not an error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blacklist_items" WHERE name = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "created_at"}))

		_, found, err := repo.GetItem(context.Background(), "ham")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blacklist_items"`)).
			WillReturnError(assert.AnError)

		_, _, err := repo.GetItem(context.Background(), "spam")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestRepository_ListItems(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blacklist_items" ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "created_at"}).
			AddRow("casino", now).
			AddRow("spam", now))

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "casino", items[0].Name)
	assert.Equal(t, "spam", items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
