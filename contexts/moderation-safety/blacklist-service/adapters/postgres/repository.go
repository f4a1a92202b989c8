package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
	domainerrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateItem(ctx context.Context, item entities.BlacklistItem) error {
	row := blacklistItemModel{
		Name:      item.Name,
		CreatedAt: item.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, name string) (entities.BlacklistItem, bool, error) {
	var row blacklistItemModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BlacklistItem{}, false, nil
		}
		return entities.BlacklistItem{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListItems(ctx context.Context) ([]entities.BlacklistItem, error) {
	var rows []blacklistItemModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.BlacklistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type blacklistItemModel struct {
	Name      string    `gorm:"column:name;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (blacklistItemModel) TableName() string {
	return "blacklist_items"
}

func (m blacklistItemModel) toEntity() entities.BlacklistItem {
	return entities.BlacklistItem{
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
