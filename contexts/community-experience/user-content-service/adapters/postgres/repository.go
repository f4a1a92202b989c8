package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
	"simpleq/internal/shared/outbox"
)

const (
	singleAIAnswerIndex = "user_contents_single_ai_answer"
	ldrExpression       = "CASE WHEN likes + dislikes = 0 THEN 0 ELSE likes::float8 / (likes + dislikes) END"
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

func (r *Repository) GetContent(ctx context.Context, contentID string) (entities.UserContent, error) {
	var row contentModel
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.UserContent{}, domainerrors.ErrContentNotFound
		}
		return entities.UserContent{}, err
	}
	items, err := r.withTags(r.db.WithContext(ctx), []contentModel{row})
	if err != nil {
		return entities.UserContent{}, err
	}
	return items[0], nil
}

func (r *Repository) ListTrendingQuestions(ctx context.Context, since time.Time, limit int) ([]entities.UserContent, error) {
	if limit <= 0 {
		limit = services.TrendingLimit
	}
	var rows []contentModel
	if err := r.db.WithContext(ctx).
		Where("content_type = ? AND created_at >= ?", string(entities.ContentTypeQuestion), since.UTC()).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "likes"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "content_id"}, Desc: false}).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return r.withTags(r.db.WithContext(ctx), rows)
}

func (r *Repository) SearchQuestions(ctx context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("content_type = ?", string(entities.ContentTypeQuestion))
		if query := strings.TrimSpace(filter.Query); query != "" {
			pattern := "%" + escapeLike(query) + "%"
			tx = tx.Where(
				"(title ILIKE ? OR content ILIKE ? OR EXISTS (SELECT 1 FROM user_content_tags t WHERE t.content_id = user_contents.content_id AND t.tag ILIKE ?))",
				pattern, pattern, pattern,
			)
		}
		return tx
	}
	return r.listPage(ctx, scope, filter)
}

func (r *Repository) ListAnswers(ctx context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("content_type = ? AND question_id = ?", string(entities.ContentTypeAnswer), filter.QuestionID)
	}
	return r.listPage(ctx, scope, filter)
}

func (r *Repository) CreateQuestionWithOutbox(ctx context.Context, question entities.UserContent, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contentModelFromEntity(question)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariant
			}
			return err
		}

		if len(question.Tags) > 0 {
			tagRows := make([]tagModel, 0, len(question.Tags))
			for position, tag := range question.Tags {
				tagRows = append(tagRows, tagModel{
					ContentID: question.ID,
					Tag:       tag,
					Position:  position,
				})
			}
			if err := tx.Create(&tagRows).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrRepositoryInvariant
				}
				return err
			}
		}

		return createOutboxRow(tx, event, payload)
	})
}

func (r *Repository) CreateAnswerWithOutbox(ctx context.Context, answer entities.UserContent, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contentModelFromEntity(answer)
		if err := tx.Create(&row).Error; err != nil {
			switch {
			case isUniqueViolation(err) && constraintName(err) == singleAIAnswerIndex:
				return domainerrors.ErrAIAnswerExists
			case isUniqueViolation(err):
				return domainerrors.ErrRepositoryInvariant
			case isForeignKeyViolation(err):
				return domainerrors.ErrQuestionNotFound
			}
			return err
		}

		result := tx.Model(&contentModel{}).
			Where("content_id = ? AND content_type = ?", answer.QuestionID, string(entities.ContentTypeQuestion)).
			Updates(map[string]any{
				"answer_count": gorm.Expr("answer_count + ?", 1),
				"updated_at":   answer.CreatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrQuestionNotFound
		}

		return createOutboxRow(tx, event, payload)
	})
}

func (r *Repository) GetRatings(ctx context.Context, userID string, contentIDs []string) (map[string]entities.Rating, error) {
	result := make(map[string]entities.Rating, len(contentIDs))
	if userID == "" || len(contentIDs) == 0 {
		return result, nil
	}
	var rows []ratingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ContentID] = entities.Rating(row.Rating)
	}
	return result, nil
}

func (r *Repository) SetRating(
	ctx context.Context,
	contentID string,
	userID string,
	rating entities.Rating,
	ratedAt time.Time,
) (entities.UserContent, error) {
	var updated entities.UserContent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("content_id = ?", contentID).
			Take(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrContentNotFound
			}
			return err
		}

		previous := entities.RatingNone
		var existing ratingModel
		err := tx.Where("content_id = ? AND user_id = ?", contentID, userID).Take(&existing).Error
		switch {
		case err == nil:
			previous = entities.Rating(existing.Rating)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if rating == entities.RatingNone {
			if previous != entities.RatingNone {
				if err := tx.Where("content_id = ? AND user_id = ?", contentID, userID).
					Delete(&ratingModel{}).
					Error; err != nil {
					return err
				}
			}
		} else {
			ratingRow := ratingModel{
				ContentID: contentID,
				UserID:    userID,
				Rating:    string(rating),
				RatedAt:   ratedAt.UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "rated_at"}),
			}).Create(&ratingRow).Error; err != nil {
				return err
			}
		}

		likes, dislikes := services.RatingDelta(previous, rating)
		if likes != 0 || dislikes != 0 {
			if err := tx.Model(&contentModel{}).
				Where("content_id = ?", contentID).
				Updates(map[string]any{
					"likes":      gorm.Expr("likes + ?", likes),
					"dislikes":   gorm.Expr("dislikes + ?", dislikes),
					"updated_at": ratedAt.UTC(),
				}).Error; err != nil {
				return err
			}
			row.Likes += likes
			row.Dislikes += dislikes
			row.UpdatedAt = ratedAt.UTC()
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.UserContent{}, err
	}
	return updated, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outbox.StatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariant
	}
	return nil
}

func (r *Repository) ReserveEvent(
	ctx context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	row := eventDedupModel{
		EventID:     eventID,
		PayloadHash: payloadHash,
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return false, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return false, nil
	}

	var existing eventDedupModel
	if err := r.db.WithContext(ctx).
		Select("payload_hash").
		Where("event_id = ?", eventID).
		Take(&existing).
		Error; err != nil {
		return false, err
	}
	if existing.PayloadHash != payloadHash {
		return false, domainerrors.ErrIdempotencyConflict
	}
	return true, nil
}

func (r *Repository) listPage(
	ctx context.Context,
	scope func(*gorm.DB) *gorm.DB,
	filter entities.ListFilter,
) ([]entities.UserContent, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&contentModel{}).
		Scopes(scope).
		Count(&total).
		Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.UserContent{}, 0, nil
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = services.DefaultPageLimit
	}
	var rows []contentModel
	if err := applyContentSort(r.db.WithContext(ctx).Scopes(scope), filter.SortBy, filter.Descending).
		Offset(filter.Offset).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}
	items, err := r.withTags(r.db.WithContext(ctx), rows)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

// withTags maps rows to entities and attaches question tags in stored order.
func (r *Repository) withTags(tx *gorm.DB, rows []contentModel) ([]entities.UserContent, error) {
	items := make([]entities.UserContent, 0, len(rows))
	questionIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
		if row.ContentType == string(entities.ContentTypeQuestion) {
			questionIDs = append(questionIDs, row.ContentID)
		}
	}
	if len(questionIDs) == 0 {
		return items, nil
	}

	var tagRows []tagModel
	if err := tx.
		Where("content_id IN ?", questionIDs).
		Order("content_id ASC").
		Order("position ASC").
		Find(&tagRows).
		Error; err != nil {
		return nil, err
	}
	tagsByID := make(map[string][]string, len(questionIDs))
	for _, tag := range tagRows {
		tagsByID[tag.ContentID] = append(tagsByID[tag.ContentID], tag.Tag)
	}
	for i := range items {
		items[i].Tags = tagsByID[items[i].ID]
	}
	return items, nil
}

func createOutboxRow(tx *gorm.DB, event ports.EventEnvelope, payload []byte) error {
	outboxRow := outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	if err := tx.Create(&outboxRow).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariant
		}
		return err
	}
	return nil
}

type contentModel struct {
	ContentID    string    `gorm:"column:content_id;primaryKey"`
	ContentType  string    `gorm:"column:content_type"`
	QuestionID   *string   `gorm:"column:question_id"`
	Title        string    `gorm:"column:title"`
	Content      string    `gorm:"column:content"`
	IsDiscussion bool      `gorm:"column:is_discussion"`
	EnableAI     bool      `gorm:"column:enable_ai"`
	AuthorID     string    `gorm:"column:author_id"`
	AuthorName   string    `gorm:"column:author_name"`
	AuthorType   string    `gorm:"column:author_type"`
	Likes        int       `gorm:"column:likes"`
	Dislikes     int       `gorm:"column:dislikes"`
	AnswerCount  int       `gorm:"column:answer_count"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (contentModel) TableName() string {
	return "user_contents"
}

func contentModelFromEntity(content entities.UserContent) contentModel {
	var questionID *string
	if content.QuestionID != "" {
		id := content.QuestionID
		questionID = &id
	}
	return contentModel{
		ContentID:    content.ID,
		ContentType:  string(content.Type),
		QuestionID:   questionID,
		Title:        content.Title,
		Content:      content.Content,
		IsDiscussion: content.IsDiscussion,
		EnableAI:     content.EnableAI,
		AuthorID:     content.AuthorID,
		AuthorName:   content.AuthorName,
		AuthorType:   string(content.AuthorType),
		Likes:        content.Likes,
		Dislikes:     content.Dislikes,
		AnswerCount:  content.AnswerCount,
		CreatedAt:    content.CreatedAt.UTC(),
		UpdatedAt:    content.UpdatedAt.UTC(),
	}
}

func (m contentModel) toEntity() entities.UserContent {
	content := entities.UserContent{
		ID:           m.ContentID,
		Type:         entities.ContentType(m.ContentType),
		Title:        m.Title,
		Content:      m.Content,
		IsDiscussion: m.IsDiscussion,
		EnableAI:     m.EnableAI,
		AuthorID:     m.AuthorID,
		AuthorName:   m.AuthorName,
		AuthorType:   entities.AuthorType(m.AuthorType),
		Likes:        m.Likes,
		Dislikes:     m.Dislikes,
		AnswerCount:  m.AnswerCount,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.QuestionID != nil {
		content.QuestionID = *m.QuestionID
	}
	return content
}

type tagModel struct {
	ContentID string `gorm:"column:content_id;primaryKey"`
	Tag       string `gorm:"column:tag;primaryKey"`
	Position  int    `gorm:"column:position"`
}

func (tagModel) TableName() string {
	return "user_content_tags"
}

type ratingModel struct {
	ContentID string    `gorm:"column:content_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Rating    string    `gorm:"column:rating"`
	RatedAt   time.Time `gorm:"column:rated_at"`
}

func (ratingModel) TableName() string {
	return "user_content_ratings"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "user_content_outbox"
}

func (m outboxModel) toMessage() outbox.Message {
	return outbox.Message{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "user_content_event_dedup"
}

func applyContentSort(tx *gorm.DB, sortBy entities.SortField, descending bool) *gorm.DB {
	var primary clause.OrderByColumn
	switch sortBy {
	case entities.SortByLikes:
		primary = clause.OrderByColumn{Column: clause.Column{Name: "likes"}, Desc: descending}
	case entities.SortByDislikes:
		primary = clause.OrderByColumn{Column: clause.Column{Name: "dislikes"}, Desc: descending}
	case entities.SortByAnswers:
		primary = clause.OrderByColumn{Column: clause.Column{Name: "answer_count"}, Desc: descending}
	case entities.SortByLDR:
		primary = clause.OrderByColumn{Column: clause.Column{Name: ldrExpression, Raw: true}, Desc: descending}
	default:
		primary = clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: descending}
	}
	return tx.
		Order(primary).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "content_id"}, Desc: false})
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
