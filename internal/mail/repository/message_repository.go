package repository

import (
	"time"

	maildomain "lifehub-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmailMessageRepository defines the interface for mail mirror storage.
type EmailMessageRepository interface {
	// UpsertBatch writes mirror rows keyed by (account_id, remote_id) so
	// repeated syncs of the same window are idempotent.
	UpsertBatch(messages []*maildomain.EmailMessage) error
	FindByUserID(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error)
	CountByAccountID(accountID string) (int64, error)
}

type emailMessageRepository struct {
	db *gorm.DB
}

func NewEmailMessageRepository(db *gorm.DB) EmailMessageRepository {
	return &emailMessageRepository{
		db: db,
	}
}

func (r *emailMessageRepository) UpsertBatch(messages []*maildomain.EmailMessage) error {
	if len(messages) == 0 {
		return nil
	}

	now := time.Now()
	for _, msg := range messages {
		if msg.ID == "" {
			msg.ID = uuid.New().String()
		}
		msg.SyncedAt = now
		msg.CreatedAt = now
		msg.UpdatedAt = now
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subject", "from", "from_name", "to", "snippet", "labels",
			"is_read", "is_starred", "received_at", "synced_at", "updated_at",
		}),
	}).Create(&messages).Error
}

func (r *emailMessageRepository) FindByUserID(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error) {
	var messages []*maildomain.EmailMessage
	var total int64

	query := r.db.Model(&maildomain.EmailMessage{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("received_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *emailMessageRepository) CountByAccountID(accountID string) (int64, error) {
	var count int64
	err := r.db.Model(&maildomain.EmailMessage{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
