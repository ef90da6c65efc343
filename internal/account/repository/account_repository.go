package repository

import (
	"errors"
	"time"

	accountdomain "lifehub-backend/internal/account/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository defines the interface for connected-account storage.
type AccountRepository interface {
	Upsert(account *accountdomain.Account) error
	FindByID(id string) (*accountdomain.Account, error)
	FindByUserID(userID string) ([]*accountdomain.Account, error)
	FindAllActive() ([]*accountdomain.Account, error)
	UpdateTokens(id, accessToken, refreshToken string, expiry time.Time) error
	UpdateSyncStatus(id string, status accountdomain.SyncStatus, syncError string, lastSyncedAt *time.Time) error
	Deactivate(id string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Upsert creates the account or, if the same (user, provider, email) identity
// reconnects, refreshes its tokens and reactivates it.
func (r *accountRepository) Upsert(account *accountdomain.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}, {Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_expiry", "is_active", "sync_status", "sync_error", "updated_at",
		}),
	}).Create(account).Error
}

func (r *accountRepository) FindByID(id string) (*accountdomain.Account, error) {
	var account accountdomain.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUserID(userID string) ([]*accountdomain.Account, error) {
	var accounts []*accountdomain.Account
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) FindAllActive() ([]*accountdomain.Account, error) {
	var accounts []*accountdomain.Account
	err := r.db.Where("is_active = ?", true).Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) UpdateTokens(id, accessToken, refreshToken string, expiry time.Time) error {
	updates := map[string]interface{}{
		"access_token": accessToken,
		"token_expiry": expiry,
		"updated_at":   time.Now(),
	}
	// A refresh response may omit the refresh token; keep the stored one then
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	return r.db.Model(&accountdomain.Account{}).Where("id = ?", id).Updates(updates).Error
}

func (r *accountRepository) UpdateSyncStatus(id string, status accountdomain.SyncStatus, syncError string, lastSyncedAt *time.Time) error {
	updates := map[string]interface{}{
		"sync_status": status,
		"sync_error":  syncError,
		"updated_at":  time.Now(),
	}
	if lastSyncedAt != nil {
		updates["last_synced_at"] = *lastSyncedAt
	}
	return r.db.Model(&accountdomain.Account{}).Where("id = ?", id).Updates(updates).Error
}

func (r *accountRepository) Deactivate(id string) error {
	return r.db.Model(&accountdomain.Account{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
