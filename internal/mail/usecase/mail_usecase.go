package usecase

import (
	"context"
	"log"

	accountUsecase "lifehub-backend/internal/account/usecase"
	maildomain "lifehub-backend/internal/mail/domain"
	"lifehub-backend/internal/mail/repository"
)

// MailUsecase exposes mail reads and provider passthrough operations. Reads
// of live mail go straight to the provider; the mirror table is only written
// by the sync reconciler.
type MailUsecase interface {
	ListInbox(ctx context.Context, userID, accountID string, limit int64) ([]*maildomain.EmailMessage, error)
	ListMirrored(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error)
	GetStats(userID string) (*maildomain.EmailStats, error)
	MarkAsRead(ctx context.Context, userID, accountID, remoteID string) error
	MarkAsUnread(ctx context.Context, userID, accountID, remoteID string) error
	Archive(ctx context.Context, userID, accountID, remoteID string) error
	Trash(ctx context.Context, userID, accountID, remoteID string) error
	Send(ctx context.Context, userID, accountID string, email *maildomain.OutgoingEmail) error
}

type mailUsecase struct {
	accounts    accountUsecase.AccountUsecase
	provider    maildomain.MailProvider
	messageRepo repository.EmailMessageRepository
	statsRepo   repository.EmailStatsRepository
}

func NewMailUsecase(accounts accountUsecase.AccountUsecase, provider maildomain.MailProvider, messageRepo repository.EmailMessageRepository, statsRepo repository.EmailStatsRepository) MailUsecase {
	return &mailUsecase{
		accounts:    accounts,
		provider:    provider,
		messageRepo: messageRepo,
		statsRepo:   statsRepo,
	}
}

func (u *mailUsecase) ListInbox(ctx context.Context, userID, accountID string, limit int64) ([]*maildomain.EmailMessage, error) {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	messages, err := u.provider.ListMessages(ctx, account.AccessToken, account.RefreshToken,
		"in:inbox", limit, u.accounts.TokenPersister(account.ID))
	if err != nil {
		log.Printf("[Mail] Failed to list inbox for account %s: %v", account.ID, err)
		return nil, err
	}

	for _, msg := range messages {
		msg.AccountID = account.ID
		msg.UserID = userID
	}
	return messages, nil
}

func (u *mailUsecase) ListMirrored(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error) {
	return u.messageRepo.FindByUserID(userID, limit, offset)
}

func (u *mailUsecase) GetStats(userID string) (*maildomain.EmailStats, error) {
	return u.statsRepo.FindByUserID(userID)
}

func (u *mailUsecase) MarkAsRead(ctx context.Context, userID, accountID, remoteID string) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	return u.provider.MarkAsRead(ctx, account.AccessToken, account.RefreshToken, remoteID, u.accounts.TokenPersister(account.ID))
}

func (u *mailUsecase) MarkAsUnread(ctx context.Context, userID, accountID, remoteID string) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	return u.provider.MarkAsUnread(ctx, account.AccessToken, account.RefreshToken, remoteID, u.accounts.TokenPersister(account.ID))
}

func (u *mailUsecase) Archive(ctx context.Context, userID, accountID, remoteID string) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	return u.provider.ArchiveMessage(ctx, account.AccessToken, account.RefreshToken, remoteID, u.accounts.TokenPersister(account.ID))
}

func (u *mailUsecase) Trash(ctx context.Context, userID, accountID, remoteID string) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	return u.provider.TrashMessage(ctx, account.AccessToken, account.RefreshToken, remoteID, u.accounts.TokenPersister(account.ID))
}

func (u *mailUsecase) Send(ctx context.Context, userID, accountID string, email *maildomain.OutgoingEmail) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	if email.FromEmail == "" {
		email.FromEmail = account.Email
	}
	return u.provider.SendMessage(ctx, account.AccessToken, account.RefreshToken, email, u.accounts.TokenPersister(account.ID))
}
