package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	accountdomain "lifehub-backend/internal/account/domain"
	accountrepo "lifehub-backend/internal/account/repository"
	caldomain "lifehub-backend/internal/calendar/domain"
	calrepo "lifehub-backend/internal/calendar/repository"
	maildomain "lifehub-backend/internal/mail/domain"
	mailrepo "lifehub-backend/internal/mail/repository"
	"lifehub-backend/pkg/googleapi"

	"golang.org/x/oauth2"
)

// SyncResult reports one account's reconciliation outcome.
type SyncResult struct {
	AccountID      string                   `json:"account_id"`
	Email          string                   `json:"email"`
	Status         accountdomain.SyncStatus `json:"status"`
	MessagesSynced int                      `json:"messages_synced"`
	EventsSynced   int                      `json:"events_synced"`
	Error          string                   `json:"error,omitempty"`
}

// SyncUsecase reconciles remote provider state into the local mirrors.
type SyncUsecase interface {
	SyncAccount(ctx context.Context, userID, accountID string) *SyncResult
	SyncUserAccounts(ctx context.Context, userID string) ([]*SyncResult, error)
	SyncAllAccounts(ctx context.Context) ([]*SyncResult, error)
}

type syncUsecase struct {
	accountRepo      accountrepo.AccountRepository
	mailProvider     maildomain.MailProvider
	calendarProvider caldomain.CalendarProvider
	messageRepo      mailrepo.EmailMessageRepository
	emailStatsRepo   mailrepo.EmailStatsRepository
	eventRepo        calrepo.CalendarEventRepository
	calStatsRepo     calrepo.CalendarStatsRepository
	windowDays       int
	batchSize        int
}

func NewSyncUsecase(
	accountRepo accountrepo.AccountRepository,
	mailProvider maildomain.MailProvider,
	calendarProvider caldomain.CalendarProvider,
	messageRepo mailrepo.EmailMessageRepository,
	emailStatsRepo mailrepo.EmailStatsRepository,
	eventRepo calrepo.CalendarEventRepository,
	calStatsRepo calrepo.CalendarStatsRepository,
	windowDays, batchSize int,
) SyncUsecase {
	if windowDays <= 0 {
		windowDays = 7
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &syncUsecase{
		accountRepo:      accountRepo,
		mailProvider:     mailProvider,
		calendarProvider: calendarProvider,
		messageRepo:      messageRepo,
		emailStatsRepo:   emailStatsRepo,
		eventRepo:        eventRepo,
		calStatsRepo:     calStatsRepo,
		windowDays:       windowDays,
		batchSize:        batchSize,
	}
}

// SyncAccount runs one reconciliation pass for a single account:
// fetch a bounded recent window, upsert mirrors, recompute window-scoped
// stats, record status. There is no cursor; every run re-fetches the window.
// Accounts belonging to another user are reported as not found.
func (u *syncUsecase) SyncAccount(ctx context.Context, userID, accountID string) *SyncResult {
	account, err := u.accountRepo.FindByID(accountID)
	if err != nil || account == nil || account.UserID != userID {
		return &SyncResult{
			AccountID: accountID,
			Status:    accountdomain.SyncStatusError,
			Error:     "account not found",
		}
	}
	return u.syncAccount(ctx, account)
}

// SyncUserAccounts reconciles every active account of one user, sequentially.
func (u *syncUsecase) SyncUserAccounts(ctx context.Context, userID string) ([]*SyncResult, error) {
	accounts, err := u.accountRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return u.syncAccounts(ctx, accounts), nil
}

// SyncAllAccounts reconciles every active account in the system. Used by the
// automated batch-sync endpoint.
func (u *syncUsecase) SyncAllAccounts(ctx context.Context) ([]*SyncResult, error) {
	accounts, err := u.accountRepo.FindAllActive()
	if err != nil {
		return nil, err
	}
	return u.syncAccounts(ctx, accounts), nil
}

// syncAccounts processes accounts one at a time. One account's failure is
// recorded on that account and never aborts the rest of the batch.
func (u *syncUsecase) syncAccounts(ctx context.Context, accounts []*accountdomain.Account) []*SyncResult {
	results := make([]*SyncResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, u.syncAccount(ctx, account))
	}
	return results
}

func (u *syncUsecase) syncAccount(ctx context.Context, account *accountdomain.Account) *SyncResult {
	result := &SyncResult{
		AccountID: account.ID,
		Email:     account.Email,
	}

	if err := u.accountRepo.UpdateSyncStatus(account.ID, accountdomain.SyncStatusSyncing, "", nil); err != nil {
		log.Printf("[Sync] Failed to mark account %s syncing: %v", account.ID, err)
	}

	persist := u.tokenPersister(account.ID)
	now := time.Now()

	// Mail: re-fetch the recent window, no delta cursor
	query := fmt.Sprintf("newer_than:%dd", u.windowDays)
	messages, err := u.mailProvider.ListMessages(ctx, account.AccessToken, account.RefreshToken,
		query, int64(u.batchSize), persist)
	if err != nil {
		return u.fail(account, result, fmt.Sprintf("mail fetch failed: %v", err))
	}

	for _, msg := range messages {
		msg.AccountID = account.ID
		msg.UserID = account.UserID
	}
	if err := u.messageRepo.UpsertBatch(messages); err != nil {
		return u.fail(account, result, fmt.Sprintf("mail upsert failed: %v", err))
	}
	result.MessagesSynced = len(messages)

	// Calendar: today through the end of the window
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := u.calendarProvider.ListEvents(ctx, account.AccessToken, account.RefreshToken,
		startOfDay, startOfDay.AddDate(0, 0, u.windowDays), int64(u.batchSize), persist)
	if err != nil {
		// Mail rows already written stay; there is no partial rollback
		return u.fail(account, result, fmt.Sprintf("calendar fetch failed: %v", err))
	}

	for _, event := range events {
		event.AccountID = account.ID
		event.UserID = account.UserID
	}
	if err := u.eventRepo.UpsertBatch(events); err != nil {
		return u.fail(account, result, fmt.Sprintf("calendar upsert failed: %v", err))
	}
	result.EventsSynced = len(events)

	// Stats are recomputed from the fetched batch only and fully overwrite
	// the previous row. There is one stats row per user, so for a user with
	// several accounts the row reflects whichever account synced last.
	if err := u.emailStatsRepo.Save(ComputeEmailStats(account.UserID, messages, now)); err != nil {
		return u.fail(account, result, fmt.Sprintf("mail stats write failed: %v", err))
	}
	if err := u.calStatsRepo.Save(ComputeCalendarStats(account.UserID, events, now)); err != nil {
		return u.fail(account, result, fmt.Sprintf("calendar stats write failed: %v", err))
	}

	syncedAt := time.Now()
	if err := u.accountRepo.UpdateSyncStatus(account.ID, accountdomain.SyncStatusCompleted, "", &syncedAt); err != nil {
		log.Printf("[Sync] Failed to mark account %s completed: %v", account.ID, err)
	}

	result.Status = accountdomain.SyncStatusCompleted
	log.Printf("[Sync] Account %s: %d messages, %d events", account.Email, result.MessagesSynced, result.EventsSynced)
	return result
}

func (u *syncUsecase) fail(account *accountdomain.Account, result *SyncResult, msg string) *SyncResult {
	log.Printf("[Sync] Account %s: %s", account.Email, msg)
	if err := u.accountRepo.UpdateSyncStatus(account.ID, accountdomain.SyncStatusError, msg, nil); err != nil {
		log.Printf("[Sync] Failed to mark account %s errored: %v", account.ID, err)
	}
	result.Status = accountdomain.SyncStatusError
	result.Error = msg
	return result
}

func (u *syncUsecase) tokenPersister(accountID string) googleapi.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		return u.accountRepo.UpdateTokens(accountID, token.AccessToken, token.RefreshToken, token.Expiry)
	}
}
