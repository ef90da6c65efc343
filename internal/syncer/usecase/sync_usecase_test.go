package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	accountdomain "lifehub-backend/internal/account/domain"
	caldomain "lifehub-backend/internal/calendar/domain"
	maildomain "lifehub-backend/internal/mail/domain"
	"lifehub-backend/pkg/googleapi"
)

type fakeAccountRepo struct {
	accounts map[string]*accountdomain.Account
	statuses map[string][]accountdomain.SyncStatus
}

func newFakeAccountRepo(accounts ...*accountdomain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{
		accounts: map[string]*accountdomain.Account{},
		statuses: map[string][]accountdomain.SyncStatus{},
	}
	for _, a := range accounts {
		repo.accounts[a.ID] = a
	}
	return repo
}

func (r *fakeAccountRepo) Upsert(account *accountdomain.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(id string) (*accountdomain.Account, error) {
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) FindByUserID(userID string) ([]*accountdomain.Account, error) {
	var out []*accountdomain.Account
	for _, a := range r.accounts {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) FindAllActive() ([]*accountdomain.Account, error) {
	var out []*accountdomain.Account
	for _, a := range r.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdateTokens(id, accessToken, refreshToken string, expiry time.Time) error {
	if a, ok := r.accounts[id]; ok {
		a.AccessToken = accessToken
		if refreshToken != "" {
			a.RefreshToken = refreshToken
		}
		a.TokenExpiry = expiry
	}
	return nil
}

func (r *fakeAccountRepo) UpdateSyncStatus(id string, status accountdomain.SyncStatus, syncError string, lastSyncedAt *time.Time) error {
	r.statuses[id] = append(r.statuses[id], status)
	if a, ok := r.accounts[id]; ok {
		a.SyncStatus = status
		a.SyncError = syncError
		if lastSyncedAt != nil {
			a.LastSyncedAt = lastSyncedAt
		}
	}
	return nil
}

func (r *fakeAccountRepo) Deactivate(id string) error {
	if a, ok := r.accounts[id]; ok {
		a.IsActive = false
	}
	return nil
}

type fakeMailProvider struct {
	messages  []*maildomain.EmailMessage
	failToken string
	calls     int
}

func (p *fakeMailProvider) ListMessages(ctx context.Context, accessToken, refreshToken, query string, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*maildomain.EmailMessage, error) {
	p.calls++
	if accessToken == p.failToken {
		return nil, errors.New("401 invalid credentials")
	}
	out := make([]*maildomain.EmailMessage, len(p.messages))
	for i, m := range p.messages {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

func (p *fakeMailProvider) GetMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) (*maildomain.EmailMessage, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeMailProvider) MarkAsRead(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

func (p *fakeMailProvider) MarkAsUnread(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

func (p *fakeMailProvider) ArchiveMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

func (p *fakeMailProvider) TrashMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

func (p *fakeMailProvider) SendMessage(ctx context.Context, accessToken, refreshToken string, email *maildomain.OutgoingEmail, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

type fakeCalendarProvider struct {
	events []*caldomain.CalendarEvent
}

func (p *fakeCalendarProvider) ListEvents(ctx context.Context, accessToken, refreshToken string, from, to time.Time, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*caldomain.CalendarEvent, error) {
	out := make([]*caldomain.CalendarEvent, len(p.events))
	for i, e := range p.events {
		copied := *e
		out[i] = &copied
	}
	return out, nil
}

func (p *fakeCalendarProvider) CreateEvent(ctx context.Context, accessToken, refreshToken string, event *caldomain.CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*caldomain.CalendarEvent, error) {
	return event, nil
}

func (p *fakeCalendarProvider) UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *caldomain.CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*caldomain.CalendarEvent, error) {
	return event, nil
}

func (p *fakeCalendarProvider) DeleteEvent(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return nil
}

type fakeMessageRepo struct {
	rows map[string]*maildomain.EmailMessage // keyed account|remote
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{rows: map[string]*maildomain.EmailMessage{}}
}

func (r *fakeMessageRepo) UpsertBatch(messages []*maildomain.EmailMessage) error {
	for _, m := range messages {
		r.rows[m.AccountID+"|"+m.RemoteID] = m
	}
	return nil
}

func (r *fakeMessageRepo) FindByUserID(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error) {
	var out []*maildomain.EmailMessage
	for _, m := range r.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMessageRepo) CountByAccountID(accountID string) (int64, error) {
	var n int64
	for _, m := range r.rows {
		if m.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

type fakeEventRepo struct {
	rows map[string]*caldomain.CalendarEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{rows: map[string]*caldomain.CalendarEvent{}}
}

func (r *fakeEventRepo) UpsertBatch(events []*caldomain.CalendarEvent) error {
	for _, e := range events {
		r.rows[e.AccountID+"|"+e.RemoteID] = e
	}
	return nil
}

func (r *fakeEventRepo) FindByUserID(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error) {
	var out []*caldomain.CalendarEvent
	for _, e := range r.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CountByAccountID(accountID string) (int64, error) {
	var n int64
	for _, e := range r.rows {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

type fakeEmailStatsRepo struct {
	saves int
	last  *maildomain.EmailStats
}

func (r *fakeEmailStatsRepo) Save(stats *maildomain.EmailStats) error {
	r.saves++
	r.last = stats
	return nil
}

func (r *fakeEmailStatsRepo) FindByUserID(userID string) (*maildomain.EmailStats, error) {
	return r.last, nil
}

type fakeCalStatsRepo struct {
	saves int
	last  *caldomain.CalendarStats
}

func (r *fakeCalStatsRepo) Save(stats *caldomain.CalendarStats) error {
	r.saves++
	r.last = stats
	return nil
}

func (r *fakeCalStatsRepo) FindByUserID(userID string) (*caldomain.CalendarStats, error) {
	return r.last, nil
}

func testAccount(id, userID, token string) *accountdomain.Account {
	return &accountdomain.Account{
		ID:          id,
		UserID:      userID,
		Provider:    "google",
		Email:       id + "@example.com",
		AccessToken: token,
		IsActive:    true,
	}
}

func sampleMessages(n int) []*maildomain.EmailMessage {
	out := make([]*maildomain.EmailMessage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &maildomain.EmailMessage{
			RemoteID:   fmt.Sprintf("msg-%d", i),
			Subject:    fmt.Sprintf("subject %d", i),
			From:       "sender@example.com",
			ReceivedAt: time.Now().Add(-time.Hour),
		})
	}
	return out
}

func sampleEvents(n int) []*caldomain.CalendarEvent {
	out := make([]*caldomain.CalendarEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &caldomain.CalendarEvent{
			RemoteID:  fmt.Sprintf("evt-%d", i),
			Title:     fmt.Sprintf("event %d", i),
			StartTime: time.Now().Add(time.Duration(i+1) * time.Hour),
			EndTime:   time.Now().Add(time.Duration(i+2) * time.Hour),
		})
	}
	return out
}

func TestSyncAccountIdempotent(t *testing.T) {
	accountRepo := newFakeAccountRepo(testAccount("acc1", "u1", "tok"))
	mailProvider := &fakeMailProvider{messages: sampleMessages(3)}
	calProvider := &fakeCalendarProvider{events: sampleEvents(2)}
	messageRepo := newFakeMessageRepo()
	eventRepo := newFakeEventRepo()
	emailStats := &fakeEmailStatsRepo{}
	calStats := &fakeCalStatsRepo{}

	uc := NewSyncUsecase(accountRepo, mailProvider, calProvider, messageRepo, emailStats, eventRepo, calStats, 7, 100)

	first := uc.SyncAccount(context.Background(), "u1", "acc1")
	if first.Status != accountdomain.SyncStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", first.Status, first.Error)
	}
	if first.MessagesSynced != 3 || first.EventsSynced != 2 {
		t.Fatalf("unexpected counts: %d messages, %d events", first.MessagesSynced, first.EventsSynced)
	}

	second := uc.SyncAccount(context.Background(), "u1", "acc1")
	if second.Status != accountdomain.SyncStatusCompleted {
		t.Fatalf("expected second run completed, got %s", second.Status)
	}

	// Same window re-fetched, no duplicate mirror rows
	if n, _ := messageRepo.CountByAccountID("acc1"); n != 3 {
		t.Fatalf("expected 3 mirror rows after two runs, got %d", n)
	}
	if n, _ := eventRepo.CountByAccountID("acc1"); n != 2 {
		t.Fatalf("expected 2 event rows after two runs, got %d", n)
	}

	// Stats are overwritten, not accumulated
	if emailStats.last.TotalCount != 3 {
		t.Fatalf("expected stats total 3, got %d", emailStats.last.TotalCount)
	}
	if emailStats.saves != 2 {
		t.Fatalf("expected one stats save per run, got %d", emailStats.saves)
	}
}

func TestSyncAccountStatusTransitions(t *testing.T) {
	account := testAccount("acc1", "u1", "tok")
	accountRepo := newFakeAccountRepo(account)
	uc := NewSyncUsecase(accountRepo, &fakeMailProvider{}, &fakeCalendarProvider{},
		newFakeMessageRepo(), &fakeEmailStatsRepo{}, newFakeEventRepo(), &fakeCalStatsRepo{}, 7, 100)

	uc.SyncAccount(context.Background(), "u1", "acc1")

	transitions := accountRepo.statuses["acc1"]
	if len(transitions) != 2 ||
		transitions[0] != accountdomain.SyncStatusSyncing ||
		transitions[1] != accountdomain.SyncStatusCompleted {
		t.Fatalf("expected syncing then completed, got %v", transitions)
	}
	if account.LastSyncedAt == nil {
		t.Fatal("expected LastSyncedAt to be set")
	}
}

func TestSyncUserAccountsErrorIsolation(t *testing.T) {
	good := testAccount("good", "u1", "tok")
	bad := testAccount("bad", "u1", "bad-token")
	accountRepo := newFakeAccountRepo(good, bad)
	mailProvider := &fakeMailProvider{messages: sampleMessages(2), failToken: "bad-token"}

	uc := NewSyncUsecase(accountRepo, mailProvider, &fakeCalendarProvider{},
		newFakeMessageRepo(), &fakeEmailStatsRepo{}, newFakeEventRepo(), &fakeCalStatsRepo{}, 7, 100)

	results, err := uc.SyncUserAccounts(context.Background(), "u1")
	if err != nil {
		t.Fatalf("batch itself should not fail: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byID := map[string]*SyncResult{}
	for _, r := range results {
		byID[r.AccountID] = r
	}

	if byID["good"].Status != accountdomain.SyncStatusCompleted {
		t.Fatalf("good account should complete, got %s (%s)", byID["good"].Status, byID["good"].Error)
	}
	if byID["bad"].Status != accountdomain.SyncStatusError {
		t.Fatalf("bad account should error, got %s", byID["bad"].Status)
	}
	if bad.SyncError == "" {
		t.Fatal("expected error message recorded on the failing account")
	}
}

func TestSyncUserAccountsStatsReflectLastAccount(t *testing.T) {
	first := testAccount("acc1", "u1", "tok-a")
	second := testAccount("acc2", "u1", "tok-b")
	accountRepo := newFakeAccountRepo(first, second)
	emailStats := &fakeEmailStatsRepo{}

	uc := NewSyncUsecase(accountRepo, &fakeMailProvider{messages: sampleMessages(3)}, &fakeCalendarProvider{},
		newFakeMessageRepo(), emailStats, newFakeEventRepo(), &fakeCalStatsRepo{}, 7, 100)

	results, err := uc.SyncUserAccounts(context.Background(), "u1")
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// One stats row per user, overwritten per account pass: the surviving
	// row holds the last pass's window, not an accumulation.
	if emailStats.saves != 2 {
		t.Fatalf("expected one stats save per account, got %d", emailStats.saves)
	}
	if emailStats.last.TotalCount != 3 {
		t.Fatalf("expected last pass's total 3, got %d", emailStats.last.TotalCount)
	}
}

func TestSyncAccountOtherUsersAccountRejected(t *testing.T) {
	accountRepo := newFakeAccountRepo(testAccount("acc1", "u1", "tok"))
	mailProvider := &fakeMailProvider{messages: sampleMessages(2)}
	uc := NewSyncUsecase(accountRepo, mailProvider, &fakeCalendarProvider{},
		newFakeMessageRepo(), &fakeEmailStatsRepo{}, newFakeEventRepo(), &fakeCalStatsRepo{}, 7, 100)

	result := uc.SyncAccount(context.Background(), "u2", "acc1")
	if result.Status != accountdomain.SyncStatusError {
		t.Fatalf("expected error status, got %s", result.Status)
	}
	if result.Error != "account not found" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Email != "" {
		t.Fatalf("account email must not leak, got %q", result.Email)
	}
	if mailProvider.calls != 0 {
		t.Fatalf("no provider call expected, got %d", mailProvider.calls)
	}
	if len(accountRepo.statuses["acc1"]) != 0 {
		t.Fatalf("no status transition expected, got %v", accountRepo.statuses["acc1"])
	}
}

func TestSyncAccountNotFound(t *testing.T) {
	uc := NewSyncUsecase(newFakeAccountRepo(), &fakeMailProvider{}, &fakeCalendarProvider{},
		newFakeMessageRepo(), &fakeEmailStatsRepo{}, newFakeEventRepo(), &fakeCalStatsRepo{}, 7, 100)

	result := uc.SyncAccount(context.Background(), "u1", "missing")
	if result.Status != accountdomain.SyncStatusError {
		t.Fatalf("expected error status, got %s", result.Status)
	}
	if result.Error != "account not found" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
}
