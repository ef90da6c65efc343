package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	accountdomain "lifehub-backend/internal/account/domain"
	"lifehub-backend/internal/account/repository"
	"lifehub-backend/pkg/googleapi"

	"golang.org/x/oauth2"
)

// MailboxProber resolves the address behind a token pair. The Gmail service
// satisfies this; it doubles as the post-exchange token validity check.
type MailboxProber interface {
	GetProfileEmail(ctx context.Context, accessToken, refreshToken string, onTokenRefresh googleapi.TokenUpdateFunc) (string, error)
}

// AccountUsecase manages connected Google accounts and their token lifecycle.
type AccountUsecase interface {
	ConnectURL(state string) string
	HandleCallback(ctx context.Context, userID, code string) (*accountdomain.Account, error)
	ListAccounts(userID string) ([]*accountdomain.Account, error)
	// GetAccount resolves one of the user's active accounts. An empty
	// accountID picks the user's first connected account.
	GetAccount(userID, accountID string) (*accountdomain.Account, error)
	Disconnect(userID, accountID string) error
	// TokenPersister returns the callback that writes a refreshed access
	// token back to the given account row. It is handed to every provider
	// call so refreshed tokens survive the request.
	TokenPersister(accountID string) googleapi.TokenUpdateFunc
}

type accountUsecase struct {
	accountRepo repository.AccountRepository
	creds       googleapi.Credentials
	prober      MailboxProber
}

func NewAccountUsecase(accountRepo repository.AccountRepository, creds googleapi.Credentials, prober MailboxProber) AccountUsecase {
	return &accountUsecase{
		accountRepo: accountRepo,
		creds:       creds,
		prober:      prober,
	}
}

func (u *accountUsecase) ConnectURL(state string) string {
	return u.creds.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, resolves the mailbox
// address and upserts the account. Reconnecting an already-known identity
// replaces its tokens and reactivates it.
func (u *accountUsecase) HandleCallback(ctx context.Context, userID, code string) (*accountdomain.Account, error) {
	token, err := u.creds.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	email, err := u.prober.GetProfileEmail(ctx, token.AccessToken, token.RefreshToken, nil)
	if err != nil {
		return nil, err
	}

	account := &accountdomain.Account{
		UserID:       userID,
		Provider:     "google",
		Email:        email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		SyncStatus:   accountdomain.SyncStatusPending,
		IsActive:     true,
	}

	if err := u.accountRepo.Upsert(account); err != nil {
		return nil, err
	}

	log.Printf("[Account] Connected google account %s for user %s", email, userID)
	return account, nil
}

func (u *accountUsecase) ListAccounts(userID string) ([]*accountdomain.Account, error) {
	return u.accountRepo.FindByUserID(userID)
}

func (u *accountUsecase) GetAccount(userID, accountID string) (*accountdomain.Account, error) {
	if accountID == "" {
		accounts, err := u.accountRepo.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, errors.New("no connected account")
		}
		return accounts[0], nil
	}

	account, err := u.accountRepo.FindByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, errors.New("account not found")
	}
	if account.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return account, nil
}

func (u *accountUsecase) Disconnect(userID, accountID string) error {
	account, err := u.accountRepo.FindByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return errors.New("account not found")
	}
	if account.UserID != userID {
		return errors.New("unauthorized")
	}

	return u.accountRepo.Deactivate(accountID)
}

func (u *accountUsecase) TokenPersister(accountID string) googleapi.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		expiry := token.Expiry
		if expiry.IsZero() {
			expiry = time.Now().Add(time.Hour)
		}
		return u.accountRepo.UpdateTokens(accountID, token.AccessToken, token.RefreshToken, expiry)
	}
}
