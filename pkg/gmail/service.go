package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	maildomain "lifehub-backend/internal/mail/domain"
	"lifehub-backend/pkg/googleapi"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Service wraps the Gmail REST API. Each call builds a fresh authenticated
// client from the account's current tokens; refreshed tokens are reported
// through the onTokenRefresh callback.
type Service struct {
	creds googleapi.Credentials
}

func NewService(creds googleapi.Credentials) *Service {
	return &Service{creds: creds}
}

func (s *Service) gmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh googleapi.TokenUpdateFunc) (*gmail.Service, error) {
	client := s.creds.HTTPClient(ctx, accessToken, refreshToken, onTokenRefresh)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}
	return srv, nil
}

// ListMessages retrieves one bounded page of messages matching the query.
// There is no continuation-token traversal; callers re-fetch a recent window
// rather than walking the whole mailbox.
func (s *Service) ListMessages(ctx context.Context, accessToken, refreshToken, query string, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*maildomain.EmailMessage, error) {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	user := "me"

	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > 500 {
		maxResults = 500 // Gmail API maximum
	}

	listQuery := srv.Users.Messages.List(user).MaxResults(maxResults)
	if query != "" {
		listQuery = listQuery.Q(query)
	}

	resp, err := listQuery.Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %v", err)
	}

	messages := make([]*maildomain.EmailMessage, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		full, err := srv.Users.Messages.Get(user, msg.Id).Format("metadata").
			MetadataHeaders("From", "To", "Subject").Do()
		if err != nil {
			// Skip messages we can't fetch; the rest of the page is still useful
			continue
		}
		messages = append(messages, convertGmailMessage(full))
	}

	return messages, nil
}

// GetMessage retrieves a single message by its remote ID.
func (s *Service) GetMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) (*maildomain.EmailMessage, error) {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", remoteID).Format("metadata").
		MetadataHeaders("From", "To", "Subject").Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %v", err)
	}

	return convertGmailMessage(msg), nil
}

// MarkAsRead marks a message as read.
func (s *Service) MarkAsRead(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return s.modifyLabels(ctx, accessToken, refreshToken, remoteID, nil, []string{"UNREAD"}, onTokenRefresh)
}

// MarkAsUnread marks a message as unread.
func (s *Service) MarkAsUnread(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return s.modifyLabels(ctx, accessToken, refreshToken, remoteID, []string{"UNREAD"}, nil, onTokenRefresh)
}

// ArchiveMessage archives a message (removes the INBOX label).
func (s *Service) ArchiveMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	return s.modifyLabels(ctx, accessToken, refreshToken, remoteID, nil, []string{"INBOX"}, onTokenRefresh)
}

// TrashMessage moves a message to trash.
func (s *Service) TrashMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	if _, err := srv.Users.Messages.Trash("me", remoteID).Do(); err != nil {
		return fmt.Errorf("unable to trash message: %v", err)
	}
	return nil
}

func (s *Service) modifyLabels(ctx context.Context, accessToken, refreshToken, remoteID string, addLabelIDs, removeLabelIDs []string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	modifyReq := &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}

	if _, err := srv.Users.Messages.Modify("me", remoteID, modifyReq).Do(); err != nil {
		return fmt.Errorf("unable to modify message labels: %v", err)
	}
	return nil
}

// SendMessage sends an email on behalf of the connected account.
func (s *Service) SendMessage(ctx context.Context, accessToken, refreshToken string, email *maildomain.OutgoingEmail, onTokenRefresh googleapi.TokenUpdateFunc) error {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	var raw bytes.Buffer
	if email.FromName != "" && email.FromEmail != "" {
		encodedName := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(email.FromName)))
		raw.WriteString(fmt.Sprintf("From: %s <%s>\r\n", encodedName, email.FromEmail))
	}
	raw.WriteString(fmt.Sprintf("To: %s\r\n", email.To))
	if email.Cc != "" {
		raw.WriteString(fmt.Sprintf("Cc: %s\r\n", email.Cc))
	}
	// Encode subject to handle non-ASCII characters (RFC 2047)
	encodedSubject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(email.Subject)))
	raw.WriteString(fmt.Sprintf("Subject: %s\r\n", encodedSubject))
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	raw.WriteString(email.Body)
	raw.WriteString("\r\n")

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw.Bytes()),
	}

	if _, err := srv.Users.Messages.Send("me", msg).Do(); err != nil {
		return fmt.Errorf("unable to send message: %v", err)
	}
	return nil
}

// GetProfileEmail returns the address of the connected mailbox. Also serves
// as a cheap token validity probe.
func (s *Service) GetProfileEmail(ctx context.Context, accessToken, refreshToken string, onTokenRefresh googleapi.TokenUpdateFunc) (string, error) {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return "", err
	}

	profile, err := srv.Users.GetProfile("me").Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve profile: %v", err)
	}
	return profile.EmailAddress, nil
}

// Helper functions

func convertGmailMessage(msg *gmail.Message) *maildomain.EmailMessage {
	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	from := getHeader(headers, "From")
	fromName := from
	fromEmail := from
	// Split "Name <email@example.com>" into its parts
	if idx := strings.Index(from, "<"); idx > 0 {
		fromName = strings.TrimSpace(from[:idx])
		fromEmail = strings.Trim(strings.TrimSpace(from[idx:]), "<>")
	}

	return &maildomain.EmailMessage{
		RemoteID:   msg.Id,
		ThreadID:   msg.ThreadId,
		Subject:    getHeader(headers, "Subject"),
		From:       fromEmail,
		FromName:   fromName,
		To:         getHeader(headers, "To"),
		Snippet:    msg.Snippet,
		Labels:     strings.Join(msg.LabelIds, ","),
		IsRead:     !hasLabel(msg.LabelIds, "UNREAD"),
		IsStarred:  hasLabel(msg.LabelIds, "STARRED"),
		ReceivedAt: time.Unix(msg.InternalDate/1000, 0),
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

func hasLabel(labels []string, labelID string) bool {
	for _, label := range labels {
		if label == labelID {
			return true
		}
	}
	return false
}
