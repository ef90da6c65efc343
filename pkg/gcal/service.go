package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	"lifehub-backend/pkg/googleapi"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service wraps the Google Calendar REST API against the user's primary
// calendar. Construction mirrors the Gmail service: a fresh authenticated
// client per call, refreshed tokens reported through the callback.
type Service struct {
	creds googleapi.Credentials
}

func NewService(creds googleapi.Credentials) *Service {
	return &Service{creds: creds}
}

func (s *Service) calendarService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh googleapi.TokenUpdateFunc) (*calendar.Service, error) {
	client := s.creds.HTTPClient(ctx, accessToken, refreshToken, onTokenRefresh)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// ListEvents retrieves one bounded page of events in [from, to) from the
// primary calendar, with recurring events expanded to single instances.
func (s *Service) ListEvents(ctx context.Context, accessToken, refreshToken string, from, to time.Time, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*caldomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = 50
	}
	if maxResults > 2500 {
		maxResults = 2500 // Calendar API maximum
	}

	resp, err := srv.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %v", err)
	}

	events := make([]*caldomain.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Status == "cancelled" {
			continue
		}
		events = append(events, convertCalendarEvent(item))
	}

	return events, nil
}

// CreateEvent inserts a new event into the primary calendar and returns the
// created event in mirror shape.
func (s *Service) CreateEvent(ctx context.Context, accessToken, refreshToken string, event *caldomain.CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*caldomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	created, err := srv.Events.Insert("primary", toWireEvent(event)).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create event: %v", err)
	}

	return convertCalendarEvent(created), nil
}

// UpdateEvent updates an existing event identified by its remote ID.
func (s *Service) UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *caldomain.CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*caldomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	updated, err := srv.Events.Update("primary", event.RemoteID, toWireEvent(event)).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to update event: %v", err)
	}

	return convertCalendarEvent(updated), nil
}

// DeleteEvent removes an event from the primary calendar.
func (s *Service) DeleteEvent(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	if err := srv.Events.Delete("primary", remoteID).Do(); err != nil {
		return fmt.Errorf("unable to delete event: %v", err)
	}
	return nil
}

// Helper functions

func convertCalendarEvent(item *calendar.Event) *caldomain.CalendarEvent {
	start, allDay := parseEventTime(item.Start)
	end, _ := parseEventTime(item.End)

	var attendees []string
	for _, a := range item.Attendees {
		if a.Email != "" {
			attendees = append(attendees, a.Email)
		}
	}

	return &caldomain.CalendarEvent{
		RemoteID:    item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
		StartTime:   start,
		EndTime:     end,
		AllDay:      allDay,
		Attendees:   strings.Join(attendees, ","),
		Status:      item.Status,
	}
}

// parseEventTime handles both timed (dateTime) and all-day (date) forms.
func parseEventTime(t *calendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err == nil {
			return parsed, false
		}
	}
	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func toWireEvent(event *caldomain.CalendarEvent) *calendar.Event {
	wire := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
	}

	if event.AllDay {
		wire.Start = &calendar.EventDateTime{Date: event.StartTime.Format("2006-01-02")}
		wire.End = &calendar.EventDateTime{Date: event.EndTime.Format("2006-01-02")}
	} else {
		wire.Start = &calendar.EventDateTime{DateTime: event.StartTime.Format(time.RFC3339)}
		wire.End = &calendar.EventDateTime{DateTime: event.EndTime.Format(time.RFC3339)}
	}

	if event.Attendees != "" {
		for _, email := range strings.Split(event.Attendees, ",") {
			email = strings.TrimSpace(email)
			if email != "" {
				wire.Attendees = append(wire.Attendees, &calendar.EventAttendee{Email: email})
			}
		}
	}

	return wire
}
