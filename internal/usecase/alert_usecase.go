package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"career-ready/internal/domain/alert"
	"career-ready/internal/repository"

	"github.com/google/uuid"
)

type AlertItem struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata"`
}

type AlertUsecase interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]AlertItem, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) (AlertItem, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	Get(ctx context.Context, userID, alertID uuid.UUID) (AlertItem, error)
}

// Alert is the read side of the alert feed. Alerts are created elsewhere;
// this usecase only lists them and moves them from unread to read.
type Alert struct {
	repo     repository.AlertRepository
	notifier Notifier
	logger   *log.Logger
}

func NewAlertUsecase(repo repository.AlertRepository, notifier Notifier, logger *log.Logger) *Alert {
	if logger == nil {
		logger = log.Default()
	}
	return &Alert{repo: repo, notifier: notifier, logger: logger}
}

func (u *Alert) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]AlertItem, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]AlertItem, 0, len(items))
	for _, it := range items {
		out = append(out, toAlertItem(it))
	}
	return out, nil
}

func (u *Alert) Get(ctx context.Context, userID, alertID uuid.UUID) (AlertItem, error) {
	if userID == uuid.Nil || alertID == uuid.Nil {
		return AlertItem{}, ErrInvalidInput
	}
	a, err := u.repo.FindByID(ctx, userID, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return AlertItem{}, ErrAlertNotFound
		}
		return AlertItem{}, ErrInternal
	}
	return toAlertItem(a), nil
}

// MarkRead is idempotent: an alert that is already read is returned as is.
func (u *Alert) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (AlertItem, error) {
	if userID == uuid.Nil || alertID == uuid.Nil {
		return AlertItem{}, ErrInvalidInput
	}

	changed, err := u.repo.MarkRead(ctx, userID, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return AlertItem{}, ErrAlertNotFound
		}
		u.logger.Printf("Alert mark read failed | user_id=%s alert_id=%s err=%v", userID, alertID, err)
		return AlertItem{}, ErrInternal
	}

	item, err := u.Get(ctx, userID, alertID)
	if err != nil {
		return AlertItem{}, err
	}

	if changed && u.notifier != nil {
		u.notifier.NotifyUser(userID, EventAlertRead, map[string]any{"alert_id": alertID})
	}
	return item, nil
}

func (u *Alert) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrInvalidInput
	}
	n, err := u.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func toAlertItem(a alert.Alert) AlertItem {
	md := a.Metadata
	if len(md) == 0 {
		md = json.RawMessage("{}")
	}
	return AlertItem{
		ID:        a.ID,
		Type:      string(a.Type),
		Title:     a.Title,
		Message:   a.Message,
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt,
		Metadata:  md,
	}
}
