package usecase

import (
	"context"
	"testing"
	"time"

	"career-ready/internal/domain/alert"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertMarkRead_Idempotent(t *testing.T) {
	userID := uuid.New()
	alertID := uuid.New()
	repo := &fakeAlertRepo{alerts: []alert.Alert{{ID: alertID, UserID: userID, Type: alert.TypeSkillGap, Title: "Gap"}}}
	notifier := &fakeNotifier{}
	uc := NewAlertUsecase(repo, notifier, quietLogger())
	ctx := context.Background()

	item, err := uc.MarkRead(ctx, userID, alertID)
	require.NoError(t, err)
	assert.True(t, item.IsRead)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, EventAlertRead, notifier.sent[0].Event)

	item, err = uc.MarkRead(ctx, userID, alertID)
	require.NoError(t, err)
	assert.True(t, item.IsRead)
	assert.Len(t, notifier.sent, 1)
}

func TestAlertMarkRead_ForeignOrUnknown(t *testing.T) {
	owner := uuid.New()
	alertID := uuid.New()
	repo := &fakeAlertRepo{alerts: []alert.Alert{{ID: alertID, UserID: owner}}}
	uc := NewAlertUsecase(repo, nil, quietLogger())

	_, err := uc.MarkRead(context.Background(), uuid.New(), alertID)
	assert.ErrorIs(t, err, ErrAlertNotFound)
	assert.False(t, repo.alerts[0].IsRead)

	_, err = uc.MarkRead(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestAlertList_FiltersAndCounts(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()
	repo := &fakeAlertRepo{alerts: []alert.Alert{
		{ID: uuid.New(), UserID: userID, CreatedAt: now, IsRead: false},
		{ID: uuid.New(), UserID: userID, CreatedAt: now.Add(-time.Hour), IsRead: true},
		{ID: uuid.New(), UserID: uuid.New(), CreatedAt: now},
	}}
	uc := NewAlertUsecase(repo, nil, quietLogger())
	ctx := context.Background()

	all, err := uc.List(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.JSONEq(t, `{}`, string(all[0].Metadata))

	unread, err := uc.List(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	n, err := uc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
