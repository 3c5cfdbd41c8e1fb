package ws

import (
	"context"
	"errors"
	"log"
	"time"

	"career-ready/internal/usecase"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type subscriber interface {
	Subscribe(ctx context.Context, channel string, handle func(payload []byte)) error
}

type alertGetter interface {
	Get(ctx context.Context, userID, alertID uuid.UUID) (usecase.AlertItem, error)
}

// AlertRelay forwards alert ids published by external producers to the
// owner's sockets as alert_created events.
type AlertRelay struct {
	sub     subscriber
	alerts  alertGetter
	hub     usecase.Notifier
	channel string
	logger  *log.Logger

	retryDelay time.Duration
}

func NewAlertRelay(sub subscriber, alerts alertGetter, hub usecase.Notifier, channel string, logger *log.Logger) *AlertRelay {
	if logger == nil {
		logger = log.Default()
	}
	return &AlertRelay{
		sub:        sub,
		alerts:     alerts,
		hub:        hub,
		channel:    channel,
		logger:     logger,
		retryDelay: 5 * time.Second,
	}
}

// Run subscribes until ctx is done, resubscribing after failures.
func (r *AlertRelay) Run(ctx context.Context) {
	for {
		err := r.sub.Subscribe(ctx, r.channel, func(payload []byte) {
			r.Handle(ctx, payload)
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			r.logger.Printf("Alert relay subscribe failed | channel=%s err=%v", r.channel, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.retryDelay):
		}
	}
}

// Handle processes one `{"user_id","alert_id"}` message.
func (r *AlertRelay) Handle(ctx context.Context, payload []byte) {
	if !gjson.ValidBytes(payload) {
		r.logger.Printf("Alert relay bad payload | reason=invalid_json")
		return
	}
	fields := gjson.GetManyBytes(payload, "user_id", "alert_id")
	userID, err := uuid.Parse(fields[0].String())
	if err != nil {
		r.logger.Printf("Alert relay bad payload | reason=user_id")
		return
	}
	alertID, err := uuid.Parse(fields[1].String())
	if err != nil {
		r.logger.Printf("Alert relay bad payload | reason=alert_id")
		return
	}

	item, err := r.alerts.Get(ctx, userID, alertID)
	if err != nil {
		if !errors.Is(err, usecase.ErrAlertNotFound) {
			r.logger.Printf("Alert relay lookup failed | user_id=%s alert_id=%s err=%v", userID, alertID, err)
		}
		return
	}
	r.hub.NotifyUser(userID, usecase.EventAlertCreated, item)
}
