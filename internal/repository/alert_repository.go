package repository

import (
	"context"

	"career-ready/internal/database"
	"career-ready/internal/domain/alert"

	"github.com/google/uuid"
)

type AlertRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]alert.Alert, error)
	FindByID(ctx context.Context, userID, alertID uuid.UUID) (alert.Alert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) (bool, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresAlertRepository struct {
	db database.DB
}

func NewPostgresAlertRepository(db database.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

const alertColumns = `id, user_id, type, title, message, is_read, created_at, metadata`

func scanAlert(row database.Row) (alert.Alert, error) {
	var a alert.Alert
	var typ string
	var metadata []byte
	if err := row.Scan(&a.ID, &a.UserID, &typ, &a.Title, &a.Message, &a.IsRead, &a.CreatedAt, &metadata); err != nil {
		return alert.Alert{}, err
	}
	a.Type = alert.Type(typ).Normalize()
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	a.Metadata = metadata
	return a, nil
}

// ListByUser returns the user's alerts newest first; id breaks ties.
func (r *PostgresAlertRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]alert.Alert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+alertColumns+`
		 FROM alerts
		 WHERE user_id = $1 AND ($2 = false OR is_read = false)
		 ORDER BY created_at DESC, id DESC`,
		userID, unreadOnly,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]alert.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAlertRepository) FindByID(ctx context.Context, userID, alertID uuid.UUID) (alert.Alert, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1 AND user_id = $2`,
		alertID, userID,
	)
	a, err := scanAlert(row)
	if err != nil {
		if isNoRows(err) {
			return alert.Alert{}, ErrAlertNotFound
		}
		return alert.Alert{}, err
	}
	return a, nil
}

// MarkRead flips is_read for an unread alert owned by userID. It reports
// whether a row changed; an already read alert is not an error.
func (r *PostgresAlertRepository) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE alerts SET is_read = true WHERE id = $1 AND user_id = $2 AND is_read = false`,
		alertID, userID,
	)
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM alerts WHERE id = $1 AND user_id = $2)`, alertID, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrAlertNotFound
	}
	return false, nil
}

func (r *PostgresAlertRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND is_read = false`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
