package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo over the sessions table.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Create(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	query, args := builder().Insert(SessionsTable.Name).
		Columns("token", "user_id", "created_at", "expires_at").
		Values(s.Token, s.UserID, millis(s.CreatedAt), millis(s.ExpiresAt)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ByToken(ctx context.Context, token string) (*Session, error) {
	b := builder()
	query, args := b.Select("token", "user_id", "created_at", "expires_at").
		From(b.Table(SessionsTable.Name)).
		Where(entsql.EQ("token", token)).
		Limit(1).
		Query()

	var (
		s                Session
		created, expires int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Token, &s.UserID, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	s.CreatedAt = fromMillis(created)
	s.ExpiresAt = fromMillis(expires)
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	query, args := builder().Delete(SessionsTable.Name).
		Where(entsql.EQ("token", token)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query, args := builder().Delete(SessionsTable.Name).
		Where(entsql.LT("expires_at", millis(now))).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
