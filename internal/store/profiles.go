package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// profileRepo implements ProfileRepo over the profiles table.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, userID int) (*Profile, error) {
	b := builder()
	query, args := b.Select("user_id", "skills", "education", "experience", "interests", "updated_at").
		From(b.Table(ProfilesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Limit(1).
		Query()

	var (
		p       Profile
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.UserID, &p.Skills, &p.Education, &p.Experience, &p.Interests, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	query, args := builder().Insert(ProfilesTable.Name).
		Columns("user_id", "skills", "education", "experience", "interests", "updated_at").
		Values(p.UserID, p.Skills, p.Education, p.Experience, p.Interests, millis(p.UpdatedAt)).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
