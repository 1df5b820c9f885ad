package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// historyRepo implements HistoryRepo over the quiz_results, predictions and
// guidances tables.
type historyRepo struct {
	db *sql.DB
}

var quizResultColumns = []string{
	"id", "attempt_id", "user_id", "topic_id", "quiz_title",
	"difficulty", "score", "total", "answers", "created_at",
}

func (r *historyRepo) SaveQuizResult(ctx context.Context, q *QuizResult) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	query, args := builder().Insert(QuizResultsTable.Name).
		Columns(quizResultColumns[1:]...).
		Values(q.AttemptID, q.UserID, q.TopicID, q.QuizTitle, q.Difficulty,
			q.Score, q.Total, q.Answers, millis(q.CreatedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert quiz result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("quiz result id: %w", err)
	}
	q.ID = int(id)
	return nil
}

func (r *historyRepo) QuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error) {
	b := builder()
	sel := b.Select(quizResultColumns...).
		From(b.Table(QuizResultsTable.Name)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var (
			q       QuizResult
			created int64
		)
		if err := rows.Scan(&q.ID, &q.AttemptID, &q.UserID, &q.TopicID, &q.QuizTitle,
			&q.Difficulty, &q.Score, &q.Total, &q.Answers, &created); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		q.CreatedAt = fromMillis(created)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *historyRepo) QuizStats(ctx context.Context, userID int) (QuizStats, error) {
	b := builder()
	query, args := b.Select(
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("score"), "correct"),
		entsql.As(entsql.Sum("total"), "answered"),
	).
		From(b.Table(QuizResultsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		stats             QuizStats
		correct, answered sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Attempts, &correct, &answered); err != nil {
		return QuizStats{}, fmt.Errorf("query quiz stats: %w", err)
	}
	stats.Correct = int(correct.Int64)
	stats.Answered = int(answered.Int64)
	return stats, nil
}

func (r *historyRepo) SavePrediction(ctx context.Context, p *PredictionRecord) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	careers, err := json.Marshal(nonNil(p.Careers))
	if err != nil {
		return fmt.Errorf("marshal careers: %w", err)
	}
	query, args := builder().Insert(PredictionsTable.Name).
		Columns("user_id", "careers", "reasoning", "created_at").
		Values(p.UserID, string(careers), p.Reasoning, millis(p.CreatedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("prediction id: %w", err)
	}
	p.ID = int(id)
	return nil
}

func (r *historyRepo) LatestPrediction(ctx context.Context, userID int) (*PredictionRecord, error) {
	out, err := r.Predictions(ctx, QueryOpts{UserID: userID, Limit: 1})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (r *historyRepo) Predictions(ctx context.Context, opts QueryOpts) ([]PredictionRecord, error) {
	b := builder()
	sel := b.Select("id", "user_id", "careers", "reasoning", "created_at").
		From(b.Table(PredictionsTable.Name)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	var out []PredictionRecord
	for rows.Next() {
		var (
			p       PredictionRecord
			careers string
			created int64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &careers, &p.Reasoning, &created); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		if err := json.Unmarshal([]byte(careers), &p.Careers); err != nil {
			return nil, fmt.Errorf("unmarshal careers for prediction %d: %w", p.ID, err)
		}
		p.CreatedAt = fromMillis(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *historyRepo) SaveGuidance(ctx context.Context, g *GuidanceRecord) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	options, err := json.Marshal(nonNil(g.CareerOptions))
	if err != nil {
		return fmt.Errorf("marshal career options: %w", err)
	}
	query, args := builder().Insert(GuidancesTable.Name).
		Columns("user_id", "career_options", "text", "created_at").
		Values(g.UserID, string(options), g.Text, millis(g.CreatedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert guidance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("guidance id: %w", err)
	}
	g.ID = int(id)
	return nil
}

func (r *historyRepo) LatestGuidance(ctx context.Context, userID int) (*GuidanceRecord, error) {
	out, err := r.Guidances(ctx, QueryOpts{UserID: userID, Limit: 1})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (r *historyRepo) Guidances(ctx context.Context, opts QueryOpts) ([]GuidanceRecord, error) {
	b := builder()
	sel := b.Select("id", "user_id", "career_options", "text", "created_at").
		From(b.Table(GuidancesTable.Name)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query guidances: %w", err)
	}
	defer rows.Close()

	var out []GuidanceRecord
	for rows.Next() {
		var (
			g       GuidanceRecord
			options string
			created int64
		)
		if err := rows.Scan(&g.ID, &g.UserID, &options, &g.Text, &created); err != nil {
			return nil, fmt.Errorf("scan guidance: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &g.CareerOptions); err != nil {
			return nil, fmt.Errorf("unmarshal career options for guidance %d: %w", g.ID, err)
		}
		g.CreatedAt = fromMillis(created)
		out = append(out, g)
	}
	return out, rows.Err()
}

func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.UserID != 0 {
		sel.Where(entsql.EQ("user_id", opts.UserID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
