package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// ErrResponseNotFound is returned when no stored response has the given id.
var ErrResponseNotFound = errors.New("response not found")

// ResponseRepository handles stored survey responses.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Create inserts the response and its answer lines in one transaction.
// Re-inserting an existing id is a no-op so a redelivered payload is harmless.
func (r *ResponseRepository) Create(ctx context.Context, resp *model.StoredResponse) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO responses (id, user_name, submitted_at)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO NOTHING`,
			resp.ID, resp.UserName, resp.SubmittedAt,
		)
		if err != nil {
			return fmt.Errorf("insert response: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		rows := make([][]any, len(resp.Answers))
		for i, l := range resp.Answers {
			var written *string
			if l.WrittenAnswer != "" {
				w := l.WrittenAnswer
				written = &w
			}
			rows[i] = []any{resp.ID, i + 1, l.QuestionID, l.AnswerText, written}
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"response_answers"},
			[]string{"response_id", "line_no", "question_id", "answer_text", "written_answer"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
		return nil
	})
}

// GetByID retrieves one response with its answer lines.
func (r *ResponseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StoredResponse, error) {
	var resp model.StoredResponse
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_name, submitted_at FROM responses WHERE id = $1`, id,
	).Scan(&resp.ID, &resp.UserName, &resp.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}

	lines, err := r.linesFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	resp.Answers = lines[id]
	if resp.Answers == nil {
		resp.Answers = []survey.Line{}
	}
	return &resp, nil
}

// ListPaginated retrieves responses newest first, with the total count.
func (r *ResponseRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.StoredResponse, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM responses`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_name, submitted_at
		 FROM responses
		 ORDER BY submitted_at DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		responses []model.StoredResponse
		ids       []uuid.UUID
	)
	for rows.Next() {
		var resp model.StoredResponse
		if err := rows.Scan(&resp.ID, &resp.UserName, &resp.SubmittedAt); err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
		ids = append(ids, resp.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return responses, total, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range responses {
		responses[i].Answers = lines[responses[i].ID]
		if responses[i].Answers == nil {
			responses[i].Answers = []survey.Line{}
		}
	}
	return responses, total, nil
}

// QuestionCounts returns how many responses answered each question id.
func (r *ResponseRepository) QuestionCounts(ctx context.Context) ([]model.QuestionCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, COUNT(DISTINCT response_id)
		 FROM response_answers
		 GROUP BY question_id
		 ORDER BY question_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []model.QuestionCount{}
	for rows.Next() {
		var c model.QuestionCount
		if err := rows.Scan(&c.QuestionID, &c.AnswerCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Delete removes a response; its answer lines cascade.
func (r *ResponseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM responses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrResponseNotFound
	}
	return nil
}

func (r *ResponseRepository) linesFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]survey.Line, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT response_id, question_id, answer_text, COALESCE(written_answer, '')
		 FROM response_answers
		 WHERE response_id = ANY($1)
		 ORDER BY response_id, line_no`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[uuid.UUID][]survey.Line, len(ids))
	for rows.Next() {
		var (
			id uuid.UUID
			l  survey.Line
		)
		if err := rows.Scan(&id, &l.QuestionID, &l.AnswerText, &l.WrittenAnswer); err != nil {
			return nil, err
		}
		lines[id] = append(lines[id], l)
	}
	return lines, rows.Err()
}
