package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// QuestionRepository reads and replaces the question catalog.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListCatalog returns every question with its choices, both ordered by order_num.
func (r *QuestionRepository) ListCatalog(ctx context.Context) (survey.Catalog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.question_text, q.question_type, q.max_selections,
		        c.id, c.choice_text, c.is_other
		 FROM questions q
		 LEFT JOIN choices c ON c.question_id = q.id
		 ORDER BY q.order_num, q.id, c.order_num, c.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalog survey.Catalog
	for rows.Next() {
		var (
			q        survey.Question
			maxSel   *int
			choiceID *string
			text     *string
			isOther  *bool
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &maxSel, &choiceID, &text, &isOther); err != nil {
			return nil, err
		}

		// Rows of one question arrive together.
		if n := len(catalog); n == 0 || catalog[n-1].ID != q.ID {
			q.MaxSelections = maxSel
			catalog = append(catalog, q)
		}
		if choiceID != nil {
			last := &catalog[len(catalog)-1]
			c := survey.Choice{ID: *choiceID}
			if text != nil {
				c.Text = *text
			}
			if isOther != nil {
				c.IsOther = *isOther
			}
			last.Choices = append(last.Choices, c)
		}
	}
	return catalog, rows.Err()
}

// ReplaceCatalog deletes the stored catalog and inserts catalog in its place.
// Stored responses keep their question ids as plain text and are not touched.
func (r *QuestionRepository) ReplaceCatalog(ctx context.Context, catalog survey.Catalog) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		batch := &pgx.Batch{}
		for i, q := range catalog {
			batch.Queue(
				`INSERT INTO questions (id, question_text, question_type, max_selections, order_num)
				 VALUES ($1, $2, $3, $4, $5)`,
				q.ID, q.Text, string(q.Type), q.MaxSelections, i+1,
			)
			for j, c := range q.Choices {
				batch.Queue(
					`INSERT INTO choices (id, question_id, choice_text, is_other, order_num)
					 VALUES ($1, $2, $3, $4, $5)`,
					c.ID, q.ID, c.Text, c.IsOther, j+1,
				)
			}
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert catalog: %w", err)
		}
		return nil
	})
}
