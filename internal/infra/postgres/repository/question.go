// Package repository provides Postgres-backed access to the question
// catalog and the content-key registry.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
	"github.com/itzfew/eduhub-bot/internal/infra/postgres"
)

// QuestionRepository reads the subject/chapter/question hierarchy.
// Rows are normalized into entities.Question at this boundary: the
// dispatch path never branches on storage layout, and subject/chapter
// are always attached from the path a record was fetched through.
type QuestionRepository struct {
	db     postgres.DBTX
	logger *zap.Logger
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX, logger *zap.Logger) *QuestionRepository {
	return &QuestionRepository{db: db, logger: logger}
}

// ListSubjects returns all distinct subject names, sorted for display.
func (r *QuestionRepository) ListSubjects(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT subject
		FROM questions
		WHERE subject <> ''
		ORDER BY subject
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

// ListChapters returns distinct chapter names, sorted. An empty
// subject lists chapters across every subject; a chapter query with no
// known parent subject needs the full candidate list.
func (r *QuestionRepository) ListChapters(ctx context.Context, subject string) ([]string, error) {
	query := `
		SELECT DISTINCT chapter
		FROM questions
		WHERE chapter <> ''
	`
	var args []any
	if subject != "" {
		query += ` AND lower(subject) = lower($1)`
		args = append(args, subject)
	}
	query += ` ORDER BY chapter`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

// FetchQuestions returns all questions under the given scope. Empty
// subject and chapter arguments widen the scope at that level, so both
// empty returns the entire corpus. Malformed rows are skipped, not
// fatal.
func (r *QuestionRepository) FetchQuestions(ctx context.Context, subject, chapter string) ([]entities.Question, error) {
	query := `
		SELECT subject, chapter, question,
		       option_a, option_b, option_c, option_d,
		       correct_option,
		       COALESCE(explanation, ''), COALESCE(image, '')
		FROM questions
	`
	var (
		conds []string
		args  []any
	)
	if subject != "" {
		args = append(args, subject)
		conds = append(conds, fmt.Sprintf("lower(subject) = lower($%d)", len(args)))
	}
	if chapter != "" {
		args = append(args, chapter)
		conds = append(conds, fmt.Sprintf("lower(trim(chapter)) = lower($%d)", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var q entities.Question
		err := rows.Scan(
			&q.Subject,
			&q.Chapter,
			&q.Text,
			&q.Options[0],
			&q.Options[1],
			&q.Options[2],
			&q.Options[3],
			&q.CorrectOption,
			&q.Explanation,
			&q.Image,
		)
		if err != nil {
			r.logger.Warn("skipping malformed question row", zap.Error(err))
			continue
		}

		q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))
		if q.Subject == "" {
			q.Subject = subject
		}
		if q.Chapter == "" {
			q.Chapter = chapter
		}

		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}

	return questions, nil
}

func scanNames(rows pgx.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}
