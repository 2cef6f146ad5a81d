// Package service implements quiz dispatch: interpreting one inbound
// quiz command and producing zero or more rendered quiz messages.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/catalog"
	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

// Dispatcher orchestrates one quiz request end to end: candidate
// listing, fuzzy matching, question fetching, sampling and rendering.
// Store failures degrade to empty lists so the user always receives a
// natural-language message instead of a raw error.
type Dispatcher struct {
	store     CatalogStore
	messenger Messenger
	pages     PagePublisher
	logger    *zap.Logger
}

func NewDispatcher(store CatalogStore, messenger Messenger, pages PagePublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		messenger: messenger,
		pages:     pages,
		logger:    logger,
	}
}

// Dispatch handles a parsed quiz query for one chat. All outcomes,
// including empty catalogs and failed matches, are reported to the
// user through the messenger.
func (d *Dispatcher) Dispatch(ctx context.Context, chatID int64, query entities.QuizQuery) {
	switch query.Mode {
	case entities.ModeChapter:
		d.dispatchChapter(ctx, chatID, query)
	case entities.ModeSubject:
		d.dispatchSubject(ctx, chatID, query)
	case entities.ModeRandom:
		d.dispatchRandom(ctx, chatID, query)
	case entities.ModeLegacy:
		d.dispatchLegacy(ctx, chatID, query)
	default:
		d.logger.Warn("unknown quiz mode", zap.String("mode", string(query.Mode)))
	}
}

// dispatchChapter resolves a chapter query across every subject: the
// catalog is subject-scoped, but a chapter command does not name its
// parent subject, so candidates and questions span all subjects.
func (d *Dispatcher) dispatchChapter(ctx context.Context, chatID int64, query entities.QuizQuery) {
	chapters := d.listChapters(ctx, "")

	match := catalog.Resolve(chapters, query.RawQuery)
	if match == nil {
		d.sendWithListing(ctx, chatID, "chapter", msgNoMatch("chapter", query.RawQuery), chapters)
		return
	}

	pool := d.fetchQuestions(ctx, "", match.Name)
	if len(pool) == 0 {
		d.sendWithListing(ctx, chatID, "chapter", msgNoQuestionsForMatch("chapter", match.Name), chapters)
		return
	}

	if match.Confidence != catalog.ConfidenceExact {
		d.sendHTML(ctx, chatID, msgDidYouMean("chapter", match.Name))
	}

	d.sendBatch(ctx, chatID, pool, query.Count)
}

func (d *Dispatcher) dispatchSubject(ctx context.Context, chatID int64, query entities.QuizQuery) {
	subjects := d.listSubjects(ctx)

	match := catalog.Resolve(subjects, query.RawQuery)
	if match == nil {
		d.sendWithListing(ctx, chatID, "subject", msgNoMatch("subject", query.RawQuery), subjects)
		return
	}

	pool := d.fetchQuestions(ctx, match.Name, "")
	if len(pool) == 0 {
		d.sendWithListing(ctx, chatID, "subject", msgNoQuestionsForMatch("subject", match.Name), subjects)
		return
	}

	if match.Confidence != catalog.ConfidenceExact {
		d.sendHTML(ctx, chatID, msgDidYouMean("subject", match.Name))
	}

	d.sendBatch(ctx, chatID, pool, query.Count)
}

func (d *Dispatcher) dispatchRandom(ctx context.Context, chatID int64, query entities.QuizQuery) {
	pool := d.fetchQuestions(ctx, "", "")
	if len(pool) == 0 {
		d.sendText(ctx, chatID, msgNoQuestions)
		return
	}

	d.sendBatch(ctx, chatID, pool, query.Count)
}

// dispatchLegacy serves the old /pyq, /pyqb, /b1 style commands. The
// subject is fixed by the command itself, so no matching is needed; a
// bare /pyq draws from the mixed pool.
func (d *Dispatcher) dispatchLegacy(ctx context.Context, chatID int64, query entities.QuizQuery) {
	pool := d.fetchQuestions(ctx, query.Subject, "")
	if len(pool) == 0 {
		scope := query.Subject
		if scope == "" {
			scope = "the selected subjects"
		}
		d.sendText(ctx, chatID, msgNoQuestionsFor(scope))
		return
	}

	d.sendBatch(ctx, chatID, pool, query.Count)
}

// sendBatch samples min(count, len(pool)) questions without
// replacement and renders each one as an optional photo followed by a
// quiz poll. A single failed send skips that question only; when every
// send fails, one summary message is sent instead.
func (d *Dispatcher) sendBatch(ctx context.Context, chatID int64, pool []entities.Question, count int) {
	sample := make([]entities.Question, len(pool))
	copy(sample, pool)
	rand.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	n := min(count, len(sample))
	sent := 0

	for _, q := range sample[:n] {
		if q.Image != "" {
			if err := d.messenger.SendPhoto(ctx, chatID, q.Image); err != nil {
				d.logger.Warn("failed to send question image",
					zap.Int64("chat_id", chatID),
					zap.String("image", q.Image),
					zap.Error(err),
				)
			}
		}

		if err := d.messenger.SendQuizPoll(ctx, chatID, normalizeForRender(q)); err != nil {
			d.logger.Warn("failed to send quiz poll",
				zap.Int64("chat_id", chatID),
				zap.String("subject", q.Subject),
				zap.String("chapter", q.Chapter),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if sent == 0 {
		d.sendText(ctx, chatID, msgNoValidQuestions)
	}
}

// normalizeForRender fills the defensive fallbacks for legacy records
// that slipped past ingestion-time validation.
func normalizeForRender(q entities.Question) entities.Question {
	if q.Text == "" {
		q.Text = fallbackQuestionText
	}
	for i, letter := range entities.OptionLetters {
		if q.Options[i] == "" {
			q.Options[i] = "Option " + letter
		}
	}
	if q.Explanation == "" {
		q.Explanation = fallbackExplanation
	}
	return q
}

// sendWithListing sends a prefix message followed by the catalog
// listing, publishing the item list as an external page when possible
// and inlining it otherwise.
func (d *Dispatcher) sendWithListing(ctx context.Context, chatID int64, noun, prefix string, items []string) {
	title := fmt.Sprintf("Available %ss", capitalize(noun))

	pageURL, err := d.pages.Publish(ctx, title, items)
	if err != nil {
		d.logger.Warn("failed to publish catalog page",
			zap.String("title", title),
			zap.Error(err),
		)
		pageURL = ""
	}

	d.sendHTML(ctx, chatID, prefix+"\n\n"+msgCatalogListing(noun, title, pageURL, items))
}

func (d *Dispatcher) listSubjects(ctx context.Context) []string {
	subjects, err := d.store.ListSubjects(ctx)
	if err != nil {
		d.logger.Error("failed to list subjects", zap.Error(err))
		return nil
	}
	return subjects
}

func (d *Dispatcher) listChapters(ctx context.Context, subject string) []string {
	chapters, err := d.store.ListChapters(ctx, subject)
	if err != nil {
		d.logger.Error("failed to list chapters",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return nil
	}
	return chapters
}

func (d *Dispatcher) fetchQuestions(ctx context.Context, subject, chapter string) []entities.Question {
	questions, err := d.store.FetchQuestions(ctx, subject, chapter)
	if err != nil {
		d.logger.Error("failed to fetch questions",
			zap.String("subject", subject),
			zap.String("chapter", chapter),
			zap.Error(err),
		)
		return nil
	}
	return questions
}

func (d *Dispatcher) sendText(ctx context.Context, chatID int64, text string) {
	if err := d.messenger.SendText(ctx, chatID, text); err != nil {
		d.logger.Error("failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) sendHTML(ctx context.Context, chatID int64, html string) {
	if err := d.messenger.SendHTML(ctx, chatID, html); err != nil {
		d.logger.Error("failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
