package service

import (
	"context"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

// CatalogStore reads the subject/chapter/question hierarchy. An empty
// subject or chapter argument means "no filter on that level", so
// FetchQuestions(ctx, "", "") returns the entire corpus and
// ListChapters(ctx, "") lists chapters across every subject.
type CatalogStore interface {
	ListSubjects(ctx context.Context) ([]string, error)
	ListChapters(ctx context.Context, subject string) ([]string, error)
	FetchQuestions(ctx context.Context, subject, chapter string) ([]entities.Question, error)
}

// Messenger delivers rendered quiz output to a chat.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendHTML(ctx context.Context, chatID int64, html string) error
	SendPhoto(ctx context.Context, chatID int64, imageURL string) error
	SendQuizPoll(ctx context.Context, chatID int64, question entities.Question) error
}

// PagePublisher publishes a titled item listing to an external page
// and returns its URL.
type PagePublisher interface {
	Publish(ctx context.Context, title string, items []string) (string, error)
}
