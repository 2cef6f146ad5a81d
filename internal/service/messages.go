// messages.go contains user-facing message templates for quiz dispatch.

package service

import (
	"fmt"
	"html"
	"strings"
)

const (
	msgNoQuestions       = "No questions available."
	msgNoValidQuestions  = "No valid questions could be sent. Please try again later."
	fallbackExplanation  = "No explanation provided."
	fallbackQuestionText = "No question text"
)

// msgNoQuestionsFor names the scope so the user can tell a recognized
// but empty scope apart from a failed match.
func msgNoQuestionsFor(scope string) string {
	return fmt.Sprintf("No questions available for %s.", scope)
}

// msgDidYouMean confirms a non-exact match before results are sent.
func msgDidYouMean(noun, matched string) string {
	return fmt.Sprintf(
		"🔍 Did you mean \"<b>%s</b>\"?\n\n"+
			"Sending questions from this %s...\n"+
			"(If this isn't correct, please try again with a more specific %s name)",
		html.EscapeString(matched), noun, noun,
	)
}

func msgNoMatch(noun, query string) string {
	return fmt.Sprintf("❌ No matching %s found for \"<b>%s</b>\"", noun, html.EscapeString(query))
}

func msgNoQuestionsForMatch(noun, matched string) string {
	return fmt.Sprintf("❌ No questions found for %s \"<b>%s</b>\"", noun, html.EscapeString(matched))
}

// msgCatalogListing renders the "available chapters/subjects" block,
// linking the published page when one exists and inlining the item
// names when publishing failed.
func msgCatalogListing(noun, title, pageURL string, items []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📚 <b>%s</b>\n\n", html.EscapeString(title)))

	if pageURL != "" {
		sb.WriteString(fmt.Sprintf("View all %ss here: <a href=\"%s\">%s</a>\n\n", noun, pageURL, pageURL))
	} else if len(items) > 0 {
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("• %s\n", html.EscapeString(item)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Then use: <code>/%s [name] [count]</code>\n", noun))
	if noun == "chapter" {
		sb.WriteString("Example: <code>/chapter Living World 2</code>")
	} else {
		sb.WriteString("Example: <code>/subject Biology 2</code>")
	}

	return sb.String()
}
