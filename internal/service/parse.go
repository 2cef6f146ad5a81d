package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

var (
	chapterRe = regexp.MustCompile(`^/chapter\s+(.+?)(?:\s+(\d+))?$`)
	subjectRe = regexp.MustCompile(`^/subject\s+(.+?)(?:\s+(\d+))?$`)
	randomRe  = regexp.MustCompile(`^/random(?:\s+(\d+))?$`)
	legacyRe  = regexp.MustCompile(`^/(pyq([bcp])?|([bcp])1)(?:\s*(\d+))?$`)
)

// legacySubjects maps single-letter subject codes from the old command
// surface to their catalog subject names.
var legacySubjects = map[string]string{
	"b": "Biology",
	"c": "Chemistry",
	"p": "Physics",
}

// ParseQuizCommand parses raw message text into a quiz query. The
// second return value reports whether the text is a quiz command at
// all; unrelated text falls through to other handlers.
func ParseQuizCommand(text string) (entities.QuizQuery, bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	if m := chapterRe.FindStringSubmatch(text); m != nil {
		return entities.QuizQuery{
			Mode:     entities.ModeChapter,
			RawQuery: strings.TrimSpace(m[1]),
			Count:    parseCount(m[2]),
		}, true
	}

	if m := subjectRe.FindStringSubmatch(text); m != nil {
		return entities.QuizQuery{
			Mode:     entities.ModeSubject,
			RawQuery: strings.TrimSpace(m[1]),
			Count:    parseCount(m[2]),
		}, true
	}

	if m := randomRe.FindStringSubmatch(text); m != nil {
		return entities.QuizQuery{
			Mode:  entities.ModeRandom,
			Count: parseCount(m[1]),
		}, true
	}

	if m := legacyRe.FindStringSubmatch(text); m != nil {
		q := entities.QuizQuery{
			Mode:  entities.ModeLegacy,
			Count: parseCount(m[4]),
		}
		// /pyqb, /pyqc, /pyqp carry the code in the second group;
		// /b1, /c1, /p1 in the third. Bare /pyq is the mixed pool.
		if code := m[2] + m[3]; code != "" {
			q.Subject = legacySubjects[code]
		}
		return q, true
	}

	return entities.QuizQuery{}, false
}

// parseCount interprets an optional trailing count, defaulting to one
// question and clamping nonsensical values up to the minimum.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
